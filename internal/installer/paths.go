package installer

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/animkit-dev/animkit/internal/registry"
)

var utilsFilePattern = regexp.MustCompile(`(^|/)utils(/index)?\.(ts|tsx|js|jsx)$`)

// IsUtilsFile reports whether an item file name is the shared utilities
// module.
func IsUtilsFile(name string) bool {
	return utilsFilePattern.MatchString(filepath.ToSlash(name))
}

// Resolver maps item files to paths inside a project.
type Resolver struct {
	root           string
	aliases        Aliases
	componentsPath string
	srcDir         bool
}

// NewResolver creates a Resolver. Aliases starting with "@/" or "~/" resolve
// under root, or under root/src when the project has a src directory.
func NewResolver(root string, aliases Aliases, componentsPath string) *Resolver {
	info, err := os.Stat(filepath.Join(root, "src"))
	return &Resolver{
		root:           root,
		aliases:        aliases,
		componentsPath: componentsPath,
		srcDir:         err == nil && info.IsDir(),
	}
}

// AliasDir resolves an import alias to a directory (or file stem).
func (r *Resolver) AliasDir(alias string) string {
	for _, prefix := range []string{"@/", "~/"} {
		if rest, ok := strings.CutPrefix(alias, prefix); ok {
			if r.srcDir {
				return filepath.Join(r.root, "src", filepath.FromSlash(rest))
			}
			return filepath.Join(r.root, filepath.FromSlash(rest))
		}
	}
	if filepath.IsAbs(alias) {
		return alias
	}
	return filepath.Join(r.root, filepath.FromSlash(alias))
}

// ComponentsDir is where component files go: the explicit path if one was
// given, otherwise the components alias.
func (r *Resolver) ComponentsDir() string {
	if r.componentsPath == "" {
		return r.AliasDir(r.aliases.Components)
	}
	if filepath.IsAbs(r.componentsPath) {
		return r.componentsPath
	}
	return filepath.Join(r.root, r.componentsPath)
}

// Target returns where file of item is written. The utilities module always
// lands at "<utils alias>.<ext>", whatever its file name.
func (r *Resolver) Target(item *registry.Item, file registry.File) (string, error) {
	name := path.Clean(filepath.ToSlash(file.Name))
	if name == "." || path.IsAbs(name) || name == ".." || strings.HasPrefix(name, "../") {
		return "", fmt.Errorf("file %q of %s escapes its target directory", file.Name, item.Name)
	}

	if IsUtilsFile(name) {
		return r.AliasDir(r.aliases.Utils) + path.Ext(name), nil
	}

	var dir string
	switch item.Type {
	case registry.TypeComponent:
		dir = r.ComponentsDir()
	case registry.TypeHook:
		dir = r.AliasDir(r.aliases.Hooks)
	default:
		dir = r.AliasDir(r.aliases.Lib)
	}
	return filepath.Join(dir, filepath.FromSlash(name)), nil
}
