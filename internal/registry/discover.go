package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// roleFolders maps a role subfolder to the item type it produces, in
// processing order.
var roleFolders = []struct {
	Dir  string
	Type string
}{
	{"ui", TypeComponent},
	{"lib", TypeLib},
	{"hooks", TypeHook},
}

// ignoredDirs are never treated as framework directories.
var ignoredDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	"dist":         true,
	"build":        true,
	".next":        true,
	"out":          true,
	"coverage":     true,
	".turbo":       true,
}

// sourceExtensions are the file extensions the builder turns into items.
var sourceExtensions = map[string]bool{
	".tsx": true,
	".ts":  true,
	".jsx": true,
	".js":  true,
	".vue": true,
}

// auxiliarySuffixes mark files that live next to sources but are not shipped.
var auxiliarySuffixes = []string{".d.ts", ".test", ".spec", ".stories"}

// FrameworkDir is a discovered framework subtree.
type FrameworkDir struct {
	Name  string    // e.g., "react"
	Path  string    // absolute or root-relative directory
	Roles []RoleDir // role subfolders present, in processing order
}

// RoleDir is one role subfolder inside a framework subtree.
type RoleDir struct {
	Dir  string // "ui", "lib" or "hooks"
	Type string // item type produced by files in this folder
	Path string
}

// Discovery is the outcome of scanning a registry root.
type Discovery struct {
	Frameworks []FrameworkDir
	// Unknown lists directories that have role folders but are not a
	// supported framework. They are skipped.
	Unknown []string
}

// DiscoverFrameworks scans root for framework subtrees. A child directory
// qualifies when it is not ignored and contains at least one role folder.
// Known frameworks are returned in canonical order.
func DiscoverFrameworks(root string) (*Discovery, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading registry root %s: %w", root, err)
	}

	found := make(map[string]FrameworkDir)
	var unknown []string
	for _, e := range entries {
		if !e.IsDir() || ignoredDirs[e.Name()] || strings.HasPrefix(e.Name(), ".") {
			continue
		}

		dir := filepath.Join(root, e.Name())
		roles := roleDirs(dir)
		if len(roles) == 0 {
			continue
		}
		if !IsFramework(e.Name()) {
			unknown = append(unknown, e.Name())
			continue
		}
		found[e.Name()] = FrameworkDir{Name: e.Name(), Path: dir, Roles: roles}
	}

	d := &Discovery{Unknown: unknown}
	for _, name := range Frameworks {
		if fw, ok := found[name]; ok {
			d.Frameworks = append(d.Frameworks, fw)
		}
	}
	return d, nil
}

// roleDirs returns the role folders present under dir.
func roleDirs(dir string) []RoleDir {
	var roles []RoleDir
	for _, rf := range roleFolders {
		p := filepath.Join(dir, rf.Dir)
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			continue
		}
		roles = append(roles, RoleDir{Dir: rf.Dir, Type: rf.Type, Path: p})
	}
	return roles
}

// ListSourceFiles returns the source files directly inside a role folder,
// sorted by name. Subdirectories, unrecognized extensions, type declarations,
// tests and stories are left out.
func ListSourceFiles(role RoleDir) ([]string, error) {
	entries, err := os.ReadDir(role.Path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", role.Path, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !IsSourceFile(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(role.Path, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// IsSourceFile reports whether a file name is one the builder publishes.
func IsSourceFile(name string) bool {
	ext := filepath.Ext(name)
	if !sourceExtensions[ext] {
		return false
	}
	stem := strings.TrimSuffix(name, ext)
	if strings.HasSuffix(name, ".d.ts") {
		return false
	}
	for _, suffix := range auxiliarySuffixes {
		if strings.HasSuffix(stem, suffix) {
			return false
		}
	}
	return true
}

// ItemName derives an item name from a source file name by dropping its
// extension. No case folding is applied.
func ItemName(file string) string {
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// RoleFolder returns the role subfolder that holds items of typ, or "" for an
// unknown type.
func RoleFolder(typ string) string {
	for _, rf := range roleFolders {
		if rf.Type == typ {
			return rf.Dir
		}
	}
	return ""
}
