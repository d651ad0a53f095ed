package installer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
)

// Package managers.
const (
	NPM  = "npm"
	PNPM = "pnpm"
	Yarn = "yarn"
	Bun  = "bun"
)

// lockfiles map a lockfile to the manager that wrote it, checked in order.
var lockfiles = []struct {
	file    string
	manager string
}{
	{"pnpm-lock.yaml", PNPM},
	{"yarn.lock", Yarn},
	{"bun.lockb", Bun},
	{"bun.lock", Bun},
	{"package-lock.json", NPM},
}

// DetectPackageManager picks the manager whose lockfile is in dir,
// defaulting to npm.
func DetectPackageManager(dir string) string {
	for _, lf := range lockfiles {
		if _, err := os.Stat(filepath.Join(dir, lf.file)); err == nil {
			return lf.manager
		}
	}
	return NPM
}

// addArgs returns the arguments that add packages with manager.
func addArgs(manager string, packages []string, dev bool) []string {
	var args []string
	switch manager {
	case PNPM, Yarn:
		args = []string{"add"}
		if dev {
			args = append(args, "-D")
		}
	case Bun:
		args = []string{"add"}
		if dev {
			args = append(args, "--dev")
		}
	default:
		args = []string{"install"}
		if dev {
			args = append(args, "--save-dev")
		}
	}
	return append(args, packages...)
}

// NodePackageInstaller runs a Node package manager in the project.
type NodePackageInstaller struct {
	// Manager is npm, pnpm, yarn or bun. Empty means detect from lockfiles.
	Manager string
	// Stdout and Stderr receive the manager's output; default to os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// Install adds packages to the project in dir in a single manager run.
func (n *NodePackageInstaller) Install(ctx context.Context, dir string, packages []string, dev bool) error {
	if len(packages) == 0 {
		return nil
	}

	manager := n.Manager
	if manager == "" {
		manager = DetectPackageManager(dir)
	}
	bin, err := exec.LookPath(manager)
	if err != nil {
		return fmt.Errorf("installing packages requires %s: %w", manager, err)
	}

	cmd := exec.CommandContext(ctx, bin, addArgs(manager, packages, dev)...)
	cmd.Dir = dir
	cmd.Stdout = n.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = n.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %v: %w", manager, cmd.Args[1:], err)
	}
	return nil
}

// packageJSON is the part of package.json the installer reads.
type packageJSON struct {
	Dependencies     map[string]string `json:"dependencies"`
	DevDependencies  map[string]string `json:"devDependencies"`
	PeerDependencies map[string]string `json:"peerDependencies"`
}

// DeclaredPackages returns every package named in dir/package.json. A
// missing package.json yields an empty set.
func DeclaredPackages(dir string) (map[string]bool, error) {
	data, err := os.ReadFile(filepath.Join(dir, "package.json"))
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]bool{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading package.json: %w", err)
	}

	var pj packageJSON
	if err := json.Unmarshal(data, &pj); err != nil {
		return nil, fmt.Errorf("parsing package.json: %w", err)
	}

	declared := make(map[string]bool)
	for _, m := range []map[string]string{pj.Dependencies, pj.DevDependencies, pj.PeerDependencies} {
		for name := range m {
			declared[name] = true
		}
	}
	return declared, nil
}

// missingPackages returns the sorted packages that are neither declared nor
// already queued.
func missingPackages(packages []string, declared, queued map[string]bool) []string {
	var out []string
	for _, p := range packages {
		if !declared[p] && !queued[p] {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}
