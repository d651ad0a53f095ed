//go:generate mockgen -destination=./mocks/installer.go . Fetcher,PackageInstaller

package installer

import (
	"context"

	"github.com/animkit-dev/animkit/internal/registry"
)

// Fetcher is the subset of the registry client used by the installer.
type Fetcher interface {
	FetchItem(ctx context.Context, name, framework string) (*registry.Item, error)
}

// PackageInstaller adds external packages to the project in dir. dev selects
// development dependencies.
type PackageInstaller interface {
	Install(ctx context.Context, dir string, packages []string, dev bool) error
}

// Aliases are the project's import aliases, e.g. "@/components/ui".
type Aliases struct {
	Components string
	Utils      string
	Hooks      string
	Lib        string
}

// DefaultAliases match the layout most projects use.
var DefaultAliases = Aliases{
	Components: "@/components/ui",
	Utils:      "@/lib/utils",
	Hooks:      "@/hooks",
	Lib:        "@/lib",
}

// Options control one install invocation.
type Options struct {
	ProjectRoot string
	Framework   string
	Aliases     Aliases
	// ComponentsPath overrides the components alias for component files.
	ComponentsPath string
	Overwrite      bool
	DryRun         bool
	// SkipPackages leaves package installation to the user.
	SkipPackages bool
}

// Event is a progress notification.
type Event struct {
	Phase string // fetching|file|packages|installed|failed
	Name  string // item name
	Path  string // target file, for file events
	Msg   string
}

// Hooks carries callbacks for progress events.
type Hooks struct {
	OnEvent func(Event)
}

func emit(h Hooks, e Event) {
	if h.OnEvent != nil {
		h.OnEvent(e)
	}
}

// Action is what happened to one target file.
type Action string

const (
	ActionWritten     Action = "written"
	ActionOverwritten Action = "overwritten"
	ActionCreated     Action = "created"
	ActionMerged      Action = "merged"
	ActionSkipped     Action = "skipped"
)

// FileResult records the outcome for one file of an item.
type FileResult struct {
	Path     string
	Action   Action
	Added    []string // bindings appended by a merge
	Unmerged []string // missing bindings whose source could not be extracted
}

// ItemResult records the outcome for one installed item.
type ItemResult struct {
	Name        string
	Type        string
	Files       []FileResult
	Packages    []string // dependencies handed to the package installer
	DevPackages []string
	// PackagesErr is set when the package installer failed. The item's
	// files are still written.
	PackagesErr error
}

// Counts returns how many files were written (including created and
// overwritten), merged and skipped.
func (r ItemResult) Counts() (written, merged, skipped int) {
	for _, f := range r.Files {
		switch f.Action {
		case ActionMerged:
			merged++
		case ActionSkipped:
			skipped++
		default:
			written++
		}
	}
	return written, merged, skipped
}

// Failure is a requested name that could not be installed.
type Failure struct {
	Name string
	Err  error
}

// Summary is the outcome of InstallAll.
type Summary struct {
	// Items are in completion order: every item appears after the registry
	// dependencies it pulled in.
	Items     []ItemResult
	Succeeded []string // requested names, in request order
	Failed    []Failure
}
