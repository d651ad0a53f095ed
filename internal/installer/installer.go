package installer

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/animkit-dev/animkit/internal/registry"
)

// Installer resolves and installs registry items into a project.
type Installer struct {
	fetch    Fetcher
	packages PackageInstaller
	opts     Options
	paths    *Resolver
	log      zerolog.Logger

	Hooks Hooks
}

// New creates an Installer. packages may be nil when opts.SkipPackages is
// set.
func New(fetch Fetcher, packages PackageInstaller, opts Options, log zerolog.Logger) *Installer {
	if opts.Aliases == (Aliases{}) {
		opts.Aliases = DefaultAliases
	}
	return &Installer{
		fetch:    fetch,
		packages: packages,
		opts:     opts,
		paths:    NewResolver(opts.ProjectRoot, opts.Aliases, opts.ComponentsPath),
		log:      log,
	}
}

// session is the state of one InstallAll call, threaded through every
// recursive install.
type session struct {
	installed map[string]bool
	declared  map[string]bool // packages in package.json
	queued    map[string]bool // packages already handed to the installer
	summary   *Summary
}

// InstallAll installs each requested name with its registry dependencies.
// A name that fails is recorded in Summary.Failed and the rest proceed. The
// error return is reserved for problems that affect every name, such as an
// unreadable package.json or a canceled context.
func (in *Installer) InstallAll(ctx context.Context, names []string) (*Summary, error) {
	declared, err := DeclaredPackages(in.opts.ProjectRoot)
	if err != nil {
		return nil, err
	}

	s := &session{
		installed: make(map[string]bool),
		declared:  declared,
		queued:    make(map[string]bool),
		summary:   &Summary{},
	}

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return s.summary, err
		}
		if err := in.install(ctx, s, name); err != nil {
			in.log.Warn().Err(err).Str("component", name).Str("framework", in.opts.Framework).Msg("install failed")
			emit(in.Hooks, Event{Phase: "failed", Name: name, Msg: err.Error()})
			s.summary.Failed = append(s.summary.Failed, Failure{Name: name, Err: err})
			continue
		}
		s.summary.Succeeded = append(s.summary.Succeeded, name)
	}
	return s.summary, nil
}

// install installs name after its registry dependencies. A name already in
// the session is a no-op, which also ends dependency cycles. The name is
// marked before fetching and unmarked again if anything fails.
func (in *Installer) install(ctx context.Context, s *session, name string) error {
	if s.installed[name] {
		return nil
	}
	s.installed[name] = true

	if err := in.installItem(ctx, s, name); err != nil {
		delete(s.installed, name)
		return err
	}
	return nil
}

func (in *Installer) installItem(ctx context.Context, s *session, name string) error {
	emit(in.Hooks, Event{Phase: "fetching", Name: name})
	item, err := in.fetch.FetchItem(ctx, name, in.opts.Framework)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", name, err)
	}

	for _, dep := range item.RegistryDependencies {
		if err := in.install(ctx, s, dep); err != nil {
			return fmt.Errorf("installing %s (required by %s): %w", dep, name, err)
		}
	}

	result := ItemResult{Name: item.Name, Type: item.Type}
	in.installPackages(ctx, s, item, &result)

	for _, f := range item.Files {
		fr, err := in.writeFile(item, f)
		if err != nil {
			return err
		}
		emit(in.Hooks, Event{Phase: "file", Name: item.Name, Path: fr.Path, Msg: string(fr.Action)})
		result.Files = append(result.Files, fr)
	}

	s.summary.Items = append(s.summary.Items, result)
	emit(in.Hooks, Event{Phase: "installed", Name: item.Name})
	return nil
}

// installPackages hands the item's missing dependencies, then its missing
// dev dependencies, to the package installer in one call each. A failure is
// recorded on the result and does not stop the item's files. Packages count
// as queued only once installed, so a later item retries a failed batch.
// When the regular batch fails the dev batch is not attempted and is dropped
// from the result.
func (in *Installer) installPackages(ctx context.Context, s *session, item *registry.Item, result *ItemResult) {
	result.Packages = missingPackages(item.Dependencies, s.declared, s.queued)
	result.DevPackages = missingPackages(item.DevDependencies, s.declared, s.queued)

	if in.opts.SkipPackages || in.opts.DryRun || in.packages == nil {
		s.queue(result.Packages)
		s.queue(result.DevPackages)
		return
	}

	if len(result.Packages) > 0 {
		if err := in.installBatch(ctx, item, result.Packages, false); err != nil {
			result.PackagesErr = err
			result.DevPackages = nil
			return
		}
		s.queue(result.Packages)
	}
	if len(result.DevPackages) > 0 {
		if err := in.installBatch(ctx, item, result.DevPackages, true); err != nil {
			result.PackagesErr = err
			return
		}
		s.queue(result.DevPackages)
	}
}

func (in *Installer) installBatch(ctx context.Context, item *registry.Item, pkgs []string, dev bool) error {
	emit(in.Hooks, Event{Phase: "packages", Name: item.Name, Msg: fmt.Sprint(pkgs)})
	err := in.packages.Install(ctx, in.opts.ProjectRoot, pkgs, dev)
	if err != nil {
		in.log.Warn().Err(err).Str("component", item.Name).Strs("packages", pkgs).Bool("dev", dev).Msg("package install failed")
	}
	return err
}

func (s *session) queue(pkgs []string) {
	for _, p := range pkgs {
		s.queued[p] = true
	}
}

// writeFile places one file: the utilities module goes through the merger,
// anything else is written unless it exists and overwrite is off.
func (in *Installer) writeFile(item *registry.Item, f registry.File) (FileResult, error) {
	target, err := in.paths.Target(item, f)
	if err != nil {
		return FileResult{}, err
	}

	if IsUtilsFile(f.Name) {
		res, err := MergeFile(target, f.Content, in.opts.Overwrite, in.opts.DryRun)
		if err == nil && len(res.Unmerged) > 0 {
			in.log.Warn().Str("component", item.Name).Str("path", target).Strs("bindings", res.Unmerged).Msg("could not merge bindings")
		}
		return res, err
	}

	res := FileResult{Path: target, Action: ActionWritten}
	if _, err := os.Stat(target); err == nil {
		if !in.opts.Overwrite {
			res.Action = ActionSkipped
			return res, nil
		}
		res.Action = ActionOverwritten
	}
	if in.opts.DryRun {
		return res, nil
	}
	return res, writeFile(target, f.Content)
}
