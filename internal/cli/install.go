package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/animkit-dev/animkit/internal/client"
	"github.com/animkit-dev/animkit/internal/config"
	"github.com/animkit-dev/animkit/internal/installer"
	"github.com/animkit-dev/animkit/internal/registry"
	"github.com/animkit-dev/animkit/internal/search"
)

var (
	installOverwrite    bool
	installPath         string
	installFramework    string
	installLocal        bool
	installDryRun       bool
	installCwd          string
	installSkipPackages bool
)

var installCmd = &cobra.Command{
	Use:     "install <name>...",
	Aliases: []string{"add"},
	Short:   "Install components and their dependencies into the project",
	Long: `Install one or more registry items into the current project. Registry
dependencies are installed first, shared utils are merged into the existing utils
file, and missing npm packages are added with the project's package manager.

Examples:
  animkit install fade-in
  animkit add fade-in slide-up --framework vue
  animkit install fade-in --local --dry-run`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInstall,
}

func init() {
	installCmd.Flags().BoolVarP(&installOverwrite, "overwrite", "o", false, "Overwrite existing files")
	installCmd.Flags().StringVarP(&installPath, "path", "p", "", "Install components into this directory instead of the components alias")
	installCmd.Flags().StringVarP(&installFramework, "framework", "f", "", "Framework to install for (default: from animkit.json or package.json)")
	installCmd.Flags().BoolVar(&installLocal, "local", false, "Read items from the local registry mirror")
	installCmd.Flags().BoolVar(&installDryRun, "dry-run", false, "Show what would be installed without writing anything")
	installCmd.Flags().StringVar(&installCwd, "cwd", "", "Project root (default: current directory)")
	installCmd.Flags().BoolVar(&installSkipPackages, "skip-packages", false, "Do not install npm packages")
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	root, err := projectRoot(installCwd)
	if err != nil {
		return err
	}
	project, err := config.LoadProject(root)
	if err != nil {
		return err
	}
	framework, err := resolveFramework(installFramework, project)
	if err != nil {
		return err
	}

	c := newClient(root, project, installLocal)
	packages := &installer.NodePackageInstaller{
		Manager: config.Get(config.KeyPackageManager),
		Stdout:  cmd.ErrOrStderr(),
		Stderr:  cmd.ErrOrStderr(),
	}

	inst := installer.New(c, packages, installer.Options{
		ProjectRoot: root,
		Framework:   framework,
		Aliases: installer.Aliases{
			Components: project.Aliases.Components,
			Utils:      project.Aliases.Utils,
			Hooks:      project.Aliases.Hooks,
			Lib:        project.Aliases.Lib,
		},
		ComponentsPath: installPath,
		Overwrite:      installOverwrite,
		DryRun:         installDryRun,
		SkipPackages:   installSkipPackages,
	}, logger)
	inst.Hooks.OnEvent = func(e installer.Event) {
		logger.Debug().Str("phase", e.Phase).Str("component", e.Name).Str("path", e.Path).Msg(e.Msg)
	}

	if installDryRun {
		fmt.Fprintln(out, "Dry run: no files will be written.")
	}
	fmt.Fprintf(out, "Installing for %s...\n", framework)

	summary, err := inst.InstallAll(ctx, args)
	if summary != nil {
		printInstallSummary(out, root, summary)
	}
	if err != nil {
		return err
	}

	if len(summary.Failed) > 0 {
		var idx *registry.Index
		for _, f := range summary.Failed {
			fmt.Fprintf(out, "  ✗ %s: %v\n", f.Name, f.Err)
			// The missing item may be a registry dependency of f.Name.
			var notFound *client.NotFoundError
			if errors.As(f.Err, &notFound) {
				if idx == nil {
					idx, _ = c.FetchIndex(ctx)
				}
				printAlternatives(ctx, out, c, idx, notFound.Name, framework)
			}
		}
		return fmt.Errorf("%d of %d components failed to install", len(summary.Failed), len(args))
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "✓ Installed %d items.\n", len(summary.Items))
	return nil
}

func printInstallSummary(out io.Writer, root string, summary *installer.Summary) {
	for _, item := range summary.Items {
		written, merged, skipped := item.Counts()
		fmt.Fprintf(out, "  ✓ %s: %s (%d written, %d merged, %d skipped)\n",
			item.Type, item.Name, written, merged, skipped)
		for _, f := range item.Files {
			line := fmt.Sprintf("      %s %s", f.Action, relPath(root, f.Path))
			if len(f.Added) > 0 {
				line += " (+" + strings.Join(f.Added, ", ") + ")"
			}
			fmt.Fprintln(out, line)
			if len(f.Unmerged) > 0 {
				fmt.Fprintf(out, "    ⚠️  could not merge into %s: %s\n", relPath(root, f.Path), strings.Join(f.Unmerged, ", "))
			}
		}
		if len(item.Packages) > 0 {
			fmt.Fprintf(out, "      packages: %s\n", strings.Join(item.Packages, " "))
		}
		if len(item.DevPackages) > 0 {
			fmt.Fprintf(out, "      dev packages: %s\n", strings.Join(item.DevPackages, " "))
		}
		if item.PackagesErr != nil {
			fmt.Fprintf(out, "    ⚠️  package install failed: %v\n", item.PackagesErr)
		}
	}
}

// printAlternatives points at other frameworks publishing name, or at close
// matches in the index when there are none.
func printAlternatives(ctx context.Context, out io.Writer, c client.Client, idx *registry.Index, name, framework string) {
	if others := client.Availability(ctx, c, name, framework); len(others) > 0 {
		fmt.Fprintf(out, "      available for: %s (use --framework)\n", strings.Join(others, ", "))
		return
	}
	if idx == nil {
		return
	}
	if matches := search.Suggest(search.Names(idx.ForFramework(framework)), name, 3); len(matches) > 0 {
		fmt.Fprintf(out, "      did you mean: %s?\n", strings.Join(matches, ", "))
	}
}
