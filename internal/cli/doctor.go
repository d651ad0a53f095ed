package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/animkit-dev/animkit/internal/branding"
	"github.com/animkit-dev/animkit/internal/config"
	"github.com/animkit-dev/animkit/internal/installer"
	"github.com/animkit-dev/animkit/internal/manifest"
	"github.com/animkit-dev/animkit/internal/registry"
)

var (
	doctorCwd     string
	doctorLocal   bool
	checkArtifact string
)

func init() {
	doctorCmd.Flags().StringVar(&doctorCwd, "cwd", "", "Project root (default: current directory)")
	doctorCmd.Flags().BoolVar(&doctorLocal, "local", false, "Check the local registry mirror instead of the remote registry")
	doctorCmd.Flags().StringVar(&checkArtifact, "check-artifact", "", "Validate a registry artifact (item or index.json) at the given path")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the project setup",
	Long: `Run diagnostic checks on the current project: animkit.json, the framework,
the utils file, the package manager and registry reachability.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if checkArtifact != "" {
			return runArtifactCheck(out, checkArtifact)
		}

		root, err := projectRoot(doctorCwd)
		if err != nil {
			return err
		}
		failed := runProjectChecks(cmd.Context(), out, root)
		if failed > 0 {
			return fmt.Errorf("%d checks failed", failed)
		}
		return nil
	},
}

// runProjectChecks prints one line per check and returns how many failed.
func runProjectChecks(ctx context.Context, out io.Writer, root string) int {
	failed := 0
	fmt.Fprintf(out, "Project check: %s\n", root)

	project, err := config.LoadProject(root)
	if err != nil {
		fmt.Fprintf(out, "  [FAIL] %v\n", err)
		return 1
	}
	if project.Found {
		fmt.Fprintf(out, "  [ OK ] %s found\n", branding.ProjectConfigFile())
	} else {
		fmt.Fprintf(out, "  [WARN] %s not found; using defaults (run '%s init')\n", branding.ProjectConfigFile(), branding.CLIName())
	}

	if framework, err := resolveFramework("", project); err != nil {
		fmt.Fprintf(out, "  [FAIL] %v\n", err)
		failed++
	} else {
		fmt.Fprintf(out, "  [ OK ] framework: %s\n", framework)
	}

	resolver := installer.NewResolver(root, installer.Aliases{
		Components: project.Aliases.Components,
		Utils:      project.Aliases.Utils,
		Hooks:      project.Aliases.Hooks,
		Lib:        project.Aliases.Lib,
	}, "")
	if path, ok := findUtilsFile(resolver.AliasDir(project.Aliases.Utils)); ok {
		fmt.Fprintf(out, "  [ OK ] utils file: %s\n", relPath(root, path))
	} else {
		fmt.Fprintf(out, "  [INFO] no utils file at %s yet; the first install creates it\n", project.Aliases.Utils)
	}

	manager := config.Get(config.KeyPackageManager)
	if manager == "" {
		manager = installer.DetectPackageManager(root)
	}
	if path, err := exec.LookPath(manager); err != nil {
		fmt.Fprintf(out, "  [MISS] %s not found; use --skip-packages or install it\n", manager)
	} else {
		fmt.Fprintf(out, "  [ OK ] %s found at %s\n", manager, path)
	}

	fmt.Fprintln(out)
	source := project.Registry.BaseURL
	if doctorLocal {
		source = project.LocalRoot(root)
	}
	fmt.Fprintf(out, "Registry check: %s\n", source)
	idx, err := newClient(root, project, doctorLocal).FetchIndex(ctx)
	if err != nil {
		fmt.Fprintf(out, "  [FAIL] %v\n", err)
		return failed + 1
	}
	fmt.Fprintf(out, "  [ OK ] index v%s: %d components, %d utilities, %d frameworks\n",
		idx.Version, idx.Stats.TotalComponents, idx.Stats.TotalUtilities, idx.Stats.TotalFrameworks)
	if framework := project.Framework; framework != "" && len(idx.ForFramework(framework)) == 0 {
		fmt.Fprintf(out, "  [WARN] no animations published for %s\n", framework)
	}
	return failed
}

func findUtilsFile(stem string) (string, bool) {
	for _, ext := range []string{".ts", ".tsx", ".js", ".jsx"} {
		for _, candidate := range []string{stem + ext, filepath.Join(stem, "index"+ext)} {
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, true
			}
		}
	}
	return "", false
}

func runArtifactCheck(out io.Writer, path string) error {
	fmt.Fprintf(out, "Artifact validation: %s\n", path)

	result, err := manifest.ValidateFile(path)
	if err != nil {
		fmt.Fprintf(out, "  [FAIL] %v\n", err)
		return fmt.Errorf("artifact validation failed: %w", err)
	}

	if result.Valid {
		if filepath.Base(path) == registry.IndexFile {
			fmt.Fprintln(out, "  [ OK ] Valid registry index")
			return nil
		}
		data, err := os.ReadFile(path)
		if err == nil {
			if item, err := registry.ParseItem(data); err == nil {
				fmt.Fprintf(out, "  [ OK ] Valid %s %s: %s\n", item.Framework, item.Type, item.Name)
				return nil
			}
		}
		fmt.Fprintln(out, "  [ OK ] Valid artifact")
		return nil
	}

	fmt.Fprintf(out, "  [FAIL] %d validation issue(s):\n", len(result.Issues))
	for _, issue := range result.Issues {
		fmt.Fprintf(out, "    - %s\n", issue)
	}
	return fmt.Errorf("artifact %s has %d validation issue(s)", path, len(result.Issues))
}
