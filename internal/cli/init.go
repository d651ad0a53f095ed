package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/animkit-dev/animkit/internal/branding"
	"github.com/animkit-dev/animkit/internal/config"
)

var (
	initFramework  string
	initComponents string
	initUtils      string
	initBaseURL    string
	initCwd        string
	initForce      bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write animkit.json for the current project",
	Long: `Create the project config read by 'install'. The framework is detected from
package.json unless --framework is given; aliases and the registry URL default to
the standard layout.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVarP(&initFramework, "framework", "f", "", "Framework (default: detected from package.json)")
	initCmd.Flags().StringVar(&initComponents, "components", "", "Components alias (default: @/components/ui)")
	initCmd.Flags().StringVar(&initUtils, "utils", "", "Utils alias (default: @/lib/utils)")
	initCmd.Flags().StringVar(&initBaseURL, "base-url", "", "Registry base URL")
	initCmd.Flags().StringVar(&initCwd, "cwd", "", "Project root (default: current directory)")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing animkit.json")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	root, err := projectRoot(initCwd)
	if err != nil {
		return err
	}
	project, err := config.LoadProject(root)
	if err != nil {
		return err
	}
	if project.Found && !initForce {
		return fmt.Errorf("%s already exists; use --force to overwrite", project.Path)
	}

	framework, err := resolveFramework(initFramework, project)
	if err != nil {
		return err
	}
	project.Framework = framework
	if initComponents != "" {
		project.Aliases.Components = initComponents
	}
	if initUtils != "" {
		project.Aliases.Utils = initUtils
	}
	if initBaseURL != "" {
		project.Registry.BaseURL = initBaseURL
	}

	if err := config.SaveProject(root, project); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Wrote %s\n", project.Path)
	fmt.Fprintf(out, "  framework:  %s\n", project.Framework)
	fmt.Fprintf(out, "  components: %s\n", project.Aliases.Components)
	fmt.Fprintf(out, "  utils:      %s\n", project.Aliases.Utils)
	fmt.Fprintf(out, "  registry:   %s\n", project.Registry.BaseURL)
	fmt.Fprintf(out, "\nRun '%s add <name>' to install a component.\n", branding.CLIName())
	return nil
}
