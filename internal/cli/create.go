package cli

import (
	"fmt"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/animkit-dev/animkit/internal/branding"
	"github.com/animkit-dev/animkit/internal/registry"
	"github.com/animkit-dev/animkit/internal/scaffold"
)

var namePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

var (
	createFramework   string
	createType        string
	createRegistryDir string
	createDescription string
	createCategory    string
	createContributor string
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Scaffold a new registry item",
	Long: `Create a new component, hook or lib source file in the registry tree with
its doc-comment tags filled in, then check it the way 'build' will.

Examples:
  animkit create fade-in --framework react
  animkit create use-scroll-progress --framework vue --type hook
  animkit create lerp --framework angular --type lib --category math`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVarP(&createFramework, "framework", "f", "", "Framework (nextjs, react, vue, angular)")
	createCmd.Flags().StringVarP(&createType, "type", "t", registry.TypeComponent, "Item type (component, hook, lib)")
	createCmd.Flags().StringVar(&createRegistryDir, "registry", "registry", "Registry source directory")
	createCmd.Flags().StringVar(&createDescription, "description", "", "Description (@description tag)")
	createCmd.Flags().StringVar(&createCategory, "category", "", "Category (@category tag)")
	createCmd.Flags().StringVar(&createContributor, "contributor", "", "Author name (@contributor tag)")
	_ = createCmd.MarkFlagRequired("framework")
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	name := args[0]
	if err := validateName(name); err != nil {
		return err
	}

	data := scaffold.NewScaffoldData(name, createType, createFramework)
	if createDescription != "" {
		data.Description = createDescription
	}
	data.Category = createCategory
	data.Contributor = createContributor

	result, err := scaffold.Generate(data, createRegistryDir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Created %s %s: %s\n", createFramework, createType, result.Path)
	if deps := result.Item.Dependencies; len(deps) > 0 {
		fmt.Fprintf(out, "  dependencies: %v\n", deps)
	}
	if deps := result.Item.RegistryDependencies; len(deps) > 0 {
		fmt.Fprintf(out, "  registry dependencies: %v\n", deps)
	}
	if len(result.Warnings) > 0 {
		fmt.Fprintln(out, "\nValidation warnings:")
		for _, w := range result.Warnings {
			fmt.Fprintf(out, "  ⚠️  %s\n", w)
		}
	}

	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintf(out, "  1. Edit %s\n", result.Path)
	fmt.Fprintf(out, "  2. Run '%s build' to publish it\n", branding.CLIName())
	return nil
}

func validateName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("invalid name %q: must be lowercase alphanumeric with hyphens, starting with a letter or digit", name)
	}
	return nil
}
