package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/animkit-dev/animkit/internal/config"
	"github.com/animkit-dev/animkit/internal/registry"
)

var (
	listFramework string
	listLocal     bool
	listJSON      bool
	listCwd       string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List animations published in the registry",
	Long:  `List the animations in the registry index, optionally for a single framework.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVarP(&listFramework, "framework", "f", "", "Filter by framework (nextjs, react, vue, angular)")
	listCmd.Flags().BoolVar(&listLocal, "local", false, "Read the local registry mirror")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&listCwd, "cwd", "", "Project root (default: current directory)")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	if listFramework != "" && !registry.IsFramework(listFramework) {
		return fmt.Errorf("unsupported framework %q", listFramework)
	}
	idx, err := loadIndex(cmd, listCwd, listLocal)
	if err != nil {
		return err
	}

	animations := idx.ForFramework(listFramework)
	if len(animations) == 0 {
		if listFramework != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "No animations published for %s.\n", listFramework)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "The registry has no animations yet.")
		}
		return nil
	}

	if listJSON {
		return printJSON(cmd, animations)
	}
	return printAnimationTable(cmd, animations)
}

// loadIndex fetches index.json from the project's registry.
func loadIndex(cmd *cobra.Command, cwd string, local bool) (*registry.Index, error) {
	root, err := projectRoot(cwd)
	if err != nil {
		return nil, err
	}
	project, err := config.LoadProject(root)
	if err != nil {
		return nil, err
	}
	idx, err := newClient(root, project, local).FetchIndex(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("loading registry index: %w", err)
	}
	return idx, nil
}

func printAnimationTable(cmd *cobra.Command, animations []registry.Animation) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tFRAMEWORK\tCATEGORY\tDIFFICULTY\tDESCRIPTION")
	for _, a := range animations {
		category := a.Category
		if category == "" {
			category = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", a.Name, a.Framework, category, a.Difficulty, truncate(a.Description, 60))
	}
	return w.Flush()
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
