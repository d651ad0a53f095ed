package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/animkit-dev/animkit/internal/registry"
	"github.com/animkit-dev/animkit/internal/search"
)

var (
	searchFramework string
	searchLocal     bool
	searchJSON      bool
	searchLimit     int
	searchCwd       string
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the registry for animations",
	Long: `Fuzzy-search animation names, categories, tags and descriptions in the
registry index.

Examples:
  animkit search fade
  animkit search "scroll reveal" --framework vue`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchFramework, "framework", "f", "", "Limit results to a framework")
	searchCmd.Flags().BoolVar(&searchLocal, "local", false, "Search the local registry mirror")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output in JSON format")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 20, "Maximum number of results")
	searchCmd.Flags().StringVar(&searchCwd, "cwd", "", "Project root (default: current directory)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	idx, err := loadIndex(cmd, searchCwd, searchLocal)
	if err != nil {
		return err
	}

	results := search.Search(idx.Animations, query, searchFramework)
	if searchLimit > 0 && len(results) > searchLimit {
		results = results[:searchLimit]
	}

	if len(results) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No animations match %q.\n", query)
		if s := search.Suggest(search.Names(idx.ForFramework(searchFramework)), query, 3); len(s) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Did you mean: %s?\n", strings.Join(s, ", "))
		}
		return nil
	}

	animations := make([]registry.Animation, len(results))
	for i, r := range results {
		animations[i] = r.Animation
	}
	if searchJSON {
		return printJSON(cmd, animations)
	}
	return printAnimationTable(cmd, animations)
}
