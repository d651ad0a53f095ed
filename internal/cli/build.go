package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/animkit-dev/animkit/internal/registry"
)

var (
	buildRegistryDir  string
	buildOutputDir    string
	buildStrictCycles bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build registry artifacts from source",
	Long: `Scan the registry source tree (<registry>/<framework>/{ui,lib,hooks}/), turn every
source file into a validated registry item at <output>/<framework>/<name>.json, and
write the aggregate <output>/index.json.

Unreadable files are reported and skipped. A schema violation aborts the build.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&buildRegistryDir, "registry", "registry", "Registry source directory")
	buildCmd.Flags().StringVarP(&buildOutputDir, "output", "o", "public/r", "Artifact output directory")
	buildCmd.Flags().BoolVar(&buildStrictCycles, "strict-cycles", false, "Fail on registry dependency cycles")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	builder := registry.NewBuilder(registry.BuildOptions{
		RegistryDir:  buildRegistryDir,
		OutputDir:    buildOutputDir,
		StrictCycles: buildStrictCycles,
	}, logger)

	result, err := builder.Build(cmd.Context())
	if err != nil {
		var schemaErr *registry.SchemaError
		if errors.As(err, &schemaErr) {
			fmt.Fprintf(out, "✗ %s failed schema validation:\n", schemaErr.File)
			for _, issue := range schemaErr.Issues {
				fmt.Fprintf(out, "    %s\n", issue)
			}
			return fmt.Errorf("build aborted: invalid registry item %s", schemaErr.File)
		}
		return err
	}

	for _, dir := range result.Skipped {
		fmt.Fprintf(out, "  ⚠️  skipped %s/: not a supported framework\n", dir)
	}
	for _, fr := range result.Frameworks {
		mark := "✓"
		if fr.Failed > 0 {
			mark = "✗"
		}
		fmt.Fprintf(out, "  %s %s: %d items", mark, fr.Framework, len(fr.Written))
		if fr.Failed > 0 {
			fmt.Fprintf(out, ", %d failed", fr.Failed)
		}
		fmt.Fprintln(out)
		for _, cycle := range fr.Cycles {
			fmt.Fprintf(out, "    ⚠️  dependency cycle: %s\n", strings.Join(cycle, " -> "))
		}
	}

	fmt.Fprintln(out)
	stats := result.Index.Stats
	fmt.Fprintf(out, "✓ Built %d items (%d components, %d utilities) for %d frameworks.\n",
		result.Written(), stats.TotalComponents, stats.TotalUtilities, stats.TotalFrameworks)
	if n := result.Failed(); n > 0 {
		fmt.Fprintf(out, "  %d source files could not be processed; run with --verbose for details.\n", n)
	}
	fmt.Fprintf(out, "  Index written to %s\n", result.IndexPath)
	return nil
}
