package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/animkit-dev/animkit/internal/branding"
	"github.com/animkit-dev/animkit/internal/config"
	"github.com/animkit-dev/animkit/internal/registry"
)

var (
	versionShort bool
	versionJSON  bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print version number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print build and registry format info as JSON")
	rootCmd.AddCommand(versionCmd)
}

// versionInfo describes the binary and the registry format it reads and
// writes.
type versionInfo struct {
	Version      string   `json:"version"`
	Commit       string   `json:"commit"`
	Date         string   `json:"date"`
	IndexVersion string   `json:"indexVersion"`
	Frameworks   []string `json:"frameworks"`
	Registry     string   `json:"registry"`
}

func currentVersionInfo() versionInfo {
	reg := config.Get(config.KeyRegistryURL)
	if reg == "" {
		reg = branding.RegistryURL()
	}
	return versionInfo{
		Version:      buildVersion,
		Commit:       buildCommit,
		Date:         buildDate,
		IndexVersion: registry.IndexVersion,
		Frameworks:   registry.Frameworks,
		Registry:     reg,
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if versionShort {
			fmt.Fprintln(out, buildVersion)
			return nil
		}

		info := currentVersionInfo()
		if versionJSON {
			data, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling version info: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		fmt.Fprintf(out, "%s %s (commit %s, built %s)\n", branding.CLIName(), info.Version, info.Commit, info.Date)
		fmt.Fprintf(out, "  index format: %s\n", info.IndexVersion)
		fmt.Fprintf(out, "  frameworks:   %s\n", strings.Join(info.Frameworks, ", "))
		fmt.Fprintf(out, "  registry:     %s\n", info.Registry)
		return nil
	},
}
