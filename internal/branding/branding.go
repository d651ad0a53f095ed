// Package branding provides compile-time identity values for the CLI.
//
// branding.yaml is embedded with //go:embed so a fork only has to edit that
// file to rename the binary, the home directory and the env prefix.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName       string `yaml:"cli_name"`
	DisplayName   string `yaml:"display_name"`
	Description   string `yaml:"description"`
	HomeDir       string `yaml:"home_dir"`
	EnvPrefix     string `yaml:"env_prefix"`
	GoModule      string `yaml:"go_module"`
	GitHubRepo    string `yaml:"github_repo"`
	RegistryURL   string `yaml:"registry_url"`
	ProjectConfig string `yaml:"project_config"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing or empty.
		defaults = brand{
			CLIName:       "animkit",
			DisplayName:   "AnimKit",
			Description:   "Browse, install, and publish UI animation components",
			HomeDir:       ".animkit",
			EnvPrefix:     "ANIMKIT",
			GoModule:      "github.com/animkit-dev/animkit",
			GitHubRepo:    "animkit-dev/animkit",
			RegistryURL:   "https://animkit.dev/r",
			ProjectConfig: "animkit.json",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "animkit").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".animkit").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "ANIMKIT").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GitHubRepo returns the "owner/repo" string.
func GitHubRepo() string { load(); return defaults.GitHubRepo }

// RegistryURL returns the default remote registry base URL.
func RegistryURL() string { load(); return defaults.RegistryURL }

// ProjectConfigFile returns the file name of the per-project config.
func ProjectConfigFile() string { load(); return defaults.ProjectConfig }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("HOME") → "ANIMKIT_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
