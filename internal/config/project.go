package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/animkit-dev/animkit/internal/branding"
)

// Project is the content of animkit.json.
type Project struct {
	Framework string          `mapstructure:"framework" json:"framework"`
	Aliases   ProjectAliases  `mapstructure:"aliases" json:"aliases"`
	Registry  ProjectRegistry `mapstructure:"registry" json:"registry"`

	// Path is where the file was (or would be) read from. Found reports
	// whether it existed.
	Path  string `mapstructure:"-" json:"-"`
	Found bool   `mapstructure:"-" json:"-"`
}

// ProjectAliases are the import aliases items are installed under.
type ProjectAliases struct {
	Components string `mapstructure:"components" json:"components"`
	Utils      string `mapstructure:"utils" json:"utils"`
	Hooks      string `mapstructure:"hooks" json:"hooks"`
	Lib        string `mapstructure:"lib" json:"lib"`
}

// ProjectRegistry locates the registry to install from.
type ProjectRegistry struct {
	BaseURL   string `mapstructure:"baseurl" json:"baseUrl"`
	LocalPath string `mapstructure:"localpath" json:"localPath"`
}

// ProjectPath returns the animkit.json path for a project root.
func ProjectPath(root string) string {
	return filepath.Join(root, branding.ProjectConfigFile())
}

// LoadProject reads animkit.json from root, filling unset keys with
// defaults: the detected framework, the standard aliases, the user's
// registry URL and "public/r" as the local mirror. Environment variables
// such as ANIMKIT_FRAMEWORK and ANIMKIT_REGISTRY_BASEURL override the file.
func LoadProject(root string) (*Project, error) {
	path := ProjectPath(root)

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetEnvPrefix(branding.EnvPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	framework, err := DetectFramework(root)
	if err != nil {
		return nil, err
	}
	registryURL := Get(KeyRegistryURL)
	if registryURL == "" {
		registryURL = branding.RegistryURL()
	}

	v.SetDefault("framework", framework)
	v.SetDefault("aliases.components", "@/components/ui")
	v.SetDefault("aliases.utils", "@/lib/utils")
	v.SetDefault("aliases.hooks", "@/hooks")
	v.SetDefault("aliases.lib", "@/lib")
	v.SetDefault("registry.baseurl", registryURL)
	v.SetDefault("registry.localpath", "public/r")

	found := false
	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		found = true
	}

	var p Project
	if err := v.Unmarshal(&p); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	p.Path = path
	p.Found = found
	return &p, nil
}

// SaveProject writes p to root/animkit.json as indented JSON.
func SaveProject(root string, p *Project) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding project config: %w", err)
	}
	path := ProjectPath(root)
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// LocalRoot resolves the local mirror directory against root.
func (p *Project) LocalRoot(root string) string {
	if filepath.IsAbs(p.Registry.LocalPath) {
		return p.Registry.LocalPath
	}
	return filepath.Join(root, p.Registry.LocalPath)
}
