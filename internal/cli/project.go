package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/animkit-dev/animkit/internal/branding"
	"github.com/animkit-dev/animkit/internal/client"
	"github.com/animkit-dev/animkit/internal/config"
	"github.com/animkit-dev/animkit/internal/registry"
)

// projectRoot resolves --cwd, defaulting to the working directory.
func projectRoot(cwd string) (string, error) {
	if cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolving working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(cwd)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", cwd, err)
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", abs)
	}
	return abs, nil
}

// resolveFramework picks the --framework flag over the project config and
// checks that the result is supported.
func resolveFramework(flag string, project *config.Project) (string, error) {
	framework := flag
	if framework == "" {
		framework = project.Framework
	}
	if framework == "" {
		return "", fmt.Errorf("could not detect the project framework; pass --framework or run '%s init'", branding.CLIName())
	}
	if !registry.IsFramework(framework) {
		return "", fmt.Errorf("unsupported framework %q (supported: %s)", framework, strings.Join(registry.Frameworks, ", "))
	}
	return framework, nil
}

// newClient builds the registry client for a project. local reads the
// project's local mirror instead of the remote registry.
func newClient(root string, project *config.Project, local bool) client.Client {
	return client.New(client.Config{
		Local:     local,
		BaseURL:   project.Registry.BaseURL,
		LocalRoot: project.LocalRoot(root),
		Options: []client.Option{
			client.WithUserAgent(branding.CLIName() + "/" + buildVersion),
		},
	})
}

// relPath shortens path for display when it lies under root.
func relPath(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}
