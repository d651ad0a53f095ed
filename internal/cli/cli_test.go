package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/animkit-dev/animkit/internal/config"
	"github.com/animkit-dev/animkit/internal/installer"
	"github.com/animkit-dev/animkit/internal/registry"
)

const fadeInSource = `import { motion } from "framer-motion";
import { cn } from "../lib/utils";

/**
 * @description Fades its children in
 * @category entrance
 */
export function FadeIn({ className }: { className?: string }) {
  return <motion.div className={cn("block", className)} />;
}
`

const utilsSource = `export function cn(...inputs: string[]): string {
  return inputs.filter(Boolean).join(" ");
}
`

// execute runs the root command with args and returns its stdout. Flags are
// reset to their defaults first because cobra commands are package globals.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func setupHome(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// setupProject builds a one-framework registry into a fresh project's local
// mirror and returns the project root.
func setupProject(t *testing.T) string {
	t.Helper()
	setupHome(t)

	src := t.TempDir()
	writeTestFile(t, filepath.Join(src, "react", "ui", "fade-in.tsx"), fadeInSource)
	writeTestFile(t, filepath.Join(src, "react", "lib", "utils.ts"), utilsSource)

	project := t.TempDir()
	writeTestFile(t, filepath.Join(project, "package.json"),
		`{"dependencies": {"react": "19.0.0", "framer-motion": "11.0.0"}}`)

	out, err := execute(t, "build", "--registry", src, "--output", filepath.Join(project, "public", "r"))
	require.NoError(t, err)
	assert.Contains(t, out, "✓ react: 2 items")
	return project
}

func TestBuildAndInstallLocal(t *testing.T) {
	project := setupProject(t)

	out, err := execute(t, "install", "fade-in", "--local", "--cwd", project)
	require.NoError(t, err)
	assert.Contains(t, out, "Installing for react...")
	assert.Contains(t, out, "✓ Installed 2 items.")

	component, err := os.ReadFile(filepath.Join(project, "components", "ui", "fade-in.tsx"))
	require.NoError(t, err)
	assert.Contains(t, string(component), `from "@/lib/utils"`)

	utils, err := os.ReadFile(filepath.Join(project, "lib", "utils.ts"))
	require.NoError(t, err)
	assert.Equal(t, utilsSource, string(utils))

	// A second run changes nothing.
	out, err = execute(t, "add", "fade-in", "--local", "--cwd", project)
	require.NoError(t, err)
	assert.Contains(t, out, "0 written")
	again, err := os.ReadFile(filepath.Join(project, "components", "ui", "fade-in.tsx"))
	require.NoError(t, err)
	assert.Equal(t, component, again)
}

func TestInstallDryRunWritesNothing(t *testing.T) {
	project := setupProject(t)

	out, err := execute(t, "install", "fade-in", "--local", "--dry-run", "--cwd", project)
	require.NoError(t, err)
	assert.Contains(t, out, "Dry run")
	assert.NoFileExists(t, filepath.Join(project, "components", "ui", "fade-in.tsx"))
	assert.NoFileExists(t, filepath.Join(project, "lib", "utils.ts"))
}

func TestInstallNotFoundSuggests(t *testing.T) {
	project := setupProject(t)

	out, err := execute(t, "install", "fade", "--local", "--cwd", project)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 components failed")
	assert.Contains(t, out, "✗ fade")
	assert.Contains(t, out, "did you mean: fade-in?")
}

func TestInstallUnsupportedFramework(t *testing.T) {
	project := setupProject(t)
	_, err := execute(t, "install", "fade-in", "--local", "--cwd", project, "--framework", "svelte")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported framework")
}

func TestBuildMissingRegistry(t *testing.T) {
	setupHome(t)
	_, err := execute(t, "build", "--registry", filepath.Join(t.TempDir(), "nope"), "--output", t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, registry.ErrRegistryRootMissing))
}

func TestBuildSchemaFailure(t *testing.T) {
	setupHome(t)
	src := t.TempDir()
	writeTestFile(t, filepath.Join(src, "react", "ui", "FadeIn.tsx"), fadeInSource)

	out, err := execute(t, "build", "--registry", src, "--output", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, out, "failed schema validation")
	assert.Contains(t, out, "/name")
}

func TestListAndSearch(t *testing.T) {
	project := setupProject(t)

	out, err := execute(t, "list", "--local", "--cwd", project)
	require.NoError(t, err)
	assert.Contains(t, out, "fade-in")
	assert.Contains(t, out, "entrance")

	out, err = execute(t, "search", "fade", "--local", "--json", "--cwd", project)
	require.NoError(t, err)
	var animations []registry.Animation
	require.NoError(t, json.Unmarshal([]byte(out), &animations))
	require.Len(t, animations, 1)
	assert.Equal(t, "fade-in", animations[0].ID)

	out, err = execute(t, "list", "--local", "--framework", "vue", "--cwd", project)
	require.NoError(t, err)
	assert.Contains(t, out, "No animations published for vue.")
}

func TestInitWritesProjectConfig(t *testing.T) {
	setupHome(t)
	project := t.TempDir()
	writeTestFile(t, filepath.Join(project, "package.json"), `{"dependencies": {"vue": "3.5.0"}}`)

	out, err := execute(t, "init", "--cwd", project, "--utils", "@/utils/cn")
	require.NoError(t, err)
	assert.Contains(t, out, "framework:  vue")

	p, err := config.LoadProject(project)
	require.NoError(t, err)
	assert.True(t, p.Found)
	assert.Equal(t, "vue", p.Framework)
	assert.Equal(t, "@/utils/cn", p.Aliases.Utils)

	_, err = execute(t, "init", "--cwd", project)
	require.Error(t, err, "init must not overwrite without --force")
}

func TestCreate(t *testing.T) {
	setupHome(t)
	dir := t.TempDir()

	out, err := execute(t, "create", "slide-up", "--framework", "vue", "--registry", dir, "--category", "entrance")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Created vue component")
	assert.FileExists(t, filepath.Join(dir, "vue", "ui", "slide-up.vue"))

	_, err = execute(t, "create", "Slide_Up", "--framework", "vue", "--registry", dir)
	require.Error(t, err)
}

func TestDoctorCheckArtifact(t *testing.T) {
	project := setupProject(t)

	out, err := execute(t, "doctor", "--check-artifact", filepath.Join(project, "public", "r", "react", "fade-in.json"))
	require.NoError(t, err)
	assert.Contains(t, out, "[ OK ] Valid react component: fade-in")

	bad := filepath.Join(t.TempDir(), "bad.json")
	writeTestFile(t, bad, `{"name": "x"}`)
	out, err = execute(t, "doctor", "--check-artifact", bad)
	require.Error(t, err)
	assert.Contains(t, out, "[FAIL]")
}

func TestConfigSetGet(t *testing.T) {
	setupHome(t)

	_, err := execute(t, "config", "set", "package_manager", "pnpm")
	require.NoError(t, err)

	out, err := execute(t, "config", "get", "package_manager")
	require.NoError(t, err)
	assert.Equal(t, "pnpm\n", out)

	_, err = execute(t, "config", "get", "colour")
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	setupHome(t)
	buildVersion = "1.2.3"
	out, err := execute(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3\n", strings.TrimLeft(out, " "))
}

func TestVersionJSON(t *testing.T) {
	setupHome(t)
	buildVersion, buildCommit = "1.2.3", "abc123"
	out, err := execute(t, "version", "--json")
	require.NoError(t, err)

	var info versionInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, "abc123", info.Commit)
	assert.Equal(t, registry.IndexVersion, info.IndexVersion)
	assert.Equal(t, registry.Frameworks, info.Frameworks)
	assert.NotEmpty(t, info.Registry)
}

func TestVersionReportsIndexFormat(t *testing.T) {
	setupHome(t)
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "index format: "+registry.IndexVersion)
	assert.Contains(t, out, "frameworks:   nextjs, react, vue, angular")
}

func TestInstallSummaryReportsUnmerged(t *testing.T) {
	var out bytes.Buffer
	printInstallSummary(&out, "/p", &installer.Summary{Items: []installer.ItemResult{{
		Name: "utils",
		Type: registry.TypeLib,
		Files: []installer.FileResult{{
			Path:     "/p/lib/utils.ts",
			Action:   installer.ActionSkipped,
			Unmerged: []string{"strip"},
		}},
	}}})
	assert.Contains(t, out.String(), "could not merge into lib/utils.ts: strip")
}
