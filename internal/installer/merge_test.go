package installer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/animkit-dev/animkit/internal/analyzer"
)

const existingUtils = `import { clsx, type ClassValue } from "clsx"
import { twMerge } from "tailwind-merge"

// customized by the user
export function cn(...inputs: ClassValue[]) {
  return twMerge(clsx(inputs, "custom"))
}
`

const incomingUtils = `import { clsx, type ClassValue } from "clsx"
import { twMerge } from "tailwind-merge"

export function cn(...inputs: ClassValue[]) {
  return twMerge(clsx(inputs))
}

export const lerp = (a: number, b: number, t: number) => a + (b - a) * t

export function clamp(v: number, min: number, max: number) {
  return Math.min(Math.max(v, min), max)
}
`

func TestMergeContentAppendsMissingOnly(t *testing.T) {
	merged, added, unmerged := MergeContent(existingUtils, incomingUtils)

	assert.Equal(t, []string{"lerp", "clamp"}, added)
	assert.Empty(t, unmerged)
	assert.True(t, strings.HasPrefix(merged, strings.TrimRight(existingUtils, "\n")), "existing content must be preserved verbatim")
	assert.Contains(t, merged, `clsx(inputs, "custom")`)
	assert.Equal(t, 1, strings.Count(merged, "export function cn"))
	assert.Contains(t, merged, "\n\nexport const lerp = (a: number, b: number, t: number) => a + (b - a) * t\n\nexport function clamp(")
	assert.True(t, strings.HasSuffix(merged, "}\n"))
}

func TestMergeContentNothingMissing(t *testing.T) {
	merged, added, _ := MergeContent(incomingUtils, existingUtils)
	assert.Empty(t, added)
	assert.Equal(t, incomingUtils, merged)
}

func TestMergeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lib", "utils.ts")

	res, err := MergeFile(path, existingUtils, false, false)
	require.NoError(t, err)
	assert.Equal(t, ActionCreated, res.Action)

	res, err = MergeFile(path, incomingUtils, false, false)
	require.NoError(t, err)
	assert.Equal(t, ActionMerged, res.Action)
	assert.Equal(t, []string{"lerp", "clamp"}, res.Added)

	res, err = MergeFile(path, incomingUtils, false, false)
	require.NoError(t, err)
	assert.Equal(t, ActionSkipped, res.Action)

	res, err = MergeFile(path, incomingUtils, true, false)
	require.NoError(t, err)
	assert.Equal(t, ActionCreated, res.Action)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, incomingUtils, string(data))
}

func TestMergeFileDryRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "utils.ts")
	require.NoError(t, os.WriteFile(path, []byte(existingUtils), 0644))

	res, err := MergeFile(path, incomingUtils, false, true)
	require.NoError(t, err)
	assert.Equal(t, ActionMerged, res.Action)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, existingUtils, string(data))

	res, err = MergeFile(filepath.Join(t.TempDir(), "new.ts"), incomingUtils, false, true)
	require.NoError(t, err)
	assert.Equal(t, ActionCreated, res.Action)
	assert.NoFileExists(t, res.Path)
}

func TestMergeContentObjectReturnType(t *testing.T) {
	incoming := existingUtils + "\nexport function box(w: number): { w: number; h: number } {\n  return { w, h: w }\n}\n"

	merged, added, unmerged := MergeContent(existingUtils, incoming)
	assert.Equal(t, []string{"box"}, added)
	assert.Empty(t, unmerged)
	assert.True(t, strings.HasSuffix(merged, "\n\nexport function box(w: number): { w: number; h: number } {\n  return { w, h: w }\n}\n"))
}

func TestMergeContentRegexpLiteral(t *testing.T) {
	incoming := existingUtils + "\nexport function strip(s: string) {\n  return s.replace(/[{]/g, \"\")\n}\n"

	merged, added, unmerged := MergeContent(existingUtils, incoming)
	assert.Equal(t, []string{"strip"}, added)
	assert.Empty(t, unmerged)
	assert.Contains(t, merged, "return s.replace(/[{]/g, \"\")\n}\n")
}

func TestMergeFileReportsUnextractable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "utils.ts")
	require.NoError(t, os.WriteFile(path, []byte(existingUtils), 0644))
	incoming := incomingUtils + "\nexport function broken() {\n  return 1\n"

	res, err := MergeFile(path, incoming, false, false)
	require.NoError(t, err)
	assert.Equal(t, ActionMerged, res.Action)
	assert.Equal(t, []string{"lerp", "clamp"}, res.Added)
	assert.Equal(t, []string{"broken"}, res.Unmerged)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "broken")
}

var helperBindings = map[string]string{
	"cn":     "export function cn(...a: string[]) {\n  return a.join(\" \")\n}",
	"lerp":   "export const lerp = (a: number, b: number, t: number) => a + (b - a) * t",
	"clamp":  "export function clamp(v: number, lo: number, hi: number) {\n  if (v < lo) { return lo }\n  return v > hi ? hi : v\n}",
	"noop":   "export const noop = () => {}",
	"sleep":  "export async function sleep(ms: number) {\n  return new Promise((r) => setTimeout(r, ms))\n}",
	"ease":   "export const ease = function (t: number) {\n  return t * t\n};",
}

func helperFile(t *rapid.T, label string) string {
	names := rapid.SliceOfDistinct(rapid.SampledFrom([]string{"cn", "lerp", "clamp", "noop", "sleep", "ease"}), rapid.ID[string]).Draw(t, label)
	parts := []string{`import { clsx } from "clsx"`}
	for _, n := range names {
		parts = append(parts, helperBindings[n])
	}
	return strings.Join(parts, "\n\n") + "\n"
}

func TestMergeProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		existing := helperFile(t, "existing")
		incoming := helperFile(t, "incoming")

		merged, added, unmerged := MergeContent(existing, incoming)
		if len(unmerged) != 0 {
			t.Fatalf("bindings %v could not be extracted", unmerged)
		}

		// Existing bindings are kept verbatim and never duplicated.
		if !strings.HasPrefix(merged, strings.TrimRight(existing, "\n")) {
			t.Fatalf("existing content altered:\n%s", merged)
		}
		names := analyzer.BindingNames(merged)
		seen := make(map[string]bool)
		for _, n := range names {
			if seen[n] {
				t.Fatalf("binding %q duplicated:\n%s", n, merged)
			}
			seen[n] = true
		}

		// Every incoming binding is now present.
		for _, n := range analyzer.BindingNames(incoming) {
			if !seen[n] {
				t.Fatalf("binding %q missing after merge:\n%s", n, merged)
			}
		}
		if len(names) != len(analyzer.BindingNames(existing))+len(added) {
			t.Fatalf("added %v but found %v", added, names)
		}

		// Merging the same content again is a no-op.
		again, more, _ := MergeContent(merged, incoming)
		if len(more) != 0 || again != merged {
			t.Fatalf("merge is not idempotent, second pass added %v", more)
		}
	})
}
