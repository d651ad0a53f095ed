//go:build integration

package integration_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	RegistryDir string // registry source tree
	OutputDir   string // built artifacts (public/r)
	ProjectDir  string // a mock consuming project
}

// setupTestEnv creates isolated temp directories and points HOME at one of
// them so user settings never leak into the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		RegistryDir: t.TempDir(),
		OutputDir:   t.TempDir(),
		ProjectDir:  t.TempDir(),
	}
	t.Setenv("HOME", t.TempDir())

	writeFile(t, filepath.Join(env.ProjectDir, "package.json"), `{
  "name": "demo",
  "dependencies": {"react": "19.0.0"}
}
`)
	return env
}

// setupRegistry writes a small source tree: react has a component that uses
// the shared utils and a hook, vue publishes only a component and angular
// has a dependency cycle.
func setupRegistry(t *testing.T, root string) {
	t.Helper()

	writeFile(t, filepath.Join(root, "react", "lib", "utils.ts"), `export function cn(...inputs: string[]): string {
  return inputs.filter(Boolean).join(" ");
}

export const clamp = (v: number, min: number, max: number) => Math.min(Math.max(v, min), max);
`)
	writeFile(t, filepath.Join(root, "react", "hooks", "use-reduced-motion.ts"), `import { useEffect, useState } from "react";

/**
 * @description Tracks prefers-reduced-motion
 */
export function useReducedMotion(): boolean {
  const [reduced, setReduced] = useState(false);
  useEffect(() => {
    setReduced(window.matchMedia("(prefers-reduced-motion: reduce)").matches);
  }, []);
  return reduced;
}
`)
	writeFile(t, filepath.Join(root, "react", "ui", "fade-in.tsx"), `import { motion } from "framer-motion";
import { cn } from "../lib/utils";
import { useReducedMotion } from "../hooks/use-reduced-motion";

/**
 * @description Fades its children in on mount
 * @category entrance
 * @difficulty beginner
 * @tags fade, opacity
 * @contributor Ada Lovelace
 * @github https://github.com/ada
 */
export function FadeIn({ className }: { className?: string }) {
  const reduced = useReducedMotion();
  return <motion.div className={cn("block", className)} animate={{ opacity: reduced ? 1 : [0, 1] }} />;
}
`)
	writeFile(t, filepath.Join(root, "react", "ui", "fade-in.test.tsx"), `import { render } from "@testing-library/react";`)

	writeFile(t, filepath.Join(root, "vue", "ui", "slide-up.vue"), `<!--
  @description Slides content up
  @category entrance
-->
<script setup lang="ts">
import { gsap } from "gsap";
</script>
<template><div><slot /></div></template>
`)

	writeFile(t, filepath.Join(root, "angular", "ui", "ping.ts"), `import { Component } from "@angular/core";
import { pong } from "@/components/ui/pong";

export class Ping {}
`)
	writeFile(t, filepath.Join(root, "angular", "ui", "pong.ts"), `import { Component } from "@angular/core";
import { ping } from "@/components/ui/ping";

export class Pong {}
`)

	// Not a framework: reported and skipped.
	writeFile(t, filepath.Join(root, "svelte", "ui", "x.svelte"), "<div />")
}

// recordingPackages is a PackageInstaller that records calls instead of
// running a package manager.
type recordingPackages struct {
	mu    sync.Mutex
	calls []string
}

func (r *recordingPackages) Install(_ context.Context, _ string, packages []string, dev bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	call := strings.Join(packages, " ")
	if dev {
		call = "dev: " + call
	}
	r.calls = append(r.calls, call)
	return nil
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s", path)
	}
}

func assertNoFile(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected no file at %s", path)
	}
}
