package analyzer

import (
	"regexp"
	"sort"
	"strings"
)

// importPatterns match the module specifier of every import-like statement.
// Group 1 is always the specifier.
var importPatterns = []*regexp.Regexp{
	// import x from "y"; import { a, b } from "y"; import type T from "y"; import "y"
	regexp.MustCompile(`\bimport\s+(?:type\s+)?(?:[\w$*{}\s,]+?\s+from\s+)?['"]([^'"\n]+)['"]`),
	// export { a } from "y"; export * from "y"
	regexp.MustCompile(`\bexport\s+(?:type\s+)?(?:\*|\{[^}]*\})(?:\s+as\s+[\w$]+)?\s+from\s+['"]([^'"\n]+)['"]`),
	// import("y")
	regexp.MustCompile(`\bimport\s*\(\s*['"]([^'"\n]+)['"]\s*\)`),
	// require("y")
	regexp.MustCompile(`\brequire\s*\(\s*['"]([^'"\n]+)['"]\s*\)`),
}

var packageSegment = regexp.MustCompile(`^[A-Za-z0-9][\w.-]*$`)

// ExtractImports returns every module specifier referenced by src, in source
// order. Duplicates are kept.
func ExtractImports(src string) []string {
	type match struct {
		pos  int
		spec string
	}
	var found []match
	seen := make(map[int]bool)
	for _, re := range importPatterns {
		for _, loc := range re.FindAllStringSubmatchIndex(src, -1) {
			if seen[loc[2]] {
				continue
			}
			seen[loc[2]] = true
			found = append(found, match{pos: loc[2], spec: src[loc[2]:loc[3]]})
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].pos < found[j].pos })

	specs := make([]string, len(found))
	for i, m := range found {
		specs[i] = m.spec
	}
	return specs
}

// IsInternal reports whether a specifier is relative or an internal alias.
func IsInternal(spec string) bool {
	switch {
	case strings.HasPrefix(spec, "."), strings.HasPrefix(spec, "/"):
		return true
	case strings.HasPrefix(spec, "@/"), strings.HasPrefix(spec, "~"), strings.HasPrefix(spec, "#"):
		return true
	}
	return false
}

// PackageName maps a module specifier to the installable package it belongs
// to. Scoped specifiers keep "@scope/name"; unscoped keep the first segment.
// It returns false for relative paths, internal aliases, node: builtins, URLs
// and anything that does not look like a package name.
func PackageName(spec string) (string, bool) {
	spec = strings.TrimSpace(spec)
	if spec == "" || IsInternal(spec) {
		return "", false
	}
	if strings.HasPrefix(spec, "node:") || strings.Contains(spec, "://") {
		return "", false
	}

	parts := strings.Split(spec, "/")
	if strings.HasPrefix(spec, "@") {
		if len(parts) < 2 {
			return "", false
		}
		scope := strings.TrimPrefix(parts[0], "@")
		if !packageSegment.MatchString(scope) || !packageSegment.MatchString(parts[1]) {
			return "", false
		}
		return parts[0] + "/" + parts[1], true
	}

	if !packageSegment.MatchString(parts[0]) {
		return "", false
	}
	return parts[0], true
}

// ExtractPackages returns the sorted, deduplicated external packages imported
// by src. The framework base package is not added here.
func ExtractPackages(src string) []string {
	set := make(map[string]bool)
	for _, spec := range ExtractImports(src) {
		if name, ok := PackageName(spec); ok {
			set[name] = true
		}
	}
	return sortedKeys(set)
}

// Dependencies returns ExtractPackages plus the framework base package.
func Dependencies(src, basePackage string) []string {
	set := make(map[string]bool)
	for _, name := range ExtractPackages(src) {
		set[name] = true
	}
	if basePackage != "" {
		set[basePackage] = true
	}
	return sortedKeys(set)
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
