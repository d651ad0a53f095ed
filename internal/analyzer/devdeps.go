package analyzer

import (
	"regexp"
	"strings"
)

// devPackagePatterns is the allowlist of packages that only belong in
// devDependencies: test frameworks, stories and type stubs.
var devPackagePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^vitest$`),
	regexp.MustCompile(`^jest$`),
	regexp.MustCompile(`^@jest/[\w.-]+$`),
	regexp.MustCompile(`^@testing-library/[\w.-]+$`),
	regexp.MustCompile(`^@playwright/test$`),
	regexp.MustCompile(`^@storybook/[\w.-]+$`),
	regexp.MustCompile(`^@types/[\w.-]+$`),
}

var referenceTypesPattern = regexp.MustCompile(`///\s*<reference\s+types=["']([^"']+)["']\s*/>`)

// IsDevPackage reports whether name matches the dev-tool allowlist.
func IsDevPackage(name string) bool {
	for _, re := range devPackagePatterns {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// DevDependencies returns the sorted dev-only packages referenced by src:
// imported test/story/type packages and triple-slash type references.
func DevDependencies(src string) []string {
	set := make(map[string]bool)
	for _, name := range ExtractPackages(src) {
		if IsDevPackage(name) {
			set[name] = true
		}
	}
	for _, m := range referenceTypesPattern.FindAllStringSubmatch(src, -1) {
		if stub := typesPackage(m[1]); stub != "" {
			set[stub] = true
		}
	}
	return sortedKeys(set)
}

// typesPackage maps a referenced type library to its DefinitelyTyped stub.
// "@scope/name" becomes "@types/scope__name".
func typesPackage(lib string) string {
	name, ok := PackageName(lib)
	if !ok {
		return ""
	}
	if strings.HasPrefix(name, "@types/") {
		return name
	}
	if strings.HasPrefix(name, "@") {
		return "@types/" + strings.Replace(strings.TrimPrefix(name, "@"), "/", "__", 1)
	}
	return "@types/" + name
}
