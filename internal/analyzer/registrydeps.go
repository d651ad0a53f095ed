package analyzer

import (
	"regexp"
)

// registryPatterns map internal alias specifiers to the registry item they
// point at. Group 1 is the item name.
var registryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[@~]/lib/([\w-]+)(?:/index)?(?:\.(?:ts|tsx|js|jsx))?$`),
	regexp.MustCompile(`^[@~]/components/ui/([\w-]+)(?:\.(?:ts|tsx|js|jsx|vue))?$`),
	regexp.MustCompile(`^[@~]/hooks/([\w-]+)(?:\.(?:ts|tsx|js|jsx))?$`),
}

// RegistryDependencies returns the sorted names of other registry items that
// src imports through an internal alias. self is excluded.
func RegistryDependencies(src, self string) []string {
	set := make(map[string]bool)
	for _, spec := range ExtractImports(src) {
		for _, re := range registryPatterns {
			m := re.FindStringSubmatch(spec)
			if m == nil {
				continue
			}
			if m[1] != self {
				set[m[1]] = true
			}
			break
		}
	}
	return sortedKeys(set)
}
