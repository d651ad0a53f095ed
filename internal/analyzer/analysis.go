package analyzer

// Analysis is the full set of facts inferred from one source file.
type Analysis struct {
	Dependencies         []string
	DevDependencies      []string
	RegistryDependencies []string
	Metadata             Metadata
}

// Analyze runs every extractor over src. basePackage is always present in
// Dependencies; packages classified as dev-only are moved to DevDependencies.
// self is the item's own name and never appears as a registry dependency.
func Analyze(src, basePackage, self string) Analysis {
	dev := DevDependencies(src)
	devSet := make(map[string]bool, len(dev))
	for _, d := range dev {
		devSet[d] = true
	}

	var deps []string
	for _, d := range Dependencies(src, basePackage) {
		if !devSet[d] || d == basePackage {
			deps = append(deps, d)
		}
	}

	return Analysis{
		Dependencies:         deps,
		DevDependencies:      dev,
		RegistryDependencies: RegistryDependencies(src, self),
		Metadata:             ExtractMetadata(src),
	}
}
