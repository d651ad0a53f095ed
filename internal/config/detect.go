package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// frameworkMarkers map a package to the framework it implies, most specific
// first: a Next.js app also depends on react.
var frameworkMarkers = []struct {
	pkg       string
	framework string
}{
	{"next", "nextjs"},
	{"@angular/core", "angular"},
	{"nuxt", "vue"},
	{"vue", "vue"},
	{"react", "react"},
}

// DetectFramework infers the framework from root/package.json. It returns
// "" when there is no package.json or no marker package.
func DetectFramework(root string) (string, error) {
	data, err := os.ReadFile(filepath.Join(root, "package.json"))
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading package.json: %w", err)
	}

	var pj struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal(data, &pj); err != nil {
		return "", fmt.Errorf("parsing package.json: %w", err)
	}

	for _, m := range frameworkMarkers {
		if _, ok := pj.Dependencies[m.pkg]; ok {
			return m.framework, nil
		}
		if _, ok := pj.DevDependencies[m.pkg]; ok {
			return m.framework, nil
		}
	}
	return "", nil
}
