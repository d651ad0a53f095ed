package analyzer

import (
	"regexp"
)

// parentRelativePattern matches quoted specifiers that climb out of a role
// folder into a sibling one: "../lib/utils", "../../hooks/use-x", "../ui/button".
var parentRelativePattern = regexp.MustCompile(`(['"])(?:\.\./)+(lib|hooks|ui)/([^'"\n]+)(['"])`)

var aliasRoots = map[string]string{
	"lib":   "@/lib/",
	"hooks": "@/hooks/",
	"ui":    "@/components/ui/",
}

// TransformImports rewrites parent-relative imports of sibling role folders
// into the canonical internal alias, so artifacts stay valid wherever they
// are installed. The rewrite is deterministic and idempotent.
func TransformImports(src string) string {
	return parentRelativePattern.ReplaceAllStringFunc(src, func(m string) string {
		g := parentRelativePattern.FindStringSubmatch(m)
		return g[1] + aliasRoots[g[2]] + g[3] + g[4]
	})
}
