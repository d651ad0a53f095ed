package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransformImports(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lib", `import { cn } from "../lib/utils"`, `import { cn } from "@/lib/utils"`},
		{"deep lib", `import { cn } from '../../lib/utils'`, `import { cn } from '@/lib/utils'`},
		{"hooks", `import { useX } from "../hooks/use-x"`, `import { useX } from "@/hooks/use-x"`},
		{"ui", `import Button from "../ui/button"`, `import Button from "@/components/ui/button"`},
		{"sibling untouched", `import a from "./local"`, `import a from "./local"`},
		{"package untouched", `import React from "react"`, `import React from "react"`},
		{"other folder untouched", `import a from "../styles/a.css"`, `import a from "../styles/a.css"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TransformImports(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, TransformImports(got), "transform must be idempotent")
		})
	}
}
