package registry

// Item types.
const (
	TypeComponent = "component"
	TypeLib       = "lib"
	TypeHook      = "hook"
)

// Frameworks.
const (
	FrameworkNextJS  = "nextjs"
	FrameworkReact   = "react"
	FrameworkVue     = "vue"
	FrameworkAngular = "angular"
)

// Frameworks lists every framework namespace in canonical order.
var Frameworks = []string{
	FrameworkNextJS,
	FrameworkReact,
	FrameworkVue,
	FrameworkAngular,
}

// IndexVersion is the format version written into index.json.
const IndexVersion = "1.0.0"

// IndexFile is the name of the aggregate catalog under the output root.
const IndexFile = "index.json"

// Item is one published unit of distribution for a single framework.
type Item struct {
	Schema               string   `json:"$schema,omitempty"`
	Name                 string   `json:"name"`
	Type                 string   `json:"type"`
	Framework            string   `json:"framework"`
	Description          string   `json:"description"`
	Files                []File   `json:"files"`
	Dependencies         []string `json:"dependencies"`
	DevDependencies      []string `json:"devDependencies"`
	RegistryDependencies []string `json:"registryDependencies"`
	Meta                 Meta     `json:"meta"`
}

// File is a single source file shipped with an item.
type File struct {
	Name    string `json:"name"`    // relative target path, e.g. "fade-in.tsx" or "utils/index.ts"
	Content string `json:"content"` // full source text
}

// Meta carries provenance and catalog facts about an item.
type Meta struct {
	Source      string       `json:"source"`
	Category    string       `json:"category,omitempty"`
	Contributor *Contributor `json:"contributor,omitempty"`
	Difficulty  string       `json:"difficulty,omitempty"`
	Tags        []string     `json:"tags,omitempty"`
	DemoURL     string       `json:"demoUrl,omitempty"`
}

// Contributor identifies the author of an item. It is nil when no
// contributor tag was present.
type Contributor struct {
	Name    string `json:"name,omitempty"`
	GitHub  string `json:"github,omitempty"`
	X       string `json:"x,omitempty"`
	Website string `json:"website,omitempty"`
}

// Index is the aggregate catalog written to <output>/index.json.
type Index struct {
	Version     string      `json:"version"`
	Frameworks  []string    `json:"frameworks"`
	Stats       Stats       `json:"stats"`
	LastUpdated string      `json:"lastUpdated"`
	Animations  []Animation `json:"animations"`
}

// Stats summarizes a build.
type Stats struct {
	TotalComponents int `json:"totalComponents"`
	TotalUtilities  int `json:"totalUtilities"`
	TotalFrameworks int `json:"totalFrameworks"`
}

// Animation is a denormalized summary of a component item, used for lookups
// without fetching every item.
type Animation struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Framework   string   `json:"framework"`
	Description string   `json:"description"`
	Category    string   `json:"category,omitempty"`
	Libraries   []string `json:"libraries"`
	Sources     []string `json:"sources"`
	Difficulty  string   `json:"difficulty"`
	Tags        []string `json:"tags"`
	DemoURL     string   `json:"demoUrl,omitempty"`
}

// BasePackage returns the package every item of the framework depends on.
func BasePackage(framework string) string {
	switch framework {
	case FrameworkNextJS:
		return "next"
	case FrameworkReact:
		return "react"
	case FrameworkVue:
		return "vue"
	case FrameworkAngular:
		return "@angular/core"
	default:
		return ""
	}
}

// IsFramework reports whether name is a known framework namespace.
func IsFramework(name string) bool {
	for _, f := range Frameworks {
		if f == name {
			return true
		}
	}
	return false
}
