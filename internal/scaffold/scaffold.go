package scaffold

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/animkit-dev/animkit/internal/registry"
)

//go:embed templates
var templateFS embed.FS

// ScaffoldData holds all template variables available to scaffold templates.
type ScaffoldData struct {
	Name        string // e.g., "fade-in"
	PascalName  string // Derived: "FadeIn"
	CamelName   string // Derived: "fadeIn"
	Framework   string
	Type        string
	Description string
	Category    string
	Contributor string
	UseClient   bool // Next.js components start with "use client"
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	Path     string         // file written
	Item     *registry.Item // item the builder would publish for it
	Warnings []string
}

// NewScaffoldData creates a ScaffoldData with derived fields populated.
func NewScaffoldData(name, typeName, framework string) *ScaffoldData {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_' || r == '.'
	})
	title := cases.Title(language.English)
	var pascal strings.Builder
	for _, w := range words {
		pascal.WriteString(title.String(w))
	}

	d := &ScaffoldData{
		Name:       name,
		PascalName: pascal.String(),
		Framework:  framework,
		Type:       typeName,
		UseClient:  framework == registry.FrameworkNextJS && typeName == registry.TypeComponent,
	}
	if len(words) > 0 {
		d.CamelName = strings.ToLower(words[0]) + strings.TrimPrefix(d.PascalName, title.String(words[0]))
	}
	d.Description = fmt.Sprintf("%s %s for %s", name, typeName, framework)
	return d
}

// templateSetName returns the embedded directory holding the templates for
// a framework.
func templateSetName(framework string) string {
	switch framework {
	case registry.FrameworkVue:
		return "vue"
	case registry.FrameworkAngular:
		return "angular"
	default:
		return "tsx"
	}
}

// templatePath finds the template for data.Type, returning its embedded path
// and the extension of the file it renders.
func templatePath(data *ScaffoldData) (string, string, error) {
	dir := path.Join("templates", templateSetName(data.Framework))
	if data.Type == registry.TypeLib {
		dir = path.Join("templates", "shared")
	}
	entries, err := fs.ReadDir(templateFS, dir)
	if err != nil {
		return "", "", fmt.Errorf("template set %q not found: %w", dir, err)
	}
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), ".tmpl")
		ext := path.Ext(name)
		if strings.TrimSuffix(name, ext) == data.Type {
			return path.Join(dir, e.Name()), ext, nil
		}
	}
	return "", "", fmt.Errorf("no %s template for %s", data.Type, data.Framework)
}

// Generate renders a new source file into registryDir and reports how the
// builder sees it. Schema violations are returned as warnings, not errors,
// so the author can fix the file before the next build. An existing file is
// never overwritten.
func Generate(data *ScaffoldData, registryDir string) (*Result, error) {
	if !registry.IsFramework(data.Framework) {
		return nil, fmt.Errorf("unknown framework %q (known: %s)", data.Framework, strings.Join(registry.Frameworks, ", "))
	}
	role := registry.RoleFolder(data.Type)
	if role == "" {
		return nil, fmt.Errorf("unknown type %q", data.Type)
	}
	if data.Name == "" || strings.ContainsAny(data.Name, `/\`) || strings.HasPrefix(data.Name, ".") {
		return nil, fmt.Errorf("invalid name %q", data.Name)
	}

	tmplPath, ext, err := templatePath(data)
	if err != nil {
		return nil, err
	}
	tmplBytes, err := fs.ReadFile(templateFS, tmplPath)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", tmplPath, err)
	}

	// Go's {{ }} collides with Vue and Angular template syntax.
	tmpl, err := template.New(path.Base(tmplPath)).Delims("[[", "]]").Parse(string(tmplBytes))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", tmplPath, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", tmplPath, err)
	}

	outDir := filepath.Join(registryDir, data.Framework, role)
	outPath := filepath.Join(outDir, data.Name+ext)
	if _, err := os.Stat(outPath); err == nil {
		return nil, fmt.Errorf("%s already exists; remove it first", outPath)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", outPath, err)
	}

	result := &Result{Path: outPath}

	// Assemble and validate the way the builder will.
	item := registry.Assemble(registry.SourceFile{
		Framework: data.Framework,
		Type:      data.Type,
		RelPath:   role + "/" + data.Name + ext,
		Content:   buf.String(),
	})
	result.Item = item

	if err := registry.ValidateItem(item, outPath); err != nil {
		var schemaErr *registry.SchemaError
		if !errors.As(err, &schemaErr) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Could not validate item: %v", err))
			return result, nil
		}
		for _, issue := range schemaErr.Issues {
			result.Warnings = append(result.Warnings, issue.String())
		}
	}

	return result, nil
}
