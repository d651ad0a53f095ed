package registry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/animkit-dev/animkit/internal/analyzer"
)

// SourceFile is one input to the assembler.
type SourceFile struct {
	Framework string
	Type      string
	// RelPath is the path relative to the framework directory, with forward
	// slashes (e.g., "ui/fade-in.tsx"). It is the fallback meta.source.
	RelPath string
	Content string
}

// Assemble turns a source file into a registry item. Parent-relative imports
// of sibling role folders are rewritten to aliases first, so the analysis and
// the shipped content agree. The result is not validated.
func Assemble(src SourceFile) *Item {
	name := ItemName(src.RelPath)
	content := analyzer.TransformImports(src.Content)
	a := analyzer.Analyze(content, BasePackage(src.Framework), name)
	md := a.Metadata

	description := md.Description
	if description == "" {
		description = fmt.Sprintf("%s %s for %s", name, src.Type, src.Framework)
	}

	source := md.Source
	if source == "" {
		source = filepath.ToSlash(src.RelPath)
	}

	item := &Item{
		Name:        name,
		Type:        src.Type,
		Framework:   src.Framework,
		Description: description,
		Files: []File{{
			Name:    targetFileName(name, src.Type, filepath.Ext(src.RelPath)),
			Content: content,
		}},
		Dependencies:         nonNil(a.Dependencies),
		DevDependencies:      nonNil(a.DevDependencies),
		RegistryDependencies: nonNil(a.RegistryDependencies),
		Meta: Meta{
			Source:     source,
			Category:   md.Category,
			Difficulty: md.Difficulty,
			Tags:       md.Tags,
			DemoURL:    md.DemoURL,
		},
	}
	if c := md.Contributor; c != nil {
		item.Meta.Contributor = &Contributor{
			Name:    c.Name,
			GitHub:  c.GitHub,
			X:       c.X,
			Website: c.Website,
		}
	}
	return item
}

// targetFileName is the shipped file name: libs become "<name>/index<ext>" so
// "@/lib/<name>" resolves after install; everything else keeps "<name><ext>".
func targetFileName(name, typ, ext string) string {
	if typ == TypeLib {
		return name + "/index" + ext
	}
	return name + ext
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// MarshalItem encodes an item as 2-space indented JSON with a trailing
// newline. HTML characters are not escaped so markup stays readable.
func MarshalItem(item *Item) ([]byte, error) {
	return marshalIndent(item)
}

// ParseItem decodes a registry item artifact. It does not validate it.
func ParseItem(data []byte) (*Item, error) {
	var item Item
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, fmt.Errorf("parsing registry item: %w", err)
	}
	return &item, nil
}

func marshalIndent(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
