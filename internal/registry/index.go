package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/animkit-dev/animkit/internal/manifest"
)

// DefaultDifficulty is used for index entries whose item declares none.
const DefaultDifficulty = "beginner"

// FrameworkSlice is one framework's contribution to the index, rebuilt from
// the artifacts written for it.
type FrameworkSlice struct {
	Framework  string
	Animations []Animation
	Components int
	Utilities  int
}

// Summarize returns the index entry for a component item. Libs and hooks
// have no entry.
func Summarize(item *Item) (Animation, bool) {
	if item.Type != TypeComponent {
		return Animation{}, false
	}

	base := BasePackage(item.Framework)
	libraries := []string{}
	for _, dep := range item.Dependencies {
		if dep != base {
			libraries = append(libraries, dep)
		}
	}

	difficulty := item.Meta.Difficulty
	if difficulty == "" {
		difficulty = DefaultDifficulty
	}

	tags := item.Meta.Tags
	if tags == nil {
		tags = []string{}
	}

	return Animation{
		ID:          item.Name,
		Name:        item.Name,
		Framework:   item.Framework,
		Description: item.Description,
		Category:    item.Meta.Category,
		Libraries:   libraries,
		Sources:     []string{item.Meta.Source},
		Difficulty:  difficulty,
		Tags:        tags,
		DemoURL:     item.Meta.DemoURL,
	}, true
}

// ReadFrameworkSlice reads back the given artifacts and summarizes them.
// index.json is never treated as an item.
func ReadFrameworkSlice(framework string, artifacts []string) (*FrameworkSlice, error) {
	slice := &FrameworkSlice{Framework: framework, Animations: []Animation{}}
	for _, path := range artifacts {
		if filepath.Base(path) == IndexFile {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading artifact %s: %w", path, err)
		}
		item, err := ParseItem(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		switch item.Type {
		case TypeComponent:
			slice.Components++
		case TypeLib, TypeHook:
			slice.Utilities++
		}
		if a, ok := Summarize(item); ok {
			slice.Animations = append(slice.Animations, a)
		}
	}
	return slice, nil
}

// NewIndex aggregates framework slices into the catalog.
func NewIndex(slices []*FrameworkSlice, now time.Time) *Index {
	idx := &Index{
		Version:     IndexVersion,
		Frameworks:  []string{},
		LastUpdated: now.UTC().Format(time.RFC3339),
		Animations:  []Animation{},
	}
	for _, s := range slices {
		idx.Frameworks = append(idx.Frameworks, s.Framework)
		idx.Animations = append(idx.Animations, s.Animations...)
		idx.Stats.TotalComponents += s.Components
		idx.Stats.TotalUtilities += s.Utilities
	}
	idx.Stats.TotalFrameworks = len(slices)
	return idx
}

// WriteIndex validates idx and writes it to path.
func WriteIndex(path string, idx *Index) error {
	data, err := marshalIndent(idx)
	if err != nil {
		return fmt.Errorf("encoding index: %w", err)
	}

	result, err := manifest.ValidateIndex(data)
	if err != nil {
		return fmt.Errorf("validating index: %w", err)
	}
	if !result.Valid {
		return &SchemaError{File: path, Issues: result.Issues}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing index: %w", err)
	}
	return nil
}

// ParseIndex decodes an index.json document.
func ParseIndex(data []byte) (*Index, error) {
	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("parsing index: %w", err)
	}
	return &idx, nil
}

// LoadIndex reads and decodes an index.json file.
func LoadIndex(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading index: %w", err)
	}
	return ParseIndex(data)
}

// Find returns the animations matching name, optionally limited to one
// framework.
func (idx *Index) Find(name, framework string) []Animation {
	var out []Animation
	for _, a := range idx.Animations {
		if a.Name == name && (framework == "" || a.Framework == framework) {
			out = append(out, a)
		}
	}
	return out
}

// ForFramework returns the animations published for framework. An empty
// framework returns all of them.
func (idx *Index) ForFramework(framework string) []Animation {
	if framework == "" {
		return idx.Animations
	}
	var out []Animation
	for _, a := range idx.Animations {
		if a.Framework == framework {
			out = append(out, a)
		}
	}
	return out
}
