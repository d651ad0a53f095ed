package registry

import (
	"path/filepath"
	"testing"
	"time"
)

func TestSummarize(t *testing.T) {
	item := &Item{
		Name:         "fade-in",
		Type:         TypeComponent,
		Framework:    FrameworkNextJS,
		Description:  "Fade",
		Dependencies: []string{"framer-motion", "gsap", "next"},
		Meta:         Meta{Source: "https://example.com", Category: "text"},
	}

	a, ok := Summarize(item)
	if !ok {
		t.Fatal("expected a summary for a component")
	}
	if a.ID != "fade-in" || a.Name != "fade-in" {
		t.Errorf("ID/Name = %q/%q, want fade-in", a.ID, a.Name)
	}
	if len(a.Libraries) != 2 || a.Libraries[0] != "framer-motion" || a.Libraries[1] != "gsap" {
		t.Errorf("Libraries = %v, want base package removed", a.Libraries)
	}
	if a.Difficulty != DefaultDifficulty {
		t.Errorf("Difficulty = %q, want %q", a.Difficulty, DefaultDifficulty)
	}
	if len(a.Sources) != 1 || a.Sources[0] != "https://example.com" {
		t.Errorf("Sources = %v", a.Sources)
	}
	if a.Tags == nil {
		t.Error("Tags should be an empty slice, not nil")
	}

	if _, ok := Summarize(&Item{Name: "utils", Type: TypeLib}); ok {
		t.Error("lib items must not be summarized")
	}
}

func TestNewIndexAggregates(t *testing.T) {
	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.FixedZone("x", 3600))
	idx := NewIndex([]*FrameworkSlice{
		{Framework: "react", Animations: []Animation{{ID: "a"}}, Components: 1, Utilities: 2},
		{Framework: "vue", Animations: []Animation{{ID: "b"}, {ID: "c"}}, Components: 2, Utilities: 0},
	}, now)

	if idx.Version != IndexVersion {
		t.Errorf("Version = %q", idx.Version)
	}
	if idx.Stats != (Stats{TotalComponents: 3, TotalUtilities: 2, TotalFrameworks: 2}) {
		t.Errorf("Stats = %+v", idx.Stats)
	}
	if len(idx.Animations) != 3 || idx.Animations[0].ID != "a" || idx.Animations[2].ID != "c" {
		t.Errorf("Animations = %+v, want concatenation in framework order", idx.Animations)
	}
	if idx.LastUpdated != "2026-03-04T04:06:07Z" {
		t.Errorf("LastUpdated = %q", idx.LastUpdated)
	}
}

func TestWriteAndLoadIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", IndexFile)
	idx := NewIndex([]*FrameworkSlice{{
		Framework:  "react",
		Animations: []Animation{{ID: "x", Name: "x", Framework: "react", Libraries: []string{}, Sources: []string{"s"}, Difficulty: "beginner", Tags: []string{}}},
		Components: 1,
	}}, time.Now())

	if err := WriteIndex(path, idx); err != nil {
		t.Fatalf("WriteIndex: %v", err)
	}
	got, err := LoadIndex(path)
	if err != nil {
		t.Fatalf("LoadIndex: %v", err)
	}
	if len(got.Find("x", "")) != 1 || len(got.Find("x", "vue")) != 0 {
		t.Errorf("Find did not locate the entry: %+v", got.Animations)
	}
	if len(got.ForFramework("react")) != 1 || len(got.ForFramework("")) != 1 {
		t.Error("ForFramework mismatch")
	}
}

func TestWriteIndexRejectsInvalid(t *testing.T) {
	idx := &Index{Version: IndexVersion, LastUpdated: "now"}
	err := WriteIndex(filepath.Join(t.TempDir(), IndexFile), idx)
	if err == nil {
		t.Fatal("expected schema error for nil frameworks/animations")
	}
}
