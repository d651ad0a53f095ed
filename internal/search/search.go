// Package search finds animations in the registry index by fuzzy matching.
package search

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/animkit-dev/animkit/internal/registry"
)

// Result is a fuzzy match against the index.
type Result struct {
	Animation registry.Animation
	Score     int
}

// animationSource exposes animations to the fuzzy matcher. Each entry is
// matched on its name, category, tags and description, in that order, so
// name matches score highest.
type animationSource []registry.Animation

func (s animationSource) String(i int) string {
	a := s[i]
	parts := []string{a.Name, a.Category, strings.Join(a.Tags, " "), a.Description}
	return strings.ToLower(strings.Join(parts, " "))
}

func (s animationSource) Len() int { return len(s) }

// Search returns the animations matching query, best first. framework, when
// set, limits the candidates. An empty query returns every candidate in
// index order.
func Search(animations []registry.Animation, query, framework string) []Result {
	var candidates animationSource
	for _, a := range animations {
		if framework == "" || a.Framework == framework {
			candidates = append(candidates, a)
		}
	}

	query = strings.TrimSpace(query)
	if query == "" {
		results := make([]Result, len(candidates))
		for i, a := range candidates {
			results[i] = Result{Animation: a}
		}
		return results
	}

	matches := fuzzy.FindFrom(strings.ToLower(query), candidates)
	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = Result{Animation: candidates[m.Index], Score: m.Score}
	}
	return results
}

// Suggest returns up to limit names that look like query: names containing
// it as a fuzzy subsequence, then names that are a subsequence of it (which
// catches extra typed characters). Duplicates and exact matches are dropped.
func Suggest(names []string, query string, limit int) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || limit <= 0 {
		return nil
	}

	seen := map[string]bool{query: true}
	var out []string
	add := func(name string) {
		if !seen[name] && len(out) < limit {
			seen[name] = true
			out = append(out, name)
		}
	}

	for _, m := range fuzzy.Find(query, names) {
		add(m.Str)
	}

	type scored struct {
		name  string
		score int
	}
	var reverse []scored
	for _, name := range names {
		if ms := fuzzy.Find(strings.ToLower(name), []string{query}); len(ms) > 0 {
			reverse = append(reverse, scored{name, ms[0].Score})
		}
	}
	sort.SliceStable(reverse, func(i, j int) bool { return reverse[i].score > reverse[j].score })
	for _, r := range reverse {
		add(r.name)
	}
	return out
}

// Names returns the distinct animation names in index order.
func Names(animations []registry.Animation) []string {
	seen := make(map[string]bool)
	var names []string
	for _, a := range animations {
		if !seen[a.Name] {
			seen[a.Name] = true
			names = append(names, a.Name)
		}
	}
	return names
}
