package installer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/animkit-dev/animkit/internal/analyzer"
)

// MergeContent appends to existing every exported function-like binding of
// incoming whose name existing lacks, each separated by a blank line. It
// returns the new content, the names added in incoming's order, and the
// missing names whose source could not be extracted from incoming. When
// nothing is added existing is returned unchanged. Bindings already in
// existing are never touched, even if their bodies differ.
func MergeContent(existing, incoming string) (merged string, added, unmerged []string) {
	have := make(map[string]bool)
	for _, name := range analyzer.BindingNames(existing) {
		have[name] = true
	}

	var snippets []string
	for _, name := range analyzer.BindingNames(incoming) {
		if have[name] {
			continue
		}
		snippet, ok := analyzer.ExtractBinding(incoming, name)
		if !ok {
			unmerged = append(unmerged, name)
			continue
		}
		added = append(added, name)
		snippets = append(snippets, snippet)
	}
	if len(snippets) == 0 {
		return existing, nil, unmerged
	}

	base := strings.TrimRight(existing, "\r\n")
	return base + "\n\n" + strings.Join(snippets, "\n\n") + "\n", added, unmerged
}

// MergeFile reconciles a shared utilities file at path with incoming. A
// missing file, or overwrite, writes incoming verbatim (ActionCreated);
// otherwise missing bindings are appended (ActionMerged) or nothing changes
// (ActionSkipped). Bindings that could not be extracted are listed in
// Unmerged either way. With dryRun the outcome is computed but nothing is
// written.
func MergeFile(path, incoming string, overwrite, dryRun bool) (FileResult, error) {
	res := FileResult{Path: path}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err) || (err == nil && overwrite):
		res.Action = ActionCreated
		if dryRun {
			return res, nil
		}
		return res, writeFile(path, incoming)
	case err != nil:
		return res, fmt.Errorf("reading %s: %w", path, err)
	}

	merged, added, unmerged := MergeContent(string(data), incoming)
	res.Unmerged = unmerged
	if len(added) == 0 {
		res.Action = ActionSkipped
		return res, nil
	}

	res.Action = ActionMerged
	res.Added = added
	if dryRun {
		return res, nil
	}
	return res, writeFile(path, merged)
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
