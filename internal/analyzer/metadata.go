package analyzer

import (
	"regexp"
	"strings"
)

// Metadata holds the facts declared in a source file's doc-comment tags.
// Every field is optional.
type Metadata struct {
	Description string
	Category    string
	Source      string
	Difficulty  string
	DemoURL     string
	Tags        []string
	Contributor *Contributor
}

// Contributor is the author identity declared by @contributor, @github, @x
// and @website. It is nil when none of those tags are present.
type Contributor struct {
	Name    string
	GitHub  string
	X       string
	Website string
}

var (
	docBlockPattern  = regexp.MustCompile(`(?s)/\*\*(.*?)\*/`)
	htmlBlockPattern = regexp.MustCompile(`(?s)<!--(.*?)-->`)
	tagLinePattern   = regexp.MustCompile(`^@([A-Za-z]+)\s+(.+)$`)
)

// ExtractMetadata reads @tags from the /** */ doc blocks (and <!-- -->
// blocks, for single-file components) in src. The first occurrence of a tag
// wins.
func ExtractMetadata(src string) Metadata {
	tags := docTags(src)

	md := Metadata{
		Description: tags["description"],
		Category:    tags["category"],
		Source:      tags["source"],
		Difficulty:  strings.ToLower(tags["difficulty"]),
		DemoURL:     tags["demo"],
		Tags:        splitList(tags["tags"]),
	}

	c := Contributor{
		Name:    tags["contributor"],
		GitHub:  tags["github"],
		X:       tags["x"],
		Website: tags["website"],
	}
	if c != (Contributor{}) {
		md.Contributor = &c
	}
	return md
}

// docTags collects tag values from every doc block, keyed by lowercase tag name.
func docTags(src string) map[string]string {
	tags := make(map[string]string)

	var blocks []string
	for _, m := range docBlockPattern.FindAllStringSubmatch(src, -1) {
		blocks = append(blocks, m[1])
	}
	for _, m := range htmlBlockPattern.FindAllStringSubmatch(src, -1) {
		blocks = append(blocks, m[1])
	}

	for _, block := range blocks {
		for _, line := range strings.Split(block, "\n") {
			line = strings.TrimSpace(line)
			line = strings.TrimSpace(strings.TrimLeft(line, "*"))
			m := tagLinePattern.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			key := strings.ToLower(m[1])
			if _, ok := tags[key]; ok {
				continue
			}
			if v := strings.TrimSpace(m[2]); v != "" {
				tags[key] = v
			}
		}
	}
	return tags
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
