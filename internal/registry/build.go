package registry

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/animkit-dev/animkit/internal/manifest"
)

// BuildOptions configures a registry build.
type BuildOptions struct {
	RegistryDir string // source tree root, e.g. "registry"
	OutputDir   string // artifact root, e.g. "public/r"
	// StrictCycles turns registry dependency cycles from warnings into a
	// fatal error.
	StrictCycles bool
	// Now stamps index.json. Defaults to time.Now.
	Now func() time.Time
}

// FrameworkResult summarizes one framework's build.
type FrameworkResult struct {
	Framework string
	Written   []string // artifact paths, in write order
	Failed    int
	Cycles    [][]string
}

// BuildResult summarizes a build.
type BuildResult struct {
	Frameworks []FrameworkResult
	Index      *Index
	IndexPath  string
	Skipped    []string // unknown framework directories
}

// Written returns the total number of artifacts written.
func (r *BuildResult) Written() int {
	n := 0
	for _, f := range r.Frameworks {
		n += len(f.Written)
	}
	return n
}

// Failed returns the total number of source files that could not be
// processed.
func (r *BuildResult) Failed() int {
	n := 0
	for _, f := range r.Frameworks {
		n += f.Failed
	}
	return n
}

// Builder turns a registry source tree into validated artifacts and an
// index.
type Builder struct {
	opts BuildOptions
	log  zerolog.Logger
}

// NewBuilder creates a Builder.
func NewBuilder(opts BuildOptions, log zerolog.Logger) *Builder {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Builder{opts: opts, log: log}
}

// Build runs the whole pipeline. A missing root, no frameworks, a schema
// violation or (in strict mode) a dependency cycle abort the run. A source
// file that cannot be stat'ed, read or written is logged, counted and
// skipped.
func (b *Builder) Build(ctx context.Context) (*BuildResult, error) {
	info, err := os.Stat(b.opts.RegistryDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrRegistryRootMissing, b.opts.RegistryDir)
	}

	disc, err := DiscoverFrameworks(b.opts.RegistryDir)
	if err != nil {
		return nil, err
	}
	for _, name := range disc.Unknown {
		b.log.Warn().Str("dir", name).Msg("skipping directory: not a supported framework")
	}
	if len(disc.Frameworks) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoFrameworks, b.opts.RegistryDir)
	}

	result := &BuildResult{Skipped: disc.Unknown}
	var slices []*FrameworkSlice
	for _, fw := range disc.Frameworks {
		fr, items, err := b.buildFramework(ctx, fw)
		if err != nil {
			return nil, err
		}

		if err := b.checkGraph(fw.Name, items, fr); err != nil {
			return nil, err
		}

		slice, err := ReadFrameworkSlice(fw.Name, fr.Written)
		if err != nil {
			return nil, fmt.Errorf("indexing %s: %w", fw.Name, err)
		}
		slices = append(slices, slice)
		result.Frameworks = append(result.Frameworks, *fr)

		b.log.Info().
			Str("framework", fw.Name).
			Int("items", len(fr.Written)).
			Int("failed", fr.Failed).
			Msg("framework built")
	}

	result.Index = NewIndex(slices, b.opts.Now())
	result.IndexPath = filepath.Join(b.opts.OutputDir, IndexFile)
	if err := WriteIndex(result.IndexPath, result.Index); err != nil {
		return nil, err
	}
	return result, nil
}

// buildFramework processes every source file of one framework.
func (b *Builder) buildFramework(ctx context.Context, fw FrameworkDir) (*FrameworkResult, []*Item, error) {
	fr := &FrameworkResult{Framework: fw.Name}
	outDir := filepath.Join(b.opts.OutputDir, fw.Name)
	seen := make(map[string]string)
	var items []*Item

	for _, role := range fw.Roles {
		files, err := ListSourceFiles(role)
		if err != nil {
			b.log.Error().Err(err).Str("framework", fw.Name).Str("dir", role.Dir).Msg("cannot list role folder")
			fr.Failed++
			continue
		}

		for _, path := range files {
			if err := ctx.Err(); err != nil {
				return nil, nil, err
			}

			rel := role.Dir + "/" + filepath.Base(path)
			flog := b.log.With().Str("framework", fw.Name).Str("file", rel).Logger()

			if prev, dup := seen[ItemName(path)]; dup {
				flog.Error().Str("conflicts_with", prev).Msg("duplicate item name, skipping")
				fr.Failed++
				continue
			}

			item, err := b.buildFile(fw.Name, role, path, rel)
			if err != nil {
				var schemaErr *SchemaError
				if errors.As(err, &schemaErr) {
					for _, issue := range schemaErr.Issues {
						flog.Error().Str("field", issue.Path).Msg(issue.Message)
					}
					return nil, nil, err
				}
				flog.Error().Err(err).Msg("skipping file")
				fr.Failed++
				continue
			}

			artifact, err := b.writeArtifact(outDir, item)
			if err != nil {
				flog.Error().Err(err).Msg("skipping file")
				fr.Failed++
				continue
			}

			seen[item.Name] = rel
			items = append(items, item)
			fr.Written = append(fr.Written, artifact)
			flog.Debug().Str("artifact", artifact).Msg("wrote artifact")
		}
	}
	return fr, items, nil
}

// buildFile stats, reads, assembles and validates one source file.
func (b *Builder) buildFile(framework string, role RoleDir, path, rel string) (*Item, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	item := Assemble(SourceFile{
		Framework: framework,
		Type:      role.Type,
		RelPath:   rel,
		Content:   string(content),
	})

	if err := ValidateItem(item, filepath.Join(framework, rel)); err != nil {
		return nil, err
	}
	return item, nil
}

// ValidateItem checks item against the registry item schema. A violation is
// returned as *SchemaError naming file.
func ValidateItem(item *Item, file string) error {
	data, err := MarshalItem(item)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", item.Name, err)
	}
	result, err := manifest.ValidateItem(data)
	if err != nil {
		return fmt.Errorf("validating %s: %w", file, err)
	}
	if !result.Valid {
		return &SchemaError{File: file, Issues: result.Issues}
	}
	return nil
}

// writeArtifact writes <outDir>/<name>.json and returns its path.
func (b *Builder) writeArtifact(outDir string, item *Item) (string, error) {
	data, err := MarshalItem(item)
	if err != nil {
		return "", fmt.Errorf("encoding %s: %w", item.Name, err)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", fmt.Errorf("creating %s: %w", outDir, err)
	}
	path := filepath.Join(outDir, item.Name+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// checkGraph reports dangling registry dependencies and cycles for one
// framework. Cycles are fatal only in strict mode.
func (b *Builder) checkGraph(framework string, items []*Item, fr *FrameworkResult) error {
	g := GraphOf(items)
	for name, deps := range g.Missing() {
		b.log.Warn().
			Str("framework", framework).
			Str("item", name).
			Strs("missing", deps).
			Msg("registry dependency has no item in this framework")
	}

	fr.Cycles = g.Cycles()
	for _, c := range fr.Cycles {
		path := strings.Join(c, " -> ")
		if b.opts.StrictCycles {
			return fmt.Errorf("%w in %s: %s", ErrDependencyCycle, framework, path)
		}
		b.log.Warn().Str("framework", framework).Str("cycle", path).Msg("registry dependency cycle")
	}
	return nil
}
