package client

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/animkit-dev/animkit/internal/registry"
)

// LocalClient reads artifacts from a build output directory on disk.
type LocalClient struct {
	root string
}

// NewLocal creates a LocalClient rooted at root.
func NewLocal(root string) *LocalClient {
	return &LocalClient{root: root}
}

// Root returns the artifact root.
func (l *LocalClient) Root() string { return l.root }

func (l *LocalClient) itemPath(name, framework string) string {
	return filepath.Join(l.root, framework, name+".json")
}

// FetchItem reads and decodes <root>/<framework>/<name>.json. A missing file
// becomes *NotFoundError.
func (l *LocalClient) FetchItem(ctx context.Context, name, framework string) (*registry.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !validName(name) {
		return nil, &NotFoundError{Name: name, Framework: framework}
	}

	path := l.itemPath(name, framework)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &NotFoundError{Name: name, Framework: framework}
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	item, err := registry.ParseItem(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return item, nil
}

// FetchIndex reads <root>/index.json and checks its version.
func (l *LocalClient) FetchIndex(ctx context.Context) (*registry.Index, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := filepath.Join(l.root, registry.IndexFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading index: %w", err)
	}
	return decodeIndex(data)
}

// Exists reports whether the artifact file is present.
func (l *LocalClient) Exists(ctx context.Context, name, framework string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if !validName(name) {
		return false, nil
	}
	_, err := os.Stat(l.itemPath(name, framework))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
