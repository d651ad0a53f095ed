package client

import (
	"context"
	"strings"

	"github.com/animkit-dev/animkit/internal/registry"
)

// Client reads registry artifacts.
type Client interface {
	// FetchItem returns the item published as <framework>/<name>.json.
	FetchItem(ctx context.Context, name, framework string) (*registry.Item, error)
	// FetchIndex returns index.json after checking its format version.
	FetchIndex(ctx context.Context) (*registry.Index, error)
	// Exists reports whether <framework>/<name>.json is published.
	Exists(ctx context.Context, name, framework string) (bool, error)
}

// Config selects and configures a Client.
type Config struct {
	Local     bool   // read from LocalRoot instead of BaseURL
	BaseURL   string // e.g. "https://animkit.dev/r"
	LocalRoot string // e.g. "<project>/public/r"
	Options   []Option
}

// New returns a LocalClient when cfg.Local is set and a RemoteClient
// otherwise.
func New(cfg Config) Client {
	if cfg.Local {
		return NewLocal(cfg.LocalRoot)
	}
	return NewRemote(cfg.BaseURL, cfg.Options...)
}

// validName rejects names that could escape the framework directory.
func validName(name string) bool {
	return name != "" && !strings.ContainsAny(name, `/\`) && name != "." && name != ".."
}
