package client

import (
	"context"

	"github.com/animkit-dev/animkit/internal/registry"
)

// Availability returns the frameworks, other than exclude, for which name is
// published. Probe errors count as unavailable.
func Availability(ctx context.Context, c Client, name, exclude string) []string {
	var found []string
	for _, fw := range registry.Frameworks {
		if fw == exclude {
			continue
		}
		ok, err := c.Exists(ctx, name, fw)
		if err == nil && ok {
			found = append(found, fw)
		}
	}
	return found
}
