package registry

import (
	"errors"
	"fmt"
	"strings"

	"github.com/animkit-dev/animkit/internal/manifest"
)

var (
	// ErrRegistryRootMissing is returned when the source registry directory
	// does not exist.
	ErrRegistryRootMissing = errors.New("registry root does not exist")
	// ErrNoFrameworks is returned when the registry root holds no framework
	// directory with a role folder.
	ErrNoFrameworks = errors.New("no framework directories found")
	// ErrDependencyCycle is returned for registry dependency cycles when the
	// build runs with strict cycle checking.
	ErrDependencyCycle = errors.New("registry dependency cycle")
)

// SchemaError reports an artifact that failed schema validation. It is
// fatal for a build.
type SchemaError struct {
	File   string
	Issues []manifest.ValidationIssue
}

func (e *SchemaError) Error() string {
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.String()
	}
	return fmt.Sprintf("schema validation failed for %s: %s", e.File, strings.Join(parts, "; "))
}
