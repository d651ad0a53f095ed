package client

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// supportedIndex is the range of index.json format versions this client
// reads.
const supportedIndex = "^1"

// CheckIndexVersion returns ErrIncompatibleIndex unless version satisfies
// the supported range. A leading "v" is tolerated.
func CheckIndexVersion(version string) error {
	v, err := semver.NewVersion(strings.TrimPrefix(version, "v"))
	if err != nil {
		return fmt.Errorf("%w: version %q: %v", ErrIncompatibleIndex, version, err)
	}
	c, err := semver.NewConstraint(supportedIndex)
	if err != nil {
		return fmt.Errorf("parsing constraint %q: %w", supportedIndex, err)
	}
	if !c.Check(v) {
		return fmt.Errorf("%w: version %s, want %s", ErrIncompatibleIndex, version, supportedIndex)
	}
	return nil
}
