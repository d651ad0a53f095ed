package client

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the item does not exist for the requested framework.
	ErrNotFound = errors.New("not found")
	// ErrIncompatibleIndex means the registry index uses a format version
	// this client cannot read.
	ErrIncompatibleIndex = errors.New("incompatible registry index")
)

// NotFoundError is returned when an item is missing for a framework. It
// matches ErrNotFound with errors.Is.
type NotFoundError struct {
	Name      string
	Framework string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found for %s", e.Name, e.Framework)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// FetchError is a transient failure talking to the registry: a transport
// error or a non-404 error status.
type FetchError struct {
	URL        string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %s: registry returned status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// IsNotFound reports whether err means "absent for this framework" rather
// than a transient failure.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
