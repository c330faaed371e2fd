package navigation

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound matches any NotFoundError.
	ErrNotFound = errors.New("navigation: route not found")
	// ErrRedirectLoop is returned when guards keep redirecting.
	ErrRedirectLoop = errors.New("navigation: too many redirects")
	// ErrAborted wraps the error a guard aborted with.
	ErrAborted = errors.New("navigation: aborted")
)

// NotFoundError is returned when no registered route matches a path.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("navigation: no route for %q", e.Path)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
