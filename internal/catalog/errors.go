package catalog

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrNotFound is returned when a requested book or author does not exist.
	ErrNotFound = errors.New("not found")

	// ErrBadRequest is returned when the route identifier and the payload
	// identifier disagree.
	ErrBadRequest = errors.New("bad request")

	// ErrInvalidArgument signals a programming error, such as projecting a
	// nil entity.
	ErrInvalidArgument = errors.New("invalid argument")
)

// ValidationError carries per-field messages for a rejected form.
// Fields are keyed by their form/json name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// IsValidationError reports whether err is (or wraps) a *ValidationError.
func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
