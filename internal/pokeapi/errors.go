package pokeapi

import (
	"errors"
	"fmt"
)

// Failure classes. Every error returned by Client wraps exactly one of them.
var (
	ErrNetwork   = errors.New("network error")
	ErrNotFound  = errors.New("not found")
	ErrMalformed = errors.New("malformed response")
)

// Class names the failure class of err for display and logging
func Class(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "not-found"
	case errors.Is(err, ErrMalformed):
		return "malformed-response"
	default:
		return "network-error"
	}
}

func networkErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNetwork, fmt.Sprintf(format, args...))
}

func malformedErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))
}
