package ruddit

import (
	"errors"
	"fmt"
)

// Error kinds. Match them with errors.Is; every error the pipeline returns wraps exactly one.
var (
	// ErrCredential means credentials are missing or malformed. Not retryable without user action.
	ErrCredential = errors.New("credentials not configured")
	// ErrAuthRejected means the upstream explicitly denied the request.
	ErrAuthRejected = errors.New("authorization rejected")
	// ErrTransport covers network and HTTP failures. Retryable at the facet level.
	ErrTransport = errors.New("transport failure")
	// ErrParse means the upstream response did not have the expected shape.
	ErrParse = errors.New("unexpected response shape")
	// ErrPersistence means the local store failed. Fatal to the current operation.
	ErrPersistence = errors.New("persistence failure")
	// ErrInvalidIdentity marks an item whose id cannot serve as a record identity.
	ErrInvalidIdentity = errors.New("invalid identity")
)

// Error attaches a kind and the failing operation to an underlying cause.
type Error struct {
	Kind error
	Op   string
	Err  error
}

// E builds an *Error. err may be nil when the kind alone describes the failure.
func E(kind error, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

type permanentError struct{ err error }

func (e permanentError) Error() string { return e.err.Error() }
func (e permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying. Its kind and cause still match.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return permanentError{err}
}

// IsRetryable reports whether err is worth retrying.
func IsRetryable(err error) bool {
	var p permanentError
	return errors.Is(err, ErrTransport) && !errors.As(err, &p)
}

// IsTerminal reports whether err must abort a whole run rather than a single facet.
func IsTerminal(err error) bool {
	return errors.Is(err, ErrCredential) || errors.Is(err, ErrAuthRejected) || errors.Is(err, ErrPersistence)
}
