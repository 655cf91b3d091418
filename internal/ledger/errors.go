package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidJSON marks content that is not JSON at all.
	ErrInvalidJSON = errors.New("invalid JSON file")
	// ErrNotArray marks JSON whose top level is not a list.
	ErrNotArray = errors.New("JSON must be an array")
	// ErrEmptyName is returned when a name is blank after trimming.
	ErrEmptyName = errors.New("name must not be empty")
	// ErrNotFound is returned when no debt has the given id.
	ErrNotFound = errors.New("debt not found")
	// ErrAmbiguousID is returned when an id prefix matches several debts.
	ErrAmbiguousID = errors.New("ambiguous debt id")
)

// ParseError reports content that could not be read as a debt list. The
// ledger is never modified when one is returned.
type ParseError struct {
	Op  string // "load" or "import"
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError rejects user input before any state change.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }
