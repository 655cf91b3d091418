package id

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// shortLen is the number of characters shown for an ID in listings.
const shortLen = 8

// New returns a fresh random debt ID.
func New() string {
	return uuid.NewString()
}

// Valid reports whether s is a canonical UUID string.
func Valid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// Short returns the display form of an ID.
// "3f1c9a2e-7b4d-..." -> "3f1c9a2e"
func Short(s string) string {
	if len(s) <= shortLen {
		return s
	}
	return s[:shortLen]
}

// ErrNoMatch and ErrAmbiguous are returned by MatchPrefix.
var (
	ErrNoMatch   = errors.New("no matching id")
	ErrAmbiguous = errors.New("ambiguous id prefix")
)

// MatchPrefix resolves prefix against ids. An exact match always wins;
// otherwise the prefix must select exactly one id.
func MatchPrefix(ids []string, prefix string) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("empty id: %w", ErrNoMatch)
	}
	var found []string
	for _, candidate := range ids {
		if candidate == prefix {
			return candidate, nil
		}
		if strings.HasPrefix(candidate, prefix) {
			found = append(found, candidate)
		}
	}
	switch len(found) {
	case 0:
		return "", fmt.Errorf("%q: %w", prefix, ErrNoMatch)
	case 1:
		return found[0], nil
	default:
		return "", fmt.Errorf("%q matches %d debts: %w", prefix, len(found), ErrAmbiguous)
	}
}
