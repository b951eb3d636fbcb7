package simplecms

import (
	"fmt"
	"strings"
)

// Valid reports whether s is a known status
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished:
		return true
	default:
		return false
	}
}

// ParseStatus converts text into a Status, ignoring case and surrounding space
func ParseStatus(text string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(text)))
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, text)
	}
	return s, nil
}
