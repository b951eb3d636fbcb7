package simplecms

import "github.com/google/uuid"

// NewID returns a fresh random identifier
func NewID() string {
	return uuid.NewString()
}
