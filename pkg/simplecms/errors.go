package simplecms

import "errors"

// The store itself never fails on well-formed input. These errors are for
// the surfaces that validate before calling it.
var (
	// ErrKVStoreRequired indicates New was called without WithKVStore
	ErrKVStoreRequired = errors.New("kv store is required")

	// ErrInvalidStatus indicates a status other than draft or published
	ErrInvalidStatus = errors.New("invalid status")

	// ErrSlugTaken indicates a slug already used by another entity of the same kind
	ErrSlugTaken = errors.New("slug already in use")

	// ErrNotFound indicates an id or slug lookup found nothing
	ErrNotFound = errors.New("not found")
)
