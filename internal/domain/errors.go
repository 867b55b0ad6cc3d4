package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound marks a lookup that matched no customer or account. Wrap it
// with context: fmt.Errorf("customer %q: %w", acc, domain.ErrNotFound).
var ErrNotFound = errors.New("not found")

// ValidationError rejects malformed or missing input before anything is
// persisted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// StorageError wraps a persistence-layer failure. The wrapped driver error is
// kept for logs; callers surface a generic message.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
