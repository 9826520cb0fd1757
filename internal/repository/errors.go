package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("repository: not found")
	// ErrDuplicate indicates a write violated a uniqueness constraint.
	ErrDuplicate = errors.New("repository: duplicate identifier")
)

// DuplicateError reports which unique field a failed write collided on.
// Field is empty when the violated constraint could not be attributed.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	if e.Field == "" {
		return ErrDuplicate.Error()
	}
	return fmt.Sprintf("repository: duplicate %s", e.Field)
}

func (e *DuplicateError) Unwrap() error { return ErrDuplicate }
