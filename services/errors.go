package services

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition means a state-machine guard failed. It is
	// reported to the caller and never fatal.
	ErrInvalidTransition = errors.New("invalid project state transition")

	ErrProjectNotFound = errors.New("project not found")

	// ErrStorageUnavailable wraps a backing-store failure. Callers own
	// the retry policy; nothing is retried internally.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

func storageError(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrStorageUnavailable, err)
}
