package ledger

import (
	"errors"
	"fmt"
)

// ErrLedgerMissing is returned by a Repository when no durable copy exists yet
var ErrLedgerMissing = errors.New("ledger not found in storage")

// ErrInvalidInput indicates a malformed or out-of-range field
type ErrInvalidInput struct {
	Field  string
	Reason string
}

func (e ErrInvalidInput) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is implements the errors.Is interface for ErrInvalidInput
func (e ErrInvalidInput) Is(target error) bool {
	t, ok := target.(ErrInvalidInput)
	if !ok {
		return false
	}
	// An empty target Field matches any invalid field
	if t.Field == "" {
		return true
	}
	return e.Field == t.Field
}

// ErrEntryNotFound indicates a missing entry
type ErrEntryNotFound struct {
	ID string
}

func (e ErrEntryNotFound) Error() string {
	return "entry not found: " + e.ID
}

// Is implements the errors.Is interface for ErrEntryNotFound
func (e ErrEntryNotFound) Is(target error) bool {
	t, ok := target.(ErrEntryNotFound)
	if !ok {
		return false
	}
	if t.ID == "" {
		return true
	}
	return e.ID == t.ID
}

// ErrStorageUnavailable indicates the durable medium could not be read or written
type ErrStorageUnavailable struct {
	Op  string
	Err error
}

func (e ErrStorageUnavailable) Error() string {
	if e.Err == nil {
		return "storage unavailable during " + e.Op
	}
	return fmt.Sprintf("storage unavailable during %s: %v", e.Op, e.Err)
}

func (e ErrStorageUnavailable) Unwrap() error {
	return e.Err
}

// Is implements the errors.Is interface for ErrStorageUnavailable
func (e ErrStorageUnavailable) Is(target error) bool {
	_, ok := target.(ErrStorageUnavailable)
	return ok
}
