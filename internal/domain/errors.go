package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Filesystem errors
var (
	// ErrFileMissing indicates the rename source no longer exists
	ErrFileMissing = errors.New("source file missing")

	// ErrFileExists indicates the rename destination is already occupied
	ErrFileExists = errors.New("destination already exists")

	// ErrNotDirectory indicates expected a directory but got a file
	ErrNotDirectory = errors.New("not a directory")

	// ErrNotFound indicates the requested resource does not exist
	ErrNotFound = errors.New("resource not found")
)

// Engine errors
var (
	// ErrRuleNotFound indicates the referenced rule id does not exist
	ErrRuleNotFound = errors.New("rule not found")

	// ErrNothingToUndo indicates the history log is empty
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrExecutionInProgress indicates another batch is already running
	ErrExecutionInProgress = errors.New("rename already in progress")
)

// Persistence errors
var (
	// ErrKeyNotFound indicates the storage key has no value
	ErrKeyNotFound = errors.New("key not found")
)

// ValidationError carries every violated rule, not just the first
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Violations, "; ")
}

// NewValidationError builds a ValidationError from violation messages
func NewValidationError(violations []string) *ValidationError {
	return &ValidationError{Violations: violations}
}

// DuplicateCodeError indicates a rule code collides with an active rule
type DuplicateCodeError struct {
	Code string
}

func (e *DuplicateCodeError) Error() string {
	return fmt.Sprintf("rule code %q already exists", e.Code)
}

// ConflictError aborts a batch before any filesystem mutation. Paths lists
// every colliding prospective path.
type ConflictError struct {
	Paths []string
}

func (e *ConflictError) Error() string {
	return "rename conflicts: " + strings.Join(e.Paths, ", ")
}
