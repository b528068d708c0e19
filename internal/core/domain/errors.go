package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation       = errors.New("validation failed")
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrSyncFailure      = errors.New("booking and calendar out of sync")
	ErrConcurrentUpdate = errors.New("optimistic lock failed: document was modified by another request")
)

type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid request: %s", e.Reason)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Segment names which part of a lookup path failed to resolve.
type Segment string

const (
	SegmentState    Segment = "state"
	SegmentPlace    Segment = "place"
	SegmentFarm     Segment = "farm"
	SegmentEvent    Segment = "event"
	SegmentBooking  Segment = "booking"
	SegmentOccasion Segment = "occasion"
)

type NotFoundError struct {
	Segment Segment
	Key     string
}

func NewNotFoundError(segment Segment, key string) *NotFoundError {
	return &NotFoundError{Segment: segment, Key: key}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Segment, e.Key)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

type ConflictError struct {
	Reason string
}

func NewConflictError(format string, args ...any) *ConflictError {
	return &ConflictError{Reason: fmt.Sprintf(format, args...)}
}

func (e *ConflictError) Error() string { return e.Reason }

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// SyncError reports that the second half of a booking/calendar dual write
// did not complete. Compensated is true when the first half was undone.
type SyncError struct {
	Operation   string
	State       SyncState
	Compensated bool
	Err         error
}

func (e *SyncError) Error() string {
	if e.Compensated {
		return fmt.Sprintf("%s: calendar write failed, booking change reverted: %v", e.Operation, e.Err)
	}
	return fmt.Sprintf("%s: calendar write failed: %v", e.Operation, e.Err)
}

func (e *SyncError) Unwrap() error { return e.Err }

func (e *SyncError) Is(target error) bool { return target == ErrSyncFailure }
