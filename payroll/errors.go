/*
errors.go - Centralized error types for the payroll engine

PURPOSE:
  All domain error types in one place for consistency and discoverability.
  The API layer maps these onto HTTP statuses; handlers never inspect
  storage errors directly.

ERROR CATEGORIES:
  1. State conflicts  - illegal attendance transitions, duplicate ids
  2. Not found        - unknown employee / entry / payment ids
  3. Validation       - malformed times, dates, amounts

USAGE:
  if errors.Is(err, payroll.ErrAlreadyCheckedIn) { ... }

SEE ALSO:
  - attendance.go: returns the transition errors
  - api/handlers.go: maps errors to HTTP statuses
*/
package payroll

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - use with errors.Is()
// =============================================================================

var (
	// ErrAlreadyCheckedIn is returned when a same-day work entry already
	// exists for the employee, regardless of whether it is open or closed.
	ErrAlreadyCheckedIn = errors.New("already checked in today")

	// ErrNotCheckedInYet is returned on check-out when no same-day entry exists.
	ErrNotCheckedInYet = errors.New("not checked in yet")

	// ErrAlreadyCheckedOut is returned on check-out when the entry's end time
	// already differs from its start time.
	ErrAlreadyCheckedOut = errors.New("already checked out today")

	// ErrEmployeeNotFound is returned for unknown employee ids.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrRecordNotFound is returned for unknown entry/advance/expense/payment/photo ids.
	ErrRecordNotFound = errors.New("record not found")

	// ErrDuplicateEmployeeID is returned when creating an employee whose id is
	// already taken. Surfaced distinctly so the admin can correct the id.
	ErrDuplicateEmployeeID = errors.New("employee id already exists")

	// ErrDuplicateWorkDate is returned when inserting a second work entry for
	// the same employee and calendar date.
	ErrDuplicateWorkDate = errors.New("work entry already exists for this date")

	// ErrInvalidCredentials is returned on failed login or password change.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// ValidationError reports malformed input. It is surfaced to the caller and
// never partially applied.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsConflict reports whether the error is an attendance state conflict or a
// duplicate-key conflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrAlreadyCheckedIn) ||
		errors.Is(err, ErrNotCheckedInYet) ||
		errors.Is(err, ErrAlreadyCheckedOut) ||
		errors.Is(err, ErrDuplicateEmployeeID) ||
		errors.Is(err, ErrDuplicateWorkDate)
}

// IsNotFound reports whether the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEmployeeNotFound) || errors.Is(err, ErrRecordNotFound)
}

// IsValidation reports whether the error is malformed client input.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
