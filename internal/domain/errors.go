package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a rental or vehicle id does not resolve to a
// record. Repositories translate sql.ErrNoRows into this.
var ErrNotFound = errors.New("record not found")

// ValidationError reports malformed input: bad date range, missing consent,
// missing required document. Nothing was persisted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// PolicyViolationError reports a booking rule rejection (coding day,
// same-day short booking) with a user-facing reason.
type PolicyViolationError struct {
	Reason string
}

func (e *PolicyViolationError) Error() string { return e.Reason }

// ConflictError reports an overlapping reservation. Blocking is the
// earliest-created obstacle so callers can tell the user exactly what is in
// the way.
type ConflictError struct {
	VehicleID int32
	Blocking  *Rental
}

func (e *ConflictError) Error() string {
	const layout = "Jan 2, 2006 3:04 PM"
	return fmt.Sprintf("vehicle %d is already reserved from %s to %s (reservation %d, customer %d)",
		e.VehicleID,
		e.Blocking.RentalDate.Format(layout),
		e.Blocking.ReturnDate.Format(layout),
		e.Blocking.ID,
		e.Blocking.CustomerID,
	)
}

// StateTransitionError reports an operation applied to a rental in the wrong
// status, e.g. approving a rental that is not pending.
type StateTransitionError struct {
	Op     string
	Status RentalStatus
}

func (e *StateTransitionError) Error() string {
	return fmt.Sprintf("cannot %s a rental in status %s", e.Op, e.Status)
}
