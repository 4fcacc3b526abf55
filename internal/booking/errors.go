package booking

import (
	"errors"
	"fmt"

	"github.com/meshackowase-commits/HOSTESserch/internal/models"
)

var (
	// ErrHostelNotFound is returned for hostel ids with no row.
	ErrHostelNotFound = errors.New("hostel not found")
	// ErrBookingNotFound is returned for booking ids with no row.
	ErrBookingNotFound = errors.New("booking not found")
	// ErrUnavailable is returned when a hostel cannot take bookings.
	ErrUnavailable = errors.New("hostel is not accepting bookings")
	// ErrInvalidTransition is returned for status changes outside the lifecycle.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrForbidden is returned when the actor may not perform the action.
	ErrForbidden = errors.New("forbidden")
	// ErrStaleLoad is returned by Loader for results of superseded loads.
	ErrStaleLoad = errors.New("load superseded")
)

// TransitionError describes a rejected status change.
type TransitionError struct {
	From, To models.BookingStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot move booking from %s to %s", e.From, e.To)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// TransmissionError wraps a failure to reach the store. The request did
// not complete and may be retried as is.
type TransmissionError struct {
	Op  string
	Err error
}

func (e *TransmissionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransmissionError) Unwrap() error {
	return e.Err
}

// Retryable is always true; it lets callers test for the behaviour
// without naming the type.
func (e *TransmissionError) Retryable() bool {
	return true
}

// IsRetryable reports whether err, or anything it wraps, can be retried.
func IsRetryable(err error) bool {
	var r interface{ Retryable() bool }
	return errors.As(err, &r) && r.Retryable()
}
