package booking

import (
	"slices"

	"github.com/meshackowase-commits/HOSTESserch/internal/models"
)

type transition struct {
	from, to models.BookingStatus
}

// transitions maps every legal edge of the booking lifecycle to the roles
// allowed to take it. cancelled and completed have no outgoing edges.
var transitions = map[transition][]models.UserRole{
	{models.BookingPending, models.BookingConfirmed}:   {models.RoleLandlord, models.RoleAdmin},
	{models.BookingPending, models.BookingCancelled}:   {models.RoleStudent, models.RoleLandlord, models.RoleAdmin},
	{models.BookingConfirmed, models.BookingCompleted}: {models.RoleLandlord, models.RoleAdmin},
	{models.BookingConfirmed, models.BookingCancelled}: {models.RoleStudent, models.RoleLandlord, models.RoleAdmin},
}

// CanTransition reports whether from -> to is an edge of the lifecycle.
func CanTransition(from, to models.BookingStatus) bool {
	_, ok := transitions[transition{from, to}]
	return ok
}

// CheckTransition returns ErrInvalidTransition when from -> to is not an
// edge, and ErrForbidden when role may not take it.
func CheckTransition(from, to models.BookingStatus, role models.UserRole) error {
	roles, ok := transitions[transition{from, to}]
	if !ok {
		return &TransitionError{From: from, To: to}
	}
	if !slices.Contains(roles, role) {
		return ErrForbidden
	}
	return nil
}

// IsTerminal reports whether no transition leaves s.
func IsTerminal(s models.BookingStatus) bool {
	return len(NextStatuses(s)) == 0
}

// NextStatuses lists the statuses reachable from s in one step.
func NextStatuses(s models.BookingStatus) []models.BookingStatus {
	var out []models.BookingStatus
	for _, to := range models.BookingStatusValues() {
		if CanTransition(s, to) {
			out = append(out, to)
		}
	}
	return out
}
