package appointment

import "github.com/BruksfildServices01/salon-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	// StatusBooked is a future scheduled appointment, customer not yet
	// arrived. Stored as "appointment" for historical reasons.
	StatusBooked    Status = "appointment"
	StatusCheckedIn Status = "checked_in"
	StatusInSalon   Status = "in_salon"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "canceled"
)

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// ===============================
// Transition graph
// ===============================

// CanTransition reports whether from → to is on the allowed graph:
// booked → checked_in → in_salon → completed, with completion reachable
// from any pre-completion state and cancellation from any non-terminal one.
func CanTransition(from, to Status) bool {
	if from.Terminal() {
		return false
	}

	switch to {
	case StatusCheckedIn:
		return from == StatusBooked
	case StatusInSalon:
		return from == StatusBooked || from == StatusCheckedIn
	case StatusCompleted:
		return from == StatusBooked || from == StatusCheckedIn || from == StatusInSalon
	case StatusCancelled:
		return true
	default:
		return false
	}
}

func AssertTransition(from, to Status) error {
	if !CanTransition(from, to) {
		return httperr.ErrBusiness(httperr.CodeInvalidTransition)
	}
	return nil
}
