package appointment

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition moves ap along the status graph and stamps the timestamp the
// target state owns. It mutates only the appointment; slot release and
// capacity restoration belong to the caller's transaction.
func Transition(ap *models.Appointment, to Status, now time.Time) error {
	if err := AssertTransition(Status(ap.Status), to); err != nil {
		return err
	}

	ap.Status = string(to)

	switch to {
	case StatusCheckedIn:
		ap.CheckedInAt = &now
	case StatusInSalon:
		ap.ServiceStartedAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
	case StatusCancelled:
		ap.CancelledAt = &now
	}

	return nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	return Transition(ap, StatusCancelled, now)
}

func Complete(ap *models.Appointment, now time.Time) error {
	return Transition(ap, StatusCompleted, now)
}

func InitialStatus(kind string) Status {
	if kind == models.AppointmentKindWalkIn {
		return StatusCheckedIn
	}
	return StatusBooked
}
