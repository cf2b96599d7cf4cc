package appointment

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ======================================================
// Walk-in wait estimation
// ======================================================

// QueueEntry is one queued or in-chair walk-in, ordered by arrival.
type QueueEntry struct {
	AppointmentID    uint
	Status           Status
	ServiceMin       int
	ServiceStartedAt *time.Time
}

// WaitEstimate is advisory: low-remaining and fully-booked are flags for
// the caller, never hard rejections.
type WaitEstimate struct {
	QueuePosition    int  `json:"queue_position"`
	EstimatedWaitMin int  `json:"estimated_wait_min"`
	RemainingMin     int  `json:"remaining_min"`
	LowRemaining     bool `json:"low_remaining"`
	FullyBooked      bool `json:"fully_booked"`
	IsExpired        bool `json:"is_expired"`
}

// remainingServiceMin is what an entry still contributes to the people
// behind it. An in-chair customer counts only the unelapsed part of their
// service, floored at zero.
func remainingServiceMin(e QueueEntry, now time.Time) int {
	if e.Status != StatusInSalon || e.ServiceStartedAt == nil {
		return e.ServiceMin
	}
	elapsed := int(now.Sub(*e.ServiceStartedAt) / time.Minute)
	if elapsed >= e.ServiceMin {
		return 0
	}
	return e.ServiceMin - elapsed
}

// Estimate computes the wait a new walk-in would face behind the whole
// queue. requestedMin is the service time the caller wants to book.
func Estimate(
	session *models.WorkingSession,
	queue []QueueEntry,
	requestedMin int,
	now time.Time,
) WaitEstimate {

	wait := 0
	for _, e := range queue {
		wait += remainingServiceMin(e, now)
	}

	est := WaitEstimate{
		QueuePosition:    len(queue) + 1,
		EstimatedWaitMin: wait,
	}

	if session != nil {
		est.RemainingMin = session.RemainingMin
		est.FullyBooked = session.RemainingMin <= 0
		est.LowRemaining = !est.FullyBooked && session.RemainingMin <= requestedMin
		est.IsExpired = now.After(session.EndTime)
	} else {
		est.FullyBooked = true
	}

	return est
}

// EstimateFor computes position and wait for an appointment already in the
// queue; only entries strictly ahead of it contribute.
func EstimateFor(
	session *models.WorkingSession,
	queue []QueueEntry,
	appointmentID uint,
	now time.Time,
) WaitEstimate {

	wait := 0
	position := 1
	for _, e := range queue {
		if e.AppointmentID == appointmentID {
			break
		}
		wait += remainingServiceMin(e, now)
		position++
	}

	est := WaitEstimate{
		QueuePosition:    position,
		EstimatedWaitMin: wait,
	}

	if session != nil {
		est.RemainingMin = session.RemainingMin
		est.FullyBooked = session.RemainingMin <= 0
		est.IsExpired = now.After(session.EndTime)
	}

	return est
}
