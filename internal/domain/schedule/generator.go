package schedule

import (
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timegrid"
)

// GenerateSlots carves a session's [start, end) into unbooked slots of the
// configured interval. A walk-in session produces no slots. Generation is
// additive only; it never touches an existing slot.
func GenerateSlots(session *models.WorkingSession, intervalMin int) []models.Slot {
	if Mode(session.Mode) != ModeSlotted {
		return nil
	}

	bounds := timegrid.Boundaries(session.StartTime, session.EndTime, intervalMin)

	slots := make([]models.Slot, 0, len(bounds))
	for _, b := range bounds {
		slots = append(slots, models.Slot{
			SessionID: session.ID,
			SalonID:   session.SalonID,
			Date:      session.Date,
			StartTime: b.Start,
			EndTime:   b.End,
			IsBooked:  false,
		})
	}
	return slots
}
