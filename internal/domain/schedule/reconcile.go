package schedule

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timegrid"
)

// ======================================================
// Session reconciliation: pure planning over a snapshot
// ======================================================

// BookedConflict identifies a booked slot that a time change would push
// outside the new bounds. Reported back to the caller so the affected
// customers can be re-routed before retrying.
type BookedConflict struct {
	SlotID    uint      `json:"slot_id"`
	Date      time.Time `json:"date"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type Partition struct {
	Within  []models.Slot
	Outside []models.Slot
}

// PartitionSlots splits a session's slots into those fully contained in
// [newStart, newEnd) and the rest.
func PartitionSlots(slots []models.Slot, newStart, newEnd time.Time) Partition {
	bounds := timegrid.Interval{Start: newStart, End: newEnd}

	var p Partition
	for _, s := range slots {
		iv := timegrid.Interval{Start: s.StartTime, End: s.EndTime}
		if timegrid.Contains(bounds, iv) {
			p.Within = append(p.Within, s)
		} else {
			p.Outside = append(p.Outside, s)
		}
	}
	return p
}

// TimeChangePlan is the committed shape of an applyTimeChange: which slots
// to delete, which to create, and the session's new stored state. The plan
// mutates nothing itself.
type TimeChangePlan struct {
	NewStart time.Time
	NewEnd   time.Time

	// Unbooked slots that fell outside the new bounds. Deletion must be
	// re-conditioned on is_booked = false at delete time.
	DeleteSlotIDs []uint

	// Fresh unbooked slots covering boundaries not already occupied by a
	// surviving slot.
	NewSlots []models.Slot

	RemainingMin int
}

// PlanTimeChange computes the reconciliation of a session to new bounds.
// Returns the conflicts instead of a plan when any booked slot would end up
// outside the new range; in that case nothing may be mutated.
func PlanTimeChange(
	session *models.WorkingSession,
	slots []models.Slot,
	newStart time.Time,
	newEnd time.Time,
	intervalMin int,
) (*TimeChangePlan, []BookedConflict, error) {

	start, err := timegrid.RoundToInterval(newStart, intervalMin)
	if err != nil {
		return nil, nil, httperr.ErrBusiness("invalid_range")
	}
	end, err := timegrid.RoundToInterval(newEnd, intervalMin)
	if err != nil {
		return nil, nil, httperr.ErrBusiness("invalid_range")
	}

	if !end.After(start) {
		return nil, nil, httperr.ErrBusiness("invalid_range")
	}

	p := PartitionSlots(slots, start, end)

	var conflicts []BookedConflict
	for _, s := range p.Outside {
		if s.IsBooked {
			conflicts = append(conflicts, BookedConflict{
				SlotID:    s.ID,
				Date:      s.Date,
				StartTime: s.StartTime,
				EndTime:   s.EndTime,
			})
		}
	}
	if len(conflicts) > 0 {
		return nil, conflicts, nil
	}

	plan := &TimeChangePlan{
		NewStart:     start,
		NewEnd:       end,
		RemainingMin: int(end.Sub(start) / time.Minute),
	}

	for _, s := range p.Outside {
		plan.DeleteSlotIDs = append(plan.DeleteSlotIDs, s.ID)
	}

	// The reset counter keeps its meaning only if minutes already claimed by
	// surviving bookings are taken back out.
	for _, s := range p.Within {
		if s.IsBooked {
			plan.RemainingMin -= int(s.EndTime.Sub(s.StartTime) / time.Minute)
		}
	}

	// A walk-in session never owns slots, so the gap fill applies only to
	// slotted mode.
	if Mode(session.Mode) != ModeSlotted {
		return plan, nil, nil
	}

	// Survivors on the rounded grid; overlap-skip compares rounded times so
	// a slot stored off-grid cannot shadow the wrong boundary.
	kept := make([]timegrid.Interval, 0, len(p.Within))
	for _, s := range p.Within {
		ks, errS := timegrid.RoundToInterval(s.StartTime, intervalMin)
		ke, errE := timegrid.RoundToInterval(s.EndTime, intervalMin)
		if errS != nil || errE != nil {
			ks, ke = s.StartTime, s.EndTime
		}
		kept = append(kept, timegrid.Interval{Start: ks, End: ke})
	}

	for _, b := range timegrid.Boundaries(start, end, intervalMin) {
		occupied := false
		for _, k := range kept {
			if timegrid.Overlaps(b, k) {
				occupied = true
				break
			}
		}
		if occupied {
			continue
		}
		plan.NewSlots = append(plan.NewSlots, models.Slot{
			SessionID: session.ID,
			SalonID:   session.SalonID,
			Date:      session.Date,
			StartTime: b.Start,
			EndTime:   b.End,
			IsBooked:  false,
		})
	}

	return plan, nil, nil
}
