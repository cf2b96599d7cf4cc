package schedule

import (
	"testing"
	"time"
)

func clockAt(t *testing.T, hour, min int) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return time.Date(2026, 3, 9, hour, min, 0, 0, loc)
}

func TestGenerateSlotsCoversSession(t *testing.T) {
	s := slottedSession(t, 9, 0, 12, 0)

	slots := GenerateSlots(s, 15)

	if len(slots) != 12 {
		t.Fatalf("expected 12 slots for a 3h session, got %d", len(slots))
	}
	if !slots[0].StartTime.Equal(s.StartTime) {
		t.Fatalf("first slot starts at %s, want %s",
			slots[0].StartTime.Format("15:04"), s.StartTime.Format("15:04"))
	}
	if !slots[len(slots)-1].EndTime.Equal(s.EndTime) {
		t.Fatalf("last slot ends at %s, want %s",
			slots[len(slots)-1].EndTime.Format("15:04"), s.EndTime.Format("15:04"))
	}
}

func TestGenerateSlotsContiguous(t *testing.T) {
	slots := GenerateSlots(slottedSession(t, 10, 0, 11, 0), 15)

	for i := 1; i < len(slots); i++ {
		if !slots[i].StartTime.Equal(slots[i-1].EndTime) {
			t.Fatalf("slot %d starts at %s but slot %d ends at %s",
				i, slots[i].StartTime.Format("15:04"),
				i-1, slots[i-1].EndTime.Format("15:04"))
		}
	}
	for i, s := range slots {
		if s.IsBooked {
			t.Fatalf("slot %d generated as booked", i)
		}
	}
}

func TestGenerateSlotsDropsTrailingPartial(t *testing.T) {
	// 09:00-09:50 holds three full 15-minute slots; the 5-minute tail is
	// not a slot.
	slots := GenerateSlots(slottedSession(t, 9, 0, 9, 50), 15)

	if len(slots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(slots))
	}
	if !slots[2].EndTime.Equal(clockAt(t, 9, 45)) {
		t.Fatalf("last slot ends at %s, want 09:45", slots[2].EndTime.Format("15:04"))
	}
}

func TestGenerateSlotsWalkInProducesNone(t *testing.T) {
	s := slottedSession(t, 9, 0, 18, 0)
	s.Mode = string(ModeWalkIn)

	if slots := GenerateSlots(s, 15); len(slots) != 0 {
		t.Fatalf("walk-in session generated %d slots", len(slots))
	}
}

func TestGenerateSlotsTooShortSession(t *testing.T) {
	if slots := GenerateSlots(slottedSession(t, 9, 0, 9, 10), 15); len(slots) != 0 {
		t.Fatalf("expected no slots for a sub-interval session, got %d", len(slots))
	}
}
