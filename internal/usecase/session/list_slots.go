package session

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type SessionWithSlots struct {
	Session models.WorkingSession `json:"session"`
	Slots   []models.Slot         `json:"slots"`
}

// ListSlots groups a barber's sessions for a date with their slots,
// filtered to slots that still lie in the future.
type ListSlots struct {
	repo domain.Repository
}

func NewListSlots(repo domain.Repository) *ListSlots {
	return &ListSlots{repo: repo}
}

func (uc *ListSlots) Execute(
	ctx context.Context,
	barberID uint,
	date time.Time,
) ([]SessionWithSlots, error) {

	sessions, err := uc.repo.ListSessionsForDate(ctx, barberID, timezone.DateOf(date))
	if err != nil {
		return nil, err
	}

	now := timezone.Now()

	out := make([]SessionWithSlots, 0, len(sessions))
	for _, s := range sessions {
		slots, err := uc.repo.ListSlotsForSession(ctx, s.ID)
		if err != nil {
			return nil, err
		}

		future := make([]models.Slot, 0, len(slots))
		for _, sl := range slots {
			if sl.StartTime.After(now) {
				future = append(future, sl)
			}
		}

		out = append(out, SessionWithSlots{Session: s, Slots: future})
	}

	return out, nil
}
