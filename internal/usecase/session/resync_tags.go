package session

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// ResyncBarberTags re-stamps a barber's mode/category/position onto all of
// their future sessions. Called after the barber record changes; sessions
// never re-derive these themselves.
type ResyncBarberTags struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewResyncBarberTags(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ResyncBarberTags {
	return &ResyncBarberTags{
		repo:  repo,
		audit: audit,
	}
}

func (uc *ResyncBarberTags) Execute(
	ctx context.Context,
	barberID uint,
) (int64, error) {

	barber, err := uc.repo.GetBarber(ctx, barberID)
	if err != nil {
		return 0, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	updated, err := uc.repo.RestampSessions(
		ctx,
		barber.ID,
		timezone.DateOf(timezone.Now()),
		barber.Mode,
		barber.Category,
		barber.Position,
	)
	if err != nil {
		return 0, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  barber.SalonID,
		UserID:   &barber.ID,
		Action:   "sessions_restamped",
		Entity:   "barber",
		EntityID: &barber.ID,
		Metadata: map[string]int64{"updated": updated},
	})

	return updated, nil
}
