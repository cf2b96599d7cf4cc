package session

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

// DeleteSession removes a session outright, cascading to its unbooked
// slots. Sessions with any booked slot cannot be deleted; the bookings
// must be cancelled or transferred first (or use ApplyLeave).
type DeleteSession struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteSession(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteSession {
	return &DeleteSession{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteSession) Execute(
	ctx context.Context,
	sessionID uint,
	actorID *uint,
) error {

	var salonID uint

	err := uc.repo.InTx(ctx, func(ctx context.Context, r domain.Repository) error {
		s, err := r.GetSessionForUpdate(ctx, sessionID)
		if err != nil {
			return httperr.ErrBusiness(httperr.CodeNotFound)
		}
		salonID = s.SalonID

		booked, err := r.CountBookedSlots(ctx, s.ID)
		if err != nil {
			return err
		}
		if booked > 0 {
			return httperr.ErrBusiness(httperr.CodeSessionHasBookings)
		}

		if err := r.DeleteUnbookedSlots(ctx, s.ID); err != nil {
			return err
		}
		return r.DeleteSession(ctx, s.ID)
	})
	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   actorID,
		Action:   "session_deleted",
		Entity:   "working_session",
		EntityID: &sessionID,
	})

	return nil
}
