package appointment

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/cache"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// TransitionAppointment moves an appointment along the status graph.
// Cancellation releases the slot and gives the service minutes back to the
// session counter in the same transaction as the status change.
type TransitionAppointment struct {
	repo  domain.Repository
	waits *cache.WaitCache
	audit *audit.Dispatcher
}

func NewTransitionAppointment(
	repo domain.Repository,
	waits *cache.WaitCache,
	audit *audit.Dispatcher,
) *TransitionAppointment {
	return &TransitionAppointment{
		repo:  repo,
		waits: waits,
		audit: audit,
	}
}

func (uc *TransitionAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	target string,
) (*models.Appointment, error) {

	now := timezone.Now()
	to := domain.Status(target)

	var ap *models.Appointment

	err := uc.repo.InTx(ctx, func(ctx context.Context, r domain.Repository) error {
		found, err := r.GetAppointment(ctx, appointmentID)
		if err != nil {
			return httperr.ErrBusiness(httperr.CodeNotFound)
		}
		ap = found

		if err := domain.Transition(ap, to, now); err != nil {
			return err
		}

		if to == domain.StatusCancelled {
			if ap.SlotID != nil {
				if err := r.ReleaseSlot(ctx, *ap.SlotID); err != nil {
					return err
				}
			}
			if session, err := uc.sessionOf(ctx, r, ap); err == nil {
				if err := r.AddSessionRemaining(ctx, session.ID, ap.ServiceMinutes()); err != nil {
					return err
				}
			}
		}

		return r.UpdateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	if ap.Kind == models.AppointmentKindWalkIn {
		uc.waits.Invalidate(ctx, ap.BarberID)
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  ap.SalonID,
		Action:   "appointment_" + string(to),
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

// sessionOf resolves the session an appointment draws capacity from: the
// slot's owner for scheduled bookings, the barber's session for walk-ins.
// The session may already be gone (withdrawn day); that is not an error.
func (uc *TransitionAppointment) sessionOf(
	ctx context.Context,
	r domain.Repository,
	ap *models.Appointment,
) (*models.WorkingSession, error) {

	if ap.SlotID != nil {
		slot, err := r.GetSlot(ctx, *ap.SlotID)
		if err != nil {
			return nil, err
		}
		return r.GetSession(ctx, slot.SessionID)
	}
	return r.GetSessionForBarberDate(ctx, ap.BarberID, timezone.DateOf(ap.Date))
}
