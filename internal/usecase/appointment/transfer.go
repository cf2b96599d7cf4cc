package appointment

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/cache"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// TransferAppointment moves an appointment to another barber. A slotted
// target needs an unbooked slot with the identical time range; a walk-in
// target needs enough remaining capacity. On any failure nothing moves.
type TransferAppointment struct {
	repo  domain.Repository
	waits *cache.WaitCache
	audit *audit.Dispatcher
}

func NewTransferAppointment(
	repo domain.Repository,
	waits *cache.WaitCache,
	audit *audit.Dispatcher,
) *TransferAppointment {
	return &TransferAppointment{
		repo:  repo,
		waits: waits,
		audit: audit,
	}
}

func (uc *TransferAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	newBarberID uint,
) (*models.Appointment, error) {

	var ap *models.Appointment
	var oldBarberID uint

	err := uc.repo.InTx(ctx, func(ctx context.Context, r domain.Repository) error {
		found, err := r.GetAppointment(ctx, appointmentID)
		if err != nil {
			return httperr.ErrBusiness(httperr.CodeNotFound)
		}
		ap = found
		oldBarberID = ap.BarberID

		if domain.Status(ap.Status).Terminal() {
			return httperr.ErrBusiness(httperr.CodeInvalidTransition)
		}

		barber, err := r.GetBarber(ctx, newBarberID)
		if err != nil {
			return httperr.ErrBusiness(httperr.CodeNotFound)
		}

		mode, err := schedule.ParseMode(barber.Mode)
		if err != nil {
			return err
		}

		minutes := ap.ServiceMinutes()

		switch mode {
		case schedule.ModeSlotted:
			// A walk-in appointment has no fixed time range to match.
			if ap.SlotID == nil {
				return httperr.ErrBusiness(httperr.CodeNoCapacity)
			}

			free, err := r.FindFreeSlot(ctx, barber.ID, ap.Date, ap.StartTime, ap.EndTime)
			if err != nil || free == nil {
				return httperr.ErrBusiness(httperr.CodeNoCapacity)
			}

			claimed, err := r.ClaimSlot(ctx, free.ID)
			if err != nil {
				return err
			}
			if !claimed {
				return httperr.ErrBusiness(httperr.CodeNoCapacity)
			}

			if err := uc.releaseSource(ctx, r, ap, minutes); err != nil {
				return err
			}

			target, err := r.GetSession(ctx, free.SessionID)
			if err != nil {
				return err
			}
			if err := r.AddSessionRemaining(ctx, target.ID, -minutes); err != nil {
				return err
			}

			ap.SlotID = &free.ID
			ap.Kind = models.AppointmentKindScheduled
			ap.StartTime = free.StartTime
			ap.EndTime = free.EndTime

		case schedule.ModeWalkIn:
			target, err := r.GetSessionForBarberDate(ctx, barber.ID, ap.Date)
			if err != nil {
				return httperr.ErrBusiness(httperr.CodeNoCapacity)
			}
			if target.RemainingMin < minutes {
				return httperr.ErrBusiness(httperr.CodeNoCapacity)
			}

			if err := uc.releaseSource(ctx, r, ap, minutes); err != nil {
				return err
			}
			if err := r.AddSessionRemaining(ctx, target.ID, -minutes); err != nil {
				return err
			}

			ap.SlotID = nil
			ap.Kind = models.AppointmentKindWalkIn
		}

		ap.BarberID = barber.ID
		return r.UpdateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	uc.waits.Invalidate(ctx, oldBarberID)
	uc.waits.Invalidate(ctx, ap.BarberID)

	uc.audit.Dispatch(audit.Event{
		SalonID:  ap.SalonID,
		Action:   "appointment_transferred",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]uint{"from": oldBarberID, "to": ap.BarberID},
	})

	return ap, nil
}

// releaseSource gives back the old slot and capacity before the target
// claim takes effect. Runs inside the transfer transaction.
func (uc *TransferAppointment) releaseSource(
	ctx context.Context,
	r domain.Repository,
	ap *models.Appointment,
	minutes int,
) error {

	if ap.SlotID != nil {
		slot, err := r.GetSlot(ctx, *ap.SlotID)
		if err != nil {
			return err
		}
		if err := r.ReleaseSlot(ctx, slot.ID); err != nil {
			return err
		}
		if session, err := r.GetSession(ctx, slot.SessionID); err == nil {
			return r.AddSessionRemaining(ctx, session.ID, minutes)
		}
		return nil
	}

	if session, err := r.GetSessionForBarberDate(ctx, ap.BarberID, ap.Date); err == nil {
		return r.AddSessionRemaining(ctx, session.ID, minutes)
	}
	return nil
}
