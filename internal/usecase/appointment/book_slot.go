package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type BookSlotInput struct {
	SlotID     uint
	CustomerID uint
	ServiceIDs []uint
	Notes      string
}

// ======================================================
// USE CASE
// ======================================================

// BookSlot claims an unbooked slot and creates the appointment in one
// transaction. The claim is conditional on the slot still being unbooked,
// so of two racing bookings exactly one wins; the other gets
// slot_already_booked.
type BookSlot struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewBookSlot(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *BookSlot {
	return &BookSlot{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookSlot) Execute(
	ctx context.Context,
	in BookSlotInput,
) (*models.Appointment, error) {

	var ap *models.Appointment

	err := uc.repo.InTx(ctx, func(ctx context.Context, r domain.Repository) error {
		slot, err := r.GetSlot(ctx, in.SlotID)
		if err != nil {
			return httperr.ErrBusiness(httperr.CodeNotFound)
		}
		if slot.IsBooked {
			return httperr.ErrBusiness(httperr.CodeSlotAlreadyBooked)
		}

		session, err := r.GetSession(ctx, slot.SessionID)
		if err != nil {
			return httperr.ErrBusiness(httperr.CodeNotFound)
		}

		customer, err := r.GetCustomer(ctx, in.CustomerID)
		if err != nil {
			return httperr.ErrBusiness(httperr.CodeNotFound)
		}

		services, err := r.GetServices(ctx, slot.SalonID, in.ServiceIDs)
		if err != nil || len(services) != len(in.ServiceIDs) {
			return httperr.ErrBusiness(httperr.CodeNotFound)
		}

		claimed, err := r.ClaimSlot(ctx, slot.ID)
		if err != nil {
			return err
		}
		if !claimed {
			return httperr.ErrBusiness(httperr.CodeSlotAlreadyBooked)
		}

		ap = &models.Appointment{
			Reference:  uuid.NewString(),
			SalonID:    slot.SalonID,
			BarberID:   session.BarberID,
			CustomerID: customer.ID,
			SlotID:     &slot.ID,
			Kind:       models.AppointmentKindScheduled,
			Date:       slot.Date,
			StartTime:  slot.StartTime,
			EndTime:    slot.EndTime,
			Status:     string(domain.StatusBooked),
			Services:   services,
			Notes:      in.Notes,
		}

		if err := r.CreateAppointment(ctx, ap); err != nil {
			return err
		}

		return r.AddSessionRemaining(ctx, session.ID, -ap.ServiceMinutes())
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  ap.SalonID,
		Action:   "slot_booked",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
