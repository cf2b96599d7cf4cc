package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/cache"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CheckInWalkInInput struct {
	BarberID   uint
	CustomerID uint
	ServiceIDs []uint
	Notes      string
}

type CheckInWalkInResult struct {
	Appointment *models.Appointment `json:"appointment"`
	Estimate    domain.WaitEstimate `json:"estimate"`
}

// ======================================================
// USE CASE
// ======================================================

// CheckInWalkIn joins a walk-in barber's queue. Low remaining capacity and
// fully-booked are advisory flags on the result, never hard rejections;
// the front desk decides whether to turn the customer away.
type CheckInWalkIn struct {
	repo  domain.Repository
	waits *cache.WaitCache
	audit *audit.Dispatcher
}

func NewCheckInWalkIn(
	repo domain.Repository,
	waits *cache.WaitCache,
	audit *audit.Dispatcher,
) *CheckInWalkIn {
	return &CheckInWalkIn{
		repo:  repo,
		waits: waits,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CheckInWalkIn) Execute(
	ctx context.Context,
	in CheckInWalkInInput,
) (*CheckInWalkInResult, error) {

	now := timezone.Now()
	today := timezone.DateOf(now)

	result := &CheckInWalkInResult{}

	err := uc.repo.InTx(ctx, func(ctx context.Context, r domain.Repository) error {
		barber, err := r.GetBarber(ctx, in.BarberID)
		if err != nil {
			return httperr.ErrBusiness(httperr.CodeNotFound)
		}

		mode, err := schedule.ParseMode(barber.Mode)
		if err != nil {
			return err
		}
		if mode != schedule.ModeWalkIn {
			return httperr.ErrBusiness("invalid_mode")
		}

		session, err := r.GetSessionForBarberDate(ctx, barber.ID, today)
		if err != nil {
			return httperr.ErrBusiness(httperr.CodeNotFound)
		}

		customer, err := r.GetCustomer(ctx, in.CustomerID)
		if err != nil {
			return httperr.ErrBusiness(httperr.CodeNotFound)
		}

		services, err := r.GetServices(ctx, barber.SalonID, in.ServiceIDs)
		if err != nil || len(services) != len(in.ServiceIDs) {
			return httperr.ErrBusiness(httperr.CodeNotFound)
		}

		queue, err := r.ListQueue(ctx, barber.ID, today)
		if err != nil {
			return err
		}

		requested := 0
		for _, s := range services {
			requested += s.DurationMin
		}

		result.Estimate = domain.Estimate(session, queueEntries(queue), requested, now)

		ap := &models.Appointment{
			Reference:   uuid.NewString(),
			SalonID:     barber.SalonID,
			BarberID:    barber.ID,
			CustomerID:  customer.ID,
			Kind:        models.AppointmentKindWalkIn,
			Date:        today,
			Status:      string(domain.StatusCheckedIn),
			Services:    services,
			Notes:       in.Notes,
			CheckedInAt: &now,
		}

		if err := r.CreateAppointment(ctx, ap); err != nil {
			return err
		}
		result.Appointment = ap

		return r.AddSessionRemaining(ctx, session.ID, -requested)
	})
	if err != nil {
		return nil, err
	}

	uc.waits.Invalidate(ctx, in.BarberID)

	uc.audit.Dispatch(audit.Event{
		SalonID:  result.Appointment.SalonID,
		Action:   "walkin_checked_in",
		Entity:   "appointment",
		EntityID: &result.Appointment.ID,
	})

	return result, nil
}

func queueEntries(queue []models.Appointment) []domain.QueueEntry {
	entries := make([]domain.QueueEntry, 0, len(queue))
	for _, ap := range queue {
		entries = append(entries, domain.QueueEntry{
			AppointmentID:    ap.ID,
			Status:           domain.Status(ap.Status),
			ServiceMin:       ap.ServiceMinutes(),
			ServiceStartedAt: ap.ServiceStartedAt,
		})
	}
	return entries
}
