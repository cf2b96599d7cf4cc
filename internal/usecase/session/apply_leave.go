package session

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	apdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

const defaultLeaveReason = "Day off"

// ======================================================
// INPUT
// ======================================================

type ApplyLeaveInput struct {
	SessionID uint
	Reason    string
	ActorID   *uint
}

type ApplyLeaveResult struct {
	LeaveRecord *models.LeaveRecord  `json:"leave_record"`
	Cancelled   []models.Appointment `json:"cancelled_appointments"`
}

// ======================================================
// USE CASE
// ======================================================

// ApplyLeave withdraws a session: pre-arrival bookings are cancelled, the
// session and its unbooked slots go away, and one approved leave record
// takes their place. All of it commits or none of it does. Appointments
// whose customers have already arrived keep their slots.
type ApplyLeave struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewApplyLeave(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ApplyLeave {
	return &ApplyLeave{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *ApplyLeave) Execute(
	ctx context.Context,
	in ApplyLeaveInput,
) (*ApplyLeaveResult, error) {

	now := timezone.Now()
	result := &ApplyLeaveResult{}
	var salonID, barberID, sessionID uint

	err := uc.repo.InTx(ctx, func(ctx context.Context, r domain.Repository) error {
		s, err := r.GetSessionForUpdate(ctx, in.SessionID)
		if err != nil {
			return httperr.ErrBusiness(httperr.CodeNotFound)
		}
		salonID, barberID, sessionID = s.SalonID, s.BarberID, s.ID

		aps, err := r.ListPreArrivalAppointments(ctx, s.ID)
		if err != nil {
			return err
		}

		for i := range aps {
			ap := &aps[i]
			if err := apdomain.Cancel(ap, now); err != nil {
				return err
			}
			if ap.SlotID != nil {
				if err := r.ReleaseSlot(ctx, *ap.SlotID); err != nil {
					return err
				}
			}
			if err := r.UpdateAppointment(ctx, ap); err != nil {
				return err
			}
			result.Cancelled = append(result.Cancelled, *ap)
		}

		if err := r.DeleteUnbookedSlots(ctx, s.ID); err != nil {
			return err
		}
		if err := r.DeleteSession(ctx, s.ID); err != nil {
			return err
		}

		reason := in.Reason
		if reason == "" && !timezone.SameDate(s.Date, now) {
			reason = defaultLeaveReason
		}

		lr := &models.LeaveRecord{
			BarberID:  s.BarberID,
			SalonID:   s.SalonID,
			StartDate: s.Date,
			EndDate:   s.Date,
			StartTime: s.StartTime.Format("15:04"),
			EndTime:   s.EndTime.Format("15:04"),
			Reason:    reason,
			Status:    models.LeaveStatusApproved,
		}
		if err := r.CreateLeaveRecord(ctx, lr); err != nil {
			return err
		}

		result.LeaveRecord = lr
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &barberID,
		Action:   "leave_applied",
		Entity:   "working_session",
		EntityID: &sessionID,
		Metadata: map[string]int{"cancelled": len(result.Cancelled)},
	})

	return result, nil
}
