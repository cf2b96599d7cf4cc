package session

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type EditSessionInput struct {
	SessionID uint
	StartTime string // 15:04; empty keeps the current bound
	EndTime   string
	ActorID   *uint
}

type EditSessionResult struct {
	Session *models.WorkingSession `json:"session"`
	Slots   []models.Slot          `json:"slots"`
}

// ======================================================
// USE CASE
// ======================================================

// EditSession applies a time change to an existing session: surviving slots
// stay untouched, unbooked slots outside the new bounds go away, new gaps
// get fresh slots. A booked slot outside the new bounds rejects the whole
// edit and reports every affected booking.
type EditSession struct {
	repo        domain.Repository
	audit       *audit.Dispatcher
	intervalMin int
}

func NewEditSession(
	repo domain.Repository,
	audit *audit.Dispatcher,
	intervalMin int,
) *EditSession {
	return &EditSession{
		repo:        repo,
		audit:       audit,
		intervalMin: intervalMin,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *EditSession) Execute(
	ctx context.Context,
	in EditSessionInput,
) (*EditSessionResult, error) {

	var session *models.WorkingSession

	err := uc.repo.InTx(ctx, func(ctx context.Context, r domain.Repository) error {
		s, err := r.GetSessionForUpdate(ctx, in.SessionID)
		if err != nil {
			return httperr.ErrBusiness(httperr.CodeNotFound)
		}

		slots, err := r.ListSlotsForSessionForUpdate(ctx, s.ID)
		if err != nil {
			return err
		}

		newStart := s.StartTime
		if in.StartTime != "" {
			newStart, err = parseClockOn(s.Date, in.StartTime)
			if err != nil {
				return httperr.ErrBusiness(httperr.CodeInvalidRange)
			}
		}
		newEnd := s.EndTime
		if in.EndTime != "" {
			newEnd, err = parseClockOn(s.Date, in.EndTime)
			if err != nil {
				return httperr.ErrBusiness(httperr.CodeInvalidRange)
			}
		}

		plan, conflicts, err := domain.PlanTimeChange(s, slots, newStart, newEnd, uc.intervalMin)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return httperr.ErrBusinessWith(httperr.CodeConflictBookedOutsideRange, conflicts)
		}

		if len(plan.DeleteSlotIDs) > 0 {
			deleted, err := r.DeleteSlotsIfUnbooked(ctx, plan.DeleteSlotIDs)
			if err != nil {
				return err
			}
			// A shortfall means a booking slipped in after partitioning;
			// the edit no longer holds.
			if deleted != int64(len(plan.DeleteSlotIDs)) {
				return httperr.ErrBusiness(httperr.CodeConflictBookedOutsideRange)
			}
		}

		s.StartTime = plan.NewStart
		s.EndTime = plan.NewEnd
		s.RemainingMin = plan.RemainingMin
		if err := r.UpdateSession(ctx, s); err != nil {
			return err
		}

		if len(plan.NewSlots) > 0 {
			if err := r.CreateSlots(ctx, plan.NewSlots); err != nil {
				return err
			}
		}

		session = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	slots, err := uc.repo.ListSlotsForSession(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  session.SalonID,
		UserID:   in.ActorID,
		Action:   "session_time_changed",
		Entity:   "working_session",
		EntityID: &session.ID,
	})

	return &EditSessionResult{Session: session, Slots: slots}, nil
}
