package session

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timegrid"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type DayInput struct {
	Date      string `json:"date"`       // 2006-01-02
	StartTime string `json:"start_time"` // 15:04
	EndTime   string `json:"end_time"`
}

type CreateSessionsInput struct {
	BarberID uint
	SalonID  uint
	Days     []DayInput
}

type RejectedDate struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

type CreateSessionsResult struct {
	Sessions      []models.WorkingSession `json:"sessions"`
	Slots         []models.Slot           `json:"slots"`
	RejectedDates []RejectedDate          `json:"rejected_dates,omitempty"`
}

// ======================================================
// USE CASE
// ======================================================

// CreateSessions schedules a barber's availability for a batch of dates.
// Bad dates are skipped and reported, not batch-fatal; the call fails only
// when nothing at all could be created. The whole batch commits atomically.
type CreateSessions struct {
	repo        domain.Repository
	audit       *audit.Dispatcher
	intervalMin int
}

func NewCreateSessions(
	repo domain.Repository,
	audit *audit.Dispatcher,
	intervalMin int,
) *CreateSessions {
	return &CreateSessions{
		repo:        repo,
		audit:       audit,
		intervalMin: intervalMin,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateSessions) Execute(
	ctx context.Context,
	in CreateSessionsInput,
) (*CreateSessionsResult, error) {

	barber, err := uc.repo.GetBarber(ctx, in.BarberID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	loc := timezone.Location()
	result := &CreateSessionsResult{}

	err = uc.repo.InTx(ctx, func(ctx context.Context, r domain.Repository) error {
		for _, day := range in.Days {
			date, err := time.ParseInLocation("2006-01-02", day.Date, loc)
			if err != nil {
				result.RejectedDates = append(result.RejectedDates, RejectedDate{
					Date:   day.Date,
					Reason: httperr.CodeInvalidRange,
				})
				continue
			}

			start, errS := parseClockOn(date, day.StartTime)
			end, errE := parseClockOn(date, day.EndTime)
			if errS != nil || errE != nil {
				result.RejectedDates = append(result.RejectedDates, RejectedDate{
					Date:   day.Date,
					Reason: httperr.CodeInvalidRange,
				})
				continue
			}

			start, errS = timegrid.RoundToInterval(start, uc.intervalMin)
			end, errE = timegrid.RoundToInterval(end, uc.intervalMin)
			if errS != nil || errE != nil || !end.After(start) {
				result.RejectedDates = append(result.RejectedDates, RejectedDate{
					Date:   day.Date,
					Reason: httperr.CodeInvalidRange,
				})
				continue
			}

			s := models.WorkingSession{
				BarberID:     barber.ID,
				SalonID:      in.SalonID,
				Date:         date,
				StartTime:    start,
				EndTime:      end,
				RemainingMin: int(end.Sub(start) / time.Minute),
				Mode:         barber.Mode,
				Category:     barber.Category,
				Position:     barber.Position,
			}

			if err := r.CreateSession(ctx, &s); err != nil {
				return err
			}

			slots := domain.GenerateSlots(&s, uc.intervalMin)
			if len(slots) > 0 {
				if err := r.CreateSlots(ctx, slots); err != nil {
					return err
				}
			}

			result.Sessions = append(result.Sessions, s)
			result.Slots = append(result.Slots, slots...)
		}

		if len(result.Sessions) == 0 {
			return httperr.ErrBusinessWith(httperr.CodeInvalidRange, result.RejectedDates)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for i := range result.Sessions {
		id := result.Sessions[i].ID
		uc.audit.Dispatch(audit.Event{
			SalonID:  in.SalonID,
			UserID:   &in.BarberID,
			Action:   "session_created",
			Entity:   "working_session",
			EntityID: &id,
		})
	}

	return result, nil
}

func parseClockOn(date time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		date.Location(),
	), nil
}
