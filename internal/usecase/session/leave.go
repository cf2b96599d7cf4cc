package session

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// ======================================================
// Manual leave flow: request → approve | deny
// ======================================================

type RequestLeaveInput struct {
	BarberID  uint
	SalonID   uint
	StartDate string // 2006-01-02
	EndDate   string
	StartTime string // optional, 15:04
	EndTime   string
	Reason    string
}

type RequestLeave struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRequestLeave(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RequestLeave {
	return &RequestLeave{
		repo:  repo,
		audit: audit,
	}
}

func (uc *RequestLeave) Execute(
	ctx context.Context,
	in RequestLeaveInput,
) (*models.LeaveRecord, error) {

	loc := timezone.Location()

	start, err := time.ParseInLocation("2006-01-02", in.StartDate, loc)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRange)
	}
	end, err := time.ParseInLocation("2006-01-02", in.EndDate, loc)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRange)
	}
	if end.Before(start) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRange)
	}

	lr := &models.LeaveRecord{
		BarberID:  in.BarberID,
		SalonID:   in.SalonID,
		StartDate: start,
		EndDate:   end,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		Reason:    in.Reason,
		Status:    models.LeaveStatusPending,
	}
	if err := uc.repo.CreateLeaveRecord(ctx, lr); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   &in.BarberID,
		Action:   "leave_requested",
		Entity:   "leave_record",
		EntityID: &lr.ID,
	})

	return lr, nil
}

// ------------------------------------------------------

type DecideLeave struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDecideLeave(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DecideLeave {
	return &DecideLeave{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DecideLeave) Execute(
	ctx context.Context,
	leaveID uint,
	approve bool,
	deciderID uint,
) (*models.LeaveRecord, error) {

	lr, err := uc.repo.GetLeaveRecord(ctx, leaveID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	if lr.Status != models.LeaveStatusPending {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidTransition)
	}

	now := timezone.Now()
	lr.Status = models.LeaveStatusDenied
	if approve {
		lr.Status = models.LeaveStatusApproved
	}
	lr.DecidedBy = &deciderID
	lr.DecidedAt = &now

	if err := uc.repo.UpdateLeaveRecord(ctx, lr); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  lr.SalonID,
		UserID:   &deciderID,
		Action:   "leave_" + lr.Status,
		Entity:   "leave_record",
		EntityID: &lr.ID,
	})

	return lr, nil
}
