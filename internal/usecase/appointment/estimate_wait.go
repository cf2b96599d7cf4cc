package appointment

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/cache"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type EstimateWaitInput struct {
	BarberID uint

	// AppointmentID asks for the position of an appointment already in the
	// queue instead of the wait a new walk-in would face.
	AppointmentID *uint

	// RequestedServiceMin drives the low-remaining flag for new walk-ins.
	RequestedServiceMin int
}

// ======================================================
// USE CASE
// ======================================================

// EstimateWait is read-only and tolerates a slightly stale snapshot, so
// generic (no-appointment) estimates are served from the cache when warm.
type EstimateWait struct {
	repo  domain.Repository
	waits *cache.WaitCache
}

func NewEstimateWait(
	repo domain.Repository,
	waits *cache.WaitCache,
) *EstimateWait {
	return &EstimateWait{
		repo:  repo,
		waits: waits,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *EstimateWait) Execute(
	ctx context.Context,
	in EstimateWaitInput,
) (*domain.WaitEstimate, error) {

	cacheable := in.AppointmentID == nil && in.RequestedServiceMin == 0
	if cacheable {
		if est, ok := uc.waits.Get(ctx, in.BarberID); ok {
			return est, nil
		}
	}

	now := timezone.Now()
	today := timezone.DateOf(now)

	if _, err := uc.repo.GetBarber(ctx, in.BarberID); err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	// No session today means no capacity; the estimator handles nil.
	session, err := uc.repo.GetSessionForBarberDate(ctx, in.BarberID, today)
	if err != nil {
		session = nil
	}

	queue, err := uc.repo.ListQueue(ctx, in.BarberID, today)
	if err != nil {
		return nil, err
	}
	entries := queueEntries(queue)

	var est domain.WaitEstimate
	if in.AppointmentID != nil {
		est = domain.EstimateFor(session, entries, *in.AppointmentID, now)
	} else {
		est = domain.Estimate(session, entries, in.RequestedServiceMin, now)
	}

	if cacheable {
		uc.waits.Set(ctx, in.BarberID, &est)
	}

	return &est, nil
}
