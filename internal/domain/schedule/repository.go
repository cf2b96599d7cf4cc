package schedule

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Repository interface {
	// InTx runs fn against a transaction-scoped copy of the repository.
	// Every reconciliation that mutates more than one row goes through it.
	InTx(
		ctx context.Context,
		fn func(ctx context.Context, r Repository) error,
	) error

	// -------- Barber --------
	GetBarber(
		ctx context.Context,
		id uint,
	) (*models.Barber, error)

	// -------- Session --------
	GetSession(
		ctx context.Context,
		id uint,
	) (*models.WorkingSession, error)

	GetSessionForUpdate(
		ctx context.Context,
		id uint,
	) (*models.WorkingSession, error)

	ListSessionsForDate(
		ctx context.Context,
		barberID uint,
		date time.Time,
	) ([]models.WorkingSession, error)

	CreateSession(
		ctx context.Context,
		s *models.WorkingSession,
	) error

	UpdateSession(
		ctx context.Context,
		s *models.WorkingSession,
	) error

	DeleteSession(
		ctx context.Context,
		id uint,
	) error

	RestampSessions(
		ctx context.Context,
		barberID uint,
		from time.Time,
		mode string,
		category string,
		position string,
	) (int64, error)

	// -------- Slots --------
	ListSlotsForSession(
		ctx context.Context,
		sessionID uint,
	) ([]models.Slot, error)

	ListSlotsForSessionForUpdate(
		ctx context.Context,
		sessionID uint,
	) ([]models.Slot, error)

	CreateSlots(
		ctx context.Context,
		slots []models.Slot,
	) error

	DeleteSlotsIfUnbooked(
		ctx context.Context,
		ids []uint,
	) (int64, error)

	DeleteUnbookedSlots(
		ctx context.Context,
		sessionID uint,
	) error

	CountBookedSlots(
		ctx context.Context,
		sessionID uint,
	) (int64, error)

	ReleaseSlot(
		ctx context.Context,
		slotID uint,
	) error

	// -------- Appointments under a session --------
	ListPreArrivalAppointments(
		ctx context.Context,
		sessionID uint,
	) ([]models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Leave --------
	CreateLeaveRecord(
		ctx context.Context,
		lr *models.LeaveRecord,
	) error

	GetLeaveRecord(
		ctx context.Context,
		id uint,
	) (*models.LeaveRecord, error)

	UpdateLeaveRecord(
		ctx context.Context,
		lr *models.LeaveRecord,
	) error
}
