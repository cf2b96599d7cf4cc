package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Repository interface {
	// InTx runs fn against a transaction-scoped copy of the repository.
	InTx(
		ctx context.Context,
		fn func(ctx context.Context, r Repository) error,
	) error

	// -------- Collaborator records --------
	GetBarber(
		ctx context.Context,
		id uint,
	) (*models.Barber, error)

	GetCustomer(
		ctx context.Context,
		id uint,
	) (*models.Customer, error)

	GetServices(
		ctx context.Context,
		salonID uint,
		ids []uint,
	) ([]models.Service, error)

	// -------- Slots --------
	GetSlot(
		ctx context.Context,
		id uint,
	) (*models.Slot, error)

	// ClaimSlot flips is_booked only if it is currently false; the boolean
	// reports whether this caller won the claim.
	ClaimSlot(
		ctx context.Context,
		slotID uint,
	) (bool, error)

	ReleaseSlot(
		ctx context.Context,
		slotID uint,
	) error

	FindFreeSlot(
		ctx context.Context,
		barberID uint,
		date time.Time,
		start time.Time,
		end time.Time,
	) (*models.Slot, error)

	// -------- Sessions --------
	GetSession(
		ctx context.Context,
		id uint,
	) (*models.WorkingSession, error)

	GetSessionForBarberDate(
		ctx context.Context,
		barberID uint,
		date time.Time,
	) (*models.WorkingSession, error)

	// AddSessionRemaining adjusts the remaining-capacity counter by delta
	// minutes (negative to claim, positive to restore).
	AddSessionRemaining(
		ctx context.Context,
		sessionID uint,
		deltaMin int,
	) error

	// -------- Appointments --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// ListQueue returns the barber's checked-in and in-chair walk-ins for
	// the date, ordered by arrival.
	ListQueue(
		ctx context.Context,
		barberID uint,
		date time.Time,
	) ([]models.Appointment, error)
}
