package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Transaction boundary
// --------------------------------------------------

func (r *AppointmentGormRepository) InTx(
	ctx context.Context,
	fn func(ctx context.Context, tr domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, NewAppointmentGormRepository(tx))
	})
}

// --------------------------------------------------
// Collaborator records
// --------------------------------------------------

func (r *AppointmentGormRepository) GetBarber(
	ctx context.Context,
	id uint,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).First(&barber, id).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

func (r *AppointmentGormRepository) GetCustomer(
	ctx context.Context,
	id uint,
) (*models.Customer, error) {

	var customer models.Customer
	if err := r.db.WithContext(ctx).First(&customer, id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *AppointmentGormRepository) GetServices(
	ctx context.Context,
	salonID uint,
	ids []uint,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("id IN ? AND salon_id = ? AND active = ?", ids, salonID, true).
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// --------------------------------------------------
// Slots
// --------------------------------------------------

func (r *AppointmentGormRepository) GetSlot(
	ctx context.Context,
	id uint,
) (*models.Slot, error) {

	var slot models.Slot
	if err := r.db.WithContext(ctx).First(&slot, id).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

// ClaimSlot is the single point of contention: the UPDATE only matches an
// unbooked row, so of two racing claims exactly one reports true.
func (r *AppointmentGormRepository) ClaimSlot(
	ctx context.Context,
	slotID uint,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Slot{}).
		Where("id = ? AND is_booked = ?", slotID, false).
		Update("is_booked", true)

	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *AppointmentGormRepository) ReleaseSlot(
	ctx context.Context,
	slotID uint,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Slot{}).
		Where("id = ?", slotID).
		Update("is_booked", false).Error
}

func (r *AppointmentGormRepository) FindFreeSlot(
	ctx context.Context,
	barberID uint,
	date time.Time,
	start time.Time,
	end time.Time,
) (*models.Slot, error) {

	sessionIDs := r.db.
		Model(&models.WorkingSession{}).
		Select("id").
		Where("barber_id = ?", barberID)

	var slot models.Slot
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"session_id IN (?) AND date = ? AND start_time = ? AND end_time = ? AND is_booked = ?",
			sessionIDs, date, start, end, false,
		).
		First(&slot).Error
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// --------------------------------------------------
// Sessions
// --------------------------------------------------

func (r *AppointmentGormRepository) GetSession(
	ctx context.Context,
	id uint,
) (*models.WorkingSession, error) {

	var s models.WorkingSession
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *AppointmentGormRepository) GetSessionForBarberDate(
	ctx context.Context,
	barberID uint,
	date time.Time,
) (*models.WorkingSession, error) {

	var s models.WorkingSession
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND date = ?", barberID, date).
		First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *AppointmentGormRepository) AddSessionRemaining(
	ctx context.Context,
	sessionID uint,
	deltaMin int,
) error {
	return r.db.WithContext(ctx).
		Model(&models.WorkingSession{}).
		Where("id = ?", sessionID).
		Update("remaining_min", gorm.Expr("remaining_min + ?", deltaMin)).Error
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	err := r.db.WithContext(ctx).Create(ap).Error
	if isUniqueViolation(err) {
		return httperr.ErrBusiness(httperr.CodeSlotAlreadyBooked)
	}
	return err
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Services").
		First(&ap, id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *AppointmentGormRepository) ListQueue(
	ctx context.Context,
	barberID uint,
	date time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Services").
		Where(
			"barber_id = ? AND date = ? AND kind = ? AND status IN ?",
			barberID, date, models.AppointmentKindWalkIn,
			[]string{"checked_in", "in_salon"},
		).
		Order("checked_in_at ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
