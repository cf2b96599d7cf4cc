package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// --------------------------------------------------
// Transaction boundary
// --------------------------------------------------

func (r *ScheduleGormRepository) InTx(
	ctx context.Context,
	fn func(ctx context.Context, tr domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, NewScheduleGormRepository(tx))
	})
}

// --------------------------------------------------
// Barber
// --------------------------------------------------

func (r *ScheduleGormRepository) GetBarber(
	ctx context.Context,
	id uint,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).First(&barber, id).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

// --------------------------------------------------
// Session
// --------------------------------------------------

func (r *ScheduleGormRepository) GetSession(
	ctx context.Context,
	id uint,
) (*models.WorkingSession, error) {

	var s models.WorkingSession
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ScheduleGormRepository) GetSessionForUpdate(
	ctx context.Context,
	id uint,
) (*models.WorkingSession, error) {

	var s models.WorkingSession
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ScheduleGormRepository) ListSessionsForDate(
	ctx context.Context,
	barberID uint,
	date time.Time,
) ([]models.WorkingSession, error) {

	var sessions []models.WorkingSession
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND date = ?", barberID, date).
		Order("start_time ASC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *ScheduleGormRepository) CreateSession(
	ctx context.Context,
	s *models.WorkingSession,
) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *ScheduleGormRepository) UpdateSession(
	ctx context.Context,
	s *models.WorkingSession,
) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *ScheduleGormRepository) DeleteSession(
	ctx context.Context,
	id uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.WorkingSession{}, id).Error
}

func (r *ScheduleGormRepository) RestampSessions(
	ctx context.Context,
	barberID uint,
	from time.Time,
	mode string,
	category string,
	position string,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Model(&models.WorkingSession{}).
		Where("barber_id = ? AND date >= ?", barberID, from).
		Updates(map[string]any{
			"mode":     mode,
			"category": category,
			"position": position,
		})

	return res.RowsAffected, res.Error
}

// --------------------------------------------------
// Slots
// --------------------------------------------------

func (r *ScheduleGormRepository) ListSlotsForSession(
	ctx context.Context,
	sessionID uint,
) ([]models.Slot, error) {

	var slots []models.Slot
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("start_time ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *ScheduleGormRepository) ListSlotsForSessionForUpdate(
	ctx context.Context,
	sessionID uint,
) ([]models.Slot, error) {

	var slots []models.Slot
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("session_id = ?", sessionID).
		Order("start_time ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *ScheduleGormRepository) CreateSlots(
	ctx context.Context,
	slots []models.Slot,
) error {
	err := r.db.WithContext(ctx).Create(&slots).Error
	if isUniqueViolation(err) {
		// Another reconciliation already created a slot on this boundary.
		return httperr.ErrBusiness(httperr.CodeConflictBookedOutsideRange)
	}
	return err
}

func (r *ScheduleGormRepository) DeleteSlotsIfUnbooked(
	ctx context.Context,
	ids []uint,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Where("id IN ? AND is_booked = ?", ids, false).
		Delete(&models.Slot{})

	return res.RowsAffected, res.Error
}

func (r *ScheduleGormRepository) DeleteUnbookedSlots(
	ctx context.Context,
	sessionID uint,
) error {
	return r.db.WithContext(ctx).
		Where("session_id = ? AND is_booked = ?", sessionID, false).
		Delete(&models.Slot{}).Error
}

func (r *ScheduleGormRepository) CountBookedSlots(
	ctx context.Context,
	sessionID uint,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Slot{}).
		Where("session_id = ? AND is_booked = ?", sessionID, true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ScheduleGormRepository) ReleaseSlot(
	ctx context.Context,
	slotID uint,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Slot{}).
		Where("id = ?", slotID).
		Update("is_booked", false).Error
}

// --------------------------------------------------
// Appointments under a session
// --------------------------------------------------

func (r *ScheduleGormRepository) ListPreArrivalAppointments(
	ctx context.Context,
	sessionID uint,
) ([]models.Appointment, error) {

	var slotIDs []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Slot{}).
		Where("session_id = ?", sessionID).
		Pluck("id", &slotIDs).Error; err != nil {
		return nil, err
	}
	if len(slotIDs) == 0 {
		return nil, nil
	}

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("slot_id IN ? AND status = ?", slotIDs, "appointment").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *ScheduleGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Leave
// --------------------------------------------------

func (r *ScheduleGormRepository) CreateLeaveRecord(
	ctx context.Context,
	lr *models.LeaveRecord,
) error {
	return r.db.WithContext(ctx).Create(lr).Error
}

func (r *ScheduleGormRepository) GetLeaveRecord(
	ctx context.Context,
	id uint,
) (*models.LeaveRecord, error) {

	var lr models.LeaveRecord
	if err := r.db.WithContext(ctx).First(&lr, id).Error; err != nil {
		return nil, err
	}
	return &lr, nil
}

func (r *ScheduleGormRepository) UpdateLeaveRecord(
	ctx context.Context,
	lr *models.LeaveRecord,
) error {
	return r.db.WithContext(ctx).Save(lr).Error
}

// Compile-time check
var _ domain.Repository = (*ScheduleGormRepository)(nil)
