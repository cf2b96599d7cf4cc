package models

import "time"

// Slot is one fixed-duration bookable unit inside a slotted session.
// A booked slot is never deleted; the owning appointment has to be
// cancelled or transferred first.
type Slot struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	SessionID uint `gorm:"index;uniqueIndex:uniq_slot_session_start" json:"session_id"`
	SalonID   uint `json:"salon_id"`

	Date      time.Time `gorm:"type:date" json:"date"`
	StartTime time.Time `gorm:"uniqueIndex:uniq_slot_session_start" json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	IsBooked bool `gorm:"default:false" json:"is_booked"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
