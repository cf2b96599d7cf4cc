package models

import "time"

// WorkingSession is one barber's bookable (or walk-in) block for a single
// calendar date. Times are full timestamps on that date, in the operating
// timezone, aligned to the slot interval.
type WorkingSession struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	BarberID uint   `gorm:"index:idx_sessions_barber_date" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`
	SalonID  uint   `json:"salon_id"`

	Date      time.Time `gorm:"type:date;index:idx_sessions_barber_date" json:"date"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	// RemainingMin is a maintained counter, not derived from slot state:
	// reset on a time change, decremented when a booking claims service
	// minutes, restored on cancellation.
	RemainingMin int `json:"remaining_min"`

	// Copied from the barber at creation time, re-stamped when the barber's
	// record changes. Denormalized for reporting.
	Mode     string `gorm:"size:20" json:"mode"`
	Category string `gorm:"size:50" json:"category"`
	Position string `gorm:"size:50" json:"position"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
