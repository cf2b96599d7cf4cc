package models

import "time"

type Barber struct {
	ID      uint  `gorm:"primaryKey" json:"id"`
	SalonID uint  `json:"salon_id"`
	Salon   Salon `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"salon"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Email string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone string `gorm:"size:20" json:"phone"`

	// Mode decides how the barber takes customers: "slotted" barbers get
	// fixed slots carved out of their sessions, "walk_in" barbers run a
	// rolling queue with no slots.
	Mode     string `gorm:"size:20;default:'slotted'" json:"mode"`
	Category string `gorm:"size:50" json:"category"`
	Position string `gorm:"size:50" json:"position"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
