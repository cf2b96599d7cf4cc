package models

import "time"

const (
	AppointmentKindScheduled = "scheduled"
	AppointmentKindWalkIn    = "walk_in"
)

type Appointment struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Reference string `gorm:"size:36;uniqueIndex" json:"reference"`

	SalonID uint  `json:"salon_id"`
	Salon   Salon `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"salon"`

	BarberID uint   `gorm:"index" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	CustomerID uint     `json:"customer_id"`
	Customer   Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer"`

	// SlotID is set only for scheduled (slotted) appointments.
	SlotID *uint `gorm:"index" json:"slot_id"`
	Slot   *Slot `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"slot"`

	Kind string `gorm:"size:20;default:'scheduled'" json:"kind"`

	Date      time.Time `gorm:"type:date" json:"date"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status string `gorm:"size:20;default:'appointment'" json:"status"`

	Services []Service `gorm:"many2many:appointment_services;" json:"services"`

	Notes string `gorm:"size:255" json:"notes"`

	CheckedInAt      *time.Time `json:"checked_in_at"`
	ServiceStartedAt *time.Time `json:"service_started_at"`
	CompletedAt      *time.Time `json:"completed_at"`
	CancelledAt      *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ServiceMinutes sums the default durations of the attached services.
func (a *Appointment) ServiceMinutes() int {
	total := 0
	for _, s := range a.Services {
		total += s.DurationMin
	}
	return total
}
