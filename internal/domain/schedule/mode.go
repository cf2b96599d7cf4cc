package schedule

import "github.com/BruksfildServices01/salon-scheduler/internal/httperr"

// ===============================
// Scheduling Mode
// ===============================

type Mode string

const (
	ModeSlotted Mode = "slotted"
	ModeWalkIn  Mode = "walk_in"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeSlotted:
		return ModeSlotted, nil
	case ModeWalkIn:
		return ModeWalkIn, nil
	default:
		return "", httperr.ErrBusiness("invalid_mode")
	}
}
