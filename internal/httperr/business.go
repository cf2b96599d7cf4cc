package httperr

import "errors"

// Error codes returned by the scheduling engine. Handlers map them to HTTP
// statuses; nothing else crosses the boundary.
const (
	CodeInvalidRange               = "invalid_range"
	CodeConflictBookedOutsideRange = "conflict_booked_outside_range"
	CodeSlotAlreadyBooked          = "slot_already_booked"
	CodeInvalidTransition          = "invalid_transition"
	CodeNoCapacity                 = "no_capacity"
	CodeNotFound                   = "not_found"
	CodeSessionHasBookings         = "session_has_bookings"
	CodeInternal                   = "internal"
)

type BusinessError struct {
	Code    string
	Details any
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

// ErrBusinessWith attaches a structured payload, e.g. the affected bookings
// of a rejected time change.
func ErrBusinessWith(code string, details any) error {
	return BusinessError{Code: code, Details: details}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func BusinessDetails(err error) any {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Details
	}
	return nil
}
