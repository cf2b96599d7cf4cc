package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// FromError maps a BusinessError onto the right HTTP status, carrying its
// details payload when present. Non-business errors become internal.
func FromError(c *gin.Context, err error) {
	var be BusinessError
	if !errors.As(err, &be) {
		Write(c, http.StatusInternalServerError, CodeInternal, "Unexpected error.")
		return
	}

	status := http.StatusBadRequest
	switch be.Code {
	case CodeNotFound:
		status = http.StatusNotFound
	case CodeConflictBookedOutsideRange, CodeSlotAlreadyBooked,
		CodeNoCapacity, CodeSessionHasBookings:
		status = http.StatusConflict
	case CodeInternal:
		status = http.StatusInternalServerError
	}

	c.JSON(status, HTTPError{
		Code:    be.Code,
		Message: be.Code,
		Details: be.Details,
	})
}
