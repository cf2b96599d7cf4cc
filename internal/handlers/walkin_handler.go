package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

type WalkInHandler struct {
	checkin  *appointment.CheckInWalkIn
	estimate *appointment.EstimateWait
}

func NewWalkInHandler(
	checkin *appointment.CheckInWalkIn,
	estimate *appointment.EstimateWait,
) *WalkInHandler {
	return &WalkInHandler{
		checkin:  checkin,
		estimate: estimate,
	}
}

// ------------------------------------------------------

type CheckInRequest struct {
	BarberID   uint   `json:"barber_id" binding:"required"`
	CustomerID uint   `json:"customer_id" binding:"required"`
	ServiceIDs []uint `json:"service_ids" binding:"required,min=1"`
	Notes      string `json:"notes"`
}

// CheckIn joins a walk-in queue and returns the appointment with a wait
// estimate. Low capacity is advisory, not a rejection.
func (h *WalkInHandler) CheckIn(c *gin.Context) {
	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	result, err := h.checkin.Execute(c.Request.Context(), appointment.CheckInWalkInInput{
		BarberID:   req.BarberID,
		CustomerID: req.CustomerID,
		ServiceIDs: req.ServiceIDs,
		Notes:      req.Notes,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, result)
}

// ------------------------------------------------------

// EstimateWait answers "how long would a walk-in wait right now" for a
// barber, or the position of an appointment already in the queue when
// appointment_id is given.
func (h *WalkInHandler) EstimateWait(c *gin.Context) {
	barberID, ok := pathID(c, "id")
	if !ok {
		return
	}

	in := appointment.EstimateWaitInput{BarberID: barberID}

	if raw := c.Query("appointment_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_id", "appointment_id must be a positive integer")
			return
		}
		apID := uint(id)
		in.AppointmentID = &apID
	}

	if raw := c.Query("service_min"); raw != "" {
		min, err := strconv.Atoi(raw)
		if err != nil || min < 0 {
			httperr.BadRequest(c, "invalid_request", "service_min must be a non-negative integer")
			return
		}
		in.RequestedServiceMin = min
	}

	est, err := h.estimate.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, est)
}
