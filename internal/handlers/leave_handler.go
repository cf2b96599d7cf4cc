package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/session"
)

type LeaveHandler struct {
	request *session.RequestLeave
	decide  *session.DecideLeave
}

func NewLeaveHandler(
	request *session.RequestLeave,
	decide *session.DecideLeave,
) *LeaveHandler {
	return &LeaveHandler{
		request: request,
		decide:  decide,
	}
}

// ------------------------------------------------------

type RequestLeaveRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Reason    string `json:"reason"`
}

// Request files a pending leave request for the authenticated barber.
func (h *LeaveHandler) Request(c *gin.Context) {
	userIDVal, _ := c.Get(middleware.ContextUserID)
	salonIDVal, _ := c.Get(middleware.ContextSalonID)

	var req RequestLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	lr, err := h.request.Execute(c.Request.Context(), session.RequestLeaveInput{
		BarberID:  userIDVal.(uint),
		SalonID:   salonIDVal.(uint),
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Reason:    req.Reason,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, lr)
}

// ------------------------------------------------------

type DecideLeaveRequest struct {
	Approve *bool `json:"approve" binding:"required"`
}

// Decide approves or denies a pending leave request.
func (h *LeaveHandler) Decide(c *gin.Context) {
	leaveID, ok := pathID(c, "id")
	if !ok {
		return
	}

	userIDVal, _ := c.Get(middleware.ContextUserID)

	var req DecideLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	lr, err := h.decide.Execute(c.Request.Context(), leaveID, *req.Approve, userIDVal.(uint))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, lr)
}
