package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/session"
)

type SessionHandler struct {
	create *session.CreateSessions
	edit   *session.EditSession
	leave  *session.ApplyLeave
	remove *session.DeleteSession
	list   *session.ListSlots
	resync *session.ResyncBarberTags
}

func NewSessionHandler(
	create *session.CreateSessions,
	edit *session.EditSession,
	leave *session.ApplyLeave,
	remove *session.DeleteSession,
	list *session.ListSlots,
	resync *session.ResyncBarberTags,
) *SessionHandler {
	return &SessionHandler{
		create: create,
		edit:   edit,
		leave:  leave,
		remove: remove,
		list:   list,
		resync: resync,
	}
}

// ------------------------------------------------------

type CreateSessionsRequest struct {
	Days []session.DayInput `json:"days" binding:"required,min=1"`
}

// Create schedules the authenticated barber's sessions for a batch of dates.
func (h *SessionHandler) Create(c *gin.Context) {
	userIDVal, _ := c.Get(middleware.ContextUserID)
	salonIDVal, _ := c.Get(middleware.ContextSalonID)

	var req CreateSessionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	result, err := h.create.Execute(c.Request.Context(), session.CreateSessionsInput{
		BarberID: userIDVal.(uint),
		SalonID:  salonIDVal.(uint),
		Days:     req.Days,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, result)
}

// ------------------------------------------------------

type EditSessionRequest struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`

	// MakeUnavailable withdraws the whole session instead of re-timing it.
	MakeUnavailable bool   `json:"make_unavailable"`
	Reason          string `json:"reason"`
}

// Edit re-times a session, or withdraws it when make_unavailable is set.
func (h *SessionHandler) Edit(c *gin.Context) {
	sessionID, ok := pathID(c, "id")
	if !ok {
		return
	}
	actorID := actorFrom(c)

	var req EditSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.MakeUnavailable {
		result, err := h.leave.Execute(c.Request.Context(), session.ApplyLeaveInput{
			SessionID: sessionID,
			Reason:    req.Reason,
			ActorID:   actorID,
		})
		if err != nil {
			httperr.FromError(c, err)
			return
		}
		httpresp.OK(c, result)
		return
	}

	result, err := h.edit.Execute(c.Request.Context(), session.EditSessionInput{
		SessionID: sessionID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		ActorID:   actorID,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, result)
}

// ------------------------------------------------------

func (h *SessionHandler) Delete(c *gin.Context) {
	sessionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), sessionID, actorFrom(c)); err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.NoContent(c)
}

// ------------------------------------------------------

// ListSlots returns a barber's sessions for a date with their open future
// slots. Defaults to today.
func (h *SessionHandler) ListSlots(c *gin.Context) {
	barberID, ok := pathID(c, "id")
	if !ok {
		return
	}

	date := timezone.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		var err error
		date, err = parseDate(dateStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "expected YYYY-MM-DD")
			return
		}
	}

	result, err := h.list.Execute(c.Request.Context(), barberID, date)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, result)
}

// ------------------------------------------------------

// Resync restamps a barber's upcoming sessions with their current mode,
// category and position.
func (h *SessionHandler) Resync(c *gin.Context) {
	barberID, ok := pathID(c, "id")
	if !ok {
		return
	}

	updated, err := h.resync.Execute(c.Request.Context(), barberID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"updated_sessions": updated})
}

// ------------------------------------------------------

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "path id must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

func actorFrom(c *gin.Context) *uint {
	if v, ok := c.Get(middleware.ContextUserID); ok {
		id := v.(uint)
		return &id
	}
	return nil
}
