package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

type AppointmentHandler struct {
	book       *appointment.BookSlot
	transition *appointment.TransitionAppointment
	transfer   *appointment.TransferAppointment
}

func NewAppointmentHandler(
	book *appointment.BookSlot,
	transition *appointment.TransitionAppointment,
	transfer *appointment.TransferAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		book:       book,
		transition: transition,
		transfer:   transfer,
	}
}

// ------------------------------------------------------

type BookSlotRequest struct {
	SlotID     uint   `json:"slot_id" binding:"required"`
	CustomerID uint   `json:"customer_id" binding:"required"`
	ServiceIDs []uint `json:"service_ids" binding:"required,min=1"`
	Notes      string `json:"notes"`
}

// Book claims a slot for a customer. Exactly one of two racing bookings
// for the same slot succeeds.
func (h *AppointmentHandler) Book(c *gin.Context) {
	var req BookSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.book.Execute(c.Request.Context(), appointment.BookSlotInput{
		SlotID:     req.SlotID,
		CustomerID: req.CustomerID,
		ServiceIDs: req.ServiceIDs,
		Notes:      req.Notes,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ------------------------------------------------------

type TransitionRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *AppointmentHandler) Transition(c *gin.Context) {
	appointmentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.transition.Execute(c.Request.Context(), appointmentID, req.Status)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ------------------------------------------------------

type TransferRequest struct {
	BarberID uint `json:"barber_id" binding:"required"`
}

// Transfer hands an active appointment to another barber when the target
// has matching free capacity.
func (h *AppointmentHandler) Transfer(c *gin.Context) {
	appointmentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.transfer.Execute(c.Request.Context(), appointmentID, req.BarberID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, ap)
}
