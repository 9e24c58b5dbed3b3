package handlers

import (
	"net/http"

	"gardenly/services/reservation"
	"gardenly/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler drives the booking lifecycle over HTTP.
type BookingHandler struct {
	Engine reservation.ReservationEngine
}

func NewBookingHandler(engine reservation.ReservationEngine) *BookingHandler {
	return &BookingHandler{Engine: engine}
}

// CreateBookingHandler claims a slot and persists a confirmed booking.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var req reservation.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	if req.ClientID == "" {
		if id, ok := c.Get("subjectID"); ok {
			req.ClientID, _ = id.(string)
		}
	}

	booking, err := h.Engine.Create(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// CancelBookingHandler cancels a booking and frees its hours.
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	bookingID := c.Param("id")
	if bookingID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "booking id is required")
		return
	}

	booking, err := h.Engine.Cancel(c.Request.Context(), bookingID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// StartBookingHandler marks a confirmed booking as in progress.
func (h *BookingHandler) StartBookingHandler(c *gin.Context) {
	bookingID := c.Param("id")
	if bookingID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "booking id is required")
		return
	}

	booking, err := h.Engine.Start(c.Request.Context(), bookingID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// CompleteBookingHandler marks a booking as completed.
func (h *BookingHandler) CompleteBookingHandler(c *gin.Context) {
	bookingID := c.Param("id")
	if bookingID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "booking id is required")
		return
	}

	booking, err := h.Engine.Complete(c.Request.Context(), bookingID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}
