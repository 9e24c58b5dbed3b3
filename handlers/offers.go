package handlers

import (
	"net/http"

	"gardenly/services/reservation"
	"gardenly/utils"

	"github.com/gin-gonic/gin"
)

// OfferHandler exposes the broadcast offer flow.
type OfferHandler struct {
	Engine reservation.ReservationEngine
}

func NewOfferHandler(engine reservation.ReservationEngine) *OfferHandler {
	return &OfferHandler{Engine: engine}
}

// CreateOfferHandler broadcasts a job to a set of candidate providers.
func (h *OfferHandler) CreateOfferHandler(c *gin.Context) {
	var req reservation.OfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	if req.ClientID == "" {
		if id, ok := c.Get("subjectID"); ok {
			req.ClientID, _ = id.(string)
		}
	}

	offer, candidates, err := h.Engine.Offer(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"offer": offer, "candidates": candidates})
}

// ClaimOfferHandler lets the first responding provider win the offer and
// fix the booking into a concrete slot.
func (h *OfferHandler) ClaimOfferHandler(c *gin.Context) {
	offerID := c.Param("id")
	var input struct {
		ProviderID string `json:"providerId" binding:"required"`
		Date       string `json:"date" binding:"required"`
		StartHour  int    `json:"startHour"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	booking, err := h.Engine.Claim(c.Request.Context(), offerID, input.ProviderID, input.Date, input.StartHour)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}
