package handlers

import (
	"net/http"

	"gardenly/models"
	"gardenly/services/pricing"
	"gardenly/utils"

	"github.com/gin-gonic/gin"
)

// QuoteHandler prices task lists without creating a booking.
type QuoteHandler struct {
	Pricing *pricing.Engine
}

func NewQuoteHandler(engine *pricing.Engine) *QuoteHandler {
	return &QuoteHandler{Pricing: engine}
}

// CreateQuoteHandler quotes a job for one provider. When targetTotal is
// set the line items are reconciled to sum exactly to it.
func (h *QuoteHandler) CreateQuoteHandler(c *gin.Context) {
	var input struct {
		ProviderID  string        `json:"providerId" binding:"required"`
		ServiceType string        `json:"serviceType" binding:"required"`
		Tasks       []models.Task `json:"tasks" binding:"required"`
		TargetTotal *float64      `json:"targetTotal"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	if len(input.Tasks) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "at least one task is required")
		return
	}

	quote, err := h.Pricing.QuoteJobForProvider(c.Request.Context(), input.ProviderID, input.ServiceType, input.Tasks)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if input.TargetTotal != nil {
		items, err := pricing.ReconcileToTotal(quote.LineItems, *input.TargetTotal)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		quote.LineItems = items
		quote.Total = *input.TargetTotal
	}

	c.JSON(http.StatusOK, quote)
}
