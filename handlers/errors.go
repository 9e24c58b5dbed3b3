package handlers

import (
	"errors"
	"net/http"

	"gardenly/services/pricing"
	"gardenly/services/reservation"
	"gardenly/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps domain errors onto HTTP status codes.
func respondServiceError(c *gin.Context, err error) {
	var reqErr *reservation.RequestError
	if errors.As(err, &reqErr) {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", reqErr.Message)
		return
	}

	var conflict *reservation.ConflictError
	if errors.As(err, &conflict) {
		c.JSON(http.StatusConflict, gin.H{
			"error":      "slot conflict",
			"providerId": conflict.ProviderID,
			"date":       conflict.Date,
			"validHours": conflict.ValidHours,
		})
		return
	}

	var claimed *reservation.OfferClaimedError
	if errors.As(err, &claimed) {
		c.JSON(http.StatusConflict, gin.H{"error": "offer already claimed", "offerId": claimed.OfferID})
		return
	}

	var unconfigured *pricing.UnconfiguredTariffError
	if errors.As(err, &unconfigured) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":               "tariff not configured",
			"serviceType":         unconfigured.ServiceType,
			"missingCombinations": unconfigured.Missing,
		})
		return
	}

	utils.JSONError(c, http.StatusInternalServerError, "Internal error", err.Error())
}
