package handlers

import (
	"net/http"
	"strconv"

	"gardenly/config"
	"gardenly/services/scheduling"
	"gardenly/utils"

	"github.com/gin-gonic/gin"
)

// SlotHandler exposes slot allocation queries.
type SlotHandler struct {
	Allocator *scheduling.SlotAllocator
}

func NewSlotHandler(allocator *scheduling.SlotAllocator) *SlotHandler {
	return &SlotHandler{Allocator: allocator}
}

// GetValidStartHoursHandler lists the start hours a booking of the given
// duration can take on a date.
func (h *SlotHandler) GetValidStartHoursHandler(c *gin.Context) {
	providerID := c.Query("providerId")
	date := c.Query("date")
	duration, err := strconv.Atoi(c.DefaultQuery("duration", "1"))
	if providerID == "" || date == "" || err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "providerId, date and numeric duration are required")
		return
	}

	hours, err := h.Allocator.ValidStartHours(c.Request.Context(), providerID, date, duration)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"providerId": providerID,
		"date":       date,
		"duration":   duration,
		"validStart": hours,
	})
}

// GetFirstAvailableHandler scans forward for the earliest bookable slot.
func (h *SlotHandler) GetFirstAvailableHandler(c *gin.Context) {
	providerID := c.Query("providerId")
	from := c.Query("from")
	duration, derr := strconv.Atoi(c.DefaultQuery("duration", "1"))
	horizon, herr := strconv.Atoi(c.DefaultQuery("horizon", strconv.Itoa(config.AppConfig.ScanHorizonDays)))
	if providerID == "" || from == "" || derr != nil || herr != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "providerId, from, duration and horizon are required")
		return
	}

	slot, err := h.Allocator.FirstAvailableSlot(c.Request.Context(), providerID, from, duration, horizon)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if slot == nil {
		c.JSON(http.StatusOK, gin.H{"providerId": providerID, "slot": nil, "horizonDays": horizon})
		return
	}
	c.JSON(http.StatusOK, gin.H{"providerId": providerID, "slot": slot})
}

// RankProvidersHandler orders candidate providers by earliest availability.
func (h *SlotHandler) RankProvidersHandler(c *gin.Context) {
	var input struct {
		ProviderIDs []string `json:"providerIds" binding:"required"`
		From        string   `json:"from" binding:"required"`
		Duration    int      `json:"duration"`
		HorizonDays int      `json:"horizonDays"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	if input.Duration <= 0 {
		input.Duration = 1
	}
	if input.HorizonDays <= 0 {
		input.HorizonDays = config.AppConfig.ScanHorizonDays
	}

	ranked := h.Allocator.RankProvidersByAvailability(
		c.Request.Context(), input.ProviderIDs, input.From,
		input.Duration, input.HorizonDays, config.AppConfig.ProviderScanWorkers)
	c.JSON(http.StatusOK, gin.H{"ranked": ranked})
}
