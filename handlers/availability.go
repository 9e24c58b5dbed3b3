package handlers

import (
	"net/http"
	"time"

	availabilityRepo "gardenly/database/repository/availability"
	"gardenly/utils"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// AvailabilityHandler exposes the provider calendar endpoints.
type AvailabilityHandler struct {
	Repo availabilityRepo.AvailabilityRepository
}

func NewAvailabilityHandler(repo availabilityRepo.AvailabilityRepository) *AvailabilityHandler {
	return &AvailabilityHandler{Repo: repo}
}

// GetAvailabilityHandler returns available hours per date over a range in
// one batched read.
func (h *AvailabilityHandler) GetAvailabilityHandler(c *gin.Context) {
	providerID := c.Query("providerId")
	from := c.Query("from")
	to := c.Query("to")
	if providerID == "" || from == "" || to == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "providerId, from and to are required")
		return
	}
	if _, err := time.Parse(dateLayout, from); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "invalid from date")
		return
	}
	if _, err := time.Parse(dateLayout, to); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "invalid to date")
		return
	}

	byDate, err := h.Repo.GetRange(c.Request.Context(), providerID, from, to)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"providerId": providerID, "availability": byDate})
}

// SetAvailabilityHandler flips hours on one date. Both lists are applied
// idempotently; each list is all-or-nothing.
func (h *AvailabilityHandler) SetAvailabilityHandler(c *gin.Context) {
	providerID := c.Param("providerId")
	date := c.Param("date")

	var input struct {
		Available   []int `json:"available"`
		Unavailable []int `json:"unavailable"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "invalid date")
		return
	}

	ctx := c.Request.Context()
	if len(input.Available) > 0 {
		if err := h.Repo.SetAvailable(ctx, providerID, date, input.Available); err != nil {
			respondServiceError(c, err)
			return
		}
	}
	if len(input.Unavailable) > 0 {
		if err := h.Repo.SetUnavailable(ctx, providerID, date, input.Unavailable); err != nil {
			respondServiceError(c, err)
			return
		}
	}

	hours, err := h.Repo.GetDay(ctx, providerID, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"providerId": providerID, "date": date, "available": hours})
}

// ApplyDefaultScheduleHandler seeds the default 8-17 working day.
func (h *AvailabilityHandler) ApplyDefaultScheduleHandler(c *gin.Context) {
	providerID := c.Param("providerId")
	date := c.Param("date")
	if _, err := time.Parse(dateLayout, date); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "invalid date")
		return
	}

	if err := h.Repo.ApplyDefaultSchedule(c.Request.Context(), providerID, date); err != nil {
		respondServiceError(c, err)
		return
	}
	hours, err := h.Repo.GetDay(c.Request.Context(), providerID, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"providerId": providerID, "date": date, "available": hours})
}

// ClearDayHandler removes every block for a date.
func (h *AvailabilityHandler) ClearDayHandler(c *gin.Context) {
	providerID := c.Param("providerId")
	date := c.Param("date")

	if err := h.Repo.ClearDay(c.Request.Context(), providerID, date); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"providerId": providerID, "date": date, "cleared": true})
}
