package handlers

import (
	"errors"
	"net/http"

	tariffRepo "gardenly/database/repository/tariff"
	"gardenly/models"
	"gardenly/utils"

	"github.com/gin-gonic/gin"
)

// TariffHandler manages provider pricing configuration.
type TariffHandler struct {
	Repo tariffRepo.TariffRepository
}

func NewTariffHandler(repo tariffRepo.TariffRepository) *TariffHandler {
	return &TariffHandler{Repo: repo}
}

// GetTariffHandler returns the tariff for a provider/service pair, along
// with the selected combinations that still lack a price.
func (h *TariffHandler) GetTariffHandler(c *gin.Context) {
	providerID := c.Param("providerId")
	serviceType := c.Param("serviceType")

	tariff, err := h.Repo.Get(c.Request.Context(), providerID, serviceType)
	if err != nil {
		if errors.Is(err, tariffRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Not found", "no tariff configured for this provider and service")
			return
		}
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"tariff":              tariff,
		"missingCombinations": tariff.MissingCombinations(),
	})
}

// SaveTariffHandler validates and upserts a tariff. Incomplete tariffs are
// rejected with the unpriced combinations so the client can prompt for them.
func (h *TariffHandler) SaveTariffHandler(c *gin.Context) {
	providerID := c.Param("providerId")
	serviceType := c.Param("serviceType")

	var tariff models.TariffConfig
	if err := c.ShouldBindJSON(&tariff); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	tariff.ProviderID = providerID
	tariff.ServiceType = serviceType

	if err := tariff.Validate(); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":               err.Error(),
			"missingCombinations": tariff.MissingCombinations(),
		})
		return
	}

	if err := h.Repo.Save(c.Request.Context(), &tariff); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tariff)
}
