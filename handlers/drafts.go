package handlers

import (
	"net/http"

	"gardenly/models"
	"gardenly/services/reservation"
	"gardenly/utils"

	"github.com/gin-gonic/gin"
)

// DraftHandler manages in-progress booking drafts.
type DraftHandler struct {
	Drafts *reservation.DraftStore
}

func NewDraftHandler(store *reservation.DraftStore) *DraftHandler {
	return &DraftHandler{Drafts: store}
}

// SaveDraftHandler creates or updates a draft and returns its ID.
func (h *DraftHandler) SaveDraftHandler(c *gin.Context) {
	var draft models.BookingDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	if draft.ClientID == "" {
		if id, ok := c.Get("subjectID"); ok {
			draft.ClientID, _ = id.(string)
		}
	}
	if id := c.Param("id"); id != "" {
		draft.DraftID = id
	}

	draftID, err := h.Drafts.Save(c.Request.Context(), &draft)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draftId": draftID, "updatedAt": draft.UpdatedAt})
}

func (h *DraftHandler) GetDraftHandler(c *gin.Context) {
	draft, err := h.Drafts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (h *DraftHandler) DeleteDraftHandler(c *gin.Context) {
	if err := h.Drafts.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
