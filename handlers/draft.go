package handlers

import (
	"errors"
	"net/http"

	"warrantydesk/middleware"
	"warrantydesk/models"
	"warrantydesk/services/draft"
	"warrantydesk/services/reconcile"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DraftHandler exposes the appointment-composition dialog over REST.
type DraftHandler struct {
	Service draft.DraftSessionService
	Logger  *zap.Logger
}

func NewDraftHandler(service draft.DraftSessionService, logger *zap.Logger) *DraftHandler {
	return &DraftHandler{Service: service, Logger: logger}
}

func (h *DraftHandler) Open(c *gin.Context) {
	view, err := h.Service.Open(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *DraftHandler) Get(c *gin.Context) {
	view, err := h.Service.Get(c.Request.Context(), middleware.SessionFrom(c), c.Param("draftID"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *DraftHandler) SetContext(c *gin.Context) {
	var update draft.ContextUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	view, err := h.Service.SetContext(c.Request.Context(), middleware.SessionFrom(c), c.Param("draftID"), update)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Suggest handles the explicit "find technicians" action. Unlike the
// debounced automatic query it fires immediately and reports an empty result.
func (h *DraftHandler) Suggest(c *gin.Context) {
	view, err := h.Service.Suggest(c.Request.Context(), middleware.SessionFrom(c), c.Param("draftID"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *DraftHandler) ToggleSlot(c *gin.Context) {
	var slot models.SlotDescriptor
	if err := c.ShouldBindJSON(&slot); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	view, err := h.Service.ToggleSlot(c.Request.Context(), middleware.SessionFrom(c), c.Param("draftID"), slot)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *DraftHandler) ChooseTechnician(c *gin.Context) {
	var input struct {
		TechnicianID string `json:"technicianId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	view, err := h.Service.ChooseTechnician(c.Request.Context(), middleware.SessionFrom(c), c.Param("draftID"), input.TechnicianID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *DraftHandler) MergedSlots(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}
	slots, err := h.Service.MergedSlots(c.Request.Context(), middleware.SessionFrom(c), c.Param("draftID"), date)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "slots": slots})
}

func (h *DraftHandler) Submit(c *gin.Context) {
	created, err := h.Service.Submit(c.Request.Context(), middleware.SessionFrom(c), c.Param("draftID"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"appointment": created})
}

func (h *DraftHandler) Cancel(c *gin.Context) {
	if err := h.Service.Cancel(c.Request.Context(), middleware.SessionFrom(c), c.Param("draftID")); err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": true})
}

// renderError maps the reconcile error taxonomy onto HTTP responses. Every
// branch leaves the draft editable; nothing here is fatal to the dialog.
func (h *DraftHandler) renderError(c *gin.Context, err error) {
	var vErr *reconcile.ValidationError
	var rErr *reconcile.ResolutionError
	var tErr *reconcile.TransportError

	switch {
	case errors.Is(err, draft.ErrDraftNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "draft not found or expired"})
	case errors.Is(err, reconcile.ErrNotSelectable):
		c.JSON(http.StatusConflict, gin.H{"error": "slot is not selectable"})
	case errors.Is(err, reconcile.ErrNoTechniciansFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "no technicians found for the requested skills and date"})
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message})
	case errors.As(err, &rErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":      "cannot determine slot identifiers",
			"unresolved": rErr.Unresolved,
		})
	case errors.As(err, &tErr):
		h.Logger.Warn("collaborator call failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream service unavailable, please retry"})
	default:
		h.Logger.Error("draft operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
