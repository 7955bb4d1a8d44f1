package handlers

import (
	"net/http"

	"warrantydesk/clients/appointment"
	"warrantydesk/middleware"
	"warrantydesk/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AppointmentHandler relays appointment CRUD reads and status updates to the
// appointment backend for the dashboard list views.
type AppointmentHandler struct {
	API    appointment.AppointmentAPI
	Logger *zap.Logger
}

func NewAppointmentHandler(api appointment.AppointmentAPI, logger *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{API: api, Logger: logger}
}

func (h *AppointmentHandler) GetAll(c *gin.Context) {
	out, err := h.API.GetAll(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		h.upstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *AppointmentHandler) GetByClaim(c *gin.Context) {
	out, err := h.API.GetByClaim(c.Request.Context(), middleware.SessionFrom(c), c.Param("claimID"))
	if err != nil {
		h.upstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *AppointmentHandler) GetByStatus(c *gin.Context) {
	status := models.AppointmentStatus(c.Param("status"))
	out, err := h.API.GetByStatus(c.Request.Context(), middleware.SessionFrom(c), status)
	if err != nil {
		h.upstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *AppointmentHandler) GetByTechnician(c *gin.Context) {
	out, err := h.API.GetByTechnician(c.Request.Context(), middleware.SessionFrom(c), c.Param("technicianID"))
	if err != nil {
		h.upstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	var req models.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	out, err := h.API.Update(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"), req)
	if err != nil {
		h.upstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	var input struct {
		Status models.AppointmentStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	out, err := h.API.UpdateStatus(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"), input.Status)
	if err != nil {
		h.upstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *AppointmentHandler) upstreamError(c *gin.Context, err error) {
	h.Logger.Warn("appointment backend call failed", zap.Error(err))
	c.JSON(http.StatusBadGateway, gin.H{"error": "appointment service unavailable, please retry"})
}
