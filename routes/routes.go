package routes

import (
	"net/http"

	"warrantydesk/handlers"
	"warrantydesk/utils"

	"github.com/gin-gonic/gin"
)

// RegisterDraftRoutes registers the appointment-composition dialog endpoints.
func RegisterDraftRoutes(r *gin.Engine, dh *handlers.DraftHandler) {
	api := r.Group("/api/drafts")
	{
		api.POST("", dh.Open)
		api.GET("/:draftID", dh.Get)
		api.PUT("/:draftID/context", dh.SetContext)
		api.POST("/:draftID/suggest", dh.Suggest)
		api.POST("/:draftID/slots/toggle", dh.ToggleSlot)
		api.PUT("/:draftID/technician", dh.ChooseTechnician)
		api.GET("/:draftID/slots", dh.MergedSlots)
		api.POST("/:draftID/submit", dh.Submit)
		api.DELETE("/:draftID", dh.Cancel)
	}
}

// RegisterAppointmentRoutes registers the dashboard passthrough endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, ah *handlers.AppointmentHandler) {
	api := r.Group("/api/appointments")
	{
		api.GET("", ah.GetAll)
		api.GET("/claim/:claimID", ah.GetByClaim)
		api.GET("/status/:status", ah.GetByStatus)
		api.GET("/technician/:technicianID", ah.GetByTechnician)
		api.PUT("/:id", ah.Update)
		api.PUT("/:id/status", ah.UpdateStatus)
	}
}

// RegisterHealthRoutes registers the health snapshot endpoint.
func RegisterHealthRoutes(r *gin.Engine) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})
}
