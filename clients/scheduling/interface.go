package scheduling

import (
	"context"

	"warrantydesk/models"
)

// SchedulingAPI retrieves technician calendars from the scheduling backend.
type SchedulingAPI interface {
	// GetTechnicianSlots fetches the technician's slots between fromDate and
	// toDate (inclusive, "2006-01-02") and returns them in canonical
	// date-to-slots form regardless of which wire shape the backend used.
	GetTechnicianSlots(ctx context.Context, sess models.Session, technicianID, fromDate, toDate string) (models.MonthSlots, error)
}
