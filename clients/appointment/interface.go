package appointment

import (
	"context"

	"warrantydesk/models"
)

// AppointmentAPI is the passthrough surface of the appointment backend. The
// reconciliation engine only needs Create; the remaining operations back the
// dashboard list views.
type AppointmentAPI interface {
	Create(ctx context.Context, sess models.Session, req models.CreateAppointmentRequest) (*models.Appointment, error)
	Update(ctx context.Context, sess models.Session, id string, req models.UpdateAppointmentRequest) (*models.Appointment, error)
	UpdateStatus(ctx context.Context, sess models.Session, id string, status models.AppointmentStatus) (*models.Appointment, error)
	GetByClaim(ctx context.Context, sess models.Session, claimID string) ([]models.Appointment, error)
	GetByStatus(ctx context.Context, sess models.Session, status models.AppointmentStatus) ([]models.Appointment, error)
	GetByTechnician(ctx context.Context, sess models.Session, technicianID string) ([]models.Appointment, error)
	GetAll(ctx context.Context, sess models.Session) ([]models.Appointment, error)
}
