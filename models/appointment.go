package models

import "time"

// AppointmentStatus values understood by the appointment backend.
type AppointmentStatus string

const (
	AppointmentPending    AppointmentStatus = "PENDING"
	AppointmentConfirmed  AppointmentStatus = "CONFIRMED"
	AppointmentInProgress AppointmentStatus = "IN_PROGRESS"
	AppointmentCompleted  AppointmentStatus = "COMPLETED"
	AppointmentCancelled  AppointmentStatus = "CANCELLED"
)

// CreateAppointmentRequest is the exact payload the appointment backend
// expects: the resolved slot ids plus the claim and technician context.
type CreateAppointmentRequest struct {
	ClaimID       string   `json:"claimId"`
	TechnicianID  string   `json:"technicianId"`
	SlotIDs       []string `json:"slotIds"`
	Note          string   `json:"note,omitempty"`
	RequiredSkill string   `json:"requiredSkill,omitempty"`
}

// UpdateAppointmentRequest carries the mutable fields for an existing record.
type UpdateAppointmentRequest struct {
	TechnicianID string   `json:"technicianId,omitempty"`
	SlotIDs      []string `json:"slotIds,omitempty"`
	Note         string   `json:"note,omitempty"`
}

// Appointment is the created record as returned by the appointment backend.
// This service only relays it for confirmation display.
type Appointment struct {
	ID           string            `json:"id"`
	ClaimID      string            `json:"claimId"`
	TechnicianID string            `json:"technicianId"`
	Status       AppointmentStatus `json:"status"`
	Slots        []SlotDescriptor  `json:"slots,omitempty"`
	Note         string            `json:"note,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
}
