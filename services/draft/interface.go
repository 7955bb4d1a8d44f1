package draft

import (
	"context"

	"warrantydesk/models"
)

// ContextUpdate carries the mutable dialog inputs; nil fields are untouched.
type ContextUpdate struct {
	ClaimID        *string   `json:"claimId,omitempty"`
	RequiredSkills *[]string `json:"requiredSkills,omitempty"`
	ActiveDate     *string   `json:"activeDate,omitempty"`
	Note           *string   `json:"note,omitempty"`
}

// DraftSessionService manages the lifecycle of one appointment-composition
// dialog: a draft is opened, mutated through the reconciliation engine,
// submitted exactly once, and discarded on cancel or expiry.
type DraftSessionService interface {
	Open(ctx context.Context, sess models.Session) (*models.DraftView, error)
	Get(ctx context.Context, sess models.Session, draftID string) (*models.DraftView, error)
	SetContext(ctx context.Context, sess models.Session, draftID string, update ContextUpdate) (*models.DraftView, error)
	Suggest(ctx context.Context, sess models.Session, draftID string) (*models.DraftView, error)
	ToggleSlot(ctx context.Context, sess models.Session, draftID string, slot models.SlotDescriptor) (*models.DraftView, error)
	ChooseTechnician(ctx context.Context, sess models.Session, draftID string, technicianID string) (*models.DraftView, error)
	MergedSlots(ctx context.Context, sess models.Session, draftID string, date string) ([]models.SlotDescriptor, error)
	Submit(ctx context.Context, sess models.Session, draftID string) (*models.Appointment, error)
	Cancel(ctx context.Context, sess models.Session, draftID string) error
}
