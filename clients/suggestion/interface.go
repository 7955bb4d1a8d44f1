package suggestion

import (
	"context"

	"warrantydesk/models"
)

// SuggestionAPI queries the technician-ranking backend.
type SuggestionAPI interface {
	// SuggestTechnicians asks for ranked technicians able to serve the given
	// skills on workDate. Skills are sent as one comma-joined string in a
	// single combined request.
	SuggestTechnicians(ctx context.Context, sess models.Session, skills []string, workDate string) ([]models.SuggestionEntry, error)
}
