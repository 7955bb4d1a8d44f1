package suggestion

import (
	"bytes"
	"encoding/json"
	"fmt"

	"warrantydesk/models"

	"go.uber.org/zap"
)

type suggestionsWrapper struct {
	Suggestions []models.SuggestionEntry `json:"suggestions"`
}

// NormalizeSuggestionResponse accepts either the {suggestions:[...]} wrapper
// or a bare entry array and returns entries with AvailableCount recomputed
// from the actual slot list. A slot id appearing under two different
// technicians would break the one-slot-one-technician assumption, so it is
// logged loudly; the entries are kept as delivered.
func NormalizeSuggestionResponse(data []byte) ([]models.SuggestionEntry, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	var entries []models.SuggestionEntry
	if trimmed[0] == '{' {
		var wrapper suggestionsWrapper
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			return nil, fmt.Errorf("unrecognized wrapped suggestion payload: %w", err)
		}
		entries = wrapper.Suggestions
	} else {
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, fmt.Errorf("unrecognized suggestion payload: %w", err)
		}
	}

	seen := map[string]string{} // slotId -> technicianId
	for i := range entries {
		entries[i].AvailableCount = len(entries[i].AvailableSlots)
		for _, ref := range entries[i].AvailableSlots {
			if ref.SlotID == "" {
				continue
			}
			if owner, ok := seen[ref.SlotID]; ok && owner != entries[i].TechnicianID {
				zap.L().Warn("suggestion slot id offered by two technicians",
					zap.String("slotId", ref.SlotID),
					zap.String("first", owner),
					zap.String("second", entries[i].TechnicianID))
				continue
			}
			seen[ref.SlotID] = entries[i].TechnicianID
		}
	}
	return entries, nil
}
