package models

// SuggestionSlotRef is the lightweight slot reference carried inside a
// suggestion entry. Unlike SlotDescriptor it has no status and its SlotID
// is frequently absent.
type SuggestionSlotRef struct {
	WorkDate  string `json:"workDate"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	SlotID    string `json:"slotId,omitempty"`
}

// SuggestionEntry is one ranked candidate technician for a skill/date query.
type SuggestionEntry struct {
	TechnicianID   string              `json:"technicianId"`
	TechnicianName string              `json:"technicianName"`
	Skills         []string            `json:"skills"`
	AvailableSlots []SuggestionSlotRef `json:"availableSlots"`
	Score          float64             `json:"score"`
	// AvailableCount is always derived from len(AvailableSlots) at
	// normalization time, never trusted from the wire.
	AvailableCount int `json:"availableCount"`
}
