package models

import "time"

// AppointmentDraft is the form-level aggregate being composed in one dialog
// session. It holds everything the reconciliation engine needs to rebuild its
// state, so the whole draft can be snapshotted to the cache between requests.
type AppointmentDraft struct {
	DraftID            string                `json:"draftId"`
	ClaimID            string                `json:"claimId,omitempty"`
	RequiredSkills     []string              `json:"requiredSkills,omitempty"`
	Note               string                `json:"note,omitempty"`
	ActiveDate         string                `json:"activeDate,omitempty"`
	ChosenTechnicianID string                `json:"chosenTechnicianId,omitempty"`
	Selection          []SelectionKey        `json:"selection,omitempty"`
	Suggestions        []SuggestionEntry     `json:"suggestions,omitempty"`
	SlotMonths         map[string]MonthSlots `json:"slotMonths,omitempty"` // key "${techId}_${year}_${month}"
	CreatedAt          time.Time             `json:"createdAt"`
	LastUpdatedAt      time.Time             `json:"lastUpdatedAt"`
}

// DraftView is the response shape returned to the dashboard after every draft
// mutation: the draft itself plus the merged slot list for the active date.
type DraftView struct {
	Draft       AppointmentDraft `json:"draft"`
	MergedSlots []SlotDescriptor `json:"mergedSlots"`
}
