package models

import "fmt"

// SelectionKeyKind discriminates the two ways a chosen slot can be identified.
type SelectionKeyKind string

const (
	// KeyKindID means the backend slot id is already known.
	KeyKindID SelectionKeyKind = "id"
	// KeyKindComposite means the slot is only identified by its date and
	// start time; it must be resolved to a real slot id before submission.
	KeyKindComposite SelectionKeyKind = "composite"
)

// SelectionKey identifies one chosen slot within an in-progress appointment
// draft. It is a tagged union rather than a delimited string so a backend id
// containing a separator character can never be misread as a composite key.
type SelectionKey struct {
	Kind      SelectionKeyKind `json:"kind"`
	SlotID    string           `json:"slotId,omitempty"`
	Date      string           `json:"date,omitempty"`
	StartTime string           `json:"startTime,omitempty"`
}

// IDKey builds a key for a slot whose backend id is known.
func IDKey(slotID string) SelectionKey {
	return SelectionKey{Kind: KeyKindID, SlotID: slotID}
}

// CompositeKey builds a fallback key for a slot with no id yet.
func CompositeKey(date, startTime string) SelectionKey {
	return SelectionKey{Kind: KeyKindComposite, Date: date, StartTime: startTime}
}

// KeyFor derives the selection key for a slot descriptor on the given active
// date: the slot id when present, otherwise the date|startTime composite.
func KeyFor(slot SlotDescriptor, activeDate string) SelectionKey {
	if slot.SlotID != "" {
		return IDKey(slot.SlotID)
	}
	date := slot.Date
	if date == "" {
		date = activeDate
	}
	return CompositeKey(date, slot.StartTime)
}

// String renders a stable human-readable form, used in error messages and as
// a map key. Composite keys keep the date|startTime shape users see in the UI.
func (k SelectionKey) String() string {
	if k.Kind == KeyKindID {
		return k.SlotID
	}
	return fmt.Sprintf("%s|%s", k.Date, k.StartTime)
}
