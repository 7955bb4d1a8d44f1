package models

// SlotStatus mirrors the scheduling backend's slot states.
type SlotStatus string

const (
	SlotFree            SlotStatus = "FREE"
	SlotBooked          SlotStatus = "BOOKED"
	SlotBlocked         SlotStatus = "BLOCKED"
	SlotHold            SlotStatus = "HOLD"
	SlotCancelledByTech SlotStatus = "CANCELLED_BY_TECH"
)

// Selectable reports whether a slot in this status may enter a selection.
func (s SlotStatus) Selectable() bool {
	switch s {
	case SlotBlocked, SlotHold, SlotCancelledByTech:
		return false
	}
	return true
}

// SlotDescriptor represents one bookable time window for one technician on one date.
// SlotID may be empty for ad-hoc slots that only exist in suggestion output.
// Times are wall-clock "HH:MM" strings, zero-padded, so lexicographic order
// equals chronological order.
type SlotDescriptor struct {
	SlotID    string     `json:"slotId,omitempty"`
	Date      string     `json:"date"` // "2006-01-02"
	StartTime string     `json:"startTime"`
	EndTime   string     `json:"endTime"`
	Status    SlotStatus `json:"status"`
}

// MonthSlots is the canonical normalized form of a technician's month:
// date ("2006-01-02") to that day's slots, each day sorted ascending by StartTime.
type MonthSlots map[string][]SlotDescriptor
