package scheduling

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"warrantydesk/models"
)

// slotPayload is a permissive decode target covering every slot shape the
// scheduling backend is known to emit. A non-empty Slots field marks a
// day-grouped entry; otherwise the entry is a flat slot carrying its own date
// under one of three historical field names.
type slotPayload struct {
	ID        string        `json:"id"`
	SlotID    string        `json:"slotId"`
	StartTime string        `json:"startTime"`
	EndTime   string        `json:"endTime"`
	Status    string        `json:"status"`
	WorkDate  string        `json:"workDate"`
	Date      string        `json:"date"`
	SlotDate  string        `json:"slotDate"`
	Slots     []slotPayload `json:"slots"`
}

type daysWrapper struct {
	Days []slotPayload `json:"days"`
}

// NormalizeSlotsResponse converts any of the three scheduling response shapes
// (day-grouped array, flat slot array, {days:[...]} wrapper) into the
// canonical date-to-slots map, each day sorted ascending by start time. Within
// one day the first slot seen for a start time wins; the backend guarantees
// start times are unique per technician and date, so a duplicate is dropped
// rather than trusted.
func NormalizeSlotsResponse(data []byte) (models.MonthSlots, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return models.MonthSlots{}, nil
	}

	var entries []slotPayload
	if trimmed[0] == '{' {
		var wrapper daysWrapper
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			return nil, fmt.Errorf("unrecognized wrapped slots payload: %w", err)
		}
		entries = wrapper.Days
	} else {
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, fmt.Errorf("unrecognized slots payload: %w", err)
		}
	}

	out := models.MonthSlots{}
	for _, entry := range entries {
		if len(entry.Slots) > 0 {
			date := entry.dateField()
			if date == "" {
				continue
			}
			for _, s := range entry.Slots {
				appendSlot(out, date, s)
			}
			continue
		}
		date := entry.dateField()
		if date == "" {
			continue
		}
		appendSlot(out, date, entry)
	}

	for date := range out {
		day := out[date]
		sort.Slice(day, func(i, j int) bool { return day[i].StartTime < day[j].StartTime })
		out[date] = dedupeByStart(day)
	}
	return out, nil
}

func (p slotPayload) dateField() string {
	switch {
	case p.WorkDate != "":
		return p.WorkDate
	case p.Date != "":
		return p.Date
	default:
		return p.SlotDate
	}
}

func appendSlot(out models.MonthSlots, date string, p slotPayload) {
	if p.StartTime == "" {
		return
	}
	id := p.ID
	if id == "" {
		id = p.SlotID
	}
	status := models.SlotStatus(p.Status)
	if status == "" {
		status = models.SlotFree
	}
	out[date] = append(out[date], models.SlotDescriptor{
		SlotID:    id,
		Date:      date,
		StartTime: p.StartTime,
		EndTime:   p.EndTime,
		Status:    status,
	})
}

func dedupeByStart(day []models.SlotDescriptor) []models.SlotDescriptor {
	deduped := day[:0]
	var lastStart string
	for i, s := range day {
		if i > 0 && s.StartTime == lastStart {
			continue
		}
		deduped = append(deduped, s)
		lastStart = s.StartTime
	}
	return deduped
}
