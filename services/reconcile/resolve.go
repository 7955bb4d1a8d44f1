package reconcile

import (
	"context"
	"strings"

	"warrantydesk/models"
)

// Resolution is the outcome of mapping the selection onto backend slot ids.
type Resolution struct {
	SlotIDs    []string
	Unresolved []string
}

// ResolveSelection maps every selection key to a concrete backend slot id.
// ID keys are accepted directly after trimming; composite keys are looked up
// first in the chosen technician's cached months, then across every
// suggestion entry's slots (first match wins). Unresolved keys are collected,
// never silently dropped.
func (e *Engine) ResolveSelection() Resolution {
	e.mu.Lock()
	tech := e.chosenTechnicianID
	e.mu.Unlock()

	var res Resolution
	for _, key := range e.sel.Keys() {
		switch key.Kind {
		case models.KeyKindID:
			id := strings.TrimSpace(key.SlotID)
			if id == "" {
				res.Unresolved = append(res.Unresolved, key.String())
				continue
			}
			res.SlotIDs = append(res.SlotIDs, id)
		case models.KeyKindComposite:
			if id := e.resolveComposite(tech, key.Date, key.StartTime); id != "" {
				res.SlotIDs = append(res.SlotIDs, id)
			} else {
				res.Unresolved = append(res.Unresolved, key.String())
			}
		default:
			res.Unresolved = append(res.Unresolved, key.String())
		}
	}
	return res
}

func (e *Engine) resolveComposite(technicianID, date, startTime string) string {
	if technicianID != "" {
		if year, month, ok := yearMonthOf(date); ok {
			if months, ok := e.cache.Get(technicianID, year, month); ok {
				for _, slot := range months[date] {
					if slot.StartTime == startTime && slot.SlotID != "" {
						return slot.SlotID
					}
				}
			}
		}
	}
	for _, entry := range e.store.Entries() {
		for _, ref := range entry.AvailableSlots {
			if ref.WorkDate == date && ref.StartTime == startTime && ref.SlotID != "" {
				return ref.SlotID
			}
		}
	}
	return ""
}

// Submit validates the draft, resolves the whole selection and creates the
// appointment. Submission is all-or-nothing: one unresolved key fails the
// entire submit with the failing keys enumerated.
func (e *Engine) Submit(ctx context.Context, sess models.Session) (*models.Appointment, error) {
	e.mu.Lock()
	claimID := e.claimID
	tech := e.chosenTechnicianID
	note := e.note
	skills := append([]string(nil), e.requiredSkills...)
	e.mu.Unlock()

	if claimID == "" {
		return nil, NewValidationError("a claim must be attached before submitting")
	}
	if tech == "" {
		return nil, NewValidationError("a technician must be chosen before submitting")
	}
	if e.sel.Len() == 0 {
		return nil, NewValidationError("at least one slot must be selected before submitting")
	}

	res := e.ResolveSelection()
	if len(res.Unresolved) > 0 {
		return nil, &ResolutionError{Unresolved: res.Unresolved}
	}

	e.debounce.Cancel()

	created, err := e.appts.Create(ctx, sess, models.CreateAppointmentRequest{
		ClaimID:       claimID,
		TechnicianID:  tech,
		SlotIDs:       res.SlotIDs,
		Note:          note,
		RequiredSkill: strings.Join(skills, ","),
	})
	if err != nil {
		return nil, &TransportError{Op: "create appointment", Err: err}
	}
	return created, nil
}
