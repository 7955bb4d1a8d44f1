package reconcile

import (
	"sync"

	"warrantydesk/models"
)

// SelectionSet tracks which slots the user intends to book for the active
// date, independent of whether the cache or the suggestion store is currently
// feeding the merged view. Membership is a set; insertion order is preserved
// so resolution runs deterministically.
type SelectionSet struct {
	mu   sync.Mutex
	keys []models.SelectionKey
}

func NewSelectionSet() *SelectionSet {
	return &SelectionSet{}
}

// Toggle flips membership of the slot's key. Slots in a blocked, held or
// technician-cancelled state are rejected with ErrNotSelectable and leave the
// set untouched.
func (s *SelectionSet) Toggle(slot models.SlotDescriptor, activeDate string) (added bool, err error) {
	if !slot.Status.Selectable() {
		return false, ErrNotSelectable
	}
	key := models.KeyFor(slot, activeDate)

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			return false, nil
		}
	}
	s.keys = append(s.keys, key)
	return true, nil
}

// Clear empties the set. Called whenever the technician or date context is
// reset.
func (s *SelectionSet) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys = nil
}

// Keys returns the selection in insertion order.
func (s *SelectionSet) Keys() []models.SelectionKey {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.SelectionKey, len(s.keys))
	copy(out, s.keys)
	return out
}

// Len reports the number of selected slots.
func (s *SelectionSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.keys)
}

// Restore replaces the set's content from a draft snapshot. Duplicate keys
// in the snapshot are dropped.
func (s *SelectionSet) Restore(keys []models.SelectionKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys = nil
	for _, key := range keys {
		dup := false
		for _, existing := range s.keys {
			if existing == key {
				dup = true
				break
			}
		}
		if !dup {
			s.keys = append(s.keys, key)
		}
	}
}
