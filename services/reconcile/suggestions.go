package reconcile

import (
	"context"
	"sort"
	"sync"

	"warrantydesk/clients/suggestion"
	"warrantydesk/models"
)

// SuggestionStore holds the most recent technician ranking for the active
// skill+date query. Results are replaced wholesale; nothing is merged with a
// previous query. The engine gates Replace so a stale response can be
// discarded before it overwrites a newer context.
type SuggestionStore struct {
	api     suggestion.SuggestionAPI
	mu      sync.Mutex
	entries []models.SuggestionEntry
}

func NewSuggestionStore(api suggestion.SuggestionAPI) *SuggestionStore {
	return &SuggestionStore{api: api}
}

// Query validates input, sends one combined request (skills joined, one date)
// and returns the entries sorted descending by availableCount, with score as
// the tie break. It does not commit the result; the
// caller decides whether the response still matches the active context.
func (s *SuggestionStore) Query(ctx context.Context, sess models.Session, skills []string, workDate string) ([]models.SuggestionEntry, error) {
	if len(skills) == 0 {
		return nil, NewValidationError("required skills must be set before requesting suggestions")
	}
	if workDate == "" {
		return nil, NewValidationError("a date must be set before requesting suggestions")
	}

	entries, err := s.api.SuggestTechnicians(ctx, sess, skills, workDate)
	if err != nil {
		return nil, &TransportError{Op: "suggest technicians", Err: err}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].AvailableCount != entries[j].AvailableCount {
			return entries[i].AvailableCount > entries[j].AvailableCount
		}
		return entries[i].Score > entries[j].Score
	})
	return entries, nil
}

// Replace commits a query result, dropping whatever was held before.
func (s *SuggestionStore) Replace(entries []models.SuggestionEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = entries
}

// Clear empties the store, used when a query fails so no stale ranking
// survives the error.
func (s *SuggestionStore) Clear() {
	s.Replace(nil)
}

// Entries returns the current ranking.
func (s *SuggestionStore) Entries() []models.SuggestionEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.SuggestionEntry, len(s.entries))
	copy(out, s.entries)
	return out
}
