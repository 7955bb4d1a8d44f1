package reconcile

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"warrantydesk/clients/appointment"
	"warrantydesk/clients/scheduling"
	"warrantydesk/clients/suggestion"
	"warrantydesk/models"

	"go.uber.org/zap"
)

// Deps wires the engine to its collaborators.
type Deps struct {
	Scheduling     scheduling.SchedulingAPI
	Suggestion     suggestion.SuggestionAPI
	Appointment    appointment.AppointmentAPI
	DebounceWindow time.Duration
	Logger         *zap.Logger
}

// Engine merges technician-specific slot truth with suggestion-derived hints
// into one consistent view, keeps the user's selection valid across context
// switches, and resolves selection keys back into backend slot ids at submit
// time. One engine instance serves one appointment draft.
//
// Responses from in-flight collaborator calls are applied only if the context
// revision they were issued under is still current; a late response for a
// superseded technician or date is dropped silently.
type Engine struct {
	cache    *SlotCache
	store    *SuggestionStore
	appts    appointment.AppointmentAPI
	debounce *Debouncer
	sel      *SelectionSet
	logger   *zap.Logger

	mu                 sync.Mutex // guards the fields below
	rev                uint64
	claimID            string
	note               string
	requiredSkills     []string
	activeDate         string
	chosenTechnicianID string
}

func NewEngine(deps Deps) *Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	window := deps.DebounceWindow
	if window <= 0 {
		window = 400 * time.Millisecond
	}
	e := &Engine{
		cache:    NewSlotCache(deps.Scheduling),
		store:    NewSuggestionStore(deps.Suggestion),
		appts:    deps.Appointment,
		debounce: NewDebouncer(window),
		sel:      NewSelectionSet(),
		logger:   logger,
	}
	return e
}

// SetClaim records the warranty claim this draft belongs to.
func (e *Engine) SetClaim(claimID string) {
	e.mu.Lock()
	e.claimID = claimID
	e.mu.Unlock()
}

// SetNote records the free-form note for the appointment.
func (e *Engine) SetNote(note string) {
	e.mu.Lock()
	e.note = note
	e.mu.Unlock()
}

// SetSkills replaces the required-skill set and re-arms the automatic
// suggestion trigger.
func (e *Engine) SetSkills(sess models.Session, skills []string) {
	e.mu.Lock()
	e.requiredSkills = append([]string(nil), skills...)
	e.mu.Unlock()
	e.maybeAutoSuggest(sess)
}

// SetActiveDate switches the calendar date the dialog is looking at. Moving
// to a different date resets the selection context and bumps the revision so
// late responses for the old date are discarded.
func (e *Engine) SetActiveDate(sess models.Session, date string) {
	e.mu.Lock()
	if date != e.activeDate {
		e.activeDate = date
		e.rev++
		e.sel.Clear()
	}
	e.mu.Unlock()
	e.maybeAutoSuggest(sess)
}

// ChooseTechnician commits to a technician and fills the slot cache for that
// technician's month of the active date, switching the merged view to the
// technician's own calendar. Switching away from a previously chosen
// technician resets the selection.
func (e *Engine) ChooseTechnician(ctx context.Context, sess models.Session, technicianID string) error {
	e.mu.Lock()
	if technicianID != e.chosenTechnicianID {
		if e.chosenTechnicianID != "" {
			e.sel.Clear()
		}
		e.chosenTechnicianID = technicianID
		e.rev++
	}
	date := e.activeDate
	e.mu.Unlock()

	if technicianID == "" {
		return nil
	}
	year, month, ok := yearMonthOf(date)
	if !ok {
		return nil
	}
	if _, err := e.cache.Load(ctx, sess, technicianID, year, month); err != nil {
		return err
	}
	return nil
}

// ToggleSlot flips the slot's membership in the selection and re-arms the
// automatic suggestion trigger.
func (e *Engine) ToggleSlot(sess models.Session, slot models.SlotDescriptor) (bool, error) {
	e.mu.Lock()
	date := e.activeDate
	e.mu.Unlock()

	added, err := e.sel.Toggle(slot, date)
	if err != nil {
		return false, err
	}
	e.maybeAutoSuggest(sess)
	return added, nil
}

// MergedSlotsForDate returns the single displayable slot list for the given
// date. Once a technician is chosen and their cached month has slots for the
// date, that calendar is authoritative; before that, the union of all
// suggestion entries' slots for the date is shown, deduplicated by start time
// with the first (highest-ranked) occurrence winning.
func (e *Engine) MergedSlotsForDate(date string) []models.SlotDescriptor {
	e.mu.Lock()
	tech := e.chosenTechnicianID
	e.mu.Unlock()

	if tech != "" {
		if year, month, ok := yearMonthOf(date); ok {
			if months, ok := e.cache.Get(tech, year, month); ok {
				if day := months[date]; len(day) > 0 {
					return day
				}
			}
		}
	}

	seen := make(map[string]bool)
	var union []models.SlotDescriptor
	for _, entry := range e.store.Entries() {
		for _, ref := range entry.AvailableSlots {
			if ref.WorkDate != date || seen[ref.StartTime] {
				continue
			}
			seen[ref.StartTime] = true
			union = append(union, models.SlotDescriptor{
				SlotID:    ref.SlotID,
				Date:      ref.WorkDate,
				StartTime: ref.StartTime,
				EndTime:   ref.EndTime,
				Status:    models.SlotFree,
			})
		}
	}
	sort.Slice(union, func(i, j int) bool { return union[i].StartTime < union[j].StartTime })
	return union
}

// Suggest queries the ranking backend for the current skills and date. Manual
// requests bypass the debounce and report an empty result as
// ErrNoTechniciansFound; the automatic path stays silent on empty results. On
// success the store is replaced wholesale and the top-ranked technician's
// month is prefetched best-effort.
func (e *Engine) Suggest(ctx context.Context, sess models.Session, manual bool) ([]models.SuggestionEntry, error) {
	e.mu.Lock()
	skills := append([]string(nil), e.requiredSkills...)
	date := e.activeDate
	issuedRev := e.rev
	e.mu.Unlock()

	entries, err := e.store.Query(ctx, sess, skills, date)
	if err != nil {
		var tErr *TransportError
		if errors.As(err, &tErr) {
			e.mu.Lock()
			if e.rev == issuedRev {
				e.store.Clear()
			}
			e.mu.Unlock()
		}
		return nil, err
	}

	e.mu.Lock()
	if e.rev != issuedRev {
		e.mu.Unlock()
		// The technician or date moved while the query was in flight; the
		// result no longer belongs to the active context.
		e.logger.Debug("discarding stale suggestion response",
			zap.String("workDate", date), zap.Uint64("issuedRev", issuedRev))
		return nil, nil
	}
	e.store.Replace(entries)
	e.mu.Unlock()

	if len(entries) > 0 {
		e.prefetchTopTechnician(sess, entries[0].TechnicianID, date)
	} else if manual {
		return nil, ErrNoTechniciansFound
	}
	return entries, nil
}

// prefetchTopTechnician warms the slot cache for the highest-ranked
// suggestion. Best-effort: failures are logged at debug and otherwise
// ignored.
func (e *Engine) prefetchTopTechnician(sess models.Session, technicianID, date string) {
	year, month, ok := yearMonthOf(date)
	if !ok {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if _, err := e.cache.Load(ctx, sess, technicianID, year, month); err != nil {
			e.logger.Debug("prefetch of top suggestion's month failed",
				zap.String("technicianId", technicianID), zap.Error(err))
		}
	}()
}

// maybeAutoSuggest re-arms the debounced automatic suggestion query when the
// qualifying condition holds: skills set, a date set and a non-empty
// selection. Each qualifying change restarts the window, so a burst of
// clicks produces exactly one query with the latest parameters.
func (e *Engine) maybeAutoSuggest(sess models.Session) {
	e.mu.Lock()
	qualifies := len(e.requiredSkills) > 0 && e.activeDate != "" && e.sel.Len() > 0
	e.mu.Unlock()
	if !qualifies {
		return
	}
	e.debounce.Schedule(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if _, err := e.Suggest(ctx, sess, false); err != nil {
			e.logger.Debug("automatic suggestion query failed", zap.Error(err))
		}
	})
}

// Suggestions exposes the current ranking for the dialog's technician list.
func (e *Engine) Suggestions() []models.SuggestionEntry {
	return e.store.Entries()
}

// Draft materializes the engine state into the persistable aggregate.
func (e *Engine) Draft() models.AppointmentDraft {
	e.mu.Lock()
	defer e.mu.Unlock()
	return models.AppointmentDraft{
		ClaimID:            e.claimID,
		RequiredSkills:     append([]string(nil), e.requiredSkills...),
		Note:               e.note,
		ActiveDate:         e.activeDate,
		ChosenTechnicianID: e.chosenTechnicianID,
		Selection:          e.sel.Keys(),
		Suggestions:        e.store.Entries(),
		SlotMonths:         e.cache.Snapshot(),
	}
}

// Restore rebuilds engine state from a draft snapshot.
func (e *Engine) Restore(d models.AppointmentDraft) {
	e.mu.Lock()
	e.claimID = d.ClaimID
	e.note = d.Note
	e.requiredSkills = append([]string(nil), d.RequiredSkills...)
	e.activeDate = d.ActiveDate
	e.chosenTechnicianID = d.ChosenTechnicianID
	e.mu.Unlock()

	e.sel.Restore(d.Selection)
	e.store.Replace(d.Suggestions)
	e.cache.Seed(d.SlotMonths)
}

// CancelPending drops any armed automatic suggestion, used when the draft is
// submitted or discarded.
func (e *Engine) CancelPending() {
	e.debounce.Cancel()
}

func yearMonthOf(date string) (int, time.Month, bool) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0, 0, false
	}
	return t.Year(), t.Month(), true
}

