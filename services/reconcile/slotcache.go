package reconcile

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"warrantydesk/clients/scheduling"
	"warrantydesk/models"
)

// SlotCache memoizes technician calendars per (technician, year, month) so the
// merged-view renderer gets a synchronous lookup and repeated loads for the
// same month issue no extra network calls. Entries are immutable once stored;
// changing the key is the only form of invalidation. Writes are
// first-write-wins per key, so a prefetch racing a foreground load is
// harmless.
type SlotCache struct {
	api    scheduling.SchedulingAPI
	mu     sync.Mutex
	months map[string]models.MonthSlots
}

func NewSlotCache(api scheduling.SchedulingAPI) *SlotCache {
	return &SlotCache{
		api:    api,
		months: make(map[string]models.MonthSlots),
	}
}

// MonthKey builds the cache key for one technician month.
func MonthKey(technicianID string, year int, month time.Month) string {
	return fmt.Sprintf("%s_%d_%d", technicianID, year, int(month))
}

// Get is a pure lookup with no side effect.
func (c *SlotCache) Get(technicianID string, year int, month time.Month) (models.MonthSlots, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	m, ok := c.months[MonthKey(technicianID, year, month)]
	return m, ok
}

// Load returns the cached month when present, otherwise fetches the full
// month from the scheduling backend, sorts each day ascending by start time
// and stores the result. A failed fetch returns an empty map and writes
// nothing, so a later retry re-attempts the network call. The network call
// runs outside the lock.
func (c *SlotCache) Load(ctx context.Context, sess models.Session, technicianID string, year int, month time.Month) (models.MonthSlots, error) {
	key := MonthKey(technicianID, year, month)

	c.mu.Lock()
	if cached, ok := c.months[key]; ok {
		c.mu.Unlock()
		return cached, nil
	}
	c.mu.Unlock()

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	slots, err := c.api.GetTechnicianSlots(ctx, sess, technicianID,
		first.Format("2006-01-02"), last.Format("2006-01-02"))
	if err != nil {
		return models.MonthSlots{}, &TransportError{Op: "load technician slots", Err: err}
	}

	for date := range slots {
		day := slots[date]
		sort.Slice(day, func(i, j int) bool { return day[i].StartTime < day[j].StartTime })
		slots[date] = day
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if winner, ok := c.months[key]; ok {
		return winner, nil
	}
	c.months[key] = slots
	return slots, nil
}

// Seed restores previously cached months, used when rehydrating a draft from
// its snapshot.
func (c *SlotCache) Seed(months map[string]models.MonthSlots) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, m := range months {
		c.months[key] = m
	}
}

// Snapshot returns the cached months for draft persistence.
func (c *SlotCache) Snapshot() map[string]models.MonthSlots {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]models.MonthSlots, len(c.months))
	for key, m := range c.months {
		out[key] = m
	}
	return out
}
