package draft

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"warrantydesk/models"

	"github.com/go-redis/redis/v8"
)

const draftKeyPrefix = "draft:"

// SnapshotStore persists draft snapshots between requests. Snapshots are
// transient: they carry a TTL and disappear with the dialog.
type SnapshotStore interface {
	Save(ctx context.Context, d models.AppointmentDraft, ttl time.Duration) error
	Get(ctx context.Context, draftID string) (*models.AppointmentDraft, error)
	Delete(ctx context.Context, draftID string) error
}

// RedisSnapshotStore keeps draft snapshots in Redis.
type RedisSnapshotStore struct {
	Client *redis.Client
}

func NewRedisSnapshotStore(client *redis.Client) *RedisSnapshotStore {
	return &RedisSnapshotStore{Client: client}
}

func (s *RedisSnapshotStore) Save(ctx context.Context, d models.AppointmentDraft, ttl time.Duration) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal draft snapshot: %w", err)
	}
	if err := s.Client.Set(ctx, draftKeyPrefix+d.DraftID, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store draft snapshot: %w", err)
	}
	return nil
}

func (s *RedisSnapshotStore) Get(ctx context.Context, draftID string) (*models.AppointmentDraft, error) {
	data, err := s.Client.Get(ctx, draftKeyPrefix+draftID).Result()
	if err != nil {
		return nil, ErrDraftNotFound
	}
	var d models.AppointmentDraft
	if err := json.Unmarshal([]byte(data), &d); err != nil {
		return nil, fmt.Errorf("failed to parse draft snapshot: %w", err)
	}
	return &d, nil
}

func (s *RedisSnapshotStore) Delete(ctx context.Context, draftID string) error {
	if err := s.Client.Del(ctx, draftKeyPrefix+draftID).Err(); err != nil {
		return fmt.Errorf("failed to delete draft snapshot: %w", err)
	}
	return nil
}

// MemorySnapshotStore is an in-process SnapshotStore used in tests.
type MemorySnapshotStore struct {
	mu     sync.Mutex
	drafts map[string]models.AppointmentDraft
}

func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{drafts: make(map[string]models.AppointmentDraft)}
}

func (s *MemorySnapshotStore) Save(_ context.Context, d models.AppointmentDraft, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[d.DraftID] = d
	return nil
}

func (s *MemorySnapshotStore) Get(_ context.Context, draftID string) (*models.AppointmentDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[draftID]
	if !ok {
		return nil, ErrDraftNotFound
	}
	return &d, nil
}

func (s *MemorySnapshotStore) Delete(_ context.Context, draftID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, draftID)
	return nil
}
