package draft

import (
	"context"
	"errors"
	"sync"
	"time"

	"warrantydesk/models"
	"warrantydesk/services/reconcile"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrDraftNotFound means the draft id is unknown or its snapshot expired.
var ErrDraftNotFound = errors.New("draft not found or expired")

// DefaultDraftSessionService implements DraftSessionService. Engine instances
// live in a process-local registry; every mutation also writes the draft
// snapshot to the store so an expired registry entry can be rehydrated.
type DefaultDraftSessionService struct {
	EngineDeps reconcile.Deps
	Store      SnapshotStore
	TTL        time.Duration
	Logger     *zap.Logger

	mu      sync.Mutex
	engines map[string]*entry
}

type entry struct {
	engine    *reconcile.Engine
	createdAt time.Time
}

func NewDraftSessionService(deps reconcile.Deps, store SnapshotStore, ttl time.Duration, logger *zap.Logger) *DefaultDraftSessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &DefaultDraftSessionService{
		EngineDeps: deps,
		Store:      store,
		TTL:        ttl,
		Logger:     logger,
		engines:    make(map[string]*entry),
	}
}

// Open creates an empty draft, registers its engine and snapshots it.
func (s *DefaultDraftSessionService) Open(ctx context.Context, sess models.Session) (*models.DraftView, error) {
	draftID := uuid.New().String()
	ent := &entry{engine: reconcile.NewEngine(s.EngineDeps), createdAt: time.Now()}

	s.mu.Lock()
	s.engines[draftID] = ent
	s.mu.Unlock()

	if err := s.persist(ctx, draftID, ent); err != nil {
		return nil, err
	}
	s.Logger.Info("opened appointment draft", zap.String("draftId", draftID), zap.String("role", sess.Role))
	return s.view(draftID, ent), nil
}

func (s *DefaultDraftSessionService) Get(ctx context.Context, sess models.Session, draftID string) (*models.DraftView, error) {
	ent, err := s.entryFor(ctx, draftID)
	if err != nil {
		return nil, err
	}
	return s.view(draftID, ent), nil
}

func (s *DefaultDraftSessionService) SetContext(ctx context.Context, sess models.Session, draftID string, update ContextUpdate) (*models.DraftView, error) {
	ent, err := s.entryFor(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if update.ClaimID != nil {
		ent.engine.SetClaim(*update.ClaimID)
	}
	if update.Note != nil {
		ent.engine.SetNote(*update.Note)
	}
	if update.RequiredSkills != nil {
		ent.engine.SetSkills(sess, *update.RequiredSkills)
	}
	if update.ActiveDate != nil {
		ent.engine.SetActiveDate(sess, *update.ActiveDate)
	}
	if err := s.persist(ctx, draftID, ent); err != nil {
		return nil, err
	}
	return s.view(draftID, ent), nil
}

// Suggest runs a manual suggestion query, bypassing the debounce.
func (s *DefaultDraftSessionService) Suggest(ctx context.Context, sess models.Session, draftID string) (*models.DraftView, error) {
	ent, err := s.entryFor(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if _, err := ent.engine.Suggest(ctx, sess, true); err != nil {
		return nil, err
	}
	if err := s.persist(ctx, draftID, ent); err != nil {
		return nil, err
	}
	return s.view(draftID, ent), nil
}

func (s *DefaultDraftSessionService) ToggleSlot(ctx context.Context, sess models.Session, draftID string, slot models.SlotDescriptor) (*models.DraftView, error) {
	ent, err := s.entryFor(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if _, err := ent.engine.ToggleSlot(sess, slot); err != nil {
		return nil, err
	}
	if err := s.persist(ctx, draftID, ent); err != nil {
		return nil, err
	}
	return s.view(draftID, ent), nil
}

func (s *DefaultDraftSessionService) ChooseTechnician(ctx context.Context, sess models.Session, draftID string, technicianID string) (*models.DraftView, error) {
	ent, err := s.entryFor(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if err := ent.engine.ChooseTechnician(ctx, sess, technicianID); err != nil {
		// The choice itself stuck; only the calendar load failed. The draft
		// stays editable and a re-click retries the load.
		if persistErr := s.persist(ctx, draftID, ent); persistErr != nil {
			s.Logger.Warn("failed to persist draft after calendar load failure",
				zap.String("draftId", draftID), zap.Error(persistErr))
		}
		return nil, err
	}
	if err := s.persist(ctx, draftID, ent); err != nil {
		return nil, err
	}
	return s.view(draftID, ent), nil
}

func (s *DefaultDraftSessionService) MergedSlots(ctx context.Context, sess models.Session, draftID string, date string) ([]models.SlotDescriptor, error) {
	ent, err := s.entryFor(ctx, draftID)
	if err != nil {
		return nil, err
	}
	return ent.engine.MergedSlotsForDate(date), nil
}

// Submit finalizes the draft: the whole selection is resolved to slot ids and
// the appointment is created. On success the draft is discarded.
func (s *DefaultDraftSessionService) Submit(ctx context.Context, sess models.Session, draftID string) (*models.Appointment, error) {
	ent, err := s.entryFor(ctx, draftID)
	if err != nil {
		return nil, err
	}
	created, err := ent.engine.Submit(ctx, sess)
	if err != nil {
		return nil, err
	}

	s.drop(ctx, draftID, ent)
	s.Logger.Info("submitted appointment draft",
		zap.String("draftId", draftID), zap.String("appointmentId", created.ID))
	return created, nil
}

// Cancel discards the draft without submitting.
func (s *DefaultDraftSessionService) Cancel(ctx context.Context, sess models.Session, draftID string) error {
	ent, err := s.entryFor(ctx, draftID)
	if err != nil {
		return err
	}
	s.drop(ctx, draftID, ent)
	return nil
}

// entryFor finds the live engine for the draft, rehydrating it from the
// snapshot store when this process has no registry entry.
func (s *DefaultDraftSessionService) entryFor(ctx context.Context, draftID string) (*entry, error) {
	s.mu.Lock()
	ent, ok := s.engines[draftID]
	s.mu.Unlock()
	if ok {
		return ent, nil
	}

	snapshot, err := s.Store.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	engine := reconcile.NewEngine(s.EngineDeps)
	engine.Restore(*snapshot)
	ent = &entry{engine: engine, createdAt: snapshot.CreatedAt}

	s.mu.Lock()
	if existing, ok := s.engines[draftID]; ok {
		ent = existing
	} else {
		s.engines[draftID] = ent
	}
	s.mu.Unlock()
	return ent, nil
}

func (s *DefaultDraftSessionService) persist(ctx context.Context, draftID string, ent *entry) error {
	d := ent.engine.Draft()
	d.DraftID = draftID
	d.CreatedAt = ent.createdAt
	d.LastUpdatedAt = time.Now()
	return s.Store.Save(ctx, d, s.TTL)
}

func (s *DefaultDraftSessionService) drop(ctx context.Context, draftID string, ent *entry) {
	ent.engine.CancelPending()
	s.mu.Lock()
	delete(s.engines, draftID)
	s.mu.Unlock()
	if err := s.Store.Delete(ctx, draftID); err != nil {
		s.Logger.Warn("failed to delete draft snapshot", zap.String("draftId", draftID), zap.Error(err))
	}
}

func (s *DefaultDraftSessionService) view(draftID string, ent *entry) *models.DraftView {
	d := ent.engine.Draft()
	d.DraftID = draftID
	d.CreatedAt = ent.createdAt
	merged := []models.SlotDescriptor{}
	if d.ActiveDate != "" {
		merged = ent.engine.MergedSlotsForDate(d.ActiveDate)
	}
	return &models.DraftView{Draft: d, MergedSlots: merged}
}
