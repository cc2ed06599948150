package session

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ademposhka4/ResumeTailorPlatform/internal/types"
)

// MemoryStore keeps sessions in process memory. It backs runs without a
// configured database and the tests.
type MemoryStore struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]*Session
	keyIdx map[string]uuid.UUID
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:   map[uuid.UUID]*Session{},
		keyIdx: map[string]uuid.UUID{},
	}
}

// Create registers a pending session, honoring idempotency keys.
func (s *MemoryStore) Create(_ context.Context, key string) (*Session, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if key != "" {
		if id, ok := s.keyIdx[key]; ok {
			return cloneSession(s.byID[id]), false, nil
		}
	}

	now := time.Now()
	sess := &Session{
		ID:             uuid.New(),
		IdempotencyKey: key,
		Status:         StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.byID[sess.ID] = sess
	if key != "" {
		s.keyIdx[key] = sess.ID
	}
	return cloneSession(sess), true, nil
}

// Get retrieves a session by id.
func (s *MemoryStore) Get(_ context.Context, id uuid.UUID) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneSession(sess), nil
}

// MarkProcessing transitions a session to processing.
func (s *MemoryStore) MarkProcessing(_ context.Context, id uuid.UUID) error {
	return s.update(id, func(sess *Session) {
		sess.Status = StatusProcessing
	})
}

// Complete stores the result and marks the session completed.
func (s *MemoryStore) Complete(_ context.Context, id uuid.UUID, result *types.TailoringResult) error {
	return s.update(id, func(sess *Session) {
		sess.Status = StatusCompleted
		sess.Result = result
	})
}

// Fail records the failure message and marks the session failed.
func (s *MemoryStore) Fail(_ context.Context, id uuid.UUID, message string) error {
	return s.update(id, func(sess *Session) {
		sess.Status = StatusFailed
		sess.Error = message
	})
}

// List retrieves recent sessions, newest first.
func (s *MemoryStore) List(_ context.Context, limit int) ([]Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]Session, 0, len(s.byID))
	for _, sess := range s.byID {
		sessions = append(sessions, *cloneSession(sess))
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})
	if limit > 0 && len(sessions) > limit {
		sessions = sessions[:limit]
	}
	return sessions, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() {}

func (s *MemoryStore) update(id uuid.UUID, apply func(*Session)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}
	apply(sess)
	sess.UpdatedAt = time.Now()
	return nil
}

func cloneSession(sess *Session) *Session {
	clone := *sess
	return &clone
}
