// Package session tracks tailoring runs across their lifecycle so callers
// can poll for results and retry safely. Stores are keyed by session id and
// optionally by caller-supplied idempotency key: re-submitting the same key
// returns the original session instead of spending tokens twice.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ademposhka4/ResumeTailorPlatform/internal/types"
)

// Status is the lifecycle state of one tailoring session.
type Status string

// Session lifecycle states.
const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Terminal reports whether the session will not change state again.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Session is one tracked tailoring run.
type Session struct {
	ID             uuid.UUID              `json:"id"`
	IdempotencyKey string                 `json:"idempotency_key,omitempty"`
	Status         Status                 `json:"status"`
	Result         *types.TailoringResult `json:"result,omitempty"`
	Error          string                 `json:"error,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// Store persists sessions. Both implementations enforce idempotency-key
// uniqueness at create time.
type Store interface {
	// Create registers a new pending session. When key is non-empty and a
	// session with that key already exists, the existing session is
	// returned with created=false.
	Create(ctx context.Context, key string) (sess *Session, created bool, err error)
	Get(ctx context.Context, id uuid.UUID) (*Session, error)
	MarkProcessing(ctx context.Context, id uuid.UUID) error
	Complete(ctx context.Context, id uuid.UUID, result *types.TailoringResult) error
	Fail(ctx context.Context, id uuid.UUID, message string) error
	List(ctx context.Context, limit int) ([]Session, error)
	Close()
}
