package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ademposhka4/ResumeTailorPlatform/internal/types"
)

// PgStore persists sessions in PostgreSQL. Results are stored as JSONB so
// the full tailoring output survives process restarts.
type PgStore struct {
	pool *pgxpool.Pool
}

// ErrNotFound is returned when no session exists for the given id.
var ErrNotFound = errors.New("session not found")

// ConnectPg establishes a connection pool and verifies it.
func ConnectPg(ctx context.Context, databaseURL string) (*PgStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &PgStore{pool: pool}, nil
}

// Close closes the connection pool.
func (s *PgStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Create registers a pending session, honoring idempotency keys.
func (s *PgStore) Create(ctx context.Context, key string) (*Session, bool, error) {
	if key != "" {
		existing, err := s.findByKey(ctx, key)
		if err != nil {
			return nil, false, err
		}
		if existing != nil {
			return existing, false, nil
		}
	}

	sess := &Session{Status: StatusPending, IdempotencyKey: key}
	var nullableKey *string
	if key != "" {
		nullableKey = &key
	}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO tailoring_sessions (idempotency_key, status)
		 VALUES ($1, $2)
		 RETURNING id, created_at, updated_at`,
		nullableKey, StatusPending,
	).Scan(&sess.ID, &sess.CreatedAt, &sess.UpdatedAt)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create session: %w", err)
	}
	return sess, true, nil
}

// Get retrieves a session by id.
func (s *PgStore) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	return s.scanOne(s.pool.QueryRow(ctx,
		`SELECT id, COALESCE(idempotency_key, ''), status, result, COALESCE(error, ''), created_at, updated_at
		 FROM tailoring_sessions WHERE id = $1`, id))
}

func (s *PgStore) findByKey(ctx context.Context, key string) (*Session, error) {
	sess, err := s.scanOne(s.pool.QueryRow(ctx,
		`SELECT id, COALESCE(idempotency_key, ''), status, result, COALESCE(error, ''), created_at, updated_at
		 FROM tailoring_sessions WHERE idempotency_key = $1`, key))
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return sess, err
}

// MarkProcessing transitions a pending session to processing.
func (s *PgStore) MarkProcessing(ctx context.Context, id uuid.UUID) error {
	return s.setStatus(ctx, id,
		`UPDATE tailoring_sessions SET status = $1, updated_at = NOW() WHERE id = $2`,
		StatusProcessing)
}

// Complete stores the result and marks the session completed.
func (s *PgStore) Complete(ctx context.Context, id uuid.UUID, result *types.TailoringResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE tailoring_sessions SET status = $1, result = $2, updated_at = NOW() WHERE id = $3`,
		StatusCompleted, payload, id)
	if err != nil {
		return fmt.Errorf("failed to complete session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Fail records the failure message and marks the session failed.
func (s *PgStore) Fail(ctx context.Context, id uuid.UUID, message string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE tailoring_sessions SET status = $1, error = $2, updated_at = NOW() WHERE id = $3`,
		StatusFailed, message, id)
	if err != nil {
		return fmt.Errorf("failed to mark session failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// List retrieves recent sessions, newest first.
func (s *PgStore) List(ctx context.Context, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, COALESCE(idempotency_key, ''), status, result, COALESCE(error, ''), created_at, updated_at
		 FROM tailoring_sessions ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		sess, err := s.scanRow(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *sess)
	}
	return sessions, rows.Err()
}

func (s *PgStore) setStatus(ctx context.Context, id uuid.UUID, query string, status Status) error {
	tag, err := s.pool.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update session status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *PgStore) scanOne(row pgx.Row) (*Session, error) {
	sess, err := s.scanRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sess, nil
}

func (s *PgStore) scanRow(row rowScanner) (*Session, error) {
	var sess Session
	var resultBytes []byte
	if err := row.Scan(&sess.ID, &sess.IdempotencyKey, &sess.Status, &resultBytes,
		&sess.Error, &sess.CreatedAt, &sess.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, fmt.Errorf("failed to scan session: %w", err)
	}
	if len(resultBytes) > 0 {
		var result types.TailoringResult
		if err := json.Unmarshal(resultBytes, &result); err == nil {
			sess.Result = &result
		}
	}
	return &sess, nil
}

// Schema is the DDL for the session table, applied out of band.
const Schema = `
CREATE TABLE IF NOT EXISTS tailoring_sessions (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    idempotency_key TEXT UNIQUE,
    status TEXT NOT NULL,
    result JSONB,
    error TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`
