package session

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ademposhka4/ResumeTailorPlatform/internal/types"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	sess, created, err := store.Create(ctx, "")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, StatusPending, sess.Status)

	require.NoError(t, store.MarkProcessing(ctx, sess.ID))
	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusProcessing, got.Status)
	assert.False(t, got.Status.Terminal())

	result := &types.TailoringResult{Title: "Engineer", Bullets: []string{"Built a thing"}}
	require.NoError(t, store.Complete(ctx, sess.ID, result))

	got, err = store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, got.Status)
	assert.True(t, got.Status.Terminal())
	require.NotNil(t, got.Result)
	assert.Equal(t, "Engineer", got.Result.Title)
}

func TestMemoryStoreIdempotencyKey(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	first, created, err := store.Create(ctx, "req-abc")
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := store.Create(ctx, "req-abc")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	third, created, err := store.Create(ctx, "req-xyz")
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, first.ID, third.ID)
}

func TestMemoryStoreFail(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	sess, _, err := store.Create(ctx, "")
	require.NoError(t, err)
	require.NoError(t, store.Fail(ctx, sess.ID, "description too short"))

	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, got.Status)
	assert.Equal(t, "description too short", got.Error)
}

func TestMemoryStoreNotFound(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.MarkProcessing(ctx, uuid.New()), ErrNotFound)
	assert.ErrorIs(t, store.Complete(ctx, uuid.New(), nil), ErrNotFound)
}

func TestMemoryStoreListNewestFirst(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, _, err := store.Create(ctx, "")
		require.NoError(t, err)
	}

	sessions, err := store.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, sessions, 2)
	assert.False(t, sessions[0].CreatedAt.Before(sessions[1].CreatedAt))
}

func TestMemoryStoreGetReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	sess, _, err := store.Create(ctx, "")
	require.NoError(t, err)

	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	got.Status = StatusFailed

	again, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, again.Status)
}
