package memory

import (
	"testing"
	"time"

	"keep-notes-be/internal/notestate"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository(t *testing.T) {
	repo := NewSessionRepository(time.Hour, time.Minute)
	userId := uuid.New()

	_, ok := repo.Get(userId)
	assert.False(t, ok)

	store := notestate.NewStore(notestate.Reducer{}, notestate.NewAppState())
	repo.Save(userId, store)

	got, ok := repo.Get(userId)
	require.True(t, ok)
	assert.Same(t, store, got)
	assert.Equal(t, 1, repo.Count())

	repo.Delete(userId)
	_, ok = repo.Get(userId)
	assert.False(t, ok)
}

func TestSessionRepositorySaveIfAbsent(t *testing.T) {
	repo := NewSessionRepository(time.Hour, time.Minute)
	userId := uuid.New()

	first := notestate.NewStore(notestate.Reducer{}, notestate.NewAppState())
	second := notestate.NewStore(notestate.Reducer{}, notestate.NewAppState())

	assert.Same(t, first, repo.SaveIfAbsent(userId, first))
	assert.Same(t, first, repo.SaveIfAbsent(userId, second))
}

func TestSessionRepositoryExpiry(t *testing.T) {
	repo := NewSessionRepository(20*time.Millisecond, time.Millisecond)
	userId := uuid.New()
	repo.Save(userId, notestate.NewStore(notestate.Reducer{}, notestate.NewAppState()))

	assert.Eventually(t, func() bool {
		_, ok := repo.Get(userId)
		return !ok
	}, time.Second, 10*time.Millisecond)
}
