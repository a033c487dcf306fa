package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xaenox/agenda-bot/internal/models"
)

func event(id string) models.Event {
	start := time.Date(2025, 5, 27, 15, 0, 0, 0, time.UTC)
	return models.Event{ID: id, Title: "Evento " + id, StartDate: start, EndDate: start.Add(time.Hour)}
}

func TestMemoryStoreGetUnknownUser(t *testing.T) {
	store := NewMemoryStore()

	session, err := store.Get(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "42", session.UserID)
	assert.Empty(t, session.Events)
}

func TestMemoryStoreWithLockCommits(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	err := store.WithLock(ctx, "42", func(s *models.UserSession) error {
		s.Append(event("a"))
		s.Append(event("b"))
		return nil
	})
	require.NoError(t, err)

	session, err := store.Get(ctx, "42")
	require.NoError(t, err)
	require.Len(t, session.Events, 2)
	assert.Equal(t, "a", session.Events[0].ID)
	assert.Equal(t, "b", session.Events[1].ID)

	other, err := store.Get(ctx, "43")
	require.NoError(t, err)
	assert.Empty(t, other.Events)
}

func TestMemoryStoreWithLockDiscardsOnError(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.WithLock(ctx, "42", func(s *models.UserSession) error {
		s.Append(event("a"))
		return nil
	}))

	boom := errors.New("boom")
	err := store.WithLock(ctx, "42", func(s *models.UserSession) error {
		s.RemoveAt(1)
		s.Append(event("b"))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	session, err := store.Get(ctx, "42")
	require.NoError(t, err)
	require.Len(t, session.Events, 1)
	assert.Equal(t, "a", session.Events[0].ID)
}

func TestMemoryStoreGetReturnsSnapshot(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.WithLock(ctx, "42", func(s *models.UserSession) error {
		s.Append(event("a"))
		return nil
	}))

	snapshot, err := store.Get(ctx, "42")
	require.NoError(t, err)
	snapshot.Events[0].Title = "changed"
	snapshot.Append(event("b"))

	session, err := store.Get(ctx, "42")
	require.NoError(t, err)
	require.Len(t, session.Events, 1)
	assert.Equal(t, "Evento a", session.Events[0].Title)
}

func TestMemoryStoreConcurrentAppends(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	const writers = 50
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := store.WithLock(ctx, "42", func(s *models.UserSession) error {
				s.Append(event(fmt.Sprint(i)))
				return nil
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	session, err := store.Get(ctx, "42")
	require.NoError(t, err)
	assert.Len(t, session.Events, writers)
}

func TestMemoryStoreCanceledContext(t *testing.T) {
	store := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := store.WithLock(ctx, "42", func(*models.UserSession) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)

	_, err = store.Get(ctx, "42")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryStoreClosed(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Close())

	_, err := store.Get(ctx, "42")
	assert.ErrorIs(t, err, ErrStoreClosed)

	err = store.WithLock(ctx, "42", func(*models.UserSession) error { return nil })
	assert.ErrorIs(t, err, ErrStoreClosed)
}

func TestDatabaseConfigConnString(t *testing.T) {
	cfg := DatabaseConfig{Host: "db", Port: 5433, User: "agenda", Password: "secret", DBName: "events"}
	assert.Equal(t,
		"host=db port=5433 user=agenda password=secret dbname=events sslmode=disable",
		cfg.connString())

	cfg.SSLMode = "require"
	assert.Contains(t, cfg.connString(), "sslmode=require")
}
