package storage

import (
	"context"
	"sync"

	"github.com/xaenox/agenda-bot/internal/models"
)

var _ SessionStore = (*MemoryStore)(nil)

// MemoryStore is the process-local SessionStore. Sessions are lost on
// restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*models.UserSession
	locks    map[string]*sync.Mutex
	closed   bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*models.UserSession),
		locks:    make(map[string]*sync.Mutex),
	}
}

func (s *MemoryStore) Get(ctx context.Context, userID string) (*models.UserSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}
	if session, exists := s.sessions[userID]; exists {
		return session.Clone(), nil
	}
	return models.NewUserSession(userID), nil
}

func (s *MemoryStore) WithLock(ctx context.Context, userID string, fn func(*models.UserSession) error) error {
	lock, err := s.userLock(userID)
	if err != nil {
		return err
	}

	lock.Lock()
	defer lock.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	// fn works on a copy so a failed mutation leaves the stored session intact.
	working, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	if err := fn(working); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	s.sessions[userID] = working
	return nil
}

func (s *MemoryStore) userLock(userID string) (*sync.Mutex, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrStoreClosed
	}
	lock, exists := s.locks[userID]
	if !exists {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	return lock, nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.sessions = make(map[string]*models.UserSession)
	return nil
}
