package storage

import (
	"context"
	"sync"
	"time"

	"github.com/rvc-001/planning-sub000/internal/domain/constants"
	"github.com/rvc-001/planning-sub000/internal/domain/entity"
	"github.com/rvc-001/planning-sub000/internal/domain/repository"
)

// memorySessionStore keeps sessions for the lifetime of the process. Used
// when no Postgres DSN is configured or the connection fails.
type memorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]entity.Session
}

// NewMemorySessionStore builds the in-process fallback store.
func NewMemorySessionStore() repository.SessionStore {
	return &memorySessionStore{sessions: make(map[string]entity.Session)}
}

func (m *memorySessionStore) Save(_ context.Context, session entity.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	m.sessions[session.Token] = session
	return nil
}

func (m *memorySessionStore) Get(_ context.Context, token string) (entity.Session, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[token]
	return session, ok, nil
}

func (m *memorySessionStore) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, token)
	return nil
}

func (m *memorySessionStore) DeleteExpired(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-constants.SessionTimeoutHours * time.Hour)
	removed := 0
	for token, session := range m.sessions {
		if session.CreatedAt.Before(cutoff) {
			delete(m.sessions, token)
			removed++
		}
	}
	return removed, nil
}
