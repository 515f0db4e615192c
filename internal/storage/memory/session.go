package memory

import (
	"context"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/wearwow/storefront/internal/domain/session"
)

// ErrSessionNotFound is returned when a session ID is unknown or expired.
var ErrSessionNotFound = errors.New("session not found")

// SessionManager owns every live session.Store and serializes access to
// each one. The stores themselves are lock-free single-owner objects; all
// cross-goroutine coordination lives here, at the storage boundary.
type SessionManager struct {
	ttl time.Duration
	max int
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]*managedSession
}

type managedSession struct {
	mu       sync.Mutex
	store    *session.Store
	lastSeen time.Time
}

// NewSessionManager creates a manager evicting sessions idle longer than
// ttl and capping the live session count at max.
func NewSessionManager(ttl time.Duration, max int) *SessionManager {
	return &SessionManager{
		ttl:      ttl,
		max:      max,
		now:      time.Now,
		sessions: make(map[string]*managedSession),
	}
}

// Create allocates a fresh empty session and returns its ID. When the
// session cap is reached, the least recently used session is evicted first.
func (m *SessionManager) Create() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.max > 0 && len(m.sessions) >= m.max {
		m.evictOldestLocked()
	}

	id := uuid.New().String()
	m.sessions[id] = &managedSession{
		store:    session.New(),
		lastSeen: m.now(),
	}
	return id
}

// Exists reports whether the session ID is known and not expired.
func (m *SessionManager) Exists(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	ms, ok := m.sessions[id]
	return ok && m.now().Sub(ms.lastSeen) < m.ttl
}

// Do runs fn with exclusive access to the session's store, bumping its
// idle timer. It returns ErrSessionNotFound for unknown or expired IDs.
func (m *SessionManager) Do(id string, fn func(*session.Store)) error {
	m.mu.Lock()
	ms, ok := m.sessions[id]
	if ok && m.now().Sub(ms.lastSeen) >= m.ttl {
		delete(m.sessions, id)
		ok = false
	}
	if !ok {
		m.mu.Unlock()
		return ErrSessionNotFound
	}
	ms.lastSeen = m.now()
	m.mu.Unlock()

	ms.mu.Lock()
	defer ms.mu.Unlock()
	fn(ms.store)
	return nil
}

// Len returns the number of live sessions.
func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// evictOldestLocked drops the least recently used session. Caller holds m.mu.
func (m *SessionManager) evictOldestLocked() {
	var (
		oldestID string
		oldestAt time.Time
	)
	for id, ms := range m.sessions {
		if oldestID == "" || ms.lastSeen.Before(oldestAt) {
			oldestID = id
			oldestAt = ms.lastSeen
		}
	}
	if oldestID != "" {
		m.sessions[oldestID].store.Reset()
		delete(m.sessions, oldestID)
	}
}

// cleanup drops every session idle longer than the TTL.
func (m *SessionManager) cleanup(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, ms := range m.sessions {
		if now.Sub(ms.lastSeen) >= m.ttl {
			ms.store.Reset()
			delete(m.sessions, id)
		}
	}
}

// StartCleanup launches a background goroutine that evicts expired sessions
// periodically. It stops when ctx is cancelled.
func (m *SessionManager) StartCleanup(ctx context.Context) {
	interval := m.ttl
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				m.cleanup(now)
			}
		}
	}()
}
