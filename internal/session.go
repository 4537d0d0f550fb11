package internal

import (
	"sync"

	"github.com/google/uuid"
)

// SessionKey is the tab storage key holding the session identifier
const SessionKey = "chatSessionId"

// SessionManager owns the session identifier of one tab scope. The first
// resolved identifier is kept for the lifetime of the manager.
type SessionManager struct {
	storage TabStorage
	newID   func() string

	once sync.Once
	id   string
}

// NewSessionManager creates a manager over the given tab storage
func NewSessionManager(storage TabStorage) *SessionManager {
	return &SessionManager{
		storage: storage,
		newID:   uuid.NewString,
	}
}

// GetOrCreateSessionID returns the stored identifier, generating and storing
// one first if the tab has none. Storage failures are logged; the
// identifier is still stable for this process.
func (m *SessionManager) GetOrCreateSessionID() string {
	m.once.Do(func() {
		if id, ok, err := m.storage.Get(SessionKey); err != nil {
			LogWarn("Failed to read session id: %v", err)
		} else if ok && id != "" {
			LogDebug("Reusing session %s", id)
			m.id = id
			return
		}

		m.id = m.newID()
		if err := m.storage.Set(SessionKey, m.id); err != nil {
			LogWarn("Failed to store session id: %v", err)
		}
		LogDebug("Created session %s", m.id)
	})
	return m.id
}

// Clear removes the stored identifier so the next fresh process starts a new
// session. The identifier already handed out by this manager is unchanged.
func (m *SessionManager) Clear() error {
	return m.storage.Delete(SessionKey)
}
