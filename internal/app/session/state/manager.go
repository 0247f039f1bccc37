package state

import (
	"sync"

	"github.com/osa030/radiola/internal/app/filter"
)

// Manager manages session state with thread-safe access.
type Manager struct {
	mu sync.RWMutex

	// Session identity
	sessionID string

	// Session lifecycle
	phase   Phase
	loadErr error

	// Addressing
	criteria filter.Criteria
	link     string
}

// New creates a new state manager.
func New(sessionID string) *Manager {
	return &Manager{
		sessionID: sessionID,
		phase:     PhaseLoading,
	}
}

// GetSessionID returns the session ID.
func (m *Manager) GetSessionID() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessionID
}

// GetPhase returns the current session phase.
func (m *Manager) GetPhase() Phase {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.phase
}

// SetPhase sets the session phase.
func (m *Manager) SetPhase(p Phase) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.phase = p
}

// Fail moves the session to PhaseFailed with the load error.
func (m *Manager) Fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.phase = PhaseFailed
	m.loadErr = err
}

// LoadError returns the catalog load error, if any.
func (m *Manager) LoadError() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loadErr
}

// IsReady returns true if transport commands are accepted.
func (m *Manager) IsReady() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.phase == PhaseReady
}

// GetCriteria returns the view criteria.
func (m *Manager) GetCriteria() filter.Criteria {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.criteria
}

// SetCriteria sets the view criteria.
func (m *Manager) SetCriteria(c filter.Criteria) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.criteria = c
}

// GetLink returns the current deep link.
func (m *Manager) GetLink() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.link
}

// SetLink replaces the current deep link.
func (m *Manager) SetLink(link string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.link = link
}
