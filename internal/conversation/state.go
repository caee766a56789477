// Package conversation tracks the per-user conversation state that decides
// how incoming text is interpreted: as a search query or as a pending
// settings value.
package conversation

import "sync"

// State is the position of a user in the conversation flow. Users start in
// StateDefault and only admin edit flows move them elsewhere.
type State int

const (
	StateDefault State = iota
	StateEditBrandName
	StateEditBrandURL
	StateEditGeocoderURL
	StateEditCadastreURL
)

// String returns a short name for logging.
func (s State) String() string {
	switch s {
	case StateDefault:
		return "default"
	case StateEditBrandName:
		return "edit_brand_name"
	case StateEditBrandURL:
		return "edit_brand_url"
	case StateEditGeocoderURL:
		return "edit_geocoder_url"
	case StateEditCadastreURL:
		return "edit_cadastre_url"
	default:
		return "unknown"
	}
}

// Editing reports whether the state expects the next message to be a
// settings value.
func (s State) Editing() bool {
	return s != StateDefault
}

type entry struct {
	mu    sync.Mutex
	state State
}

// Manager maps user ids to conversation states. Entries are created on first
// contact with StateDefault and live for the process lifetime. Access to a
// given user's entry is serialized by a per-entry lock, so two concurrent
// messages from the same user cannot interleave a transition.
type Manager struct {
	mu      sync.RWMutex
	entries map[int64]*entry
}

// NewManager creates an empty state manager.
func NewManager() *Manager {
	return &Manager{entries: make(map[int64]*entry)}
}

func (m *Manager) entryFor(userID int64) *entry {
	m.mu.RLock()
	e, ok := m.entries[userID]
	m.mu.RUnlock()
	if ok {
		return e
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok = m.entries[userID]; ok {
		return e
	}
	e = &entry{state: StateDefault}
	m.entries[userID] = e
	return e
}

// Get returns the user's state, creating a StateDefault entry on first
// contact.
func (m *Manager) Get(userID int64) State {
	e := m.entryFor(userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Set stores the user's state.
func (m *Manager) Set(userID int64, s State) {
	e := m.entryFor(userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = s
}

// Swap stores s and returns the previous state in one step. Handlers use it
// to consume a pending edit state exactly once.
func (m *Manager) Swap(userID int64, s State) State {
	e := m.entryFor(userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	prev := e.state
	e.state = s
	return prev
}
