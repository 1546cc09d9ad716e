package session

import (
	"sync"

	"atsbuddy/internal/errors"
	"atsbuddy/internal/token"
)

// State is the resolved authentication state of the process.
type State int

const (
	// StateHydrating means the token store has not been read yet. Dependent
	// code must not trust the authenticated flag while hydrating.
	StateHydrating State = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateHydrating:
		return "hydrating"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// UnauthorizedNotifier is the expiry signal surface the HTTP client owns.
type UnauthorizedNotifier interface {
	OnUnauthorized(func())
}

// Manager owns the session state machine. State is derived from the token
// store plus expiry events and changes only through Hydrate, Login, Logout,
// or the unauthorized signal. It never returns to hydrating after the
// initial read, and it lives for the process lifetime.
type Manager struct {
	store  *token.Store
	logger *errors.Logger

	mu        sync.Mutex
	state     State
	listeners []func(State)
}

// NewManager creates a manager in the hydrating state and subscribes it to
// the client's expiry signal. The notifier is injected here so no global
// event bus is involved.
func NewManager(store *token.Store, notifier UnauthorizedNotifier, logger *errors.Logger) *Manager {
	m := &Manager{
		store:  store,
		logger: logger,
		state:  StateHydrating,
	}
	if notifier != nil {
		notifier.OnUnauthorized(m.handleUnauthorized)
	}
	return m
}

// Hydrate performs the one-time initial read of the token store. Calling it
// again after the state has resolved is a no-op.
func (m *Manager) Hydrate() State {
	m.mu.Lock()
	if m.state != StateHydrating {
		st := m.state
		m.mu.Unlock()
		return st
	}
	m.mu.Unlock()

	// Read outside the lock; the store serializes its own access.
	next := StateUnauthenticated
	if m.store.Get() != "" {
		next = StateAuthenticated
	}
	m.transition(next, "hydrate")
	return next
}

// Login binds a new token. The store write happens before the state
// transition so anything reacting to the new state can immediately read a
// valid token.
func (m *Manager) Login(tok string) error {
	if err := m.store.Set(tok); err != nil {
		return err
	}
	m.transition(StateAuthenticated, "login")
	return nil
}

// Logout destroys the stored token and resolves to unauthenticated.
func (m *Manager) Logout() error {
	if err := m.store.Clear(); err != nil {
		return err
	}
	m.transition(StateUnauthenticated, "logout")
	return nil
}

// handleUnauthorized reacts to the client's expiry broadcast. The client has
// already cleared the store by the time this runs.
func (m *Manager) handleUnauthorized() {
	m.transition(StateUnauthenticated, "unauthorized signal")
}

// State returns the current state. Read-only projection; there is no way to
// set state from outside the defined commands.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// IsAuthenticated reports whether a session is bound. Not trustworthy while
// IsLoading is true.
func (m *Manager) IsAuthenticated() bool {
	return m.State() == StateAuthenticated
}

// IsLoading reports whether the initial hydration has happened yet.
func (m *Manager) IsLoading() bool {
	return m.State() == StateHydrating
}

// Subscribe registers a state-change listener. Listeners are invoked
// synchronously on transitions and only when the state actually changes.
func (m *Manager) Subscribe(fn func(State)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

func (m *Manager) transition(next State, cause string) {
	m.mu.Lock()
	prev := m.state
	if prev == next {
		m.mu.Unlock()
		return
	}
	m.state = next
	listeners := make([]func(State), len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()

	m.logger.Debug("Session state changed",
		"from", prev.String(),
		"to", next.String(),
		"cause", cause)

	for _, fn := range listeners {
		fn(next)
	}
}
