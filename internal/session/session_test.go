package session

import (
	"path/filepath"
	"testing"

	"atsbuddy/internal/errors"
	"atsbuddy/internal/token"
)

// fakeNotifier captures the expiry subscription so tests can fire it like the
// HTTP client would after a 401.
type fakeNotifier struct {
	handlers []func()
}

func (n *fakeNotifier) OnUnauthorized(fn func()) {
	n.handlers = append(n.handlers, fn)
}

func (n *fakeNotifier) fire() {
	for _, fn := range n.handlers {
		fn()
	}
}

func newTestManager(t *testing.T) (*Manager, *token.Store, *fakeNotifier) {
	t.Helper()
	store := token.NewStore(filepath.Join(t.TempDir(), "credentials.json"))
	logger, err := errors.New("error")
	if err != nil {
		t.Fatalf("Failed to build logger: %v", err)
	}
	notifier := &fakeNotifier{}
	return NewManager(store, notifier, logger), store, notifier
}

func TestManagerStartsHydrating(t *testing.T) {
	m, _, _ := newTestManager(t)

	if m.State() != StateHydrating {
		t.Errorf("Expected initial state hydrating, got %s", m.State())
	}
	if !m.IsLoading() {
		t.Errorf("Expected IsLoading before hydration")
	}
	if m.IsAuthenticated() {
		t.Errorf("IsAuthenticated must not be trusted before hydration")
	}
}

func TestHydrateResolvesFromStore(t *testing.T) {
	t.Run("empty store resolves unauthenticated", func(t *testing.T) {
		m, _, _ := newTestManager(t)
		if got := m.Hydrate(); got != StateUnauthenticated {
			t.Errorf("Expected unauthenticated, got %s", got)
		}
	})

	t.Run("stored token resolves authenticated", func(t *testing.T) {
		m, store, _ := newTestManager(t)
		if err := store.Set("tok123"); err != nil {
			t.Fatalf("Failed to seed token: %v", err)
		}
		if got := m.Hydrate(); got != StateAuthenticated {
			t.Errorf("Expected authenticated, got %s", got)
		}
	})
}

func TestHydrateIsOneShot(t *testing.T) {
	m, store, _ := newTestManager(t)

	if got := m.Hydrate(); got != StateUnauthenticated {
		t.Fatalf("Expected unauthenticated, got %s", got)
	}

	// A token appearing later must not change an already-resolved state; only
	// Login does that.
	if err := store.Set("tok123"); err != nil {
		t.Fatalf("Failed to seed token: %v", err)
	}
	if got := m.Hydrate(); got != StateUnauthenticated {
		t.Errorf("Expected repeated Hydrate to be a no-op, got %s", got)
	}
}

func TestLoginWritesStoreBeforeNotifying(t *testing.T) {
	m, store, _ := newTestManager(t)
	m.Hydrate()

	// When the listener observes the transition, the token must already be
	// readable from the store.
	var tokenAtNotify string
	m.Subscribe(func(s State) {
		if s == StateAuthenticated {
			tokenAtNotify = store.Get()
		}
	})

	if err := m.Login("tok123"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if tokenAtNotify != "tok123" {
		t.Errorf("Expected token visible at notify time, got '%s'", tokenAtNotify)
	}
	if !m.IsAuthenticated() {
		t.Errorf("Expected authenticated state after login")
	}
}

func TestLogoutClearsStore(t *testing.T) {
	m, store, _ := newTestManager(t)
	m.Hydrate()
	if err := m.Login("tok123"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if err := m.Logout(); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if m.State() != StateUnauthenticated {
		t.Errorf("Expected unauthenticated after logout, got %s", m.State())
	}
	if store.Get() != "" {
		t.Errorf("Expected store cleared after logout")
	}
}

func TestUnauthorizedSignalResolvesUnauthenticated(t *testing.T) {
	m, _, notifier := newTestManager(t)
	m.Hydrate()
	if err := m.Login("tok123"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	var transitions []State
	m.Subscribe(func(s State) { transitions = append(transitions, s) })

	notifier.fire()

	if m.State() != StateUnauthenticated {
		t.Errorf("Expected unauthenticated after expiry signal, got %s", m.State())
	}
	if len(transitions) != 1 || transitions[0] != StateUnauthenticated {
		t.Errorf("Expected one unauthenticated transition, got %v", transitions)
	}

	// A second expiry signal while already unauthenticated changes nothing
	// and notifies nobody.
	notifier.fire()
	if len(transitions) != 1 {
		t.Errorf("Expected no extra notification on no-op transition, got %v", transitions)
	}
}

func TestListenersFireOnlyOnChange(t *testing.T) {
	m, _, _ := newTestManager(t)
	m.Hydrate()

	calls := 0
	m.Subscribe(func(State) { calls++ })

	if err := m.Login("tok123"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if calls != 1 {
		t.Fatalf("Expected one notification after login, got %d", calls)
	}

	// Logging in while already authenticated rebinds the token but the state
	// does not change, so listeners stay quiet.
	if err := m.Login("tok456"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected no notification on same-state login, got %d", calls)
	}

	if err := m.Logout(); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if calls != 2 {
		t.Errorf("Expected a notification after logout, got %d", calls)
	}
}

func TestNeverReturnsToHydrating(t *testing.T) {
	m, _, notifier := newTestManager(t)
	m.Hydrate()
	_ = m.Login("tok123")
	_ = m.Logout()
	notifier.fire()

	if m.State() == StateHydrating {
		t.Errorf("State must never return to hydrating after resolution")
	}
	if m.IsLoading() {
		t.Errorf("IsLoading must stay false after hydration")
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateHydrating, "hydrating"},
		{StateAuthenticated, "authenticated"},
		{StateUnauthenticated, "unauthenticated"},
		{State(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("Expected '%s', got '%s'", tt.want, got)
		}
	}
}
