package session

import "atsbuddy/internal/errors"

// The guards are pure functions of session state. They resolve hydration
// first so no decision is ever made on an untrusted state, then gate
// symmetrically: protected commands refuse an unauthenticated session and
// public-only commands refuse an authenticated one.

// RequireAuthenticated gates commands that need a bound session.
func RequireAuthenticated(m *Manager) error {
	if m.Hydrate() != StateAuthenticated {
		return errors.NewSessionStateError(errors.ErrCodeNotLoggedIn,
			"not logged in, run 'atsbuddy login' first")
	}
	return nil
}

// RequirePublic gates commands that only make sense while logged out.
func RequirePublic(m *Manager) error {
	if m.Hydrate() == StateAuthenticated {
		return errors.NewSessionStateError(errors.ErrCodeAlreadyLoggedIn,
			"already logged in, run 'atsbuddy logout' first")
	}
	return nil
}
