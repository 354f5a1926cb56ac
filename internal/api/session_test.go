package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRestoreSession(t *testing.T) {
	s := RestoreSession("at", "rt", "cid", time.Now().Add(time.Hour))
	assert.Equal(t, StateActive, s.State())

	s = RestoreSession("at", "rt", "cid", time.Now().Add(-time.Hour))
	assert.Equal(t, StateExpired, s.State())

	// A zero expiry means the caller never stored one; assume live.
	s = RestoreSession("at", "rt", "cid", time.Time{})
	assert.Equal(t, StateActive, s.State())
	assert.False(t, s.ExpiredAt(time.Now()))
}

func TestMarkExpiredOnlyFlipsActive(t *testing.T) {
	s := &Session{state: StateActive}
	s.markExpired()
	assert.Equal(t, StateExpired, s.State())

	s = &Session{state: StateInvalid}
	s.markExpired()
	assert.Equal(t, StateInvalid, s.State())
}

func TestSessionStateString(t *testing.T) {
	assert.Equal(t, "unauthenticated", StateUnauthenticated.String())
	assert.Equal(t, "authenticating", StateAuthenticating.String())
	assert.Equal(t, "active", StateActive.String())
	assert.Equal(t, "expired", StateExpired.String())
	assert.Equal(t, "invalid", StateInvalid.String())
	assert.Equal(t, "unknown", SessionState(99).String())
}
