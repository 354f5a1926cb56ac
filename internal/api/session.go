package api

import "time"

// SessionState tracks where a session is in its lifecycle.
type SessionState int

const (
	StateUnauthenticated SessionState = iota
	StateAuthenticating
	StateActive
	StateExpired
	// StateInvalid is terminal: the refresh token itself was rejected and
	// only a fresh login can recover.
	StateInvalid
)

func (s SessionState) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticating:
		return "authenticating"
	case StateActive:
		return "active"
	case StateExpired:
		return "expired"
	case StateInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Session holds the live credential state of one authenticated client:
// the access/refresh token pair, the service-assigned client id, and the
// access token expiry. It is the only mutable state in the core, is owned
// by the caller, and is never persisted here; callers read the exported
// fields to store them wherever they choose.
type Session struct {
	AccessToken  string
	RefreshToken string
	ClientID     string
	ExpiresAt    time.Time

	state SessionState
}

// RestoreSession adopts a previously stored credential set without any
// network I/O. The session comes back Active, or Expired when the caller
// supplied an expiry in the past; the caller decides whether to refresh
// immediately.
func RestoreSession(accessToken, refreshToken, clientID string, expiresAt time.Time) *Session {
	s := &Session{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ClientID:     clientID,
		ExpiresAt:    expiresAt,
		state:        StateActive,
	}
	if s.ExpiredAt(time.Now()) {
		s.state = StateExpired
	}
	return s
}

func (s *Session) State() SessionState { return s.state }

// ExpiredAt reports whether the access token expiry has passed. A zero
// expiry means the caller never stored one and the token is assumed live.
func (s *Session) ExpiredAt(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && s.ExpiresAt.Before(now)
}

// markExpired flips an active session to Expired. Invoked when the service
// reports the device/token-not-found condition mid-call.
func (s *Session) markExpired() {
	if s.state == StateActive {
		s.state = StateExpired
	}
}
