package domain

import "time"

// Session is the server-side record addressed by the opaque token held in the
// client cookie. It denormalizes a snapshot of the user's identity and role at
// authentication time; a later role change does not touch open sessions until
// the user authenticates again.
//
// A session is either fully authenticated (Authenticated true, Username and
// Role populated, ExpiresAt in the future) or anonymous. There is no partial
// state.
type Session struct {
	Token         string    `json:"-"`
	Authenticated bool      `json:"authenticated"`
	Username      string    `json:"username"`
	Role          string    `json:"role"`
	CreatedAt     time.Time `json:"created_at"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// Expired reports whether the session's lifetime has elapsed at instant now.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// IsAdmin reports whether the session snapshot carries the admin role.
func (s *Session) IsAdmin() bool {
	return s.Authenticated && s.Role == RoleAdmin
}
