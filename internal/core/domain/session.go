package domain

import (
	"bytes"
	"encoding/json"
)

// Session is the portal's view of who is logged in.
// User is only set when Token is set and was accepted by the identity endpoint.
type Session struct {
	User  json.RawMessage `json:"user,omitempty"`
	Token string          `json:"-"`
}

// Authenticated reports whether the session carries a validated user.
func (s Session) Authenticated() bool {
	return len(s.User) > 0
}

// IsEmptyRecord reports whether a user record body carries no user at all.
func IsEmptyRecord(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
