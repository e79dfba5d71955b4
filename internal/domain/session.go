package domain

import "time"

// Session is the client-held record of the authenticated identity and its
// credential. Invariant: Token and User are either both set or both empty,
// except inside the login/register transition.
type Session struct {
	User        *User
	Token       string
	TokenExpiry *time.Time
}

// Populated reports whether the session carries an identity
func (s *Session) Populated() bool {
	return s != nil && s.Token != "" && s.User != nil
}

// Clear resets the session to the logged-out state
func (s *Session) Clear() {
	s.User = nil
	s.Token = ""
	s.TokenExpiry = nil
}
