// internal/domain/auth/session.go
package auth

// User is the identity returned by the remote auth endpoints.
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsSeller  bool   `json:"is_seller"`
}

// DisplayName prefers the first name, falling back to the username.
func (u User) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Username
}

// Credentials is the complete authentication triple. The three fields
// are only ever set or cleared together; a partial triple must never
// exist, in memory or persisted.
type Credentials struct {
	User    User
	Access  string
	Refresh string
}

// Session holds the current identity and token pair. Like the cart
// ledger it is pure state: persistence of the triple is the state
// container's job.
type Session struct {
	user    *User
	access  string
	refresh string
}

// NewSession creates an unauthenticated session.
func NewSession() *Session {
	return &Session{}
}

// SetCredentials atomically replaces the full triple.
func (s *Session) SetCredentials(c Credentials) {
	u := c.User
	s.user = &u
	s.access = c.Access
	s.refresh = c.Refresh
}

// Logout atomically clears the triple.
func (s *Session) Logout() {
	s.user = nil
	s.access = ""
	s.refresh = ""
}

// Authenticated reports whether a complete triple is held.
func (s *Session) Authenticated() bool {
	return s.user != nil && s.access != "" && s.refresh != ""
}

// User returns the current identity, nil when unauthenticated.
func (s *Session) User() *User {
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// AccessToken returns the bearer token for authenticated API calls,
// empty when unauthenticated.
func (s *Session) AccessToken() string { return s.access }

// RefreshToken returns the refresh token. It is stored for completeness;
// the client does not implement a refresh flow.
func (s *Session) RefreshToken() string { return s.refresh }
