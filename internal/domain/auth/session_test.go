// internal/domain/auth/session_test.go
package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession(t *testing.T) {
	creds := Credentials{
		User:    User{ID: 1, Email: "demo@example.com", Username: "demo", FirstName: "Demo"},
		Access:  "access-token",
		Refresh: "refresh-token",
	}

	t.Run("starts unauthenticated", func(t *testing.T) {
		s := NewSession()
		assert.False(t, s.Authenticated())
		assert.Nil(t, s.User())
		assert.Empty(t, s.AccessToken())
	})

	t.Run("holds the full triple after sign-in", func(t *testing.T) {
		s := NewSession()
		s.SetCredentials(creds)

		assert.True(t, s.Authenticated())
		assert.Equal(t, "access-token", s.AccessToken())
		assert.Equal(t, "refresh-token", s.RefreshToken())
		require.NotNil(t, s.User())
		assert.Equal(t, "demo@example.com", s.User().Email)
	})

	t.Run("logout clears everything", func(t *testing.T) {
		s := NewSession()
		s.SetCredentials(creds)
		s.Logout()

		assert.False(t, s.Authenticated())
		assert.Nil(t, s.User())
		assert.Empty(t, s.AccessToken())
		assert.Empty(t, s.RefreshToken())
	})

	t.Run("returned user is a copy", func(t *testing.T) {
		s := NewSession()
		s.SetCredentials(creds)

		u := s.User()
		u.Email = "tampered@example.com"
		assert.Equal(t, "demo@example.com", s.User().Email)
	})
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Demo", User{FirstName: "Demo", Username: "demo"}.DisplayName())
	assert.Equal(t, "demo", User{Username: "demo"}.DisplayName())
}
