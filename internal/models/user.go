package models

import "time"

// User represents a player account
type User struct {
	ID            int64
	UID           string
	Email         string
	PasswordHash  string
	Name          string
	OAuthProvider string
	OAuthSubject  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Identity is the minimal view of a signed-in user handed to auth state
// listeners and to the progress paths. Nil identity means signed out.
type Identity struct {
	UID   string
	Email string
}

// Identity returns the user's identity view.
func (u *User) Identity() *Identity {
	return &Identity{UID: u.UID, Email: u.Email}
}

// Session represents an authenticated session
type Session struct {
	ID        string
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired checks if the session has expired
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// PasswordResetToken represents a token for password reset
type PasswordResetToken struct {
	Token     string
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
	Used      bool
}

// IsExpired checks if the reset token has expired
func (t *PasswordResetToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}
