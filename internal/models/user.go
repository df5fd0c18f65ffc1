package models

import "time"

// User roles
const (
	RoleElder     = "elder"
	RoleCaretaker = "caretaker"
)

// User represents an account in the system. Elders are anonymous (no email
// or password); caretakers sign up with email/password or Google.
type User struct {
	ID            string
	Role          string // 'elder' or 'caretaker'
	DisplayName   string
	Email         string
	PasswordHash  string
	OAuthProvider string
	OAuthSubject  string
	LinkedTo      []string // elder ids this caretaker is linked to
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsElder reports whether the user has the elder role
func (u *User) IsElder() bool {
	return u.Role == RoleElder
}

// IsCaretaker reports whether the user has the caretaker role
func (u *User) IsCaretaker() bool {
	return u.Role == RoleCaretaker
}

// RefreshToken represents a long-lived credential used to mint access tokens
type RefreshToken struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	Revoked   bool
	CreatedAt time.Time
}

// IsExpired checks if the refresh token has expired
func (t *RefreshToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}
