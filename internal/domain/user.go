package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// AuthProvider represents how a user account was created.
type AuthProvider string

const (
	AuthProviderPassword AuthProvider = "password"
	AuthProviderGoogle   AuthProvider = "google"
	AuthProviderGitHub   AuthProvider = "github"
)

// ErrEmailRegistered is returned when an OAuth sign-in carries the email of an account that was
// created with a different provider.
var ErrEmailRegistered = NewError(ErrConflict, "An account with this email already exists. Sign in with the method used to create it.")

// User represents a registered identity.
type User struct {
	ID               uuid.UUID    `json:"id" db:"id"`
	Email            string       `json:"email" db:"email"`
	FullName         string       `json:"fullName" db:"full_name"`
	PasswordHash     string       `json:"-" db:"password_hash"`
	Provider         AuthProvider `json:"provider" db:"provider"`
	IsAdmin          bool         `json:"isAdmin" db:"is_admin"`
	SubscribedTopics []uuid.UUID  `json:"subscribedTopics" db:"-"`
	CreatedAt        time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time    `json:"updatedAt" db:"updated_at"`
}

// UserProfile is the public view of a user shown to other users, e.g. in a subscriber list.
type UserProfile struct {
	ID       uuid.UUID `json:"id" db:"id"`
	Email    string    `json:"email" db:"email"`
	FullName string    `json:"fullName" db:"full_name"`
}

// Profile returns the public view of u.
func (u User) Profile() UserProfile {
	return UserProfile{ID: u.ID, Email: u.Email, FullName: u.FullName}
}

// NormalizeEmail lower-cases and trims an email address before storage or lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
