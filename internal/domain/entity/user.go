package entity

import "time"

// Role represents a user's permission level.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleUser   Role = "user"
)

// Valid reports whether the role is a known value.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEditor || r == RoleUser
}

// User is a registered account. Inactive (locked) accounts cannot
// authenticate. Users are never hard-deleted.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	FullName     string
	Phone        string
	Role         Role
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PasswordResetToken is a one-time-use token with a one hour lifetime.
// Issuing a new token marks all prior unused tokens for the user as used.
type PasswordResetToken struct {
	ID        int64
	UserID    int64
	Token     string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}

// Usable reports whether the token can still redeem a password reset at
// the given instant.
func (t *PasswordResetToken) Usable(now time.Time) bool {
	return !t.Used && now.Before(t.ExpiresAt)
}

// Subscription is a newsletter sign-up. The unsubscribe token is unique
// and embedded in every mail sent to the address.
type Subscription struct {
	ID               int64
	Email            string
	Active           bool
	UnsubscribeToken string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Setting is a row of the generic key-value settings store.
// SMTP configuration lives under category "smtp".
type Setting struct {
	ID       int64
	Category string
	Key      string
	Value    string
}
