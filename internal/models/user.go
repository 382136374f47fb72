package models

import "time"

type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Verified     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session is the in-memory authority for a logged-in user. The auth cookie
// is written from it and never read back as a source of truth.
type Session struct {
	Token     string
	UserID    string
	Email     string
	ExpiresAt time.Time
}

func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
