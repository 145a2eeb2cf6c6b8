package domain

import "time"

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Sanitized returns a copy safe to attach to a request context: identical to
// the receiver with the password hash blanked.
func (u User) Sanitized() *User {
	u.PasswordHash = ""
	return &u
}
