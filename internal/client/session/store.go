// Package session holds the client-side cache of the authenticated user's
// public profile. At most one record exists at a time; it is persisted to a
// local store on login and removed on logout. The cookie's server-verified
// expiry remains the only source of truth for session validity.
package session

import "context"

// UserInfo is the public profile subset cached locally.
type UserInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Store interface {
	// SetCredentials replaces the cached profile and persists it.
	SetCredentials(ctx context.Context, info UserInfo) error

	// Current returns the cached profile, or nil when none is stored.
	Current(ctx context.Context) (*UserInfo, error)

	// ClearCredentials removes the cached profile from storage.
	ClearCredentials(ctx context.Context) error
}
