package errors

import (
	"errors"
)

var (
	ErrEmailAlreadyInUse  = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrNoToken            = errors.New("not authorized: no token")
	ErrInvalidToken       = errors.New("not authorized: invalid token")
)
