package domain

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrOffensiveContent   = errors.New("offensive content")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrMissingIdentity    = errors.New("token missing user identity")
)

// ErrCorruptRecord marks a stored blob that does not decode into its schema.
var ErrCorruptRecord = errors.New("corrupt stored record")
