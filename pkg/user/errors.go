package user

import "errors"

var (
	// ErrUserNotFound is returned when a user id does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken is returned when a registration or update collides with
	// an existing email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials covers bad logins, unverified accounts and
	// invalid codes. Callers must not be able to tell these apart.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidRequest is returned when a required field is missing or blank.
	ErrInvalidRequest = errors.New("invalid request")
)
