package services

import "errors"

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrEntryNotFound      = errors.New("entry not found")
	ErrInvalidDate        = errors.New("date must be formatted as YYYY-MM-DD")
)
