package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrConflict              = errors.New("transaction conflict")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
