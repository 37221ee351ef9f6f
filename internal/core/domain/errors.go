package domain

import "errors"

var (
	ErrCarNotFound      = errors.New("car not found")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrValidationFailed = errors.New("validation failed")
	ErrEmailTaken       = errors.New("email already registered")
)
