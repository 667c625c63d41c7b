package marketerrors

import "errors"

// Repository-level errors
var (
	ErrBookNotFound = errors.New("book not found")
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

// business logic errors
var (
	ErrValidation         = errors.New("invalid input")
	ErrForbidden          = errors.New("access denied")
	ErrUnauthorized       = errors.New("please authenticate")
	ErrInvalidState       = errors.New("operation not allowed in current status")
	ErrInsufficientStock  = errors.New("requested quantity not available")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
