package models

import "errors"

// Common errors used throughout the application
var (
	ErrEventNotFound      = errors.New("event not found")
	ErrGiftNotFound       = errors.New("gift not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrOwnerNotConfigured = errors.New("owner is not configured to receive payments")
	ErrDuplicateSlug      = errors.New("slug is already in use")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrRSVPDisabled       = errors.New("rsvp is not enabled for this event")
	ErrUnauthorized       = errors.New("unauthorized access")
	ErrInvalidInput       = errors.New("invalid input")
)
