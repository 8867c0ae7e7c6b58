package service

import "errors"

// Sentinel errors for service layer
var (
	ErrValidation    = errors.New("validation error")
	ErrNotFound      = errors.New("not found")
	ErrNotActive     = errors.New("alert is not active")
	ErrNotConfigured = errors.New("transport not configured")
	ErrSetupComplete = errors.New("setup already completed")
)
