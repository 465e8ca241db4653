package service

import "errors"

// Auth flow specific errors used by handlers for stable error_type mapping.
var (
	ErrInvalidCredentials      = errors.New("invalid_credentials")
	ErrInvalidVerificationCode = errors.New("invalid_verification_code")
	ErrVerificationExpired     = errors.New("verification_expired")
	ErrNoActiveVerification    = errors.New("no_active_verification")
	ErrEmailTaken              = errors.New("email_taken")
	ErrUsernameTaken           = errors.New("username_taken")
)
