package model

import "errors"

// Error codes
const (
	ErrCodeInvalidCredentials = "ADM001"
	ErrCodeUnauthorized       = "ADM002"
	ErrCodeAuthUnavailable    = "ADM003"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("admin session required")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrAuthUnavailable    = errors.New("session store unavailable")
)
