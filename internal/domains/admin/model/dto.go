package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// LoginRequest - POST /admin/login
type LoginRequest struct {
	Password string `json:"password"`
}

// Validate validates the login request. bcrypt ignores input past 72 bytes.
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Password,
			validation.Required.Error("Password is required"),
			validation.Length(1, 72).Error("Password is too long"),
		),
	)
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}
