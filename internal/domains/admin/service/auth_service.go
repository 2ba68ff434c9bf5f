package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"megheza-backend/internal/domains/admin/model"
	"megheza-backend/internal/domains/admin/repository"
	"megheza-backend/pkg/jwt"
	"megheza-backend/pkg/logger"
)

// =====================================================
// ADMIN AUTH SERVICE
// =====================================================

type AuthService interface {
	// Login compares the password with the configured bcrypt hash and issues a session token.
	Login(ctx context.Context, req model.LoginRequest) (*model.TokenResponse, error)

	// Logout revokes the session until its natural expiry.
	Logout(ctx context.Context, claims *jwt.Claims) error

	// Authenticate validates a bearer token and rejects revoked sessions.
	Authenticate(ctx context.Context, token string) (*jwt.Claims, error)
}

type authService struct {
	passwordHash []byte
	tokens       *jwt.Manager
	revoked      repository.RevocationList
}

func NewAuthService(passwordHash []byte, tokens *jwt.Manager, revoked repository.RevocationList) AuthService {
	return &authService{
		passwordHash: passwordHash,
		tokens:       tokens,
		revoked:      revoked,
	}
}

// ResolvePasswordHash returns hash when set, otherwise a bcrypt hash of plain.
// The plain password only lives in process memory.
func ResolvePasswordHash(hash, plain string) ([]byte, error) {
	if hash != "" {
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return nil, fmt.Errorf("invalid ADMIN_PASSWORD_HASH: %w", err)
		}
		return []byte(hash), nil
	}
	if plain == "" {
		return nil, fmt.Errorf("admin password is not configured")
	}
	return bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
}

func (s *authService) Login(ctx context.Context, req model.LoginRequest) (*model.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(req.Password)); err != nil {
		logger.Warn("Admin login rejected", nil)
		return nil, model.ErrInvalidCredentials
	}

	token, claims, err := s.tokens.GenerateAdminToken()
	if err != nil {
		return nil, err
	}

	logger.Info("Admin session opened", map[string]interface{}{"jti": claims.ID})
	return &model.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   claims.ExpiresAt.Time,
	}, nil
}

func (s *authService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if claims == nil || claims.ExpiresAt == nil {
		return model.ErrUnauthorized
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.revoked.Revoke(ctx, claims.ID, ttl); err != nil {
		logger.Error("Logout: revoke failed", err)
		return fmt.Errorf("%w: %v", model.ErrAuthUnavailable, err)
	}
	logger.Info("Admin session closed", map[string]interface{}{"jti": claims.ID})
	return nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := s.tokens.ValidateAdminToken(token)
	if err != nil {
		return nil, model.ErrUnauthorized
	}

	revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		logger.Error("Authenticate: revocation check failed", err)
		return nil, fmt.Errorf("%w: %v", model.ErrAuthUnavailable, err)
	}
	if revoked {
		return nil, model.ErrTokenRevoked
	}
	return claims, nil
}
