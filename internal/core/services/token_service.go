package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/duebook/internal/apperrors"
	"github.com/SscSPs/duebook/internal/core/domain"
	portssvc "github.com/SscSPs/duebook/internal/core/ports/services"
	"github.com/SscSPs/duebook/internal/platform/config"
	"github.com/SscSPs/duebook/internal/utils"
)

// tokenService issues and verifies HS256 access tokens.
// Verification is stateless: the identity is read from the claims alone.
type tokenService struct {
	BaseService
	secret string
	issuer string
	expiry time.Duration
	now    func() time.Time
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{
		secret: cfg.JWTSecret,
		issuer: cfg.JWTIssuer,
		expiry: cfg.JWTExpiryDuration,
		now:    time.Now,
	}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

// GenerateAccessToken creates a new JWT access token for the given user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	now := s.now()
	token, err := utils.GenerateJWT(user.ID, user.Username, user.Email, s.secret, s.expiry, s.issuer, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token", slog.String("user_id", user.ID))
		return "", time.Time{}, apperrors.NewInternalServerError("failed to issue token")
	}
	return token, now.Add(s.expiry), nil
}

// VerifyAccessToken resolves a token to its identity. Every failure is reported as the same 401.
func (s *tokenService) VerifyAccessToken(ctx context.Context, token string) (*domain.Identity, error) {
	claims, err := utils.ParseAndValidateJWT(token, s.secret, s.issuer)
	if err != nil {
		s.LogDebug(ctx, "Access token rejected", slog.String("error", err.Error()))
		return nil, apperrors.NewUnauthorizedError("Invalid or expired token")
	}
	return &domain.Identity{
		OwnerID: claims.Subject,
		Handle:  claims.Username,
		Email:   claims.Email,
	}, nil
}
