package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/duebook/internal/apperrors"
	"github.com/SscSPs/duebook/internal/core/domain"
	"github.com/SscSPs/duebook/internal/core/services"
	"github.com/SscSPs/duebook/internal/platform/config"
	"github.com/SscSPs/duebook/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:         "test-secret",
		JWTIssuer:         "duebook-test",
		JWTExpiryDuration: time.Hour,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	svc := services.NewTokenService(testConfig())
	ctx := context.Background()
	user := &domain.User{ID: "u1", Username: "alice", Email: "alice@example.com"}

	token, expiresAt, err := svc.GenerateAccessToken(ctx, user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	identity, err := svc.VerifyAccessToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, &domain.Identity{OwnerID: "u1", Handle: "alice", Email: "alice@example.com"}, identity)
}

func TestVerifyAccessToken_Rejections(t *testing.T) {
	cfg := testConfig()
	svc := services.NewTokenService(cfg)
	now := time.Now()

	expired, err := utils.GenerateJWT("u1", "alice", "a@example.com", cfg.JWTSecret, time.Minute, cfg.JWTIssuer, now.Add(-time.Hour))
	require.NoError(t, err)
	wrongSecret, err := utils.GenerateJWT("u1", "alice", "a@example.com", "other-secret", time.Hour, cfg.JWTIssuer, now)
	require.NoError(t, err)
	wrongIssuer, err := utils.GenerateJWT("u1", "alice", "a@example.com", cfg.JWTSecret, time.Hour, "someone-else", now)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"expired":      expired,
		"wrong secret": wrongSecret,
		"wrong issuer": wrongIssuer,
		"garbage":      "not.a.jwt",
		"empty":        "",
	} {
		t.Run(name, func(t *testing.T) {
			identity, err := svc.VerifyAccessToken(context.Background(), token)
			assert.Nil(t, identity)
			assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
		})
	}
}

func TestGoogleOAuthRequiresClientID(t *testing.T) {
	svc := services.NewGoogleOAuthHandlerService(&config.Config{})

	_, err := svc.ExchangeCodeForToken(context.Background(), "code")
	assert.ErrorIs(t, err, services.ErrGoogleNotConfigured)

	_, err = svc.ValidateGoogleIDToken(context.Background(), "token")
	assert.ErrorIs(t, err, services.ErrGoogleNotConfigured)
}

func TestNewServiceContainer(t *testing.T) {
	c := services.NewServiceContainer(testConfig(), portsRepos())
	assert.NotNil(t, c.Account)
	assert.NotNil(t, c.Dashboard)
	assert.NotNil(t, c.User)
	assert.NotNil(t, c.TokenService)
	assert.NotNil(t, c.GoogleOAuthHandler)
}
