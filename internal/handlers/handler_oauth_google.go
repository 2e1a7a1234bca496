package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/duebook/internal/apperrors"
	"github.com/SscSPs/duebook/internal/core/domain"
	portssvc "github.com/SscSPs/duebook/internal/core/ports/services"
	"github.com/SscSPs/duebook/internal/core/services"
	"github.com/SscSPs/duebook/internal/dto"
	"github.com/SscSPs/duebook/internal/middleware"
	"github.com/gin-gonic/gin"
)

// GoogleOAuthHandler handles Google sign-in.
type GoogleOAuthHandler struct {
	AuthHandler
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade
}

// NewGoogleOAuthHandler creates a new instance of GoogleOAuthHandler.
func NewGoogleOAuthHandler(
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade,
	userService portssvc.UserSvcFacade,
	tokenService portssvc.TokenSvcFacade,
	showDetails bool,
) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		AuthHandler:        *NewAuthHandler(userService, tokenService, showDetails),
		googleOAuthService: googleOAuthService,
	}
}

// ExchangeCodeGoogle exchanges the authorization code the frontend received from
// Google, validates the ID token, finds or creates the user and returns an application JWT.
// @Summary Exchange a Google authorization code for an access token
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   code body dto.ExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse "Invalid authorization code"
// @Failure 401 {object} ErrorResponse "Invalid Google ID token"
// @Failure 502 {object} ErrorResponse "Google could not be reached"
// @Failure 503 {object} ErrorResponse "Google sign-in is not configured"
// @Router /auth/google/exchange-code [post]
func (h *GoogleOAuthHandler) ExchangeCodeGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.ExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, err)
		return
	}
	if strings.TrimSpace(req.Code) == "" {
		respondWithError(c, apperrors.NewFieldError("code", "is required"), h.showDetails)
		return
	}

	oauth2Token, err := h.googleOAuthService.ExchangeCodeForToken(ctx, req.Code)
	if err != nil {
		if errors.Is(err, services.ErrGoogleNotConfigured) {
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Google sign-in is not configured"})
			return
		}
		lower := strings.ToLower(err.Error())
		if strings.Contains(lower, "invalid_grant") || strings.Contains(lower, "bad request") {
			respondWithError(c, apperrors.NewBadRequestError("Invalid or expired authorization code"), h.showDetails)
			return
		}
		respondWithError(c, apperrors.NewBadGatewayError("Failed to communicate with Google", err), h.showDetails)
		return
	}

	// Extract ID token from Google's response
	idTokenString, ok := oauth2Token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		respondWithError(c, apperrors.NewBadGatewayError("Google response did not include an ID token", nil), h.showDetails)
		return
	}

	payload, err := h.googleOAuthService.ValidateGoogleIDToken(ctx, idTokenString)
	if err != nil {
		logger.Warn("Google ID token validation failed", slog.String("error", err.Error()))
		respondWithError(c, apperrors.NewUnauthorizedError("Invalid Google ID token"), h.showDetails)
		return
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	if email == "" || payload.Subject == "" {
		respondWithError(c, apperrors.NewBadGatewayError("Essential user information missing from Google token", nil), h.showDetails)
		return
	}

	user, err := h.userService.FindOrCreateOAuthUser(ctx, name, email, string(domain.ProviderGoogle), payload.Subject)
	if err != nil {
		respondWithError(c, err, h.showDetails)
		return
	}

	logger.Info("User signed in with Google", slog.String("user_id", user.ID))
	h.issueToken(c, http.StatusOK, "Login successful", user)
}
