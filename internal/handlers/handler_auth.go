package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/duebook/internal/core/domain"
	portssvc "github.com/SscSPs/duebook/internal/core/ports/services"
	"github.com/SscSPs/duebook/internal/dto"
	"github.com/SscSPs/duebook/internal/middleware"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
	showDetails  bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade, showDetails bool) *AuthHandler {
	return &AuthHandler{
		userService:  us,
		tokenService: ts,
		showDetails:  showDetails,
	}
}

// registerAuthRoutes sets up the public authentication routes.
// Every credential endpoint shares one per-IP limiter.
func registerAuthRoutes(r *gin.Engine, services *portssvc.ServiceContainer, limit gin.HandlerFunc, showDetails bool) {
	h := NewAuthHandler(services.User, services.TokenService, showDetails)
	gh := NewGoogleOAuthHandler(services.GoogleOAuthHandler, services.User, services.TokenService, showDetails)

	auth := r.Group("/api/v1/auth", limit)
	{
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)
		auth.POST("/google/exchange-code", gh.ExchangeCodeGoogle)
	}
}

// registerIdentityRoutes sets up the authenticated identity routes.
func registerIdentityRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/me", Me)
}

// issueToken signs a token for user and writes the auth response.
func (h *AuthHandler) issueToken(c *gin.Context, status int, message string, user *domain.User) {
	token, expiresAt, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		respondWithError(c, err, h.showDetails)
		return
	}
	c.JSON(status, dto.AuthResponse{
		Message:   message,
		Token:     token,
		ExpiresAt: expiresAt,
		User:      dto.ToUserResponse(user),
	})
}

// Login godoc
// @Summary User login
// @Description Authenticates a user by email and password and returns a JWT token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, err)
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err, h.showDetails)
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("User logged in", slog.String("user_id", user.ID))
	h.issueToken(c, http.StatusOK, "Login successful", user)
}

// Register godoc
// @Summary Register new user
// @Description Creates a new local user and returns a JWT token.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "User Registration Info"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Conflict (username or email exists)"
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, err)
		return
	}

	user, err := h.userService.RegisterUser(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err, h.showDetails)
		return
	}
	h.issueToken(c, http.StatusCreated, "User created successfully", user)
}

// Me godoc
// @Summary Current identity
// @Description Returns the identity behind the presented token.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.MeResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/me [get]
func Me(c *gin.Context) {
	identity, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, dto.MeResponse{
		ID:       identity.OwnerID,
		Username: identity.Handle,
		Email:    identity.Email,
	})
}
