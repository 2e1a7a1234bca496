package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/duebook/internal/apperrors"
	"github.com/SscSPs/duebook/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Fields  map[string]string `json:"fields,omitempty"`
	Details string            `json:"details,omitempty"`
}

// respondWithError maps service errors onto status codes. Internal failures are
// logged and reported generically; details are only included outside production.
func respondWithError(c *gin.Context, err error, showDetails bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var appErr *apperrors.AppError
	isAppErr := errors.As(err, &appErr)

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		resp := ErrorResponse{Error: "Validation failed"}
		if isAppErr {
			resp.Error = appErr.Message
			resp.Fields = appErr.Fields
		}
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, resp)
	case errors.Is(err, apperrors.ErrNotFound):
		msg := "Not found"
		if isAppErr {
			msg = appErr.Message
		}
		c.JSON(http.StatusNotFound, ErrorResponse{Error: msg})
	case errors.Is(err, apperrors.ErrUnauthenticated):
		msg := "Unauthorized"
		if isAppErr {
			msg = appErr.Message
		}
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: msg})
	case errors.Is(err, apperrors.ErrDuplicate):
		msg := "Already exists"
		if isAppErr {
			msg = appErr.Message
		}
		c.JSON(http.StatusConflict, ErrorResponse{Error: msg})
	case isAppErr && appErr.Code > 0 && appErr.Code < http.StatusInternalServerError:
		c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
	default:
		status := http.StatusInternalServerError
		if isAppErr && appErr.Code > status {
			status = appErr.Code
		}
		logger.Error("Request failed", slog.String("error", err.Error()), slog.Int("status", status))
		resp := ErrorResponse{Error: "Internal server error"}
		if showDetails {
			resp.Details = err.Error()
		}
		c.JSON(status, resp)
	}
}

// respondBadBody reports a request body that could not be decoded at all.
func respondBadBody(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind JSON", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
}

// ownerFromContext returns the authenticated owner id or writes a 401.
func ownerFromContext(c *gin.Context) (string, bool) {
	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return "", false
	}
	return ownerID, true
}
