package handler

import (
	"net/http"
	"time"

	"pos-service/internal/middleware"
	"pos-service/internal/model"
	"pos-service/pkg/logger"
	"pos-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SessionRequest picks one of the static users
type SessionRequest struct {
	UserID int `json:"user_id"`
}

// SessionResponse carries the session token and what the user may open
type SessionResponse struct {
	Token      string       `json:"token"`
	ExpiresAt  time.Time    `json:"expires_at"`
	User       model.User   `json:"user"`
	Navigation []model.View `json:"navigation"`
}

// ListUsers returns the accounts offered by the login picker
func (h *Handler) ListUsers(c echo.Context) error {
	logger.FromContext(c).Info("Listing users", zap.Int("count", len(model.Users)))
	return c.JSON(http.StatusOK, model.Users)
}

// OpenSession picks a user without a password and issues a session token
func (h *Handler) OpenSession(c echo.Context) error {
	log := logger.FromContext(c)

	var req SessionRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid session request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	user, ok := model.FindUser(req.UserID)
	if !ok {
		log.Warn("Unknown user picked", zap.Int("user_id", req.UserID))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}

	token, claims, err := h.jwt.GenerateToken(user)
	if err != nil {
		log.Error("Failed to generate session token", zap.Int("user_id", user.ID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to open session"})
	}
	prometheus.RecordSession(user.Role)

	log.Info("Session opened",
		zap.Int("user_id", user.ID),
		zap.String("role", string(user.Role)),
		zap.String("session_id", claims.SessionID()))
	return c.JSON(http.StatusCreated, SessionResponse{
		Token:      token,
		ExpiresAt:  claims.ExpiresAt.Time,
		User:       user,
		Navigation: model.NavigationFor(user.Role),
	})
}

// Navigation lists the views the session's role may open
func (h *Handler) Navigation(c echo.Context) error {
	claims, _ := middleware.ClaimsFromContext(c)
	return c.JSON(http.StatusOK, echo.Map{
		"user":       model.User{ID: claims.UserID, Name: claims.Name, Role: claims.Role},
		"navigation": model.NavigationFor(claims.Role),
	})
}

// CloseSession drops the session cart. The token itself simply expires.
func (h *Handler) CloseSession(c echo.Context) error {
	claims, _ := middleware.ClaimsFromContext(c)
	h.carts.Clear(claims.SessionID())
	logger.FromContext(c).Info("Session closed", zap.String("session_id", claims.SessionID()))
	return c.NoContent(http.StatusNoContent)
}
