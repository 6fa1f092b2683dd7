package middleware

import (
	"net/http"
	"strings"

	"pos-service/internal/model"
	"pos-service/pkg/jwtutil"
	"pos-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const claimsKey = "session"

// SessionAuthMiddleware validates the session token and stores its claims in
// the echo context
func SessionAuthMiddleware(jwtUtil *jwtutil.JWTUtil) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				log.Warn("Missing Authorization header")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				log.Warn("Invalid Authorization header format")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization format, expected Bearer token"})
			}

			claims, err := jwtUtil.ValidateToken(parts[1])
			if err != nil {
				log.Warn("Invalid or expired token", zap.Error(err))
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
			}
			if _, ok := model.FindUser(claims.UserID); !ok {
				log.Warn("Token references unknown user", zap.Int("user_id", claims.UserID))
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unknown user"})
			}

			c.Set(claimsKey, claims)
			ctxLogger := log.With(
				zap.Int("user_id", claims.UserID),
				zap.String("role", string(claims.Role)))
			c.Set(logger.EchoKey, ctxLogger)

			return next(c)
		}
	}
}

// RequireView rejects sessions whose role cannot open view
func RequireView(view model.View) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFromContext(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing session"})
			}
			if !model.CanAccess(claims.Role, view) {
				logger.FromContext(c).Warn("Access denied",
					zap.String("view", string(view)),
					zap.String("role", string(claims.Role)))
				return c.JSON(http.StatusForbidden, echo.Map{"error": "access denied for role " + string(claims.Role)})
			}
			return next(c)
		}
	}
}

// ClaimsFromContext retrieves the session claims set by SessionAuthMiddleware
func ClaimsFromContext(c echo.Context) (*jwtutil.UserClaims, bool) {
	claims, ok := c.Get(claimsKey).(*jwtutil.UserClaims)
	return claims, ok
}
