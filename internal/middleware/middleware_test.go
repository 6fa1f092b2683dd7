package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"pos-service/internal/model"
	"pos-service/pkg/config"
	"pos-service/pkg/jwtutil"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(jwtUtil *jwtutil.JWTUtil) *echo.Echo {
	e := echo.New()
	e.Use(RequestIDMiddleware())
	e.Use(MetricsMiddleware)

	api := e.Group("/api", SessionAuthMiddleware(jwtUtil))
	api.GET("/whoami", func(c echo.Context) error {
		claims, _ := ClaimsFromContext(c)
		return c.JSON(http.StatusOK, echo.Map{"user_id": claims.UserID})
	})
	api.GET("/backup", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, RequireView(model.ViewBackup))
	return e
}

func serve(e *echo.Echo, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRequestIDMiddleware(t *testing.T) {
	e := echo.New()
	e.Use(RequestIDMiddleware())
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, c.Get("request_id").(string))
	})

	t.Run("RequestID_Generated", func(t *testing.T) {
		rec := serve(e, "/", "")
		id := rec.Header().Get(RequestIDHeader)
		assert.NotEmpty(t, id)
		assert.Equal(t, id, rec.Body.String())
	})

	t.Run("RequestID_Propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "req-123")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))
	})
}

func TestSessionAuthMiddleware(t *testing.T) {
	jwtUtil := jwtutil.NewJWTUtil(&config.JWTConfig{SigningKey: "test-key", ExpirationHours: 1})
	e := newTestServer(jwtUtil)

	admin, _ := model.FindUser(1)
	seller, _ := model.FindUser(2)
	adminToken, _, err := jwtUtil.GenerateToken(admin)
	require.NoError(t, err)
	sellerToken, _, err := jwtUtil.GenerateToken(seller)
	require.NoError(t, err)

	t.Run("SessionAuth_MissingToken", func(t *testing.T) {
		rec := serve(e, "/api/whoami", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("SessionAuth_InvalidToken", func(t *testing.T) {
		rec := serve(e, "/api/whoami", "garbage")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("SessionAuth_ValidToken", func(t *testing.T) {
		rec := serve(e, "/api/whoami", sellerToken)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"user_id":2}`, rec.Body.String())
	})

	t.Run("RequireView_AdminAllowed", func(t *testing.T) {
		rec := serve(e, "/api/backup", adminToken)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("RequireView_SellerForbidden", func(t *testing.T) {
		rec := serve(e, "/api/backup", sellerToken)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
