package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func echoUserApp(handler fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Get("/whoami", handler, func(c *fiber.Ctx) error {
		if id := UserID(c); id != nil {
			return c.SendString(*id)
		}
		return c.SendString("guest")
	})
	return app
}

func TestRequireAuth(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	app := echoUserApp(RequireAuth())

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token := sign(t, "s3cret", jwt.MapClaims{"sub": "alice", "exp": time.Now().Add(time.Hour).Unix()})
	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireAuthRejectsWrongKeyAndExpired(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	app := echoUserApp(RequireAuth())

	for name, token := range map[string]string{
		"wrong key": sign(t, "other", jwt.MapClaims{"sub": "alice"}),
		"expired":   sign(t, "s3cret", jwt.MapClaims{"sub": "alice", "exp": time.Now().Add(-time.Hour).Unix()}),
		"no sub":    sign(t, "s3cret", jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}),
	} {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err, name)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, name)
	}
}

func TestOptionalAuth(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	app := echoUserApp(OptionalAuth())

	// No token: guest.
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Valid token: identified.
	token := sign(t, "s3cret", jwt.MapClaims{"sub": "bob", "exp": time.Now().Add(time.Hour).Unix()})
	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Broken token: rejected, not downgraded.
	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
