package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const jwtTestSecret = "test-secret"

func signedToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func authApp(protected bool) *fiber.App {
	app := fiber.New()
	guard := JWTOptional(jwtTestSecret)
	if protected {
		guard = JWTProtected(jwtTestSecret)
	}
	app.Get("/whoami", guard, func(c *fiber.Ctx) error {
		return c.SendString(fmt.Sprintf("%d", UserIDFromContext(c)))
	})
	return app
}

func TestJWTProtectedRejectsMissingToken(t *testing.T) {
	app := authApp(true)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/whoami", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTProtectedRejectsWrongSecret(t *testing.T) {
	app := authApp(true)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "other-secret", jwt.MapClaims{
		"sub": "4",
		"exp": time.Now().Add(time.Hour).Unix(),
	}))

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTProtectedRejectsExpiredToken(t *testing.T) {
	app := authApp(true)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, jwtTestSecret, jwt.MapClaims{
		"sub": "4",
		"exp": time.Now().Add(-time.Hour).Unix(),
	}))

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTProtectedBindsOwner(t *testing.T) {
	app := authApp(true)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, jwtTestSecret, jwt.MapClaims{
		"sub": "42",
		"exp": time.Now().Add(time.Hour).Unix(),
	}))

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := make([]byte, 2)
	n, _ := resp.Body.Read(body)
	require.Equal(t, "42", string(body[:n]))
}

func TestJWTOptionalAllowsAnonymous(t *testing.T) {
	app := authApp(false)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/whoami", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := make([]byte, 1)
	n, _ := resp.Body.Read(body)
	require.Equal(t, "0", string(body[:n]))
}
