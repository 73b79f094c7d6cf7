package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"foodgram/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(jwtService jwt.JWTService) *fiber.App {
	m := NewMiddleware()
	app := fiber.New()
	echo := func(c *fiber.Ctx) error {
		return c.SendString(strconv.FormatUint(uint64(UserID(c)), 10))
	}
	app.Get("/required", m.AuthMiddleware(jwtService), echo)
	app.Get("/optional", m.OptionalAuthMiddleware(jwtService), echo)
	return app
}

func call(t *testing.T, app *fiber.App, path, header string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	res, err := app.Test(req)
	require.NoError(t, err)
	buf := make([]byte, 64)
	n, _ := res.Body.Read(buf)
	return res.StatusCode, string(buf[:n])
}

func TestAuthMiddleware(t *testing.T) {
	jwtService := jwt.NewJWTService("secret")
	app := newApp(jwtService)
	token, err := jwtService.GenerateTokenUser(7)
	require.NoError(t, err)

	status, body := call(t, app, "/required", "Bearer "+token)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "7", body)

	status, _ = call(t, app, "/required", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = call(t, app, "/required", "Token "+token)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestOptionalAuthMiddleware(t *testing.T) {
	jwtService := jwt.NewJWTService("secret")
	app := newApp(jwtService)
	token, err := jwtService.GenerateTokenUser(7)
	require.NoError(t, err)

	status, body := call(t, app, "/optional", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "0", body)

	status, body = call(t, app, "/optional", "Bearer "+token)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "7", body)

	status, _ = call(t, app, "/optional", "Bearer broken")
	assert.Equal(t, http.StatusUnauthorized, status)
}
