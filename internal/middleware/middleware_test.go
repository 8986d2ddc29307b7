package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sustainbite/domain"
	"sustainbite/pkg/jwt"
)

func newApp(t *testing.T) (*fiber.App, string) {
	t.Helper()
	jwtService := jwt.NewJWTService("middleware-secret", time.Hour)
	token, err := jwtService.GenerateTokenUser(domain.AuthContext{UserID: "u-1", Name: "Nisha", Email: "nisha@example.com"})
	require.NoError(t, err)

	m := NewMiddleware("")
	app := fiber.New()
	whoami := func(c *fiber.Ctx) error {
		return c.SendString(GetAuth(c).UserID)
	}
	app.Get("/private", m.AuthMiddleware(jwtService), whoami)
	app.Get("/public", m.OptionalAuth(jwtService), whoami)
	return app, token
}

func TestAuthMiddleware(t *testing.T) {
	app, token := newApp(t)

	cases := []struct {
		name   string
		setup  func(r *http.Request)
		status int
	}{
		{"cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: SessionCookie, Value: token}) }, fiber.StatusOK},
		{"bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }, fiber.StatusOK},
		{"missing", func(r *http.Request) {}, fiber.StatusUnauthorized},
		{"garbage", func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, fiber.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			tc.setup(req)
			res, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tc.status, res.StatusCode)
		})
	}
}

func TestOptionalAuth_NeverRejects(t *testing.T) {
	app, _ := newApp(t)

	req := httptest.NewRequest(http.MethodGet, "/public", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "expired-or-forged"})
	res, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
}
