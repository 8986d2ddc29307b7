package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"sustainbite/domain"
	"sustainbite/internal/api/presenters"
	"sustainbite/pkg/jwt"
)

const (
	SessionCookie = "session"

	localsUserID = "user_id"
	localsAuth   = "auth"
)

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		AuthMiddleware(jwtService jwt.JWTService) fiber.Handler
		OptionalAuth(jwtService jwt.JWTService) fiber.Handler
	}

	middleware struct {
		allowOrigins string
	}
)

// NewMiddleware builds the shared middleware set. allowOrigins is a comma
// separated CORS origin list; empty allows same-origin only.
func NewMiddleware(allowOrigins string) Middleware {
	return &middleware{allowOrigins: allowOrigins}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	if m.allowOrigins == "" {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return cors.New(cors.Config{
		AllowOrigins:     m.allowOrigins,
		AllowMethods:     "GET,POST,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	})
}

// AuthMiddleware rejects the request with 401 unless it carries a valid
// session, either as the session cookie or a bearer token.
func (m *middleware) AuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth, err := jwtService.GetUserByToken(sessionToken(c))
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageUnauthorized, err)
		}
		setAuth(c, auth)
		return c.Next()
	}
}

// OptionalAuth resolves the session when one is present and never rejects.
func (m *middleware) OptionalAuth(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := sessionToken(c); token != "" {
			if auth, err := jwtService.GetUserByToken(token); err == nil {
				setAuth(c, auth)
			}
		}
		return c.Next()
	}
}

// GetAuth returns the identity stored by AuthMiddleware or OptionalAuth. It is
// zero for anonymous requests.
func GetAuth(c *fiber.Ctx) domain.AuthContext {
	auth, _ := c.Locals(localsAuth).(domain.AuthContext)
	return auth
}

func setAuth(c *fiber.Ctx, auth domain.AuthContext) {
	c.Locals(localsUserID, auth.UserID)
	c.Locals(localsAuth, auth)
}

func sessionToken(c *fiber.Ctx) string {
	if token := c.Cookies(SessionCookie); token != "" {
		return token
	}
	header := c.Get(fiber.HeaderAuthorization)
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}
