package middleware

import (
	"errors"
	"strings"

	"skillsift/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
)

const CtxAdminSubjectKey = "admin_subject"

// AdminMiddleware guards catalogue writes behind an admin bearer token.
type AdminMiddleware struct {
	jwt jwt.Service
}

func NewAdminMiddleware(jwtSvc jwt.Service) *AdminMiddleware {
	return &AdminMiddleware{jwt: jwtSvc}
}

func (m *AdminMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if m == nil || m.jwt == nil || !m.jwt.Enabled() {
			return NewAppError(fiber.StatusServiceUnavailable, "Admin access is not configured", nil, jwt.ErrNotConfigured)
		}

		token, ok := bearerTokenFromHeader(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		claims, err := m.jwt.ValidateToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
			}
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
		}

		c.Locals(CtxAdminSubjectKey, claims.Subject)

		return c.Next()
	}
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
