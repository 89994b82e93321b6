package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/davixiao/MeetTheDev/internal/core/domain"
	"github.com/davixiao/MeetTheDev/internal/core/ports"
)

const (
	// TokenHeader carries the credential issued at login or registration.
	TokenHeader = "x-auth-token"
	// UserIDKey is the echo context key holding the authenticated user id.
	UserIDKey = "user_id"
)

// Auth rejects the request with a *domain.AuthError unless it carries a
// valid token, and stores the resolved user id under UserIDKey.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return &domain.AuthError{Kind: domain.AuthMissing}
			}

			userID, err := verifier.Verify(token)
			if err != nil {
				return err
			}

			c.Set(UserIDKey, userID)
			return next(c)
		}
	}
}

// extractToken prefers the x-auth-token header and falls back to a bearer
// Authorization header.
func extractToken(c echo.Context) string {
	h := c.Request().Header
	if token := strings.TrimSpace(h.Get(TokenHeader)); token != "" {
		return token
	}

	parts := strings.SplitN(h.Get(echo.HeaderAuthorization), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
