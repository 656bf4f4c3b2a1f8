package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"catalog-backend/internal/models"
)

// Context keys for storing user data
const (
	ContextKeyUser    = "user"
	ContextKeySession = "session"
)

// SignInPath is where rejected requests are sent. This is a browser-redirect
// flow, not an API-error contract.
const SignInPath = "/"

// RequireAuth middleware checks for a valid session. Requests without one
// are redirected to the sign-in page.
func RequireAuth(authSvc *Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := GetTokenFromRequest(c)
			if token == "" {
				return c.Redirect(http.StatusSeeOther, SignInPath)
			}

			user, session, err := authSvc.ValidateToken(token)
			if err != nil {
				return c.Redirect(http.StatusSeeOther, SignInPath)
			}

			// Store user and session in context for handlers
			c.Set(ContextKeyUser, user)
			c.Set(ContextKeySession, session)

			return next(c)
		}
	}
}

// RequireAdmin middleware checks that the resolved user is an admin. Must be
// used after RequireAuth. Non-admins bounce to the same sign-in page as
// unauthenticated requests; the two cases are indistinguishable to clients.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get(ContextKeyUser).(*models.User)
			if !ok || user == nil || !user.IsAdmin {
				return c.Redirect(http.StatusSeeOther, SignInPath)
			}
			return next(c)
		}
	}
}

// GetTokenFromRequest extracts the session token from the request
func GetTokenFromRequest(c echo.Context) string {
	// Try Authorization header first (Bearer token)
	authHeader := c.Request().Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	// Try cookie
	cookie, err := c.Cookie("session_token")
	if err == nil && cookie.Value != "" {
		return cookie.Value
	}

	return ""
}

// GetUserFromContext retrieves the authenticated user from the context
func GetUserFromContext(c echo.Context) *models.User {
	user, ok := c.Get(ContextKeyUser).(*models.User)
	if !ok {
		return nil
	}
	return user
}
