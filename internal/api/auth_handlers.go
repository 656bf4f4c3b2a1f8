package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"catalog-backend/internal/auth"
	"catalog-backend/internal/database"
	"catalog-backend/internal/models"
)

const sessionCookieName = "session_token"

// signInForm handles POST /. The browser form flow bounces back to the
// sign-in page on failure instead of returning a 401 body.
func (h *Handlers) signInForm(c echo.Context) error {
	resp, err := h.login(c)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return c.Redirect(http.StatusSeeOther, "/")
		}
		c.Logger().Error("login error: ", err)
		return c.String(http.StatusInternalServerError, "Server Error")
	}

	h.setSessionCookie(c, resp)
	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

// signIn handles POST /signin and sends the user straight to their
// role-appropriate page. Bad credentials get a 401 body.
func (h *Handlers) signIn(c echo.Context) error {
	resp, err := h.login(c)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, map[string]string{
				"error": "invalid username or password",
			})
		}
		c.Logger().Error("login error: ", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "authentication failed",
		})
	}

	h.setSessionCookie(c, resp)

	if resp.User.IsAdmin {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}
	return c.Redirect(http.StatusSeeOther, "/index")
}

func (h *Handlers) login(c echo.Context) (*auth.LoginResponse, error) {
	var req auth.LoginRequest
	if err := c.Bind(&req); err != nil {
		return nil, auth.ErrInvalidCredentials
	}

	resp, err := h.authSvc.Login(req, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.audit.Log(0, req.Username, models.AuditActionLoginFailed, "", c.RealIP())
		}
		return nil, err
	}

	h.audit.Log(resp.User.ID, resp.User.Username, models.AuditActionLogin, "", c.RealIP())
	return resp, nil
}

// setSessionCookie sets the token in an HttpOnly cookie
func (h *Handlers) setSessionCookie(c echo.Context, resp *auth.LoginResponse) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    resp.Token,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Request().TLS != nil, // Secure if HTTPS
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(time.Until(resp.ExpiresAt).Seconds()),
	})
}

// signUp handles POST /signup. New accounts are always regular users and are
// not logged in automatically.
func (h *Handlers) signUp(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	user, err := h.authSvc.Signup(username, password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUsernameTaken):
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": "username already taken",
			})
		case errors.Is(err, auth.ErrMissingFields):
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": "username and password are required",
			})
		default:
			c.Logger().Error("signup error: ", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{
				"error": "signup failed",
			})
		}
	}

	h.audit.Log(user.ID, user.Username, models.AuditActionSignup, "", c.RealIP())
	return c.Redirect(http.StatusSeeOther, "/")
}

// logout handles POST /logout
func (h *Handlers) logout(c echo.Context) error {
	token := auth.GetTokenFromRequest(c)
	if token != "" {
		if err := h.authSvc.Logout(token); err != nil && !errors.Is(err, database.ErrSessionNotFound) {
			c.Logger().Error("logout error: ", err)
		}
	}

	// Clear cookie
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	return c.Redirect(http.StatusSeeOther, "/")
}

// dashboard handles GET /dashboard, routing users by role
func (h *Handlers) dashboard(c echo.Context) error {
	user := auth.GetUserFromContext(c)
	if user == nil {
		return c.Redirect(http.StatusSeeOther, auth.SignInPath)
	}

	if user.IsAdmin {
		return c.Redirect(http.StatusSeeOther, "/upload")
	}
	return c.Redirect(http.StatusSeeOther, "/index")
}
