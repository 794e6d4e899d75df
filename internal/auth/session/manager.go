// Package session manages the browser session cookie.
package session

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/capstore/capstore/internal/config"
)

// CookieName is the session cookie used by the storefront.
const CookieName = "_sid"

// Manager writes and clears the session cookie.
type Manager struct {
	secure bool
}

// NewManager creates the session cookie manager.
func NewManager(cfg config.Config) *Manager {
	return &Manager{secure: cfg.AuthCookieSecure}
}

// Set writes the session cookie valid until expiresAt.
func (m *Manager) Set(c *gin.Context, rawToken string, expiresAt time.Time) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     CookieName,
		Value:    rawToken,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt) / time.Second),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires the session cookie.
func (m *Manager) Clear(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Token reads the raw session token from the request, if present.
func Token(c *gin.Context) (string, bool) {
	cookie, err := c.Request.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}
