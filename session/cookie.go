package session

import (
	"net/http"
	"strings"
	"time"
)

// Cookies writes and reads the session cookie.
type Cookies struct {
	Name   string
	Secure bool
}

// Write sets the token as an httpOnly cookie that lives as long as the token.
func (c Cookies) Write(w http.ResponseWriter, token Token, now time.Time) {
	maxAge := int(token.ExpiresAt.Sub(now) / time.Second)
	if maxAge <= 0 {
		maxAge = -1
	}
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    token.Value,
		Path:     "/",
		MaxAge:   maxAge,
		Expires:  token.ExpiresAt.UTC(),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires the cookie in the browser.
func (c Cookies) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Read returns the session token from the cookie, falling back to an
// "Authorization: Bearer" header.
func (c Cookies) Read(r *http.Request) string {
	if r == nil {
		return ""
	}
	if cookie, err := r.Cookie(c.Name); err == nil {
		if value := strings.TrimSpace(cookie.Value); value != "" {
			return value
		}
	}
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}
