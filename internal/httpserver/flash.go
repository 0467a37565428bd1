package httpserver

import (
	"net/http"
	"net/url"
)

const flashCookieName = "flash"

// setFlash stores a one-shot notice shown on the next rendered page.
// The value is URL-escaped because cookie values cannot carry spaces.
func setFlash(w http.ResponseWriter, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    url.QueryEscape(message),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash reads and clears the pending notice, if any.
func popFlash(w http.ResponseWriter, r *http.Request) string {
	c, err := r.Cookie(flashCookieName)
	if err != nil || c.Value == "" {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:   flashCookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	message, err := url.QueryUnescape(c.Value)
	if err != nil {
		return ""
	}
	return message
}
