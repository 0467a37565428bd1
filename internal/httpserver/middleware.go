package httpserver

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"net/url"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"uom-eshop.org/storefront/internal/session"
)

// requestLogger emits a structured log line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.Status()),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
			zap.String("remote_ip", r.RemoteAddr),
			zap.String("request_id", chimw.GetReqID(r.Context())),
		)
	})
}

// requireAuth redirects anonymous visitors to the login page, carrying
// the original destination so login can bounce back.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state := session.FromContext(r.Context())
		if !state.IsAuthenticated {
			dest := "/login"
			if r.Method == http.MethodGet && r.URL.Path != "/" {
				dest += "?next=" + url.QueryEscape(r.URL.RequestURI())
			}
			http.Redirect(w, r, dest, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireRole gates a route group on the session role.
func (s *Server) requireRole(role session.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state := session.FromContext(r.Context())
			if !state.HasRole(role) {
				http.Redirect(w, r, "/unauthorized", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

const csrfFormField = "_csrf"

// CSRFConfig tunes the double-submit CSRF cookie.
type CSRFConfig struct {
	CookieName string
	Secure     bool
}

func (c CSRFConfig) withDefaults() CSRFConfig {
	if c.CookieName == "" {
		c.CookieName = "csrf_token"
	}
	return c
}

// csrfProtect issues a CSRF cookie and verifies modifying requests
// carry the matching token in the form body (double submit cookie).
func (s *Server) csrfProtect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := ""
		if c, err := r.Cookie(s.csrf.CookieName); err == nil {
			token = c.Value
		}
		if token == "" {
			token = newCSRFToken()
			http.SetCookie(w, &http.Cookie{
				Name:     s.csrf.CookieName,
				Value:    token,
				Path:     "/",
				Secure:   s.csrf.Secure,
				SameSite: http.SameSiteLaxMode,
				Expires:  time.Now().Add(24 * time.Hour),
			})
		}
		r = r.WithContext(withCSRFToken(r.Context(), token))

		if !isSafeMethod(r.Method) {
			submitted := r.PostFormValue(csrfFormField)
			if submitted == "" || subtle.ConstantTimeCompare([]byte(submitted), []byte(token)) != 1 {
				http.Error(w, "invalid CSRF token", http.StatusForbidden)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func newCSRFToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func isSafeMethod(m string) bool {
	switch m {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	default:
		return false
	}
}
