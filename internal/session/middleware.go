package session

import (
	"context"
	"net/http"

	"uom-eshop.org/storefront/internal/api"
)

type ctxKey string

const ctxKeyState ctxKey = "session.state"

// Middleware rehydrates the session state once per request and makes
// it available to handlers. It also plants the bearer token in the
// context so the API transport attaches it to backend calls.
func Middleware(m *Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state := m.Rehydrate(r)
			ctx := context.WithValue(r.Context(), ctxKeyState, state)
			if state.Token != "" {
				ctx = api.WithToken(ctx, state.Token)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromContext returns the session state for the current request. The
// zero State (anonymous) is returned outside the middleware.
func FromContext(ctx context.Context) State {
	state, _ := ctx.Value(ctxKeyState).(State)
	return state
}
