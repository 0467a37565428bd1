package api

import (
	"context"
	"net/http"
)

type ctxKey string

const ctxKeyToken ctxKey = "api.token"

// WithToken stores the bearer token for outgoing backend calls in the
// context. The session middleware sets this once per request from the
// persisted store; the transport only reads it.
func WithToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxKeyToken, token)
}

// TokenFromContext returns the bearer token for the current request, if any.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(ctxKeyToken).(string)
	return token
}

// authTransport attaches the session bearer token to every outgoing
// request. It performs no other mutation; failure handling happens in
// the client once the response status is known.
type authTransport struct {
	base http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	if token := TokenFromContext(req.Context()); token != "" && req.Header.Get("Authorization") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return base.RoundTrip(req)
}
