package httpserver

import "context"

type ctxKey string

const ctxKeyCSRF ctxKey = "httpserver.csrf"

func withCSRFToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ctxKeyCSRF, token)
}

func csrfFromContext(ctx context.Context) string {
	if token, ok := ctx.Value(ctxKeyCSRF).(string); ok {
		return token
	}
	return ""
}
