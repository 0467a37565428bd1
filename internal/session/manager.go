package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"uom-eshop.org/storefront/internal/api"
)

// AuthAPI is the backend collaborator the manager depends on.
type AuthAPI interface {
	Login(ctx context.Context, req api.LoginRequest) (*api.LoginResponse, error)
	Register(ctx context.Context, req api.RegisterRequest) (*api.RegisterResponse, error)
}

// Credentials are the login form fields.
type Credentials struct {
	Username string
	Password string
}

// Manager owns all writes to the persisted session store. Concurrent
// operations race last-write-wins on the cookie jar; the UI disables
// submitting controls while a call is in flight, so the race is
// accepted rather than deduplicated here.
type Manager struct {
	auth  AuthAPI
	store Store
}

// NewManager wires the manager to its collaborators.
func NewManager(auth AuthAPI, store Store) *Manager {
	if auth == nil {
		panic("session: auth collaborator is required")
	}
	if store == nil {
		panic("session: store is required")
	}
	return &Manager{auth: auth, store: store}
}

// Store exposes the underlying persistence for read-side middleware.
func (m *Manager) Store() Store {
	return m.store
}

// Login authenticates against the backend, persists token and
// identity, and returns the authenticated state. Backend failures
// propagate unchanged; the caller maps them to a user-facing message.
func (m *Manager) Login(ctx context.Context, w http.ResponseWriter, creds Credentials) (State, error) {
	resp, err := m.auth.Login(ctx, api.LoginRequest{Username: creds.Username, Password: creds.Password})
	if err != nil {
		return State{}, err
	}
	if resp == nil {
		return State{}, errors.New("session: login response was empty")
	}

	identity := &Identity{
		ID:       resp.ID,
		Username: firstNonEmpty(resp.Username, creds.Username),
		Email:    resp.Email,
		Role:     ParseRole(resp.Role),
	}

	m.store.SetToken(w, resp.Token, tokenExpiry(resp.Token))
	if err := m.store.SetIdentity(w, identity); err != nil {
		return State{}, err
	}

	return State{
		Identity:        identity,
		Token:           resp.Token,
		IsAuthenticated: true,
	}, nil
}

// Register creates an account and persists the identity WITHOUT a
// token: the backend issues none at registration, so the resulting
// state has an identity but is not authenticated until a login
// follows. Backend failures propagate unchanged.
func (m *Manager) Register(ctx context.Context, w http.ResponseWriter, req api.RegisterRequest) (State, error) {
	resp, err := m.auth.Register(ctx, req)
	if err != nil {
		return State{}, err
	}

	identity := &Identity{Role: ParseRole(req.Role)}
	if resp != nil {
		identity.Username = firstNonEmpty(resp.Username, req.Username)
		identity.Email = firstNonEmpty(resp.Email, req.Email)
		if resp.Role != "" {
			identity.Role = ParseRole(resp.Role)
		}
	} else {
		identity.Username = req.Username
		identity.Email = req.Email
	}

	if err := m.store.SetIdentity(w, identity); err != nil {
		return State{}, err
	}

	return State{Identity: identity, IsAuthenticated: false}, nil
}

// Logout clears the persisted token and identity. Client-local only;
// no backend call is made.
func (m *Manager) Logout(w http.ResponseWriter) {
	m.store.Clear(w)
}

// Rehydrate builds the session state for one request by reading the
// persisted store once. Both keys must be present for the session to
// count as authenticated.
func (m *Manager) Rehydrate(r *http.Request) State {
	token := m.store.Token(r)
	identity, ok := m.store.Identity(r)
	if !ok {
		return State{}
	}
	return State{
		Identity:        identity,
		Token:           token,
		IsAuthenticated: token != "" && identity != nil,
	}
}

// tokenExpiry peeks at the backend JWT's exp claim without verifying
// the signature (verification is the backend's job) so the token
// cookie can expire alongside the token itself.
func tokenExpiry(token string) time.Time {
	if token == "" {
		return time.Time{}
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	switch exp := claims["exp"].(type) {
	case float64:
		return time.Unix(int64(exp), 0)
	case json.Number:
		if v, err := exp.Int64(); err == nil {
			return time.Unix(v, 0)
		}
	}
	return time.Time{}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
