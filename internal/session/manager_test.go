package session_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"

	"uom-eshop.org/storefront/internal/api"
	"uom-eshop.org/storefront/internal/session"
)

type fakeAuthAPI struct {
	loginResp    *api.LoginResponse
	loginErr     error
	registerResp *api.RegisterResponse
	registerErr  error

	lastLogin    api.LoginRequest
	lastRegister api.RegisterRequest
}

func (f *fakeAuthAPI) Login(_ context.Context, req api.LoginRequest) (*api.LoginResponse, error) {
	f.lastLogin = req
	return f.loginResp, f.loginErr
}

func (f *fakeAuthAPI) Register(_ context.Context, req api.RegisterRequest) (*api.RegisterResponse, error) {
	f.lastRegister = req
	return f.registerResp, f.registerErr
}

func newTestStore(t *testing.T) session.Store {
	t.Helper()

	store, err := session.NewCookieStore(session.CookieStoreConfig{
		HashKey: []byte("0123456789abcdef0123456789abcdef"),
	})
	require.NoError(t, err)
	return store
}

// requestWithCookies copies the cookies written to the recorder onto a
// fresh request, simulating the browser's next page load.
func requestWithCookies(t *testing.T, rec *httptest.ResponseRecorder) *http.Request {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			continue
		}
		req.AddCookie(c)
	}
	return req
}

func int64Ptr(v int64) *int64 { return &v }

func TestLoginPersistsTokenAndIdentity(t *testing.T) {
	t.Parallel()

	auth := &fakeAuthAPI{loginResp: &api.LoginResponse{
		ID: int64Ptr(7), Token: "tok123", Username: "alice", Email: "a@x.com", Role: "CUSTOMER",
	}}
	store := newTestStore(t)
	mgr := session.NewManager(auth, store)

	rec := httptest.NewRecorder()
	state, err := mgr.Login(context.Background(), rec, session.Credentials{Username: "alice", Password: "secret"})
	require.NoError(t, err)
	require.True(t, state.IsAuthenticated)
	require.Equal(t, "tok123", state.Token)
	require.NotNil(t, state.Identity)
	require.EqualValues(t, 7, *state.Identity.ID)
	require.Equal(t, session.RoleCustomer, state.Identity.Role)

	req := requestWithCookies(t, rec)
	require.Equal(t, "tok123", store.Token(req))

	restored := mgr.Rehydrate(req)
	require.True(t, restored.IsAuthenticated)
	require.Equal(t, "alice", restored.Identity.Username)
	require.Equal(t, "a@x.com", restored.Identity.Email)
}

func TestLoginTokenCookieTracksJWTExpiry(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(45 * time.Minute).Truncate(time.Second)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "alice",
		"exp": exp.Unix(),
	}).SignedString([]byte("test-signing-key"))
	require.NoError(t, err)

	auth := &fakeAuthAPI{loginResp: &api.LoginResponse{Token: token, Username: "alice"}}
	mgr := session.NewManager(auth, newTestStore(t))

	rec := httptest.NewRecorder()
	_, err = mgr.Login(context.Background(), rec, session.Credentials{Username: "alice", Password: "pw"})
	require.NoError(t, err)

	cookie := tokenCookie(t, rec)
	require.True(t, cookie.Expires.Equal(exp), "cookie expires %v, token exp %v", cookie.Expires, exp)
}

func TestLoginOpaqueTokenGetsDefaultCookieLifetime(t *testing.T) {
	t.Parallel()

	auth := &fakeAuthAPI{loginResp: &api.LoginResponse{Token: "not-a-jwt", Username: "alice"}}
	mgr := session.NewManager(auth, newTestStore(t))

	rec := httptest.NewRecorder()
	_, err := mgr.Login(context.Background(), rec, session.Credentials{Username: "alice", Password: "pw"})
	require.NoError(t, err)

	cookie := tokenCookie(t, rec)
	require.True(t, cookie.Expires.After(time.Now().Add(time.Hour)))
}

func tokenCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, c := range rec.Result().Cookies() {
		if c.Name == "token" {
			return c
		}
	}
	t.Fatal("token cookie was not set")
	return nil
}

func TestLoginDefaultsMissingIdentityFields(t *testing.T) {
	t.Parallel()

	auth := &fakeAuthAPI{loginResp: &api.LoginResponse{Token: "tok999"}}
	mgr := session.NewManager(auth, newTestStore(t))

	rec := httptest.NewRecorder()
	state, err := mgr.Login(context.Background(), rec, session.Credentials{Username: "bob", Password: "pw"})
	require.NoError(t, err)
	require.Nil(t, state.Identity.ID)
	require.Equal(t, "bob", state.Identity.Username)
	require.Equal(t, session.RoleCustomer, state.Identity.Role)
}

func TestLoginPropagatesBackendFailureUnchanged(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("api: bad credentials")
	auth := &fakeAuthAPI{loginErr: wantErr}
	mgr := session.NewManager(auth, newTestStore(t))

	rec := httptest.NewRecorder()
	_, err := mgr.Login(context.Background(), rec, session.Credentials{Username: "alice", Password: "nope"})
	require.ErrorIs(t, err, wantErr)
	require.Empty(t, rec.Result().Cookies())
}

func TestRegisterPersistsIdentityWithoutToken(t *testing.T) {
	t.Parallel()

	auth := &fakeAuthAPI{registerResp: &api.RegisterResponse{
		Message: "registered", Username: "carol", Email: "c@x.com", Role: "STORE",
	}}
	store := newTestStore(t)
	mgr := session.NewManager(auth, store)

	rec := httptest.NewRecorder()
	state, err := mgr.Register(context.Background(), rec, api.RegisterRequest{
		Username: "carol", Email: "c@x.com", Password: "pw", Role: "STORE", StoreName: "Carol's",
	})
	require.NoError(t, err)

	// Registration never authenticates: identity is set, token is not.
	require.False(t, state.IsAuthenticated)
	require.NotNil(t, state.Identity)
	require.Equal(t, session.RoleStore, state.Identity.Role)
	require.Empty(t, state.Token)

	req := requestWithCookies(t, rec)
	require.Empty(t, store.Token(req))
	identity, ok := store.Identity(req)
	require.True(t, ok)
	require.Equal(t, "carol", identity.Username)

	restored := mgr.Rehydrate(req)
	require.False(t, restored.IsAuthenticated)
	require.NotNil(t, restored.Identity)
}

func TestRegisterFallsBackToSubmittedFields(t *testing.T) {
	t.Parallel()

	auth := &fakeAuthAPI{registerResp: &api.RegisterResponse{Message: "ok"}}
	mgr := session.NewManager(auth, newTestStore(t))

	rec := httptest.NewRecorder()
	state, err := mgr.Register(context.Background(), rec, api.RegisterRequest{
		Username: "dave", Email: "d@x.com", Password: "pw", Role: "CUSTOMER",
	})
	require.NoError(t, err)
	require.Equal(t, "dave", state.Identity.Username)
	require.Equal(t, "d@x.com", state.Identity.Email)
	require.Equal(t, session.RoleCustomer, state.Identity.Role)
}

func TestLogoutClearsPersistedState(t *testing.T) {
	t.Parallel()

	auth := &fakeAuthAPI{loginResp: &api.LoginResponse{Token: "tok123", Username: "alice"}}
	store := newTestStore(t)
	mgr := session.NewManager(auth, store)

	loginRec := httptest.NewRecorder()
	_, err := mgr.Login(context.Background(), loginRec, session.Credentials{Username: "alice", Password: "pw"})
	require.NoError(t, err)

	logoutRec := httptest.NewRecorder()
	mgr.Logout(logoutRec)

	req := requestWithCookies(t, logoutRec)
	require.Empty(t, store.Token(req))
	_, ok := store.Identity(req)
	require.False(t, ok)
	require.True(t, mgr.Rehydrate(req).Anonymous())
}

func TestIdentityCookieTamperReadsAsAbsent(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "user", Value: "forged-value"})
	_, ok := store.Identity(req)
	require.False(t, ok)
}

func TestMiddlewarePlantsStateAndToken(t *testing.T) {
	t.Parallel()

	auth := &fakeAuthAPI{loginResp: &api.LoginResponse{Token: "tok123", Username: "alice"}}
	store := newTestStore(t)
	mgr := session.NewManager(auth, store)

	loginRec := httptest.NewRecorder()
	_, err := mgr.Login(context.Background(), loginRec, session.Credentials{Username: "alice", Password: "pw"})
	require.NoError(t, err)

	var gotState session.State
	var gotToken string
	handler := session.Middleware(mgr)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotState = session.FromContext(r.Context())
		gotToken = api.TokenFromContext(r.Context())
	}))

	req := requestWithCookies(t, loginRec)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.True(t, gotState.IsAuthenticated)
	require.Equal(t, "tok123", gotToken)
}
