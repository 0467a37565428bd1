package session

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
)

const (
	tokenCookieName = "token"
	userCookieName  = "user"

	// Fallback cookie lifetime when the backend token carries no
	// usable expiry claim.
	defaultTokenLifetime = 12 * time.Hour
)

// Store is the narrow persistence abstraction over the browser's
// cookie jar. Implementations hold exactly two keys: the bearer token
// and the serialized identity.
type Store interface {
	Token(r *http.Request) string
	Identity(r *http.Request) (*Identity, bool)
	SetToken(w http.ResponseWriter, token string, expiry time.Time)
	SetIdentity(w http.ResponseWriter, identity *Identity) error
	Clear(w http.ResponseWriter)
}

// CookieStoreConfig controls cookie encoding and attributes.
type CookieStoreConfig struct {
	// HashKey authenticates the identity cookie; required.
	HashKey []byte
	// BlockKey additionally encrypts it when set.
	BlockKey []byte
	Secure   bool
	Path     string
}

// CookieStore persists the session in signed cookies. The token cookie
// stays plain (the backend JWT is already signed); the identity cookie
// goes through securecookie with a JSON serializer.
type CookieStore struct {
	cfg   CookieStoreConfig
	codec *securecookie.SecureCookie
}

// NewCookieStore constructs a CookieStore from the configuration.
func NewCookieStore(cfg CookieStoreConfig) (*CookieStore, error) {
	if len(cfg.HashKey) == 0 {
		return nil, errors.New("session: hash key is required")
	}
	if strings.TrimSpace(cfg.Path) == "" {
		cfg.Path = "/"
	}
	codec := securecookie.New(cfg.HashKey, cfg.BlockKey)
	codec.SetSerializer(securecookie.JSONEncoder{})
	return &CookieStore{cfg: cfg, codec: codec}, nil
}

// Token returns the persisted bearer token or empty.
func (s *CookieStore) Token(r *http.Request) string {
	c, err := r.Cookie(tokenCookieName)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(c.Value)
}

// Identity returns the persisted identity when present and intact.
// Tampered or undecodable cookies read as absent.
func (s *CookieStore) Identity(r *http.Request) (*Identity, bool) {
	c, err := r.Cookie(userCookieName)
	if err != nil || c.Value == "" {
		return nil, false
	}
	var identity Identity
	if err := s.codec.Decode(userCookieName, c.Value, &identity); err != nil {
		return nil, false
	}
	return &identity, true
}

// SetToken persists the bearer token. A zero expiry falls back to the
// default lifetime.
func (s *CookieStore) SetToken(w http.ResponseWriter, token string, expiry time.Time) {
	if strings.TrimSpace(token) == "" {
		s.expire(w, tokenCookieName)
		return
	}
	if expiry.IsZero() {
		expiry = time.Now().Add(defaultTokenLifetime)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieName,
		Value:    token,
		Path:     s.cfg.Path,
		Expires:  expiry.UTC(),
		HttpOnly: true,
		Secure:   s.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// SetIdentity persists the identity cookie.
func (s *CookieStore) SetIdentity(w http.ResponseWriter, identity *Identity) error {
	if identity == nil {
		s.expire(w, userCookieName)
		return nil
	}
	encoded, err := s.codec.Encode(userCookieName, identity)
	if err != nil {
		return fmt.Errorf("session: encode identity: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     userCookieName,
		Value:    encoded,
		Path:     s.cfg.Path,
		Expires:  time.Now().Add(30 * 24 * time.Hour).UTC(),
		HttpOnly: true,
		Secure:   s.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear removes both persisted keys.
func (s *CookieStore) Clear(w http.ResponseWriter) {
	s.expire(w, tokenCookieName)
	s.expire(w, userCookieName)
}

func (s *CookieStore) expire(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     s.cfg.Path,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   s.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
