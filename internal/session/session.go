// Package session caches the authenticated (or provisionally
// registered) identity client-side. The browser-persisted state lives
// in two cookies mirroring the backend contract: "token" holds the
// bearer token, "user" the serialized identity. Only this package
// writes them; everything else reads the rehydrated State from the
// request context.
package session

import "strings"

// Role distinguishes customer accounts from store-owner accounts.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleStore    Role = "STORE"
)

// ParseRole maps a backend role string onto a Role, defaulting to
// customer for anything unrecognized.
func ParseRole(raw string) Role {
	switch Role(strings.ToUpper(strings.TrimSpace(raw))) {
	case RoleStore:
		return RoleStore
	default:
		return RoleCustomer
	}
}

// Identity carries the cached user profile. ID stays nil when the
// backend response omitted it (registration does).
type Identity struct {
	ID       *int64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// State is the per-request view of the session.
//
// IsAuthenticated implies a non-nil Identity and a non-empty Token.
// Immediately after registration the Identity is set while
// IsAuthenticated stays false: the backend issues no token at
// registration and requires a follow-up login. That asymmetry is part
// of the contract, not a bug.
type State struct {
	Identity        *Identity
	Token           string
	IsAuthenticated bool
}

// Anonymous reports whether no usable identity is present.
func (s State) Anonymous() bool {
	return s.Identity == nil
}

// HasRole reports whether the session is authenticated with the given role.
func (s State) HasRole(role Role) bool {
	return s.IsAuthenticated && s.Identity != nil && s.Identity.Role == role
}
