// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package sec

// Identity is the resolved caller attached to a request context after the
// session protocol has accepted a bearer token.
//
// # Why not the raw claims?
//
// Claims only prove the token was signed by us. Identity is produced after
// the session lookup, so it reflects the CURRENT state of the account
// (role changes, revoked sessions) rather than whatever was true at login.
type Identity struct {
	// UserID is the account UUID (token subject).
	UserID string

	// SessionID is the login session UUID (token jti).
	SessionID string

	// Role is the account's current authorization level.
	Role UserRole
}

// IsAdmin reports whether the identity carries administrative access.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role.AtLeast(RoleAdmin)
}
