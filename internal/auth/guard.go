// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

/*
Package auth implements the authentication surface: registration, login with
optional MFA, session-backed request authentication, contact verification,
and account recovery.

# Security

Every denial path through the guard is indistinguishable to the client. A
missing token, a forged signature, an expired session, and a suspended
account all produce the same 401; the real reason only appears in the logs.
*/
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rvales/mediary/internal/platform/apperr"
	"github.com/rvales/mediary/internal/platform/cache"
	"github.com/rvales/mediary/internal/platform/constants"
	"github.com/rvales/mediary/internal/platform/sec"
	"github.com/rvales/mediary/internal/sessions"
	"github.com/rvales/mediary/internal/users"
)

// errDenied is the single client-visible authentication failure.
var errDenied = apperr.Unauthorized("Invalid or expired token")

// # Guard Dependencies

// TokenVerifier checks token signatures. Satisfied by [*sec.TokenService].
type TokenVerifier interface {
	Verify(tokenString string) (*sec.SessionClaims, error)
}

// SessionFinder resolves active sessions. Satisfied by [*sessions.Service].
type SessionFinder interface {
	FindActive(ctx context.Context, userID, sessionID string) (*sessions.Session, error)
}

// UserFinder resolves accounts. Satisfied by [*users.Service].
type UserFinder interface {
	FindOne(ctx context.Context, id string) (*users.User, error)
}

// # Guard

// Guard authenticates bearer tokens against the session store.
//
// The hot path is a single cache read. On a miss the session and account
// are resolved from PostgreSQL and the projection is repopulated with a
// TTL equal to the session's remaining lifetime, so a cache entry can
// never outlive the session it vouches for.
type Guard struct {
	tokens   TokenVerifier
	sessions SessionFinder
	users    UserFinder
	cache    cache.Store
	logger   *slog.Logger
}

// NewGuard wires the authentication guard.
func NewGuard(tokens TokenVerifier, sessionFinder SessionFinder, userFinder UserFinder, cacheStore cache.Store, logger *slog.Logger) *Guard {
	return &Guard{
		tokens:   tokens,
		sessions: sessionFinder,
		users:    userFinder,
		cache:    cacheStore,
		logger:   logger,
	}
}

/*
Authenticate resolves a bearer token to a caller identity.

Parameters:
  - context: context.Context
  - token: Compact token string from the Authorization header

Returns:
  - *sec.Identity: The resolved caller
  - error: A single generic denial for every failure mode
*/
func (guard *Guard) Authenticate(context context.Context, token string) (*sec.Identity, error) {

	// ── 1. Signature and temporal validity ──
	claims, err := guard.tokens.Verify(token)
	if err != nil {
		guard.deny(context, "token_rejected", err)
		return nil, errDenied
	}

	userID := claims.UserID()
	sessionID := claims.SessionID()
	if userID == "" || sessionID == "" {
		guard.deny(context, "token_missing_claims", nil)
		return nil, errDenied
	}
	cacheKey := fmt.Sprintf(constants.SessionCacheKeyFormat, userID, sessionID)

	// ── 2. Cache fast path ──
	var entry sessions.CachedEntry
	if hit, _ := guard.cache.Get(context, constants.CacheOriginAuthGuard, cacheKey, &entry); hit {
		if entry.ExpiredAt.After(time.Now()) {
			return &sec.Identity{
				UserID:    entry.UserID,
				SessionID: entry.SessionID,
				Role:      entry.UserRole,
			}, nil
		}
	}

	// ── 3. Authoritative session lookup ──
	session, err := guard.sessions.FindActive(context, userID, sessionID)
	if err != nil {
		guard.deny(context, "session_not_active", err)
		return nil, errDenied
	}

	// ── 4. Account gate ──
	user, err := guard.users.FindOne(context, userID)
	if err != nil {
		guard.deny(context, "user_lookup_failed", err)
		return nil, errDenied
	}
	if !user.IsActive() {
		guard.deny(context, "account_not_active", nil)
		return nil, errDenied
	}

	// ── 5. Repopulate the projection ──
	// The TTL is the session's remaining lifetime, never longer.
	ttl := time.Until(*session.ExpiredAt)
	if ttl <= 0 {
		guard.deny(context, "session_expired", nil)
		return nil, errDenied
	}

	entry = sessions.CachedEntry{
		SessionID: sessionID,
		UserID:    userID,
		UserRole:  user.Role,
		ExpiredAt: *session.ExpiredAt,
	}
	if err := guard.cache.Set(context, constants.CacheOriginAuthGuard, cacheKey, entry, ttl); err != nil {
		guard.logger.WarnContext(context, "auth_cache_write_failed", slog.String("error", err.Error()))
	}

	return &sec.Identity{
		UserID:    userID,
		SessionID: sessionID,
		Role:      user.Role,
	}, nil
}

// deny records the true denial reason server-side only.
func (guard *Guard) deny(context context.Context, reason string, err error) {
	attributes := []any{slog.String("reason", reason)}
	if err != nil {
		attributes = append(attributes, slog.String("error", err.Error()))
	}
	guard.logger.DebugContext(context, "authentication_denied", attributes...)
}
