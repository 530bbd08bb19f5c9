// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rvales/mediary/internal/auth"
	"github.com/rvales/mediary/internal/platform/apperr"
	"github.com/rvales/mediary/internal/platform/constants"
	"github.com/rvales/mediary/internal/platform/sec"
	"github.com/rvales/mediary/internal/sessions"
	"github.com/rvales/mediary/internal/users"
)

// # Test Doubles

type stubVerifier struct {
	claims *sec.SessionClaims
	err    error
}

func (s *stubVerifier) Verify(string) (*sec.SessionClaims, error) {
	return s.claims, s.err
}

type stubSessionFinder struct {
	session *sessions.Session
	err     error
	calls   int
}

func (s *stubSessionFinder) FindActive(_ context.Context, _, _ string) (*sessions.Session, error) {
	s.calls++
	return s.session, s.err
}

type stubUserFinder struct {
	user *users.User
	err  error
}

func (s *stubUserFinder) FindOne(_ context.Context, _ string) (*users.User, error) {
	return s.user, s.err
}

// memoryStore is an in-memory cache.Store, JSON encoded like the real one.
type memoryStore struct {
	values map[string][]byte
	ttls   map[string]time.Duration
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memoryStore) Get(_ context.Context, origin, key string, target any) (bool, error) {
	raw, ok := m.values[origin+":"+key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, target)
}

func (m *memoryStore) Set(_ context.Context, origin, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.values[origin+":"+key] = raw
	m.ttls[origin+":"+key] = ttl
	return nil
}

func (m *memoryStore) Delete(_ context.Context, origin, key string) error {
	delete(m.values, origin+":"+key)
	return nil
}

func (m *memoryStore) DeleteMany(_ context.Context, origin string, keys []string) error {
	for _, key := range keys {
		delete(m.values, origin+":"+key)
	}
	return nil
}

// # Fixtures

func validClaims(userID, sessionID string) *sec.SessionClaims {
	return &sec.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: userID,
			ID:      sessionID,
		},
	}
}

func activeSession(userID string, remaining time.Duration) *sessions.Session {
	expiredAt := time.Now().Add(remaining)
	return &sessions.Session{
		ID:        "session-1",
		UserID:    userID,
		Success:   true,
		ExpiredAt: &expiredAt,
	}
}

func activeUser(role sec.UserRole) *users.User {
	return &users.User{ID: "user-1", Role: role, Status: users.StatusActive}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func guardCacheKey(userID, sessionID string) string {
	return fmt.Sprintf(constants.SessionCacheKeyFormat, userID, sessionID)
}

/*
TestGuard_Authenticate_Success resolves a fresh token through the session
store and repopulates the cache projection.
*/
func TestGuard_Authenticate_Success(t *testing.T) {
	store := newMemoryStore()
	finder := &stubSessionFinder{session: activeSession("user-1", 30*time.Minute)}

	guard := auth.NewGuard(
		&stubVerifier{claims: validClaims("user-1", "session-1")},
		finder,
		&stubUserFinder{user: activeUser(sec.RoleModerator)},
		store,
		testLogger(),
	)

	identity, err := guard.Authenticate(context.Background(), "token")
	require.NoError(t, err)

	assert.Equal(t, "user-1", identity.UserID)
	assert.Equal(t, "session-1", identity.SessionID)
	assert.Equal(t, sec.RoleModerator, identity.Role)
	assert.Equal(t, 1, finder.calls)

	// The projection was written with the session's remaining lifetime.
	cacheKey := constants.CacheOriginAuthGuard + ":" + guardCacheKey("user-1", "session-1")
	ttl, ok := store.ttls[cacheKey]
	require.True(t, ok)
	assert.InDelta(t, (30 * time.Minute).Seconds(), ttl.Seconds(), 5)
}

/*
TestGuard_Authenticate_CacheFastPath serves repeat requests from the cache
without touching the session store.
*/
func TestGuard_Authenticate_CacheFastPath(t *testing.T) {
	store := newMemoryStore()
	entry := sessions.CachedEntry{
		SessionID: "session-1",
		UserID:    "user-1",
		UserRole:  sec.RoleMember,
		ExpiredAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, store.Set(context.Background(), constants.CacheOriginAuthGuard,
		guardCacheKey("user-1", "session-1"), entry, time.Hour))

	// The session store errors on purpose: reaching it fails the test.
	finder := &stubSessionFinder{err: errors.New("must not be called")}

	guard := auth.NewGuard(
		&stubVerifier{claims: validClaims("user-1", "session-1")},
		finder,
		&stubUserFinder{err: errors.New("must not be called")},
		store,
		testLogger(),
	)

	identity, err := guard.Authenticate(context.Background(), "token")
	require.NoError(t, err)

	assert.Equal(t, sec.RoleMember, identity.Role)
	assert.Zero(t, finder.calls)
}

/*
TestGuard_Authenticate_StaleCacheFallsThrough ignores an expired cache
entry and resolves against the authoritative store instead.
*/
func TestGuard_Authenticate_StaleCacheFallsThrough(t *testing.T) {
	store := newMemoryStore()
	stale := sessions.CachedEntry{
		SessionID: "session-1",
		UserID:    "user-1",
		UserRole:  sec.RoleMember,
		ExpiredAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, store.Set(context.Background(), constants.CacheOriginAuthGuard,
		guardCacheKey("user-1", "session-1"), stale, time.Hour))

	finder := &stubSessionFinder{session: activeSession("user-1", time.Hour)}

	guard := auth.NewGuard(
		&stubVerifier{claims: validClaims("user-1", "session-1")},
		finder,
		&stubUserFinder{user: activeUser(sec.RoleMember)},
		store,
		testLogger(),
	)

	_, err := guard.Authenticate(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, 1, finder.calls)
}

/*
TestGuard_Authenticate_Denials proves every failure mode collapses into the
same generic unauthorized error.
*/
func TestGuard_Authenticate_Denials(t *testing.T) {
	tests := []struct {
		name     string
		verifier auth.TokenVerifier
		sessions auth.SessionFinder
		users    auth.UserFinder
	}{
		{
			name:     "rejected_token",
			verifier: &stubVerifier{err: errors.New("bad signature")},
			sessions: &stubSessionFinder{},
			users:    &stubUserFinder{},
		},
		{
			name:     "missing_claims",
			verifier: &stubVerifier{claims: validClaims("", "")},
			sessions: &stubSessionFinder{},
			users:    &stubUserFinder{},
		},
		{
			name:     "no_active_session",
			verifier: &stubVerifier{claims: validClaims("user-1", "session-1")},
			sessions: &stubSessionFinder{err: errors.New("not found")},
			users:    &stubUserFinder{},
		},
		{
			name:     "suspended_account",
			verifier: &stubVerifier{claims: validClaims("user-1", "session-1")},
			sessions: &stubSessionFinder{session: activeSession("user-1", time.Hour)},
			users:    &stubUserFinder{user: &users.User{ID: "user-1", Status: users.StatusSuspended}},
		},
		{
			name:     "session_past_expiry",
			verifier: &stubVerifier{claims: validClaims("user-1", "session-1")},
			sessions: &stubSessionFinder{session: activeSession("user-1", -time.Minute)},
			users:    &stubUserFinder{user: activeUser(sec.RoleMember)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guard := auth.NewGuard(tt.verifier, tt.sessions, tt.users, newMemoryStore(), testLogger())

			identity, err := guard.Authenticate(context.Background(), "token")
			require.Error(t, err)
			assert.Nil(t, identity)

			// Same opaque response for every reason.
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "UNAUTHORIZED", ae.Code)
			assert.Equal(t, "Invalid or expired token", ae.Message)
		})
	}
}

/*
TestGuard_Authenticate_RevocationAfterEviction shows that once the cache
entry is gone a revoked session cannot authenticate, even though it could
moments before.
*/
func TestGuard_Authenticate_RevocationAfterEviction(t *testing.T) {
	store := newMemoryStore()
	finder := &stubSessionFinder{session: activeSession("user-1", time.Hour)}

	guard := auth.NewGuard(
		&stubVerifier{claims: validClaims("user-1", "session-1")},
		finder,
		&stubUserFinder{user: activeUser(sec.RoleMember)},
		store,
		testLogger(),
	)

	// 1. First request succeeds and warms the cache.
	_, err := guard.Authenticate(context.Background(), "token")
	require.NoError(t, err)

	// 2. Revocation: row gone, cache evicted.
	finder.session = nil
	finder.err = errors.New("not found")
	require.NoError(t, store.DeleteMany(context.Background(), constants.CacheOriginAuthGuard,
		[]string{guardCacheKey("user-1", "session-1")}))

	// 3. Next request is denied.
	_, err = guard.Authenticate(context.Background(), "token")
	assert.Error(t, err)
}
