// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rvales/mediary/internal/platform/sec"
)

const testSecret = "unit-test-signing-secret"

/*
TestTokenService_New validates the constructor guards.
*/
func TestTokenService_New(t *testing.T) {
	tests := []struct {
		name     string
		secret   string
		lifetime time.Duration
		wantErr  bool
	}{
		{"valid", testSecret, time.Hour, false},
		{"empty_secret", "", time.Hour, true},
		{"zero_lifetime", testSecret, 0, true},
		{"negative_lifetime", testSecret, -time.Minute, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, err := sec.NewTokenService(tt.secret, "mediary.app", tt.lifetime)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, service)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.lifetime, service.Lifetime())
			}
		})
	}
}

/*
TestTokenService_RoundTrip signs a token and verifies its claims survive.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service, err := sec.NewTokenService(testSecret, "mediary.app", time.Hour)
	require.NoError(t, err)

	token, claims, err := service.Generate("user-1", "session-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// Claims returned by Generate match what the verifier extracts.
	verified, err := service.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", verified.UserID())
	assert.Equal(t, "session-1", verified.SessionID())
	assert.Equal(t, "mediary.app", verified.Issuer)

	// Expiry is lifetime from now, mirrored in both claim sets.
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
	assert.Equal(t, claims.ExpiresAt.Time.Unix(), verified.ExpiresAt.Time.Unix())
}

/*
TestTokenService_Verify_Rejections covers forged and foreign tokens.
*/
func TestTokenService_Verify_Rejections(t *testing.T) {
	service, err := sec.NewTokenService(testSecret, "mediary.app", time.Hour)
	require.NoError(t, err)

	foreign, err := sec.NewTokenService("some-other-secret", "mediary.app", time.Hour)
	require.NoError(t, err)

	wrongIssuer, err := sec.NewTokenService(testSecret, "other.app", time.Hour)
	require.NoError(t, err)

	forgedToken, _, err := foreign.Generate("user-1", "session-1")
	require.NoError(t, err)

	foreignIssuerToken, _, err := wrongIssuer.Generate("user-1", "session-1")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not.a.token"},
		{"empty", ""},
		{"wrong_secret", forgedToken},
		{"wrong_issuer", foreignIssuerToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.Verify(tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

/*
TestTokenService_Decode extracts claims without trusting the signature.

Logout relies on this: it must read the session id even when the caller
presents a token signed with a key we no longer use.
*/
func TestTokenService_Decode(t *testing.T) {
	service, err := sec.NewTokenService(testSecret, "mediary.app", time.Hour)
	require.NoError(t, err)

	foreign, err := sec.NewTokenService("rotated-away-secret", "mediary.app", time.Hour)
	require.NoError(t, err)

	token, _, err := foreign.Generate("user-9", "session-9")
	require.NoError(t, err)

	// Verify rejects it, Decode still reads it.
	_, err = service.Verify(token)
	assert.Error(t, err)

	claims, err := service.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "user-9", claims.UserID())
	assert.Equal(t, "session-9", claims.SessionID())

	// Structurally broken input still fails.
	_, err = service.Decode("???")
	assert.Error(t, err)
}
