// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package users_test

import (
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rvales/mediary/internal/users"
)

/*
TestTotpEngine_Generate provisions a secret and checks the otpauth URI.
*/
func TestTotpEngine_Generate(t *testing.T) {
	engine := users.NewTotpEngine("Mediary")

	secret, uri, err := engine.Generate("rafa@mediary.app")
	require.NoError(t, err)

	assert.NotEmpty(t, secret)
	assert.Contains(t, uri, "otpauth://totp/")
	assert.Contains(t, uri, "Mediary")
	assert.Contains(t, uri, "secret="+secret)
}

/*
TestTotpEngine_Validate accepts codes from the current and adjacent time
steps and rejects everything else.
*/
func TestTotpEngine_Validate(t *testing.T) {
	engine := users.NewTotpEngine("Mediary")

	secret, _, err := engine.Generate("rafa@mediary.app")
	require.NoError(t, err)

	// 1. Current code passes.
	current, err := totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)
	assert.True(t, engine.Validate(current, secret))

	// 2. The previous step is inside the allowed clock skew.
	previous, err := totp.GenerateCode(secret, time.Now().Add(-30*time.Second))
	require.NoError(t, err)
	assert.True(t, engine.Validate(previous, secret))

	// 3. A long stale code is rejected.
	stale, err := totp.GenerateCode(secret, time.Now().Add(-10*time.Minute))
	require.NoError(t, err)
	assert.False(t, engine.Validate(stale, secret))

	// 4. Garbage input never validates.
	assert.False(t, engine.Validate("", secret))
	assert.False(t, engine.Validate("abcdef", secret))
	assert.False(t, engine.Validate(current, ""))
}
