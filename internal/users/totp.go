// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package users

import (
	"net/http"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"github.com/rvales/mediary/internal/platform/apperr"
)

// # MFA Errors

var (
	ErrTotpAlreadyEnabled   = apperr.Business(http.StatusConflict, "ERR_TOTP_ALREADY_ENABLED")
	ErrTotpAlreadyDisabled  = apperr.Business(http.StatusConflict, "ERR_TOTP_ALREADY_DISABLED")
	ErrTotpNotDefined       = apperr.Business(http.StatusBadRequest, "ERR_TOTP_NOT_DEFINED")
	ErrTotpSecretNotCreated = apperr.Business(http.StatusBadRequest, "ERR_TOTP_SECRET_NOT_GENERATED")
	ErrTotpInvalid          = apperr.Business(http.StatusUnauthorized, "ERR_TOTP_INVALID")
	ErrTotpNotProvided      = apperr.Business(http.StatusUnauthorized, "ERR_TOTP_NOT_PROVIDED")
)

// # TOTP Engine

// totpPeriod and totpDigits follow RFC 6238 defaults so codes work with
// any standard authenticator app.
const (
	totpPeriod = 30
	totpDigits = otp.DigitsSix
)

// TotpEngine generates shared secrets and validates one-time codes.
//
// The issuer appears in authenticator apps next to the account email.
type TotpEngine struct {
	issuer string
}

// NewTotpEngine creates a TOTP engine labelled with the given issuer.
func NewTotpEngine(issuer string) *TotpEngine {
	return &TotpEngine{issuer: issuer}
}

/*
Generate produces a fresh shared secret and its provisioning URI.

Parameters:
  - accountName: Label shown in the authenticator app, typically the email.

Returns:
  - string: Base32 shared secret to persist against the account
  - string: otpauth:// provisioning URI for QR rendering
  - error: Secret generation failures
*/
func (engine *TotpEngine) Generate(accountName string) (string, string, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      engine.issuer,
		AccountName: accountName,
		Period:      totpPeriod,
		Digits:      totpDigits,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", "", apperr.Internal(err)
	}

	return key.Secret(), key.URL(), nil
}

/*
Validate checks a one-time code against the shared secret.

A skew of one period is tolerated in both directions to absorb clock
drift between the server and the client device.

Parameters:
  - code: Six digit code typed by the user
  - secret: Base32 shared secret stored for the account

Returns:
  - bool: Whether the code is valid for the current window
*/
func (engine *TotpEngine) Validate(code, secret string) bool {
	if code == "" || secret == "" {
		return false
	}

	valid, err := totp.ValidateCustom(code, secret, time.Now().UTC(), totp.ValidateOpts{
		Period:    totpPeriod,
		Skew:      1,
		Digits:    totpDigits,
		Algorithm: otp.AlgorithmSHA1,
	})
	return err == nil && valid
}
