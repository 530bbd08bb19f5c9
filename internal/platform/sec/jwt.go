// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT signing, TOTP)
// from the domain logic. It acts as an Infrastructure service injected into
// the Application layer via small interfaces.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the payload embedded inside a session token.
//
// The token intentionally carries NO role or profile data. It only proves
// "user <sub> holds session <jti>"; everything else is resolved against the
// session store on each request so that revocation takes effect immediately
// once the cache entry is gone.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// UserID returns the token subject.
func (c *SessionClaims) UserID() string { return c.Subject }

// SessionID returns the token jti.
func (c *SessionClaims) SessionID() string { return c.ID }

// TokenService signs and verifies session tokens using HMAC-SHA256.
type TokenService struct {
	secret   []byte
	issuer   string
	lifetime time.Duration
}

// NewTokenService creates a TokenService from a shared signing secret.
//
// # Parameters
//   - secret: The HMAC signing secret. Must not be empty.
//   - issuer: Value of the 'iss' claim on every generated token.
//   - lifetime: Validity period of generated tokens.
func NewTokenService(secret, issuer string, lifetime time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("sec: token signing secret must not be empty")
	}
	if lifetime <= 0 {
		return nil, fmt.Errorf("sec: token lifetime must be positive, got %s", lifetime)
	}

	return &TokenService{
		secret:   []byte(secret),
		issuer:   issuer,
		lifetime: lifetime,
	}, nil
}

// Lifetime returns the configured validity period of generated tokens.
func (service *TokenService) Lifetime() time.Duration {
	return service.lifetime
}

// Generate creates a signed session token binding a user to a session.
//
// Returns the compact token string and the claims it carries, so callers
// can persist the expiry without re-parsing the token.
func (service *TokenService) Generate(userID, sessionID string) (string, *SessionClaims, error) {
	currentTime := time.Now()
	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    service.issuer,
			Subject:   userID,
			ID:        sessionID,
			NotBefore: jwt.NewNumericDate(currentTime),
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(service.lifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, claims, nil
}

// Verify checks the signature and temporal validity of a token string.
//
// A forged, altered, expired, or not-yet-valid token all return an error.
// Callers must not surface the distinction to clients.
func (service *TokenService) Verify(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	}, jwt.WithIssuer(service.issuer))

	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, errors.New("sec: invalid token claims")
	}

	return claims, nil
}

// Decode parses a token WITHOUT verifying its signature or expiry.
//
// # Safety
//
// Only for tokens that are already trusted in context, e.g. extracting the
// session id during logout where the worst a forged token can do is end a
// session the forger could name anyway. Never use for authentication.
func (service *TokenService) Decode(tokenString string) (*SessionClaims, error) {
	parser := jwt.NewParser()
	token, _, err := parser.ParseUnverified(tokenString, &SessionClaims{})
	if err != nil {
		return nil, fmt.Errorf("sec: malformed token: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok {
		return nil, errors.New("sec: invalid token claims")
	}

	return claims, nil
}
