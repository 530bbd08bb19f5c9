// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

/*
Package sessions tracks authentication attempts and active sessions.

A session row is written for EVERY login attempt, successful or not, which
makes the table double as an audit log. Only successful rows carry an expiry
and can authenticate requests; ending a session clears its expiry.
*/
package sessions

import (
	"time"

	"github.com/rvales/mediary/internal/platform/sec"
	"github.com/rvales/mediary/internal/search"
)

// Session is one authentication attempt.
//
// Error is nil on success and carries the rejection code otherwise.
// ExpiredAt is nil for failed attempts; ending a session forces its expiry
// into the past. An active session is one whose expiry lies in the future.
type Session struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Success   bool       `json:"success"`
	Error     *string    `json:"error"`
	IPAddress string     `json:"ipAddress"`
	UserAgent string     `json:"userAgent"`
	Number    int        `json:"number"`
	ExpiredAt *time.Time `json:"expiredAt"`
	CreatedAt time.Time  `json:"createdAt"`
}

// IsActive reports whether the session can still authenticate requests.
func (s *Session) IsActive() bool {
	return s.Success && s.ExpiredAt != nil && s.ExpiredAt.After(time.Now())
}

// CachedEntry is the projection stored by the auth guard so the hot path
// can skip the database. Its TTL always matches the session expiry.
type CachedEntry struct {
	SessionID string       `json:"sessionId"`
	UserID    string       `json:"userId"`
	UserRole  sec.UserRole `json:"userRole"`
	ExpiredAt time.Time    `json:"expiredAt"`
}

// # Listing Surface

// searchableFields is the admin listing registry for sessions.
var searchableFields = search.Fields{
	"userid":    search.TypeString,
	"success":   search.TypeBoolean,
	"error":     search.TypeString,
	"ipaddress": search.TypeString,
	"number":    search.TypeNumber,
	"createdat": search.TypeDate,
}

// sortFields whitelists orderBy targets for the admin listing.
var sortFields = []string{"createdat", "number"}
