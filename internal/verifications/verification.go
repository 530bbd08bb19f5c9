// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

/*
Package verifications issues and consumes short-lived confirmation codes.

A code proves control of an email address or phone number, or authorizes a
password recovery. Codes are single use: consuming one deletes the row, and
issuing a new code replaces any pending code of the same type.
*/
package verifications

import (
	"time"

	"github.com/rvales/mediary/internal/search"
)

// Type discriminates what a verification code confirms.
type Type string

const (
	TypeEmail    Type = "EMAIL"
	TypePhone    Type = "PHONE"
	TypePassword Type = "PASSWORD"
)

// Verification is one pending confirmation code.
//
// Value holds the contact being confirmed (the email or phone number) so a
// user can change their address while a code is still pending without the
// old code confirming the new address.
type Verification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Type      Type      `json:"type"`
	Value     string    `json:"value"`
	Code      string    `json:"-"`
	ExpiredAt time.Time `json:"expiredAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsExpired reports whether the code can no longer be consumed.
func (v *Verification) IsExpired() bool {
	return time.Now().After(v.ExpiredAt)
}

// # Listing Surface

// searchableFields is the admin listing registry for verifications.
var searchableFields = search.Fields{
	"userid":    search.TypeString,
	"type":      search.TypeString,
	"value":     search.TypeString,
	"createdat": search.TypeDate,
}

// sortFields whitelists orderBy targets for the admin listing.
var sortFields = []string{"createdat"}
