// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package users

import (
	"time"

	"github.com/rvales/mediary/internal/platform/sec"
	"github.com/rvales/mediary/internal/search"
)

// # Entity Definitions

// Status is the lifecycle state of an account.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusSuspended Status = "SUSPENDED"
	StatusDeleted   Status = "DELETED"
)

// User is the account aggregate.
//
// Password holds the bcrypt hash, never plain text. TotpSecret is the MFA
// shared secret; it exists before MFA is enabled (generated but unconfirmed)
// and is cleared on disable.
type User struct {
	ID            string       `json:"id"`
	Email         string       `json:"email"`
	Phone         string       `json:"phone"`
	Name          string       `json:"name"`
	Password      string       `json:"-"`
	Role          sec.UserRole `json:"role"`
	Status        Status       `json:"status"`
	TotpSecret    string       `json:"-"`
	TotpEnabled   bool         `json:"totpEnabled"`
	EmailVerified bool         `json:"emailVerified"`
	PhoneVerified bool         `json:"phoneVerified"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// IsActive reports whether the account may authenticate.
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// # Field Identifiers

const (
	FieldEmail    = "email"
	FieldPhone    = "phone"
	FieldName     = "name"
	FieldPassword = "password"
	FieldRole     = "role"
	FieldStatus   = "status"
	FieldTotp     = "totp"
)

// # Listing Surface

// searchableFields is the admin listing registry for accounts.
var searchableFields = search.Fields{
	"email":       search.TypeString,
	"phone":       search.TypeString,
	"name":        search.TypeString,
	"role":        search.TypeString,
	"status":      search.TypeString,
	"totpenabled": search.TypeBoolean,
	"createdat":   search.TypeDate,
}

// sortFields whitelists orderBy targets for the admin listing.
var sortFields = []string{"email", "name", "createdat"}
