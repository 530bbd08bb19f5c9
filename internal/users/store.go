// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package users

import (
	"context"

	"github.com/rvales/mediary/internal/search"
)

// # User Data Access

// Repository defines the data access contract for user accounts.
type Repository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given email (lowercase match).

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new user account to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		Update persists changes to mutable account fields.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures
	*/
	Update(context context.Context, user *User) error

	/*
		UpdateTotp replaces the account's MFA secret and enabled flag.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - secret: string
		  - enabled: bool

		Returns:
		  - error: Persistence failures
	*/
	UpdateTotp(context context.Context, userID, secret string, enabled bool) error

	/*
		SoftDelete marks the account as DELETED without removing the row.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Persistence failures
	*/
	SoftDelete(context context.Context, id string) error

	// Listing capability for the admin surface.
	search.Repository[User]
}
