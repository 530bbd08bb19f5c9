// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package verifications

import (
	"context"

	"github.com/rvales/mediary/internal/search"
)

// # Verification Data Access

// Repository defines the data access contract for verification codes.
type Repository interface {

	/*
		Create persists a fresh verification code.

		Parameters:
		  - context: context.Context
		  - verification: *Verification

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, verification *Verification) error

	/*
		FindLatest returns the most recent code of the given type for a user.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - kind: Type

		Returns:
		  - *Verification: Hydrated entity
		  - error: dberr.ErrNotFound when no code is pending
	*/
	FindLatest(context context.Context, userID string, kind Type) (*Verification, error)

	/*
		Delete removes a verification row. Deleting a missing row is not
		an error.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, id string) error

	/*
		DeleteByType removes every pending code of the given type for a
		user, used when issuing a replacement.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - kind: Type

		Returns:
		  - error: Persistence failures
	*/
	DeleteByType(context context.Context, userID string, kind Type) error

	// Listing capability for the admin surface.
	search.Repository[Verification]
}
