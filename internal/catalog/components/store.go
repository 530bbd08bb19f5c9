// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package components

import (
	"context"

	"github.com/rvales/mediary/internal/search"
)

// # Component Data Access

// Repository defines the data access contract for components.
type Repository interface {

	/*
		FindByID returns the component with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Component: Hydrated entity
		  - error: dberr.ErrNotFound when no row exists
	*/
	FindByID(context context.Context, id string) (*Component, error)

	/*
		Create persists a new component.

		Parameters:
		  - context: context.Context
		  - component: *Component

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, component *Component) error

	/*
		Update persists changes to a component.

		Parameters:
		  - context: context.Context
		  - component: *Component

		Returns:
		  - error: dberr.ErrNotFound when no row exists
	*/
	Update(context context.Context, component *Component) error

	/*
		Delete removes a component.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: dberr.ErrNotFound when no row exists
	*/
	Delete(context context.Context, id string) error

	/*
		NextPosition returns the next ordering slot inside a media entry,
		starting at 1 for an entry with no components.

		Parameters:
		  - context: context.Context
		  - mediaID: string

		Returns:
		  - int: Next position
		  - error: Database retrieval failures
	*/
	NextPosition(context context.Context, mediaID string) (int, error)

	// Listing capability, always scoped to a parent entry.
	search.Repository[Component]
}
