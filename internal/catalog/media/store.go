// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package media

import (
	"context"

	"github.com/rvales/mediary/internal/search"
)

// # Media Data Access

// Repository defines the data access contract for catalog entries.
type Repository interface {

	/*
		FindByID returns the entry with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Media: Hydrated entity
		  - error: dberr.ErrNotFound when no row exists
	*/
	FindByID(context context.Context, id string) (*Media, error)

	/*
		FindBySlug returns the entry with the given slug.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - *Media: Hydrated entity
		  - error: dberr.ErrNotFound when no row exists
	*/
	FindBySlug(context context.Context, slug string) (*Media, error)

	/*
		SlugExists reports whether any entry already uses the slug.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - bool: Whether the slug is taken
		  - error: Database retrieval failures
	*/
	SlugExists(context context.Context, slug string) (bool, error)

	/*
		Create persists a new catalog entry.

		Parameters:
		  - context: context.Context
		  - media: *Media

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, media *Media) error

	/*
		Update persists changes to a catalog entry.

		Parameters:
		  - context: context.Context
		  - media: *Media

		Returns:
		  - error: dberr.ErrNotFound when no row exists
	*/
	Update(context context.Context, media *Media) error

	/*
		Delete removes a catalog entry and cascades to its components.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: dberr.ErrNotFound when no row exists
	*/
	Delete(context context.Context, id string) error

	// Listing capability for the catalog surface.
	search.Repository[Media]
}
