// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package comments

import (
	"context"

	"github.com/rvales/mediary/internal/search"
)

// # Comment Data Access

// Repository defines the data access contract for comments.
type Repository interface {

	/*
		FindByID returns the comment with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Comment: Hydrated entity
		  - error: dberr.ErrNotFound when no row exists
	*/
	FindByID(context context.Context, id string) (*Comment, error)

	/*
		Create persists a new comment.

		Parameters:
		  - context: context.Context
		  - comment: *Comment

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, comment *Comment) error

	/*
		Update persists an edited body and stamps the edit time.

		Parameters:
		  - context: context.Context
		  - comment: *Comment

		Returns:
		  - error: dberr.ErrNotFound when no row exists
	*/
	Update(context context.Context, comment *Comment) error

	/*
		Delete removes a comment.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: dberr.ErrNotFound when no row exists
	*/
	Delete(context context.Context, id string) error

	// Listing capability, always scoped to a media entry.
	search.Repository[Comment]
}
