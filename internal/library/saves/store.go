// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package saves

import (
	"context"

	"github.com/rvales/mediary/internal/search"
)

// # Save Data Access

// Repository defines the data access contract for bookmarks.
type Repository interface {

	/*
		Create persists a new bookmark.

		Parameters:
		  - context: context.Context
		  - save: *Save

		Returns:
		  - error: Conflict when the media is already saved
	*/
	Create(context context.Context, save *Save) error

	/*
		Delete removes the user's bookmark of a media entry.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - mediaID: string

		Returns:
		  - error: dberr.ErrNotFound when no row matches
	*/
	Delete(context context.Context, userID, mediaID string) error

	// Listing capability, always scoped to a user.
	search.Repository[Save]
}
