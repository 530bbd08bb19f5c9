// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package lists

import (
	"context"

	"github.com/rvales/mediary/internal/search"
)

// # List Data Access

// Repository defines the data access contract for lists and their items.
type Repository interface {

	/*
		FindByID returns the list with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *List: Hydrated entity
		  - error: dberr.ErrNotFound when no row exists
	*/
	FindByID(context context.Context, id string) (*List, error)

	/*
		Create persists a new list.

		Parameters:
		  - context: context.Context
		  - list: *List

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, list *List) error

	/*
		Update persists changes to a list.

		Parameters:
		  - context: context.Context
		  - list: *List

		Returns:
		  - error: dberr.ErrNotFound when no row exists
	*/
	Update(context context.Context, list *List) error

	/*
		Delete removes a list and its items.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: dberr.ErrNotFound when no row exists
	*/
	Delete(context context.Context, id string) error

	/*
		FindItems returns the items of a list ordered by position.

		Parameters:
		  - context: context.Context
		  - listID: string

		Returns:
		  - []Item: Ordered items, empty when the list is empty
		  - error: Database retrieval failures
	*/
	FindItems(context context.Context, listID string) ([]Item, error)

	/*
		AddItem persists a new list item.

		Parameters:
		  - context: context.Context
		  - item: *Item

		Returns:
		  - error: Persistence failures, Conflict for duplicate media
	*/
	AddItem(context context.Context, item *Item) error

	/*
		RemoveItem deletes one item from a list.

		Parameters:
		  - context: context.Context
		  - listID: string
		  - itemID: string

		Returns:
		  - error: dberr.ErrNotFound when no row matches
	*/
	RemoveItem(context context.Context, listID, itemID string) error

	/*
		NextItemPosition returns the next ordering slot in a list,
		starting at 1 for an empty list.

		Parameters:
		  - context: context.Context
		  - listID: string

		Returns:
		  - int: Next position
		  - error: Database retrieval failures
	*/
	NextItemPosition(context context.Context, listID string) (int, error)

	// Listing capability for the owner surface.
	search.Repository[List]
}
