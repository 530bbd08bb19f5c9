// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package lists

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/rvales/mediary/internal/platform/apperr"
	"github.com/rvales/mediary/internal/platform/dberr"
	"github.com/rvales/mediary/internal/platform/sec"
	"github.com/rvales/mediary/internal/search"
	"github.com/rvales/mediary/pkg/uuidv7"
)

// ErrListNotFound is returned for unknown or private lists the caller
// cannot see.
var ErrListNotFound = apperr.Business(http.StatusNotFound, "ERR_LIST_NOT_FOUND")

// # Service

// Service implements the list business logic.
type Service struct {
	repo   Repository
	engine *search.Engine
	logger *slog.Logger
}

// NewService wires the list service with its dependencies.
func NewService(repo Repository, engine *search.Engine, logger *slog.Logger) *Service {
	return &Service{repo: repo, engine: engine, logger: logger}
}

// Detail bundles a list with its ordered items for single-list reads.
type Detail struct {
	List
	Items []Item `json:"items"`
}

/*
Create persists a new list owned by the caller.

Parameters:
  - context: context.Context
  - ownerID: string
  - name: string
  - visibility: Visibility

Returns:
  - *List: The persisted list
  - error: Persistence failures
*/
func (service *Service) Create(context context.Context, ownerID, name string, visibility Visibility) (*List, error) {
	now := time.Now()
	list := &List{
		ID:         uuidv7.New(),
		OwnerID:    ownerID,
		Name:       name,
		Visibility: visibility,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := service.repo.Create(context, list); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "list_created",
		slog.String("list_id", list.ID),
		slog.String("owner_id", ownerID),
	)
	return list, nil
}

// resolve loads a list readable by the identity. Private lists are
// indistinguishable from missing ones for everyone but their owner.
func (service *Service) resolve(context context.Context, id string, identity *sec.Identity) (*List, error) {
	list, err := service.repo.FindByID(context, id)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, ErrListNotFound
		}
		return nil, err
	}

	if list.Visibility != VisibilityPublic {
		if identity == nil || (identity.UserID != list.OwnerID && !identity.Role.AtLeast(sec.RoleModerator)) {
			return nil, ErrListNotFound
		}
	}
	return list, nil
}

// requireOwned loads a list the identity may mutate.
func (service *Service) requireOwned(context context.Context, id string, identity *sec.Identity) (*List, error) {
	list, err := service.resolve(context, id, identity)
	if err != nil {
		return nil, err
	}
	if identity == nil || (identity.UserID != list.OwnerID && !identity.Role.AtLeast(sec.RoleModerator)) {
		return nil, apperr.Forbidden("You cannot modify this list")
	}
	return list, nil
}

/*
FindOne returns a list with its ordered items.

Parameters:
  - context: context.Context
  - id: string
  - identity: *sec.Identity, nil for anonymous callers

Returns:
  - *Detail: List plus items
  - error: ERR_LIST_NOT_FOUND when missing or invisible
*/
func (service *Service) FindOne(context context.Context, id string, identity *sec.Identity) (*Detail, error) {
	list, err := service.resolve(context, id, identity)
	if err != nil {
		return nil, err
	}

	items, err := service.repo.FindItems(context, id)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Item{}
	}

	return &Detail{List: *list, Items: items}, nil
}

/*
Update renames a list or changes its visibility.

Parameters:
  - context: context.Context
  - id: string
  - identity: *sec.Identity
  - name: *string
  - visibility: *Visibility

Returns:
  - *List: The updated list
  - error: ERR_LIST_NOT_FOUND or FORBIDDEN
*/
func (service *Service) Update(context context.Context, id string, identity *sec.Identity, name *string, visibility *Visibility) (*List, error) {
	list, err := service.requireOwned(context, id, identity)
	if err != nil {
		return nil, err
	}

	if name != nil {
		list.Name = *name
	}
	if visibility != nil {
		list.Visibility = *visibility
	}
	list.UpdatedAt = time.Now()

	if err := service.repo.Update(context, list); err != nil {
		return nil, err
	}
	return list, nil
}

/*
Remove deletes a list and its items.

Parameters:
  - context: context.Context
  - id: string
  - identity: *sec.Identity

Returns:
  - error: ERR_LIST_NOT_FOUND or FORBIDDEN
*/
func (service *Service) Remove(context context.Context, id string, identity *sec.Identity) error {
	if _, err := service.requireOwned(context, id, identity); err != nil {
		return err
	}
	return service.repo.Delete(context, id)
}

/*
AddItem appends a media entry to a list the caller owns.

Parameters:
  - context: context.Context
  - listID: string
  - identity: *sec.Identity
  - mediaID: string

Returns:
  - *Item: The persisted item
  - error: ERR_LIST_NOT_FOUND, FORBIDDEN, or CONFLICT for duplicates
*/
func (service *Service) AddItem(context context.Context, listID string, identity *sec.Identity, mediaID string) (*Item, error) {
	if _, err := service.requireOwned(context, listID, identity); err != nil {
		return nil, err
	}

	position, err := service.repo.NextItemPosition(context, listID)
	if err != nil {
		return nil, err
	}

	item := &Item{
		ID:        uuidv7.New(),
		ListID:    listID,
		MediaID:   mediaID,
		Position:  position,
		CreatedAt: time.Now(),
	}

	if err := service.repo.AddItem(context, item); err != nil {
		return nil, err
	}
	return item, nil
}

/*
RemoveItem deletes one item from a list the caller owns.

Parameters:
  - context: context.Context
  - listID: string
  - identity: *sec.Identity
  - itemID: string

Returns:
  - error: ERR_LIST_NOT_FOUND, FORBIDDEN, or NOT_FOUND for a missing item
*/
func (service *Service) RemoveItem(context context.Context, listID string, identity *sec.Identity, itemID string) error {
	if _, err := service.requireOwned(context, listID, identity); err != nil {
		return err
	}
	return service.repo.RemoveItem(context, listID, itemID)
}

/*
ListOwned serves the caller's own lists with the standard query grammar.

Parameters:
  - context: context.Context
  - ownerID: string
  - raw: Flattened query string parameters

Returns:
  - *search.Result[List]: Paginated envelope
  - error: Malformed filter or persistence failures
*/
func (service *Service) ListOwned(context context.Context, ownerID string, raw map[string]string) (*search.Result[List], error) {
	return search.List(context, service.engine, service.repo, raw, search.Config[List]{
		Origin:      "lists_owned",
		Searchable:  searchableFields,
		SortFields:  sortFields,
		Merge:       search.Where(search.Eq("ownerid", ownerID)),
		CursorValue: func(list List) string { return list.ID },
	})
}
