// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package saves

import (
	"context"
	"log/slog"
	"time"

	"github.com/rvales/mediary/internal/search"
	"github.com/rvales/mediary/pkg/uuidv7"
)

// # Service

// Service implements the bookmark business logic.
type Service struct {
	repo   Repository
	engine *search.Engine
	logger *slog.Logger
}

// NewService wires the save service with its dependencies.
func NewService(repo Repository, engine *search.Engine, logger *slog.Logger) *Service {
	return &Service{repo: repo, engine: engine, logger: logger}
}

/*
Create bookmarks a media entry for the user.

Parameters:
  - context: context.Context
  - userID: string
  - mediaID: string

Returns:
  - *Save: The persisted bookmark
  - error: CONFLICT when the media is already saved
*/
func (service *Service) Create(context context.Context, userID, mediaID string) (*Save, error) {
	save := &Save{
		ID:        uuidv7.New(),
		UserID:    userID,
		MediaID:   mediaID,
		CreatedAt: time.Now(),
	}

	if err := service.repo.Create(context, save); err != nil {
		return nil, err
	}
	return save, nil
}

/*
Remove deletes the user's bookmark of a media entry.

Parameters:
  - context: context.Context
  - userID: string
  - mediaID: string

Returns:
  - error: NOT_FOUND when nothing was saved
*/
func (service *Service) Remove(context context.Context, userID, mediaID string) error {
	return service.repo.Delete(context, userID, mediaID)
}

/*
List serves the user's bookmarks with the standard query grammar.

Parameters:
  - context: context.Context
  - userID: string
  - raw: Flattened query string parameters

Returns:
  - *search.Result[Save]: Paginated envelope
  - error: Malformed filter or persistence failures
*/
func (service *Service) List(context context.Context, userID string, raw map[string]string) (*search.Result[Save], error) {
	return search.List(context, service.engine, service.repo, raw, search.Config[Save]{
		Origin:      "saves",
		Searchable:  searchableFields,
		SortFields:  sortFields,
		Merge:       search.Where(search.Eq("userid", userID)),
		CursorValue: func(save Save) string { return save.ID },
	})
}
