// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package components

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/rvales/mediary/internal/catalog/media"
	"github.com/rvales/mediary/internal/platform/apperr"
	"github.com/rvales/mediary/internal/platform/dberr"
	"github.com/rvales/mediary/internal/platform/sec"
	"github.com/rvales/mediary/internal/search"
	"github.com/rvales/mediary/pkg/uuidv7"
)

// ErrComponentNotFound is returned for unknown components.
var ErrComponentNotFound = apperr.Business(http.StatusNotFound, "ERR_COMPONENT_NOT_FOUND")

// MediaGate authorizes component mutations against the parent entry.
// Satisfied by [*media.Service].
type MediaGate interface {
	FindOne(ctx context.Context, id string, identity *sec.Identity) (*media.Media, error)
	RequireEditable(ctx context.Context, id string, identity *sec.Identity) (*media.Media, error)
}

// # Service

// Service implements the component business logic.
type Service struct {
	repo   Repository
	medias MediaGate
	engine *search.Engine
	logger *slog.Logger
}

// NewService wires the component service with its dependencies.
func NewService(repo Repository, medias MediaGate, engine *search.Engine, logger *slog.Logger) *Service {
	return &Service{repo: repo, medias: medias, engine: engine, logger: logger}
}

// CreateInput carries the fields accepted when adding a component.
//
// A nil Position appends at the end of the parent entry.
type CreateInput struct {
	Name        string
	Position    *int
	Kind        Kind
	Duration    int
	PublishedAt *time.Time
}

// UpdateInput carries partial component changes. Nil fields are left untouched.
type UpdateInput struct {
	Name        *string
	Position    *int
	Kind        *Kind
	Duration    *int
	PublishedAt *time.Time
}

/*
Create adds a component to an entry the caller controls.

Parameters:
  - context: context.Context
  - mediaID: string
  - identity: *sec.Identity
  - input: CreateInput

Returns:
  - *Component: The persisted component
  - error: ERR_MEDIA_NOT_FOUND or FORBIDDEN when the parent is not editable
*/
func (service *Service) Create(context context.Context, mediaID string, identity *sec.Identity, input CreateInput) (*Component, error) {
	if _, err := service.medias.RequireEditable(context, mediaID, identity); err != nil {
		return nil, err
	}

	position := 0
	if input.Position != nil {
		position = *input.Position
	} else {
		next, err := service.repo.NextPosition(context, mediaID)
		if err != nil {
			return nil, err
		}
		position = next
	}

	now := time.Now()
	component := &Component{
		ID:          uuidv7.New(),
		MediaID:     mediaID,
		Name:        input.Name,
		Position:    position,
		Kind:        input.Kind,
		Duration:    input.Duration,
		PublishedAt: input.PublishedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := service.repo.Create(context, component); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "component_created",
		slog.String("component_id", component.ID),
		slog.String("media_id", mediaID),
	)
	return component, nil
}

/*
FindOne returns a component whose parent entry is visible to the caller.

Parameters:
  - context: context.Context
  - id: string
  - identity: *sec.Identity, nil for anonymous callers

Returns:
  - *Component: Hydrated component
  - error: ERR_COMPONENT_NOT_FOUND or ERR_MEDIA_NOT_FOUND
*/
func (service *Service) FindOne(context context.Context, id string, identity *sec.Identity) (*Component, error) {
	component, err := service.repo.FindByID(context, id)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, ErrComponentNotFound
		}
		return nil, err
	}

	// Parent visibility governs the component.
	if _, err := service.medias.FindOne(context, component.MediaID, identity); err != nil {
		return nil, ErrComponentNotFound
	}
	return component, nil
}

/*
Update applies partial changes to a component of an entry the caller
controls.

Parameters:
  - context: context.Context
  - id: string
  - identity: *sec.Identity
  - input: UpdateInput

Returns:
  - *Component: The updated component
  - error: ERR_COMPONENT_NOT_FOUND or FORBIDDEN
*/
func (service *Service) Update(context context.Context, id string, identity *sec.Identity, input UpdateInput) (*Component, error) {
	component, err := service.FindOne(context, id, identity)
	if err != nil {
		return nil, err
	}
	if _, err := service.medias.RequireEditable(context, component.MediaID, identity); err != nil {
		return nil, err
	}

	if input.Name != nil {
		component.Name = *input.Name
	}
	if input.Position != nil {
		component.Position = *input.Position
	}
	if input.Kind != nil {
		component.Kind = *input.Kind
	}
	if input.Duration != nil {
		component.Duration = *input.Duration
	}
	if input.PublishedAt != nil {
		component.PublishedAt = input.PublishedAt
	}
	component.UpdatedAt = time.Now()

	if err := service.repo.Update(context, component); err != nil {
		return nil, err
	}
	return component, nil
}

/*
Remove deletes a component of an entry the caller controls.

Parameters:
  - context: context.Context
  - id: string
  - identity: *sec.Identity

Returns:
  - error: ERR_COMPONENT_NOT_FOUND or FORBIDDEN
*/
func (service *Service) Remove(context context.Context, id string, identity *sec.Identity) error {
	component, err := service.FindOne(context, id, identity)
	if err != nil {
		return err
	}
	if _, err := service.medias.RequireEditable(context, component.MediaID, identity); err != nil {
		return err
	}

	return service.repo.Delete(context, id)
}

/*
List serves the components of one entry with the standard query grammar.

The parent predicate is merged server-side, so a client filter can narrow
the listing but never escape its entry.

Parameters:
  - context: context.Context
  - mediaID: string
  - identity: *sec.Identity, nil for anonymous callers
  - raw: Flattened query string parameters

Returns:
  - *search.Result[Component]: Paginated envelope
  - error: ERR_MEDIA_NOT_FOUND when the parent is invisible
*/
func (service *Service) List(context context.Context, mediaID string, identity *sec.Identity, raw map[string]string) (*search.Result[Component], error) {
	if _, err := service.medias.FindOne(context, mediaID, identity); err != nil {
		return nil, err
	}

	return search.List(context, service.engine, service.repo, raw, search.Config[Component]{
		Origin:      "components",
		Searchable:  searchableFields,
		SortFields:  sortFields,
		Merge:       search.Where(search.Eq("mediaid", mediaID)),
		CursorValue: func(component Component) string { return component.ID },
	})
}
