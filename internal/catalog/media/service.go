// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package media

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rvales/mediary/internal/platform/apperr"
	"github.com/rvales/mediary/internal/platform/sec"
	"github.com/rvales/mediary/internal/search"
	"github.com/rvales/mediary/pkg/slug"
	"github.com/rvales/mediary/pkg/uuidv7"
)

// ErrMediaNotFound is returned for unknown or unpublished entries the
// caller cannot see.
var ErrMediaNotFound = apperr.Business(http.StatusNotFound, "ERR_MEDIA_NOT_FOUND")

// slugAttempts caps the collision suffix search before falling back to a
// unique fragment.
const slugAttempts = 20

// # Service

// Service implements the catalog entry business logic.
type Service struct {
	repo   Repository
	engine *search.Engine
	logger *slog.Logger
}

// NewService wires the media service with its dependencies.
func NewService(repo Repository, engine *search.Engine, logger *slog.Logger) *Service {
	return &Service{repo: repo, engine: engine, logger: logger}
}

// CreateInput carries the fields accepted when creating an entry.
type CreateInput struct {
	Name        string
	Description string
	Type        Type
	Published   bool
	ReleasedAt  *time.Time
}

// UpdateInput carries partial entry changes. Nil fields are left untouched.
type UpdateInput struct {
	Name        *string
	Description *string
	Type        *Type
	Published   *bool
	ReleasedAt  *time.Time
}

// uniqueSlug derives a slug from the name, suffixing on collision.
func (service *Service) uniqueSlug(context context.Context, name string) (string, error) {
	base := slug.From(name)
	if base == "" {
		base = "entry"
	}

	candidate := base
	for attempt := 2; attempt <= slugAttempts; attempt++ {
		taken, err := service.repo.SlugExists(context, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, attempt)
	}

	// Heavily contested name, a UUID fragment is always free.
	return fmt.Sprintf("%s-%s", base, uuidv7.New()[:8]), nil
}

/*
Create persists a new catalog entry owned by the caller.

Parameters:
  - context: context.Context
  - ownerID: string
  - input: CreateInput

Returns:
  - *Media: The persisted entry with its generated slug
  - error: Persistence failures
*/
func (service *Service) Create(context context.Context, ownerID string, input CreateInput) (*Media, error) {
	entrySlug, err := service.uniqueSlug(context, input.Name)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	media := &Media{
		ID:          uuidv7.New(),
		OwnerID:     ownerID,
		Name:        input.Name,
		Slug:        entrySlug,
		Description: input.Description,
		Type:        input.Type,
		Published:   input.Published,
		ReleasedAt:  input.ReleasedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := service.repo.Create(context, media); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "media_created",
		slog.String("media_id", media.ID),
		slog.String("slug", media.Slug),
	)
	return media, nil
}

/*
FindOne returns an entry visible to the caller.

Unpublished entries only exist for their owner and for moderators; for
everyone else the entry is indistinguishable from a missing one.

Parameters:
  - context: context.Context
  - id: string
  - identity: *sec.Identity, nil for anonymous callers

Returns:
  - *Media: Hydrated entry
  - error: ERR_MEDIA_NOT_FOUND when missing or invisible
*/
func (service *Service) FindOne(context context.Context, id string, identity *sec.Identity) (*Media, error) {
	media, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, ErrMediaNotFound
	}
	if !service.visible(media, identity) {
		return nil, ErrMediaNotFound
	}
	return media, nil
}

// FindBySlug returns an entry by its public slug, with the same
// visibility rules as [Service.FindOne].
func (service *Service) FindBySlug(context context.Context, entrySlug string, identity *sec.Identity) (*Media, error) {
	media, err := service.repo.FindBySlug(context, entrySlug)
	if err != nil {
		return nil, ErrMediaNotFound
	}
	if !service.visible(media, identity) {
		return nil, ErrMediaNotFound
	}
	return media, nil
}

// visible reports whether the identity may see the entry.
func (service *Service) visible(media *Media, identity *sec.Identity) bool {
	if media.Published {
		return true
	}
	if identity == nil {
		return false
	}
	return identity.UserID == media.OwnerID || identity.Role.AtLeast(sec.RoleModerator)
}

// editable reports whether the identity may mutate the entry.
func editable(media *Media, identity *sec.Identity) bool {
	return identity != nil && (identity.UserID == media.OwnerID || identity.Role.AtLeast(sec.RoleModerator))
}

/*
RequireEditable returns the entry only when the identity may mutate it.

Component management goes through this gate so a part can never be
attached to an entry its caller does not control.

Parameters:
  - context: context.Context
  - id: string
  - identity: *sec.Identity

Returns:
  - *Media: Hydrated entry
  - error: ERR_MEDIA_NOT_FOUND or FORBIDDEN
*/
func (service *Service) RequireEditable(context context.Context, id string, identity *sec.Identity) (*Media, error) {
	media, err := service.FindOne(context, id, identity)
	if err != nil {
		return nil, err
	}
	if !editable(media, identity) {
		return nil, apperr.Forbidden("You cannot modify this entry")
	}
	return media, nil
}

/*
Update applies partial changes to an entry the caller owns or moderates.

Parameters:
  - context: context.Context
  - id: string
  - identity: *sec.Identity
  - input: UpdateInput

Returns:
  - *Media: The updated entry
  - error: ERR_MEDIA_NOT_FOUND or FORBIDDEN
*/
func (service *Service) Update(context context.Context, id string, identity *sec.Identity, input UpdateInput) (*Media, error) {
	media, err := service.RequireEditable(context, id, identity)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		media.Name = *input.Name
	}
	if input.Description != nil {
		media.Description = *input.Description
	}
	if input.Type != nil {
		media.Type = *input.Type
	}
	if input.Published != nil {
		media.Published = *input.Published
	}
	if input.ReleasedAt != nil {
		media.ReleasedAt = input.ReleasedAt
	}
	media.UpdatedAt = time.Now()

	if err := service.repo.Update(context, media); err != nil {
		return nil, err
	}
	return media, nil
}

/*
Remove deletes an entry the caller owns or moderates, cascading to its
components.

Parameters:
  - context: context.Context
  - id: string
  - identity: *sec.Identity

Returns:
  - error: ERR_MEDIA_NOT_FOUND or FORBIDDEN
*/
func (service *Service) Remove(context context.Context, id string, identity *sec.Identity) error {
	if _, err := service.RequireEditable(context, id, identity); err != nil {
		return err
	}

	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.InfoContext(context, "media_removed", slog.String("media_id", id))
	return nil
}

/*
ListPublic serves the public catalog: published entries only.

Parameters:
  - context: context.Context
  - raw: Flattened query string parameters

Returns:
  - *search.Result[Media]: Paginated envelope
  - error: Malformed filter or persistence failures
*/
func (service *Service) ListPublic(context context.Context, raw map[string]string) (*search.Result[Media], error) {
	return search.List(context, service.engine, service.repo, raw, search.Config[Media]{
		Origin:      "media_public",
		Searchable:  searchableFields,
		SortFields:  sortFields,
		Merge:       search.Where(search.Eq("published", true)),
		CursorValue: func(media Media) string { return media.ID },
	})
}

/*
ListOwned serves the caller's own entries, published or not.

Parameters:
  - context: context.Context
  - ownerID: string
  - raw: Flattened query string parameters

Returns:
  - *search.Result[Media]: Paginated envelope
  - error: Malformed filter or persistence failures
*/
func (service *Service) ListOwned(context context.Context, ownerID string, raw map[string]string) (*search.Result[Media], error) {
	return search.List(context, service.engine, service.repo, raw, search.Config[Media]{
		Origin:      "media_owned",
		Searchable:  searchableFields,
		SortFields:  sortFields,
		Merge:       search.Where(search.Eq("ownerid", ownerID)),
		CursorValue: func(media Media) string { return media.ID },
	})
}
