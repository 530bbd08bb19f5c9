// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package comments

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

// ErrCommentNotFound is returned for unknown comments.
var ErrCommentNotFound = apperr.Business(http.StatusNotFound, "ERR_COMMENT_NOT_FOUND")

// MediaGate checks that the commented entry is visible to the caller.
// Satisfied by [*media.Service].
type MediaGate interface {
	FindOne(ctx context.Context, id string, identity *sec.Identity) (*media.Media, error)
}

// # Service

// Service implements the comment business logic.
type Service struct {
	repo   Repository
	medias MediaGate
	engine *search.Engine
	logger *slog.Logger
}

// NewService wires the comment service with its dependencies.
func NewService(repo Repository, medias MediaGate, engine *search.Engine, logger *slog.Logger) *Service {
	return &Service{repo: repo, medias: medias, engine: engine, logger: logger}
}

/*
Create posts a comment under a media entry visible to the caller.

Parameters:
  - context: context.Context
  - mediaID: string
  - identity: *sec.Identity
  - body: string

Returns:
  - *Comment: The persisted comment
  - error: ERR_MEDIA_NOT_FOUND when the entry is invisible
*/
func (service *Service) Create(context context.Context, mediaID string, identity *sec.Identity, body string) (*Comment, error) {
	if _, err := service.medias.FindOne(context, mediaID, identity); err != nil {
		return nil, err
	}

	comment := &Comment{
		ID:        uuidv7.New(),
		UserID:    identity.UserID,
		MediaID:   mediaID,
		Body:      body,
		CreatedAt: time.Now(),
	}

	if err := service.repo.Create(context, comment); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "comment_created",
		slog.String("comment_id", comment.ID),
		slog.String("media_id", mediaID),
	)
	return comment, nil
}

/*
Update edits a comment's body. Only the author may edit.

Parameters:
  - context: context.Context
  - id: string
  - identity: *sec.Identity
  - body: string

Returns:
  - *Comment: The edited comment
  - error: ERR_COMMENT_NOT_FOUND or FORBIDDEN
*/
func (service *Service) Update(context context.Context, id string, identity *sec.Identity, body string) (*Comment, error) {
	comment, err := service.repo.FindByID(context, id)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	if identity == nil || identity.UserID != comment.UserID {
		return nil, apperr.Forbidden("You cannot edit this comment")
	}

	comment.Body = body
	now := time.Now()
	comment.EditedAt = &now

	if err := service.repo.Update(context, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

/*
Remove deletes a comment. Authors remove their own; moderators remove any.

Parameters:
  - context: context.Context
  - id: string
  - identity: *sec.Identity

Returns:
  - error: ERR_COMMENT_NOT_FOUND or FORBIDDEN
*/
func (service *Service) Remove(context context.Context, id string, identity *sec.Identity) error {
	comment, err := service.repo.FindByID(context, id)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	if identity == nil || (identity.UserID != comment.UserID && !identity.Role.AtLeast(sec.RoleModerator)) {
		return apperr.Forbidden("You cannot remove this comment")
	}

	return service.repo.Delete(context, id)
}

/*
List serves the comments under one entry with the standard query grammar.

Parameters:
  - context: context.Context
  - mediaID: string
  - identity: *sec.Identity, nil for anonymous callers
  - raw: Flattened query string parameters

Returns:
  - *search.Result[Comment]: Paginated envelope
  - error: ERR_MEDIA_NOT_FOUND when the entry is invisible
*/
func (service *Service) List(context context.Context, mediaID string, identity *sec.Identity, raw map[string]string) (*search.Result[Comment], error) {
	if _, err := service.medias.FindOne(context, mediaID, identity); err != nil {
		return nil, err
	}

	return search.List(context, service.engine, service.repo, raw, search.Config[Comment]{
		Origin:      "comments",
		Searchable:  searchableFields,
		SortFields:  sortFields,
		Merge:       search.Where(search.Eq("mediaid", mediaID)),
		CursorValue: func(comment Comment) string { return comment.ID },
	})
}
