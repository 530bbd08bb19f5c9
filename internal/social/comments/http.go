// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package comments

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rvales/mediary/internal/platform/middleware"
	requestutil "github.com/rvales/mediary/internal/platform/request"
	"github.com/rvales/mediary/internal/platform/respond"
	"github.com/rvales/mediary/internal/platform/validate"
)

// Handler implements the HTTP layer for comments.
type Handler struct {
	commentService *Service
}

// NewHandler constructs a new comments [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{commentService: service}
}

// ScopedRoutes returns the endpoints mounted under
// /media/{mediaID}/comments.
func (handler *Handler) ScopedRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Post("/", handler.create)
	})

	return router
}

// DirectRoutes returns the by-ID comment endpoints.
func (handler *Handler) DirectRoutes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireAuth)

	router.Patch("/{id}", handler.update)
	router.Delete("/{id}", handler.remove)

	return router
}

/*
GET /api/v1/media/{mediaID}/comments.

Description: Paginated comment listing scoped to its entry, with the
standard query grammar.

Response:
  - 200: search.Result[Comment]: Paginated envelope
  - 404: ERR_MEDIA_NOT_FOUND: Missing or invisible entry
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	result, err := handler.commentService.List(
		request.Context(),
		requestutil.Param(request, "mediaID"),
		requestutil.Identity(request),
		requestutil.QueryMap(request),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

// commentBodyRequest defines the expected JSON payload for posting and
// editing comments.
type commentBodyRequest struct {
	Body string `json:"body"`
}

/*
POST /api/v1/media/{mediaID}/comments.

Request:
  - body: commentBodyRequest

Response:
  - 201: Comment: The persisted comment
  - 400: VALIDATION_ERROR: Invalid input data
  - 404: ERR_MEDIA_NOT_FOUND: Missing or invisible entry
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input commentBodyRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("body", input.Body).MaxLen("body", input.Body, 2000)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.commentService.Create(request.Context(), requestutil.Param(request, "mediaID"), identity, input.Body)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

/*
PATCH /api/v1/comments/{id}.

Request:
  - body: commentBodyRequest

Response:
  - 200: Comment: The edited comment
  - 403: FORBIDDEN: Caller is not the author
  - 404: ERR_COMMENT_NOT_FOUND: Unknown comment
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input commentBodyRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("body", input.Body).MaxLen("body", input.Body, 2000)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.commentService.Update(request.Context(), requestutil.Param(request, "id"), requestutil.Identity(request), input.Body)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

/*
DELETE /api/v1/comments/{id}.

Response:
  - 204: No content
  - 403: FORBIDDEN: Caller is neither author nor moderator
  - 404: ERR_COMMENT_NOT_FOUND: Unknown comment
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	err := handler.commentService.Remove(request.Context(), requestutil.Param(request, "id"), requestutil.Identity(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
