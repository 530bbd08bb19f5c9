// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package media

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rvales/mediary/internal/platform/middleware"
	requestutil "github.com/rvales/mediary/internal/platform/request"
	"github.com/rvales/mediary/internal/platform/respond"
	"github.com/rvales/mediary/internal/platform/validate"
)

// Handler implements the HTTP layer for the catalog.
type Handler struct {
	mediaService *Service
}

// NewHandler constructs a new media [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{mediaService: service}
}

// Routes returns a [chi.Router] with the catalog endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public catalog
	router.Get("/", handler.listPublic)
	router.Get("/slug/{slug}", handler.getBySlug)
	router.Get("/{id}", handler.get)

	// Owner surface
	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)

		protected.Get("/mine", handler.listOwned)
		protected.Post("/", handler.create)
		protected.Patch("/{id}", handler.update)
		protected.Delete("/{id}", handler.remove)
	})

	return router
}

/*
GET /api/v1/media.

Description: Public catalog listing, published entries only, with the
standard query grammar in offset or cursor mode.

Response:
  - 200: search.Result[Media]: Paginated envelope
  - 400: ERR_INVALID_SEARCH_QUERY_CONFIG: Malformed filter key
*/
func (handler *Handler) listPublic(writer http.ResponseWriter, request *http.Request) {
	result, err := handler.mediaService.ListPublic(request.Context(), requestutil.QueryMap(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
GET /api/v1/media/mine.

Description: The caller's own entries, published or not.

Response:
  - 200: search.Result[Media]: Paginated envelope
  - 401: UNAUTHORIZED: Authentication required
*/
func (handler *Handler) listOwned(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.mediaService.ListOwned(request.Context(), userID, requestutil.QueryMap(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
GET /api/v1/media/{id}.

Response:
  - 200: Media: Hydrated entry
  - 404: ERR_MEDIA_NOT_FOUND: Missing or invisible entry
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	media, err := handler.mediaService.FindOne(request.Context(), requestutil.Param(request, "id"), requestutil.Identity(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, media)
}

/*
GET /api/v1/media/slug/{slug}.

Response:
  - 200: Media: Hydrated entry
  - 404: ERR_MEDIA_NOT_FOUND: Missing or invisible entry
*/
func (handler *Handler) getBySlug(writer http.ResponseWriter, request *http.Request) {
	media, err := handler.mediaService.FindBySlug(request.Context(), requestutil.Param(request, "slug"), requestutil.Identity(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, media)
}

// mediaPayload defines the JSON payload shared by create and update.
type mediaPayload struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Type        *string    `json:"type"`
	Published   *bool      `json:"published"`
	ReleasedAt  *time.Time `json:"releasedAt"`
}

// validateTypes appends a type check when a type is supplied.
func validateType(v *validate.Validator, mediaType *string) {
	if mediaType == nil {
		return
	}
	allowed := make([]string, len(Types))
	for index, t := range Types {
		allowed[index] = string(t)
	}
	v.OneOf("type", *mediaType, allowed...)
}

/*
POST /api/v1/media.

Description: Creates a catalog entry owned by the caller. The slug is
derived from the name.

Request:
  - body: mediaPayload (name and type required)

Response:
  - 201: Media: The persisted entry
  - 400: VALIDATION_ERROR: Invalid input data
  - 401: UNAUTHORIZED: Authentication required
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input mediaPayload
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Custom("name", input.Name == nil, "This field is required")
	v.Custom("type", input.Type == nil, "This field is required")
	if input.Name != nil {
		v.Required("name", *input.Name).MaxLen("name", *input.Name, 200)
	}
	if input.Description != nil {
		v.MaxLen("description", *input.Description, 5000)
	}
	validateType(v, input.Type)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	create := CreateInput{
		Name:       *input.Name,
		Type:       Type(*input.Type),
		ReleasedAt: input.ReleasedAt,
	}
	if input.Description != nil {
		create.Description = *input.Description
	}
	if input.Published != nil {
		create.Published = *input.Published
	}

	media, err := handler.mediaService.Create(request.Context(), userID, create)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, media)
}

/*
PATCH /api/v1/media/{id}.

Description: Applies partial changes to an entry the caller owns or
moderates. The slug never changes.

Request:
  - body: mediaPayload (Partial JSON)

Response:
  - 200: Media: The updated entry
  - 403: FORBIDDEN: Caller is neither owner nor moderator
  - 404: ERR_MEDIA_NOT_FOUND: Missing or invisible entry
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input mediaPayload
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	if input.Name != nil {
		v.Required("name", *input.Name).MaxLen("name", *input.Name, 200)
	}
	if input.Description != nil {
		v.MaxLen("description", *input.Description, 5000)
	}
	validateType(v, input.Type)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	update := UpdateInput{
		Name:        input.Name,
		Description: input.Description,
		Published:   input.Published,
		ReleasedAt:  input.ReleasedAt,
	}
	if input.Type != nil {
		mediaType := Type(*input.Type)
		update.Type = &mediaType
	}

	media, err := handler.mediaService.Update(request.Context(), requestutil.Param(request, "id"), requestutil.Identity(request), update)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, media)
}

/*
DELETE /api/v1/media/{id}.

Response:
  - 204: No content
  - 403: FORBIDDEN: Caller is neither owner nor moderator
  - 404: ERR_MEDIA_NOT_FOUND: Missing or invisible entry
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	err := handler.mediaService.Remove(request.Context(), requestutil.Param(request, "id"), requestutil.Identity(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
