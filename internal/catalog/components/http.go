// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package components

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rvales/mediary/internal/platform/middleware"
	requestutil "github.com/rvales/mediary/internal/platform/request"
	"github.com/rvales/mediary/internal/platform/respond"
	"github.com/rvales/mediary/internal/platform/validate"
)

// Handler implements the HTTP layer for media components.
type Handler struct {
	componentService *Service
}

// NewHandler constructs a new components [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{componentService: service}
}

// ScopedRoutes returns the endpoints mounted under
// /media/{mediaID}/components.
func (handler *Handler) ScopedRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Post("/", handler.create)
	})

	return router
}

// DirectRoutes returns the by-ID component endpoints.
func (handler *Handler) DirectRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{id}", handler.get)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Patch("/{id}", handler.update)
		protected.Delete("/{id}", handler.remove)
	})

	return router
}

/*
GET /api/v1/media/{mediaID}/components.

Description: Paginated component listing scoped to its parent entry, with
the standard query grammar in offset or cursor mode.

Response:
  - 200: search.Result[Component]: Paginated envelope
  - 404: ERR_MEDIA_NOT_FOUND: Missing or invisible parent
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	result, err := handler.componentService.List(
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

// componentPayload defines the JSON payload shared by create and update.
type componentPayload struct {
	Name        *string    `json:"name"`
	Position    *int       `json:"position"`
	Kind        *string    `json:"kind"`
	Duration    *int       `json:"duration"`
	PublishedAt *time.Time `json:"publishedAt"`
}

// validateKind appends a kind check when a kind is supplied.
func validateKind(v *validate.Validator, kind *string) {
	if kind == nil {
		return
	}
	allowed := make([]string, len(Kinds))
	for index, k := range Kinds {
		allowed[index] = string(k)
	}
	v.OneOf("kind", *kind, allowed...)
}

/*
POST /api/v1/media/{mediaID}/components.

Description: Adds a component to an entry the caller controls. Without an
explicit position the component is appended.

Request:
  - body: componentPayload (name and kind required)

Response:
  - 201: Component: The persisted component
  - 400: VALIDATION_ERROR: Invalid input data
  - 403: FORBIDDEN: Caller cannot edit the parent
  - 404: ERR_MEDIA_NOT_FOUND: Missing or invisible parent
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input componentPayload
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Custom("name", input.Name == nil, "This field is required")
	v.Custom("kind", input.Kind == nil, "This field is required")
	if input.Name != nil {
		v.Required("name", *input.Name).MaxLen("name", *input.Name, 200)
	}
	if input.Position != nil {
		v.Custom("position", *input.Position < 1, "Must be positive")
	}
	if input.Duration != nil {
		v.Custom("duration", *input.Duration < 0, "Must not be negative")
	}
	validateKind(v, input.Kind)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	create := CreateInput{
		Name:        *input.Name,
		Position:    input.Position,
		Kind:        Kind(*input.Kind),
		PublishedAt: input.PublishedAt,
	}
	if input.Duration != nil {
		create.Duration = *input.Duration
	}

	component, err := handler.componentService.Create(
		request.Context(),
		requestutil.Param(request, "mediaID"),
		requestutil.Identity(request),
		create,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, component)
}

/*
GET /api/v1/components/{id}.

Response:
  - 200: Component: Hydrated component
  - 404: ERR_COMPONENT_NOT_FOUND: Missing or invisible component
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	component, err := handler.componentService.FindOne(request.Context(), requestutil.Param(request, "id"), requestutil.Identity(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, component)
}

/*
PATCH /api/v1/components/{id}.

Request:
  - body: componentPayload (Partial JSON)

Response:
  - 200: Component: The updated component
  - 403: FORBIDDEN: Caller cannot edit the parent
  - 404: ERR_COMPONENT_NOT_FOUND: Missing or invisible component
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input componentPayload
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	if input.Name != nil {
		v.Required("name", *input.Name).MaxLen("name", *input.Name, 200)
	}
	if input.Position != nil {
		v.Custom("position", *input.Position < 1, "Must be positive")
	}
	if input.Duration != nil {
		v.Custom("duration", *input.Duration < 0, "Must not be negative")
	}
	validateKind(v, input.Kind)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	update := UpdateInput{
		Name:        input.Name,
		Position:    input.Position,
		Duration:    input.Duration,
		PublishedAt: input.PublishedAt,
	}
	if input.Kind != nil {
		kind := Kind(*input.Kind)
		update.Kind = &kind
	}

	component, err := handler.componentService.Update(request.Context(), requestutil.Param(request, "id"), requestutil.Identity(request), update)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, component)
}

/*
DELETE /api/v1/components/{id}.

Response:
  - 204: No content
  - 403: FORBIDDEN: Caller cannot edit the parent
  - 404: ERR_COMPONENT_NOT_FOUND: Missing or invisible component
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	err := handler.componentService.Remove(request.Context(), requestutil.Param(request, "id"), requestutil.Identity(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
