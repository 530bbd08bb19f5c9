// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package lists

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rvales/mediary/internal/platform/middleware"
	requestutil "github.com/rvales/mediary/internal/platform/request"
	"github.com/rvales/mediary/internal/platform/respond"
	"github.com/rvales/mediary/internal/platform/validate"
)

// Handler implements the HTTP layer for user-curated lists.
type Handler struct {
	listService *Service
}

// NewHandler constructs a new lists [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{listService: service}
}

// Routes returns a [chi.Router] with the list endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public lists resolve for anonymous callers too.
	router.Get("/{id}", handler.get)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)

		protected.Get("/", handler.listOwned)
		protected.Post("/", handler.create)
		protected.Patch("/{id}", handler.update)
		protected.Delete("/{id}", handler.remove)

		protected.Post("/{id}/items", handler.addItem)
		protected.Delete("/{id}/items/{itemID}", handler.removeItem)
	})

	return router
}

/*
GET /api/v1/lists.

Description: The caller's own lists with the standard query grammar.

Response:
  - 200: search.Result[List]: Paginated envelope
  - 401: UNAUTHORIZED: Authentication required
*/
func (handler *Handler) listOwned(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.listService.ListOwned(request.Context(), userID, requestutil.QueryMap(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

// listPayload defines the JSON payload shared by create and update.
type listPayload struct {
	Name       *string `json:"name"`
	Visibility *string `json:"visibility"`
}

/*
POST /api/v1/lists.

Description: Creates a list owned by the caller. Visibility defaults to
private.

Request:
  - body: listPayload (name required)

Response:
  - 201: List: The persisted list
  - 400: VALIDATION_ERROR: Invalid input data
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input listPayload
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Custom("name", input.Name == nil, "This field is required")
	if input.Name != nil {
		v.Required("name", *input.Name).MaxLen("name", *input.Name, 100)
	}
	if input.Visibility != nil {
		v.OneOf("visibility", *input.Visibility, string(VisibilityPublic), string(VisibilityPrivate))
	}
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	visibility := VisibilityPrivate
	if input.Visibility != nil {
		visibility = Visibility(*input.Visibility)
	}

	list, err := handler.listService.Create(request.Context(), userID, *input.Name, visibility)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, list)
}

/*
GET /api/v1/lists/{id}.

Response:
  - 200: Detail: List plus its ordered items
  - 404: ERR_LIST_NOT_FOUND: Missing or invisible list
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	detail, err := handler.listService.FindOne(request.Context(), requestutil.Param(request, "id"), requestutil.Identity(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, detail)
}

/*
PATCH /api/v1/lists/{id}.

Request:
  - body: listPayload (Partial JSON)

Response:
  - 200: List: The updated list
  - 403: FORBIDDEN: Caller is not the owner
  - 404: ERR_LIST_NOT_FOUND: Missing or invisible list
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input listPayload
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	if input.Name != nil {
		v.Required("name", *input.Name).MaxLen("name", *input.Name, 100)
	}
	if input.Visibility != nil {
		v.OneOf("visibility", *input.Visibility, string(VisibilityPublic), string(VisibilityPrivate))
	}
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var visibility *Visibility
	if input.Visibility != nil {
		value := Visibility(*input.Visibility)
		visibility = &value
	}

	list, err := handler.listService.Update(request.Context(), requestutil.Param(request, "id"), requestutil.Identity(request), input.Name, visibility)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, list)
}

/*
DELETE /api/v1/lists/{id}.

Response:
  - 204: No content
  - 403: FORBIDDEN: Caller is not the owner
  - 404: ERR_LIST_NOT_FOUND: Missing or invisible list
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	err := handler.listService.Remove(request.Context(), requestutil.Param(request, "id"), requestutil.Identity(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// addItemRequest defines the expected JSON payload for adding an item.
type addItemRequest struct {
	MediaID string `json:"mediaId"`
}

/*
POST /api/v1/lists/{id}/items.

Description: Appends a media entry at the end of the list.

Request:
  - body: addItemRequest

Response:
  - 201: Item: The persisted item
  - 400: VALIDATION_ERROR: Invalid input data
  - 404: ERR_LIST_NOT_FOUND: Missing or invisible list
  - 409: CONFLICT: Media already in the list
*/
func (handler *Handler) addItem(writer http.ResponseWriter, request *http.Request) {
	var input addItemRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("mediaId", input.MediaID).UUID("mediaId", input.MediaID)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.listService.AddItem(request.Context(), requestutil.Param(request, "id"), requestutil.Identity(request), input.MediaID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, item)
}

/*
DELETE /api/v1/lists/{id}/items/{itemID}.

Response:
  - 204: No content
  - 404: ERR_LIST_NOT_FOUND / NOT_FOUND: Missing list or item
*/
func (handler *Handler) removeItem(writer http.ResponseWriter, request *http.Request) {
	err := handler.listService.RemoveItem(
		request.Context(),
		requestutil.Param(request, "id"),
		requestutil.Identity(request),
		requestutil.Param(request, "itemID"),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
