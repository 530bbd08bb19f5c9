// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package saves

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rvales/mediary/internal/platform/middleware"
	requestutil "github.com/rvales/mediary/internal/platform/request"
	"github.com/rvales/mediary/internal/platform/respond"
	"github.com/rvales/mediary/internal/platform/validate"
)

// Handler implements the HTTP layer for bookmarks.
type Handler struct {
	saveService *Service
}

// NewHandler constructs a new saves [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{saveService: service}
}

// Routes returns a [chi.Router] with the bookmark endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireAuth)

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Delete("/{mediaID}", handler.remove)

	return router
}

/*
GET /api/v1/saves.

Description: The caller's bookmarks with the standard query grammar.

Response:
  - 200: search.Result[Save]: Paginated envelope
  - 401: UNAUTHORIZED: Authentication required
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.saveService.List(request.Context(), userID, requestutil.QueryMap(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

// createSaveRequest defines the expected JSON payload for bookmarking.
type createSaveRequest struct {
	MediaID string `json:"mediaId"`
}

/*
POST /api/v1/saves.

Request:
  - body: createSaveRequest

Response:
  - 201: Save: The persisted bookmark
  - 400: VALIDATION_ERROR: Invalid input data
  - 409: CONFLICT: Media already saved
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createSaveRequest
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

	save, err := handler.saveService.Create(request.Context(), userID, input.MediaID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, save)
}

/*
DELETE /api/v1/saves/{mediaID}.

Response:
  - 204: No content
  - 404: NOT_FOUND: Nothing was saved
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.saveService.Remove(request.Context(), userID, requestutil.Param(request, "mediaID")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
