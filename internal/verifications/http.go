// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package verifications

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/rvales/mediary/internal/platform/request"
	"github.com/rvales/mediary/internal/platform/respond"
)

// Handler implements the admin HTTP surface for verification auditing.
type Handler struct {
	verificationService *Service
}

// NewHandler constructs a new admin verifications [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{verificationService: service}
}

// Routes returns a [chi.Router] with the admin verification endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)

	return router
}

/*
GET /api/v1/admin/verifications.

Description: Paginated pending-code listing with the standard query
grammar. Codes themselves are never serialized.

Response:
  - 200: search.Result[Verification]: Paginated envelope
  - 400: ERR_INVALID_SEARCH_QUERY_CONFIG: Malformed filter key
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	result, err := handler.verificationService.List(request.Context(), requestutil.QueryMap(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}
