// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package sessions

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/rvales/mediary/internal/platform/request"
	"github.com/rvales/mediary/internal/platform/respond"
)

// Handler implements the admin HTTP surface for session auditing.
type Handler struct {
	sessionService *Service
}

// NewHandler constructs a new admin sessions [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{sessionService: service}
}

// Routes returns a [chi.Router] with the admin session endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Delete("/users/{userID}", handler.endAll)

	return router
}

/*
GET /api/v1/admin/sessions.

Description: Paginated authentication audit trail with the standard
query grammar. Failed attempts appear alongside live sessions.

Response:
  - 200: search.Result[Session]: Paginated envelope
  - 400: ERR_INVALID_SEARCH_QUERY_CONFIG: Malformed filter key
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	result, err := handler.sessionService.List(request.Context(), requestutil.QueryMap(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

// endAllResponse reports how many sessions an admin revocation ended.
type endAllResponse struct {
	Ended int `json:"ended"`
}

/*
DELETE /api/v1/admin/sessions/users/{userID}.

Description: Force-revokes every active session of a user, e.g. after a
reported account compromise.

Response:
  - 200: endAllResponse: Number of sessions ended
*/
func (handler *Handler) endAll(writer http.ResponseWriter, request *http.Request) {
	ended, err := handler.sessionService.EndSessions(request.Context(), requestutil.Param(request, "userID"), nil)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, endAllResponse{Ended: len(ended)})
}
