// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package users

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/rvales/mediary/internal/platform/request"
	"github.com/rvales/mediary/internal/platform/respond"
	"github.com/rvales/mediary/internal/platform/sec"
	"github.com/rvales/mediary/internal/platform/validate"
)

// Handler implements the admin HTTP surface for account management.
//
// It is mounted behind RequireRole(admin); member self-service lives in the
// auth package.
type Handler struct {
	userService *Service
}

// NewHandler constructs a new admin users [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{userService: service}
}

// Routes returns a [chi.Router] with the admin account endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/{id}", handler.get)
	router.Patch("/{id}", handler.update)
	router.Delete("/{id}", handler.remove)
	router.Delete("/{id}/totp", handler.disableTotp)

	return router
}

/*
GET /api/v1/admin/users.

Description: Paginated account listing with the standard query grammar.

Response:
  - 200: search.Result[User]: Paginated envelope
  - 400: ERR_INVALID_SEARCH_QUERY_CONFIG: Malformed filter key
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	result, err := handler.userService.List(request.Context(), requestutil.QueryMap(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

// createUserRequest defines the expected JSON payload for account creation.
type createUserRequest struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

/*
POST /api/v1/admin/users.

Description: Creates an account with an explicit role.

Request:
  - body: createUserRequest

Response:
  - 201: User: The persisted account
  - 400: VALIDATION_ERROR: Invalid input data
  - 409: ERR_EMAIL_ALREADY_REGISTERED: Duplicate email
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createUserRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("email", input.Email).Email("email", input.Email)
	v.Required("name", input.Name).MaxLen("name", input.Name, 100)
	v.MinLen("password", input.Password, 8)
	if input.Phone != "" {
		v.Phone("phone", input.Phone)
	}
	if input.Role != "" {
		v.OneOf("role", input.Role, string(sec.RoleAdmin), string(sec.RoleModerator), string(sec.RoleMember))
	}
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.userService.Create(request.Context(), CreateInput{
		Email:    input.Email,
		Phone:    input.Phone,
		Name:     input.Name,
		Password: input.Password,
		Role:     sec.UserRole(input.Role),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
GET /api/v1/admin/users/{id}.

Response:
  - 200: User: Hydrated account
  - 404: ERR_USER_NOT_FOUND: Unknown account
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.userService.FindOne(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// updateUserRequest defines the expected JSON payload for admin account updates.
type updateUserRequest struct {
	Phone         *string `json:"phone"`
	Name          *string `json:"name"`
	Password      *string `json:"password"`
	Role          *string `json:"role"`
	Status        *string `json:"status"`
	EmailVerified *bool   `json:"emailVerified"`
	PhoneVerified *bool   `json:"phoneVerified"`
}

/*
PATCH /api/v1/admin/users/{id}.

Description: Applies partial updates to an account, including role and
status changes that members cannot perform on themselves.

Request:
  - body: updateUserRequest (Partial JSON)

Response:
  - 200: User: The updated account
  - 400: VALIDATION_ERROR: Invalid input data
  - 404: ERR_USER_NOT_FOUND: Unknown account
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input updateUserRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	if input.Phone != nil && *input.Phone != "" {
		v.Phone("phone", *input.Phone)
	}
	if input.Name != nil {
		v.Required("name", *input.Name).MaxLen("name", *input.Name, 100)
	}
	if input.Password != nil {
		v.MinLen("password", *input.Password, 8)
	}
	if input.Role != nil {
		v.OneOf("role", *input.Role, string(sec.RoleAdmin), string(sec.RoleModerator), string(sec.RoleMember))
	}
	if input.Status != nil {
		v.OneOf("status", *input.Status, string(StatusActive), string(StatusSuspended), string(StatusDeleted))
	}
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	update := UpdateInput{
		Phone:         input.Phone,
		Name:          input.Name,
		Password:      input.Password,
		EmailVerified: input.EmailVerified,
		PhoneVerified: input.PhoneVerified,
	}
	if input.Role != nil {
		role := sec.UserRole(*input.Role)
		update.Role = &role
	}
	if input.Status != nil {
		status := Status(*input.Status)
		update.Status = &status
	}

	user, err := handler.userService.Update(request.Context(), requestutil.Param(request, "id"), update)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
DELETE /api/v1/admin/users/{id}.

Description: Soft-deletes an account and revokes all of its sessions.

Response:
  - 204: No content
  - 404: ERR_USER_NOT_FOUND: Unknown account
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	if err := handler.userService.Remove(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
DELETE /api/v1/admin/users/{id}/totp.

Description: Clears MFA state for an account that lost its device.
Idempotent, succeeds even when MFA was never enabled.

Response:
  - 204: No content
  - 404: ERR_USER_NOT_FOUND: Unknown account
*/
func (handler *Handler) disableTotp(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	if _, err := handler.userService.FindOne(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := handler.userService.DisableTotp(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
