// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rvales/mediary/internal/platform/middleware"
	requestutil "github.com/rvales/mediary/internal/platform/request"
	"github.com/rvales/mediary/internal/platform/respond"
	"github.com/rvales/mediary/internal/platform/validate"
	"github.com/rvales/mediary/internal/verifications"
)

// Handler implements the HTTP layer for authentication and account
// self-service.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new auth [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] with the auth domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Credential flow
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/logout", handler.logout)
	router.Post("/recovery", handler.recovery)
	router.Post("/verify", handler.verify)

	// Account self-service
	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)

		protected.Get("/me", handler.me)
		protected.Patch("/me", handler.updateMe)
		protected.Delete("/me", handler.removeMe)

		protected.Post("/totp/generate", handler.generateTotp)
		protected.Post("/totp/enable", handler.enableTotp)
		protected.Post("/totp/disable", handler.disableTotp)
	})

	return router
}

// registerRequest defines the expected JSON payload for signup.
type registerRequest struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

/*
POST /api/v1/auth/register.

Description: Creates a member account and issues contact verification codes.

Request:
  - body: registerRequest

Response:
  - 201: users.User: The created account
  - 400: VALIDATION_ERROR: Invalid input data
  - 409: ERR_EMAIL_ALREADY_REGISTERED: Duplicate email
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest
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
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Register(request.Context(), RegisterInput{
		Email:    input.Email,
		Phone:    input.Phone,
		Name:     input.Name,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

// loginRequest defines the expected JSON payload for authentication.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	TotpCode string `json:"totpCode"`
}

/*
POST /api/v1/auth/login.

Description: Authenticates credentials and opens a session. Accounts with
MFA enabled must supply a TOTP code.

Request:
  - body: loginRequest

Response:
  - 200: LoginPayload: Session number, expiry, and signed token
  - 401: ERR_INCORRECT_PASSWORD / ERR_TOTP_NOT_PROVIDED / ERR_TOTP_INVALID
  - 403: ERR_ACCOUNT_SUSPENDED: Account cannot authenticate
  - 404: ERR_USER_NOT_FOUND: Unknown email
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("email", input.Email)
	v.Required("password", input.Password)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	payload, err := handler.authService.Login(request.Context(), LoginInput{
		Email:     input.Email,
		Password:  input.Password,
		TotpCode:  input.TotpCode,
		IPAddress: request.RemoteAddr,
		UserAgent: request.UserAgent(),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, payload)
}

/*
POST /api/v1/auth/logout.

Description: Ends the session named by the bearer token.

Response:
  - 204: No content
  - 401: UNAUTHORIZED: Malformed token
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	token := requestutil.BearerToken(request)
	if token == "" {
		respond.Error(writer, request, errDenied)
		return
	}

	if err := handler.authService.Logout(request.Context(), token); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// recoveryRequest defines the expected JSON payload for password recovery.
type recoveryRequest struct {
	Email string `json:"email"`
}

/*
POST /api/v1/auth/recovery.

Description: Issues a password recovery code. Responds 204 whether or not
the email is registered.

Request:
  - body: recoveryRequest

Response:
  - 204: No content
*/
func (handler *Handler) recovery(writer http.ResponseWriter, request *http.Request) {
	var input recoveryRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("email", input.Email).Email("email", input.Email)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.Recovery(request.Context(), input.Email); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// verifyRequest defines the expected JSON payload for code consumption.
type verifyRequest struct {
	Email       string  `json:"email"`
	Type        string  `json:"type"`
	Code        string  `json:"code"`
	NewPassword *string `json:"newPassword"`
}

/*
POST /api/v1/auth/verify.

Description: Consumes a verification code and applies the confirmed
email, phone, or password change.

Request:
  - body: verifyRequest

Response:
  - 204: No content
  - 400: ERR_INVALID_CODE / ERR_NEW_PASSWORD_NOT_PROVIDED
*/
func (handler *Handler) verify(writer http.ResponseWriter, request *http.Request) {
	var input verifyRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("email", input.Email)
	v.Required("code", input.Code)
	v.OneOf("type", input.Type,
		string(verifications.TypeEmail),
		string(verifications.TypePhone),
		string(verifications.TypePassword),
	)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	err := handler.authService.Verify(request.Context(), VerifyInput{
		Email:       input.Email,
		Type:        verifications.Type(input.Type),
		Code:        input.Code,
		NewPassword: input.NewPassword,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Account Self-Service Endpoints

/*
GET /api/v1/auth/me.

Response:
  - 200: users.User: The caller's account
  - 401: UNAUTHORIZED: Authentication required
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Me(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// updateMeRequest defines the expected JSON payload for account updates.
type updateMeRequest struct {
	Name            *string `json:"name"`
	Email           *string `json:"email"`
	Phone           *string `json:"phone"`
	NewPassword     *string `json:"newPassword"`
	CurrentPassword *string `json:"currentPassword"`
}

/*
PATCH /api/v1/auth/me.

Description: Applies partial self-service changes. Verified contact
changes go through a verification code instead of mutating directly.

Request:
  - body: updateMeRequest (Partial JSON)

Response:
  - 200: users.User: The account after the direct changes
  - 400: VALIDATION_ERROR / ERR_CURRENT_PASSWORD_NOT_PROVIDED
  - 401: ERR_INCORRECT_PASSWORD: Current password re-check failed
*/
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateMeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	if input.Name != nil {
		v.Required("name", *input.Name).MaxLen("name", *input.Name, 100)
	}
	if input.Email != nil {
		v.Email("email", *input.Email)
	}
	if input.Phone != nil && *input.Phone != "" {
		v.Phone("phone", *input.Phone)
	}
	if input.NewPassword != nil {
		v.MinLen("newPassword", *input.NewPassword, 8)
	}
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.UpdateAccount(request.Context(), userID, UpdateAccountInput{
		Name:            input.Name,
		Email:           input.Email,
		Phone:           input.Phone,
		NewPassword:     input.NewPassword,
		CurrentPassword: input.CurrentPassword,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// removeMeRequest defines the expected JSON payload for account removal.
type removeMeRequest struct {
	Password string `json:"password"`
}

/*
DELETE /api/v1/auth/me.

Description: Soft-deletes the caller's account after a password re-check
and ends every session.

Request:
  - body: removeMeRequest

Response:
  - 204: No content
  - 401: ERR_INCORRECT_PASSWORD: Password re-check failed
*/
func (handler *Handler) removeMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input removeMeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.RemoveAccount(request.Context(), userID, input.Password); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # MFA Endpoints

// totpURIResponse carries a freshly generated provisioning URI.
type totpURIResponse struct {
	URI string `json:"uri"`
}

/*
POST /api/v1/auth/totp/generate.

Description: Creates a pending MFA secret. Enrollment is only confirmed
through the enable endpoint.

Response:
  - 200: totpURIResponse: otpauth:// provisioning URI for QR rendering
  - 409: ERR_TOTP_ALREADY_ENABLED: MFA already active
*/
func (handler *Handler) generateTotp(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	uri, err := handler.authService.GenerateTotp(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, totpURIResponse{URI: uri})
}

// totpCodeRequest defines the expected JSON payload for MFA toggles.
type totpCodeRequest struct {
	Code string `json:"code"`
}

/*
POST /api/v1/auth/totp/enable.

Description: Confirms MFA enrollment with a code from the authenticator.

Request:
  - body: totpCodeRequest

Response:
  - 204: No content
  - 400: ERR_TOTP_SECRET_NOT_GENERATED: Generate was never called
  - 401: ERR_TOTP_INVALID: Bad code
  - 409: ERR_TOTP_ALREADY_ENABLED: MFA already active
*/
func (handler *Handler) enableTotp(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input totpCodeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.EnableTotp(request.Context(), userID, input.Code); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
POST /api/v1/auth/totp/disable.

Description: Turns MFA off. A valid code proves device possession.

Request:
  - body: totpCodeRequest

Response:
  - 204: No content
  - 400: ERR_TOTP_NOT_DEFINED: No secret on record
  - 401: ERR_TOTP_INVALID: Bad code
  - 409: ERR_TOTP_ALREADY_DISABLED: MFA not active
*/
func (handler *Handler) disableTotp(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input totpCodeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.DisableTotp(request.Context(), userID, input.Code); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
