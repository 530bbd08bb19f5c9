// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package auth

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/rvales/mediary/internal/platform/apperr"
	"github.com/rvales/mediary/internal/platform/sec"
	"github.com/rvales/mediary/internal/sessions"
	"github.com/rvales/mediary/internal/users"
	"github.com/rvales/mediary/internal/verifications"
)

// # Business Errors

var (
	ErrAccountSuspended           = apperr.Business(http.StatusForbidden, "ERR_ACCOUNT_SUSPENDED")
	ErrIncorrectPassword          = apperr.Business(http.StatusUnauthorized, "ERR_INCORRECT_PASSWORD")
	ErrCurrentPasswordNotProvided = apperr.Business(http.StatusBadRequest, "ERR_CURRENT_PASSWORD_NOT_PROVIDED")
	ErrNewPasswordNotProvided     = apperr.Business(http.StatusBadRequest, "ERR_NEW_PASSWORD_NOT_PROVIDED")
)

// # Service

// Service implements the authentication business logic.
type Service struct {
	users         *users.Service
	sessions      *sessions.Service
	verifications *verifications.Service
	tokens        *sec.TokenService
	logger        *slog.Logger
}

// NewService wires the authentication service with its dependencies.
func NewService(userService *users.Service, sessionService *sessions.Service, verificationService *verifications.Service, tokens *sec.TokenService, logger *slog.Logger) *Service {
	return &Service{
		users:         userService,
		sessions:      sessionService,
		verifications: verificationService,
		tokens:        tokens,
		logger:        logger,
	}
}

// # Registration

// RegisterInput carries the self-service signup fields.
type RegisterInput struct {
	Email    string
	Phone    string
	Name     string
	Password string
}

/*
Register creates a member account and issues its contact verification codes.

Code delivery (mail, SMS) happens out of band; the codes are persisted and
consumable through [Service.Verify].

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *users.User: The created account
  - error: ERR_EMAIL_ALREADY_REGISTERED on duplicates
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*users.User, error) {
	user, err := service.users.Create(context, users.CreateInput{
		Email:    input.Email,
		Phone:    input.Phone,
		Name:     input.Name,
		Password: input.Password,
		Role:     sec.RoleMember,
	})
	if err != nil {
		return nil, err
	}

	if _, err := service.verifications.Issue(context, user.ID, verifications.TypeEmail, user.Email); err != nil {
		service.logger.WarnContext(context, "verification_issue_failed",
			slog.String("user_id", user.ID),
			slog.String("type", string(verifications.TypeEmail)),
			slog.String("error", err.Error()),
		)
	}
	if user.Phone != "" {
		if _, err := service.verifications.Issue(context, user.ID, verifications.TypePhone, user.Phone); err != nil {
			service.logger.WarnContext(context, "verification_issue_failed",
				slog.String("user_id", user.ID),
				slog.String("type", string(verifications.TypePhone)),
				slog.String("error", err.Error()),
			)
		}
	}

	return user, nil
}

// # Login

// LoginInput carries the credentials of one authentication attempt.
type LoginInput struct {
	Email     string
	Password  string
	TotpCode  string
	IPAddress string
	UserAgent string
}

// LoginPayload is the successful login response.
type LoginPayload struct {
	LoginNumber int        `json:"loginNumber"`
	ExpiresOn   *time.Time `json:"expiresOn"`
	Token       string     `json:"token"`
}

/*
Login authenticates credentials and opens a session.

Gates run in a fixed order: account status, then MFA, then password. The
first failing gate decides the recorded rejection code, and a session row
is written for every attempt against a known account, failed or not.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginPayload: Session number, expiry, and signed token
  - error: ERR_USER_NOT_FOUND, ERR_ACCOUNT_SUSPENDED, ERR_TOTP_NOT_PROVIDED,
    ERR_TOTP_INVALID or ERR_INCORRECT_PASSWORD
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginPayload, error) {
	user, err := service.users.FindByEmail(context, input.Email)
	if err != nil {
		return nil, err
	}

	failure := service.gateLogin(context, user, input)

	session, token, err := service.sessions.Create(context, sessions.CreateInput{
		UserID:    user.ID,
		Failure:   failure,
		IPAddress: input.IPAddress,
		UserAgent: input.UserAgent,
	})
	if err != nil {
		return nil, err
	}

	if failure != nil {
		return nil, loginFailureError(*failure)
	}

	return &LoginPayload{
		LoginNumber: session.Number,
		ExpiresOn:   session.ExpiredAt,
		Token:       token,
	}, nil
}

// gateLogin runs the ordered login gates and returns the first rejection
// code, or nil when every gate passes.
func (service *Service) gateLogin(context context.Context, user *users.User, input LoginInput) *string {
	if !user.IsActive() {
		return rejection(ErrAccountSuspended)
	}

	if user.TotpEnabled && user.TotpSecret != "" {
		if input.TotpCode == "" {
			return rejection(users.ErrTotpNotProvided)
		}
		if err := service.users.VerifyTotp(context, user.ID, input.TotpCode); err != nil {
			return rejection(users.ErrTotpInvalid)
		}
	}

	if !sec.CheckPasswordHash(input.Password, user.Password) {
		return rejection(ErrIncorrectPassword)
	}

	return nil
}

// rejection extracts the ERR_* code of a business error for session records.
func rejection(err *apperr.AppError) *string {
	code := err.Code
	return &code
}

// loginFailureError maps a recorded rejection code back to its error.
func loginFailureError(code string) error {
	switch code {
	case ErrAccountSuspended.Code:
		return ErrAccountSuspended
	case users.ErrTotpNotProvided.Code:
		return users.ErrTotpNotProvided
	case users.ErrTotpInvalid.Code:
		return users.ErrTotpInvalid
	default:
		return ErrIncorrectPassword
	}
}

/*
Logout ends the session named by the token.

The token is decoded without verification: the worst a forged token can do
here is end a session its forger could already name, and verified tokens
would lock out users holding an expired-but-known token.

Parameters:
  - context: context.Context
  - token: Raw bearer token

Returns:
  - error: Denial for malformed tokens
*/
func (service *Service) Logout(context context.Context, token string) error {
	claims, err := service.tokens.Decode(token)
	if err != nil {
		return errDenied
	}

	sessionID := claims.SessionID()
	if _, err := service.sessions.EndSessions(context, claims.UserID(), &sessionID); err != nil {
		return err
	}
	return nil
}

// # Account Self-Service

// Me returns the caller's own account.
func (service *Service) Me(context context.Context, userID string) (*users.User, error) {
	return service.users.FindOne(context, userID)
}

// UpdateAccountInput carries self-service account changes.
type UpdateAccountInput struct {
	Name            *string
	Email           *string
	Phone           *string
	NewPassword     *string
	CurrentPassword *string
}

/*
UpdateAccount applies self-service changes to the caller's account.

A password change requires the current password. Changing the email, or a
phone number that was already verified, does not mutate the account
directly: a verification code is issued for the new contact and the change
lands when the code is consumed.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateAccountInput

Returns:
  - *users.User: The account after the direct changes
  - error: ERR_CURRENT_PASSWORD_NOT_PROVIDED or ERR_INCORRECT_PASSWORD
*/
func (service *Service) UpdateAccount(context context.Context, userID string, input UpdateAccountInput) (*users.User, error) {
	user, err := service.users.FindOne(context, userID)
	if err != nil {
		return nil, err
	}

	update := users.UpdateInput{Name: input.Name}

	if input.NewPassword != nil {
		if input.CurrentPassword == nil || *input.CurrentPassword == "" {
			return nil, ErrCurrentPasswordNotProvided
		}
		if !sec.CheckPasswordHash(*input.CurrentPassword, user.Password) {
			return nil, ErrIncorrectPassword
		}
		update.Password = input.NewPassword
	}

	if input.Email != nil && *input.Email != user.Email {
		if _, err := service.verifications.Issue(context, userID, verifications.TypeEmail, *input.Email); err != nil {
			return nil, err
		}
	}

	if input.Phone != nil && *input.Phone != user.Phone {
		if user.PhoneVerified {
			if _, err := service.verifications.Issue(context, userID, verifications.TypePhone, *input.Phone); err != nil {
				return nil, err
			}
		} else {
			update.Phone = input.Phone
		}
	}

	if update.Name == nil && update.Phone == nil && update.Password == nil {
		return user, nil
	}
	return service.users.Update(context, userID, update)
}

/*
RemoveAccount soft-deletes the caller's account after re-checking the
password, then ends every session.

Parameters:
  - context: context.Context
  - userID: string
  - password: string

Returns:
  - error: ERR_INCORRECT_PASSWORD on a failed re-check
*/
func (service *Service) RemoveAccount(context context.Context, userID, password string) error {
	user, err := service.users.FindOne(context, userID)
	if err != nil {
		return err
	}
	if !sec.CheckPasswordHash(password, user.Password) {
		return ErrIncorrectPassword
	}

	return service.users.Remove(context, userID)
}

// # Recovery and Verification

/*
Recovery issues a password recovery code for the account behind the email.

An unknown email succeeds silently so the endpoint cannot be used to probe
which addresses are registered.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - error: Persistence failures only
*/
func (service *Service) Recovery(context context.Context, email string) error {
	user, err := service.users.FindByEmail(context, email)
	if err != nil {
		if apperr.HasCode(err, users.ErrUserNotFound.Code) {
			return nil
		}
		return err
	}

	_, err = service.verifications.Issue(context, user.ID, verifications.TypePassword, user.Email)
	return err
}

// VerifyInput carries a code consumption request.
type VerifyInput struct {
	Email       string
	Type        verifications.Type
	Code        string
	NewPassword *string
}

/*
Verify consumes a code and applies the confirmed change.

EMAIL and PHONE codes promote the pending contact and mark it verified.
PASSWORD codes set the new password and revoke every open session.

Parameters:
  - context: context.Context
  - input: VerifyInput

Returns:
  - error: ERR_INVALID_CODE or ERR_NEW_PASSWORD_NOT_PROVIDED
*/
func (service *Service) Verify(context context.Context, input VerifyInput) error {
	user, err := service.users.FindByEmail(context, input.Email)
	if err != nil {
		if apperr.HasCode(err, users.ErrUserNotFound.Code) {
			// Indistinguishable from a wrong code.
			return verifications.ErrInvalidCode
		}
		return err
	}

	if input.Type == verifications.TypePassword && (input.NewPassword == nil || *input.NewPassword == "") {
		return ErrNewPasswordNotProvided
	}

	verification, err := service.verifications.Consume(context, user.ID, input.Type, input.Code)
	if err != nil {
		return err
	}

	verified := true
	update := users.UpdateInput{}
	switch input.Type {
	case verifications.TypeEmail:
		update.Email = &verification.Value
		update.EmailVerified = &verified
	case verifications.TypePhone:
		update.Phone = &verification.Value
		update.PhoneVerified = &verified
	case verifications.TypePassword:
		update.Password = input.NewPassword
	}

	_, err = service.users.Update(context, user.ID, update)
	return err
}

// # MFA Endpoints

// GenerateTotp creates a pending MFA secret and returns its provisioning URI.
func (service *Service) GenerateTotp(context context.Context, userID string) (string, error) {
	return service.users.GenerateTotp(context, userID)
}

// EnableTotp confirms MFA enrollment with a code from the authenticator.
func (service *Service) EnableTotp(context context.Context, userID, code string) error {
	return service.users.EnableTotp(context, userID, code)
}

/*
DisableTotp turns MFA off, requiring a valid code as proof of possession.

Parameters:
  - context: context.Context
  - userID: string
  - code: string

Returns:
  - error: ERR_TOTP_ALREADY_DISABLED, ERR_TOTP_NOT_DEFINED or ERR_TOTP_INVALID
*/
func (service *Service) DisableTotp(context context.Context, userID, code string) error {
	user, err := service.users.FindOne(context, userID)
	if err != nil {
		return err
	}
	if !user.TotpEnabled {
		return users.ErrTotpAlreadyDisabled
	}
	if err := service.users.VerifyTotp(context, userID, code); err != nil {
		return err
	}

	return service.users.DisableTotp(context, userID)
}
