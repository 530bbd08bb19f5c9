// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

/*
Package users manages account records, their lifecycle, and MFA enrollment.

It owns the users.user table and exposes the account operations consumed by
the authentication flow and the admin surface. Account reads go through a
cache-aside projection; every write invalidates it.
*/
package users

import (
	stdctx "context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/rvales/mediary/internal/platform/apperr"
	"github.com/rvales/mediary/internal/platform/cache"
	"github.com/rvales/mediary/internal/platform/constants"
	"github.com/rvales/mediary/internal/platform/dberr"
	"github.com/rvales/mediary/internal/platform/sec"
	"github.com/rvales/mediary/internal/search"
	"github.com/rvales/mediary/pkg/uuidv7"
)

// # Business Errors

var (
	ErrUserNotFound = apperr.Business(http.StatusNotFound, "ERR_USER_NOT_FOUND")
	ErrEmailTaken   = apperr.Business(http.StatusConflict, "ERR_EMAIL_ALREADY_REGISTERED")
)

// userCacheTTL bounds staleness of the cached account projection. Writes
// invalidate eagerly, so this only matters for missed invalidations.
const userCacheTTL = 15 * time.Minute

// SessionEnder revokes sessions when an account is removed or its
// credentials change. Implemented by the sessions service.
type SessionEnder interface {
	EndSessions(ctx stdctx.Context, userID string, sessionID *string) ([]string, error)
}

// # Inputs

// CreateInput carries the fields accepted when registering an account.
type CreateInput struct {
	Email    string
	Phone    string
	Name     string
	Password string
	Role     sec.UserRole
}

// UpdateInput carries partial account changes. Nil fields are left untouched.
//
// Changing a contact clears its verified flag; callers that confirmed the
// contact through a verification code set the flag explicitly.
type UpdateInput struct {
	Email         *string
	Phone         *string
	Name          *string
	Password      *string
	Role          *sec.UserRole
	Status        *Status
	EmailVerified *bool
	PhoneVerified *bool
}

// # Service

// Service implements the account business logic.
type Service struct {
	repo     Repository
	cache    cache.Store
	sessions SessionEnder
	engine   *search.Engine
	totp     *TotpEngine
	logger   *slog.Logger
}

// NewService wires the account service with its dependencies.
func NewService(repo Repository, cacheStore cache.Store, sessions SessionEnder, engine *search.Engine, totpEngine *TotpEngine, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		cache:    cacheStore,
		sessions: sessions,
		engine:   engine,
		totp:     totpEngine,
		logger:   logger,
	}
}

/*
Create registers a new account.

The email is lowercased before storage so lookups are case insensitive,
and the password is stored as a bcrypt hash.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *User: The persisted account
  - error: ErrEmailTaken on duplicates, persistence failures otherwise
*/
func (service *Service) Create(context stdctx.Context, input CreateInput) (*User, error) {
	hash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	role := input.Role
	if role == "" {
		role = sec.RoleMember
	}

	now := time.Now()
	user := &User{
		ID:        uuidv7.New(),
		Email:     strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:     strings.TrimSpace(input.Phone),
		Name:      strings.TrimSpace(input.Name),
		Password:  hash,
		Role:      role,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := service.repo.Create(context, user); err != nil {
		if apperr.HasCode(err, "CONFLICT") {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	service.logger.InfoContext(context, "user_created",
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role)),
	)
	return user, nil
}

/*
FindOne returns the account with the given ID, serving from the cache
projection when possible.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *User: Hydrated account
  - error: ErrUserNotFound when no row exists
*/
func (service *Service) FindOne(context stdctx.Context, id string) (*User, error) {
	var cached User
	if hit, _ := service.cache.Get(context, constants.CacheOriginUsers, id, &cached); hit {
		return &cached, nil
	}

	user, err := service.repo.FindByID(context, id)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := service.cache.Set(context, constants.CacheOriginUsers, id, user, userCacheTTL); err != nil {
		service.logger.WarnContext(context, "user_cache_write_failed", slog.String("error", err.Error()))
	}
	return user, nil
}

/*
FindByEmail returns the account registered under the given email.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated account
  - error: ErrUserNotFound when no row exists
*/
func (service *Service) FindByEmail(context stdctx.Context, email string) (*User, error) {
	user, err := service.repo.FindByEmail(context, email)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

/*
Update applies a partial change set to an account.

A password change revokes every other session of the account so stolen
tokens stop working immediately.

Parameters:
  - context: context.Context
  - id: string
  - input: UpdateInput

Returns:
  - *User: The updated account
  - error: ErrUserNotFound when no row exists, persistence failures otherwise
*/
func (service *Service) Update(context stdctx.Context, id string, input UpdateInput) (*User, error) {
	user, err := service.FindOne(context, id)
	if err != nil {
		return nil, err
	}

	passwordChanged := false
	if input.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*input.Email))
		user.EmailVerified = false
	}
	if input.Phone != nil {
		user.Phone = strings.TrimSpace(*input.Phone)
		user.PhoneVerified = false
	}
	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Password != nil {
		hash, err := sec.HashPassword(*input.Password)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		user.Password = hash
		passwordChanged = true
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.Status != nil {
		user.Status = *input.Status
	}
	if input.EmailVerified != nil {
		user.EmailVerified = *input.EmailVerified
	}
	if input.PhoneVerified != nil {
		user.PhoneVerified = *input.PhoneVerified
	}
	user.UpdatedAt = time.Now()

	err = cache.Mutate(context, service.cache, constants.CacheOriginUsers, id, func(writeContext stdctx.Context) error {
		return service.repo.Update(writeContext, user)
	})
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if passwordChanged {
		if _, err := service.sessions.EndSessions(context, id, nil); err != nil {
			service.logger.WarnContext(context, "session_revocation_failed",
				slog.String("user_id", id),
				slog.String("error", err.Error()),
			)
		}
	}
	return user, nil
}

/*
Remove soft-deletes an account and revokes all of its sessions.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: ErrUserNotFound when no row exists
*/
func (service *Service) Remove(context stdctx.Context, id string) error {
	err := cache.Mutate(context, service.cache, constants.CacheOriginUsers, id, func(writeContext stdctx.Context) error {
		return service.repo.SoftDelete(writeContext, id)
	})
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if _, err := service.sessions.EndSessions(context, id, nil); err != nil {
		service.logger.WarnContext(context, "session_revocation_failed",
			slog.String("user_id", id),
			slog.String("error", err.Error()),
		)
	}

	service.logger.InfoContext(context, "user_removed", slog.String("user_id", id))
	return nil
}

/*
List serves the admin account listing with the standard query grammar.

Parameters:
  - context: context.Context
  - raw: Flattened query string parameters

Returns:
  - *search.Result[User]: Paginated envelope
  - error: Malformed filter or persistence failures
*/
func (service *Service) List(context stdctx.Context, raw map[string]string) (*search.Result[User], error) {
	return search.List(context, service.engine, service.repo, raw, search.Config[User]{
		Origin:      "users",
		Searchable:  searchableFields,
		SortFields:  sortFields,
		CursorValue: func(user User) string { return user.ID },
	})
}

// # MFA Lifecycle

/*
GenerateTotp creates a fresh MFA secret for an account that has not yet
enabled MFA and returns the provisioning URI.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - string: otpauth:// provisioning URI for QR rendering
  - error: ErrTotpAlreadyEnabled when MFA is already active
*/
func (service *Service) GenerateTotp(context stdctx.Context, userID string) (string, error) {
	user, err := service.FindOne(context, userID)
	if err != nil {
		return "", err
	}
	if user.TotpEnabled {
		return "", ErrTotpAlreadyEnabled
	}

	secret, uri, err := service.totp.Generate(user.Email)
	if err != nil {
		return "", err
	}

	err = cache.Mutate(context, service.cache, constants.CacheOriginUsers, userID, func(writeContext stdctx.Context) error {
		return service.repo.UpdateTotp(writeContext, userID, secret, false)
	})
	if err != nil {
		return "", err
	}
	return uri, nil
}

/*
EnableTotp confirms MFA enrollment.

An empty code enables without verification, reserved for trusted flows
that already proved possession of the device. Otherwise the code must
validate against the pending secret.

Parameters:
  - context: context.Context
  - userID: string
  - code: string

Returns:
  - error: ErrTotpAlreadyEnabled, ErrTotpSecretNotCreated or ErrTotpInvalid
*/
func (service *Service) EnableTotp(context stdctx.Context, userID, code string) error {
	user, err := service.FindOne(context, userID)
	if err != nil {
		return err
	}
	if user.TotpEnabled {
		return ErrTotpAlreadyEnabled
	}
	if user.TotpSecret == "" {
		return ErrTotpSecretNotCreated
	}
	if code != "" && !service.totp.Validate(code, user.TotpSecret) {
		return ErrTotpInvalid
	}

	return cache.Mutate(context, service.cache, constants.CacheOriginUsers, userID, func(writeContext stdctx.Context) error {
		return service.repo.UpdateTotp(writeContext, userID, user.TotpSecret, true)
	})
}

/*
DisableTotp clears MFA state unconditionally. Disabling an account that
never enrolled is a no-op so the operation is idempotent.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Persistence failures
*/
func (service *Service) DisableTotp(context stdctx.Context, userID string) error {
	return cache.Mutate(context, service.cache, constants.CacheOriginUsers, userID, func(writeContext stdctx.Context) error {
		return service.repo.UpdateTotp(writeContext, userID, "", false)
	})
}

/*
VerifyTotp checks a one-time code against the account's active secret.

Parameters:
  - context: context.Context
  - userID: string
  - code: string

Returns:
  - error: ErrTotpNotDefined when MFA is not enabled, ErrTotpInvalid on a bad code
*/
func (service *Service) VerifyTotp(context stdctx.Context, userID, code string) error {
	user, err := service.FindOne(context, userID)
	if err != nil {
		return err
	}
	if !user.TotpEnabled || user.TotpSecret == "" {
		return ErrTotpNotDefined
	}
	if !service.totp.Validate(code, user.TotpSecret) {
		return ErrTotpInvalid
	}
	return nil
}
