// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package sessions

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rvales/mediary/internal/platform/cache"
	"github.com/rvales/mediary/internal/platform/constants"
	"github.com/rvales/mediary/internal/platform/sec"
	"github.com/rvales/mediary/internal/search"
	"github.com/rvales/mediary/pkg/uuidv7"
)

// CreateInput describes one authentication attempt to record.
//
// Failure is nil for a successful login and carries the rejection code
// otherwise.
type CreateInput struct {
	UserID    string
	Failure   *string
	IPAddress string
	UserAgent string
}

// # Service

// Service implements the session business logic.
type Service struct {
	repo   Repository
	tokens *sec.TokenService
	cache  cache.Store
	engine *search.Engine
	logger *slog.Logger
}

// NewService wires the session service with its dependencies.
func NewService(repo Repository, tokens *sec.TokenService, cacheStore cache.Store, engine *search.Engine, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
		cache:  cacheStore,
		engine: engine,
		logger: logger,
	}
}

/*
Create records an authentication attempt and, when successful, signs the
session token.

The attempt number is a per-user sequence so clients can show "login #42"
style history. The session expiry is taken from the signed claims so the
row and the token can never disagree.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Session: The persisted attempt
  - string: Signed session token, empty for failed attempts
  - error: Persistence or signing failures
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Session, string, error) {
	number, err := service.repo.NextNumber(context, input.UserID)
	if err != nil {
		return nil, "", err
	}

	session := &Session{
		ID:        uuidv7.New(),
		UserID:    input.UserID,
		Success:   input.Failure == nil,
		Error:     input.Failure,
		IPAddress: input.IPAddress,
		UserAgent: input.UserAgent,
		Number:    number,
		CreatedAt: time.Now(),
	}

	var token string
	if session.Success {
		signed, claims, err := service.tokens.Generate(input.UserID, session.ID)
		if err != nil {
			return nil, "", err
		}
		token = signed
		expiredAt := claims.ExpiresAt.Time
		session.ExpiredAt = &expiredAt
	}

	if err := service.repo.Create(context, session); err != nil {
		return nil, "", err
	}

	service.logger.InfoContext(context, "session_recorded",
		slog.String("user_id", input.UserID),
		slog.Bool("success", session.Success),
		slog.Int("number", number),
	)
	return session, token, nil
}

/*
FindActive returns the session only if it can still authenticate requests.

Parameters:
  - context: context.Context
  - userID: string
  - sessionID: string

Returns:
  - *Session: Hydrated active session
  - error: dberr.ErrNotFound when no active row matches
*/
func (service *Service) FindActive(context context.Context, userID, sessionID string) (*Session, error) {
	return service.repo.FindActive(context, userID, sessionID)
}

/*
EndSessions revokes sessions and evicts their guard cache entries so the
revocation takes effect on the very next request.

A nil sessionID ends every active session of the user.

Parameters:
  - context: context.Context
  - userID: string
  - sessionID: *string

Returns:
  - []string: IDs of the sessions that were ended
  - error: Persistence or cache eviction failures
*/
func (service *Service) EndSessions(context context.Context, userID string, sessionID *string) ([]string, error) {
	ended, err := service.repo.EndSessions(context, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if len(ended) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ended))
	for index, id := range ended {
		keys[index] = fmt.Sprintf(constants.SessionCacheKeyFormat, userID, id)
	}

	// Without the eviction a revoked session would stay valid until its
	// cache entry ages out.
	if err := service.cache.DeleteMany(context, constants.CacheOriginAuthGuard, keys); err != nil {
		return ended, err
	}

	service.logger.InfoContext(context, "sessions_ended",
		slog.String("user_id", userID),
		slog.Int("count", len(ended)),
	)
	return ended, nil
}

/*
List serves the admin session listing with the standard query grammar.

Parameters:
  - context: context.Context
  - raw: Flattened query string parameters

Returns:
  - *search.Result[Session]: Paginated envelope
  - error: Malformed filter or persistence failures
*/
func (service *Service) List(context context.Context, raw map[string]string) (*search.Result[Session], error) {
	return search.List(context, service.engine, service.repo, raw, search.Config[Session]{
		Origin:      "sessions",
		Searchable:  searchableFields,
		SortFields:  sortFields,
		CursorValue: func(session Session) string { return session.ID },
	})
}
