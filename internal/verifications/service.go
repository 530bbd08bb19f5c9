// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package verifications

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"net/http"
	"time"

	"github.com/rvales/mediary/internal/platform/apperr"
	"github.com/rvales/mediary/internal/platform/dberr"
	"github.com/rvales/mediary/internal/search"
	"github.com/rvales/mediary/pkg/uuidv7"
)

// ErrInvalidCode covers every consume failure. Expired, unknown, and
// mismatched codes are indistinguishable to the caller so the endpoint
// cannot be used to probe which codes exist.
var ErrInvalidCode = apperr.Business(http.StatusBadRequest, "ERR_INVALID_CODE")

// codeTTL is how long an issued code stays consumable.
const codeTTL = 15 * time.Minute

// codeSpace bounds the numeric code range, producing six digits.
var codeSpace = big.NewInt(1000000)

// # Service

// Service implements the verification code business logic.
type Service struct {
	repo   Repository
	engine *search.Engine
	logger *slog.Logger
}

// NewService wires the verification service with its dependencies.
func NewService(repo Repository, engine *search.Engine, logger *slog.Logger) *Service {
	return &Service{repo: repo, engine: engine, logger: logger}
}

// generateCode produces a six digit code from the OS entropy source.
func generateCode() (string, error) {
	value, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", apperr.Internal(fmt.Errorf("verification code generation: %w", err))
	}
	return fmt.Sprintf("%06d", value.Int64()), nil
}

/*
Issue creates a fresh code for the user, replacing any pending code of the
same type.

Delivery (mail, SMS) is the caller's concern; the service only persists
the code and hands it back.

Parameters:
  - context: context.Context
  - userID: string
  - kind: Type
  - value: The contact being confirmed

Returns:
  - *Verification: The persisted code
  - error: Persistence failures
*/
func (service *Service) Issue(context context.Context, userID string, kind Type, value string) (*Verification, error) {
	code, err := generateCode()
	if err != nil {
		return nil, err
	}

	// Only one pending code per type, a reissued code voids its predecessor.
	if err := service.repo.DeleteByType(context, userID, kind); err != nil {
		return nil, err
	}

	now := time.Now()
	verification := &Verification{
		ID:        uuidv7.New(),
		UserID:    userID,
		Type:      kind,
		Value:     value,
		Code:      code,
		ExpiredAt: now.Add(codeTTL),
		CreatedAt: now,
	}

	if err := service.repo.Create(context, verification); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "verification_issued",
		slog.String("user_id", userID),
		slog.String("type", string(kind)),
	)
	return verification, nil
}

/*
Consume validates and burns a code.

An expired code is deleted on sight so it can never be retried. On success
the row is deleted, making the code single use.

Parameters:
  - context: context.Context
  - userID: string
  - kind: Type
  - code: string

Returns:
  - *Verification: The consumed code, carrying the confirmed value
  - error: ErrInvalidCode for any unusable code
*/
func (service *Service) Consume(context context.Context, userID string, kind Type, code string) (*Verification, error) {
	verification, err := service.repo.FindLatest(context, userID, kind)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, ErrInvalidCode
		}
		return nil, err
	}

	if verification.IsExpired() {
		_ = service.repo.Delete(context, verification.ID)
		return nil, ErrInvalidCode
	}
	if verification.Code != code {
		return nil, ErrInvalidCode
	}

	if err := service.repo.Delete(context, verification.ID); err != nil {
		return nil, err
	}
	return verification, nil
}

/*
List serves the admin verification listing with the standard query grammar.

Parameters:
  - context: context.Context
  - raw: Flattened query string parameters

Returns:
  - *search.Result[Verification]: Paginated envelope
  - error: Malformed filter or persistence failures
*/
func (service *Service) List(context context.Context, raw map[string]string) (*search.Result[Verification], error) {
	return search.List(context, service.engine, service.repo, raw, search.Config[Verification]{
		Origin:      "verifications",
		Searchable:  searchableFields,
		SortFields:  sortFields,
		CursorValue: func(verification Verification) string { return verification.ID },
	})
}
