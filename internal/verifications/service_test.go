// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package verifications_test

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rvales/mediary/internal/platform/apperr"
	"github.com/rvales/mediary/internal/platform/dberr"
	"github.com/rvales/mediary/internal/search"
	"github.com/rvales/mediary/internal/verifications"
)

// fakeRepository keeps at most one pending code per user and type, which is
// exactly the invariant the store enforces.
type fakeRepository struct {
	rows map[string]*verifications.Verification
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{rows: map[string]*verifications.Verification{}}
}

func key(userID string, kind verifications.Type) string {
	return userID + "/" + string(kind)
}

func (f *fakeRepository) Create(_ context.Context, verification *verifications.Verification) error {
	f.rows[key(verification.UserID, verification.Type)] = verification
	return nil
}

func (f *fakeRepository) FindLatest(_ context.Context, userID string, kind verifications.Type) (*verifications.Verification, error) {
	row, ok := f.rows[key(userID, kind)]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return row, nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	for k, row := range f.rows {
		if row.ID == id {
			delete(f.rows, k)
			return nil
		}
	}
	return dberr.ErrNotFound
}

func (f *fakeRepository) DeleteByType(_ context.Context, userID string, kind verifications.Type) error {
	delete(f.rows, key(userID, kind))
	return nil
}

func (f *fakeRepository) FindMany(_ context.Context, _ search.FindArgs) ([]verifications.Verification, error) {
	return nil, nil
}

func (f *fakeRepository) Count(_ context.Context, _ *search.Predicate) (int, error) {
	return 0, nil
}

func newService(repo verifications.Repository) *verifications.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return verifications.NewService(repo, search.NewEngine(50, logger), logger)
}

/*
TestService_Issue creates a six digit code with a bounded lifetime and
replaces any pending code of the same type.
*/
func TestService_Issue(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)

	first, err := service.Issue(context.Background(), "user-1", verifications.TypeEmail, "rafa@mediary.app")
	require.NoError(t, err)

	// 1. Shape of the issued code.
	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), first.Code)
	assert.Equal(t, "rafa@mediary.app", first.Value)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), first.ExpiredAt, 5*time.Second)

	// 2. Reissuing voids the predecessor.
	second, err := service.Issue(context.Background(), "user-1", verifications.TypeEmail, "rafa@mediary.app")
	require.NoError(t, err)

	stored, err := repo.FindLatest(context.Background(), "user-1", verifications.TypeEmail)
	require.NoError(t, err)
	assert.Equal(t, second.ID, stored.ID)
	assert.NotEqual(t, first.ID, stored.ID)
}

/*
TestService_Consume burns a valid code exactly once.
*/
func TestService_Consume(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)

	issued, err := service.Issue(context.Background(), "user-1", verifications.TypeEmail, "rafa@mediary.app")
	require.NoError(t, err)

	// 1. First consume succeeds and carries the confirmed value.
	consumed, err := service.Consume(context.Background(), "user-1", verifications.TypeEmail, issued.Code)
	require.NoError(t, err)
	assert.Equal(t, "rafa@mediary.app", consumed.Value)

	// 2. The code is single use.
	_, err = service.Consume(context.Background(), "user-1", verifications.TypeEmail, issued.Code)
	assert.True(t, apperr.HasCode(err, "ERR_INVALID_CODE"))
}

/*
TestService_Consume_Rejections covers wrong, unknown, and expired codes.
*/
func TestService_Consume_Rejections(t *testing.T) {
	t.Run("wrong_code", func(t *testing.T) {
		repo := newFakeRepository()
		service := newService(repo)

		issued, err := service.Issue(context.Background(), "user-1", verifications.TypeEmail, "rafa@mediary.app")
		require.NoError(t, err)

		wrong := "000000"
		if wrong == issued.Code {
			wrong = "000001"
		}

		_, err = service.Consume(context.Background(), "user-1", verifications.TypeEmail, wrong)
		assert.True(t, apperr.HasCode(err, "ERR_INVALID_CODE"))

		// A wrong guess does not burn the pending code.
		_, err = repo.FindLatest(context.Background(), "user-1", verifications.TypeEmail)
		assert.NoError(t, err)
	})

	t.Run("no_pending_code", func(t *testing.T) {
		service := newService(newFakeRepository())

		_, err := service.Consume(context.Background(), "user-1", verifications.TypeEmail, "123456")
		assert.True(t, apperr.HasCode(err, "ERR_INVALID_CODE"))
	})

	t.Run("expired_code_is_deleted", func(t *testing.T) {
		repo := newFakeRepository()
		service := newService(repo)

		expired := &verifications.Verification{
			ID:        "ver-1",
			UserID:    "user-1",
			Type:      verifications.TypeEmail,
			Value:     "rafa@mediary.app",
			Code:      "123456",
			ExpiredAt: time.Now().Add(-time.Minute),
			CreatedAt: time.Now().Add(-time.Hour),
		}
		require.NoError(t, repo.Create(context.Background(), expired))

		_, err := service.Consume(context.Background(), "user-1", verifications.TypeEmail, "123456")
		assert.True(t, apperr.HasCode(err, "ERR_INVALID_CODE"))

		// Expired codes are removed on sight, retrying cannot help.
		_, err = repo.FindLatest(context.Background(), "user-1", verifications.TypeEmail)
		assert.ErrorIs(t, err, dberr.ErrNotFound)
	})
}
