// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package sessions_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rvales/mediary/internal/platform/dberr"
	"github.com/rvales/mediary/internal/platform/sec"
	"github.com/rvales/mediary/internal/search"
	"github.com/rvales/mediary/internal/sessions"
	"github.com/rvales/mediary/pkg/pointer"
)

// fakeRepository records sessions in memory, keyed per user.
type fakeRepository struct {
	rows  []*sessions.Session
	ended []string
}

func (f *fakeRepository) Create(_ context.Context, session *sessions.Session) error {
	f.rows = append(f.rows, session)
	return nil
}

func (f *fakeRepository) FindActive(_ context.Context, userID, sessionID string) (*sessions.Session, error) {
	for _, row := range f.rows {
		if row.UserID == userID && row.ID == sessionID && row.IsActive() {
			return row, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeRepository) NextNumber(_ context.Context, userID string) (int, error) {
	highest := 0
	for _, row := range f.rows {
		if row.UserID == userID && row.Number > highest {
			highest = row.Number
		}
	}
	return highest + 1, nil
}

func (f *fakeRepository) EndSessions(_ context.Context, userID string, sessionID *string) ([]string, error) {
	now := time.Now()
	var ended []string
	for _, row := range f.rows {
		if row.UserID != userID || !row.IsActive() {
			continue
		}
		if sessionID != nil && row.ID != *sessionID {
			continue
		}
		row.ExpiredAt = &now
		ended = append(ended, row.ID)
	}
	f.ended = ended
	return ended, nil
}

func (f *fakeRepository) FindMany(_ context.Context, _ search.FindArgs) ([]sessions.Session, error) {
	return nil, nil
}

func (f *fakeRepository) Count(_ context.Context, _ *search.Predicate) (int, error) {
	return 0, nil
}

// recordingStore captures guard cache evictions.
type recordingStore struct {
	deleted map[string][]string
}

func (r *recordingStore) Get(_ context.Context, _, _ string, _ any) (bool, error) { return false, nil }

func (r *recordingStore) Set(_ context.Context, _, _ string, _ any, _ time.Duration) error {
	return nil
}

func (r *recordingStore) Delete(_ context.Context, _, _ string) error { return nil }

func (r *recordingStore) DeleteMany(_ context.Context, origin string, keys []string) error {
	if r.deleted == nil {
		r.deleted = map[string][]string{}
	}
	r.deleted[origin] = append(r.deleted[origin], keys...)
	return nil
}

func newService(repo sessions.Repository, store *recordingStore) *sessions.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens, err := sec.NewTokenService("test-secret", "mediary.app", time.Hour)
	if err != nil {
		panic(err)
	}
	return sessions.NewService(repo, tokens, store, search.NewEngine(50, logger), logger)
}

/*
TestService_Create_Success signs a token and binds the row expiry to it.
*/
func TestService_Create_Success(t *testing.T) {
	repo := &fakeRepository{}
	service := newService(repo, &recordingStore{})

	session, token, err := service.Create(context.Background(), sessions.CreateInput{
		UserID:    "user-1",
		IPAddress: "203.0.113.7",
		UserAgent: "test-agent",
	})
	require.NoError(t, err)

	assert.True(t, session.Success)
	assert.Nil(t, session.Error)
	assert.Equal(t, 1, session.Number)
	assert.NotEmpty(t, token)

	// Row expiry comes from the signed claims, one hour in this setup.
	require.NotNil(t, session.ExpiredAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), *session.ExpiredAt, 5*time.Second)

	// A second login gets the next number in the per-user sequence.
	second, _, err := service.Create(context.Background(), sessions.CreateInput{UserID: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, 2, second.Number)
}

/*
TestService_Create_Failure records the attempt without issuing a token.
*/
func TestService_Create_Failure(t *testing.T) {
	repo := &fakeRepository{}
	service := newService(repo, &recordingStore{})

	session, token, err := service.Create(context.Background(), sessions.CreateInput{
		UserID:  "user-1",
		Failure: pointer.To("ERR_INCORRECT_PASSWORD"),
	})
	require.NoError(t, err)

	assert.False(t, session.Success)
	require.NotNil(t, session.Error)
	assert.Equal(t, "ERR_INCORRECT_PASSWORD", *session.Error)
	assert.Empty(t, token)
	assert.Nil(t, session.ExpiredAt)

	// Failed attempts still advance the sequence, they are part of history.
	next, _, err := service.Create(context.Background(), sessions.CreateInput{UserID: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, 2, next.Number)
}

/*
TestService_EndSessions revokes rows and evicts their guard cache keys.
*/
func TestService_EndSessions(t *testing.T) {
	repo := &fakeRepository{}
	store := &recordingStore{}
	service := newService(repo, store)

	first, _, err := service.Create(context.Background(), sessions.CreateInput{UserID: "user-1"})
	require.NoError(t, err)
	second, _, err := service.Create(context.Background(), sessions.CreateInput{UserID: "user-1"})
	require.NoError(t, err)

	ended, err := service.EndSessions(context.Background(), "user-1", nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{first.ID, second.ID}, ended)

	// One eviction per revoked session, under the guard namespace.
	keys := store.deleted["auth-guard"]
	assert.ElementsMatch(t, []string{
		"user:user-1:session:" + first.ID,
		"user:user-1:session:" + second.ID,
	}, keys)

	// Revoked sessions no longer authenticate.
	_, err = service.FindActive(context.Background(), "user-1", first.ID)
	assert.ErrorIs(t, err, dberr.ErrNotFound)

	// Nothing left to end.
	ended, err = service.EndSessions(context.Background(), "user-1", nil)
	require.NoError(t, err)
	assert.Empty(t, ended)
}
