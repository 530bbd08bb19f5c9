// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package saves_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rvales/mediary/internal/library/saves"
	"github.com/rvales/mediary/internal/platform/apperr"
	"github.com/rvales/mediary/internal/platform/dberr"
	"github.com/rvales/mediary/internal/search"
)

// fakeRepository keys bookmarks by user and media, the same uniqueness the
// real store enforces with a constraint.
type fakeRepository struct {
	rows map[string]*saves.Save
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{rows: map[string]*saves.Save{}}
}

func saveKey(userID, mediaID string) string {
	return userID + "/" + mediaID
}

func (f *fakeRepository) Create(_ context.Context, save *saves.Save) error {
	key := saveKey(save.UserID, save.MediaID)
	if _, exists := f.rows[key]; exists {
		return apperr.Conflict("Resource already exists")
	}
	f.rows[key] = save
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, userID, mediaID string) error {
	key := saveKey(userID, mediaID)
	if _, exists := f.rows[key]; !exists {
		return dberr.ErrNotFound
	}
	delete(f.rows, key)
	return nil
}

func (f *fakeRepository) FindMany(_ context.Context, _ search.FindArgs) ([]saves.Save, error) {
	return nil, nil
}

func (f *fakeRepository) Count(_ context.Context, _ *search.Predicate) (int, error) {
	return 0, nil
}

func newService(repo saves.Repository) *saves.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return saves.NewService(repo, search.NewEngine(50, logger), logger)
}

/*
TestService_Create_Duplicate bookmarks a media once per user; a second save
surfaces the store conflict.
*/
func TestService_Create_Duplicate(t *testing.T) {
	service := newService(newFakeRepository())

	save, err := service.Create(context.Background(), "user-1", "media-1")
	require.NoError(t, err)
	assert.NotEmpty(t, save.ID)
	assert.Equal(t, "user-1", save.UserID)
	assert.Equal(t, "media-1", save.MediaID)

	_, err = service.Create(context.Background(), "user-1", "media-1")
	assert.True(t, apperr.HasCode(err, "CONFLICT"))

	// Another user saving the same media is no conflict.
	_, err = service.Create(context.Background(), "user-2", "media-1")
	assert.NoError(t, err)
}

/*
TestService_Remove deletes the caller's bookmark; nothing saved means
not found, including on a repeat removal.
*/
func TestService_Remove(t *testing.T) {
	service := newService(newFakeRepository())

	_, err := service.Create(context.Background(), "user-1", "media-1")
	require.NoError(t, err)

	require.NoError(t, service.Remove(context.Background(), "user-1", "media-1"))

	err = service.Remove(context.Background(), "user-1", "media-1")
	assert.ErrorIs(t, err, dberr.ErrNotFound)

	// Another user's bookmark is out of reach.
	_, err = service.Create(context.Background(), "user-2", "media-2")
	require.NoError(t, err)
	err = service.Remove(context.Background(), "user-1", "media-2")
	assert.ErrorIs(t, err, dberr.ErrNotFound)
}
