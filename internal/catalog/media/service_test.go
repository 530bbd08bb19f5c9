// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package media_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rvales/mediary/internal/catalog/media"
	"github.com/rvales/mediary/internal/platform/apperr"
	"github.com/rvales/mediary/internal/platform/dberr"
	"github.com/rvales/mediary/internal/platform/sec"
	"github.com/rvales/mediary/internal/search"
)

// fakeRepository keeps entries in memory, indexed by id and slug.
type fakeRepository struct {
	byID map[string]*media.Media
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{byID: map[string]*media.Media{}}
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*media.Media, error) {
	entry, ok := f.byID[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return entry, nil
}

func (f *fakeRepository) FindBySlug(_ context.Context, slug string) (*media.Media, error) {
	for _, entry := range f.byID {
		if entry.Slug == slug {
			return entry, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeRepository) SlugExists(_ context.Context, slug string) (bool, error) {
	_, err := f.FindBySlug(context.Background(), slug)
	return err == nil, nil
}

func (f *fakeRepository) Create(_ context.Context, entry *media.Media) error {
	f.byID[entry.ID] = entry
	return nil
}

func (f *fakeRepository) Update(_ context.Context, entry *media.Media) error {
	if _, ok := f.byID[entry.ID]; !ok {
		return dberr.ErrNotFound
	}
	f.byID[entry.ID] = entry
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeRepository) FindMany(_ context.Context, _ search.FindArgs) ([]media.Media, error) {
	return nil, nil
}

func (f *fakeRepository) Count(_ context.Context, _ *search.Predicate) (int, error) {
	return 0, nil
}

func newService(repo media.Repository) *media.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return media.NewService(repo, search.NewEngine(50, logger), logger)
}

func memberIdentity(userID string) *sec.Identity {
	return &sec.Identity{UserID: userID, SessionID: "session-1", Role: sec.RoleMember}
}

/*
TestService_Create_SlugGeneration derives slugs from the name and keeps
them unique under collision.
*/
func TestService_Create_SlugGeneration(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)

	first, err := service.Create(context.Background(), "owner-1", media.CreateInput{
		Name: "The Long Tomorrow", Type: media.TypeSeries,
	})
	require.NoError(t, err)
	assert.Equal(t, "the-long-tomorrow", first.Slug)

	// Same name again takes the next suffix.
	second, err := service.Create(context.Background(), "owner-1", media.CreateInput{
		Name: "The Long Tomorrow", Type: media.TypeSeries,
	})
	require.NoError(t, err)
	assert.Equal(t, "the-long-tomorrow-2", second.Slug)

	third, err := service.Create(context.Background(), "owner-1", media.CreateInput{
		Name: "The Long Tomorrow", Type: media.TypeSeries,
	})
	require.NoError(t, err)
	assert.Equal(t, "the-long-tomorrow-3", third.Slug)

	// A name with no slug-safe characters falls back to a default base.
	blank, err := service.Create(context.Background(), "owner-1", media.CreateInput{
		Name: "???", Type: media.TypeMovie,
	})
	require.NoError(t, err)
	assert.Equal(t, "entry", blank.Slug)
}

/*
TestService_FindOne_Visibility hides unpublished entries from everyone but
the owner and moderators.
*/
func TestService_FindOne_Visibility(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)

	published, err := service.Create(context.Background(), "owner-1", media.CreateInput{
		Name: "Published Entry", Type: media.TypeMovie, Published: true,
	})
	require.NoError(t, err)

	draft, err := service.Create(context.Background(), "owner-1", media.CreateInput{
		Name: "Draft Entry", Type: media.TypeMovie,
	})
	require.NoError(t, err)

	tests := []struct {
		name     string
		mediaID  string
		identity *sec.Identity
		visible  bool
	}{
		{"published_anonymous", published.ID, nil, true},
		{"published_stranger", published.ID, memberIdentity("someone-else"), true},
		{"draft_anonymous", draft.ID, nil, false},
		{"draft_stranger", draft.ID, memberIdentity("someone-else"), false},
		{"draft_owner", draft.ID, memberIdentity("owner-1"), true},
		{"draft_moderator", draft.ID, &sec.Identity{UserID: "mod-1", Role: sec.RoleModerator}, true},
		{"unknown_id", "missing", memberIdentity("owner-1"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := service.FindOne(context.Background(), tt.mediaID, tt.identity)

			if tt.visible {
				require.NoError(t, err)
				assert.Equal(t, tt.mediaID, entry.ID)
			} else {
				// Invisible and missing entries are indistinguishable.
				assert.True(t, apperr.HasCode(err, "ERR_MEDIA_NOT_FOUND"))
			}
		})
	}
}

/*
TestService_RequireEditable lets owners and moderators mutate, nobody else.
*/
func TestService_RequireEditable(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)

	entry, err := service.Create(context.Background(), "owner-1", media.CreateInput{
		Name: "Editable Entry", Type: media.TypeBook, Published: true,
	})
	require.NoError(t, err)

	// 1. Owner passes.
	_, err = service.RequireEditable(context.Background(), entry.ID, memberIdentity("owner-1"))
	assert.NoError(t, err)

	// 2. Moderator passes.
	_, err = service.RequireEditable(context.Background(), entry.ID, &sec.Identity{UserID: "mod-1", Role: sec.RoleModerator})
	assert.NoError(t, err)

	// 3. A stranger can see the published entry but not touch it.
	_, err = service.RequireEditable(context.Background(), entry.ID, memberIdentity("someone-else"))
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "FORBIDDEN", ae.Code)
}

/*
TestService_Update applies partial changes and leaves nil fields alone.
*/
func TestService_Update(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)

	entry, err := service.Create(context.Background(), "owner-1", media.CreateInput{
		Name: "Original Name", Description: "Original description", Type: media.TypePodcast,
	})
	require.NoError(t, err)

	newName := "Renamed"
	published := true
	updated, err := service.Update(context.Background(), entry.ID, memberIdentity("owner-1"), media.UpdateInput{
		Name:      &newName,
		Published: &published,
	})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Name)
	assert.True(t, updated.Published)
	assert.Equal(t, "Original description", updated.Description)
}

/*
TestService_Remove deletes through the editable gate.
*/
func TestService_Remove(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)

	entry, err := service.Create(context.Background(), "owner-1", media.CreateInput{
		Name: "Doomed Entry", Type: media.TypeMovie, Published: true,
	})
	require.NoError(t, err)

	// Strangers cannot remove.
	err = service.Remove(context.Background(), entry.ID, memberIdentity("someone-else"))
	assert.Error(t, err)

	require.NoError(t, service.Remove(context.Background(), entry.ID, memberIdentity("owner-1")))

	_, err = service.FindOne(context.Background(), entry.ID, memberIdentity("owner-1"))
	assert.True(t, apperr.HasCode(err, "ERR_MEDIA_NOT_FOUND"))
}
