// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package components_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rvales/mediary/internal/catalog/components"
	"github.com/rvales/mediary/internal/catalog/media"
	"github.com/rvales/mediary/internal/platform/apperr"
	"github.com/rvales/mediary/internal/platform/dberr"
	"github.com/rvales/mediary/internal/platform/sec"
	"github.com/rvales/mediary/internal/search"
	"github.com/rvales/mediary/pkg/pointer"
)

// fakeGate mimics the parent entry: visible when published or owned,
// editable only by the owner.
type fakeGate struct {
	entry *media.Media
}

func (f *fakeGate) FindOne(_ context.Context, id string, identity *sec.Identity) (*media.Media, error) {
	if f.entry == nil || f.entry.ID != id {
		return nil, media.ErrMediaNotFound
	}
	if !f.entry.Published && (identity == nil || identity.UserID != f.entry.OwnerID) {
		return nil, media.ErrMediaNotFound
	}
	return f.entry, nil
}

func (f *fakeGate) RequireEditable(ctx context.Context, id string, identity *sec.Identity) (*media.Media, error) {
	entry, err := f.FindOne(ctx, id, identity)
	if err != nil {
		return nil, err
	}
	if identity == nil || identity.UserID != entry.OwnerID {
		return nil, apperr.Forbidden("You cannot modify this entry")
	}
	return entry, nil
}

type fakeRepository struct {
	byID map[string]*components.Component
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{byID: map[string]*components.Component{}}
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*components.Component, error) {
	component, ok := f.byID[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return component, nil
}

func (f *fakeRepository) Create(_ context.Context, component *components.Component) error {
	f.byID[component.ID] = component
	return nil
}

func (f *fakeRepository) Update(_ context.Context, component *components.Component) error {
	f.byID[component.ID] = component
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeRepository) NextPosition(_ context.Context, mediaID string) (int, error) {
	highest := 0
	for _, component := range f.byID {
		if component.MediaID == mediaID && component.Position > highest {
			highest = component.Position
		}
	}
	return highest + 1, nil
}

func (f *fakeRepository) FindMany(_ context.Context, _ search.FindArgs) ([]components.Component, error) {
	return nil, nil
}

func (f *fakeRepository) Count(_ context.Context, _ *search.Predicate) (int, error) {
	return 0, nil
}

func newService(repo components.Repository, gate components.MediaGate) *components.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return components.NewService(repo, gate, search.NewEngine(50, logger), logger)
}

func owner() *sec.Identity {
	return &sec.Identity{UserID: "owner-1", SessionID: "session-1", Role: sec.RoleMember}
}

func parentEntry(published bool) *media.Media {
	return &media.Media{ID: "media-1", OwnerID: "owner-1", Published: published}
}

/*
TestService_Create_PositionSequence appends at the end of the parent entry
unless an explicit position is given.
*/
func TestService_Create_PositionSequence(t *testing.T) {
	service := newService(newFakeRepository(), &fakeGate{entry: parentEntry(true)})

	first, err := service.Create(context.Background(), "media-1", owner(), components.CreateInput{
		Name: "Episode One", Kind: components.KindEpisode,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Position)

	second, err := service.Create(context.Background(), "media-1", owner(), components.CreateInput{
		Name: "Episode Two", Kind: components.KindEpisode,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, second.Position)

	// An explicit position wins over the sequence.
	pinned, err := service.Create(context.Background(), "media-1", owner(), components.CreateInput{
		Name: "Special", Kind: components.KindEpisode, Position: pointer.To(99),
	})
	require.NoError(t, err)
	assert.Equal(t, 99, pinned.Position)
}

/*
TestService_Create_ParentGate refuses components on entries the caller
cannot edit.
*/
func TestService_Create_ParentGate(t *testing.T) {
	service := newService(newFakeRepository(), &fakeGate{entry: parentEntry(true)})

	stranger := &sec.Identity{UserID: "someone-else", Role: sec.RoleMember}
	_, err := service.Create(context.Background(), "media-1", stranger, components.CreateInput{
		Name: "Sneaky", Kind: components.KindEpisode,
	})

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "FORBIDDEN", ae.Code)

	// Unknown parents look missing, not forbidden.
	_, err = service.Create(context.Background(), "other-media", owner(), components.CreateInput{
		Name: "Orphan", Kind: components.KindEpisode,
	})
	assert.True(t, apperr.HasCode(err, "ERR_MEDIA_NOT_FOUND"))
}

/*
TestService_FindOne_ParentVisibility hides components of draft entries from
everyone but the owner.
*/
func TestService_FindOne_ParentVisibility(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo, &fakeGate{entry: parentEntry(false)})

	created, err := service.Create(context.Background(), "media-1", owner(), components.CreateInput{
		Name: "Hidden Episode", Kind: components.KindEpisode,
	})
	require.NoError(t, err)

	// 1. Owner sees it.
	found, err := service.FindOne(context.Background(), created.ID, owner())
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	// 2. Anonymous callers get a component-level not found.
	_, err = service.FindOne(context.Background(), created.ID, nil)
	assert.True(t, apperr.HasCode(err, "ERR_COMPONENT_NOT_FOUND"))
}
