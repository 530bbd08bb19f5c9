// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package lists_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rvales/mediary/internal/library/lists"
	"github.com/rvales/mediary/internal/platform/apperr"
	"github.com/rvales/mediary/internal/platform/dberr"
	"github.com/rvales/mediary/internal/platform/sec"
	"github.com/rvales/mediary/internal/search"
	"github.com/rvales/mediary/pkg/pointer"
)

type fakeRepository struct {
	byID  map[string]*lists.List
	items map[string][]lists.Item
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		byID:  map[string]*lists.List{},
		items: map[string][]lists.Item{},
	}
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*lists.List, error) {
	list, ok := f.byID[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return list, nil
}

func (f *fakeRepository) Create(_ context.Context, list *lists.List) error {
	f.byID[list.ID] = list
	return nil
}

func (f *fakeRepository) Update(_ context.Context, list *lists.List) error {
	f.byID[list.ID] = list
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	delete(f.byID, id)
	delete(f.items, id)
	return nil
}

func (f *fakeRepository) FindItems(_ context.Context, listID string) ([]lists.Item, error) {
	return f.items[listID], nil
}

func (f *fakeRepository) AddItem(_ context.Context, item *lists.Item) error {
	for _, existing := range f.items[item.ListID] {
		if existing.MediaID == item.MediaID {
			return apperr.Conflict("Resource already exists")
		}
	}
	f.items[item.ListID] = append(f.items[item.ListID], *item)
	return nil
}

func (f *fakeRepository) RemoveItem(_ context.Context, listID, itemID string) error {
	for index, existing := range f.items[listID] {
		if existing.ID == itemID {
			f.items[listID] = append(f.items[listID][:index], f.items[listID][index+1:]...)
			return nil
		}
	}
	return dberr.ErrNotFound
}

func (f *fakeRepository) NextItemPosition(_ context.Context, listID string) (int, error) {
	return len(f.items[listID]) + 1, nil
}

func (f *fakeRepository) FindMany(_ context.Context, _ search.FindArgs) ([]lists.List, error) {
	return nil, nil
}

func (f *fakeRepository) Count(_ context.Context, _ *search.Predicate) (int, error) {
	return 0, nil
}

func newService(repo lists.Repository) *lists.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return lists.NewService(repo, search.NewEngine(50, logger), logger)
}

func owner() *sec.Identity {
	return &sec.Identity{UserID: "owner-1", SessionID: "session-1", Role: sec.RoleMember}
}

func stranger() *sec.Identity {
	return &sec.Identity{UserID: "someone-else", Role: sec.RoleMember}
}

func moderator() *sec.Identity {
	return &sec.Identity{UserID: "mod-1", Role: sec.RoleModerator}
}

func seedList(t *testing.T, service *lists.Service, visibility lists.Visibility) *lists.List {
	t.Helper()

	list, err := service.Create(context.Background(), "owner-1", "Watch Later", visibility)
	require.NoError(t, err)
	return list
}

/*
TestService_FindOne_Visibility hides private lists from everyone but their
owner and moderators; missing and invisible are indistinguishable.
*/
func TestService_FindOne_Visibility(t *testing.T) {
	tests := []struct {
		name       string
		visibility lists.Visibility
		identity   *sec.Identity
		visible    bool
	}{
		{"public_list_anonymous", lists.VisibilityPublic, nil, true},
		{"public_list_stranger", lists.VisibilityPublic, stranger(), true},
		{"private_list_anonymous", lists.VisibilityPrivate, nil, false},
		{"private_list_stranger", lists.VisibilityPrivate, stranger(), false},
		{"private_list_owner", lists.VisibilityPrivate, owner(), true},
		{"private_list_moderator", lists.VisibilityPrivate, moderator(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newService(newFakeRepository())
			list := seedList(t, service, tt.visibility)

			detail, err := service.FindOne(context.Background(), list.ID, tt.identity)
			if tt.visible {
				require.NoError(t, err)
				assert.Equal(t, list.ID, detail.ID)
				assert.Empty(t, detail.Items)
				return
			}
			assert.True(t, apperr.HasCode(err, "ERR_LIST_NOT_FOUND"))
		})
	}

	t.Run("unknown_list", func(t *testing.T) {
		service := newService(newFakeRepository())

		_, err := service.FindOne(context.Background(), "no-such-list", owner())
		assert.True(t, apperr.HasCode(err, "ERR_LIST_NOT_FOUND"))
	})
}

/*
TestService_Update_Ownership lets only the owner (or a moderator) rename a
list; strangers on a public list are refused, not hidden.
*/
func TestService_Update_Ownership(t *testing.T) {
	service := newService(newFakeRepository())
	list := seedList(t, service, lists.VisibilityPublic)

	// 1. A stranger sees the public list but cannot touch it.
	_, err := service.Update(context.Background(), list.ID, stranger(), pointer.To("Hijacked"), nil)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "FORBIDDEN", ae.Code)

	// 2. On a private list the stranger gets not-found instead.
	hidden := seedList(t, service, lists.VisibilityPrivate)
	_, err = service.Update(context.Background(), hidden.ID, stranger(), pointer.To("Hijacked"), nil)
	assert.True(t, apperr.HasCode(err, "ERR_LIST_NOT_FOUND"))

	// 3. The owner renames and republishes.
	updated, err := service.Update(context.Background(), hidden.ID, owner(),
		pointer.To("Favorites"), pointer.To(lists.VisibilityPublic))
	require.NoError(t, err)
	assert.Equal(t, "Favorites", updated.Name)
	assert.Equal(t, lists.VisibilityPublic, updated.Visibility)
}

/*
TestService_Remove_Ownership deletes through the same ownership gate as
updates, with moderators allowed.
*/
func TestService_Remove_Ownership(t *testing.T) {
	service := newService(newFakeRepository())
	list := seedList(t, service, lists.VisibilityPublic)

	err := service.Remove(context.Background(), list.ID, stranger())
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "FORBIDDEN", ae.Code)

	require.NoError(t, service.Remove(context.Background(), list.ID, moderator()))

	_, err = service.FindOne(context.Background(), list.ID, owner())
	assert.True(t, apperr.HasCode(err, "ERR_LIST_NOT_FOUND"))
}

/*
TestService_Items appends items with sequential positions, refuses
duplicates, and gates item mutations on list ownership.
*/
func TestService_Items(t *testing.T) {
	service := newService(newFakeRepository())
	list := seedList(t, service, lists.VisibilityPrivate)

	first, err := service.AddItem(context.Background(), list.ID, owner(), "media-1")
	require.NoError(t, err)
	assert.Equal(t, 1, first.Position)

	second, err := service.AddItem(context.Background(), list.ID, owner(), "media-2")
	require.NoError(t, err)
	assert.Equal(t, 2, second.Position)

	// 1. The same media cannot enter a list twice.
	_, err = service.AddItem(context.Background(), list.ID, owner(), "media-1")
	assert.True(t, apperr.HasCode(err, "CONFLICT"))

	// 2. Strangers cannot reach the items of a private list.
	_, err = service.AddItem(context.Background(), list.ID, stranger(), "media-3")
	assert.True(t, apperr.HasCode(err, "ERR_LIST_NOT_FOUND"))
	err = service.RemoveItem(context.Background(), list.ID, stranger(), first.ID)
	assert.True(t, apperr.HasCode(err, "ERR_LIST_NOT_FOUND"))

	// 3. The owner removes one item; the other survives.
	require.NoError(t, service.RemoveItem(context.Background(), list.ID, owner(), first.ID))
	detail, err := service.FindOne(context.Background(), list.ID, owner())
	require.NoError(t, err)
	require.Len(t, detail.Items, 1)
	assert.Equal(t, "media-2", detail.Items[0].MediaID)
}
