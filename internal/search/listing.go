// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package search

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/rvales/mediary/internal/platform/apperr"
)

// ErrInvalidPaginationMode is raised when a listing restricted to one
// pagination mode receives a request resolving to the other.
var ErrInvalidPaginationMode = apperr.Business(http.StatusBadRequest, "ERR_INVALID_PAGINATION_MODE")

// CursorSpec is the continuation position handed to repositories.
type CursorSpec struct {
	// Key is the traversal field.
	Key string
	// Value is the last-seen value from the previous page.
	Value string
}

// FindArgs is the fetch request a repository receives from the engine.
type FindArgs struct {
	Skip   int
	Take   int
	Where  *Predicate
	Order  *OrderSpec
	Cursor *CursorSpec

	// Select restricts the projection to these columns. Empty means the
	// repository's default projection.
	Select []string
}

// Repository is the minimal storage capability a listing needs.
type Repository[T any] interface {
	FindMany(ctx context.Context, args FindArgs) ([]T, error)
	Count(ctx context.Context, where *Predicate) (int, error)
}

// Config declares an entity's listing surface.
//
// One Config per endpoint, built statically at service construction.
type Config[T any] struct {
	// Origin names the entity in log lines.
	Origin string

	// RestrictMode, when set, rejects requests resolving to the other
	// pagination mode.
	RestrictMode Mode

	// Searchable is the entity's field registry.
	Searchable Fields

	// SortFields whitelists the fields orderBy may reference.
	SortFields []string

	// Merge is ANDed into every compiled predicate (owner/tenant scoping).
	// It always wins on conflict.
	Merge *Predicate

	// Select is the column projection passed through to the repository.
	Select []string

	// CursorValue extracts the cursor-key value from a row, used to build
	// nextCursor. Required for cursor-capable listings.
	CursorValue func(T) string

	// Transform optionally post-processes the fetched rows.
	Transform func([]T) []T
}

// Engine holds the listing limits and logger shared by all entities.
type Engine struct {
	// FetchLimit is both the default and the maximum page size.
	FetchLimit int

	Logger *slog.Logger
}

// NewEngine constructs a listing engine.
func NewEngine(fetchLimit int, logger *slog.Logger) *Engine {
	return &Engine{FetchLimit: fetchLimit, Logger: logger}
}

// List runs the full listing pipeline for one request.
//
// # Flow
//  1. Parse the raw query into pagination + residual filters.
//  2. Enforce the configured pagination mode, if any.
//  3. Compile filters against the field registry, merge scoping predicate.
//  4. Fetch rows; offset mode also fetches the total count.
//  5. Shape the uniform [Result].
func List[T any](ctx context.Context, engine *Engine, repo Repository[T], raw map[string]string, cfg Config[T]) (*Result[T], error) {
	query := Parse(raw, engine.FetchLimit)

	if cfg.RestrictMode != "" && query.Mode != cfg.RestrictMode {
		return nil, ErrInvalidPaginationMode
	}

	where, order, err := Compile(query, cfg.Searchable, cfg.SortFields, cfg.Merge)
	if err != nil {
		return nil, err
	}

	// The continuation bound lives on the cursor key, so cursor pages are
	// ordered by that key alone. A sort on any other field is dropped.
	if query.Mode == ModeCursor && order != nil && order.Field != query.CursorKey {
		order = nil
	}

	var cursor *CursorSpec
	if query.Cursor != nil {
		cursor = &CursorSpec{Key: query.CursorKey, Value: query.Cursor[query.CursorKey]}
	}

	rows, err := repo.FindMany(ctx, FindArgs{
		Skip:   query.Skip,
		Take:   query.Take,
		Where:  where,
		Order:  order,
		Cursor: cursor,
		Select: cfg.Select,
	})
	if err != nil {
		return nil, err
	}

	if cfg.Transform != nil {
		rows = cfg.Transform(rows)
	}

	current := len(rows)

	if query.Mode == ModeOffset {
		count, err := repo.Count(ctx, where)
		if err != nil {
			return nil, err
		}

		currentPage, lastPage := PageBounds(query.Page, query.Take, count)

		engine.Logger.DebugContext(ctx, "listing_completed",
			slog.String("origin", cfg.Origin),
			slog.String("mode", string(ModeOffset)),
			slog.Int("count", count),
		)

		return &Result[T]{
			Mode:        ModeOffset,
			CurrentPage: currentPage,
			LastPage:    lastPage,
			Count:       count,
			Take:        query.Take,
			Current:     current,
			Data:        rows,
		}, nil
	}

	// A full page means more rows may exist; a short page ends traversal.
	var nextCursor *string
	if current == query.Take && current > 0 && cfg.CursorValue != nil {
		value := cfg.CursorValue(rows[current-1])
		nextCursor = &value
	}

	engine.Logger.DebugContext(ctx, "listing_completed",
		slog.String("origin", cfg.Origin),
		slog.String("mode", string(ModeCursor)),
		slog.Int("current", current),
	)

	return &Result[T]{
		Mode:       ModeCursor,
		NextCursor: nextCursor,
		Take:       query.Take,
		Current:    current,
		Data:       rows,
	}, nil
}
