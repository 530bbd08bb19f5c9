// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rvales/mediary/internal/search"
)

/*
TestBuildSelect_PlainListing checks the minimal statement shape.
*/
func TestBuildSelect_PlainListing(t *testing.T) {
	sql, params := search.BuildSelect("catalog.media", []string{"id", "name"}, search.FindArgs{
		Take: 10,
		Skip: 20,
	})

	assert.Equal(t, "SELECT id, name FROM catalog.media LIMIT $1 OFFSET $2", sql)
	assert.Equal(t, []any{10, 20}, params)
}

/*
TestBuildSelect_PredicateRendering checks operator translation and
parameter ordering.
*/
func TestBuildSelect_PredicateRendering(t *testing.T) {
	where := &search.Predicate{
		Fields: search.Clause{
			"name":     {search.OpContains: "dune"},
			"position": {search.OpGreaterOrEqual: 2.0, search.OpLowerThan: 9.0},
		},
	}

	sql, params := search.BuildSelect("catalog.component", []string{"id"}, search.FindArgs{
		Where: where,
		Take:  5,
	})

	// Fields and operators render in sorted order for statement stability.
	assert.Equal(t,
		"SELECT id FROM catalog.component WHERE name ILIKE '%' || $1 || '%' AND position >= $2 AND position < $3 LIMIT $4",
		sql,
	)
	assert.Equal(t, []any{"dune", 2.0, 9.0, 5}, params)
}

/*
TestBuildSelect_FreeTextDisjunction checks OR-clause grouping.
*/
func TestBuildSelect_FreeTextDisjunction(t *testing.T) {
	where := &search.Predicate{
		Fields: search.Clause{"ownerid": {search.OpEqual: "owner-1"}},
		Or: []search.Clause{
			{"name": {search.OpContains: "x"}},
			{"description": {search.OpContains: "x"}},
		},
	}

	sql, params := search.BuildSelect("catalog.media", []string{"id"}, search.FindArgs{Where: where})

	assert.Equal(t,
		"SELECT id FROM catalog.media WHERE ownerid = $1 AND (name ILIKE '%' || $2 || '%' OR description ILIKE '%' || $3 || '%')",
		sql,
	)
	assert.Len(t, params, 3)
}

/*
TestBuildSelect_CursorContinuation checks the cursor bound and ordering.
*/
func TestBuildSelect_CursorContinuation(t *testing.T) {
	t.Run("ascending_default", func(t *testing.T) {
		sql, params := search.BuildSelect("catalog.media", []string{"id"}, search.FindArgs{
			Cursor: &search.CursorSpec{Key: "id", Value: "row-09"},
			Skip:   1,
			Take:   10,
		})

		assert.Equal(t,
			"SELECT id FROM catalog.media WHERE id::text >= $1 ORDER BY id ASC LIMIT $2 OFFSET $3",
			sql,
		)
		assert.Equal(t, []any{"row-09", 10, 1}, params)
	})

	t.Run("descending_when_sorted_on_cursor_key", func(t *testing.T) {
		sql, _ := search.BuildSelect("catalog.media", []string{"id"}, search.FindArgs{
			Cursor: &search.CursorSpec{Key: "id", Value: "row-09"},
			Order:  &search.OrderSpec{Field: "id", Desc: true},
			Skip:   1,
			Take:   10,
		})

		assert.Contains(t, sql, "id::text <= $1")
		assert.Contains(t, sql, "ORDER BY id DESC")
	})

	t.Run("sort_on_another_field_is_ignored", func(t *testing.T) {
		// With rows {(name "B", id 1), (name "A", id 2)} and take=1, a
		// continuation after id 2 ordered by name would skip row 1 via
		// OFFSET while the bound excludes it. The cursor key must own
		// the ordering.
		sql, _ := search.BuildSelect("catalog.media", []string{"id"}, search.FindArgs{
			Cursor: &search.CursorSpec{Key: "id", Value: "2"},
			Order:  &search.OrderSpec{Field: "name", Desc: false},
			Skip:   1,
			Take:   1,
		})

		assert.Contains(t, sql, "ORDER BY id ASC")
		assert.NotContains(t, sql, "name")
	})
}

/*
TestBuildCount checks the counterpart COUNT statement.
*/
func TestBuildCount(t *testing.T) {
	where := search.Where(search.Eq("ownerid", "owner-1"))

	sql, params := search.BuildCount("library.list", where)

	assert.Equal(t, "SELECT COUNT(*) FROM library.list WHERE ownerid = $1", sql)
	assert.Equal(t, []any{"owner-1"}, params)

	emptySQL, emptyParams := search.BuildCount("library.list", nil)
	require.Equal(t, "SELECT COUNT(*) FROM library.list", emptySQL)
	assert.Empty(t, emptyParams)
}
