// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rvales/mediary/internal/search"
)

const testFetchLimit = 50

/*
TestParse_PaginationModeSelection checks cursor/offset mode resolution.
*/
func TestParse_PaginationModeSelection(t *testing.T) {
	tests := []struct {
		name       string
		raw        map[string]string
		wantMode   search.Mode
		wantCursor map[string]string
		wantSkip   int
	}{
		{
			name:       "no_cursor_is_offset",
			raw:        map[string]string{"page": "2", "take": "10"},
			wantMode:   search.ModeOffset,
			wantCursor: nil,
			wantSkip:   20,
		},
		{
			name:       "cursor_null_is_first_cursor_page",
			raw:        map[string]string{"cursor": "null", "take": "10"},
			wantMode:   search.ModeCursor,
			wantCursor: nil,
			wantSkip:   0,
		},
		{
			name:       "cursor_value_continues_and_skips_cursor_row",
			raw:        map[string]string{"cursor": "abc-123", "take": "10"},
			wantMode:   search.ModeCursor,
			wantCursor: map[string]string{"id": "abc-123"},
			wantSkip:   1,
		},
		{
			name:       "custom_cursor_key",
			raw:        map[string]string{"cursor": "42", "cursorKey": "position"},
			wantMode:   search.ModeCursor,
			wantCursor: map[string]string{"position": "42"},
			wantSkip:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := search.Parse(tt.raw, testFetchLimit)

			assert.Equal(t, tt.wantMode, query.Mode)
			assert.Equal(t, tt.wantCursor, query.Cursor)
			assert.Equal(t, tt.wantSkip, query.Skip)
		})
	}
}

/*
TestParse_TakeClamping checks page size defaults and bounds.
*/
func TestParse_TakeClamping(t *testing.T) {
	tests := []struct {
		name     string
		take     string
		wantTake int
	}{
		{"absent_uses_limit", "", testFetchLimit},
		{"non_numeric_uses_limit", "abc", testFetchLimit},
		{"zero_uses_limit", "0", testFetchLimit},
		{"negative_uses_limit", "-5", testFetchLimit},
		{"above_limit_is_clamped", "500", testFetchLimit},
		{"within_bounds_is_kept", "25", 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := map[string]string{}
			if tt.take != "" {
				raw["take"] = tt.take
			}

			query := search.Parse(raw, testFetchLimit)
			assert.Equal(t, tt.wantTake, query.Take)
		})
	}
}

/*
TestParse_SortResolution checks orderBy and desc handling.
*/
func TestParse_SortResolution(t *testing.T) {
	ascending := search.Parse(map[string]string{"orderBy": "name"}, testFetchLimit)
	assert.Equal(t, "name", ascending.OrderByField)
	assert.False(t, ascending.OrderByDesc)

	// The desc key's value is irrelevant, only its presence matters.
	descending := search.Parse(map[string]string{"orderBy": "name", "desc": ""}, testFetchLimit)
	assert.True(t, descending.OrderByDesc)
}

/*
TestParse_ReservedKeyStripping checks that only non-reserved keys survive
as filters, and that parsing is idempotent over the residual map.
*/
func TestParse_ReservedKeyStripping(t *testing.T) {
	raw := map[string]string{
		"cursorKey": "id",
		"cursor":    "null",
		"page":      "0",
		"take":      "10",
		"orderBy":   "name",
		"desc":      "",
		"eql|name":  "Dune",
		"gte|year":  "1965",
	}

	first := search.Parse(raw, testFetchLimit)
	require.Len(t, first.Filters, 2)
	assert.Equal(t, "Dune", first.Filters["eql|name"])
	assert.Equal(t, "1965", first.Filters["gte|year"])

	second := search.Parse(first.Filters, testFetchLimit)
	assert.Equal(t, first.Filters, second.Filters)
}

/*
TestParse_PageFallbacks checks page parsing edge cases.
*/
func TestParse_PageFallbacks(t *testing.T) {
	assert.Equal(t, 0, search.Parse(map[string]string{}, testFetchLimit).Page)
	assert.Equal(t, 0, search.Parse(map[string]string{"page": "junk"}, testFetchLimit).Page)
	assert.Equal(t, 0, search.Parse(map[string]string{"page": "-3"}, testFetchLimit).Page)
	assert.Equal(t, 7, search.Parse(map[string]string{"page": "7"}, testFetchLimit).Page)
}
