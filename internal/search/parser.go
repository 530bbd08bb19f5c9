// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package search

import (
	"github.com/rvales/mediary/pkg/convert"
)

// Mode selects the pagination strategy for a listing request.
type Mode string

const (
	// ModeOffset pages by skip-count with total-count-derived metadata.
	ModeOffset Mode = "offset"
	// ModeCursor pages by a last-seen key value.
	ModeCursor Mode = "cursor"
)

// cursorFirstPage is the literal clients send to open cursor pagination
// without a starting position.
const cursorFirstPage = "null"

// Query is the normalized form of a raw listing request.
type Query struct {
	// Mode is ModeCursor iff a 'cursor' parameter was supplied.
	Mode Mode

	// CursorKey is the field used for cursor traversal. Defaults to "id".
	CursorKey string

	// CursorValue is the raw 'cursor' parameter, empty when absent.
	CursorValue string

	// Cursor is the continuation position, nil on the first cursor page.
	Cursor map[string]string

	// Page is the zero-based page index (offset mode only).
	Page int

	// Take is the page size, clamped to [1, fetch limit].
	Take int

	// Skip is 1 when continuing a cursor page (skips the cursor row itself),
	// otherwise Take * Page.
	Skip int

	// OrderByField is the requested sort field, empty when unspecified.
	OrderByField string

	// OrderByDesc is true when the 'desc' key is present, value irrelevant.
	OrderByDesc bool

	// Filters holds every non-reserved key, still in '<op>|<field>' form.
	Filters map[string]string
}

// reservedKeys are consumed by the parser and never treated as filters.
var reservedKeys = map[string]bool{
	"cursorKey": true,
	"cursor":    true,
	"page":      true,
	"take":      true,
	"orderBy":   true,
	"desc":      true,
}

// Parse normalizes a flat query-parameter map into a [Query].
//
// Parsing never fails: pagination values fall back to safe defaults and
// filter keys are validated later by [Compile], where the field registry
// is available.
func Parse(raw map[string]string, fetchLimit int) *Query {
	cursorKey := raw["cursorKey"]
	if cursorKey == "" {
		cursorKey = "id"
	}

	cursorValue := raw["cursor"]

	mode := ModeOffset
	var cursor map[string]string
	if cursorValue != "" {
		mode = ModeCursor
		if cursorValue != cursorFirstPage {
			cursor = map[string]string{cursorKey: cursorValue}
		}
	}

	page := convert.ToIntD(raw["page"], 0)
	if page < 0 {
		page = 0
	}

	take := convert.ToIntD(raw["take"], fetchLimit)
	if take < 1 || take > fetchLimit {
		take = fetchLimit
	}

	skip := take * page
	if mode == ModeCursor && cursorValue != cursorFirstPage {
		skip = 1
	}

	_, orderByDesc := raw["desc"]

	filters := make(map[string]string, len(raw))
	for key, value := range raw {
		if !reservedKeys[key] {
			filters[key] = value
		}
	}

	return &Query{
		Mode:         mode,
		CursorKey:    cursorKey,
		CursorValue:  cursorValue,
		Cursor:       cursor,
		Page:         page,
		Take:         take,
		Skip:         skip,
		OrderByField: raw["orderBy"],
		OrderByDesc:  orderByDesc,
		Filters:      filters,
	}
}
