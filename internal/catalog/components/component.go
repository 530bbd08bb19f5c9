// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

/*
Package components manages the parts of a catalog entry: episodes of a
series, tracks of a podcast, chapters of a book.

Components always belong to exactly one media entry and every listing is
scoped to its parent.
*/
package components

import (
	"time"

	"github.com/rvales/mediary/internal/search"
)

// Kind discriminates what a component represents.
type Kind string

const (
	KindEpisode Kind = "EPISODE"
	KindTrack   Kind = "TRACK"
	KindChapter Kind = "CHAPTER"
)

// Kinds lists every valid component kind for input validation.
var Kinds = []Kind{KindEpisode, KindTrack, KindChapter}

// Component is one part of a catalog entry.
//
// Position orders components inside their parent. Duration is in seconds
// and zero for kinds where it does not apply.
type Component struct {
	ID          string     `json:"id"`
	MediaID     string     `json:"mediaId"`
	Name        string     `json:"name"`
	Position    int        `json:"position"`
	Kind        Kind       `json:"kind"`
	Duration    int        `json:"duration"`
	PublishedAt *time.Time `json:"publishedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// # Listing Surface

// searchableFields is the listing registry for components.
var searchableFields = search.Fields{
	"name":        search.TypeString,
	"position":    search.TypeNumber,
	"kind":        search.TypeString,
	"duration":    search.TypeNumber,
	"publishedat": search.TypeDate,
	"createdat":   search.TypeDate,
}

// sortFields whitelists orderBy targets for component listings.
var sortFields = []string{"position", "name", "publishedat"}
