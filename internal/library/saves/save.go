// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

/*
Package saves manages media bookmarks.

A save is a plain user-to-media edge: saving twice is a conflict, removing
twice is not found, and every listing is scoped to its user.
*/
package saves

import (
	"time"

	"github.com/rvales/mediary/internal/search"
)

// Save is one bookmark.
type Save struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	MediaID   string    `json:"mediaId"`
	CreatedAt time.Time `json:"createdAt"`
}

// # Listing Surface

// searchableFields is the listing registry for saves.
var searchableFields = search.Fields{
	"mediaid":   search.TypeString,
	"createdat": search.TypeDate,
}

// sortFields whitelists orderBy targets for save listings.
var sortFields = []string{"createdat"}
