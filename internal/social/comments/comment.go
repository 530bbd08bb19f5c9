// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

/*
Package comments manages discussion threads under media entries.

Comments are flat (no reply trees). Only the author edits a comment;
moderators may delete any.
*/
package comments

import (
	"time"

	"github.com/rvales/mediary/internal/search"
)

// Comment is one user comment under a media entry.
//
// EditedAt is nil until the first edit.
type Comment struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	MediaID   string     `json:"mediaId"`
	Body      string     `json:"body"`
	EditedAt  *time.Time `json:"editedAt"`
	CreatedAt time.Time  `json:"createdAt"`
}

// # Listing Surface

// searchableFields is the listing registry for comments.
var searchableFields = search.Fields{
	"userid":    search.TypeString,
	"body":      search.TypeString,
	"createdat": search.TypeDate,
}

// sortFields whitelists orderBy targets for comment listings.
var sortFields = []string{"createdat"}
