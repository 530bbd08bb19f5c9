// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

/*
Package lists manages user-curated media lists and their ordered items.

A private list only exists for its owner; a public list is readable by
anyone but always mutated by its owner alone.
*/
package lists

import (
	"time"

	"github.com/rvales/mediary/internal/search"
)

// Visibility controls who can read a list.
type Visibility string

const (
	VisibilityPublic  Visibility = "PUBLIC"
	VisibilityPrivate Visibility = "PRIVATE"
)

// List is one user-curated collection of media entries.
type List struct {
	ID         string     `json:"id"`
	OwnerID    string     `json:"ownerId"`
	Name       string     `json:"name"`
	Visibility Visibility `json:"visibility"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// Item is one entry inside a list, ordered by Position.
type Item struct {
	ID        string    `json:"id"`
	ListID    string    `json:"listId"`
	MediaID   string    `json:"mediaId"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"createdAt"`
}

// # Listing Surface

// searchableFields is the listing registry for lists.
var searchableFields = search.Fields{
	"name":       search.TypeString,
	"visibility": search.TypeString,
	"createdat":  search.TypeDate,
}

// sortFields whitelists orderBy targets for list listings.
var sortFields = []string{"name", "createdat"}
