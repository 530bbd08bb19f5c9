// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

/*
Package media manages catalog entries, the core content unit of Mediary.

An entry belongs to its creating owner and stays invisible to the public
catalog until published. Slugs are generated from the name and suffixed on
collision, never edited directly.
*/
package media

import (
	"time"

	"github.com/rvales/mediary/internal/search"
)

// Type discriminates the kind of catalog entry.
type Type string

const (
	TypeSeries  Type = "SERIES"
	TypeMovie   Type = "MOVIE"
	TypePodcast Type = "PODCAST"
	TypeBook    Type = "BOOK"
)

// Types lists every valid media type for input validation.
var Types = []Type{TypeSeries, TypeMovie, TypePodcast, TypeBook}

// Media is one catalog entry.
type Media struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"ownerId"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	Type        Type       `json:"type"`
	Published   bool       `json:"published"`
	ReleasedAt  *time.Time `json:"releasedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// # Listing Surface

// searchableFields is the listing registry for catalog entries.
var searchableFields = search.Fields{
	"name":        search.TypeString,
	"slug":        search.TypeString,
	"description": search.TypeString,
	"type":        search.TypeString,
	"published":   search.TypeBoolean,
	"releasedat":  search.TypeDate,
	"createdat":   search.TypeDate,
}

// sortFields whitelists orderBy targets for catalog listings.
var sortFields = []string{"name", "releasedat", "createdat"}
