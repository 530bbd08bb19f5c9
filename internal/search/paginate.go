// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package search

import "encoding/json"

// PageBounds computes offset-pagination metadata.
//
// lastPage stays 0 until the count exceeds one page. With take=10 and
// count=25 the pages are 0, 1 and 2, so lastPage=2; a count that divides
// evenly by take drops the phantom trailing page.
func PageBounds(page, take, count int) (currentPage, lastPage int) {
	if count > take {
		lastPage = count / take
		if count%take == 0 {
			lastPage--
		}
	}
	return page, lastPage
}

// Result is the uniform envelope returned by every listing operation.
//
// It serializes to one of two shapes depending on the pagination mode:
//
//	offset: {"currentPage", "lastPage", "count", "take", "current", "data"}
//	cursor: {"nextCursor", "take", "current", "data"}
//
// In cursor mode NextCursor is the last row's cursor-key value while pages
// come back full, and null once a short page signals exhaustion. Offset
// responses omit the field entirely.
type Result[T any] struct {
	Mode Mode

	CurrentPage int
	LastPage    int
	Count       int

	NextCursor *string

	Take    int
	Current int
	Data    []T
}

type offsetEnvelope[T any] struct {
	CurrentPage int `json:"currentPage"`
	LastPage    int `json:"lastPage"`
	Count       int `json:"count"`
	Take        int `json:"take"`
	Current     int `json:"current"`
	Data        []T `json:"data"`
}

type cursorEnvelope[T any] struct {
	NextCursor *string `json:"nextCursor"`
	Take       int     `json:"take"`
	Current    int     `json:"current"`
	Data       []T     `json:"data"`
}

// MarshalJSON renders the mode-specific envelope.
func (r Result[T]) MarshalJSON() ([]byte, error) {
	data := r.Data
	if data == nil {
		data = []T{}
	}

	if r.Mode == ModeCursor {
		return json.Marshal(cursorEnvelope[T]{
			NextCursor: r.NextCursor,
			Take:       r.Take,
			Current:    r.Current,
			Data:       data,
		})
	}

	return json.Marshal(offsetEnvelope[T]{
		CurrentPage: r.CurrentPage,
		LastPage:    r.LastPage,
		Count:       r.Count,
		Take:        r.Take,
		Current:     r.Current,
		Data:        data,
	})
}
