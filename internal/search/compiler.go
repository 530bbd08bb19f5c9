// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package search

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/rvales/mediary/internal/platform/apperr"
)

// freeTextField is the pseudo-field fanning a single value out across
// every searchable field that accepts the requested operator.
const freeTextField = "search"

// ErrInvalidSearchQuery is raised for malformed filter keys, unknown
// fields, operators not permitted for a field's type, and values that
// fail type coercion.
var ErrInvalidSearchQuery = apperr.Business(http.StatusBadRequest, "ERR_INVALID_SEARCH_QUERY_CONFIG")

// OrderSpec is the resolved sort instruction for a listing query.
type OrderSpec struct {
	Field string
	Desc  bool
}

// Compile validates the residual filter map against the entity's field
// registry and produces the final predicate tree and sort spec.
//
// # Filter Keys
//
// Keys shorter than 5 characters fail. Keys of 5+ characters whose fourth
// character is not the separator are skipped without error, so unrelated
// query parameters survive alongside filters. The free-text pseudo-field
// 'search' ORs its value across every registry field that accepts the
// requested operator; fields that don't are skipped, not errors.
//
// Sort applies only when the requested field is in sortFields; otherwise
// the backend's default ordering stands.
func Compile(query *Query, searchable Fields, sortFields []string, merge *Predicate) (*Predicate, *OrderSpec, error) {
	predicate := &Predicate{Fields: Clause{}}

	// Deterministic order keeps generated SQL stable across calls.
	filterKeys := make([]string, 0, len(query.Filters))
	for key := range query.Filters {
		filterKeys = append(filterKeys, key)
	}
	sort.Strings(filterKeys)

	for _, key := range filterKeys {
		rawValue := query.Filters[key]

		if len(key) < 5 {
			return nil, nil, ErrInvalidSearchQuery
		}

		if key[3] != separator {
			continue
		}

		operator, knownCode := operatorCodes[key[:3]]
		field := key[4:]

		if field == freeTextField {
			predicate.Or = compileFreeText(searchable, operator, knownCode, rawValue)
			continue
		}

		fieldType, declared := searchable[field]
		if !declared || !knownCode || !fieldType.Permits(operator) {
			return nil, nil, ErrInvalidSearchQuery
		}

		value, ok := coerce(fieldType, rawValue)
		if !ok {
			return nil, nil, ErrInvalidSearchQuery
		}

		if predicate.Fields[field] == nil {
			predicate.Fields[field] = map[Operator]any{}
		}
		predicate.Fields[field][operator] = value
	}

	var order *OrderSpec
	if query.OrderByField != "" && containsString(sortFields, query.OrderByField) {
		order = &OrderSpec{Field: query.OrderByField, Desc: query.OrderByDesc}
	}

	if len(predicate.Fields) == 0 {
		predicate.Fields = nil
	}

	return Merge(predicate, merge), order, nil
}

// compileFreeText fans a free-text value out across every compatible field.
//
// Incompatible fields are dropped silently. An operator code the registry
// rejects everywhere simply yields no disjunction.
func compileFreeText(searchable Fields, operator Operator, knownCode bool, rawValue string) []Clause {
	if !knownCode {
		return nil
	}

	fieldNames := make([]string, 0, len(searchable))
	for name := range searchable {
		fieldNames = append(fieldNames, name)
	}
	sort.Strings(fieldNames)

	var disjunction []Clause
	for _, name := range fieldNames {
		fieldType := searchable[name]
		if !fieldType.Permits(operator) {
			continue
		}

		value, ok := coerce(fieldType, rawValue)
		if !ok {
			continue
		}

		disjunction = append(disjunction, Clause{name: {operator: value}})
	}

	return disjunction
}

// coerce converts a raw query value into the field's semantic type.
func coerce(fieldType FieldType, raw string) (any, bool) {
	switch fieldType {
	case TypeString:
		return raw, true

	case TypeNumber:
		number, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, false
		}
		return number, true

	case TypeDate:
		timestamp, ok := parseDate(raw)
		if !ok {
			return nil, false
		}
		return timestamp, true

	case TypeBoolean:
		switch raw {
		case "true":
			return true, true
		case "false":
			return false, true
		}
		return nil, false
	}

	return nil, false
}

// Accepted date layouts, most specific first.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02",
}

func parseDate(raw string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if timestamp, err := time.Parse(layout, raw); err == nil {
			return timestamp, true
		}
	}
	return time.Time{}, false
}

func containsString(haystack []string, needle string) bool {
	for _, candidate := range haystack {
		if candidate == needle {
			return true
		}
	}
	return false
}
