// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package search_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rvales/mediary/internal/platform/apperr"
	"github.com/rvales/mediary/internal/search"
)

// mediaFields mirrors a typical entity registry.
var mediaFields = search.Fields{
	"name":       search.TypeString,
	"position":   search.TypeNumber,
	"releasedat": search.TypeDate,
	"published":  search.TypeBoolean,
}

func compile(t *testing.T, raw map[string]string, merge *search.Predicate) (*search.Predicate, *search.OrderSpec, error) {
	t.Helper()
	query := search.Parse(raw, testFetchLimit)
	return search.Compile(query, mediaFields, []string{"name", "releasedat"}, merge)
}

/*
TestCompile_OperatorRoundTrip checks that an encoded filter reproduces the
expected typed predicate.
*/
func TestCompile_OperatorRoundTrip(t *testing.T) {
	where, _, err := compile(t, map[string]string{"eql|name": "Foo"}, nil)
	require.NoError(t, err)

	require.Contains(t, where.Fields, "name")
	assert.Equal(t, "Foo", where.Fields["name"][search.OpEqual])
}

/*
TestCompile_PermittedOperatorsByType sweeps the (type, operator) matrix.
*/
func TestCompile_PermittedOperatorsByType(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		allowed bool
	}{
		{"string_contains", "ctn|name", "oo", true},
		{"string_starts_with", "stw|name", "Fo", true},
		{"string_ends_with", "edw|name", "oo", true},
		{"string_greater_than", "gt0|name", "F", true},
		{"number_equal", "eql|position", "3", true},
		{"number_greater_or_equal", "gte|position", "3", true},
		{"number_contains_rejected", "ctn|position", "3", false},
		{"number_starts_with_rejected", "stw|position", "3", false},
		{"date_lower_than", "lt0|releasedat", "2020-01-01", true},
		{"date_ends_with_rejected", "edw|releasedat", "01", false},
		{"boolean_equal", "eql|published", "true", true},
		{"boolean_different", "not|published", "false", true},
		{"boolean_greater_than_rejected", "gt0|published", "true", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := compile(t, map[string]string{tt.key: tt.value}, nil)

			if tt.allowed {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.True(t, apperr.HasCode(err, "ERR_INVALID_SEARCH_QUERY_CONFIG"))
			}
		})
	}
}

/*
TestCompile_ValueCoercion checks per-type value conversion and rejection.
*/
func TestCompile_ValueCoercion(t *testing.T) {
	t.Run("number_is_parsed", func(t *testing.T) {
		where, _, err := compile(t, map[string]string{"gte|position": "2.5"}, nil)
		require.NoError(t, err)
		assert.Equal(t, 2.5, where.Fields["position"][search.OpGreaterOrEqual])
	})

	t.Run("number_parse_failure_rejects", func(t *testing.T) {
		_, _, err := compile(t, map[string]string{"gte|position": "many"}, nil)
		assert.True(t, apperr.HasCode(err, "ERR_INVALID_SEARCH_QUERY_CONFIG"))
	})

	t.Run("date_becomes_timestamp", func(t *testing.T) {
		where, _, err := compile(t, map[string]string{"gte|releasedat": "1965-08-01"}, nil)
		require.NoError(t, err)

		timestamp, ok := where.Fields["releasedat"][search.OpGreaterOrEqual].(time.Time)
		require.True(t, ok)
		assert.Equal(t, 1965, timestamp.Year())
	})

	t.Run("invalid_date_rejects", func(t *testing.T) {
		_, _, err := compile(t, map[string]string{"eql|releasedat": "not-a-date"}, nil)
		assert.True(t, apperr.HasCode(err, "ERR_INVALID_SEARCH_QUERY_CONFIG"))
	})

	t.Run("boolean_literals_only", func(t *testing.T) {
		where, _, err := compile(t, map[string]string{"eql|published": "true"}, nil)
		require.NoError(t, err)
		assert.Equal(t, true, where.Fields["published"][search.OpEqual])

		_, _, err = compile(t, map[string]string{"eql|published": "yes"}, nil)
		assert.True(t, apperr.HasCode(err, "ERR_INVALID_SEARCH_QUERY_CONFIG"))
	})
}

/*
TestCompile_MalformedKeys checks filter key shape validation.
*/
func TestCompile_MalformedKeys(t *testing.T) {
	t.Run("short_key_rejects", func(t *testing.T) {
		_, _, err := compile(t, map[string]string{"eql": "x"}, nil)
		assert.True(t, apperr.HasCode(err, "ERR_INVALID_SEARCH_QUERY_CONFIG"))
	})

	t.Run("missing_separator_is_skipped", func(t *testing.T) {
		// Long keys without the separator are unrelated parameters, not errors.
		where, _, err := compile(t, map[string]string{"verbose_flag": "x"}, nil)
		require.NoError(t, err)
		assert.True(t, where.IsEmpty())
	})

	t.Run("unknown_field_rejects", func(t *testing.T) {
		_, _, err := compile(t, map[string]string{"eql|missing": "x"}, nil)
		assert.True(t, apperr.HasCode(err, "ERR_INVALID_SEARCH_QUERY_CONFIG"))
	})

	t.Run("unknown_operator_code_rejects", func(t *testing.T) {
		_, _, err := compile(t, map[string]string{"zzz|name": "x"}, nil)
		assert.True(t, apperr.HasCode(err, "ERR_INVALID_SEARCH_QUERY_CONFIG"))
	})
}

/*
TestCompile_FreeTextFanOut checks the 'search' pseudo-field disjunction.
*/
func TestCompile_FreeTextFanOut(t *testing.T) {
	t.Run("contains_matches_string_fields_only", func(t *testing.T) {
		where, _, err := compile(t, map[string]string{"ctn|search": "dune"}, nil)
		require.NoError(t, err)

		// Only 'name' is a STRING; number/date/boolean fields are dropped.
		require.Len(t, where.Or, 1)
		assert.Equal(t, "dune", where.Or[0]["name"][search.OpContains])
	})

	t.Run("equal_fans_out_across_coercible_fields", func(t *testing.T) {
		where, _, err := compile(t, map[string]string{"eql|search": "true"}, nil)
		require.NoError(t, err)

		// "true" coerces for name (string) and published (boolean),
		// fails number and date coercion.
		require.Len(t, where.Or, 2)
	})

	t.Run("no_compatible_field_yields_empty_predicate", func(t *testing.T) {
		registry := search.Fields{"position": search.TypeNumber}
		query := search.Parse(map[string]string{"ctn|search": "x"}, testFetchLimit)

		where, _, err := search.Compile(query, registry, nil, nil)
		require.NoError(t, err)
		assert.True(t, where.IsEmpty())
	})
}

/*
TestCompile_SortWhitelist checks orderBy is honored only for sortable fields.
*/
func TestCompile_SortWhitelist(t *testing.T) {
	t.Run("sortable_field_is_applied", func(t *testing.T) {
		_, order, err := compile(t, map[string]string{"orderBy": "name", "desc": ""}, nil)
		require.NoError(t, err)
		require.NotNil(t, order)
		assert.Equal(t, "name", order.Field)
		assert.True(t, order.Desc)
	})

	t.Run("unlisted_field_is_ignored", func(t *testing.T) {
		_, order, err := compile(t, map[string]string{"orderBy": "position"}, nil)
		require.NoError(t, err)
		assert.Nil(t, order)
	})
}

/*
TestCompile_MergePredicateWins checks owner scoping survives client filters.
*/
func TestCompile_MergePredicateWins(t *testing.T) {
	merge := search.Where(search.Eq("ownerid", "owner-1"))

	t.Run("merge_adds_scoping", func(t *testing.T) {
		where, _, err := compile(t, map[string]string{"eql|name": "Foo"}, merge)
		require.NoError(t, err)

		assert.Equal(t, "owner-1", where.Fields["ownerid"][search.OpEqual])
		assert.Equal(t, "Foo", where.Fields["name"][search.OpEqual])
	})

	t.Run("merge_overrides_conflicting_filter", func(t *testing.T) {
		scoped := search.Where(search.Eq("name", "Locked"))
		where, _, err := compile(t, map[string]string{"eql|name": "Client"}, scoped)
		require.NoError(t, err)

		assert.Equal(t, "Locked", where.Fields["name"][search.OpEqual])
	})
}
