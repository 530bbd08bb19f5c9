// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

/*
Package search implements the generic listing engine used by every catalog,
library, social and admin list endpoint.

It turns a flat map of query-string parameters into a typed, backend-neutral
filter specification, compiles it against a per-entity field registry, runs
the query through a small repository capability, and shapes the result with
offset or cursor pagination metadata.

Pipeline:

  - Parse: reserved keys (cursor, page, take, orderBy, desc) become the
    pagination request; the residual '<op>|<field>' keys become filters.
  - Compile: each filter is validated against the entity's declared field
    types and coerced, producing a predicate tree of AND/OR clauses.
  - List: rows and counts are fetched through the Repository capability and
    wrapped in a uniform result envelope.

Entities declare their searchable surface statically at construction time.
Nothing in this package inspects storage metadata at runtime.
*/
package search

// FieldType is the semantic type of a searchable entity field.
//
// The type decides which operators a filter may apply and how raw query
// values are coerced before they reach the predicate.
type FieldType string

const (
	TypeString  FieldType = "STRING"
	TypeNumber  FieldType = "NUMBER"
	TypeDate    FieldType = "DATE"
	TypeBoolean FieldType = "BOOLEAN"
)

// Operator is a backend-neutral filter operation.
type Operator string

const (
	OpEqual          Operator = "equals"
	OpDifferent      Operator = "not"
	OpContains       Operator = "contains"
	OpEndsWith       Operator = "endsWith"
	OpStartsWith     Operator = "startsWith"
	OpGreaterThan    Operator = "gt"
	OpGreaterOrEqual Operator = "gte"
	OpLowerThan      Operator = "lt"
	OpLowerOrEqual   Operator = "lte"
)

// separator splits the operator code from the field name in a filter key.
const separator = '|'

// operatorCodes maps the 3-character query codes to operators.
//
// The codes are part of the public API contract: clients send keys like
// 'eql|name' or 'gte|releasedat'.
var operatorCodes = map[string]Operator{
	"eql": OpEqual,
	"not": OpDifferent,
	"ctn": OpContains,
	"edw": OpEndsWith,
	"stw": OpStartsWith,
	"gt0": OpGreaterThan,
	"gte": OpGreaterOrEqual,
	"lt0": OpLowerThan,
	"lte": OpLowerOrEqual,
}

// permittedOperators declares, per field type, which operators are accepted.
var permittedOperators = map[FieldType][]Operator{
	TypeString: {
		OpEqual, OpDifferent, OpContains,
		OpEndsWith, OpStartsWith,
		OpGreaterThan, OpGreaterOrEqual,
		OpLowerThan, OpLowerOrEqual,
	},
	TypeNumber: {
		OpEqual, OpDifferent,
		OpGreaterThan, OpGreaterOrEqual,
		OpLowerThan, OpLowerOrEqual,
	},
	TypeDate: {
		OpEqual, OpDifferent,
		OpGreaterThan, OpGreaterOrEqual,
		OpLowerThan, OpLowerOrEqual,
	},
	TypeBoolean: {
		OpEqual, OpDifferent,
	},
}

// Permits reports whether the operator is allowed for this field type.
func (t FieldType) Permits(operator Operator) bool {
	for _, allowed := range permittedOperators[t] {
		if allowed == operator {
			return true
		}
	}
	return false
}

// Fields is the per-entity registry of searchable field names and their types.
//
// Every field referenced in a filter or sort request must appear here for
// the target entity. Declared statically next to each entity's listing
// configuration.
type Fields map[string]FieldType
