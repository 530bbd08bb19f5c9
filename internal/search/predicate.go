// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package search

// Clause maps a field name to its operator/value conditions.
//
// All conditions inside a Clause are combined with logical AND.
type Clause map[string]map[Operator]any

// Predicate is the backend-neutral filter tree produced by the compiler.
//
// Fields is a conjunction of per-field conditions; Or is a disjunction of
// clauses (used by free-text search fan-out). The whole tree reads as
// Fields AND (Or[0] OR Or[1] OR ...).
type Predicate struct {
	Fields Clause
	Or     []Clause
}

// IsEmpty reports whether the predicate carries no conditions at all.
func (p *Predicate) IsEmpty() bool {
	return p == nil || (len(p.Fields) == 0 && len(p.Or) == 0)
}

// # Construction Helpers

// Eq builds a single-field equality clause.
// The common case for owner and tenant scoping merge predicates.
func Eq(field string, value any) Clause {
	return Clause{field: {OpEqual: value}}
}

// Where combines clauses into a conjunction-only predicate.
func Where(clauses ...Clause) *Predicate {
	fields := Clause{}
	for _, clause := range clauses {
		for field, conditions := range clause {
			if fields[field] == nil {
				fields[field] = map[Operator]any{}
			}
			for operator, value := range conditions {
				fields[field][operator] = value
			}
		}
	}
	return &Predicate{Fields: fields}
}

// # Merging

// Merge deep-merges a caller-supplied predicate into a compiled one.
//
// The merge predicate wins on conflict, recursively at the operator level.
// This is what keeps tenant and owner scoping authoritative: a client can
// never filter its way past an injected 'ownerid equals X' condition.
// A non-nil merge Or replaces the compiled disjunction entirely.
func Merge(base, merge *Predicate) *Predicate {
	if merge == nil {
		return base
	}
	if base == nil {
		base = &Predicate{}
	}

	result := &Predicate{
		Fields: Clause{},
		Or:     base.Or,
	}

	for field, conditions := range base.Fields {
		result.Fields[field] = copyConditions(conditions)
	}

	for field, conditions := range merge.Fields {
		if result.Fields[field] == nil {
			result.Fields[field] = map[Operator]any{}
		}
		for operator, value := range conditions {
			result.Fields[field][operator] = value
		}
	}

	if merge.Or != nil {
		result.Or = merge.Or
	}

	if len(result.Fields) == 0 {
		result.Fields = nil
	}

	return result
}

func copyConditions(conditions map[Operator]any) map[Operator]any {
	duplicate := make(map[Operator]any, len(conditions))
	for operator, value := range conditions {
		duplicate[operator] = value
	}
	return duplicate
}
