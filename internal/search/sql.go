// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package search

import (
	"fmt"
	"sort"
	"strings"
)

// SQL rendering of the predicate tree for PostgreSQL repositories.
//
// Field names come exclusively from the static schema tables and the
// per-entity registries, never from client input, so interpolating them is
// safe. All values travel as positional parameters.

// BuildSelect renders a complete SELECT for the given fetch request.
//
// Cursor continuation is expressed as an inclusive bound on the cursor key
// plus the caller's Skip (1 skips the cursor row itself), and the statement
// is ordered by the cursor key; an Order on any other field is ignored, as
// the bound cannot be positioned inside a foreign ordering. The cursor key
// column is compared as text: Mediary cursor keys are UUIDv7 values, whose
// lexical order matches their time order.
func BuildSelect(table string, columns []string, args FindArgs) (string, []any) {
	var builder strings.Builder
	var params []any

	builder.WriteString("SELECT ")
	builder.WriteString(strings.Join(columns, ", "))
	builder.WriteString(" FROM ")
	builder.WriteString(table)

	params = writeWhere(&builder, args.Where, args.Cursor, cursorDescending(args), params)

	writeOrderBy(&builder, args)

	if args.Take > 0 {
		params = append(params, args.Take)
		builder.WriteString(fmt.Sprintf(" LIMIT $%d", len(params)))
	}

	if args.Skip > 0 {
		params = append(params, args.Skip)
		builder.WriteString(fmt.Sprintf(" OFFSET $%d", len(params)))
	}

	return builder.String(), params
}

// BuildCount renders the matching COUNT query for offset pagination.
func BuildCount(table string, where *Predicate) (string, []any) {
	var builder strings.Builder
	var params []any

	builder.WriteString("SELECT COUNT(*) FROM ")
	builder.WriteString(table)

	params = writeWhere(&builder, where, nil, false, params)

	return builder.String(), params
}

// cursorDescending reports whether cursor traversal runs backwards, which
// happens when the explicit sort targets the cursor key descending.
func cursorDescending(args FindArgs) bool {
	return args.Cursor != nil && args.Order != nil && args.Order.Field == args.Cursor.Key && args.Order.Desc
}

func writeWhere(builder *strings.Builder, where *Predicate, cursor *CursorSpec, descending bool, params []any) []any {
	var conditions []string

	if !where.IsEmpty() {
		// Sorted field iteration keeps the statement text stable, which
		// matters for prepared-statement caching in pgx.
		fields := make([]string, 0, len(where.Fields))
		for field := range where.Fields {
			fields = append(fields, field)
		}
		sort.Strings(fields)

		for _, field := range fields {
			operators := make([]Operator, 0, len(where.Fields[field]))
			for operator := range where.Fields[field] {
				operators = append(operators, operator)
			}
			sort.Slice(operators, func(i, j int) bool { return operators[i] < operators[j] })

			for _, operator := range operators {
				clause, updated := renderCondition(field, operator, where.Fields[field][operator], params)
				conditions = append(conditions, clause)
				params = updated
			}
		}

		if len(where.Or) > 0 {
			var alternatives []string
			for _, clause := range where.Or {
				for field, ops := range clause {
					for operator, value := range ops {
						rendered, updated := renderCondition(field, operator, value, params)
						alternatives = append(alternatives, rendered)
						params = updated
					}
				}
			}
			if len(alternatives) > 0 {
				conditions = append(conditions, "("+strings.Join(alternatives, " OR ")+")")
			}
		}
	}

	if cursor != nil {
		comparator := ">="
		if descending {
			comparator = "<="
		}
		params = append(params, cursor.Value)
		conditions = append(conditions, fmt.Sprintf("%s::text %s $%d", cursor.Key, comparator, len(params)))
	}

	if len(conditions) > 0 {
		builder.WriteString(" WHERE ")
		builder.WriteString(strings.Join(conditions, " AND "))
	}

	return params
}

// renderCondition emits one parameterized comparison.
func renderCondition(field string, operator Operator, value any, params []any) (string, []any) {
	params = append(params, value)
	position := len(params)

	switch operator {
	case OpEqual:
		return fmt.Sprintf("%s = $%d", field, position), params
	case OpDifferent:
		return fmt.Sprintf("%s <> $%d", field, position), params
	case OpContains:
		return fmt.Sprintf("%s ILIKE '%%' || $%d || '%%'", field, position), params
	case OpStartsWith:
		return fmt.Sprintf("%s ILIKE $%d || '%%'", field, position), params
	case OpEndsWith:
		return fmt.Sprintf("%s ILIKE '%%' || $%d", field, position), params
	case OpGreaterThan:
		return fmt.Sprintf("%s > $%d", field, position), params
	case OpGreaterOrEqual:
		return fmt.Sprintf("%s >= $%d", field, position), params
	case OpLowerThan:
		return fmt.Sprintf("%s < $%d", field, position), params
	case OpLowerOrEqual:
		return fmt.Sprintf("%s <= $%d", field, position), params
	}

	// Unreachable for predicates built by Compile.
	return fmt.Sprintf("%s = $%d", field, position), params
}

func writeOrderBy(builder *strings.Builder, args FindArgs) {
	var term string

	switch {
	// The cursor bound in writeWhere positions along the cursor key, so a
	// cursor statement is ordered by that key and nothing else.
	case args.Cursor != nil:
		direction := "ASC"
		if cursorDescending(args) {
			direction = "DESC"
		}
		term = args.Cursor.Key + " " + direction

	case args.Order != nil:
		direction := "ASC"
		if args.Order.Desc {
			direction = "DESC"
		}
		term = args.Order.Field + " " + direction

	default:
		return
	}

	builder.WriteString(" ORDER BY ")
	builder.WriteString(term)
}
