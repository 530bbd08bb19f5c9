// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package verifications

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rvales/mediary/internal/platform/database/schema"
	"github.com/rvales/mediary/internal/platform/dberr"
	"github.com/rvales/mediary/internal/search"
)

// # PostgreSQL Repository

// postgresRepository implements the [Repository] interface using pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed verification store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// scanVerification hydrates a [Verification] from a row in canonical column order.
func scanVerification(row pgx.Row) (*Verification, error) {
	var verification Verification
	err := row.Scan(
		&verification.ID, &verification.UserID, &verification.Type,
		&verification.Value, &verification.Code,
		&verification.ExpiredAt, &verification.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &verification, nil
}

func (repository *postgresRepository) Create(context context.Context, verification *Verification) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		schema.Verification.Table,
		strings.Join(schema.Verification.Columns(), ", "),
	)

	_, err := repository.pool.Exec(context, query,
		verification.ID, verification.UserID, verification.Type,
		verification.Value, verification.Code,
		verification.ExpiredAt, verification.CreatedAt,
	)
	return dberr.Wrap(err, "verifications_create")
}

func (repository *postgresRepository) FindLatest(context context.Context, userID string, kind Type) (*Verification, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s = $1 AND %s = $2
		ORDER BY %s DESC LIMIT 1`,
		strings.Join(schema.Verification.Columns(), ", "),
		schema.Verification.Table,
		schema.Verification.UserID,
		schema.Verification.Type,
		schema.Verification.CreatedAt,
	)

	verification, err := scanVerification(repository.pool.QueryRow(context, query, userID, kind))
	if err != nil {
		return nil, dberr.Wrap(err, "verifications_find_latest")
	}
	return verification, nil
}

func (repository *postgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(
		"DELETE FROM %s WHERE %s = $1",
		schema.Verification.Table,
		schema.Verification.ID,
	)

	_, err := repository.pool.Exec(context, query, id)
	return dberr.Wrap(err, "verifications_delete")
}

func (repository *postgresRepository) DeleteByType(context context.Context, userID string, kind Type) error {
	query := fmt.Sprintf(
		"DELETE FROM %s WHERE %s = $1 AND %s = $2",
		schema.Verification.Table,
		schema.Verification.UserID,
		schema.Verification.Type,
	)

	_, err := repository.pool.Exec(context, query, userID, kind)
	return dberr.Wrap(err, "verifications_delete_by_type")
}

// # Listing Capability

func (repository *postgresRepository) FindMany(context context.Context, args search.FindArgs) ([]Verification, error) {
	query, params := search.BuildSelect(schema.Verification.Table, schema.Verification.Columns(), args)

	rows, err := repository.pool.Query(context, query, params...)
	if err != nil {
		return nil, dberr.Wrap(err, "verifications_find_many")
	}
	defer rows.Close()

	var results []Verification
	for rows.Next() {
		verification, err := scanVerification(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "verifications_find_many_scan")
		}
		results = append(results, *verification)
	}
	return results, dberr.Wrap(rows.Err(), "verifications_find_many_rows")
}

func (repository *postgresRepository) Count(context context.Context, where *search.Predicate) (int, error) {
	query, params := search.BuildCount(schema.Verification.Table, where)

	var count int
	if err := repository.pool.QueryRow(context, query, params...).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "verifications_count")
	}
	return count, nil
}
