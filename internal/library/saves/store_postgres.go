// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package saves

import (
	"context"
	"fmt"
	"strings"

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

// NewRepository constructs a PostgreSQL backed save store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (repository *postgresRepository) Create(context context.Context, save *Save) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4)`,
		schema.Save.Table,
		strings.Join(schema.Save.Columns(), ", "),
	)

	_, err := repository.pool.Exec(context, query,
		save.ID, save.UserID, save.MediaID, save.CreatedAt,
	)
	return dberr.Wrap(err, "saves_create")
}

func (repository *postgresRepository) Delete(context context.Context, userID, mediaID string) error {
	query := fmt.Sprintf(
		"DELETE FROM %s WHERE %s = $1 AND %s = $2",
		schema.Save.Table,
		schema.Save.UserID,
		schema.Save.MediaID,
	)

	tag, err := repository.pool.Exec(context, query, userID, mediaID)
	if err != nil {
		return dberr.Wrap(err, "saves_delete")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// # Listing Capability

func (repository *postgresRepository) FindMany(context context.Context, args search.FindArgs) ([]Save, error) {
	query, params := search.BuildSelect(schema.Save.Table, schema.Save.Columns(), args)

	rows, err := repository.pool.Query(context, query, params...)
	if err != nil {
		return nil, dberr.Wrap(err, "saves_find_many")
	}
	defer rows.Close()

	var results []Save
	for rows.Next() {
		var save Save
		if err := rows.Scan(&save.ID, &save.UserID, &save.MediaID, &save.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "saves_find_many_scan")
		}
		results = append(results, save)
	}
	return results, dberr.Wrap(rows.Err(), "saves_find_many_rows")
}

func (repository *postgresRepository) Count(context context.Context, where *search.Predicate) (int, error) {
	query, params := search.BuildCount(schema.Save.Table, where)

	var count int
	if err := repository.pool.QueryRow(context, query, params...).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "saves_count")
	}
	return count, nil
}
