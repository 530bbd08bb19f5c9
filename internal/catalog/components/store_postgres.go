// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package components

import (
	"context"
	"fmt"
	"strings"
	"time"

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

// NewRepository constructs a PostgreSQL backed component store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// scanComponent hydrates a [Component] from a row in canonical column order.
func scanComponent(row pgx.Row) (*Component, error) {
	var component Component
	err := row.Scan(
		&component.ID, &component.MediaID, &component.Name,
		&component.Position, &component.Kind, &component.Duration,
		&component.PublishedAt, &component.CreatedAt, &component.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &component, nil
}

func (repository *postgresRepository) FindByID(context context.Context, id string) (*Component, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1",
		strings.Join(schema.Component.Columns(), ", "),
		schema.Component.Table,
		schema.Component.ID,
	)

	component, err := scanComponent(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "components_find_by_id")
	}
	return component, nil
}

func (repository *postgresRepository) Create(context context.Context, component *Component) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		schema.Component.Table,
		strings.Join(schema.Component.Columns(), ", "),
	)

	_, err := repository.pool.Exec(context, query,
		component.ID, component.MediaID, component.Name,
		component.Position, component.Kind, component.Duration,
		component.PublishedAt, component.CreatedAt, component.UpdatedAt,
	)
	return dberr.Wrap(err, "components_create")
}

func (repository *postgresRepository) Update(context context.Context, component *Component) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7
		WHERE %s = $1`,
		schema.Component.Table,
		schema.Component.Name, schema.Component.Position, schema.Component.Kind,
		schema.Component.Duration, schema.Component.PublishedAt, schema.Component.UpdatedAt,
		schema.Component.ID,
	)

	tag, err := repository.pool.Exec(context, query,
		component.ID, component.Name, component.Position, component.Kind,
		component.Duration, component.PublishedAt, time.Now(),
	)
	if err != nil {
		return dberr.Wrap(err, "components_update")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *postgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(
		"DELETE FROM %s WHERE %s = $1",
		schema.Component.Table,
		schema.Component.ID,
	)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "components_delete")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *postgresRepository) NextPosition(context context.Context, mediaID string) (int, error) {
	query := fmt.Sprintf(
		"SELECT COALESCE(MAX(%s), 0) + 1 FROM %s WHERE %s = $1",
		schema.Component.Position,
		schema.Component.Table,
		schema.Component.MediaID,
	)

	var position int
	if err := repository.pool.QueryRow(context, query, mediaID).Scan(&position); err != nil {
		return 0, dberr.Wrap(err, "components_next_position")
	}
	return position, nil
}

// # Listing Capability

func (repository *postgresRepository) FindMany(context context.Context, args search.FindArgs) ([]Component, error) {
	query, params := search.BuildSelect(schema.Component.Table, schema.Component.Columns(), args)

	rows, err := repository.pool.Query(context, query, params...)
	if err != nil {
		return nil, dberr.Wrap(err, "components_find_many")
	}
	defer rows.Close()

	var results []Component
	for rows.Next() {
		component, err := scanComponent(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "components_find_many_scan")
		}
		results = append(results, *component)
	}
	return results, dberr.Wrap(rows.Err(), "components_find_many_rows")
}

func (repository *postgresRepository) Count(context context.Context, where *search.Predicate) (int, error) {
	query, params := search.BuildCount(schema.Component.Table, where)

	var count int
	if err := repository.pool.QueryRow(context, query, params...).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "components_count")
	}
	return count, nil
}
