// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package media

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

// NewRepository constructs a PostgreSQL backed media store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// scanMedia hydrates a [Media] from a row in canonical column order.
func scanMedia(row pgx.Row) (*Media, error) {
	var media Media
	err := row.Scan(
		&media.ID, &media.OwnerID, &media.Name, &media.Slug,
		&media.Description, &media.Type, &media.Published,
		&media.ReleasedAt, &media.CreatedAt, &media.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &media, nil
}

func (repository *postgresRepository) FindByID(context context.Context, id string) (*Media, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1",
		strings.Join(schema.Media.Columns(), ", "),
		schema.Media.Table,
		schema.Media.ID,
	)

	media, err := scanMedia(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "media_find_by_id")
	}
	return media, nil
}

func (repository *postgresRepository) FindBySlug(context context.Context, slug string) (*Media, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1",
		strings.Join(schema.Media.Columns(), ", "),
		schema.Media.Table,
		schema.Media.Slug,
	)

	media, err := scanMedia(repository.pool.QueryRow(context, query, slug))
	if err != nil {
		return nil, dberr.Wrap(err, "media_find_by_slug")
	}
	return media, nil
}

func (repository *postgresRepository) SlugExists(context context.Context, slug string) (bool, error) {
	query := fmt.Sprintf(
		"SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)",
		schema.Media.Table,
		schema.Media.Slug,
	)

	var exists bool
	if err := repository.pool.QueryRow(context, query, slug).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "media_slug_exists")
	}
	return exists, nil
}

func (repository *postgresRepository) Create(context context.Context, media *Media) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		schema.Media.Table,
		strings.Join(schema.Media.Columns(), ", "),
	)

	_, err := repository.pool.Exec(context, query,
		media.ID, media.OwnerID, media.Name, media.Slug,
		media.Description, media.Type, media.Published,
		media.ReleasedAt, media.CreatedAt, media.UpdatedAt,
	)
	return dberr.Wrap(err, "media_create")
}

func (repository *postgresRepository) Update(context context.Context, media *Media) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7
		WHERE %s = $1`,
		schema.Media.Table,
		schema.Media.Name, schema.Media.Description, schema.Media.Type,
		schema.Media.Published, schema.Media.ReleasedAt, schema.Media.UpdatedAt,
		schema.Media.ID,
	)

	tag, err := repository.pool.Exec(context, query,
		media.ID, media.Name, media.Description, media.Type,
		media.Published, media.ReleasedAt, time.Now(),
	)
	if err != nil {
		return dberr.Wrap(err, "media_update")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *postgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(
		"DELETE FROM %s WHERE %s = $1",
		schema.Media.Table,
		schema.Media.ID,
	)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "media_delete")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// # Listing Capability

func (repository *postgresRepository) FindMany(context context.Context, args search.FindArgs) ([]Media, error) {
	query, params := search.BuildSelect(schema.Media.Table, schema.Media.Columns(), args)

	rows, err := repository.pool.Query(context, query, params...)
	if err != nil {
		return nil, dberr.Wrap(err, "media_find_many")
	}
	defer rows.Close()

	var results []Media
	for rows.Next() {
		media, err := scanMedia(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "media_find_many_scan")
		}
		results = append(results, *media)
	}
	return results, dberr.Wrap(rows.Err(), "media_find_many_rows")
}

func (repository *postgresRepository) Count(context context.Context, where *search.Predicate) (int, error) {
	query, params := search.BuildCount(schema.Media.Table, where)

	var count int
	if err := repository.pool.QueryRow(context, query, params...).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "media_count")
	}
	return count, nil
}
