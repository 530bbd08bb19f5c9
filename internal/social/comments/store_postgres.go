// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package comments

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

// NewRepository constructs a PostgreSQL backed comment store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// scanComment hydrates a [Comment] from a row in canonical column order.
func scanComment(row pgx.Row) (*Comment, error) {
	var comment Comment
	err := row.Scan(
		&comment.ID, &comment.UserID, &comment.MediaID,
		&comment.Body, &comment.EditedAt, &comment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (repository *postgresRepository) FindByID(context context.Context, id string) (*Comment, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1",
		strings.Join(schema.Comment.Columns(), ", "),
		schema.Comment.Table,
		schema.Comment.ID,
	)

	comment, err := scanComment(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "comments_find_by_id")
	}
	return comment, nil
}

func (repository *postgresRepository) Create(context context.Context, comment *Comment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		schema.Comment.Table,
		strings.Join(schema.Comment.Columns(), ", "),
	)

	_, err := repository.pool.Exec(context, query,
		comment.ID, comment.UserID, comment.MediaID,
		comment.Body, comment.EditedAt, comment.CreatedAt,
	)
	return dberr.Wrap(err, "comments_create")
}

func (repository *postgresRepository) Update(context context.Context, comment *Comment) error {
	query := fmt.Sprintf(
		"UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1",
		schema.Comment.Table,
		schema.Comment.Body, schema.Comment.EditedAt,
		schema.Comment.ID,
	)

	tag, err := repository.pool.Exec(context, query, comment.ID, comment.Body, time.Now())
	if err != nil {
		return dberr.Wrap(err, "comments_update")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *postgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(
		"DELETE FROM %s WHERE %s = $1",
		schema.Comment.Table,
		schema.Comment.ID,
	)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "comments_delete")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// # Listing Capability

func (repository *postgresRepository) FindMany(context context.Context, args search.FindArgs) ([]Comment, error) {
	query, params := search.BuildSelect(schema.Comment.Table, schema.Comment.Columns(), args)

	rows, err := repository.pool.Query(context, query, params...)
	if err != nil {
		return nil, dberr.Wrap(err, "comments_find_many")
	}
	defer rows.Close()

	var results []Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "comments_find_many_scan")
		}
		results = append(results, *comment)
	}
	return results, dberr.Wrap(rows.Err(), "comments_find_many_rows")
}

func (repository *postgresRepository) Count(context context.Context, where *search.Predicate) (int, error) {
	query, params := search.BuildCount(schema.Comment.Table, where)

	var count int
	if err := repository.pool.QueryRow(context, query, params...).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "comments_count")
	}
	return count, nil
}
