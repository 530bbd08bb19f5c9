// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package lists

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

// NewRepository constructs a PostgreSQL backed list store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// scanList hydrates a [List] from a row in canonical column order.
func scanList(row pgx.Row) (*List, error) {
	var list List
	err := row.Scan(
		&list.ID, &list.OwnerID, &list.Name, &list.Visibility,
		&list.CreatedAt, &list.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

func (repository *postgresRepository) FindByID(context context.Context, id string) (*List, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1",
		strings.Join(schema.List.Columns(), ", "),
		schema.List.Table,
		schema.List.ID,
	)

	list, err := scanList(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "lists_find_by_id")
	}
	return list, nil
}

func (repository *postgresRepository) Create(context context.Context, list *List) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		schema.List.Table,
		strings.Join(schema.List.Columns(), ", "),
	)

	_, err := repository.pool.Exec(context, query,
		list.ID, list.OwnerID, list.Name, list.Visibility,
		list.CreatedAt, list.UpdatedAt,
	)
	return dberr.Wrap(err, "lists_create")
}

func (repository *postgresRepository) Update(context context.Context, list *List) error {
	query := fmt.Sprintf(
		"UPDATE %s SET %s = $2, %s = $3, %s = $4 WHERE %s = $1",
		schema.List.Table,
		schema.List.Name, schema.List.Visibility, schema.List.UpdatedAt,
		schema.List.ID,
	)

	tag, err := repository.pool.Exec(context, query, list.ID, list.Name, list.Visibility, time.Now())
	if err != nil {
		return dberr.Wrap(err, "lists_update")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *postgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(
		"DELETE FROM %s WHERE %s = $1",
		schema.List.Table,
		schema.List.ID,
	)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "lists_delete")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// # Items

func (repository *postgresRepository) FindItems(context context.Context, listID string) ([]Item, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC",
		strings.Join(schema.ListItem.Columns(), ", "),
		schema.ListItem.Table,
		schema.ListItem.ListID,
		schema.ListItem.Position,
	)

	rows, err := repository.pool.Query(context, query, listID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_items_find")
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.ListID, &item.MediaID, &item.Position, &item.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "list_items_scan")
		}
		items = append(items, item)
	}
	return items, dberr.Wrap(rows.Err(), "list_items_rows")
}

func (repository *postgresRepository) AddItem(context context.Context, item *Item) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5)`,
		schema.ListItem.Table,
		strings.Join(schema.ListItem.Columns(), ", "),
	)

	_, err := repository.pool.Exec(context, query,
		item.ID, item.ListID, item.MediaID, item.Position, item.CreatedAt,
	)
	return dberr.Wrap(err, "list_items_add")
}

func (repository *postgresRepository) RemoveItem(context context.Context, listID, itemID string) error {
	query := fmt.Sprintf(
		"DELETE FROM %s WHERE %s = $1 AND %s = $2",
		schema.ListItem.Table,
		schema.ListItem.ListID,
		schema.ListItem.ID,
	)

	tag, err := repository.pool.Exec(context, query, listID, itemID)
	if err != nil {
		return dberr.Wrap(err, "list_items_remove")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *postgresRepository) NextItemPosition(context context.Context, listID string) (int, error) {
	query := fmt.Sprintf(
		"SELECT COALESCE(MAX(%s), 0) + 1 FROM %s WHERE %s = $1",
		schema.ListItem.Position,
		schema.ListItem.Table,
		schema.ListItem.ListID,
	)

	var position int
	if err := repository.pool.QueryRow(context, query, listID).Scan(&position); err != nil {
		return 0, dberr.Wrap(err, "list_items_next_position")
	}
	return position, nil
}

// # Listing Capability

func (repository *postgresRepository) FindMany(context context.Context, args search.FindArgs) ([]List, error) {
	query, params := search.BuildSelect(schema.List.Table, schema.List.Columns(), args)

	rows, err := repository.pool.Query(context, query, params...)
	if err != nil {
		return nil, dberr.Wrap(err, "lists_find_many")
	}
	defer rows.Close()

	var results []List
	for rows.Next() {
		list, err := scanList(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "lists_find_many_scan")
		}
		results = append(results, *list)
	}
	return results, dberr.Wrap(rows.Err(), "lists_find_many_rows")
}

func (repository *postgresRepository) Count(context context.Context, where *search.Predicate) (int, error) {
	query, params := search.BuildCount(schema.List.Table, where)

	var count int
	if err := repository.pool.QueryRow(context, query, params...).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "lists_count")
	}
	return count, nil
}
