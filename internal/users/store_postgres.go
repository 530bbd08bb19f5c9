// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package users

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

// NewRepository constructs a PostgreSQL backed user store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// scanUser hydrates a [User] from a row in canonical column order.
func scanUser(row pgx.Row) (*User, error) {
	var user User
	err := row.Scan(
		&user.ID, &user.Email, &user.Phone, &user.Name, &user.Password,
		&user.Role, &user.Status, &user.TotpSecret, &user.TotpEnabled,
		&user.EmailVerified, &user.PhoneVerified,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (repository *postgresRepository) FindByID(context context.Context, id string) (*User, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1",
		strings.Join(schema.User.Columns(), ", "),
		schema.User.Table,
		schema.User.ID,
	)

	user, err := scanUser(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "users_find_by_id")
	}
	return user, nil
}

func (repository *postgresRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1",
		strings.Join(schema.User.Columns(), ", "),
		schema.User.Table,
		schema.User.Email,
	)

	user, err := scanUser(repository.pool.QueryRow(context, query, strings.ToLower(email)))
	if err != nil {
		return nil, dberr.Wrap(err, "users_find_by_email")
	}
	return user, nil
}

func (repository *postgresRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		schema.User.Table,
		strings.Join(schema.User.Columns(), ", "),
	)

	_, err := repository.pool.Exec(context, query,
		user.ID, user.Email, user.Phone, user.Name, user.Password,
		user.Role, user.Status, user.TotpSecret, user.TotpEnabled,
		user.EmailVerified, user.PhoneVerified,
		user.CreatedAt, user.UpdatedAt,
	)
	return dberr.Wrap(err, "users_create")
}

func (repository *postgresRepository) Update(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7,
		    %s = $8, %s = $9, %s = $10
		WHERE %s = $1`,
		schema.User.Table,
		schema.User.Email, schema.User.Phone, schema.User.Name,
		schema.User.Password, schema.User.Role, schema.User.Status,
		schema.User.EmailVerified, schema.User.PhoneVerified,
		schema.User.UpdatedAt,
		schema.User.ID,
	)

	tag, err := repository.pool.Exec(context, query,
		user.ID, user.Email, user.Phone, user.Name,
		user.Password, user.Role, user.Status,
		user.EmailVerified, user.PhoneVerified,
		time.Now(),
	)
	if err != nil {
		return dberr.Wrap(err, "users_update")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *postgresRepository) UpdateTotp(context context.Context, userID, secret string, enabled bool) error {
	query := fmt.Sprintf(
		"UPDATE %s SET %s = $2, %s = $3, %s = $4 WHERE %s = $1",
		schema.User.Table,
		schema.User.TotpSecret, schema.User.TotpEnabled, schema.User.UpdatedAt,
		schema.User.ID,
	)

	tag, err := repository.pool.Exec(context, query, userID, secret, enabled, time.Now())
	if err != nil {
		return dberr.Wrap(err, "users_update_totp")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *postgresRepository) SoftDelete(context context.Context, id string) error {
	query := fmt.Sprintf(
		"UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1",
		schema.User.Table,
		schema.User.Status, schema.User.UpdatedAt,
		schema.User.ID,
	)

	tag, err := repository.pool.Exec(context, query, id, StatusDeleted, time.Now())
	if err != nil {
		return dberr.Wrap(err, "users_soft_delete")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// # Listing Capability

func (repository *postgresRepository) FindMany(context context.Context, args search.FindArgs) ([]User, error) {
	query, params := search.BuildSelect(schema.User.Table, schema.User.Columns(), args)

	rows, err := repository.pool.Query(context, query, params...)
	if err != nil {
		return nil, dberr.Wrap(err, "users_find_many")
	}
	defer rows.Close()

	var results []User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "users_find_many_scan")
		}
		results = append(results, *user)
	}
	return results, dberr.Wrap(rows.Err(), "users_find_many_rows")
}

func (repository *postgresRepository) Count(context context.Context, where *search.Predicate) (int, error) {
	query, params := search.BuildCount(schema.User.Table, where)

	var count int
	if err := repository.pool.QueryRow(context, query, params...).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "users_count")
	}
	return count, nil
}
