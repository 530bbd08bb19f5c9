// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

package sessions

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

// NewRepository constructs a PostgreSQL backed session store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// scanSession hydrates a [Session] from a row in canonical column order.
func scanSession(row pgx.Row) (*Session, error) {
	var session Session
	err := row.Scan(
		&session.ID, &session.UserID, &session.Success, &session.Error,
		&session.IPAddress, &session.UserAgent, &session.Number,
		&session.ExpiredAt, &session.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (repository *postgresRepository) Create(context context.Context, session *Session) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		schema.Session.Table,
		strings.Join(schema.Session.Columns(), ", "),
	)

	_, err := repository.pool.Exec(context, query,
		session.ID, session.UserID, session.Success, session.Error,
		session.IPAddress, session.UserAgent, session.Number,
		session.ExpiredAt, session.CreatedAt,
	)
	return dberr.Wrap(err, "sessions_create")
}

func (repository *postgresRepository) FindActive(context context.Context, userID, sessionID string) (*Session, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s = $1 AND %s = $2 AND %s = TRUE AND %s > $3`,
		strings.Join(schema.Session.Columns(), ", "),
		schema.Session.Table,
		schema.Session.ID,
		schema.Session.UserID,
		schema.Session.Success,
		schema.Session.ExpiredAt,
	)

	session, err := scanSession(repository.pool.QueryRow(context, query, sessionID, userID, time.Now()))
	if err != nil {
		return nil, dberr.Wrap(err, "sessions_find_active")
	}
	return session, nil
}

func (repository *postgresRepository) NextNumber(context context.Context, userID string) (int, error) {
	query := fmt.Sprintf(
		"SELECT COALESCE(MAX(%s), 0) + 1 FROM %s WHERE %s = $1",
		schema.Session.Number,
		schema.Session.Table,
		schema.Session.UserID,
	)

	var number int
	if err := repository.pool.QueryRow(context, query, userID).Scan(&number); err != nil {
		return 0, dberr.Wrap(err, "sessions_next_number")
	}
	return number, nil
}

func (repository *postgresRepository) EndSessions(context context.Context, userID string, sessionID *string) ([]string, error) {
	conditions := fmt.Sprintf(
		"%s = $1 AND %s = TRUE AND %s > $2",
		schema.Session.UserID,
		schema.Session.Success,
		schema.Session.ExpiredAt,
	)
	params := []any{userID, time.Now()}

	if sessionID != nil {
		conditions += fmt.Sprintf(" AND %s = $3", schema.Session.ID)
		params = append(params, *sessionID)
	}

	// Forcing the expiry into the past keeps the end time on record.
	query := fmt.Sprintf(
		"UPDATE %s SET %s = $2 WHERE %s RETURNING %s",
		schema.Session.Table,
		schema.Session.ExpiredAt,
		conditions,
		schema.Session.ID,
	)

	rows, err := repository.pool.Query(context, query, params...)
	if err != nil {
		return nil, dberr.Wrap(err, "sessions_end")
	}
	defer rows.Close()

	var ended []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, dberr.Wrap(err, "sessions_end_scan")
		}
		ended = append(ended, id)
	}
	return ended, dberr.Wrap(rows.Err(), "sessions_end_rows")
}

// # Listing Capability

func (repository *postgresRepository) FindMany(context context.Context, args search.FindArgs) ([]Session, error) {
	query, params := search.BuildSelect(schema.Session.Table, schema.Session.Columns(), args)

	rows, err := repository.pool.Query(context, query, params...)
	if err != nil {
		return nil, dberr.Wrap(err, "sessions_find_many")
	}
	defer rows.Close()

	var results []Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "sessions_find_many_scan")
		}
		results = append(results, *session)
	}
	return results, dberr.Wrap(rows.Err(), "sessions_find_many_rows")
}

func (repository *postgresRepository) Count(context context.Context, where *search.Predicate) (int, error) {
	query, params := search.BuildCount(schema.Session.Table, where)

	var count int
	if err := repository.pool.QueryRow(context, query, params...).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "sessions_count")
	}
	return count, nil
}
