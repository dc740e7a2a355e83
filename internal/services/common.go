package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dimitrije/workspace-api/internal/apperr"
	"github.com/dimitrije/workspace-api/internal/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

var ErrNoFieldsToUpdate = apperr.BadRequest("no fields to update")

// checkVersionConflict explains an UPDATE ... WHERE version = $n that matched
// nothing: the row is gone (404), its version moved on (409), or the
// original error stands.
func checkVersionConflict(ctx context.Context, q database.Querier, table, entity string, id uuid.UUID, expectedVersion *int, originalErr error) error {
	if originalErr != nil && !errors.Is(originalErr, pgx.ErrNoRows) {
		return fmt.Errorf("failed to update %s: %w", entity, originalErr)
	}

	var currentVersion int
	err := q.QueryRow(ctx,
		fmt.Sprintf(`SELECT version FROM %s WHERE id = $1 AND deleted_at IS NULL`, table),
		id,
	).Scan(&currentVersion)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound("%s not found with id: %s", entity, id)
	}
	if err != nil {
		return fmt.Errorf("failed to check %s version: %w", entity, err)
	}
	if expectedVersion != nil && currentVersion != *expectedVersion {
		return apperr.Conflict("%s was modified concurrently (expected version %d, current %d)", entity, *expectedVersion, currentVersion)
	}
	return fmt.Errorf("failed to update %s: %w", entity, pgx.ErrNoRows)
}

// notFoundOr maps pgx.ErrNoRows to a 404 and wraps anything else.
func notFoundOr(err error, entity string, id uuid.UUID) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound("%s not found with id: %s", entity, id)
	}
	return fmt.Errorf("failed to get %s: %w", entity, err)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func exists(ctx context.Context, q database.Querier, table string, id uuid.UUID) (bool, error) {
	var ok bool
	err := q.QueryRow(ctx,
		fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE id = $1 AND deleted_at IS NULL)`, table),
		id,
	).Scan(&ok)
	return ok, err
}

// collect scans every row with scan and closes rows.
func collect[T any](rows pgx.Rows, scan func(pgx.Row, *T) error) ([]T, error) {
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		var item T
		if err := scan(rows, &item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
