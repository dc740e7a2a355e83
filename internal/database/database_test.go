package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (*DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })
	return &DB{Pool: mock}, mock
}

func TestNew_EmptyURL(t *testing.T) {
	_, err := New(context.Background(), "")
	assert.EqualError(t, err, "database url is empty")
}

func TestInTx_Commits(t *testing.T) {
	db, mock := setupMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE workspaces`).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	err := db.InTx(context.Background(), func(tx pgx.Tx) error {
		_, err := tx.Exec(context.Background(), `UPDATE workspaces SET name = 'x'`)
		return err
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInTx_RollsBackOnError(t *testing.T) {
	db, mock := setupMock(t)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := db.InTx(context.Background(), func(pgx.Tx) error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate_StopsOnFailure(t *testing.T) {
	db, mock := setupMock(t)
	mock.ExpectExec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).WillReturnError(errors.New("permission denied"))

	err := db.Migrate(context.Background())

	assert.ErrorContains(t, err, "migration 1 failed")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPurge(t *testing.T) {
	db, mock := setupMock(t)
	mock.ExpectExec(`DELETE FROM workspaces`).
		WithArgs(pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	n, err := db.Purge(context.Background(), 30*24*time.Hour)

	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
