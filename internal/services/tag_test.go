package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dimitrije/workspace-api/internal/apperr"
	"github.com/dimitrije/workspace-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTag(workspaceID uuid.UUID, name string) models.Tag {
	now := time.Now()
	return models.Tag{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		Name:        name,
		Color:       "#3366ff",
		CreatedAt:   now,
		UpdatedAt:   now,
		Version:     1,
	}
}

func TestTagService_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewTagService(db)
	wsID := uuid.New()
	tag := newTag(wsID, "backend")

	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM workspaces`).WithArgs(wsID).WillReturnRows(existsRow(true))
	mock.ExpectQuery(`INSERT INTO tags`).
		WithArgs(wsID, "backend", "#3366ff", "").
		WillReturnRows(idRow(tag.ID))
	mock.ExpectQuery(`FROM tags tg`).WithArgs(tag.ID, wsID).WillReturnRows(tagRows(tag))

	got, err := svc.Create(context.Background(), wsID, "  backend ", "#3366ff", "")

	require.NoError(t, err)
	assert.Equal(t, "backend", got.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTagService_Create_DuplicateName(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewTagService(db)
	wsID := uuid.New()

	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM workspaces`).WithArgs(wsID).WillReturnRows(existsRow(true))
	mock.ExpectQuery(`INSERT INTO tags`).WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := svc.Create(context.Background(), wsID, "Backend", "", "")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrBadRequest)
	assert.Equal(t, "Tag with name 'Backend' already exists in this workspace", apperr.Message(err))
}

func TestTagService_Create_WorkspaceMissing(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewTagService(db)
	wsID := uuid.New()

	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM workspaces`).WithArgs(wsID).WillReturnRows(existsRow(false))

	_, err := svc.Create(context.Background(), wsID, "backend", "", "")

	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestTagService_Update(t *testing.T) {
	tests := []struct {
		name    string
		patch   models.TagPatch
		setup   func(mock pgxmock.PgxPoolIface, wsID, id uuid.UUID)
		wantErr error
	}{
		{
			name:    "no fields",
			patch:   models.TagPatch{},
			setup:   func(pgxmock.PgxPoolIface, uuid.UUID, uuid.UUID) {},
			wantErr: apperr.ErrBadRequest,
		},
		{
			name:  "stale version",
			patch: models.TagPatch{Color: ptr("#000000"), Version: ptr(1)},
			setup: func(mock pgxmock.PgxPoolIface, wsID, id uuid.UUID) {
				mock.ExpectQuery(`UPDATE tags`).WillReturnError(pgx.ErrNoRows)
				mock.ExpectQuery(`SELECT version FROM tags`).WithArgs(id).
					WillReturnRows(pgxmock.NewRows([]string{"version"}).AddRow(2))
			},
			wantErr: apperr.ErrVersionConflict,
		},
		{
			name:  "renamed onto existing tag",
			patch: models.TagPatch{Name: ptr("frontend")},
			setup: func(mock pgxmock.PgxPoolIface, wsID, id uuid.UUID) {
				mock.ExpectQuery(`UPDATE tags`).WillReturnError(&pgconn.PgError{Code: "23505"})
			},
			wantErr: apperr.ErrBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			svc := NewTagService(db)
			wsID, id := uuid.New(), uuid.New()
			tt.setup(mock, wsID, id)

			_, err := svc.Update(context.Background(), wsID, id, tt.patch)

			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTagService_Delete_UnlinksTasks(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewTagService(db)
	wsID, id := uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE tags SET deleted_at = NOW\(\)`).WithArgs(id, wsID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`DELETE FROM task_tags WHERE tag_id = \$1`).WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 4))
	mock.ExpectCommit()

	require.NoError(t, svc.Delete(context.Background(), wsID, id))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTagService_Delete_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewTagService(db)
	wsID, id := uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE tags SET deleted_at = NOW\(\)`).WithArgs(id, wsID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	err := svc.Delete(context.Background(), wsID, id)

	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTagService_ListByWorkspace(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewTagService(db)
	wsID := uuid.New()
	a, b := newTag(wsID, "api"), newTag(wsID, "db")
	b.TaskCount = 3

	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM workspaces`).WithArgs(wsID).WillReturnRows(existsRow(true))
	mock.ExpectQuery(`ORDER BY tg.name`).WithArgs(wsID).WillReturnRows(tagRows(a, b))

	got, err := svc.ListByWorkspace(context.Background(), wsID)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 3, got[1].TaskCount)
}
