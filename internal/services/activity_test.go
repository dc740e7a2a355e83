package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/dimitrije/workspace-api/internal/apperr"
	"github.com/dimitrije/workspace-api/internal/models"
	"github.com/dimitrije/workspace-api/internal/paging"
	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestActivityService_Record(t *testing.T) {
	db, mock := setupMockDB(t)
	core, logs := observer.New(zap.InfoLevel)
	svc := NewActivityService(db, zap.New(core))
	wsID, userID, taskID := uuid.New(), uuid.New(), uuid.New()

	mock.ExpectExec(`INSERT INTO activity_logs`).
		WithArgs(wsID, userID, models.EntityTask, taskID, models.ActionStatusChanged, json.RawMessage(`{"status":"COMPLETED"}`)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := svc.Record(context.Background(), wsID, userID, models.EntityTask, taskID, models.ActionStatusChanged,
		map[string]string{"status": "COMPLETED"})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())

	entries := logs.FilterMessage("workspace activity").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "activity", entries[0].LoggerName)
	assert.Equal(t, models.ActionStatusChanged, entries[0].ContextMap()["action"])
}

func TestActivityService_Record_NilDetails(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewActivityService(db, nil)

	mock.ExpectExec(`INSERT INTO activity_logs`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), json.RawMessage(`{}`)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := svc.Record(context.Background(), uuid.New(), uuid.New(), models.EntityWorkspace, uuid.New(), models.ActionCreated, nil)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActivityService_ListByWorkspace(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewActivityService(db, nil)
	wsID := uuid.New()
	entry := models.ActivityLog{
		ID: uuid.New(), WorkspaceID: wsID, UserID: uuid.New(),
		EntityType: models.EntityTag, EntityID: uuid.New(), ActionKey: models.ActionDeleted,
		Details: json.RawMessage(`{}`), CreatedAt: time.Now(),
	}

	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM workspaces`).WithArgs(wsID).WillReturnRows(existsRow(true))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM activity_logs`).WithArgs(wsID).WillReturnRows(totalRow(11))
	mock.ExpectQuery(`ORDER BY created_at DESC LIMIT \$2 OFFSET \$3`).
		WithArgs(wsID, 10, 10).
		WillReturnRows(activityRows(entry))

	items, total, err := svc.ListByWorkspace(context.Background(), wsID, paging.Request{Page: 1, Size: 10})

	require.NoError(t, err)
	assert.Equal(t, int64(11), total)
	require.Len(t, items, 1)
	assert.Equal(t, models.ActionDeleted, items[0].ActionKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActivityService_ListByWorkspace_WorkspaceMissing(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewActivityService(db, nil)

	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM workspaces`).WillReturnRows(existsRow(false))

	_, _, err := svc.ListByWorkspace(context.Background(), uuid.New(), paging.Request{Size: 10})

	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
