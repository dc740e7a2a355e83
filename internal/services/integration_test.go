package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/dimitrije/workspace-api/internal/apperr"
	"github.com/dimitrije/workspace-api/internal/models"
	"github.com/dimitrije/workspace-api/internal/paging"
	"github.com/dimitrije/workspace-api/internal/services"
	"github.com/dimitrije/workspace-api/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestServices_Postgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	tdb := testutil.SetupTestDB(t)
	ctx := context.Background()

	workspaces := services.NewWorkspaceService(tdb.DB)
	assignments := services.NewAssignmentService(tdb.DB)
	tasks := services.NewTaskService(tdb.DB)
	taskAssignments := services.NewTaskAssignmentService(tdb.DB)
	roadmaps := services.NewRoadmapService(tdb.DB)
	activity := services.NewActivityService(tdb.DB, zap.NewNop())

	t.Run("accessible excludes private grants", func(t *testing.T) {
		tdb.CleanTables(t)
		owner, reader := uuid.New(), uuid.New()

		ws, err := workspaces.Create(ctx, models.WorkspaceInput{
			Name: "Private", Visibility: models.VisibilityPrivate, OwnerUserID: owner,
			ReadAccessUserIDs: []uuid.UUID{reader},
		})
		require.NoError(t, err)

		accessible, err := workspaces.ListAccessible(ctx, reader)
		require.NoError(t, err)
		assert.Empty(t, accessible)

		shared, err := workspaces.ListShared(ctx, reader)
		require.NoError(t, err)
		require.Len(t, shared, 1)
		assert.Equal(t, ws.ID, shared[0].ID)

		ok, err := workspaces.HasUserAccess(ctx, ws.ID, reader)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("grant access is idempotent", func(t *testing.T) {
		tdb.CleanTables(t)
		owner, user := uuid.New(), uuid.New()
		ws, err := workspaces.Create(ctx, models.WorkspaceInput{Name: "Ops", OwnerUserID: owner})
		require.NoError(t, err)

		_, err = workspaces.GrantAccess(ctx, ws.ID, user, models.AccessRead)
		require.NoError(t, err)
		grant, err := workspaces.GrantAccess(ctx, ws.ID, user, models.AccessAdmin)
		require.NoError(t, err)
		assert.Equal(t, models.AccessAdmin, grant.AccessLevel)

		users, err := workspaces.GetWorkspaceUsers(ctx, ws.ID)
		require.NoError(t, err)
		assert.Len(t, users, 1)
	})

	t.Run("stale version conflicts", func(t *testing.T) {
		tdb.CleanTables(t)
		owner := uuid.New()
		ws, err := workspaces.Create(ctx, models.WorkspaceInput{Name: "Docs", OwnerUserID: owner})
		require.NoError(t, err)

		stale := ws.Version
		_, err = workspaces.Update(ctx, ws.ID, models.WorkspaceInput{Name: "Docs v2", OwnerUserID: owner}, &stale)
		require.NoError(t, err)
		_, err = workspaces.Update(ctx, ws.ID, models.WorkspaceInput{Name: "Docs v3", OwnerUserID: owner}, &stale)
		assert.ErrorIs(t, err, apperr.ErrVersionConflict)
	})

	t.Run("task timestamps ratchet", func(t *testing.T) {
		tdb.CleanTables(t)
		owner := uuid.New()
		ws, err := workspaces.Create(ctx, models.WorkspaceInput{Name: "Eng", OwnerUserID: owner})
		require.NoError(t, err)
		task, err := tasks.Create(ctx, models.TaskInput{WorkspaceID: ws.ID, Title: "Ship", ReporterUserID: &owner})
		require.NoError(t, err)
		assert.Nil(t, task.StartedAt)

		task, err = tasks.UpdateStatus(ctx, task.ID, models.TaskStatusOngoing)
		require.NoError(t, err)
		require.NotNil(t, task.StartedAt)
		started := *task.StartedAt

		task, err = tasks.UpdateStatus(ctx, task.ID, models.TaskStatusCompleted)
		require.NoError(t, err)
		require.NotNil(t, task.CompletedAt)

		task, err = tasks.UpdateStatus(ctx, task.ID, models.TaskStatusBacklog)
		require.NoError(t, err)
		assert.True(t, started.Equal(*task.StartedAt))
		assert.NotNil(t, task.CompletedAt)
	})

	t.Run("deleting an assignment detaches its tasks", func(t *testing.T) {
		tdb.CleanTables(t)
		owner := uuid.New()
		ws, err := workspaces.Create(ctx, models.WorkspaceInput{Name: "School", OwnerUserID: owner})
		require.NoError(t, err)

		a, err := assignments.Create(ctx, models.AssignmentInput{
			WorkspaceID: ws.ID, Title: "Week 1", AssignmentTypeKey: models.AssignmentTypeCustom,
			NewTasks: []models.TaskInput{{WorkspaceID: ws.ID, Title: "Read chapter 1"}},
		}, owner)
		require.NoError(t, err)
		assert.Equal(t, 1, a.Stats.TotalTasks)

		require.NoError(t, assignments.Delete(ctx, a.ID))

		_, err = assignments.GetByID(ctx, a.ID)
		assert.ErrorIs(t, err, apperr.ErrNotFound)

		remaining, total, err := tasks.ListByWorkspace(ctx, ws.ID, paging.Request{Size: 20})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Nil(t, remaining[0].AssignmentID)
	})

	t.Run("assign skips existing and unassign is idempotent", func(t *testing.T) {
		tdb.CleanTables(t)
		owner, user := uuid.New(), uuid.New()
		ws, err := workspaces.Create(ctx, models.WorkspaceInput{Name: "Team", OwnerUserID: owner})
		require.NoError(t, err)
		task, err := tasks.Create(ctx, models.TaskInput{WorkspaceID: ws.ID, Title: "Review"})
		require.NoError(t, err)

		created, err := taskAssignments.AssignUsers(ctx, task.ID, []uuid.UUID{user}, owner)
		require.NoError(t, err)
		assert.Len(t, created, 1)

		created, err = taskAssignments.AssignUsers(ctx, task.ID, []uuid.UUID{user}, owner)
		require.NoError(t, err)
		assert.Empty(t, created)

		require.NoError(t, taskAssignments.UnassignUsers(ctx, task.ID, []uuid.UUID{user}))
		require.NoError(t, taskAssignments.UnassignUsers(ctx, task.ID, []uuid.UUID{user}))

		left, err := taskAssignments.ListByTask(ctx, task.ID)
		require.NoError(t, err)
		assert.Empty(t, left)
	})

	t.Run("roadmap imports reuse one workspace", func(t *testing.T) {
		tdb.CleanTables(t)
		user := uuid.New()
		in := models.RoadmapImport{
			Title: "Learn Go", Description: "Basics",
			Steps: []models.RoadmapImportStep{{Title: "Tour", RewardPoints: 5, DaysToComplete: 2}},
		}

		first, err := roadmaps.Import(ctx, user, in)
		require.NoError(t, err)
		second, err := roadmaps.Import(ctx, user, in)
		require.NoError(t, err)

		assert.Equal(t, first.WorkspaceID, second.WorkspaceID)
		assert.NotEqual(t, first.ID, second.ID)
		assert.Equal(t, models.AssignmentTypeRoadmap, second.AssignmentTypeKey)

		owned, err := workspaces.ListByOwner(ctx, user)
		require.NoError(t, err)
		assert.Len(t, owned, 1)
	})

	t.Run("purge removes soft-deleted workspaces", func(t *testing.T) {
		tdb.CleanTables(t)
		owner := uuid.New()
		gone, err := workspaces.Create(ctx, models.WorkspaceInput{Name: "Old", OwnerUserID: owner})
		require.NoError(t, err)
		kept, err := workspaces.Create(ctx, models.WorkspaceInput{Name: "Live", OwnerUserID: owner})
		require.NoError(t, err)
		require.NoError(t, workspaces.Delete(ctx, gone.ID))

		n, err := tdb.DB.Purge(ctx, -time.Hour)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		_, err = workspaces.GetByID(ctx, kept.ID)
		assert.NoError(t, err)
	})

	t.Run("activity is paged", func(t *testing.T) {
		tdb.CleanTables(t)
		owner := uuid.New()
		ws, err := workspaces.Create(ctx, models.WorkspaceInput{Name: "Log", OwnerUserID: owner})
		require.NoError(t, err)

		for _, action := range []string{models.ActionCreated, models.ActionUpdated, models.ActionDeleted} {
			require.NoError(t, activity.Record(ctx, ws.ID, owner, models.EntityWorkspace, ws.ID, action, nil))
		}

		items, total, err := activity.ListByWorkspace(ctx, ws.ID, paging.Request{Page: 0, Size: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, items, 2)
	})
}
