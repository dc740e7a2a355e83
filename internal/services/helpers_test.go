package services

import (
	"testing"
	"time"

	"github.com/dimitrije/workspace-api/internal/database"
	"github.com/dimitrije/workspace-api/internal/models"
	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (*database.DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	return &database.DB{Pool: mock}, mock
}

func ptr[T any](v T) *T { return &v }

func workspaceRows(workspaces ...models.Workspace) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{
		"id", "name", "description", "visibility", "owner_user_id",
		"created_at", "updated_at", "version",
		"access_user_ids", "assignment_count", "task_count", "tag_count",
	})
	for _, w := range workspaces {
		ids := w.AccessUserIDs
		if ids == nil {
			ids = []uuid.UUID{}
		}
		rows.AddRow(w.ID, w.Name, w.Description, w.Visibility, w.OwnerUserID,
			w.CreatedAt, w.UpdatedAt, w.Version,
			ids, w.AssignmentCount, w.TaskCount, w.TagCount)
	}
	return rows
}

func accessRows(items ...models.WorkspaceAccess) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{"id", "workspace_id", "user_id", "access_level", "is_active", "created_at", "updated_at", "version"})
	for _, a := range items {
		rows.AddRow(a.ID, a.WorkspaceID, a.UserID, a.AccessLevel, a.IsActive, a.CreatedAt, a.UpdatedAt, a.Version)
	}
	return rows
}

func assignmentRows(items ...models.Assignment) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{
		"id", "workspace_id", "title", "description", "assignment_type_key",
		"total_reward_points", "total_estimated_hours", "deadline", "created_by", "updated_by",
		"created_at", "updated_at", "version",
		"total_tasks", "completed_tasks", "total_spent_hours",
	})
	for _, a := range items {
		rows.AddRow(a.ID, a.WorkspaceID, a.Title, a.Description, a.AssignmentTypeKey,
			a.TotalRewardPoints, a.TotalEstimatedHours, a.Deadline, a.CreatedBy, a.UpdatedBy,
			a.CreatedAt, a.UpdatedAt, a.Version,
			a.Stats.TotalTasks, a.Stats.CompletedTasks, a.Stats.TotalSpentHours)
	}
	return rows
}

func taskRows(items ...models.Task) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{
		"id", "workspace_id", "assignment_id", "assignee_user_id", "reporter_user_id",
		"title", "description", "task_type_key", "status_key", "priority",
		"reward_points", "estimated_hours", "spent_hours", "title_color", "order_number", "topic",
		"deadline", "started_at", "completed_at", "created_at", "updated_at", "version",
		"comment_count",
	})
	for _, t := range items {
		rows.AddRow(t.ID, t.WorkspaceID, t.AssignmentID, t.AssigneeUserID, t.ReporterUserID,
			t.Title, t.Description, t.TaskTypeKey, t.StatusKey, t.Priority,
			t.RewardPoints, t.EstimatedHours, t.SpentHours, t.TitleColor, t.OrderNumber, t.Topic,
			t.Deadline, t.StartedAt, t.CompletedAt, t.CreatedAt, t.UpdatedAt, t.Version,
			t.CommentCount)
	}
	return rows
}

func tagRows(items ...models.Tag) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{"id", "workspace_id", "name", "color", "description", "task_count", "created_at", "updated_at", "version"})
	for _, t := range items {
		rows.AddRow(t.ID, t.WorkspaceID, t.Name, t.Color, t.Description, t.TaskCount, t.CreatedAt, t.UpdatedAt, t.Version)
	}
	return rows
}

func taskAssignmentColumnNames() []string {
	return []string{
		"id", "task_id", "task_title", "assigned_user_id", "assigned_by_user_id",
		"status", "spent_hours", "reward_points_earned", "started_at", "completed_at", "assigned_at",
		"user_notes", "submission_text", "submission_url", "submission_status",
		"grade_received", "feedback", "created_at", "updated_at", "version",
	}
}

func taskAssignmentValues(ta models.TaskAssignment) []any {
	return []any{
		ta.ID, ta.TaskID, ta.TaskTitle, ta.AssignedUserID, ta.AssignedByUserID,
		ta.Status, ta.SpentHours, ta.RewardPointsEarned, ta.StartedAt, ta.CompletedAt, ta.AssignedAt,
		ta.UserNotes, ta.SubmissionText, ta.SubmissionURL, ta.SubmissionStatus,
		ta.GradeReceived, ta.Feedback, ta.CreatedAt, ta.UpdatedAt, ta.Version,
	}
}

func taskAssignmentRows(items ...models.TaskAssignment) *pgxmock.Rows {
	rows := pgxmock.NewRows(taskAssignmentColumnNames())
	for _, ta := range items {
		rows.AddRow(taskAssignmentValues(ta)...)
	}
	return rows
}

func existsRow(ok bool) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"exists"}).AddRow(ok)
}

func idRow(id uuid.UUID) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id"}).AddRow(id)
}

func newWorkspace(owner uuid.UUID) models.Workspace {
	now := time.Now()
	return models.Workspace{
		ID:          uuid.New(),
		Name:        "Backend Guild",
		Description: "Shared backend work",
		Visibility:  models.VisibilityPrivate,
		OwnerUserID: owner,
		CreatedAt:   now,
		UpdatedAt:   now,
		Version:     1,
	}
}

func taskTagRows(pairs ...any) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{"task_id", "id", "workspace_id", "name", "color", "description", "task_count", "created_at", "updated_at", "version"})
	for i := 0; i+1 < len(pairs); i += 2 {
		taskID := pairs[i].(uuid.UUID)
		t := pairs[i+1].(models.Tag)
		rows.AddRow(taskID, t.ID, t.WorkspaceID, t.Name, t.Color, t.Description, t.TaskCount, t.CreatedAt, t.UpdatedAt, t.Version)
	}
	return rows
}

func noTaskTags() *pgxmock.Rows {
	return taskTagRows()
}

func countRow(n int) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"count"}).AddRow(n)
}

func totalRow(n int64) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"count"}).AddRow(n)
}

func groupRows(items ...models.Group) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{"id", "name", "slug", "description", "visibility", "created_by", "member_count", "created_at", "updated_at", "version"})
	for _, g := range items {
		rows.AddRow(g.ID, g.Name, g.Slug, g.Description, g.Visibility, g.CreatedByUserID, g.MemberCount, g.CreatedAt, g.UpdatedAt, g.Version)
	}
	return rows
}

func membershipRows(items ...models.GroupMembership) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{"id", "group_id", "user_id", "role", "is_active", "created_at"})
	for _, m := range items {
		rows.AddRow(m.ID, m.GroupID, m.UserID, m.Role, m.IsActive, m.CreatedAt)
	}
	return rows
}

func commentRows(items ...models.Comment) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{"id", "task_id", "user_id", "body", "attachments", "created_at", "updated_at", "version"})
	for _, c := range items {
		rows.AddRow(c.ID, c.TaskID, c.UserID, c.Body, c.Attachments, c.CreatedAt, c.UpdatedAt, c.Version)
	}
	return rows
}

func activityRows(items ...models.ActivityLog) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{"id", "workspace_id", "user_id", "entity_type", "entity_id", "action_key", "details", "created_at"})
	for _, a := range items {
		rows.AddRow(a.ID, a.WorkspaceID, a.UserID, a.EntityType, a.EntityID, a.ActionKey, a.Details, a.CreatedAt)
	}
	return rows
}

func roadmapRows(items ...models.Roadmap) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{"id", "title", "description", "domain", "difficulty_level", "is_public", "created_by", "created_at", "updated_at", "version"})
	for _, r := range items {
		rows.AddRow(r.ID, r.Title, r.Description, r.Domain, r.DifficultyLevel, r.IsPublic, r.CreatedBy, r.CreatedAt, r.UpdatedAt, r.Version)
	}
	return rows
}

func roadmapStepRows(items ...models.RoadmapStep) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{"id", "roadmap_id", "title", "description", "step_order", "estimated_hours", "reward_points", "is_optional", "title_color", "topic", "days_to_complete", "resources"})
	for _, s := range items {
		rows.AddRow(s.ID, s.RoadmapID, s.Title, s.Description, s.StepOrder, s.EstimatedHours, s.RewardPoints, s.IsOptional, s.TitleColor, s.Topic, s.DaysToComplete, s.Resources)
	}
	return rows
}

func newTask(workspaceID uuid.UUID) models.Task {
	now := time.Now()
	return models.Task{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		Title:       "Write the migration",
		StatusKey:   models.TaskStatusBacklog,
		Priority:    models.DefaultTaskPriority,
		CreatedAt:   now,
		UpdatedAt:   now,
		Version:     1,
	}
}

func newAssignment(workspaceID uuid.UUID) models.Assignment {
	now := time.Now()
	return models.Assignment{
		ID:                uuid.New(),
		WorkspaceID:       workspaceID,
		Title:             "Sprint 12",
		AssignmentTypeKey: models.AssignmentTypeCustom,
		CreatedAt:         now,
		UpdatedAt:         now,
		Version:           1,
	}
}

func newTaskAssignment(taskID, userID uuid.UUID) models.TaskAssignment {
	now := time.Now()
	return models.TaskAssignment{
		ID:               uuid.New(),
		TaskID:           taskID,
		TaskTitle:        "Write the migration",
		AssignedUserID:   userID,
		Status:           models.TaskStatusOngoing,
		AssignedAt:       now,
		SubmissionStatus: models.SubmissionNotSubmitted,
		CreatedAt:        now,
		UpdatedAt:        now,
		Version:          1,
	}
}

// notNilTime matches a non-nil *time.Time argument.
type notNilTime struct{}

func (notNilTime) Match(v any) bool {
	t, ok := v.(*time.Time)
	return ok && t != nil
}

// nilTime matches a nil *time.Time argument.
type nilTime struct{}

func (nilTime) Match(v any) bool {
	t, ok := v.(*time.Time)
	return ok && t == nil
}
