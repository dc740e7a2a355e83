package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dimitrije/workspace-api/internal/apperr"
	"github.com/dimitrije/workspace-api/internal/database"
	"github.com/dimitrije/workspace-api/internal/models"
	"github.com/dimitrije/workspace-api/internal/paging"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrTagNotFound = apperr.NotFound("Tag not found")

const taskColumns = `
	t.id, t.workspace_id, t.assignment_id, t.assignee_user_id, t.reporter_user_id,
	t.title, t.description, t.task_type_key, t.status_key, t.priority,
	t.reward_points, t.estimated_hours, t.spent_hours, t.title_color, t.order_number, t.topic,
	t.deadline, t.started_at, t.completed_at, t.created_at, t.updated_at, t.version,
	(SELECT COUNT(*) FROM comments c WHERE c.task_id = t.id AND c.deleted_at IS NULL) AS comment_count`

func scanTask(row pgx.Row, t *models.Task) error {
	err := row.Scan(
		&t.ID, &t.WorkspaceID, &t.AssignmentID, &t.AssigneeUserID, &t.ReporterUserID,
		&t.Title, &t.Description, &t.TaskTypeKey, &t.StatusKey, &t.Priority,
		&t.RewardPoints, &t.EstimatedHours, &t.SpentHours, &t.TitleColor, &t.OrderNumber, &t.Topic,
		&t.Deadline, &t.StartedAt, &t.CompletedAt, &t.CreatedAt, &t.UpdatedAt, &t.Version,
		&t.CommentCount,
	)
	if err != nil {
		return err
	}
	t.Overdue = t.IsOverdue(time.Now())
	return nil
}

var taskSortColumns = map[string]string{
	"createdAt":   "t.created_at",
	"updatedAt":   "t.updated_at",
	"deadline":    "t.deadline",
	"priority":    "t.priority",
	"title":       "t.title",
	"orderNumber": "t.order_number",
	"statusKey":   "t.status_key",
}

type TaskService struct {
	db  *database.DB
	now func() time.Time
}

func NewTaskService(db *database.DB) *TaskService {
	return &TaskService{db: db, now: time.Now}
}

// Create validates the workspace, the optional assignment and every tag
// before inserting anything.
func (s *TaskService) Create(ctx context.Context, in models.TaskInput) (*models.Task, error) {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := requireWorkspace(ctx, tx, in.WorkspaceID); err != nil {
		return nil, err
	}
	if in.AssignmentID != nil {
		var ok bool
		err := tx.QueryRow(ctx, `
			SELECT EXISTS(SELECT 1 FROM assignments WHERE id = $1 AND workspace_id = $2 AND deleted_at IS NULL)
		`, *in.AssignmentID, in.WorkspaceID).Scan(&ok)
		if err != nil {
			return nil, fmt.Errorf("failed to check assignment: %w", err)
		}
		if !ok {
			return nil, apperr.NotFound("Assignment not found with id: %s", *in.AssignmentID)
		}
	}

	id, err := createTask(ctx, tx, in, s.now())
	if err != nil {
		return nil, err
	}

	task, err := getTask(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return task, nil
}

// createTask resolves tags, inserts the task and links the tags. Callers own
// the transaction and the workspace check.
func createTask(ctx context.Context, q database.Querier, in models.TaskInput, now time.Time) (uuid.UUID, error) {
	tagIDs := uniqueIDs(in.TagIDs)
	if err := resolveTags(ctx, q, in.WorkspaceID, tagIDs); err != nil {
		return uuid.Nil, err
	}

	if in.StatusKey == "" {
		in.StatusKey = models.TaskStatusBacklog
	}
	if in.Priority == 0 {
		in.Priority = models.DefaultTaskPriority
	}
	var startedAt, completedAt *time.Time
	switch in.StatusKey {
	case models.TaskStatusOngoing:
		startedAt = &now
	case models.TaskStatusCompleted:
		completedAt = &now
	}

	var id uuid.UUID
	err := q.QueryRow(ctx, `
		INSERT INTO tasks (
			workspace_id, assignment_id, assignee_user_id, reporter_user_id, title, description,
			task_type_key, status_key, priority, reward_points, estimated_hours, spent_hours,
			title_color, order_number, topic, deadline, started_at, completed_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id
	`,
		in.WorkspaceID, in.AssignmentID, in.AssigneeUserID, in.ReporterUserID, in.Title, in.Description,
		in.TaskTypeKey, in.StatusKey, in.Priority, in.RewardPoints, in.EstimatedHours, in.SpentHours,
		in.TitleColor, in.OrderNumber, in.Topic, in.Deadline, startedAt, completedAt,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create task: %w", err)
	}

	if err := linkTags(ctx, q, id, tagIDs); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// resolveTags fails with ErrTagNotFound unless every id is a live tag of the
// workspace.
func resolveTags(ctx context.Context, q database.Querier, workspaceID uuid.UUID, tagIDs []uuid.UUID) error {
	if len(tagIDs) == 0 {
		return nil
	}
	var found int
	err := q.QueryRow(ctx, `
		SELECT COUNT(*) FROM tags
		WHERE id = ANY($1) AND workspace_id = $2 AND deleted_at IS NULL
	`, tagIDs, workspaceID).Scan(&found)
	if err != nil {
		return fmt.Errorf("failed to resolve tags: %w", err)
	}
	if found != len(tagIDs) {
		return ErrTagNotFound
	}
	return nil
}

func linkTags(ctx context.Context, q database.Querier, taskID uuid.UUID, tagIDs []uuid.UUID) error {
	if len(tagIDs) == 0 {
		return nil
	}
	_, err := q.Exec(ctx, `
		INSERT INTO task_tags (task_id, tag_id)
		SELECT $1, unnest($2::uuid[])
	`, taskID, tagIDs)
	if err != nil {
		return fmt.Errorf("failed to tag task: %w", err)
	}
	return nil
}

func getTask(ctx context.Context, q database.Querier, id uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := scanTask(q.QueryRow(ctx, `
		SELECT `+taskColumns+`
		FROM tasks t
		WHERE t.id = $1 AND t.deleted_at IS NULL
	`, id), &task)
	if err != nil {
		return nil, notFoundOr(err, "Task", id)
	}

	tasks := []models.Task{task}
	if err := attachTags(ctx, q, tasks); err != nil {
		return nil, err
	}
	return &tasks[0], nil
}

// attachTags loads the live tags of every task in one query.
func attachTags(ctx context.Context, q database.Querier, tasks []models.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(tasks))
	index := make(map[uuid.UUID]int, len(tasks))
	for i := range tasks {
		ids[i] = tasks[i].ID
		index[tasks[i].ID] = i
		tasks[i].Tags = []models.Tag{}
	}

	rows, err := q.Query(ctx, `
		SELECT tt.task_id, `+tagColumns+`
		FROM task_tags tt
		JOIN tags tg ON tg.id = tt.tag_id
		WHERE tt.task_id = ANY($1) AND tg.deleted_at IS NULL
		ORDER BY tg.name
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to load task tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var taskID uuid.UUID
		var tag models.Tag
		if err := rows.Scan(append([]any{&taskID}, tagDest(&tag)...)...); err != nil {
			return err
		}
		if i, ok := index[taskID]; ok {
			tasks[i].Tags = append(tasks[i].Tags, tag)
		}
	}
	return rows.Err()
}

func (s *TaskService) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	return getTask(ctx, s.db.Pool, id)
}

// WorkspaceOf returns the workspace a live task belongs to.
func (s *TaskService) WorkspaceOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	var workspaceID uuid.UUID
	err := s.db.Pool.QueryRow(ctx, `
		SELECT workspace_id FROM tasks WHERE id = $1 AND deleted_at IS NULL
	`, id).Scan(&workspaceID)
	if err != nil {
		return uuid.Nil, notFoundOr(err, "Task", id)
	}
	return workspaceID, nil
}

func (s *TaskService) page(ctx context.Context, page paging.Request, where string, args ...any) ([]models.Task, int64, error) {
	var total int64
	err := s.db.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM tasks t WHERE t.deleted_at IS NULL AND `+where,
		args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	n := len(args)
	rows, err := s.db.Pool.Query(ctx, fmt.Sprintf(`
		SELECT `+taskColumns+`
		FROM tasks t
		WHERE t.deleted_at IS NULL AND `+where+`
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, page.OrderBy(taskSortColumns, "t.created_at DESC"), n+1, n+2),
		append(args, page.Size, page.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	tasks, err := collect(rows, scanTask)
	if err != nil {
		return nil, 0, err
	}
	if err := attachTags(ctx, s.db.Pool, tasks); err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

func (s *TaskService) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID, page paging.Request) ([]models.Task, int64, error) {
	return s.page(ctx, page, `t.workspace_id = $1`, workspaceID)
}

func (s *TaskService) ListByAssignment(ctx context.Context, assignmentID uuid.UUID, page paging.Request) ([]models.Task, int64, error) {
	return s.page(ctx, page, `t.assignment_id = $1`, assignmentID)
}

func (s *TaskService) ListByAssignee(ctx context.Context, userID uuid.UUID, page paging.Request) ([]models.Task, int64, error) {
	return s.page(ctx, page, `t.assignee_user_id = $1`, userID)
}

func (s *TaskService) ListByReporter(ctx context.Context, userID uuid.UUID, page paging.Request) ([]models.Task, int64, error) {
	return s.page(ctx, page, `t.reporter_user_id = $1`, userID)
}

func (s *TaskService) ListByStatus(ctx context.Context, workspaceID uuid.UUID, status models.TaskStatus, page paging.Request) ([]models.Task, int64, error) {
	return s.page(ctx, page, `t.workspace_id = $1 AND t.status_key = $2`, workspaceID, status)
}

// ListOverdue returns workspace tasks past their deadline and not completed.
func (s *TaskService) ListOverdue(ctx context.Context, workspaceID uuid.UUID, page paging.Request) ([]models.Task, int64, error) {
	return s.page(ctx, page, `t.workspace_id = $1 AND t.deadline < $2 AND t.status_key <> $3`,
		workspaceID, s.now(), models.TaskStatusCompleted)
}

// Update applies the non-nil fields of p. Entering ONGOING or COMPLETED
// stamps started_at or completed_at once; leaving a status never clears
// them. A non-nil TagIDs replaces the task's tags.
func (s *TaskService) Update(ctx context.Context, id uuid.UUID, p models.TaskPatch) (*models.Task, error) {
	if p.IsEmpty() {
		return nil, ErrNoFieldsToUpdate
	}

	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var sets []string
	var args []any
	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if p.AssigneeUserID != nil {
		set("assignee_user_id", *p.AssigneeUserID)
	}
	if p.Title != nil {
		set("title", *p.Title)
	}
	if p.Description != nil {
		set("description", *p.Description)
	}
	if p.TaskTypeKey != nil {
		set("task_type_key", *p.TaskTypeKey)
	}
	if p.StatusKey != nil {
		set("status_key", *p.StatusKey)
		n := len(args)
		sets = append(sets,
			fmt.Sprintf("started_at = CASE WHEN $%d::text = '%s' THEN COALESCE(started_at, NOW()) ELSE started_at END", n, models.TaskStatusOngoing),
			fmt.Sprintf("completed_at = CASE WHEN $%d::text = '%s' THEN COALESCE(completed_at, NOW()) ELSE completed_at END", n, models.TaskStatusCompleted),
		)
	}
	if p.Priority != nil {
		set("priority", *p.Priority)
	}
	if p.RewardPoints != nil {
		set("reward_points", *p.RewardPoints)
	}
	if p.EstimatedHours != nil {
		set("estimated_hours", *p.EstimatedHours)
	}
	if p.SpentHours != nil {
		set("spent_hours", *p.SpentHours)
	}
	if p.TitleColor != nil {
		set("title_color", *p.TitleColor)
	}
	if p.OrderNumber != nil {
		set("order_number", *p.OrderNumber)
	}
	if p.Topic != nil {
		set("topic", *p.Topic)
	}
	if p.Deadline != nil {
		set("deadline", *p.Deadline)
	}
	sets = append(sets, "version = version + 1", "updated_at = NOW()")
	args = append(args, id, p.Version)

	var workspaceID uuid.UUID
	err = tx.QueryRow(ctx, fmt.Sprintf(`
		UPDATE tasks SET %s
		WHERE id = $%d AND deleted_at IS NULL AND ($%d::int IS NULL OR version = $%d)
		RETURNING workspace_id
	`, strings.Join(sets, ", "), len(args)-1, len(args), len(args)), args...).Scan(&workspaceID)
	if err != nil {
		return nil, checkVersionConflict(ctx, tx, "tasks", "Task", id, p.Version, err)
	}

	if p.TagIDs != nil {
		tagIDs := uniqueIDs(p.TagIDs)
		if err := resolveTags(ctx, tx, workspaceID, tagIDs); err != nil {
			return nil, err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM task_tags WHERE task_id = $1`, id); err != nil {
			return nil, fmt.Errorf("failed to clear task tags: %w", err)
		}
		if err := linkTags(ctx, tx, id, tagIDs); err != nil {
			return nil, err
		}
	}

	task, err := getTask(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return task, nil
}

func (s *TaskService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.TaskStatus) (*models.Task, error) {
	return s.Update(ctx, id, models.TaskPatch{StatusKey: &status})
}

func (s *TaskService) AssignTask(ctx context.Context, id, assigneeID uuid.UUID) (*models.Task, error) {
	return s.Update(ctx, id, models.TaskPatch{AssigneeUserID: &assigneeID})
}

// AddTimeSpent adds hours to the task-level spent hours.
func (s *TaskService) AddTimeSpent(ctx context.Context, id uuid.UUID, hours float64) (*models.Task, error) {
	if hours < 0 {
		return nil, apperr.BadRequest("Hours must not be negative")
	}

	var updatedID uuid.UUID
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE tasks SET spent_hours = spent_hours + $1, version = version + 1, updated_at = NOW()
		WHERE id = $2 AND deleted_at IS NULL
		RETURNING id
	`, hours, id).Scan(&updatedID)
	if err != nil {
		return nil, notFoundOr(err, "Task", id)
	}
	return getTask(ctx, s.db.Pool, id)
}

// Delete removes the task physically. Its comments, tags links and user
// assignments go with it.
func (s *TaskService) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.Pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Task not found with id: %s", id)
	}
	return nil
}

func requireTask(ctx context.Context, q database.Querier, id uuid.UUID) error {
	ok, err := exists(ctx, q, "tasks", id)
	if err != nil {
		return fmt.Errorf("failed to check task: %w", err)
	}
	if !ok {
		return apperr.NotFound("Task not found with id: %s", id)
	}
	return nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
