package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dimitrije/workspace-api/internal/apperr"
	"github.com/dimitrije/workspace-api/internal/database"
	"github.com/dimitrije/workspace-api/internal/models"
	"github.com/dimitrije/workspace-api/internal/paging"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrTasksNotFound = apperr.BadRequest("One or more tasks not found")

// Statistics are recomputed on every read. Spent hours sum the per-user
// effort recorded on task assignments.
var assignmentColumns = fmt.Sprintf(`
	a.id, a.workspace_id, a.title, a.description, a.assignment_type_key,
	a.total_reward_points, a.total_estimated_hours, a.deadline, a.created_by, a.updated_by,
	a.created_at, a.updated_at, a.version,
	(SELECT COUNT(*) FROM tasks t WHERE t.assignment_id = a.id AND t.deleted_at IS NULL) AS total_tasks,
	(SELECT COUNT(*) FROM tasks t
	 WHERE t.assignment_id = a.id AND t.deleted_at IS NULL AND t.status_key = '%s') AS completed_tasks,
	(SELECT COALESCE(SUM(ta.spent_hours), 0) FROM task_assignments ta
	 JOIN tasks t ON t.id = ta.task_id
	 WHERE t.assignment_id = a.id AND t.deleted_at IS NULL AND ta.deleted_at IS NULL) AS total_spent_hours`,
	models.TaskStatusCompleted)

func scanAssignment(row pgx.Row, a *models.Assignment) error {
	var total, completed int
	var spent float64
	err := row.Scan(
		&a.ID, &a.WorkspaceID, &a.Title, &a.Description, &a.AssignmentTypeKey,
		&a.TotalRewardPoints, &a.TotalEstimatedHours, &a.Deadline, &a.CreatedBy, &a.UpdatedBy,
		&a.CreatedAt, &a.UpdatedAt, &a.Version,
		&total, &completed, &spent,
	)
	if err != nil {
		return err
	}
	a.Stats = models.NewAssignmentStats(total, completed, spent)
	a.Overdue = a.IsOverdue(time.Now())
	return nil
}

var assignmentSortColumns = map[string]string{
	"createdAt": "a.created_at",
	"updatedAt": "a.updated_at",
	"deadline":  "a.deadline",
	"title":     "a.title",
}

type AssignmentService struct {
	db  *database.DB
	now func() time.Time
}

func NewAssignmentService(db *database.DB) *AssignmentService {
	return &AssignmentService{db: db, now: time.Now}
}

// Create inserts the assignment, attaches the existing tasks in in.TaskIDs
// and creates in.NewTasks under it, all in one transaction.
func (s *AssignmentService) Create(ctx context.Context, in models.AssignmentInput, userID uuid.UUID) (*models.Assignment, error) {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := requireWorkspace(ctx, tx, in.WorkspaceID); err != nil {
		return nil, err
	}

	id, err := insertAssignment(ctx, tx, in, userID)
	if err != nil {
		return nil, err
	}

	if err := attachTasks(ctx, tx, id, in.WorkspaceID, in.TaskIDs); err != nil {
		return nil, err
	}

	now := s.now()
	for _, task := range in.NewTasks {
		task.WorkspaceID = in.WorkspaceID
		task.AssignmentID = &id
		if _, err := createTask(ctx, tx, task, now); err != nil {
			return nil, err
		}
	}

	assignment, err := getAssignment(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return assignment, nil
}

func insertAssignment(ctx context.Context, q database.Querier, in models.AssignmentInput, userID uuid.UUID) (uuid.UUID, error) {
	if in.AssignmentTypeKey == "" {
		in.AssignmentTypeKey = models.AssignmentTypeCustom
	}

	var id uuid.UUID
	err := q.QueryRow(ctx, `
		INSERT INTO assignments (
			workspace_id, title, description, assignment_type_key,
			total_reward_points, total_estimated_hours, deadline, created_by, updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING id
	`, in.WorkspaceID, in.Title, in.Description, in.AssignmentTypeKey,
		in.TotalRewardPoints, in.TotalEstimatedHours, in.Deadline, userID).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create assignment: %w", err)
	}
	return id, nil
}

// attachTasks moves live tasks of the workspace under the assignment. Any id
// that does not resolve fails the whole call.
func attachTasks(ctx context.Context, q database.Querier, assignmentID, workspaceID uuid.UUID, taskIDs []uuid.UUID) error {
	ids := uniqueIDs(taskIDs)
	if len(ids) == 0 {
		return nil
	}

	result, err := q.Exec(ctx, `
		UPDATE tasks SET assignment_id = $1, version = version + 1, updated_at = NOW()
		WHERE id = ANY($2) AND workspace_id = $3 AND deleted_at IS NULL
	`, assignmentID, ids, workspaceID)
	if err != nil {
		return fmt.Errorf("failed to attach tasks: %w", err)
	}
	if result.RowsAffected() != int64(len(ids)) {
		return ErrTasksNotFound
	}
	return nil
}

func getAssignment(ctx context.Context, q database.Querier, id uuid.UUID) (*models.Assignment, error) {
	var a models.Assignment
	err := scanAssignment(q.QueryRow(ctx, `
		SELECT `+assignmentColumns+`
		FROM assignments a
		WHERE a.id = $1 AND a.deleted_at IS NULL
	`, id), &a)
	if err != nil {
		return nil, notFoundOr(err, "Assignment", id)
	}
	return &a, nil
}

func (s *AssignmentService) GetByID(ctx context.Context, id uuid.UUID) (*models.Assignment, error) {
	return getAssignment(ctx, s.db.Pool, id)
}

// WorkspaceOf returns the workspace a live assignment belongs to.
func (s *AssignmentService) WorkspaceOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	return assignmentWorkspace(ctx, s.db.Pool, id)
}

func assignmentWorkspace(ctx context.Context, q database.Querier, id uuid.UUID) (uuid.UUID, error) {
	var workspaceID uuid.UUID
	err := q.QueryRow(ctx, `
		SELECT workspace_id FROM assignments WHERE id = $1 AND deleted_at IS NULL
	`, id).Scan(&workspaceID)
	if err != nil {
		return uuid.Nil, notFoundOr(err, "Assignment", id)
	}
	return workspaceID, nil
}

func (s *AssignmentService) page(ctx context.Context, page paging.Request, where string, args ...any) ([]models.Assignment, int64, error) {
	var total int64
	err := s.db.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM assignments a WHERE a.deleted_at IS NULL AND `+where,
		args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count assignments: %w", err)
	}

	n := len(args)
	rows, err := s.db.Pool.Query(ctx, fmt.Sprintf(`
		SELECT `+assignmentColumns+`
		FROM assignments a
		WHERE a.deleted_at IS NULL AND `+where+`
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, page.OrderBy(assignmentSortColumns, "a.created_at DESC"), n+1, n+2),
		append(args, page.Size, page.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list assignments: %w", err)
	}
	items, err := collect(rows, scanAssignment)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// List pages through every assignment in workspaces the user can see.
func (s *AssignmentService) List(ctx context.Context, userID uuid.UUID, page paging.Request) ([]models.Assignment, int64, error) {
	return s.page(ctx, page, `a.workspace_id IN (
		SELECT w.id FROM workspaces w
		WHERE w.deleted_at IS NULL AND (
			w.owner_user_id = $1 OR EXISTS (
				SELECT 1 FROM workspace_access wa
				WHERE wa.workspace_id = w.id AND wa.user_id = $1 AND wa.is_active
			)
		)
	)`, userID)
}

func (s *AssignmentService) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID, page paging.Request) ([]models.Assignment, int64, error) {
	if err := requireWorkspace(ctx, s.db.Pool, workspaceID); err != nil {
		return nil, 0, err
	}
	return s.page(ctx, page, `a.workspace_id = $1`, workspaceID)
}

func (s *AssignmentService) ListOverdue(ctx context.Context, workspaceID uuid.UUID) ([]models.Assignment, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+assignmentColumns+`
		FROM assignments a
		WHERE a.deleted_at IS NULL AND a.workspace_id = $1 AND a.deadline < $2
		ORDER BY a.deadline
	`, workspaceID, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue assignments: %w", err)
	}
	return collect(rows, scanAssignment)
}

// Update overwrites every writable field. A non-nil version must match.
func (s *AssignmentService) Update(ctx context.Context, id uuid.UUID, in models.AssignmentInput, version *int, userID uuid.UUID) (*models.Assignment, error) {
	if in.AssignmentTypeKey == "" {
		in.AssignmentTypeKey = models.AssignmentTypeCustom
	}

	var updatedID uuid.UUID
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE assignments
		SET title = $1, description = $2, assignment_type_key = $3,
		    total_reward_points = $4, total_estimated_hours = $5, deadline = $6,
		    updated_by = $7, version = version + 1, updated_at = NOW()
		WHERE id = $8 AND deleted_at IS NULL AND ($9::int IS NULL OR version = $9)
		RETURNING id
	`, in.Title, in.Description, in.AssignmentTypeKey,
		in.TotalRewardPoints, in.TotalEstimatedHours, in.Deadline,
		userID, id, version).Scan(&updatedID)
	if err != nil {
		return nil, checkVersionConflict(ctx, s.db.Pool, "assignments", "Assignment", id, version, err)
	}
	return getAssignment(ctx, s.db.Pool, id)
}

// Delete soft-deletes the assignment and detaches its tasks, which stay
// queryable without an assignment.
func (s *AssignmentService) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	result, err := tx.Exec(ctx, `
		UPDATE assignments SET deleted_at = NOW(), version = version + 1
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Assignment not found with id: %s", id)
	}

	_, err = tx.Exec(ctx, `
		UPDATE tasks SET assignment_id = NULL, version = version + 1, updated_at = NOW()
		WHERE assignment_id = $1 AND deleted_at IS NULL
	`, id)
	if err != nil {
		return fmt.Errorf("failed to detach assignment tasks: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *AssignmentService) AddTasks(ctx context.Context, id uuid.UUID, taskIDs []uuid.UUID) (*models.Assignment, error) {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	workspaceID, err := assignmentWorkspace(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := attachTasks(ctx, tx, id, workspaceID, taskIDs); err != nil {
		return nil, err
	}

	assignment, err := getAssignment(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return assignment, nil
}

// RemoveTasks detaches the given tasks. Ids not under the assignment are
// ignored.
func (s *AssignmentService) RemoveTasks(ctx context.Context, id uuid.UUID, taskIDs []uuid.UUID) (*models.Assignment, error) {
	if _, err := assignmentWorkspace(ctx, s.db.Pool, id); err != nil {
		return nil, err
	}

	_, err := s.db.Pool.Exec(ctx, `
		UPDATE tasks SET assignment_id = NULL, version = version + 1, updated_at = NOW()
		WHERE assignment_id = $1 AND id = ANY($2) AND deleted_at IS NULL
	`, id, uniqueIDs(taskIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to remove tasks: %w", err)
	}
	return getAssignment(ctx, s.db.Pool, id)
}

func (s *AssignmentService) ListTasks(ctx context.Context, id uuid.UUID) ([]models.Task, error) {
	if _, err := assignmentWorkspace(ctx, s.db.Pool, id); err != nil {
		return nil, err
	}

	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks t
		WHERE t.assignment_id = $1 AND t.deleted_at IS NULL
		ORDER BY t.order_number, t.created_at
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignment tasks: %w", err)
	}
	tasks, err := collect(rows, scanTask)
	if err != nil {
		return nil, err
	}
	if err := attachTags(ctx, s.db.Pool, tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// AssignUsersToAllTasks assigns every user to every live task of the
// assignment and returns how many rows were created. Users already on a
// task are skipped. Either every task is assigned or none is.
func (s *AssignmentService) AssignUsersToAllTasks(ctx context.Context, id uuid.UUID, userIDs []uuid.UUID, assignedBy uuid.UUID) (int, error) {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := assignmentWorkspace(ctx, tx, id); err != nil {
		return 0, err
	}

	rows, err := tx.Query(ctx, `
		SELECT id FROM tasks
		WHERE assignment_id = $1 AND deleted_at IS NULL
		ORDER BY order_number, created_at
	`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to list assignment tasks: %w", err)
	}
	taskIDs, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return 0, fmt.Errorf("failed to list assignment tasks: %w", err)
	}
	if len(taskIDs) == 0 {
		return 0, apperr.BadRequest("No tasks found in assignment: %s", id)
	}

	count := 0
	for _, taskID := range taskIDs {
		created, err := assignUsers(ctx, tx, taskID, userIDs, &assignedBy)
		if err != nil {
			return 0, err
		}
		count += len(created)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return count, nil
}

// UnassignUsersFromAllTasks removes the users from every task of the
// assignment. Pairs that were never assigned are ignored.
func (s *AssignmentService) UnassignUsersFromAllTasks(ctx context.Context, id uuid.UUID, userIDs []uuid.UUID) (int64, error) {
	if _, err := assignmentWorkspace(ctx, s.db.Pool, id); err != nil {
		return 0, err
	}

	result, err := s.db.Pool.Exec(ctx, `
		DELETE FROM task_assignments
		WHERE assigned_user_id = ANY($2)
		  AND task_id IN (SELECT id FROM tasks WHERE assignment_id = $1 AND deleted_at IS NULL)
	`, id, uniqueIDs(userIDs))
	if err != nil {
		return 0, fmt.Errorf("failed to unassign users: %w", err)
	}
	return result.RowsAffected(), nil
}
