package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dimitrije/workspace-api/internal/apperr"
	"github.com/dimitrije/workspace-api/internal/database"
	"github.com/dimitrije/workspace-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const taskAssignmentColumns = `
	ta.id, ta.task_id, t.title, ta.assigned_user_id, ta.assigned_by_user_id,
	ta.status, ta.spent_hours, ta.reward_points_earned, ta.started_at, ta.completed_at, ta.assigned_at,
	ta.user_notes, ta.submission_text, ta.submission_url, ta.submission_status,
	ta.grade_received, ta.feedback, ta.created_at, ta.updated_at, ta.version`

func taskAssignmentDest(ta *models.TaskAssignment) []any {
	return []any{
		&ta.ID, &ta.TaskID, &ta.TaskTitle, &ta.AssignedUserID, &ta.AssignedByUserID,
		&ta.Status, &ta.SpentHours, &ta.RewardPointsEarned, &ta.StartedAt, &ta.CompletedAt, &ta.AssignedAt,
		&ta.UserNotes, &ta.SubmissionText, &ta.SubmissionURL, &ta.SubmissionStatus,
		&ta.GradeReceived, &ta.Feedback, &ta.CreatedAt, &ta.UpdatedAt, &ta.Version,
	}
}

func scanTaskAssignment(row pgx.Row, ta *models.TaskAssignment) error {
	return row.Scan(taskAssignmentDest(ta)...)
}

type TaskAssignmentService struct {
	db  *database.DB
	now func() time.Time
}

func NewTaskAssignmentService(db *database.DB) *TaskAssignmentService {
	return &TaskAssignmentService{db: db, now: time.Now}
}

// AssignUsers creates a TaskAssignment for every user not yet on the task
// and returns only the rows it created.
func (s *TaskAssignmentService) AssignUsers(ctx context.Context, taskID uuid.UUID, userIDs []uuid.UUID, assignedBy uuid.UUID) ([]models.TaskAssignment, error) {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := requireTask(ctx, tx, taskID); err != nil {
		return nil, err
	}

	created, err := assignUsers(ctx, tx, taskID, userIDs, &assignedBy)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return created, nil
}

// assignUsers relies on the (task_id, assigned_user_id) unique key: a user
// already on the task makes the insert return no row.
func assignUsers(ctx context.Context, q database.Querier, taskID uuid.UUID, userIDs []uuid.UUID, assignedBy *uuid.UUID) ([]models.TaskAssignment, error) {
	created := []models.TaskAssignment{}
	for _, userID := range uniqueIDs(userIDs) {
		var ta models.TaskAssignment
		err := scanTaskAssignment(q.QueryRow(ctx, `
			WITH ta AS (
				INSERT INTO task_assignments (task_id, assigned_user_id, assigned_by_user_id, status, spent_hours)
				VALUES ($1, $2, $3, $4, 0)
				ON CONFLICT (task_id, assigned_user_id) DO NOTHING
				RETURNING *
			)
			SELECT `+taskAssignmentColumns+`
			FROM ta JOIN tasks t ON t.id = ta.task_id
		`, taskID, userID, assignedBy, models.TaskStatusOngoing), &ta)
		if errors.Is(err, pgx.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to assign user to task: %w", err)
		}
		created = append(created, ta)
	}
	return created, nil
}

// UnassignUsers removes the users from the task. Users that were never
// assigned are ignored.
func (s *TaskAssignmentService) UnassignUsers(ctx context.Context, taskID uuid.UUID, userIDs []uuid.UUID) error {
	if err := requireTask(ctx, s.db.Pool, taskID); err != nil {
		return err
	}

	_, err := s.db.Pool.Exec(ctx, `
		DELETE FROM task_assignments WHERE task_id = $1 AND assigned_user_id = ANY($2)
	`, taskID, uniqueIDs(userIDs))
	if err != nil {
		return fmt.Errorf("failed to unassign users: %w", err)
	}
	return nil
}

// Update applies a partial progress update to the (task, user) assignment.
// Completion awards the task's reward points once.
func (s *TaskAssignmentService) Update(ctx context.Context, p models.TaskAssignmentPatch) (*models.TaskAssignment, error) {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var ta models.TaskAssignment
	var rewardPoints int
	err = tx.QueryRow(ctx, `
		SELECT `+taskAssignmentColumns+`, t.reward_points
		FROM task_assignments ta
		JOIN tasks t ON t.id = ta.task_id
		WHERE ta.task_id = $1 AND ta.assigned_user_id = $2
		  AND ta.deleted_at IS NULL AND t.deleted_at IS NULL
		FOR UPDATE OF ta
	`, p.TaskID, p.UserID).Scan(append(taskAssignmentDest(&ta), &rewardPoints)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("Task assignment not found for task %s and user %s", p.TaskID, p.UserID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task assignment: %w", err)
	}

	ta.ApplyProgress(p, rewardPoints, s.now())

	err = tx.QueryRow(ctx, `
		UPDATE task_assignments
		SET status = $1, spent_hours = $2, reward_points_earned = $3,
		    started_at = $4, completed_at = $5, user_notes = $6,
		    submission_text = $7, submission_url = $8, submission_status = $9,
		    grade_received = $10, feedback = $11,
		    version = version + 1, updated_at = NOW()
		WHERE id = $12
		RETURNING updated_at, version
	`, ta.Status, ta.SpentHours, ta.RewardPointsEarned,
		ta.StartedAt, ta.CompletedAt, ta.UserNotes,
		ta.SubmissionText, ta.SubmissionURL, ta.SubmissionStatus,
		ta.GradeReceived, ta.Feedback, ta.ID).Scan(&ta.UpdatedAt, &ta.Version)
	if err != nil {
		return nil, fmt.Errorf("failed to update task assignment: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return &ta, nil
}

func (s *TaskAssignmentService) list(ctx context.Context, where, order string, args ...any) ([]models.TaskAssignment, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+taskAssignmentColumns+`
		FROM task_assignments ta
		JOIN tasks t ON t.id = ta.task_id
		WHERE ta.deleted_at IS NULL AND t.deleted_at IS NULL AND `+where+`
		ORDER BY `+order,
		args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list task assignments: %w", err)
	}
	return collect(rows, scanTaskAssignment)
}

func (s *TaskAssignmentService) ListByTask(ctx context.Context, taskID uuid.UUID) ([]models.TaskAssignment, error) {
	if err := requireTask(ctx, s.db.Pool, taskID); err != nil {
		return nil, err
	}
	return s.list(ctx, `ta.task_id = $1`, `ta.assigned_at`, taskID)
}

// ListByUser returns the user's assignments, optionally filtered by status.
func (s *TaskAssignmentService) ListByUser(ctx context.Context, userID uuid.UUID, status *models.TaskStatus) ([]models.TaskAssignment, error) {
	if status != nil {
		return s.list(ctx, `ta.assigned_user_id = $1 AND ta.status = $2`, `ta.assigned_at DESC`, userID, *status)
	}
	return s.list(ctx, `ta.assigned_user_id = $1`, `ta.assigned_at DESC`, userID)
}

// ListOverdue returns the user's unfinished assignments whose task deadline
// has passed.
func (s *TaskAssignmentService) ListOverdue(ctx context.Context, userID uuid.UUID) ([]models.TaskAssignment, error) {
	return s.list(ctx, `ta.assigned_user_id = $1 AND t.deadline < $2 AND ta.status <> $3`, `t.deadline`,
		userID, s.now(), models.TaskStatusCompleted)
}

func (s *TaskAssignmentService) GetByTaskAndUser(ctx context.Context, taskID, userID uuid.UUID) (*models.TaskAssignment, error) {
	var ta models.TaskAssignment
	err := scanTaskAssignment(s.db.Pool.QueryRow(ctx, `
		SELECT `+taskAssignmentColumns+`
		FROM task_assignments ta
		JOIN tasks t ON t.id = ta.task_id
		WHERE ta.task_id = $1 AND ta.assigned_user_id = $2
		  AND ta.deleted_at IS NULL AND t.deleted_at IS NULL
	`, taskID, userID), &ta)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("Task assignment not found for task %s and user %s", taskID, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task assignment: %w", err)
	}
	return &ta, nil
}
