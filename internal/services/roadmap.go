package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dimitrije/workspace-api/internal/apperr"
	"github.com/dimitrije/workspace-api/internal/database"
	"github.com/dimitrije/workspace-api/internal/dates"
	"github.com/dimitrije/workspace-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const roadmapWorkspaceDescription = "Workspace for Roadmap Assignments"

const roadmapColumns = `id, title, description, domain, difficulty_level, is_public, created_by, created_at, updated_at, version`

func scanRoadmap(row pgx.Row, r *models.Roadmap) error {
	return row.Scan(&r.ID, &r.Title, &r.Description, &r.Domain, &r.DifficultyLevel, &r.IsPublic,
		&r.CreatedBy, &r.CreatedAt, &r.UpdatedAt, &r.Version)
}

const roadmapStepColumns = `
	id, roadmap_id, title, description, step_order, estimated_hours, reward_points,
	is_optional, title_color, topic, days_to_complete, resources`

func scanRoadmapStep(row pgx.Row, s *models.RoadmapStep) error {
	return row.Scan(&s.ID, &s.RoadmapID, &s.Title, &s.Description, &s.StepOrder, &s.EstimatedHours,
		&s.RewardPoints, &s.IsOptional, &s.TitleColor, &s.Topic, &s.DaysToComplete, &s.Resources)
}

type RoadmapService struct {
	db  *database.DB
	now func() time.Time
}

func NewRoadmapService(db *database.DB) *RoadmapService {
	return &RoadmapService{db: db, now: time.Now}
}

// Import adds one ROADMAP assignment with a task per step to the caller's
// roadmap workspace, creating the workspace on first use. Imports by the
// same user are serialized so concurrent first imports still share one
// workspace.
func (s *RoadmapService) Import(ctx context.Context, userID uuid.UUID, in models.RoadmapImport) (*models.Assignment, error) {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, userID.String()); err != nil {
		return nil, fmt.Errorf("failed to lock roadmap workspace: %w", err)
	}

	workspaceID, err := roadmapWorkspace(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	assignmentID, err := insertAssignment(ctx, tx, models.AssignmentInput{
		WorkspaceID:         workspaceID,
		Title:               in.Title,
		Description:         in.Description,
		AssignmentTypeKey:   models.AssignmentTypeRoadmap,
		TotalRewardPoints:   in.TotalRewardPoints(),
		TotalEstimatedHours: in.TotalEstimatedHours(),
	}, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	for _, step := range in.Steps {
		_, err := createTask(ctx, tx, models.TaskInput{
			WorkspaceID:    workspaceID,
			AssignmentID:   &assignmentID,
			ReporterUserID: &userID,
			Title:          step.Title,
			Description:    step.Description,
			StatusKey:      models.TaskStatusBacklog,
			Priority:       models.DefaultTaskPriority,
			RewardPoints:   step.RewardPoints,
			EstimatedHours: step.EstimatedHours,
			TitleColor:     step.TitleColor,
			OrderNumber:    step.OrderNumber,
			Topic:          step.Topic,
			Deadline:       dates.AddDays(now, step.DaysToComplete),
		}, now)
		if err != nil {
			return nil, err
		}
	}

	assignment, err := getAssignment(ctx, tx, assignmentID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return assignment, nil
}

// roadmapWorkspace finds the user's roadmap workspace by case-insensitive
// name or creates it.
func roadmapWorkspace(ctx context.Context, q database.Querier, userID uuid.UUID) (uuid.UUID, error) {
	var id uuid.UUID
	err := q.QueryRow(ctx, `
		SELECT id FROM workspaces
		WHERE owner_user_id = $1 AND LOWER(name) = LOWER($2) AND deleted_at IS NULL
		ORDER BY created_at
		LIMIT 1
	`, userID, models.RoadmapWorkspaceName).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, fmt.Errorf("failed to find roadmap workspace: %w", err)
	}

	err = q.QueryRow(ctx, `
		INSERT INTO workspaces (name, description, visibility, owner_user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, models.RoadmapWorkspaceName, roadmapWorkspaceDescription, models.VisibilityPrivate, userID).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create roadmap workspace: %w", err)
	}
	return id, nil
}

// CreateTemplate stores a roadmap template with its steps.
func (s *RoadmapService) CreateTemplate(ctx context.Context, rm models.Roadmap) (*models.Roadmap, error) {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var id uuid.UUID
	err = tx.QueryRow(ctx, `
		INSERT INTO roadmaps (title, description, domain, difficulty_level, is_public, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, rm.Title, rm.Description, rm.Domain, rm.DifficultyLevel, rm.IsPublic, rm.CreatedBy).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create roadmap: %w", err)
	}

	for _, step := range rm.Steps {
		resources := step.Resources
		if len(resources) == 0 {
			resources = json.RawMessage(`[]`)
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO roadmap_steps (
				roadmap_id, title, description, step_order, estimated_hours, reward_points,
				is_optional, title_color, topic, days_to_complete, resources
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`, id, step.Title, step.Description, step.StepOrder, step.EstimatedHours, step.RewardPoints,
			step.IsOptional, step.TitleColor, step.Topic, step.DaysToComplete, resources)
		if err != nil {
			return nil, fmt.Errorf("failed to create roadmap step: %w", err)
		}
	}

	created, err := getRoadmap(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return created, nil
}

func getRoadmap(ctx context.Context, q database.Querier, id uuid.UUID) (*models.Roadmap, error) {
	var rm models.Roadmap
	err := scanRoadmap(q.QueryRow(ctx, `
		SELECT `+roadmapColumns+`
		FROM roadmaps
		WHERE id = $1 AND deleted_at IS NULL
	`, id), &rm)
	if err != nil {
		return nil, notFoundOr(err, "Roadmap", id)
	}

	rows, err := q.Query(ctx, `
		SELECT `+roadmapStepColumns+`
		FROM roadmap_steps
		WHERE roadmap_id = $1 AND deleted_at IS NULL
		ORDER BY step_order, created_at
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load roadmap steps: %w", err)
	}
	if rm.Steps, err = collect(rows, scanRoadmapStep); err != nil {
		return nil, err
	}
	return &rm, nil
}

// GetTemplate returns a public template or one the user created.
func (s *RoadmapService) GetTemplate(ctx context.Context, id, userID uuid.UUID) (*models.Roadmap, error) {
	rm, err := getRoadmap(ctx, s.db.Pool, id)
	if err != nil {
		return nil, err
	}
	if !rm.IsPublic && rm.CreatedBy != userID {
		return nil, apperr.NotFound("Roadmap not found with id: %s", id)
	}
	return rm, nil
}

// ListTemplates returns public templates and the user's own, without steps.
func (s *RoadmapService) ListTemplates(ctx context.Context, userID uuid.UUID) ([]models.Roadmap, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+roadmapColumns+`
		FROM roadmaps
		WHERE deleted_at IS NULL AND (is_public OR created_by = $1)
		ORDER BY title
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list roadmaps: %w", err)
	}
	return collect(rows, scanRoadmap)
}

// ImportTemplate imports the template's steps, in step order, for the user.
func (s *RoadmapService) ImportTemplate(ctx context.Context, id, userID uuid.UUID) (*models.Assignment, error) {
	rm, err := s.GetTemplate(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	return s.Import(ctx, userID, models.ImportFromTemplate(rm))
}
