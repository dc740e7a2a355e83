package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dimitrije/workspace-api/internal/apperr"
	"github.com/dimitrije/workspace-api/internal/database"
	"github.com/dimitrije/workspace-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrUserAlreadyHasAccess = apperr.BadRequest("User already has access to this workspace")

const workspaceColumns = `
	w.id, w.name, w.description, w.visibility, w.owner_user_id,
	w.created_at, w.updated_at, w.version,
	ARRAY(
		SELECT wa.user_id FROM workspace_access wa
		WHERE wa.workspace_id = w.id AND wa.is_active
		ORDER BY wa.created_at
	) AS access_user_ids,
	(SELECT COUNT(*) FROM assignments a WHERE a.workspace_id = w.id AND a.deleted_at IS NULL) AS assignment_count,
	(SELECT COUNT(*) FROM tasks t WHERE t.workspace_id = w.id AND t.deleted_at IS NULL) AS task_count,
	(SELECT COUNT(*) FROM tags tg WHERE tg.workspace_id = w.id AND tg.deleted_at IS NULL) AS tag_count`

func scanWorkspace(row pgx.Row, w *models.Workspace) error {
	return row.Scan(
		&w.ID, &w.Name, &w.Description, &w.Visibility, &w.OwnerUserID,
		&w.CreatedAt, &w.UpdatedAt, &w.Version,
		&w.AccessUserIDs, &w.AssignmentCount, &w.TaskCount, &w.TagCount,
	)
}

const accessColumns = `id, workspace_id, user_id, access_level, is_active, created_at, updated_at, version`

func scanAccess(row pgx.Row, a *models.WorkspaceAccess) error {
	return row.Scan(&a.ID, &a.WorkspaceID, &a.UserID, &a.AccessLevel, &a.IsActive, &a.CreatedAt, &a.UpdatedAt, &a.Version)
}

type WorkspaceService struct {
	db *database.DB
}

func NewWorkspaceService(db *database.DB) *WorkspaceService {
	return &WorkspaceService{db: db}
}

// Create inserts the workspace and seeds its access grants. The owner never
// gets an explicit grant.
func (s *WorkspaceService) Create(ctx context.Context, in models.WorkspaceInput) (*models.Workspace, error) {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var id uuid.UUID
	err = tx.QueryRow(ctx, `
		INSERT INTO workspaces (name, description, visibility, owner_user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, in.Name, in.Description, in.VisibilityOrDefault(), in.OwnerUserID).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	grants := models.AccessGrants(in.OwnerUserID, in.ReadAccessUserIDs, in.WriteAccessUserIDs, in.AdminAccessUserIDs)
	if err := insertGrants(ctx, tx, id, grants); err != nil {
		return nil, err
	}

	ws, err := getWorkspace(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return ws, nil
}

func insertGrants(ctx context.Context, q database.Querier, workspaceID uuid.UUID, grants []models.AccessGrant) error {
	for _, g := range grants {
		_, err := q.Exec(ctx, `
			INSERT INTO workspace_access (workspace_id, user_id, access_level)
			VALUES ($1, $2, $3)
		`, workspaceID, g.UserID, g.Level)
		if err != nil {
			return fmt.Errorf("failed to grant workspace access: %w", err)
		}
	}
	return nil
}

func getWorkspace(ctx context.Context, q database.Querier, id uuid.UUID) (*models.Workspace, error) {
	var ws models.Workspace
	err := scanWorkspace(q.QueryRow(ctx, `
		SELECT `+workspaceColumns+`
		FROM workspaces w
		WHERE w.id = $1 AND w.deleted_at IS NULL
	`, id), &ws)
	if err != nil {
		return nil, notFoundOr(err, "Workspace", id)
	}
	return &ws, nil
}

func (s *WorkspaceService) GetByID(ctx context.Context, id uuid.UUID) (*models.Workspace, error) {
	return getWorkspace(ctx, s.db.Pool, id)
}

func (s *WorkspaceService) list(ctx context.Context, where string, args ...any) ([]models.Workspace, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+workspaceColumns+`
		FROM workspaces w
		WHERE w.deleted_at IS NULL AND `+where+`
		ORDER BY w.created_at DESC
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}
	return collect(rows, scanWorkspace)
}

func (s *WorkspaceService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Workspace, error) {
	return s.list(ctx, `w.owner_user_id = $1`, ownerID)
}

// ListAccessible returns the caller's own workspaces plus every PUBLIC one.
// Explicit grants on private workspaces are not included; see ListShared.
func (s *WorkspaceService) ListAccessible(ctx context.Context, userID uuid.UUID) ([]models.Workspace, error) {
	return s.list(ctx, `(w.owner_user_id = $1 OR w.visibility = $2)`, userID, models.VisibilityPublic)
}

// ListShared returns workspaces the user reaches through an active grant.
func (s *WorkspaceService) ListShared(ctx context.Context, userID uuid.UUID) ([]models.Workspace, error) {
	return s.list(ctx, `EXISTS (
		SELECT 1 FROM workspace_access wa
		WHERE wa.workspace_id = w.id AND wa.user_id = $1 AND wa.is_active
	)`, userID)
}

func (s *WorkspaceService) ListByVisibility(ctx context.Context, visibility models.Visibility) ([]models.Workspace, error) {
	return s.list(ctx, `w.visibility = $1`, visibility)
}

func (s *WorkspaceService) SearchByName(ctx context.Context, name string) ([]models.Workspace, error) {
	return s.list(ctx, `w.name ILIKE '%' || $1 || '%'`, name)
}

// Update overwrites every field and replaces the access grants. A non-nil
// version must match the stored one.
func (s *WorkspaceService) Update(ctx context.Context, id uuid.UUID, in models.WorkspaceInput, version *int) (*models.Workspace, error) {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var updatedID uuid.UUID
	err = tx.QueryRow(ctx, `
		UPDATE workspaces
		SET name = $1, description = $2, visibility = $3, owner_user_id = $4,
		    version = version + 1, updated_at = NOW()
		WHERE id = $5 AND deleted_at IS NULL AND ($6::int IS NULL OR version = $6)
		RETURNING id
	`, in.Name, in.Description, in.VisibilityOrDefault(), in.OwnerUserID, id, version).Scan(&updatedID)
	if err != nil {
		return nil, checkVersionConflict(ctx, tx, "workspaces", "Workspace", id, version, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM workspace_access WHERE workspace_id = $1`, id); err != nil {
		return nil, fmt.Errorf("failed to clear workspace access: %w", err)
	}
	grants := models.AccessGrants(in.OwnerUserID, in.ReadAccessUserIDs, in.WriteAccessUserIDs, in.AdminAccessUserIDs)
	if err := insertGrants(ctx, tx, id, grants); err != nil {
		return nil, err
	}

	ws, err := getWorkspace(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return ws, nil
}

// Delete soft-deletes the workspace with everything it owns and drops its
// access grants.
func (s *WorkspaceService) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	result, err := tx.Exec(ctx, `
		UPDATE workspaces SET deleted_at = NOW(), version = version + 1
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete workspace: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Workspace not found with id: %s", id)
	}

	cascade := []struct{ what, sql string }{
		{"comments", `
			UPDATE comments SET deleted_at = NOW()
			WHERE deleted_at IS NULL
			  AND task_id IN (SELECT id FROM tasks WHERE workspace_id = $1)`},
		{"tasks", `UPDATE tasks SET deleted_at = NOW() WHERE workspace_id = $1 AND deleted_at IS NULL`},
		{"assignments", `UPDATE assignments SET deleted_at = NOW() WHERE workspace_id = $1 AND deleted_at IS NULL`},
		{"tags", `UPDATE tags SET deleted_at = NOW() WHERE workspace_id = $1 AND deleted_at IS NULL`},
		{"access", `DELETE FROM workspace_access WHERE workspace_id = $1`},
	}
	for _, step := range cascade {
		if _, err := tx.Exec(ctx, step.sql, id); err != nil {
			return fmt.Errorf("failed to delete workspace %s: %w", step.what, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func requireWorkspace(ctx context.Context, q database.Querier, id uuid.UUID) error {
	ok, err := exists(ctx, q, "workspaces", id)
	if err != nil {
		return fmt.Errorf("failed to check workspace: %w", err)
	}
	if !ok {
		return apperr.NotFound("Workspace not found with id: %s", id)
	}
	return nil
}

// AddUser grants access to a user that has none yet.
func (s *WorkspaceService) AddUser(ctx context.Context, workspaceID, userID uuid.UUID, level models.AccessLevel) (*models.WorkspaceAccess, error) {
	if err := requireWorkspace(ctx, s.db.Pool, workspaceID); err != nil {
		return nil, err
	}

	var access models.WorkspaceAccess
	err := scanAccess(s.db.Pool.QueryRow(ctx, `
		INSERT INTO workspace_access (workspace_id, user_id, access_level)
		VALUES ($1, $2, $3)
		ON CONFLICT (workspace_id, user_id) DO NOTHING
		RETURNING `+accessColumns,
		workspaceID, userID, level), &access)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserAlreadyHasAccess
	}
	if err != nil {
		return nil, fmt.Errorf("failed to add workspace user: %w", err)
	}
	return &access, nil
}

func (s *WorkspaceService) RemoveUser(ctx context.Context, workspaceID, userID uuid.UUID) error {
	if err := requireWorkspace(ctx, s.db.Pool, workspaceID); err != nil {
		return err
	}

	_, err := s.db.Pool.Exec(ctx, `
		DELETE FROM workspace_access WHERE workspace_id = $1 AND user_id = $2
	`, workspaceID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove workspace user: %w", err)
	}
	return nil
}

func (s *WorkspaceService) UpdateAccessLevel(ctx context.Context, workspaceID, userID uuid.UUID, level models.AccessLevel) (*models.WorkspaceAccess, error) {
	var access models.WorkspaceAccess
	err := scanAccess(s.db.Pool.QueryRow(ctx, `
		UPDATE workspace_access
		SET access_level = $1, version = version + 1, updated_at = NOW()
		WHERE workspace_id = $2 AND user_id = $3
		RETURNING `+accessColumns,
		level, workspaceID, userID), &access)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("User access not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update access level: %w", err)
	}
	return &access, nil
}

// GrantAccess creates or reactivates a grant at the given level. Used by
// the operator CLI, where an existing grant is not an error.
func (s *WorkspaceService) GrantAccess(ctx context.Context, workspaceID, userID uuid.UUID, level models.AccessLevel) (*models.WorkspaceAccess, error) {
	var access models.WorkspaceAccess
	err := s.db.InTx(ctx, func(tx pgx.Tx) error {
		if err := requireWorkspace(ctx, tx, workspaceID); err != nil {
			return err
		}
		err := scanAccess(tx.QueryRow(ctx, `
			INSERT INTO workspace_access (workspace_id, user_id, access_level)
			VALUES ($1, $2, $3)
			ON CONFLICT (workspace_id, user_id) DO UPDATE
			SET access_level = EXCLUDED.access_level, is_active = TRUE,
				version = workspace_access.version + 1, updated_at = NOW()
			RETURNING `+accessColumns,
			workspaceID, userID, level), &access)
		if err != nil {
			return fmt.Errorf("failed to grant workspace access: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &access, nil
}

func (s *WorkspaceService) GetWorkspaceUsers(ctx context.Context, workspaceID uuid.UUID) ([]models.WorkspaceAccess, error) {
	if err := requireWorkspace(ctx, s.db.Pool, workspaceID); err != nil {
		return nil, err
	}

	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+accessColumns+`
		FROM workspace_access
		WHERE workspace_id = $1 AND is_active
		ORDER BY created_at
	`, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspace users: %w", err)
	}
	return collect(rows, scanAccess)
}

// HasUserAccess reports whether userID owns the workspace or holds an
// active grant on it.
func (s *WorkspaceService) HasUserAccess(ctx context.Context, workspaceID, userID uuid.UUID) (bool, error) {
	level, err := s.accessLevel(ctx, workspaceID, userID)
	return level != "", err
}

// CanWrite reports whether userID owns the workspace or holds WRITE or ADMIN.
func (s *WorkspaceService) CanWrite(ctx context.Context, workspaceID, userID uuid.UUID) (bool, error) {
	level, err := s.accessLevel(ctx, workspaceID, userID)
	return level.AtLeast(models.AccessWrite), err
}

// CanAdminister reports whether userID owns the workspace or holds ADMIN.
func (s *WorkspaceService) CanAdminister(ctx context.Context, workspaceID, userID uuid.UUID) (bool, error) {
	level, err := s.accessLevel(ctx, workspaceID, userID)
	return level.AtLeast(models.AccessAdmin), err
}

// accessLevel returns ADMIN for the owner, the active grant level otherwise,
// or "" for no access.
func (s *WorkspaceService) accessLevel(ctx context.Context, workspaceID, userID uuid.UUID) (models.AccessLevel, error) {
	var ownerID uuid.UUID
	var level *models.AccessLevel
	err := s.db.Pool.QueryRow(ctx, `
		SELECT w.owner_user_id,
		       (SELECT wa.access_level FROM workspace_access wa
		        WHERE wa.workspace_id = w.id AND wa.user_id = $2 AND wa.is_active)
		FROM workspaces w
		WHERE w.id = $1 AND w.deleted_at IS NULL
	`, workspaceID, userID).Scan(&ownerID, &level)
	if err != nil {
		return "", notFoundOr(err, "Workspace", workspaceID)
	}
	if ownerID == userID {
		return models.AccessAdmin, nil
	}
	if level == nil {
		return "", nil
	}
	return *level, nil
}

func (s *WorkspaceService) AssignmentCount(ctx context.Context, workspaceID uuid.UUID) (int, error) {
	if err := requireWorkspace(ctx, s.db.Pool, workspaceID); err != nil {
		return 0, err
	}
	var count int
	err := s.db.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM assignments WHERE workspace_id = $1 AND deleted_at IS NULL
	`, workspaceID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count assignments: %w", err)
	}
	return count, nil
}
