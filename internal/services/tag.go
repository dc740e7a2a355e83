package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dimitrije/workspace-api/internal/apperr"
	"github.com/dimitrije/workspace-api/internal/database"
	"github.com/dimitrije/workspace-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const tagColumns = `
	tg.id, tg.workspace_id, tg.name, tg.color, tg.description,
	(SELECT COUNT(*) FROM task_tags tt2 JOIN tasks t2 ON t2.id = tt2.task_id
	 WHERE tt2.tag_id = tg.id AND t2.deleted_at IS NULL) AS task_count,
	tg.created_at, tg.updated_at, tg.version`

func tagDest(t *models.Tag) []any {
	return []any{&t.ID, &t.WorkspaceID, &t.Name, &t.Color, &t.Description, &t.TaskCount, &t.CreatedAt, &t.UpdatedAt, &t.Version}
}

func scanTag(row pgx.Row, t *models.Tag) error {
	return row.Scan(tagDest(t)...)
}

func duplicateTag(name string) error {
	return apperr.BadRequest("Tag with name '%s' already exists in this workspace", name)
}

type TagService struct {
	db *database.DB
}

func NewTagService(db *database.DB) *TagService {
	return &TagService{db: db}
}

func (s *TagService) Create(ctx context.Context, workspaceID uuid.UUID, name, color, description string) (*models.Tag, error) {
	if err := requireWorkspace(ctx, s.db.Pool, workspaceID); err != nil {
		return nil, err
	}

	var id uuid.UUID
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO tags (workspace_id, name, color, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, workspaceID, strings.TrimSpace(name), color, description).Scan(&id)
	if isUniqueViolation(err) {
		return nil, duplicateTag(name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}
	return s.get(ctx, workspaceID, id)
}

func (s *TagService) get(ctx context.Context, workspaceID, id uuid.UUID) (*models.Tag, error) {
	var tag models.Tag
	err := scanTag(s.db.Pool.QueryRow(ctx, `
		SELECT `+tagColumns+`
		FROM tags tg
		WHERE tg.id = $1 AND tg.workspace_id = $2 AND tg.deleted_at IS NULL
	`, id, workspaceID), &tag)
	if err != nil {
		return nil, notFoundOr(err, "Tag", id)
	}
	return &tag, nil
}

func (s *TagService) GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*models.Tag, error) {
	return s.get(ctx, workspaceID, id)
}

func (s *TagService) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]models.Tag, error) {
	if err := requireWorkspace(ctx, s.db.Pool, workspaceID); err != nil {
		return nil, err
	}

	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+tagColumns+`
		FROM tags tg
		WHERE tg.workspace_id = $1 AND tg.deleted_at IS NULL
		ORDER BY tg.name
	`, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return collect(rows, scanTag)
}

func (s *TagService) Update(ctx context.Context, workspaceID, id uuid.UUID, p models.TagPatch) (*models.Tag, error) {
	if p.Name == nil && p.Color == nil && p.Description == nil {
		return nil, ErrNoFieldsToUpdate
	}

	var updatedID uuid.UUID
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE tags
		SET name = COALESCE($1, name),
		    color = COALESCE($2, color),
		    description = COALESCE($3, description),
		    version = version + 1, updated_at = NOW()
		WHERE id = $4 AND workspace_id = $5 AND deleted_at IS NULL AND ($6::int IS NULL OR version = $6)
		RETURNING id
	`, p.Name, p.Color, p.Description, id, workspaceID, p.Version).Scan(&updatedID)
	if isUniqueViolation(err) {
		return nil, duplicateTag(*p.Name)
	}
	if err != nil {
		return nil, checkVersionConflict(ctx, s.db.Pool, "tags", "Tag", id, p.Version, err)
	}
	return s.get(ctx, workspaceID, id)
}

// Delete soft-deletes the tag. Links from tasks are dropped so task reads no
// longer show it.
func (s *TagService) Delete(ctx context.Context, workspaceID, id uuid.UUID) error {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	result, err := tx.Exec(ctx, `
		UPDATE tags SET deleted_at = NOW(), version = version + 1
		WHERE id = $1 AND workspace_id = $2 AND deleted_at IS NULL
	`, id, workspaceID)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Tag not found with id: %s", id)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM task_tags WHERE tag_id = $1`, id); err != nil {
		return fmt.Errorf("failed to unlink tag: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
