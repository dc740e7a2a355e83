package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dimitrije/workspace-api/internal/apperr"
	"github.com/dimitrije/workspace-api/internal/database"
	"github.com/dimitrije/workspace-api/internal/models"
	"github.com/dimitrije/workspace-api/internal/sanitize"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrNotCommentAuthor = apperr.Unauthorized("Only the author can modify this comment")

const commentColumns = `id, task_id, user_id, body, attachments, created_at, updated_at, version`

func scanComment(row pgx.Row, c *models.Comment) error {
	return row.Scan(&c.ID, &c.TaskID, &c.UserID, &c.Body, &c.Attachments, &c.CreatedAt, &c.UpdatedAt, &c.Version)
}

func attachmentsOrEmpty(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage(`[]`)
	}
	return raw
}

type CommentService struct {
	db *database.DB
}

func NewCommentService(db *database.DB) *CommentService {
	return &CommentService{db: db}
}

// Create stores a sanitized comment on a live task.
func (s *CommentService) Create(ctx context.Context, taskID, userID uuid.UUID, body string, attachments json.RawMessage) (*models.Comment, error) {
	if err := requireTask(ctx, s.db.Pool, taskID); err != nil {
		return nil, err
	}

	clean := sanitize.Sanitize(body)
	if clean == "" {
		return nil, apperr.Validation("Comment body is required")
	}

	var c models.Comment
	err := scanComment(s.db.Pool.QueryRow(ctx, `
		INSERT INTO comments (task_id, user_id, body, attachments)
		VALUES ($1, $2, $3, $4)
		RETURNING `+commentColumns,
		taskID, userID, clean, attachmentsOrEmpty(attachments)), &c)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return &c, nil
}

func (s *CommentService) ListByTask(ctx context.Context, taskID uuid.UUID) ([]models.Comment, error) {
	if err := requireTask(ctx, s.db.Pool, taskID); err != nil {
		return nil, err
	}

	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+commentColumns+`
		FROM comments
		WHERE task_id = $1 AND deleted_at IS NULL
		ORDER BY created_at
	`, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return collect(rows, scanComment)
}

func (s *CommentService) authorOf(ctx context.Context, taskID, commentID uuid.UUID) (uuid.UUID, error) {
	var authorID uuid.UUID
	err := s.db.Pool.QueryRow(ctx, `
		SELECT user_id FROM comments WHERE id = $1 AND task_id = $2 AND deleted_at IS NULL
	`, commentID, taskID).Scan(&authorID)
	if err != nil {
		return uuid.Nil, notFoundOr(err, "Comment", commentID)
	}
	return authorID, nil
}

// Update replaces the body and attachments. Only the author may edit.
func (s *CommentService) Update(ctx context.Context, taskID, commentID, userID uuid.UUID, body string, attachments json.RawMessage, version *int) (*models.Comment, error) {
	authorID, err := s.authorOf(ctx, taskID, commentID)
	if err != nil {
		return nil, err
	}
	if authorID != userID {
		return nil, ErrNotCommentAuthor
	}

	clean := sanitize.Sanitize(body)
	if clean == "" {
		return nil, apperr.Validation("Comment body is required")
	}

	var c models.Comment
	err = scanComment(s.db.Pool.QueryRow(ctx, `
		UPDATE comments
		SET body = $1, attachments = COALESCE($2, attachments), version = version + 1, updated_at = NOW()
		WHERE id = $3 AND deleted_at IS NULL AND ($4::int IS NULL OR version = $4)
		RETURNING `+commentColumns,
		clean, nullableJSON(attachments), commentID, version), &c)
	if err != nil {
		return nil, checkVersionConflict(ctx, s.db.Pool, "comments", "Comment", commentID, version, err)
	}
	return &c, nil
}

// Delete soft-deletes the comment. Only the author may delete.
func (s *CommentService) Delete(ctx context.Context, taskID, commentID, userID uuid.UUID) error {
	authorID, err := s.authorOf(ctx, taskID, commentID)
	if err != nil {
		return err
	}
	if authorID != userID {
		return ErrNotCommentAuthor
	}

	_, err = s.db.Pool.Exec(ctx, `
		UPDATE comments SET deleted_at = NOW(), version = version + 1
		WHERE id = $1 AND deleted_at IS NULL
	`, commentID)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

func nullableJSON(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return raw
}
