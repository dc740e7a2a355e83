package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dimitrije/workspace-api/internal/database"
	"github.com/dimitrije/workspace-api/internal/models"
	"github.com/dimitrije/workspace-api/internal/paging"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const activityColumns = `id, workspace_id, user_id, entity_type, entity_id, action_key, details, created_at`

func scanActivity(row pgx.Row, a *models.ActivityLog) error {
	return row.Scan(&a.ID, &a.WorkspaceID, &a.UserID, &a.EntityType, &a.EntityID, &a.ActionKey, &a.Details, &a.CreatedAt)
}

// ActivityService keeps the workspace audit trail. Every entry is also
// written to the log.
type ActivityService struct {
	db  *database.DB
	log *zap.Logger
}

func NewActivityService(db *database.DB, log *zap.Logger) *ActivityService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ActivityService{db: db, log: log.Named("activity")}
}

func (s *ActivityService) Record(ctx context.Context, workspaceID, userID uuid.UUID, entityType string, entityID uuid.UUID, action string, details any) error {
	raw := json.RawMessage(`{}`)
	if details != nil {
		b, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("failed to encode activity details: %w", err)
		}
		raw = b
	}

	s.log.Info("workspace activity",
		zap.String("workspace_id", workspaceID.String()),
		zap.String("user_id", userID.String()),
		zap.String("entity_type", entityType),
		zap.String("entity_id", entityID.String()),
		zap.String("action", action),
	)

	_, err := s.db.Pool.Exec(ctx, `
		INSERT INTO activity_logs (workspace_id, user_id, entity_type, entity_id, action_key, details)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, workspaceID, userID, entityType, entityID, action, raw)
	if err != nil {
		return fmt.Errorf("failed to record activity: %w", err)
	}
	return nil
}

// ListByWorkspace pages through the workspace's entries, newest first.
func (s *ActivityService) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID, page paging.Request) ([]models.ActivityLog, int64, error) {
	if err := requireWorkspace(ctx, s.db.Pool, workspaceID); err != nil {
		return nil, 0, err
	}

	var total int64
	err := s.db.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM activity_logs WHERE workspace_id = $1 AND deleted_at IS NULL
	`, workspaceID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count activity: %w", err)
	}

	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+activityColumns+`
		FROM activity_logs
		WHERE workspace_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, workspaceID, page.Size, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list activity: %w", err)
	}
	items, err := collect(rows, scanActivity)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
