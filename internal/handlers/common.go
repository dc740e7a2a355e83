package handlers

import (
	"context"
	"strings"

	"github.com/dimitrije/workspace-api/internal/apperr"
	"github.com/dimitrije/workspace-api/internal/middleware"
	"github.com/dimitrije/workspace-api/internal/paging"
	"github.com/dimitrije/workspace-api/internal/respond"
	"github.com/dimitrije/workspace-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"go.uber.org/zap"
)

var errNoAccess = apperr.Unauthorized("You do not have access to this workspace")

// Pager carries the configured page size bounds.
type Pager struct {
	DefaultSize int
	MaxSize     int
}

func (p Pager) parse(c *drift.Context) paging.Request {
	return paging.Parse(c.QueryParam, p.DefaultSize, p.MaxSize)
}

func newPage[T any](items []T, total int64, req paging.Request) dto.Page[T] {
	if items == nil {
		items = []T{}
	}
	return dto.Page[T]{
		Content:       items,
		Page:          req.Page,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    paging.TotalPages(total, req.Size),
	}
}

func pathID(c *drift.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respond.Error(c, apperr.BadRequest("invalid %s id", label))
		return uuid.Nil, false
	}
	return id, true
}

func bindJSON(c *drift.Context, v any) bool {
	if err := c.BindJSON(v); err != nil {
		respond.Error(c, apperr.BadRequest("invalid request body"))
		return false
	}
	return true
}

// queryIDs reads ids given as repeated parameters (?userIds=a&userIds=b) or
// as one comma-separated value.
func queryIDs(c *drift.Context, key, label string) ([]uuid.UUID, bool) {
	var ids []uuid.UUID
	for _, raw := range c.Request.URL.Query()[key] {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := uuid.Parse(part)
			if err != nil {
				respond.Error(c, apperr.BadRequest("invalid %s id: %s", label, part))
				return nil, false
			}
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		respond.Error(c, apperr.Validation("At least one %s ID is required", label))
		return nil, false
	}
	return ids, true
}

// guard answers authorization questions about workspaces and writes the
// 401 itself when the answer is no.
type guard struct {
	workspaces WorkspaceServiceInterface
}

func (g guard) requireAccess(c *drift.Context, workspaceID uuid.UUID) bool {
	return g.check(c, workspaceID, g.workspaces.HasUserAccess)
}

// requireWrite gates mutations. READ grants only see the workspace.
func (g guard) requireWrite(c *drift.Context, workspaceID uuid.UUID) bool {
	return g.check(c, workspaceID, g.workspaces.CanWrite)
}

func (g guard) requireAdmin(c *drift.Context, workspaceID uuid.UUID) bool {
	return g.check(c, workspaceID, g.workspaces.CanAdminister)
}

func (g guard) check(c *drift.Context, workspaceID uuid.UUID, allowed func(context.Context, uuid.UUID, uuid.UUID) (bool, error)) bool {
	ok, err := allowed(c.Request.Context(), workspaceID, middleware.GetUserID(c))
	if err != nil {
		respond.Error(c, err)
		return false
	}
	if !ok {
		respond.Error(c, errNoAccess)
		return false
	}
	return true
}

// recorder writes activity entries. Failures are logged and never fail the
// request that already succeeded.
type recorder struct {
	activity ActivityServiceInterface
	log      *zap.Logger
}

func (r recorder) record(c *drift.Context, workspaceID uuid.UUID, entityType string, entityID uuid.UUID, action string, details any) {
	if r.activity == nil {
		return
	}
	err := r.activity.Record(c.Request.Context(), workspaceID, middleware.GetUserID(c), entityType, entityID, action, details)
	if err != nil {
		r.log.Warn("failed to record activity",
			zap.String("workspace_id", workspaceID.String()),
			zap.String("entity_type", entityType),
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

func nopIfNil(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
