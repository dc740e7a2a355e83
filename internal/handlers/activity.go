package handlers

import (
	"net/http"

	"github.com/dimitrije/workspace-api/internal/respond"
	"github.com/m1z23r/drift/pkg/drift"
)

type ActivityHandler struct {
	activityService ActivityServiceInterface
	pager           Pager
	guard
}

func NewActivityHandler(activityService ActivityServiceInterface, workspaceService WorkspaceServiceInterface, pager Pager) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
		pager:           pager,
		guard:           guard{workspaces: workspaceService},
	}
}

// List pages through the workspace's activity. Only users with access to
// the workspace may read it.
func (h *ActivityHandler) List(c *drift.Context) {
	workspaceID, ok := pathID(c, "workspaceId", "workspace")
	if !ok {
		return
	}
	if !h.requireAccess(c, workspaceID) {
		return
	}

	page := h.pager.parse(c)
	items, total, err := h.activityService.ListByWorkspace(c.Request.Context(), workspaceID, page)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, newPage(items, total, page))
}
