package handlers

import (
	"net/http"

	"github.com/dimitrije/workspace-api/internal/middleware"
	"github.com/dimitrije/workspace-api/internal/models"
	"github.com/dimitrije/workspace-api/internal/respond"
	"github.com/dimitrije/workspace-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"go.uber.org/zap"
)

type TaskAssignmentHandler struct {
	taskAssignmentService TaskAssignmentServiceInterface
	taskService           TaskServiceInterface
	guard
	recorder
}

func NewTaskAssignmentHandler(taskAssignmentService TaskAssignmentServiceInterface, taskService TaskServiceInterface, workspaceService WorkspaceServiceInterface, activity ActivityServiceInterface, log *zap.Logger) *TaskAssignmentHandler {
	return &TaskAssignmentHandler{
		taskAssignmentService: taskAssignmentService,
		taskService:           taskService,
		guard:                 guard{workspaces: workspaceService},
		recorder:              recorder{activity: activity, log: nopIfNil(log)},
	}
}

func (h *TaskAssignmentHandler) taskWorkspace(c *drift.Context, taskID uuid.UUID) (uuid.UUID, bool) {
	workspaceID, err := h.taskService.WorkspaceOf(c.Request.Context(), taskID)
	if err != nil {
		respond.Error(c, err)
		return uuid.Nil, false
	}
	return workspaceID, true
}

func (h *TaskAssignmentHandler) Assign(c *drift.Context) {
	taskID, ok := pathID(c, "taskId", "task")
	if !ok {
		return
	}
	workspaceID, ok := h.taskWorkspace(c, taskID)
	if !ok || !h.requireWrite(c, workspaceID) {
		return
	}

	var req dto.AssignUsersRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		respond.Error(c, err)
		return
	}

	created, err := h.taskAssignmentService.AssignUsers(c.Request.Context(), taskID, req.UserIDs, middleware.GetUserID(c))
	if err != nil {
		respond.Error(c, err)
		return
	}

	if len(created) > 0 {
		ids := make([]uuid.UUID, len(created))
		for i, ta := range created {
			ids[i] = ta.AssignedUserID
		}
		h.record(c, workspaceID, models.EntityTaskAssignment, taskID, models.ActionAssigned, map[string]any{"userIds": ids})
	}
	respond.OK(c, http.StatusOK, "Users assigned to task successfully",
		dto.AssignUsersResponse{Count: len(created), Assignments: created})
}

func (h *TaskAssignmentHandler) Unassign(c *drift.Context) {
	taskID, ok := pathID(c, "taskId", "task")
	if !ok {
		return
	}
	userIDs, ok := queryIDs(c, "userIds", "user")
	if !ok {
		return
	}
	workspaceID, ok := h.taskWorkspace(c, taskID)
	if !ok || !h.requireWrite(c, workspaceID) {
		return
	}

	if err := h.taskAssignmentService.UnassignUsers(c.Request.Context(), taskID, userIDs); err != nil {
		respond.Error(c, err)
		return
	}

	h.record(c, workspaceID, models.EntityTaskAssignment, taskID, models.ActionUnassigned, map[string]any{"userIds": userIDs})
	respond.OK(c, http.StatusOK, "Users unassigned from task successfully", nil)
}

func (h *TaskAssignmentHandler) ListByTask(c *drift.Context) {
	taskID, ok := pathID(c, "taskId", "task")
	if !ok {
		return
	}

	items, err := h.taskAssignmentService.ListByTask(c.Request.Context(), taskID)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, items)
}

// Update applies a progress update. Users update their own assignment;
// updating someone else's needs admin rights on the task's workspace.
func (h *TaskAssignmentHandler) Update(c *drift.Context) {
	var req dto.UpdateTaskAssignmentRequest
	if !bindJSON(c, &req) {
		return
	}
	callerID := middleware.GetUserID(c)
	patch, err := req.ToPatch(callerID)
	if err != nil {
		respond.Error(c, err)
		return
	}

	workspaceID, ok := h.taskWorkspace(c, patch.TaskID)
	if !ok {
		return
	}
	if patch.UserID != callerID && !h.requireAdmin(c, workspaceID) {
		return
	}

	ta, err := h.taskAssignmentService.Update(c.Request.Context(), patch)
	if err != nil {
		respond.Error(c, err)
		return
	}

	h.record(c, workspaceID, models.EntityTaskAssignment, ta.ID, models.ActionProgressUpdated,
		map[string]any{"userId": ta.AssignedUserID, "status": ta.Status})
	respond.OK(c, http.StatusOK, "Task assignment updated successfully", ta)
}

func (h *TaskAssignmentHandler) ListMine(c *drift.Context) {
	var status *models.TaskStatus
	if raw := c.QueryParam("status"); raw != "" {
		s, ok := models.ParseTaskStatus(raw)
		if !ok {
			respond.Error(c, errInvalidStatus)
			return
		}
		status = &s
	}

	items, err := h.taskAssignmentService.ListByUser(c.Request.Context(), middleware.GetUserID(c), status)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, items)
}

func (h *TaskAssignmentHandler) ListOverdue(c *drift.Context) {
	items, err := h.taskAssignmentService.ListOverdue(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, items)
}
