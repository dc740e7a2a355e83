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

type AssignmentHandler struct {
	assignmentService AssignmentServiceInterface
	pager             Pager
	guard
	recorder
}

func NewAssignmentHandler(assignmentService AssignmentServiceInterface, workspaceService WorkspaceServiceInterface, activity ActivityServiceInterface, pager Pager, log *zap.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentService: assignmentService,
		pager:             pager,
		guard:             guard{workspaces: workspaceService},
		recorder:          recorder{activity: activity, log: nopIfNil(log)},
	}
}

// writable resolves the assignment's workspace and checks the caller may
// change it.
func (h *AssignmentHandler) writable(c *drift.Context) (uuid.UUID, uuid.UUID, bool) {
	assignmentID, ok := pathID(c, "assignmentId", "assignment")
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	workspaceID, err := h.assignmentService.WorkspaceOf(c.Request.Context(), assignmentID)
	if err != nil {
		respond.Error(c, err)
		return uuid.Nil, uuid.Nil, false
	}
	if !h.requireWrite(c, workspaceID) {
		return uuid.Nil, uuid.Nil, false
	}
	return assignmentID, workspaceID, true
}

func (h *AssignmentHandler) Create(c *drift.Context) {
	var req dto.CreateAssignmentRequest
	if !bindJSON(c, &req) {
		return
	}

	userID := middleware.GetUserID(c)
	in, err := req.ToInput(userID)
	if err != nil {
		respond.Error(c, err)
		return
	}
	if !h.requireWrite(c, in.WorkspaceID) {
		return
	}

	assignment, err := h.assignmentService.Create(c.Request.Context(), in, userID)
	if err != nil {
		respond.Error(c, err)
		return
	}

	h.record(c, assignment.WorkspaceID, models.EntityAssignment, assignment.ID, models.ActionCreated,
		map[string]any{"title": assignment.Title, "tasks": assignment.Stats.TotalTasks})
	respond.OK(c, http.StatusCreated, "Assignment created successfully", assignment)
}

func (h *AssignmentHandler) Get(c *drift.Context) {
	assignmentID, ok := pathID(c, "assignmentId", "assignment")
	if !ok {
		return
	}

	assignment, err := h.assignmentService.GetByID(c.Request.Context(), assignmentID)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, assignment)
}

// List pages through the assignments of every workspace the caller can use.
func (h *AssignmentHandler) List(c *drift.Context) {
	page := h.pager.parse(c)
	items, total, err := h.assignmentService.List(c.Request.Context(), middleware.GetUserID(c), page)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, newPage(items, total, page))
}

func (h *AssignmentHandler) ListByWorkspace(c *drift.Context) {
	workspaceID, ok := pathID(c, "workspaceId", "workspace")
	if !ok {
		return
	}

	page := h.pager.parse(c)
	items, total, err := h.assignmentService.ListByWorkspace(c.Request.Context(), workspaceID, page)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, newPage(items, total, page))
}

func (h *AssignmentHandler) ListOverdue(c *drift.Context) {
	workspaceID, ok := pathID(c, "workspaceId", "workspace")
	if !ok {
		return
	}

	items, err := h.assignmentService.ListOverdue(c.Request.Context(), workspaceID)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, items)
}

func (h *AssignmentHandler) Update(c *drift.Context) {
	assignmentID, workspaceID, ok := h.writable(c)
	if !ok {
		return
	}

	var req dto.UpdateAssignmentRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := req.ToInput()
	if err != nil {
		respond.Error(c, err)
		return
	}

	assignment, err := h.assignmentService.Update(c.Request.Context(), assignmentID, in, req.Version, middleware.GetUserID(c))
	if err != nil {
		respond.Error(c, err)
		return
	}

	h.record(c, workspaceID, models.EntityAssignment, assignmentID, models.ActionUpdated, nil)
	respond.OK(c, http.StatusOK, "Assignment updated successfully", assignment)
}

func (h *AssignmentHandler) Delete(c *drift.Context) {
	assignmentID, workspaceID, ok := h.writable(c)
	if !ok {
		return
	}

	if err := h.assignmentService.Delete(c.Request.Context(), assignmentID); err != nil {
		respond.Error(c, err)
		return
	}

	h.record(c, workspaceID, models.EntityAssignment, assignmentID, models.ActionDeleted, nil)
	respond.OK(c, http.StatusOK, "Assignment deleted successfully", nil)
}

func (h *AssignmentHandler) ListTasks(c *drift.Context) {
	assignmentID, ok := pathID(c, "assignmentId", "assignment")
	if !ok {
		return
	}

	tasks, err := h.assignmentService.ListTasks(c.Request.Context(), assignmentID)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, tasks)
}

func (h *AssignmentHandler) AddTasks(c *drift.Context) {
	assignmentID, workspaceID, ok := h.writable(c)
	if !ok {
		return
	}

	var req dto.AssignmentTasksRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		respond.Error(c, err)
		return
	}

	assignment, err := h.assignmentService.AddTasks(c.Request.Context(), assignmentID, req.TaskIDs)
	if err != nil {
		respond.Error(c, err)
		return
	}

	h.record(c, workspaceID, models.EntityAssignment, assignmentID, models.ActionTasksAttached, map[string]any{"taskIds": req.TaskIDs})
	respond.OK(c, http.StatusOK, "Tasks added to assignment successfully", assignment)
}

// RemoveTasks detaches the tasks named by the taskIds query parameter.
func (h *AssignmentHandler) RemoveTasks(c *drift.Context) {
	assignmentID, workspaceID, ok := h.writable(c)
	if !ok {
		return
	}
	taskIDs, ok := queryIDs(c, "taskIds", "task")
	if !ok {
		return
	}

	assignment, err := h.assignmentService.RemoveTasks(c.Request.Context(), assignmentID, taskIDs)
	if err != nil {
		respond.Error(c, err)
		return
	}

	h.record(c, workspaceID, models.EntityAssignment, assignmentID, models.ActionTasksDetached, map[string]any{"taskIds": taskIDs})
	respond.OK(c, http.StatusOK, "Tasks removed from assignment successfully", assignment)
}

func (h *AssignmentHandler) AssignUsers(c *drift.Context) {
	assignmentID, workspaceID, ok := h.writable(c)
	if !ok {
		return
	}
	userIDs, ok := queryIDs(c, "userIds", "user")
	if !ok {
		return
	}

	count, err := h.assignmentService.AssignUsersToAllTasks(c.Request.Context(), assignmentID, userIDs, middleware.GetUserID(c))
	if err != nil {
		respond.Error(c, err)
		return
	}

	h.record(c, workspaceID, models.EntityAssignment, assignmentID, models.ActionAssigned,
		map[string]any{"userIds": userIDs, "count": count})
	respond.OK(c, http.StatusOK, "Users assigned to all tasks successfully", dto.CountResponse{Count: count})
}

func (h *AssignmentHandler) UnassignUsers(c *drift.Context) {
	assignmentID, workspaceID, ok := h.writable(c)
	if !ok {
		return
	}
	userIDs, ok := queryIDs(c, "userIds", "user")
	if !ok {
		return
	}

	removed, err := h.assignmentService.UnassignUsersFromAllTasks(c.Request.Context(), assignmentID, userIDs)
	if err != nil {
		respond.Error(c, err)
		return
	}

	h.record(c, workspaceID, models.EntityAssignment, assignmentID, models.ActionUnassigned,
		map[string]any{"userIds": userIDs, "count": removed})
	respond.OK(c, http.StatusOK, "Users unassigned from all tasks successfully", dto.CountResponse{Count: int(removed)})
}
