package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/dimitrije/workspace-api/internal/apperr"
	"github.com/dimitrije/workspace-api/internal/middleware"
	"github.com/dimitrije/workspace-api/internal/models"
	"github.com/dimitrije/workspace-api/internal/respond"
	"github.com/dimitrije/workspace-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"go.uber.org/zap"
)

var errInvalidStatus = apperr.Validation("Status must be one of BACKLOG, ONGOING, COMPLETED, CANCELLED")

type TaskHandler struct {
	taskService TaskServiceInterface
	pager       Pager
	guard
	recorder
}

func NewTaskHandler(taskService TaskServiceInterface, workspaceService WorkspaceServiceInterface, activity ActivityServiceInterface, pager Pager, log *zap.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		pager:       pager,
		guard:       guard{workspaces: workspaceService},
		recorder:    recorder{activity: activity, log: nopIfNil(log)},
	}
}

func (h *TaskHandler) writable(c *drift.Context) (uuid.UUID, uuid.UUID, bool) {
	taskID, ok := pathID(c, "taskId", "task")
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	workspaceID, err := h.taskService.WorkspaceOf(c.Request.Context(), taskID)
	if err != nil {
		respond.Error(c, err)
		return uuid.Nil, uuid.Nil, false
	}
	if !h.requireWrite(c, workspaceID) {
		return uuid.Nil, uuid.Nil, false
	}
	return taskID, workspaceID, true
}

func (h *TaskHandler) Create(c *drift.Context) {
	var req dto.CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := req.ToInput(middleware.GetUserID(c))
	if err != nil {
		respond.Error(c, err)
		return
	}
	if !h.requireWrite(c, in.WorkspaceID) {
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), in)
	if err != nil {
		respond.Error(c, err)
		return
	}

	h.record(c, task.WorkspaceID, models.EntityTask, task.ID, models.ActionCreated, map[string]string{"title": task.Title})
	respond.OK(c, http.StatusCreated, "Task created successfully", task)
}

func (h *TaskHandler) Get(c *drift.Context) {
	taskID, ok := pathID(c, "taskId", "task")
	if !ok {
		return
	}

	task, err := h.taskService.GetByID(c.Request.Context(), taskID)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, task)
}

// List pages through the caller's tasks: view=assigned (default) or
// view=created, or the tasks of one assignment when assignmentId is given.
func (h *TaskHandler) List(c *drift.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserID(c)
	page := h.pager.parse(c)

	var (
		tasks []models.Task
		total int64
		err   error
	)
	if raw := c.QueryParam("assignmentId"); raw != "" {
		assignmentID, perr := uuid.Parse(raw)
		if perr != nil {
			respond.Error(c, apperr.BadRequest("invalid assignment id"))
			return
		}
		tasks, total, err = h.taskService.ListByAssignment(ctx, assignmentID, page)
	} else {
		switch strings.ToLower(c.QueryParam("view")) {
		case "", "assigned":
			tasks, total, err = h.taskService.ListByAssignee(ctx, userID, page)
		case "created":
			tasks, total, err = h.taskService.ListByReporter(ctx, userID, page)
		default:
			respond.Error(c, apperr.Validation("View must be one of assigned, created"))
			return
		}
	}
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, newPage(tasks, total, page))
}

// ListByWorkspace pages through the workspace's tasks, optionally only
// those with a status or only the overdue ones.
func (h *TaskHandler) ListByWorkspace(c *drift.Context) {
	workspaceID, ok := pathID(c, "workspaceId", "workspace")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	page := h.pager.parse(c)

	var (
		tasks []models.Task
		total int64
		err   error
	)
	switch {
	case c.QueryParam("overdue") == "true":
		tasks, total, err = h.taskService.ListOverdue(ctx, workspaceID, page)
	case c.QueryParam("status") != "":
		status, ok := models.ParseTaskStatus(c.QueryParam("status"))
		if !ok {
			respond.Error(c, errInvalidStatus)
			return
		}
		tasks, total, err = h.taskService.ListByStatus(ctx, workspaceID, status, page)
	default:
		tasks, total, err = h.taskService.ListByWorkspace(ctx, workspaceID, page)
	}
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, newPage(tasks, total, page))
}

func (h *TaskHandler) Update(c *drift.Context) {
	taskID, workspaceID, ok := h.writable(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if !bindJSON(c, &req) {
		return
	}
	patch, err := req.ToPatch()
	if err != nil {
		respond.Error(c, err)
		return
	}

	task, err := h.taskService.Update(c.Request.Context(), taskID, patch)
	if err != nil {
		respond.Error(c, err)
		return
	}

	h.record(c, workspaceID, models.EntityTask, taskID, models.ActionUpdated, nil)
	respond.OK(c, http.StatusOK, "Task updated successfully", task)
}

func (h *TaskHandler) UpdateStatus(c *drift.Context) {
	taskID, workspaceID, ok := h.writable(c)
	if !ok {
		return
	}
	status, ok := models.ParseTaskStatus(c.QueryParam("status"))
	if !ok {
		respond.Error(c, errInvalidStatus)
		return
	}

	task, err := h.taskService.UpdateStatus(c.Request.Context(), taskID, status)
	if err != nil {
		respond.Error(c, err)
		return
	}

	h.record(c, workspaceID, models.EntityTask, taskID, models.ActionStatusChanged, map[string]string{"status": string(status)})
	respond.OK(c, http.StatusOK, "Task status updated successfully", task)
}

func (h *TaskHandler) Assign(c *drift.Context) {
	taskID, workspaceID, ok := h.writable(c)
	if !ok {
		return
	}
	assigneeID, err := uuid.Parse(c.QueryParam("assigneeId"))
	if err != nil {
		respond.Error(c, apperr.BadRequest("invalid assignee id"))
		return
	}

	task, err := h.taskService.AssignTask(c.Request.Context(), taskID, assigneeID)
	if err != nil {
		respond.Error(c, err)
		return
	}

	h.record(c, workspaceID, models.EntityTask, taskID, models.ActionAssigned, map[string]string{"assigneeId": assigneeID.String()})
	respond.OK(c, http.StatusOK, "Task assigned successfully", task)
}

// AddTimeSpent accepts the hours as a JSON body or an hours query parameter.
func (h *TaskHandler) AddTimeSpent(c *drift.Context) {
	taskID, workspaceID, ok := h.writable(c)
	if !ok {
		return
	}

	var req dto.TimeSpentRequest
	if raw := c.QueryParam("hours"); raw != "" {
		hours, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respond.Error(c, apperr.BadRequest("invalid hours"))
			return
		}
		req.Hours = hours
	} else if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.AddTimeSpent(c.Request.Context(), taskID, req.Hours)
	if err != nil {
		respond.Error(c, err)
		return
	}

	h.record(c, workspaceID, models.EntityTask, taskID, models.ActionTimeLogged, map[string]float64{"hours": req.Hours})
	respond.OK(c, http.StatusOK, "Time spent added successfully", task)
}

func (h *TaskHandler) Delete(c *drift.Context) {
	taskID, workspaceID, ok := h.writable(c)
	if !ok {
		return
	}

	if err := h.taskService.Delete(c.Request.Context(), taskID); err != nil {
		respond.Error(c, err)
		return
	}

	h.record(c, workspaceID, models.EntityTask, taskID, models.ActionDeleted, nil)
	respond.OK(c, http.StatusOK, "Task deleted successfully", nil)
}
