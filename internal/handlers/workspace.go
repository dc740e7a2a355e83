package handlers

import (
	"net/http"
	"strings"

	"github.com/dimitrije/workspace-api/internal/apperr"
	"github.com/dimitrije/workspace-api/internal/middleware"
	"github.com/dimitrije/workspace-api/internal/models"
	"github.com/dimitrije/workspace-api/internal/respond"
	"github.com/dimitrije/workspace-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
	"go.uber.org/zap"
)

type WorkspaceHandler struct {
	workspaceService WorkspaceServiceInterface
	guard
	recorder
}

func NewWorkspaceHandler(workspaceService WorkspaceServiceInterface, activity ActivityServiceInterface, log *zap.Logger) *WorkspaceHandler {
	return &WorkspaceHandler{
		workspaceService: workspaceService,
		guard:            guard{workspaces: workspaceService},
		recorder:         recorder{activity: activity, log: nopIfNil(log)},
	}
}

func (h *WorkspaceHandler) Create(c *drift.Context) {
	var req dto.CreateWorkspaceRequest
	if !bindJSON(c, &req) {
		return
	}

	in, err := req.ToInput(middleware.GetUserID(c))
	if err != nil {
		respond.Error(c, err)
		return
	}

	workspace, err := h.workspaceService.Create(c.Request.Context(), in)
	if err != nil {
		respond.Error(c, err)
		return
	}

	h.record(c, workspace.ID, models.EntityWorkspace, workspace.ID, models.ActionCreated, map[string]string{"name": workspace.Name})
	respond.OK(c, http.StatusCreated, "Workspace created successfully", workspace)
}

func (h *WorkspaceHandler) Get(c *drift.Context) {
	workspaceID, ok := pathID(c, "workspaceId", "workspace")
	if !ok {
		return
	}

	workspace, err := h.workspaceService.GetByID(c.Request.Context(), workspaceID)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, workspace)
}

// List serves the workspace listings. name searches, visibility filters and
// view selects owned, shared or accessible (the default).
func (h *WorkspaceHandler) List(c *drift.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserID(c)

	var (
		workspaces []models.Workspace
		err        error
	)
	switch {
	case c.QueryParam("name") != "":
		workspaces, err = h.workspaceService.SearchByName(ctx, c.QueryParam("name"))
	case c.QueryParam("visibility") != "":
		visibility, ok := models.ParseVisibility(c.QueryParam("visibility"))
		if !ok {
			respond.Error(c, apperr.Validation("Visibility must be one of PUBLIC, PRIVATE, ORGANIZATION_ONLY"))
			return
		}
		workspaces, err = h.workspaceService.ListByVisibility(ctx, visibility)
	default:
		switch strings.ToLower(c.QueryParam("view")) {
		case "owned":
			workspaces, err = h.workspaceService.ListByOwner(ctx, userID)
		case "shared":
			workspaces, err = h.workspaceService.ListShared(ctx, userID)
		case "", "accessible":
			workspaces, err = h.workspaceService.ListAccessible(ctx, userID)
		default:
			respond.Error(c, apperr.Validation("View must be one of owned, shared, accessible"))
			return
		}
	}
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, workspaces)
}

func (h *WorkspaceHandler) Update(c *drift.Context) {
	workspaceID, ok := pathID(c, "workspaceId", "workspace")
	if !ok {
		return
	}
	if !h.requireAdmin(c, workspaceID) {
		return
	}

	var req dto.UpdateWorkspaceRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := req.ToInput()
	if err != nil {
		respond.Error(c, err)
		return
	}

	workspace, err := h.workspaceService.Update(c.Request.Context(), workspaceID, in, req.Version)
	if err != nil {
		respond.Error(c, err)
		return
	}

	h.record(c, workspaceID, models.EntityWorkspace, workspaceID, models.ActionUpdated, nil)
	respond.OK(c, http.StatusOK, "Workspace updated successfully", workspace)
}

func (h *WorkspaceHandler) Delete(c *drift.Context) {
	workspaceID, ok := pathID(c, "workspaceId", "workspace")
	if !ok {
		return
	}
	if !h.requireAdmin(c, workspaceID) {
		return
	}

	if err := h.workspaceService.Delete(c.Request.Context(), workspaceID); err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, http.StatusOK, "Workspace deleted successfully", nil)
}

func (h *WorkspaceHandler) ListUsers(c *drift.Context) {
	workspaceID, ok := pathID(c, "workspaceId", "workspace")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	workspace, err := h.workspaceService.GetByID(ctx, workspaceID)
	if err != nil {
		respond.Error(c, err)
		return
	}
	users, err := h.workspaceService.GetWorkspaceUsers(ctx, workspaceID)
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.JSON(c, http.StatusOK, dto.WorkspaceUsersResponse{
		WorkspaceID: workspaceID,
		OwnerUserID: workspace.OwnerUserID,
		Users:       users,
	})
}

func (h *WorkspaceHandler) AddUser(c *drift.Context) {
	workspaceID, ok := pathID(c, "workspaceId", "workspace")
	if !ok {
		return
	}
	if !h.requireAdmin(c, workspaceID) {
		return
	}

	var req dto.WorkspaceAccessRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, level, err := req.Parse()
	if err != nil {
		respond.Error(c, err)
		return
	}

	access, err := h.workspaceService.AddUser(c.Request.Context(), workspaceID, userID, level)
	if err != nil {
		respond.Error(c, err)
		return
	}

	h.record(c, workspaceID, models.EntityWorkspace, workspaceID, models.ActionAccessGranted,
		map[string]string{"userId": userID.String(), "accessLevel": string(level)})
	respond.OK(c, http.StatusCreated, "User added to workspace successfully", access)
}

func (h *WorkspaceHandler) UpdateUserAccess(c *drift.Context) {
	workspaceID, ok := pathID(c, "workspaceId", "workspace")
	if !ok {
		return
	}
	userID, ok := pathID(c, "userId", "user")
	if !ok {
		return
	}
	if !h.requireAdmin(c, workspaceID) {
		return
	}

	var req dto.WorkspaceAccessRequest
	if !bindJSON(c, &req) {
		return
	}
	req.UserID = userID
	_, level, err := req.Parse()
	if err != nil {
		respond.Error(c, err)
		return
	}

	access, err := h.workspaceService.UpdateAccessLevel(c.Request.Context(), workspaceID, userID, level)
	if err != nil {
		respond.Error(c, err)
		return
	}

	h.record(c, workspaceID, models.EntityWorkspace, workspaceID, models.ActionAccessChanged,
		map[string]string{"userId": userID.String(), "accessLevel": string(level)})
	respond.OK(c, http.StatusOK, "User access updated successfully", access)
}

func (h *WorkspaceHandler) RemoveUser(c *drift.Context) {
	workspaceID, ok := pathID(c, "workspaceId", "workspace")
	if !ok {
		return
	}
	userID, ok := pathID(c, "userId", "user")
	if !ok {
		return
	}
	if !h.requireAdmin(c, workspaceID) {
		return
	}

	if err := h.workspaceService.RemoveUser(c.Request.Context(), workspaceID, userID); err != nil {
		respond.Error(c, err)
		return
	}

	h.record(c, workspaceID, models.EntityWorkspace, workspaceID, models.ActionAccessRevoked,
		map[string]string{"userId": userID.String()})
	respond.OK(c, http.StatusOK, "User removed from workspace successfully", nil)
}

func (h *WorkspaceHandler) CheckAccess(c *drift.Context) {
	workspaceID, ok := pathID(c, "workspaceId", "workspace")
	if !ok {
		return
	}
	userID, ok := pathID(c, "userId", "user")
	if !ok {
		return
	}

	hasAccess, err := h.workspaceService.HasUserAccess(c.Request.Context(), workspaceID, userID)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, dto.AccessCheckResponse{WorkspaceID: workspaceID, UserID: userID, HasAccess: hasAccess})
}

func (h *WorkspaceHandler) AssignmentCount(c *drift.Context) {
	workspaceID, ok := pathID(c, "workspaceId", "workspace")
	if !ok {
		return
	}

	count, err := h.workspaceService.AssignmentCount(c.Request.Context(), workspaceID)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, dto.CountResponse{Count: count})
}
