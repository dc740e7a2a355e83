package handlers

import (
	"net/http"
	"strings"

	"github.com/dimitrije/workspace-api/internal/models"
	"github.com/dimitrije/workspace-api/internal/respond"
	"github.com/dimitrije/workspace-api/internal/sanitize"
	"github.com/dimitrije/workspace-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
	"go.uber.org/zap"
)

type TagHandler struct {
	tagService TagServiceInterface
	guard
	recorder
}

func NewTagHandler(tagService TagServiceInterface, workspaceService WorkspaceServiceInterface, activity ActivityServiceInterface, log *zap.Logger) *TagHandler {
	return &TagHandler{
		tagService: tagService,
		guard:      guard{workspaces: workspaceService},
		recorder:   recorder{activity: activity, log: nopIfNil(log)},
	}
}

func (h *TagHandler) Create(c *drift.Context) {
	workspaceID, ok := pathID(c, "workspaceId", "workspace")
	if !ok {
		return
	}
	if !h.requireWrite(c, workspaceID) {
		return
	}

	var req dto.CreateTagRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		respond.Error(c, err)
		return
	}

	tag, err := h.tagService.Create(c.Request.Context(), workspaceID, strings.TrimSpace(req.Name), req.Color, sanitize.StripTags(req.Description))
	if err != nil {
		respond.Error(c, err)
		return
	}

	h.record(c, workspaceID, models.EntityTag, tag.ID, models.ActionCreated, map[string]string{"name": tag.Name})
	respond.OK(c, http.StatusCreated, "Tag created successfully", tag)
}

func (h *TagHandler) List(c *drift.Context) {
	workspaceID, ok := pathID(c, "workspaceId", "workspace")
	if !ok {
		return
	}

	tags, err := h.tagService.ListByWorkspace(c.Request.Context(), workspaceID)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, tags)
}

func (h *TagHandler) Get(c *drift.Context) {
	workspaceID, ok := pathID(c, "workspaceId", "workspace")
	if !ok {
		return
	}
	tagID, ok := pathID(c, "tagId", "tag")
	if !ok {
		return
	}

	tag, err := h.tagService.GetByID(c.Request.Context(), workspaceID, tagID)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, tag)
}

func (h *TagHandler) Update(c *drift.Context) {
	workspaceID, ok := pathID(c, "workspaceId", "workspace")
	if !ok {
		return
	}
	tagID, ok := pathID(c, "tagId", "tag")
	if !ok {
		return
	}
	if !h.requireWrite(c, workspaceID) {
		return
	}

	var req dto.UpdateTagRequest
	if !bindJSON(c, &req) {
		return
	}
	patch, err := req.ToPatch()
	if err != nil {
		respond.Error(c, err)
		return
	}

	tag, err := h.tagService.Update(c.Request.Context(), workspaceID, tagID, patch)
	if err != nil {
		respond.Error(c, err)
		return
	}

	h.record(c, workspaceID, models.EntityTag, tagID, models.ActionUpdated, nil)
	respond.OK(c, http.StatusOK, "Tag updated successfully", tag)
}

func (h *TagHandler) Delete(c *drift.Context) {
	workspaceID, ok := pathID(c, "workspaceId", "workspace")
	if !ok {
		return
	}
	tagID, ok := pathID(c, "tagId", "tag")
	if !ok {
		return
	}
	if !h.requireWrite(c, workspaceID) {
		return
	}

	if err := h.tagService.Delete(c.Request.Context(), workspaceID, tagID); err != nil {
		respond.Error(c, err)
		return
	}

	h.record(c, workspaceID, models.EntityTag, tagID, models.ActionDeleted, nil)
	respond.OK(c, http.StatusOK, "Tag deleted successfully", nil)
}
