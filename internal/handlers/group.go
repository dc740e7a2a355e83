package handlers

import (
	"net/http"

	"github.com/dimitrije/workspace-api/internal/apperr"
	"github.com/dimitrije/workspace-api/internal/middleware"
	"github.com/dimitrije/workspace-api/internal/models"
	"github.com/dimitrije/workspace-api/internal/respond"
	"github.com/dimitrije/workspace-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

var errNotLeader = apperr.Unauthorized("Only a group leader can do this")

type GroupHandler struct {
	groupService GroupServiceInterface
}

func NewGroupHandler(groupService GroupServiceInterface) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

func (h *GroupHandler) requireLeader(c *drift.Context, groupID uuid.UUID) bool {
	isLeader, err := h.groupService.IsLeader(c.Request.Context(), groupID, middleware.GetUserID(c))
	if err != nil {
		respond.Error(c, err)
		return false
	}
	if !isLeader {
		respond.Error(c, errNotLeader)
		return false
	}
	return true
}

func (h *GroupHandler) Create(c *drift.Context) {
	var req dto.CreateGroupRequest
	if !bindJSON(c, &req) {
		return
	}
	visibility, err := req.Validate()
	if err != nil {
		respond.Error(c, err)
		return
	}

	group, err := h.groupService.Create(c.Request.Context(), models.Group{
		Name:            req.Name,
		Slug:            req.Slug,
		Description:     req.Description,
		Visibility:      visibility,
		CreatedByUserID: middleware.GetUserID(c),
	})
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, http.StatusCreated, "Group created successfully", group)
}

// List returns the groups visible to the caller, or the one group with the
// given slug.
func (h *GroupHandler) List(c *drift.Context) {
	if groupSlug := c.QueryParam("slug"); groupSlug != "" {
		group, err := h.groupService.GetBySlug(c.Request.Context(), groupSlug)
		if err != nil {
			respond.Error(c, err)
			return
		}
		respond.JSON(c, http.StatusOK, group)
		return
	}

	groups, err := h.groupService.ListVisible(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, groups)
}

func (h *GroupHandler) Get(c *drift.Context) {
	groupID, ok := pathID(c, "groupId", "group")
	if !ok {
		return
	}

	group, err := h.groupService.GetByID(c.Request.Context(), groupID)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, group)
}

func (h *GroupHandler) Update(c *drift.Context) {
	groupID, ok := pathID(c, "groupId", "group")
	if !ok {
		return
	}
	if !h.requireLeader(c, groupID) {
		return
	}

	var req dto.UpdateGroupRequest
	if !bindJSON(c, &req) {
		return
	}
	patch, err := req.ToPatch()
	if err != nil {
		respond.Error(c, err)
		return
	}

	group, err := h.groupService.Update(c.Request.Context(), groupID, patch)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, http.StatusOK, "Group updated successfully", group)
}

func (h *GroupHandler) Delete(c *drift.Context) {
	groupID, ok := pathID(c, "groupId", "group")
	if !ok {
		return
	}
	if !h.requireLeader(c, groupID) {
		return
	}

	if err := h.groupService.Delete(c.Request.Context(), groupID); err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, http.StatusOK, "Group deleted successfully", nil)
}

func (h *GroupHandler) ListMembers(c *drift.Context) {
	groupID, ok := pathID(c, "groupId", "group")
	if !ok {
		return
	}

	members, err := h.groupService.ListMembers(c.Request.Context(), groupID)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, members)
}

func (h *GroupHandler) AddMember(c *drift.Context) {
	groupID, ok := pathID(c, "groupId", "group")
	if !ok {
		return
	}
	if !h.requireLeader(c, groupID) {
		return
	}

	var req dto.AddGroupMemberRequest
	if !bindJSON(c, &req) {
		return
	}
	role, err := req.Parse()
	if err != nil {
		respond.Error(c, err)
		return
	}

	member, err := h.groupService.AddMember(c.Request.Context(), groupID, req.UserID, role)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, http.StatusCreated, "Member added to group successfully", member)
}

// RemoveMember lets leaders remove anyone and members remove themselves.
func (h *GroupHandler) RemoveMember(c *drift.Context) {
	groupID, ok := pathID(c, "groupId", "group")
	if !ok {
		return
	}
	userID, ok := pathID(c, "userId", "user")
	if !ok {
		return
	}
	if userID != middleware.GetUserID(c) && !h.requireLeader(c, groupID) {
		return
	}

	if err := h.groupService.RemoveMember(c.Request.Context(), groupID, userID); err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, http.StatusOK, "Member removed from group successfully", nil)
}
