package handlers

import (
	"net/http"

	"github.com/dimitrije/workspace-api/internal/middleware"
	"github.com/dimitrije/workspace-api/internal/respond"
	"github.com/dimitrije/workspace-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type CommentHandler struct {
	commentService CommentServiceInterface
	taskService    TaskServiceInterface
	guard
}

func NewCommentHandler(commentService CommentServiceInterface, taskService TaskServiceInterface, workspaceService WorkspaceServiceInterface) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		taskService:    taskService,
		guard:          guard{workspaces: workspaceService},
	}
}

func (h *CommentHandler) Create(c *drift.Context) {
	taskID, ok := pathID(c, "taskId", "task")
	if !ok {
		return
	}
	workspaceID, err := h.taskService.WorkspaceOf(c.Request.Context(), taskID)
	if err != nil {
		respond.Error(c, err)
		return
	}
	if !h.requireWrite(c, workspaceID) {
		return
	}

	var req dto.CommentRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		respond.Error(c, err)
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), taskID, middleware.GetUserID(c), req.Body, req.Attachments)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, http.StatusCreated, "Comment created successfully", comment)
}

func (h *CommentHandler) List(c *drift.Context) {
	taskID, ok := pathID(c, "taskId", "task")
	if !ok {
		return
	}

	comments, err := h.commentService.ListByTask(c.Request.Context(), taskID)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, comments)
}

func (h *CommentHandler) Update(c *drift.Context) {
	taskID, ok := pathID(c, "taskId", "task")
	if !ok {
		return
	}
	commentID, ok := pathID(c, "commentId", "comment")
	if !ok {
		return
	}

	var req dto.CommentRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		respond.Error(c, err)
		return
	}

	comment, err := h.commentService.Update(c.Request.Context(), taskID, commentID, middleware.GetUserID(c), req.Body, req.Attachments, req.Version)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, http.StatusOK, "Comment updated successfully", comment)
}

func (h *CommentHandler) Delete(c *drift.Context) {
	taskID, ok := pathID(c, "taskId", "task")
	if !ok {
		return
	}
	commentID, ok := pathID(c, "commentId", "comment")
	if !ok {
		return
	}

	if err := h.commentService.Delete(c.Request.Context(), taskID, commentID, middleware.GetUserID(c)); err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, http.StatusOK, "Comment deleted successfully", nil)
}
