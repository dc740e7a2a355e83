package handlers

import (
	"net/http"

	"github.com/dimitrije/workspace-api/internal/middleware"
	"github.com/dimitrije/workspace-api/internal/models"
	"github.com/dimitrije/workspace-api/internal/respond"
	"github.com/dimitrije/workspace-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
	"go.uber.org/zap"
)

const roadmapImported = "Roadmap assignment added to workspace successfully"

type RoadmapHandler struct {
	roadmapService RoadmapServiceInterface
	recorder
}

func NewRoadmapHandler(roadmapService RoadmapServiceInterface, activity ActivityServiceInterface, log *zap.Logger) *RoadmapHandler {
	return &RoadmapHandler{
		roadmapService: roadmapService,
		recorder:       recorder{activity: activity, log: nopIfNil(log)},
	}
}

// AddAssignment imports ad-hoc roadmap steps into the caller's roadmap
// workspace.
func (h *RoadmapHandler) AddAssignment(c *drift.Context) {
	var req dto.RoadmapAssignmentRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := req.ToImport()
	if err != nil {
		respond.Error(c, err)
		return
	}

	assignment, err := h.roadmapService.Import(c.Request.Context(), middleware.GetUserID(c), in)
	if err != nil {
		respond.Error(c, err)
		return
	}
	h.imported(c, assignment)
}

func (h *RoadmapHandler) imported(c *drift.Context, assignment *models.Assignment) {
	h.record(c, assignment.WorkspaceID, models.EntityAssignment, assignment.ID, models.ActionCreated,
		map[string]any{"title": assignment.Title, "tasks": assignment.Stats.TotalTasks, "source": "roadmap"})
	respond.OK(c, http.StatusCreated, roadmapImported, assignment)
}

func (h *RoadmapHandler) Create(c *drift.Context) {
	var req dto.CreateRoadmapRequest
	if !bindJSON(c, &req) {
		return
	}
	rm, err := req.ToModel()
	if err != nil {
		respond.Error(c, err)
		return
	}
	rm.CreatedBy = middleware.GetUserID(c)

	created, err := h.roadmapService.CreateTemplate(c.Request.Context(), rm)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, http.StatusCreated, "Roadmap created successfully", created)
}

func (h *RoadmapHandler) List(c *drift.Context) {
	roadmaps, err := h.roadmapService.ListTemplates(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, roadmaps)
}

func (h *RoadmapHandler) Get(c *drift.Context) {
	roadmapID, ok := pathID(c, "roadmapId", "roadmap")
	if !ok {
		return
	}

	rm, err := h.roadmapService.GetTemplate(c.Request.Context(), roadmapID, middleware.GetUserID(c))
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, rm)
}

func (h *RoadmapHandler) Import(c *drift.Context) {
	roadmapID, ok := pathID(c, "roadmapId", "roadmap")
	if !ok {
		return
	}

	assignment, err := h.roadmapService.ImportTemplate(c.Request.Context(), roadmapID, middleware.GetUserID(c))
	if err != nil {
		respond.Error(c, err)
		return
	}
	h.imported(c, assignment)
}
