package handlers

import (
	"net/http"
	"testing"

	"github.com/dimitrije/workspace-api/internal/models"
	"github.com/dimitrije/workspace-api/internal/testutil"
	"github.com/dimitrije/workspace-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestRoadmapHandler_AddAssignment(t *testing.T) {
	env := setupTest(t)
	wsID := uuid.New()

	assignment := &models.Assignment{
		ID: uuid.New(), WorkspaceID: wsID, Title: "Learn Go", AssignmentTypeKey: models.AssignmentTypeRoadmap,
		Stats: models.NewAssignmentStats(2, 0, 0),
	}
	env.roadmaps.On("Import", mock.Anything, env.userID, mock.MatchedBy(func(in models.RoadmapImport) bool {
		return in.Title == "Learn Go" && len(in.Steps) == 2 && in.Steps[1].RewardPoints == 20
	})).Return(assignment, nil)
	env.expectActivity(wsID, models.ActionCreated)

	rec := env.client.POST("/api/roadmap/add-assignment", dto.RoadmapAssignmentRequest{
		Title:       "Learn Go",
		Description: "From zero to services",
		Tasks: []dto.RoadmapTaskRequest{
			{Title: "Tour of Go", RewardPoints: 10, DaysToComplete: 3},
			{Title: "Build a CLI", RewardPoints: 20, DaysToComplete: 7, TitleColor: "#00aa00"},
		},
	})

	testutil.AssertStatus(t, rec, http.StatusCreated)
	var got models.Assignment
	resp := envelope(t, rec, &got)
	assert.Equal(t, "Roadmap assignment added to workspace successfully", resp.Message)
	assert.Equal(t, 2, got.Stats.TotalTasks)
}

func TestRoadmapHandler_AddAssignment_DescriptionRequired(t *testing.T) {
	env := setupTest(t)

	rec := env.client.POST("/api/roadmap/add-assignment", dto.RoadmapAssignmentRequest{Title: "Learn Go"})

	testutil.AssertStatus(t, rec, http.StatusBadRequest)
	assert.Equal(t, "Assignment description is required", envelope(t, rec, nil).Message)
}

func TestRoadmapHandler_AddAssignment_RequiresUser(t *testing.T) {
	env := setupTest(t)

	rec := env.client.As(uuid.Nil).POST("/api/roadmap/add-assignment", dto.RoadmapAssignmentRequest{Title: "x", Description: "y"})

	testutil.AssertStatus(t, rec, http.StatusUnauthorized)
}

func TestRoadmapHandler_CreateAndImportTemplate(t *testing.T) {
	env := setupTest(t)
	roadmapID := uuid.New()
	wsID := uuid.New()

	env.roadmaps.On("CreateTemplate", mock.Anything, mock.MatchedBy(func(rm models.Roadmap) bool {
		return rm.CreatedBy == env.userID && len(rm.Steps) == 1
	})).Return(&models.Roadmap{ID: roadmapID, Title: "Backend"}, nil)
	env.roadmaps.On("ImportTemplate", mock.Anything, roadmapID, env.userID).
		Return(&models.Assignment{ID: uuid.New(), WorkspaceID: wsID, Title: "Backend"}, nil)
	env.expectActivity(wsID, models.ActionCreated)

	rec := env.client.POST("/api/v1/roadmaps", dto.CreateRoadmapRequest{
		Title: "Backend",
		Steps: []dto.RoadmapStepRequest{{Title: "HTTP basics", StepOrder: 1}},
	})
	testutil.AssertStatus(t, rec, http.StatusCreated)
	assert.Equal(t, "Roadmap created successfully", envelope(t, rec, nil).Message)

	rec = env.client.POST("/api/v1/roadmaps/"+roadmapID.String()+"/import", nil)
	testutil.AssertStatus(t, rec, http.StatusCreated)
}
