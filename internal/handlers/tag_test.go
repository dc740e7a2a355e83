package handlers

import (
	"net/http"
	"testing"

	"github.com/dimitrije/workspace-api/internal/apperr"
	"github.com/dimitrije/workspace-api/internal/models"
	"github.com/dimitrije/workspace-api/internal/testutil"
	"github.com/dimitrije/workspace-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestTagHandler_Create(t *testing.T) {
	env := setupTest(t)
	wsID := uuid.New()

	env.allowWrite(wsID, true)
	env.tags.On("Create", mock.Anything, wsID, "backend", "#3366ff", "API work").
		Return(&models.Tag{ID: uuid.New(), WorkspaceID: wsID, Name: "backend", Color: "#3366ff"}, nil)
	env.expectActivity(wsID, models.ActionCreated)

	rec := env.client.POST("/api/v1/workspaces/"+wsID.String()+"/tags", dto.CreateTagRequest{
		Name: "  backend ", Color: "#3366ff", Description: "<b>API</b> work",
	})

	testutil.AssertStatus(t, rec, http.StatusCreated)
	assert.Equal(t, "Tag created successfully", envelope(t, rec, nil).Message)
}

func TestTagHandler_Create_BadColor(t *testing.T) {
	env := setupTest(t)
	wsID := uuid.New()
	env.allowWrite(wsID, true)

	rec := env.client.POST("/api/v1/workspaces/"+wsID.String()+"/tags", dto.CreateTagRequest{Name: "x", Color: "blue"})

	testutil.AssertStatus(t, rec, http.StatusBadRequest)
	assert.Equal(t, "Color must be a valid hex color", envelope(t, rec, nil).Message)
}

func TestTagHandler_Create_Duplicate(t *testing.T) {
	env := setupTest(t)
	wsID := uuid.New()
	env.allowWrite(wsID, true)
	env.tags.On("Create", mock.Anything, wsID, "backend", "", "").
		Return(nil, apperr.BadRequest("Tag with name 'backend' already exists in this workspace"))

	rec := env.client.POST("/api/v1/workspaces/"+wsID.String()+"/tags", dto.CreateTagRequest{Name: "backend"})

	testutil.AssertStatus(t, rec, http.StatusBadRequest)
	assert.Equal(t, apperr.CodeBadRequest, envelope(t, rec, nil).ErrorCode)
}

func TestTagHandler_Update_EmptyPatch(t *testing.T) {
	env := setupTest(t)
	wsID := uuid.New()
	tagID := uuid.New()
	env.allowWrite(wsID, true)
	env.tags.On("Update", mock.Anything, wsID, tagID, models.TagPatch{}).Return(nil, apperr.BadRequest("no fields to update"))

	rec := env.client.PATCH("/api/v1/workspaces/"+wsID.String()+"/tags/"+tagID.String(), dto.UpdateTagRequest{})

	testutil.AssertStatus(t, rec, http.StatusBadRequest)
	assert.Equal(t, "no fields to update", envelope(t, rec, nil).Message)
}

func TestTagHandler_ListAndDelete(t *testing.T) {
	env := setupTest(t)
	wsID := uuid.New()
	tagID := uuid.New()

	env.tags.On("ListByWorkspace", mock.Anything, wsID).Return([]models.Tag{{ID: tagID, Name: "backend", TaskCount: 2}}, nil)
	env.allowWrite(wsID, true)
	env.tags.On("Delete", mock.Anything, wsID, tagID).Return(nil)
	env.expectActivity(wsID, models.ActionDeleted)

	rec := env.client.GET("/api/v1/workspaces/" + wsID.String() + "/tags")
	testutil.AssertStatus(t, rec, http.StatusOK)
	var tags []models.Tag
	testutil.ParseJSON(t, rec, &tags)
	assert.Equal(t, 2, tags[0].TaskCount)

	rec = env.client.DELETE("/api/v1/workspaces/" + wsID.String() + "/tags/" + tagID.String())
	testutil.AssertStatus(t, rec, http.StatusOK)
}
