package handlers

import (
	"net/http"
	"testing"

	"github.com/dimitrije/workspace-api/internal/models"
	"github.com/dimitrije/workspace-api/internal/paging"
	"github.com/dimitrije/workspace-api/internal/testutil"
	"github.com/dimitrije/workspace-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestActivityHandler_List(t *testing.T) {
	env := setupTest(t)
	wsID := uuid.New()

	env.allowAccess(wsID, true)
	env.activity.On("ListByWorkspace", mock.Anything, wsID, paging.Request{Page: 0, Size: 20}).
		Return([]models.ActivityLog{{ID: uuid.New(), ActionKey: models.ActionCreated}}, int64(41), nil)

	rec := env.client.GET("/api/v1/workspaces/" + wsID.String() + "/activity")

	testutil.AssertStatus(t, rec, http.StatusOK)
	var page dto.Page[models.ActivityLog]
	testutil.ParseJSON(t, rec, &page)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, models.ActionCreated, page.Content[0].ActionKey)
}

func TestActivityHandler_List_NoAccess(t *testing.T) {
	env := setupTest(t)
	wsID := uuid.New()
	env.allowAccess(wsID, false)

	rec := env.client.GET("/api/v1/workspaces/" + wsID.String() + "/activity")

	testutil.AssertStatus(t, rec, http.StatusUnauthorized)
}
