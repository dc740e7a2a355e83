package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/dimitrije/workspace-api/internal/middleware"
	"github.com/dimitrije/workspace-api/internal/testutil"
	"github.com/dimitrije/workspace-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// testEnv wires every handler to testify mocks behind the real router.
type testEnv struct {
	workspaces      *testutil.MockWorkspaceService
	assignments     *testutil.MockAssignmentService
	tasks           *testutil.MockTaskService
	taskAssignments *testutil.MockTaskAssignmentService
	tags            *testutil.MockTagService
	comments        *testutil.MockCommentService
	groups          *testutil.MockGroupService
	roadmaps        *testutil.MockRoadmapService
	activity        *testutil.MockActivityService
	db              *testutil.MockPinger

	userID uuid.UUID
	client *testutil.HTTPTestClient
}

func setupTest(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		workspaces:      new(testutil.MockWorkspaceService),
		assignments:     new(testutil.MockAssignmentService),
		tasks:           new(testutil.MockTaskService),
		taskAssignments: new(testutil.MockTaskAssignmentService),
		tags:            new(testutil.MockTagService),
		comments:        new(testutil.MockCommentService),
		groups:          new(testutil.MockGroupService),
		roadmaps:        new(testutil.MockRoadmapService),
		activity:        new(testutil.MockActivityService),
		db:              new(testutil.MockPinger),
		userID:          uuid.New(),
	}

	pager := Pager{DefaultSize: 20, MaxSize: 100}
	router := NewRouter(RouterConfig{
		Public:    []drift.HandlerFunc{driftmw.BodyParser()},
		Protected: []drift.HandlerFunc{middleware.Identity(nil)},
	}, Handlers{
		Health:         NewHealthHandler(env.db),
		Workspace:      NewWorkspaceHandler(env.workspaces, env.activity, nil),
		Assignment:     NewAssignmentHandler(env.assignments, env.workspaces, env.activity, pager, nil),
		Task:           NewTaskHandler(env.tasks, env.workspaces, env.activity, pager, nil),
		TaskAssignment: NewTaskAssignmentHandler(env.taskAssignments, env.tasks, env.workspaces, env.activity, nil),
		Tag:            NewTagHandler(env.tags, env.workspaces, env.activity, nil),
		Comment:        NewCommentHandler(env.comments, env.tasks, env.workspaces),
		Group:          NewGroupHandler(env.groups),
		Roadmap:        NewRoadmapHandler(env.roadmaps, env.activity, nil),
		Activity:       NewActivityHandler(env.activity, env.workspaces, pager),
	})
	env.client = testutil.NewHTTPTestClient(t, router, env.userID)

	t.Cleanup(func() {
		env.workspaces.AssertExpectations(t)
		env.assignments.AssertExpectations(t)
		env.tasks.AssertExpectations(t)
		env.taskAssignments.AssertExpectations(t)
		env.tags.AssertExpectations(t)
		env.comments.AssertExpectations(t)
		env.groups.AssertExpectations(t)
		env.roadmaps.AssertExpectations(t)
	})
	return env
}

// allowAccess lets the caller read workspaceID.
func (e *testEnv) allowAccess(workspaceID uuid.UUID, ok bool) {
	e.workspaces.On("HasUserAccess", mock.Anything, workspaceID, e.userID).Return(ok, nil).Once()
}

// allowWrite lets the caller write to workspaceID.
func (e *testEnv) allowWrite(workspaceID uuid.UUID, ok bool) {
	e.workspaces.On("CanWrite", mock.Anything, workspaceID, e.userID).Return(ok, nil).Once()
}

func (e *testEnv) allowAdmin(workspaceID uuid.UUID, ok bool) {
	e.workspaces.On("CanAdminister", mock.Anything, workspaceID, e.userID).Return(ok, nil).Once()
}

// expectActivity accepts any activity entry for workspaceID with action.
func (e *testEnv) expectActivity(workspaceID uuid.UUID, action string) {
	e.activity.On("Record", mock.Anything, workspaceID, e.userID, mock.Anything, mock.Anything, action, mock.Anything).
		Return(nil).Once()
}

// envelope decodes an APIResponse whose data is re-decoded into data when
// data is non-nil.
func envelope(t *testing.T, rec *httptest.ResponseRecorder, data any) dto.APIResponse {
	t.Helper()

	var raw struct {
		dto.APIResponse
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	if data != nil && len(raw.Data) > 0 {
		require.NoError(t, json.Unmarshal(raw.Data, data))
	}
	return raw.APIResponse
}
