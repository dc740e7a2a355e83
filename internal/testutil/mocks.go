package testutil

import (
	"context"
	"encoding/json"

	"github.com/dimitrije/workspace-api/internal/models"
	"github.com/dimitrije/workspace-api/internal/paging"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockWorkspaceService mocks handlers.WorkspaceServiceInterface
type MockWorkspaceService struct {
	mock.Mock
}

func (m *MockWorkspaceService) Create(ctx context.Context, in models.WorkspaceInput) (*models.Workspace, error) {
	args := m.Called(ctx, in)
	var r0 *models.Workspace
	if v := args.Get(0); v != nil {
		r0 = v.(*models.Workspace)
	}
	return r0, args.Error(1)
}

func (m *MockWorkspaceService) GetByID(ctx context.Context, id uuid.UUID) (*models.Workspace, error) {
	args := m.Called(ctx, id)
	var r0 *models.Workspace
	if v := args.Get(0); v != nil {
		r0 = v.(*models.Workspace)
	}
	return r0, args.Error(1)
}

func (m *MockWorkspaceService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Workspace, error) {
	args := m.Called(ctx, ownerID)
	var r0 []models.Workspace
	if v := args.Get(0); v != nil {
		r0 = v.([]models.Workspace)
	}
	return r0, args.Error(1)
}

func (m *MockWorkspaceService) ListAccessible(ctx context.Context, userID uuid.UUID) ([]models.Workspace, error) {
	args := m.Called(ctx, userID)
	var r0 []models.Workspace
	if v := args.Get(0); v != nil {
		r0 = v.([]models.Workspace)
	}
	return r0, args.Error(1)
}

func (m *MockWorkspaceService) ListShared(ctx context.Context, userID uuid.UUID) ([]models.Workspace, error) {
	args := m.Called(ctx, userID)
	var r0 []models.Workspace
	if v := args.Get(0); v != nil {
		r0 = v.([]models.Workspace)
	}
	return r0, args.Error(1)
}

func (m *MockWorkspaceService) ListByVisibility(ctx context.Context, visibility models.Visibility) ([]models.Workspace, error) {
	args := m.Called(ctx, visibility)
	var r0 []models.Workspace
	if v := args.Get(0); v != nil {
		r0 = v.([]models.Workspace)
	}
	return r0, args.Error(1)
}

func (m *MockWorkspaceService) SearchByName(ctx context.Context, name string) ([]models.Workspace, error) {
	args := m.Called(ctx, name)
	var r0 []models.Workspace
	if v := args.Get(0); v != nil {
		r0 = v.([]models.Workspace)
	}
	return r0, args.Error(1)
}

func (m *MockWorkspaceService) Update(ctx context.Context, id uuid.UUID, in models.WorkspaceInput, version *int) (*models.Workspace, error) {
	args := m.Called(ctx, id, in, version)
	var r0 *models.Workspace
	if v := args.Get(0); v != nil {
		r0 = v.(*models.Workspace)
	}
	return r0, args.Error(1)
}

func (m *MockWorkspaceService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWorkspaceService) AddUser(ctx context.Context, workspaceID, userID uuid.UUID, level models.AccessLevel) (*models.WorkspaceAccess, error) {
	args := m.Called(ctx, workspaceID, userID, level)
	var r0 *models.WorkspaceAccess
	if v := args.Get(0); v != nil {
		r0 = v.(*models.WorkspaceAccess)
	}
	return r0, args.Error(1)
}

func (m *MockWorkspaceService) RemoveUser(ctx context.Context, workspaceID, userID uuid.UUID) error {
	args := m.Called(ctx, workspaceID, userID)
	return args.Error(0)
}

func (m *MockWorkspaceService) UpdateAccessLevel(ctx context.Context, workspaceID, userID uuid.UUID, level models.AccessLevel) (*models.WorkspaceAccess, error) {
	args := m.Called(ctx, workspaceID, userID, level)
	var r0 *models.WorkspaceAccess
	if v := args.Get(0); v != nil {
		r0 = v.(*models.WorkspaceAccess)
	}
	return r0, args.Error(1)
}

func (m *MockWorkspaceService) GetWorkspaceUsers(ctx context.Context, workspaceID uuid.UUID) ([]models.WorkspaceAccess, error) {
	args := m.Called(ctx, workspaceID)
	var r0 []models.WorkspaceAccess
	if v := args.Get(0); v != nil {
		r0 = v.([]models.WorkspaceAccess)
	}
	return r0, args.Error(1)
}

func (m *MockWorkspaceService) HasUserAccess(ctx context.Context, workspaceID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, workspaceID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockWorkspaceService) CanWrite(ctx context.Context, workspaceID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, workspaceID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockWorkspaceService) CanAdminister(ctx context.Context, workspaceID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, workspaceID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockWorkspaceService) AssignmentCount(ctx context.Context, workspaceID uuid.UUID) (int, error) {
	args := m.Called(ctx, workspaceID)
	return args.Int(0), args.Error(1)
}

// MockAssignmentService mocks handlers.AssignmentServiceInterface
type MockAssignmentService struct {
	mock.Mock
}

func (m *MockAssignmentService) Create(ctx context.Context, in models.AssignmentInput, userID uuid.UUID) (*models.Assignment, error) {
	args := m.Called(ctx, in, userID)
	var r0 *models.Assignment
	if v := args.Get(0); v != nil {
		r0 = v.(*models.Assignment)
	}
	return r0, args.Error(1)
}

func (m *MockAssignmentService) GetByID(ctx context.Context, id uuid.UUID) (*models.Assignment, error) {
	args := m.Called(ctx, id)
	var r0 *models.Assignment
	if v := args.Get(0); v != nil {
		r0 = v.(*models.Assignment)
	}
	return r0, args.Error(1)
}

func (m *MockAssignmentService) WorkspaceOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockAssignmentService) List(ctx context.Context, userID uuid.UUID, page paging.Request) ([]models.Assignment, int64, error) {
	args := m.Called(ctx, userID, page)
	var r0 []models.Assignment
	if v := args.Get(0); v != nil {
		r0 = v.([]models.Assignment)
	}
	return r0, args.Get(1).(int64), args.Error(2)
}

func (m *MockAssignmentService) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID, page paging.Request) ([]models.Assignment, int64, error) {
	args := m.Called(ctx, workspaceID, page)
	var r0 []models.Assignment
	if v := args.Get(0); v != nil {
		r0 = v.([]models.Assignment)
	}
	return r0, args.Get(1).(int64), args.Error(2)
}

func (m *MockAssignmentService) ListOverdue(ctx context.Context, workspaceID uuid.UUID) ([]models.Assignment, error) {
	args := m.Called(ctx, workspaceID)
	var r0 []models.Assignment
	if v := args.Get(0); v != nil {
		r0 = v.([]models.Assignment)
	}
	return r0, args.Error(1)
}

func (m *MockAssignmentService) Update(ctx context.Context, id uuid.UUID, in models.AssignmentInput, version *int, userID uuid.UUID) (*models.Assignment, error) {
	args := m.Called(ctx, id, in, version, userID)
	var r0 *models.Assignment
	if v := args.Get(0); v != nil {
		r0 = v.(*models.Assignment)
	}
	return r0, args.Error(1)
}

func (m *MockAssignmentService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAssignmentService) AddTasks(ctx context.Context, id uuid.UUID, taskIDs []uuid.UUID) (*models.Assignment, error) {
	args := m.Called(ctx, id, taskIDs)
	var r0 *models.Assignment
	if v := args.Get(0); v != nil {
		r0 = v.(*models.Assignment)
	}
	return r0, args.Error(1)
}

func (m *MockAssignmentService) RemoveTasks(ctx context.Context, id uuid.UUID, taskIDs []uuid.UUID) (*models.Assignment, error) {
	args := m.Called(ctx, id, taskIDs)
	var r0 *models.Assignment
	if v := args.Get(0); v != nil {
		r0 = v.(*models.Assignment)
	}
	return r0, args.Error(1)
}

func (m *MockAssignmentService) ListTasks(ctx context.Context, id uuid.UUID) ([]models.Task, error) {
	args := m.Called(ctx, id)
	var r0 []models.Task
	if v := args.Get(0); v != nil {
		r0 = v.([]models.Task)
	}
	return r0, args.Error(1)
}

func (m *MockAssignmentService) AssignUsersToAllTasks(ctx context.Context, id uuid.UUID, userIDs []uuid.UUID, assignedBy uuid.UUID) (int, error) {
	args := m.Called(ctx, id, userIDs, assignedBy)
	return args.Int(0), args.Error(1)
}

func (m *MockAssignmentService) UnassignUsersFromAllTasks(ctx context.Context, id uuid.UUID, userIDs []uuid.UUID) (int64, error) {
	args := m.Called(ctx, id, userIDs)
	return args.Get(0).(int64), args.Error(1)
}

// MockTaskService mocks handlers.TaskServiceInterface
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) Create(ctx context.Context, in models.TaskInput) (*models.Task, error) {
	args := m.Called(ctx, in)
	var r0 *models.Task
	if v := args.Get(0); v != nil {
		r0 = v.(*models.Task)
	}
	return r0, args.Error(1)
}

func (m *MockTaskService) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	args := m.Called(ctx, id)
	var r0 *models.Task
	if v := args.Get(0); v != nil {
		r0 = v.(*models.Task)
	}
	return r0, args.Error(1)
}

func (m *MockTaskService) WorkspaceOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockTaskService) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID, page paging.Request) ([]models.Task, int64, error) {
	args := m.Called(ctx, workspaceID, page)
	var r0 []models.Task
	if v := args.Get(0); v != nil {
		r0 = v.([]models.Task)
	}
	return r0, args.Get(1).(int64), args.Error(2)
}

func (m *MockTaskService) ListByAssignment(ctx context.Context, assignmentID uuid.UUID, page paging.Request) ([]models.Task, int64, error) {
	args := m.Called(ctx, assignmentID, page)
	var r0 []models.Task
	if v := args.Get(0); v != nil {
		r0 = v.([]models.Task)
	}
	return r0, args.Get(1).(int64), args.Error(2)
}

func (m *MockTaskService) ListByAssignee(ctx context.Context, userID uuid.UUID, page paging.Request) ([]models.Task, int64, error) {
	args := m.Called(ctx, userID, page)
	var r0 []models.Task
	if v := args.Get(0); v != nil {
		r0 = v.([]models.Task)
	}
	return r0, args.Get(1).(int64), args.Error(2)
}

func (m *MockTaskService) ListByReporter(ctx context.Context, userID uuid.UUID, page paging.Request) ([]models.Task, int64, error) {
	args := m.Called(ctx, userID, page)
	var r0 []models.Task
	if v := args.Get(0); v != nil {
		r0 = v.([]models.Task)
	}
	return r0, args.Get(1).(int64), args.Error(2)
}

func (m *MockTaskService) ListByStatus(ctx context.Context, workspaceID uuid.UUID, status models.TaskStatus, page paging.Request) ([]models.Task, int64, error) {
	args := m.Called(ctx, workspaceID, status, page)
	var r0 []models.Task
	if v := args.Get(0); v != nil {
		r0 = v.([]models.Task)
	}
	return r0, args.Get(1).(int64), args.Error(2)
}

func (m *MockTaskService) ListOverdue(ctx context.Context, workspaceID uuid.UUID, page paging.Request) ([]models.Task, int64, error) {
	args := m.Called(ctx, workspaceID, page)
	var r0 []models.Task
	if v := args.Get(0); v != nil {
		r0 = v.([]models.Task)
	}
	return r0, args.Get(1).(int64), args.Error(2)
}

func (m *MockTaskService) Update(ctx context.Context, id uuid.UUID, p models.TaskPatch) (*models.Task, error) {
	args := m.Called(ctx, id, p)
	var r0 *models.Task
	if v := args.Get(0); v != nil {
		r0 = v.(*models.Task)
	}
	return r0, args.Error(1)
}

func (m *MockTaskService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.TaskStatus) (*models.Task, error) {
	args := m.Called(ctx, id, status)
	var r0 *models.Task
	if v := args.Get(0); v != nil {
		r0 = v.(*models.Task)
	}
	return r0, args.Error(1)
}

func (m *MockTaskService) AssignTask(ctx context.Context, id, assigneeID uuid.UUID) (*models.Task, error) {
	args := m.Called(ctx, id, assigneeID)
	var r0 *models.Task
	if v := args.Get(0); v != nil {
		r0 = v.(*models.Task)
	}
	return r0, args.Error(1)
}

func (m *MockTaskService) AddTimeSpent(ctx context.Context, id uuid.UUID, hours float64) (*models.Task, error) {
	args := m.Called(ctx, id, hours)
	var r0 *models.Task
	if v := args.Get(0); v != nil {
		r0 = v.(*models.Task)
	}
	return r0, args.Error(1)
}

func (m *MockTaskService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTaskAssignmentService mocks handlers.TaskAssignmentServiceInterface
type MockTaskAssignmentService struct {
	mock.Mock
}

func (m *MockTaskAssignmentService) AssignUsers(ctx context.Context, taskID uuid.UUID, userIDs []uuid.UUID, assignedBy uuid.UUID) ([]models.TaskAssignment, error) {
	args := m.Called(ctx, taskID, userIDs, assignedBy)
	var r0 []models.TaskAssignment
	if v := args.Get(0); v != nil {
		r0 = v.([]models.TaskAssignment)
	}
	return r0, args.Error(1)
}

func (m *MockTaskAssignmentService) UnassignUsers(ctx context.Context, taskID uuid.UUID, userIDs []uuid.UUID) error {
	args := m.Called(ctx, taskID, userIDs)
	return args.Error(0)
}

func (m *MockTaskAssignmentService) Update(ctx context.Context, p models.TaskAssignmentPatch) (*models.TaskAssignment, error) {
	args := m.Called(ctx, p)
	var r0 *models.TaskAssignment
	if v := args.Get(0); v != nil {
		r0 = v.(*models.TaskAssignment)
	}
	return r0, args.Error(1)
}

func (m *MockTaskAssignmentService) ListByTask(ctx context.Context, taskID uuid.UUID) ([]models.TaskAssignment, error) {
	args := m.Called(ctx, taskID)
	var r0 []models.TaskAssignment
	if v := args.Get(0); v != nil {
		r0 = v.([]models.TaskAssignment)
	}
	return r0, args.Error(1)
}

func (m *MockTaskAssignmentService) ListByUser(ctx context.Context, userID uuid.UUID, status *models.TaskStatus) ([]models.TaskAssignment, error) {
	args := m.Called(ctx, userID, status)
	var r0 []models.TaskAssignment
	if v := args.Get(0); v != nil {
		r0 = v.([]models.TaskAssignment)
	}
	return r0, args.Error(1)
}

func (m *MockTaskAssignmentService) ListOverdue(ctx context.Context, userID uuid.UUID) ([]models.TaskAssignment, error) {
	args := m.Called(ctx, userID)
	var r0 []models.TaskAssignment
	if v := args.Get(0); v != nil {
		r0 = v.([]models.TaskAssignment)
	}
	return r0, args.Error(1)
}

// MockTagService mocks handlers.TagServiceInterface
type MockTagService struct {
	mock.Mock
}

func (m *MockTagService) Create(ctx context.Context, workspaceID uuid.UUID, name, color, description string) (*models.Tag, error) {
	args := m.Called(ctx, workspaceID, name, color, description)
	var r0 *models.Tag
	if v := args.Get(0); v != nil {
		r0 = v.(*models.Tag)
	}
	return r0, args.Error(1)
}

func (m *MockTagService) GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*models.Tag, error) {
	args := m.Called(ctx, workspaceID, id)
	var r0 *models.Tag
	if v := args.Get(0); v != nil {
		r0 = v.(*models.Tag)
	}
	return r0, args.Error(1)
}

func (m *MockTagService) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]models.Tag, error) {
	args := m.Called(ctx, workspaceID)
	var r0 []models.Tag
	if v := args.Get(0); v != nil {
		r0 = v.([]models.Tag)
	}
	return r0, args.Error(1)
}

func (m *MockTagService) Update(ctx context.Context, workspaceID, id uuid.UUID, p models.TagPatch) (*models.Tag, error) {
	args := m.Called(ctx, workspaceID, id, p)
	var r0 *models.Tag
	if v := args.Get(0); v != nil {
		r0 = v.(*models.Tag)
	}
	return r0, args.Error(1)
}

func (m *MockTagService) Delete(ctx context.Context, workspaceID, id uuid.UUID) error {
	args := m.Called(ctx, workspaceID, id)
	return args.Error(0)
}

// MockCommentService mocks handlers.CommentServiceInterface
type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) Create(ctx context.Context, taskID, userID uuid.UUID, body string, attachments json.RawMessage) (*models.Comment, error) {
	args := m.Called(ctx, taskID, userID, body, attachments)
	var r0 *models.Comment
	if v := args.Get(0); v != nil {
		r0 = v.(*models.Comment)
	}
	return r0, args.Error(1)
}

func (m *MockCommentService) ListByTask(ctx context.Context, taskID uuid.UUID) ([]models.Comment, error) {
	args := m.Called(ctx, taskID)
	var r0 []models.Comment
	if v := args.Get(0); v != nil {
		r0 = v.([]models.Comment)
	}
	return r0, args.Error(1)
}

func (m *MockCommentService) Update(ctx context.Context, taskID, commentID, userID uuid.UUID, body string, attachments json.RawMessage, version *int) (*models.Comment, error) {
	args := m.Called(ctx, taskID, commentID, userID, body, attachments, version)
	var r0 *models.Comment
	if v := args.Get(0); v != nil {
		r0 = v.(*models.Comment)
	}
	return r0, args.Error(1)
}

func (m *MockCommentService) Delete(ctx context.Context, taskID, commentID, userID uuid.UUID) error {
	args := m.Called(ctx, taskID, commentID, userID)
	return args.Error(0)
}

// MockGroupService mocks handlers.GroupServiceInterface
type MockGroupService struct {
	mock.Mock
}

func (m *MockGroupService) Create(ctx context.Context, g models.Group) (*models.Group, error) {
	args := m.Called(ctx, g)
	var r0 *models.Group
	if v := args.Get(0); v != nil {
		r0 = v.(*models.Group)
	}
	return r0, args.Error(1)
}

func (m *MockGroupService) GetByID(ctx context.Context, id uuid.UUID) (*models.Group, error) {
	args := m.Called(ctx, id)
	var r0 *models.Group
	if v := args.Get(0); v != nil {
		r0 = v.(*models.Group)
	}
	return r0, args.Error(1)
}

func (m *MockGroupService) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	args := m.Called(ctx, slug)
	var r0 *models.Group
	if v := args.Get(0); v != nil {
		r0 = v.(*models.Group)
	}
	return r0, args.Error(1)
}

func (m *MockGroupService) ListVisible(ctx context.Context, userID uuid.UUID) ([]models.Group, error) {
	args := m.Called(ctx, userID)
	var r0 []models.Group
	if v := args.Get(0); v != nil {
		r0 = v.([]models.Group)
	}
	return r0, args.Error(1)
}

func (m *MockGroupService) Update(ctx context.Context, id uuid.UUID, p models.GroupPatch) (*models.Group, error) {
	args := m.Called(ctx, id, p)
	var r0 *models.Group
	if v := args.Get(0); v != nil {
		r0 = v.(*models.Group)
	}
	return r0, args.Error(1)
}

func (m *MockGroupService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGroupService) IsLeader(ctx context.Context, groupID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, groupID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockGroupService) AddMember(ctx context.Context, groupID, userID uuid.UUID, role models.MembershipRole) (*models.GroupMembership, error) {
	args := m.Called(ctx, groupID, userID, role)
	var r0 *models.GroupMembership
	if v := args.Get(0); v != nil {
		r0 = v.(*models.GroupMembership)
	}
	return r0, args.Error(1)
}

func (m *MockGroupService) RemoveMember(ctx context.Context, groupID, userID uuid.UUID) error {
	args := m.Called(ctx, groupID, userID)
	return args.Error(0)
}

func (m *MockGroupService) ListMembers(ctx context.Context, groupID uuid.UUID) ([]models.GroupMembership, error) {
	args := m.Called(ctx, groupID)
	var r0 []models.GroupMembership
	if v := args.Get(0); v != nil {
		r0 = v.([]models.GroupMembership)
	}
	return r0, args.Error(1)
}

// MockRoadmapService mocks handlers.RoadmapServiceInterface
type MockRoadmapService struct {
	mock.Mock
}

func (m *MockRoadmapService) Import(ctx context.Context, userID uuid.UUID, in models.RoadmapImport) (*models.Assignment, error) {
	args := m.Called(ctx, userID, in)
	var r0 *models.Assignment
	if v := args.Get(0); v != nil {
		r0 = v.(*models.Assignment)
	}
	return r0, args.Error(1)
}

func (m *MockRoadmapService) CreateTemplate(ctx context.Context, rm models.Roadmap) (*models.Roadmap, error) {
	args := m.Called(ctx, rm)
	var r0 *models.Roadmap
	if v := args.Get(0); v != nil {
		r0 = v.(*models.Roadmap)
	}
	return r0, args.Error(1)
}

func (m *MockRoadmapService) GetTemplate(ctx context.Context, id, userID uuid.UUID) (*models.Roadmap, error) {
	args := m.Called(ctx, id, userID)
	var r0 *models.Roadmap
	if v := args.Get(0); v != nil {
		r0 = v.(*models.Roadmap)
	}
	return r0, args.Error(1)
}

func (m *MockRoadmapService) ListTemplates(ctx context.Context, userID uuid.UUID) ([]models.Roadmap, error) {
	args := m.Called(ctx, userID)
	var r0 []models.Roadmap
	if v := args.Get(0); v != nil {
		r0 = v.([]models.Roadmap)
	}
	return r0, args.Error(1)
}

func (m *MockRoadmapService) ImportTemplate(ctx context.Context, id, userID uuid.UUID) (*models.Assignment, error) {
	args := m.Called(ctx, id, userID)
	var r0 *models.Assignment
	if v := args.Get(0); v != nil {
		r0 = v.(*models.Assignment)
	}
	return r0, args.Error(1)
}

// MockActivityService mocks handlers.ActivityServiceInterface
type MockActivityService struct {
	mock.Mock
}

func (m *MockActivityService) Record(ctx context.Context, workspaceID, userID uuid.UUID, entityType string, entityID uuid.UUID, action string, details any) error {
	args := m.Called(ctx, workspaceID, userID, entityType, entityID, action, details)
	return args.Error(0)
}

func (m *MockActivityService) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID, page paging.Request) ([]models.ActivityLog, int64, error) {
	args := m.Called(ctx, workspaceID, page)
	var r0 []models.ActivityLog
	if v := args.Get(0); v != nil {
		r0 = v.([]models.ActivityLog)
	}
	return r0, args.Get(1).(int64), args.Error(2)
}

// MockPinger mocks the database health check.
type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
