package handlers

import (
	"context"
	"encoding/json"

	"github.com/dimitrije/workspace-api/internal/models"
	"github.com/dimitrije/workspace-api/internal/paging"
	"github.com/google/uuid"
)

// WorkspaceServiceInterface defines the methods used by handlers from WorkspaceService
type WorkspaceServiceInterface interface {
	Create(ctx context.Context, in models.WorkspaceInput) (*models.Workspace, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Workspace, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Workspace, error)
	ListAccessible(ctx context.Context, userID uuid.UUID) ([]models.Workspace, error)
	ListShared(ctx context.Context, userID uuid.UUID) ([]models.Workspace, error)
	ListByVisibility(ctx context.Context, visibility models.Visibility) ([]models.Workspace, error)
	SearchByName(ctx context.Context, name string) ([]models.Workspace, error)
	Update(ctx context.Context, id uuid.UUID, in models.WorkspaceInput, version *int) (*models.Workspace, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddUser(ctx context.Context, workspaceID, userID uuid.UUID, level models.AccessLevel) (*models.WorkspaceAccess, error)
	RemoveUser(ctx context.Context, workspaceID, userID uuid.UUID) error
	UpdateAccessLevel(ctx context.Context, workspaceID, userID uuid.UUID, level models.AccessLevel) (*models.WorkspaceAccess, error)
	GetWorkspaceUsers(ctx context.Context, workspaceID uuid.UUID) ([]models.WorkspaceAccess, error)
	HasUserAccess(ctx context.Context, workspaceID, userID uuid.UUID) (bool, error)
	CanWrite(ctx context.Context, workspaceID, userID uuid.UUID) (bool, error)
	CanAdminister(ctx context.Context, workspaceID, userID uuid.UUID) (bool, error)
	AssignmentCount(ctx context.Context, workspaceID uuid.UUID) (int, error)
}

// AssignmentServiceInterface defines the methods used by handlers from AssignmentService
type AssignmentServiceInterface interface {
	Create(ctx context.Context, in models.AssignmentInput, userID uuid.UUID) (*models.Assignment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Assignment, error)
	WorkspaceOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	List(ctx context.Context, userID uuid.UUID, page paging.Request) ([]models.Assignment, int64, error)
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID, page paging.Request) ([]models.Assignment, int64, error)
	ListOverdue(ctx context.Context, workspaceID uuid.UUID) ([]models.Assignment, error)
	Update(ctx context.Context, id uuid.UUID, in models.AssignmentInput, version *int, userID uuid.UUID) (*models.Assignment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddTasks(ctx context.Context, id uuid.UUID, taskIDs []uuid.UUID) (*models.Assignment, error)
	RemoveTasks(ctx context.Context, id uuid.UUID, taskIDs []uuid.UUID) (*models.Assignment, error)
	ListTasks(ctx context.Context, id uuid.UUID) ([]models.Task, error)
	AssignUsersToAllTasks(ctx context.Context, id uuid.UUID, userIDs []uuid.UUID, assignedBy uuid.UUID) (int, error)
	UnassignUsersFromAllTasks(ctx context.Context, id uuid.UUID, userIDs []uuid.UUID) (int64, error)
}

// TaskServiceInterface defines the methods used by handlers from TaskService
type TaskServiceInterface interface {
	Create(ctx context.Context, in models.TaskInput) (*models.Task, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
	WorkspaceOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID, page paging.Request) ([]models.Task, int64, error)
	ListByAssignment(ctx context.Context, assignmentID uuid.UUID, page paging.Request) ([]models.Task, int64, error)
	ListByAssignee(ctx context.Context, userID uuid.UUID, page paging.Request) ([]models.Task, int64, error)
	ListByReporter(ctx context.Context, userID uuid.UUID, page paging.Request) ([]models.Task, int64, error)
	ListByStatus(ctx context.Context, workspaceID uuid.UUID, status models.TaskStatus, page paging.Request) ([]models.Task, int64, error)
	ListOverdue(ctx context.Context, workspaceID uuid.UUID, page paging.Request) ([]models.Task, int64, error)
	Update(ctx context.Context, id uuid.UUID, p models.TaskPatch) (*models.Task, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.TaskStatus) (*models.Task, error)
	AssignTask(ctx context.Context, id, assigneeID uuid.UUID) (*models.Task, error)
	AddTimeSpent(ctx context.Context, id uuid.UUID, hours float64) (*models.Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TaskAssignmentServiceInterface defines the methods used by handlers from TaskAssignmentService
type TaskAssignmentServiceInterface interface {
	AssignUsers(ctx context.Context, taskID uuid.UUID, userIDs []uuid.UUID, assignedBy uuid.UUID) ([]models.TaskAssignment, error)
	UnassignUsers(ctx context.Context, taskID uuid.UUID, userIDs []uuid.UUID) error
	Update(ctx context.Context, p models.TaskAssignmentPatch) (*models.TaskAssignment, error)
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]models.TaskAssignment, error)
	ListByUser(ctx context.Context, userID uuid.UUID, status *models.TaskStatus) ([]models.TaskAssignment, error)
	ListOverdue(ctx context.Context, userID uuid.UUID) ([]models.TaskAssignment, error)
}

// TagServiceInterface defines the methods used by handlers from TagService
type TagServiceInterface interface {
	Create(ctx context.Context, workspaceID uuid.UUID, name, color, description string) (*models.Tag, error)
	GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*models.Tag, error)
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]models.Tag, error)
	Update(ctx context.Context, workspaceID, id uuid.UUID, p models.TagPatch) (*models.Tag, error)
	Delete(ctx context.Context, workspaceID, id uuid.UUID) error
}

// CommentServiceInterface defines the methods used by handlers from CommentService
type CommentServiceInterface interface {
	Create(ctx context.Context, taskID, userID uuid.UUID, body string, attachments json.RawMessage) (*models.Comment, error)
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]models.Comment, error)
	Update(ctx context.Context, taskID, commentID, userID uuid.UUID, body string, attachments json.RawMessage, version *int) (*models.Comment, error)
	Delete(ctx context.Context, taskID, commentID, userID uuid.UUID) error
}

// GroupServiceInterface defines the methods used by handlers from GroupService
type GroupServiceInterface interface {
	Create(ctx context.Context, g models.Group) (*models.Group, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Group, error)
	GetBySlug(ctx context.Context, slug string) (*models.Group, error)
	ListVisible(ctx context.Context, userID uuid.UUID) ([]models.Group, error)
	Update(ctx context.Context, id uuid.UUID, p models.GroupPatch) (*models.Group, error)
	Delete(ctx context.Context, id uuid.UUID) error
	IsLeader(ctx context.Context, groupID, userID uuid.UUID) (bool, error)
	AddMember(ctx context.Context, groupID, userID uuid.UUID, role models.MembershipRole) (*models.GroupMembership, error)
	RemoveMember(ctx context.Context, groupID, userID uuid.UUID) error
	ListMembers(ctx context.Context, groupID uuid.UUID) ([]models.GroupMembership, error)
}

// RoadmapServiceInterface defines the methods used by handlers from RoadmapService
type RoadmapServiceInterface interface {
	Import(ctx context.Context, userID uuid.UUID, in models.RoadmapImport) (*models.Assignment, error)
	CreateTemplate(ctx context.Context, rm models.Roadmap) (*models.Roadmap, error)
	GetTemplate(ctx context.Context, id, userID uuid.UUID) (*models.Roadmap, error)
	ListTemplates(ctx context.Context, userID uuid.UUID) ([]models.Roadmap, error)
	ImportTemplate(ctx context.Context, id, userID uuid.UUID) (*models.Assignment, error)
}

// ActivityServiceInterface defines the methods used by handlers from ActivityService
type ActivityServiceInterface interface {
	Record(ctx context.Context, workspaceID, userID uuid.UUID, entityType string, entityID uuid.UUID, action string, details any) error
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID, page paging.Request) ([]models.ActivityLog, int64, error)
}

// Pinger is satisfied by *database.DB.
type Pinger interface {
	Ping(ctx context.Context) error
}
