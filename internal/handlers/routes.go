package handlers

import (
	"net/http"

	"github.com/m1z23r/drift/pkg/drift"
)

// Handlers bundles every route handler mounted by NewRouter.
type Handlers struct {
	Health         *HealthHandler
	Workspace      *WorkspaceHandler
	Assignment     *AssignmentHandler
	Task           *TaskHandler
	TaskAssignment *TaskAssignmentHandler
	Tag            *TagHandler
	Comment        *CommentHandler
	Group          *GroupHandler
	Roadmap        *RoadmapHandler
	Activity       *ActivityHandler
}

// RouterConfig carries the engine mode and the middleware chain. Public
// runs before the health route; Protected runs for everything else.
type RouterConfig struct {
	Release   bool
	Public    []drift.HandlerFunc
	Protected []drift.HandlerFunc
}

func NewRouter(cfg RouterConfig, h Handlers) http.Handler {
	app := drift.New()
	if cfg.Release {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}
	for _, mw := range cfg.Public {
		app.Use(mw)
	}

	api := app.Group("/api/v1")
	api.Get("/health", h.Health.Check)

	protected := api.Group("")
	for _, mw := range cfg.Protected {
		protected.Use(mw)
	}

	protected.Get("/workspaces", h.Workspace.List)
	protected.Post("/workspaces", h.Workspace.Create)
	protected.Get("/workspaces/:workspaceId", h.Workspace.Get)
	protected.Patch("/workspaces/:workspaceId", h.Workspace.Update)
	protected.Delete("/workspaces/:workspaceId", h.Workspace.Delete)
	protected.Get("/workspaces/:workspaceId/users", h.Workspace.ListUsers)
	protected.Post("/workspaces/:workspaceId/users", h.Workspace.AddUser)
	protected.Get("/workspaces/:workspaceId/users/:userId", h.Workspace.CheckAccess)
	protected.Put("/workspaces/:workspaceId/users/:userId", h.Workspace.UpdateUserAccess)
	protected.Delete("/workspaces/:workspaceId/users/:userId", h.Workspace.RemoveUser)
	protected.Get("/workspaces/:workspaceId/assignment-count", h.Workspace.AssignmentCount)

	protected.Get("/workspaces/:workspaceId/assignments", h.Assignment.ListByWorkspace)
	protected.Get("/workspaces/:workspaceId/overdue-assignments", h.Assignment.ListOverdue)
	protected.Get("/workspaces/:workspaceId/tasks", h.Task.ListByWorkspace)
	protected.Get("/workspaces/:workspaceId/activity", h.Activity.List)

	protected.Get("/workspaces/:workspaceId/tags", h.Tag.List)
	protected.Post("/workspaces/:workspaceId/tags", h.Tag.Create)
	protected.Get("/workspaces/:workspaceId/tags/:tagId", h.Tag.Get)
	protected.Patch("/workspaces/:workspaceId/tags/:tagId", h.Tag.Update)
	protected.Delete("/workspaces/:workspaceId/tags/:tagId", h.Tag.Delete)

	protected.Get("/assignments", h.Assignment.List)
	protected.Post("/assignments", h.Assignment.Create)
	protected.Get("/assignments/:assignmentId", h.Assignment.Get)
	protected.Patch("/assignments/:assignmentId", h.Assignment.Update)
	protected.Delete("/assignments/:assignmentId", h.Assignment.Delete)
	protected.Get("/assignments/:assignmentId/tasks", h.Assignment.ListTasks)
	protected.Post("/assignments/:assignmentId/tasks", h.Assignment.AddTasks)
	protected.Delete("/assignments/:assignmentId/tasks", h.Assignment.RemoveTasks)
	protected.Post("/assignments/:assignmentId/users", h.Assignment.AssignUsers)
	protected.Delete("/assignments/:assignmentId/users", h.Assignment.UnassignUsers)

	protected.Get("/tasks", h.Task.List)
	protected.Post("/tasks", h.Task.Create)
	protected.Get("/tasks/:taskId", h.Task.Get)
	protected.Patch("/tasks/:taskId", h.Task.Update)
	protected.Delete("/tasks/:taskId", h.Task.Delete)
	protected.Put("/tasks/:taskId/status", h.Task.UpdateStatus)
	protected.Put("/tasks/:taskId/assign", h.Task.Assign)
	protected.Post("/tasks/:taskId/time", h.Task.AddTimeSpent)

	protected.Get("/tasks/:taskId/assignees", h.TaskAssignment.ListByTask)
	protected.Post("/tasks/:taskId/assignees", h.TaskAssignment.Assign)
	protected.Delete("/tasks/:taskId/assignees", h.TaskAssignment.Unassign)
	protected.Patch("/task-assignments", h.TaskAssignment.Update)
	protected.Get("/task-assignments/me", h.TaskAssignment.ListMine)
	protected.Get("/task-assignments/overdue", h.TaskAssignment.ListOverdue)

	protected.Get("/tasks/:taskId/comments", h.Comment.List)
	protected.Post("/tasks/:taskId/comments", h.Comment.Create)
	protected.Patch("/tasks/:taskId/comments/:commentId", h.Comment.Update)
	protected.Delete("/tasks/:taskId/comments/:commentId", h.Comment.Delete)

	protected.Get("/groups", h.Group.List)
	protected.Post("/groups", h.Group.Create)
	protected.Get("/groups/:groupId", h.Group.Get)
	protected.Patch("/groups/:groupId", h.Group.Update)
	protected.Delete("/groups/:groupId", h.Group.Delete)
	protected.Get("/groups/:groupId/members", h.Group.ListMembers)
	protected.Post("/groups/:groupId/members", h.Group.AddMember)
	protected.Delete("/groups/:groupId/members/:userId", h.Group.RemoveMember)

	protected.Get("/roadmaps", h.Roadmap.List)
	protected.Post("/roadmaps", h.Roadmap.Create)
	protected.Get("/roadmaps/:roadmapId", h.Roadmap.Get)
	protected.Post("/roadmaps/:roadmapId/import", h.Roadmap.Import)

	roadmap := app.Group("/api/roadmap")
	for _, mw := range cfg.Protected {
		roadmap.Use(mw)
	}
	roadmap.Post("/add-assignment", h.Roadmap.AddAssignment)

	return app
}
