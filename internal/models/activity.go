package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Entity types recorded in the activity log.
const (
	EntityWorkspace      = "WORKSPACE"
	EntityAssignment     = "ASSIGNMENT"
	EntityTask           = "TASK"
	EntityTag            = "TAG"
	EntityTaskAssignment = "TASK_ASSIGNMENT"
)

// Action keys recorded in the activity log.
const (
	ActionCreated         = "CREATED"
	ActionUpdated         = "UPDATED"
	ActionDeleted         = "DELETED"
	ActionStatusChanged   = "STATUS_CHANGED"
	ActionAssigned        = "ASSIGNED"
	ActionUnassigned      = "UNASSIGNED"
	ActionTimeLogged      = "TIME_LOGGED"
	ActionAccessGranted   = "ACCESS_GRANTED"
	ActionAccessRevoked   = "ACCESS_REVOKED"
	ActionAccessChanged   = "ACCESS_CHANGED"
	ActionTasksAttached   = "TASKS_ATTACHED"
	ActionTasksDetached   = "TASKS_DETACHED"
	ActionProgressUpdated = "PROGRESS_UPDATED"
)

type ActivityLog struct {
	ID          uuid.UUID       `json:"id"`
	WorkspaceID uuid.UUID       `json:"workspaceId"`
	UserID      uuid.UUID       `json:"userId"`
	EntityType  string          `json:"entityType"`
	EntityID    uuid.UUID       `json:"entityId"`
	ActionKey   string          `json:"actionKey"`
	Details     json.RawMessage `json:"details"`
	CreatedAt   time.Time       `json:"createdAt"`
}
