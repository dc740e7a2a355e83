package models

import (
	"strings"
	"time"

	"github.com/dimitrije/workspace-api/internal/dates"
	"github.com/google/uuid"
)

type TaskStatus string

// Canonical task statuses. The TODO/IN_PROGRESS/DONE names seen in older
// clients are not accepted.
const (
	TaskStatusBacklog   TaskStatus = "BACKLOG"
	TaskStatusOngoing   TaskStatus = "ONGOING"
	TaskStatusCompleted TaskStatus = "COMPLETED"
	TaskStatusCancelled TaskStatus = "CANCELLED"
)

const DefaultTaskPriority = 3

func ParseTaskStatus(s string) (TaskStatus, bool) {
	switch st := TaskStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case TaskStatusBacklog, TaskStatusOngoing, TaskStatusCompleted, TaskStatusCancelled:
		return st, true
	}
	return "", false
}

type Task struct {
	ID             uuid.UUID  `json:"id"`
	WorkspaceID    uuid.UUID  `json:"workspaceId"`
	AssignmentID   *uuid.UUID `json:"assignmentId,omitempty"`
	AssigneeUserID *uuid.UUID `json:"assigneeUserId,omitempty"`
	ReporterUserID *uuid.UUID `json:"reporterUserId,omitempty"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	TaskTypeKey    string     `json:"taskTypeKey"`
	StatusKey      TaskStatus `json:"statusKey"`
	Priority       int        `json:"priority"`
	RewardPoints   int        `json:"rewardPoints"`
	EstimatedHours float64    `json:"estimatedHours"`
	SpentHours     float64    `json:"spentHours"`
	TitleColor     string     `json:"titleColor"`
	OrderNumber    int        `json:"orderNumber"`
	Topic          string     `json:"topic"`
	Deadline       *time.Time `json:"deadline,omitempty"`
	StartedAt      *time.Time `json:"startedAt,omitempty"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	Version        int        `json:"version"`

	CommentCount int   `json:"commentCount"`
	Overdue      bool  `json:"overdue"`
	Tags         []Tag `json:"tags"`
}

func (t *Task) IsOverdue(now time.Time) bool {
	return dates.IsPast(t.Deadline, now) && t.StatusKey != TaskStatusCompleted
}

// TaskInput creates a task. Zero values fall back to column defaults
// (BACKLOG status, priority 3).
type TaskInput struct {
	WorkspaceID    uuid.UUID
	AssignmentID   *uuid.UUID
	AssigneeUserID *uuid.UUID
	ReporterUserID *uuid.UUID
	Title          string
	Description    string
	TaskTypeKey    string
	StatusKey      TaskStatus
	Priority       int
	RewardPoints   int
	EstimatedHours float64
	SpentHours     float64
	TitleColor     string
	OrderNumber    int
	Topic          string
	Deadline       *time.Time
	TagIDs         []uuid.UUID
}

// TaskPatch is a partial update. Nil fields are left untouched; a non-nil
// TagIDs replaces the task's tags.
type TaskPatch struct {
	AssigneeUserID *uuid.UUID
	Title          *string
	Description    *string
	TaskTypeKey    *string
	StatusKey      *TaskStatus
	Priority       *int
	RewardPoints   *int
	EstimatedHours *float64
	SpentHours     *float64
	TitleColor     *string
	OrderNumber    *int
	Topic          *string
	Deadline       *time.Time
	TagIDs         []uuid.UUID
	Version        *int
}

func (p TaskPatch) IsEmpty() bool {
	return p.AssigneeUserID == nil && p.Title == nil && p.Description == nil &&
		p.TaskTypeKey == nil && p.StatusKey == nil && p.Priority == nil &&
		p.RewardPoints == nil && p.EstimatedHours == nil && p.SpentHours == nil &&
		p.TitleColor == nil && p.OrderNumber == nil && p.Topic == nil &&
		p.Deadline == nil && p.TagIDs == nil
}
