package dto

import (
	"time"

	"github.com/dimitrije/workspace-api/internal/models"
	"github.com/dimitrije/workspace-api/internal/sanitize"
	"github.com/google/uuid"
)

type CreateTaskRequest struct {
	WorkspaceID    uuid.UUID   `json:"workspaceId"`
	AssignmentID   *uuid.UUID  `json:"assignmentId,omitempty"`
	AssigneeUserID *uuid.UUID  `json:"assigneeUserId,omitempty"`
	ReporterUserID *uuid.UUID  `json:"reporterUserId,omitempty"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	TaskTypeKey    string      `json:"taskTypeKey"`
	StatusKey      string      `json:"statusKey"`
	Priority       *int        `json:"priority,omitempty"`
	RewardPoints   int         `json:"rewardPoints"`
	EstimatedHours float64     `json:"estimatedHours"`
	SpentHours     float64     `json:"spentHours"`
	TitleColor     string      `json:"titleColor"`
	OrderNumber    int         `json:"orderNumber"`
	Topic          string      `json:"topic"`
	Deadline       *time.Time  `json:"deadline,omitempty"`
	TagIDs         []uuid.UUID `json:"tagIds"`
}

// ToInput validates the request. The reporter defaults to callerID, the
// status to BACKLOG and the priority to 3.
func (r CreateTaskRequest) ToInput(callerID uuid.UUID) (models.TaskInput, error) {
	var c checker
	c.check(r.WorkspaceID != uuid.Nil, "Workspace ID is required")
	c.required(r.Title, "Task title is required")
	c.maxLen(r.Title, 255, "Task title must not exceed 255 characters")
	c.maxLen(r.Description, 5000, "Description must not exceed 5000 characters")
	c.maxLen(r.TaskTypeKey, 100, "Task type key must not exceed 100 characters")
	c.maxLen(r.Topic, 255, "Topic must not exceed 255 characters")
	c.check(r.RewardPoints >= 0, "Reward points must be non-negative")
	c.nonNegative(r.EstimatedHours, "Estimated hours must be non-negative")
	c.nonNegative(r.SpentHours, "Spent hours must be non-negative")
	c.hexColor(r.TitleColor, "Title color must be a valid hex color")

	priority := models.DefaultTaskPriority
	if r.Priority != nil {
		priority = *r.Priority
		c.check(priority >= 1 && priority <= 5, "Priority must be between 1 and 5")
	}

	status := models.TaskStatusBacklog
	if r.StatusKey != "" {
		s, ok := models.ParseTaskStatus(r.StatusKey)
		c.check(ok, "Status must be one of BACKLOG, ONGOING, COMPLETED, CANCELLED")
		status = s
	}
	if err := c.err(); err != nil {
		return models.TaskInput{}, err
	}

	reporter := r.ReporterUserID
	if reporter == nil && callerID != uuid.Nil {
		reporter = &callerID
	}

	return models.TaskInput{
		WorkspaceID:    r.WorkspaceID,
		AssignmentID:   r.AssignmentID,
		AssigneeUserID: r.AssigneeUserID,
		ReporterUserID: reporter,
		Title:          r.Title,
		Description:    sanitize.Sanitize(r.Description),
		TaskTypeKey:    r.TaskTypeKey,
		StatusKey:      status,
		Priority:       priority,
		RewardPoints:   r.RewardPoints,
		EstimatedHours: r.EstimatedHours,
		SpentHours:     r.SpentHours,
		TitleColor:     r.TitleColor,
		OrderNumber:    r.OrderNumber,
		Topic:          r.Topic,
		Deadline:       r.Deadline,
		TagIDs:         r.TagIDs,
	}, nil
}

type UpdateTaskRequest struct {
	AssigneeUserID *uuid.UUID  `json:"assigneeUserId,omitempty"`
	Title          *string     `json:"title,omitempty"`
	Description    *string     `json:"description,omitempty"`
	TaskTypeKey    *string     `json:"taskTypeKey,omitempty"`
	StatusKey      *string     `json:"statusKey,omitempty"`
	Priority       *int        `json:"priority,omitempty"`
	RewardPoints   *int        `json:"rewardPoints,omitempty"`
	EstimatedHours *float64    `json:"estimatedHours,omitempty"`
	SpentHours     *float64    `json:"spentHours,omitempty"`
	TitleColor     *string     `json:"titleColor,omitempty"`
	OrderNumber    *int        `json:"orderNumber,omitempty"`
	Topic          *string     `json:"topic,omitempty"`
	Deadline       *time.Time  `json:"deadline,omitempty"`
	TagIDs         []uuid.UUID `json:"tagIds,omitempty"`
	Version        *int        `json:"version,omitempty"`
}

func (r UpdateTaskRequest) ToPatch() (models.TaskPatch, error) {
	var c checker
	if r.Title != nil {
		c.required(*r.Title, "Task title must not be blank")
	}
	c.optionalMaxLen(r.Title, 255, "Task title must not exceed 255 characters")
	c.optionalMaxLen(r.Description, 5000, "Description must not exceed 5000 characters")
	c.optionalMaxLen(r.TaskTypeKey, 100, "Task type key must not exceed 100 characters")
	c.optionalMaxLen(r.Topic, 255, "Topic must not exceed 255 characters")
	if r.Priority != nil {
		c.check(*r.Priority >= 1 && *r.Priority <= 5, "Priority must be between 1 and 5")
	}
	if r.RewardPoints != nil {
		c.check(*r.RewardPoints >= 0, "Reward points must be non-negative")
	}
	if r.EstimatedHours != nil {
		c.nonNegative(*r.EstimatedHours, "Estimated hours must be non-negative")
	}
	if r.SpentHours != nil {
		c.nonNegative(*r.SpentHours, "Spent hours must be non-negative")
	}
	if r.TitleColor != nil {
		c.hexColor(*r.TitleColor, "Title color must be a valid hex color")
	}

	var status *models.TaskStatus
	if r.StatusKey != nil {
		s, ok := models.ParseTaskStatus(*r.StatusKey)
		c.check(ok, "Status must be one of BACKLOG, ONGOING, COMPLETED, CANCELLED")
		status = &s
	}
	if err := c.err(); err != nil {
		return models.TaskPatch{}, err
	}

	var description *string
	if r.Description != nil {
		d := sanitize.Sanitize(*r.Description)
		description = &d
	}

	return models.TaskPatch{
		AssigneeUserID: r.AssigneeUserID,
		Title:          r.Title,
		Description:    description,
		TaskTypeKey:    r.TaskTypeKey,
		StatusKey:      status,
		Priority:       r.Priority,
		RewardPoints:   r.RewardPoints,
		EstimatedHours: r.EstimatedHours,
		SpentHours:     r.SpentHours,
		TitleColor:     r.TitleColor,
		OrderNumber:    r.OrderNumber,
		Topic:          r.Topic,
		Deadline:       r.Deadline,
		TagIDs:         r.TagIDs,
		Version:        r.Version,
	}, nil
}

type TimeSpentRequest struct {
	Hours float64 `json:"hours"`
}
