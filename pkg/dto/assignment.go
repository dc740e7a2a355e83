package dto

import (
	"time"

	"github.com/dimitrije/workspace-api/internal/models"
	"github.com/google/uuid"
)

type CreateAssignmentRequest struct {
	WorkspaceID         uuid.UUID           `json:"workspaceId"`
	Title               string              `json:"title"`
	Description         string              `json:"description"`
	AssignmentTypeKey   string              `json:"assignmentTypeKey"`
	TotalRewardPoints   int                 `json:"totalRewardPoints"`
	TotalEstimatedHours float64             `json:"totalEstimatedHours"`
	Deadline            *time.Time          `json:"deadline,omitempty"`
	TaskIDs             []uuid.UUID         `json:"taskIds"`
	NewTasks            []CreateTaskRequest `json:"newTasks"`
}

func (r CreateAssignmentRequest) ToInput(callerID uuid.UUID) (models.AssignmentInput, error) {
	var c checker
	c.check(r.WorkspaceID != uuid.Nil, "Workspace ID is required")
	in, err := r.fields(&c, true)
	if err != nil {
		return in, err
	}
	in.WorkspaceID = r.WorkspaceID
	in.TaskIDs = r.TaskIDs

	for _, nt := range r.NewTasks {
		// workspaceId is injected from the assignment.
		nt.WorkspaceID = r.WorkspaceID
		ti, err := nt.ToInput(callerID)
		if err != nil {
			return in, err
		}
		in.NewTasks = append(in.NewTasks, ti)
	}
	return in, nil
}

func (r CreateAssignmentRequest) fields(c *checker, typeRequired bool) (models.AssignmentInput, error) {
	c.required(r.Title, "Assignment title is required")
	c.maxLen(r.Title, 255, "Assignment title must not exceed 255 characters")
	c.maxLen(r.Description, 5000, "Description must not exceed 5000 characters")
	c.check(r.TotalRewardPoints >= 0, "Total reward points must be non-negative")
	c.nonNegative(r.TotalEstimatedHours, "Total estimated hours must be non-negative")

	var typ models.AssignmentType
	switch {
	case r.AssignmentTypeKey != "":
		t, ok := models.ParseAssignmentType(r.AssignmentTypeKey)
		c.check(ok, "Assignment type must be one of CUSTOM, ROADMAP")
		typ = t
	case typeRequired:
		c.check(false, "Assignment type is required")
	default:
		typ = models.AssignmentTypeCustom
	}
	if err := c.err(); err != nil {
		return models.AssignmentInput{}, err
	}

	return models.AssignmentInput{
		Title:               r.Title,
		Description:         r.Description,
		AssignmentTypeKey:   typ,
		TotalRewardPoints:   r.TotalRewardPoints,
		TotalEstimatedHours: r.TotalEstimatedHours,
		Deadline:            r.Deadline,
	}, nil
}

// UpdateAssignmentRequest overwrites every writable field.
type UpdateAssignmentRequest struct {
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	AssignmentTypeKey   string     `json:"assignmentTypeKey"`
	TotalRewardPoints   int        `json:"totalRewardPoints"`
	TotalEstimatedHours float64    `json:"totalEstimatedHours"`
	Deadline            *time.Time `json:"deadline,omitempty"`
	Version             *int       `json:"version,omitempty"`
}

func (r UpdateAssignmentRequest) ToInput() (models.AssignmentInput, error) {
	var c checker
	return CreateAssignmentRequest{
		Title:               r.Title,
		Description:         r.Description,
		AssignmentTypeKey:   r.AssignmentTypeKey,
		TotalRewardPoints:   r.TotalRewardPoints,
		TotalEstimatedHours: r.TotalEstimatedHours,
		Deadline:            r.Deadline,
	}.fields(&c, false)
}

type AssignmentTasksRequest struct {
	TaskIDs []uuid.UUID `json:"taskIds"`
}

func (r AssignmentTasksRequest) Validate() error {
	var c checker
	c.check(len(r.TaskIDs) > 0, "At least one task ID is required")
	for _, id := range r.TaskIDs {
		c.check(id != uuid.Nil, "Task ID cannot be null")
	}
	return c.err()
}
