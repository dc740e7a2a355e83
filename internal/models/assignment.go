package models

import (
	"strings"
	"time"

	"github.com/dimitrije/workspace-api/internal/dates"
	"github.com/google/uuid"
)

type AssignmentType string

const (
	AssignmentTypeCustom  AssignmentType = "CUSTOM"
	AssignmentTypeRoadmap AssignmentType = "ROADMAP"
)

func ParseAssignmentType(s string) (AssignmentType, bool) {
	switch t := AssignmentType(strings.ToUpper(strings.TrimSpace(s))); t {
	case AssignmentTypeCustom, AssignmentTypeRoadmap:
		return t, true
	}
	return "", false
}

type Assignment struct {
	ID                  uuid.UUID      `json:"id"`
	WorkspaceID         uuid.UUID      `json:"workspaceId"`
	Title               string         `json:"title"`
	Description         string         `json:"description"`
	AssignmentTypeKey   AssignmentType `json:"assignmentTypeKey"`
	TotalRewardPoints   int            `json:"totalRewardPoints"`
	TotalEstimatedHours float64        `json:"totalEstimatedHours"`
	Deadline            *time.Time     `json:"deadline,omitempty"`
	CreatedBy           *uuid.UUID     `json:"createdBy,omitempty"`
	UpdatedBy           *uuid.UUID     `json:"updatedBy,omitempty"`
	CreatedAt           time.Time      `json:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`
	Version             int            `json:"version"`

	Overdue bool            `json:"overdue"`
	Stats   AssignmentStats `json:"stats"`
}

// AssignmentStats is derived on every read.
type AssignmentStats struct {
	TotalTasks           int     `json:"totalTasks"`
	CompletedTasks       int     `json:"completedTasks"`
	PendingTasks         int     `json:"pendingTasks"`
	CompletionPercentage float64 `json:"completionPercentage"`
	TotalSpentHours      float64 `json:"totalSpentHours"`
}

// NewAssignmentStats derives pending and percentage from the raw counts.
// The percentage is 0 for an assignment with no tasks.
func NewAssignmentStats(total, completed int, spentHours float64) AssignmentStats {
	stats := AssignmentStats{
		TotalTasks:      total,
		CompletedTasks:  completed,
		PendingTasks:    total - completed,
		TotalSpentHours: spentHours,
	}
	if total > 0 {
		stats.CompletionPercentage = float64(completed) / float64(total) * 100
	}
	return stats
}

// AssignmentInput carries the writable assignment fields. TaskIDs attach
// existing tasks and NewTasks are created under the assignment on create.
type AssignmentInput struct {
	WorkspaceID         uuid.UUID
	Title               string
	Description         string
	AssignmentTypeKey   AssignmentType
	TotalRewardPoints   int
	TotalEstimatedHours float64
	Deadline            *time.Time
	TaskIDs             []uuid.UUID
	NewTasks            []TaskInput
}

func (a *Assignment) IsOverdue(now time.Time) bool {
	return dates.IsPast(a.Deadline, now)
}
