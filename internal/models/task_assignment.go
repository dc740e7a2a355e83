package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type SubmissionStatus string

const (
	SubmissionNotSubmitted  SubmissionStatus = "NOT_SUBMITTED"
	SubmissionSubmitted     SubmissionStatus = "SUBMITTED"
	SubmissionUnderReview   SubmissionStatus = "UNDER_REVIEW"
	SubmissionApproved      SubmissionStatus = "APPROVED"
	SubmissionNeedsRevision SubmissionStatus = "NEEDS_REVISION"
)

func ParseSubmissionStatus(s string) (SubmissionStatus, bool) {
	switch st := SubmissionStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case SubmissionNotSubmitted, SubmissionSubmitted, SubmissionUnderReview,
		SubmissionApproved, SubmissionNeedsRevision:
		return st, true
	}
	return "", false
}

// TaskAssignment is one user's instance of working a task.
type TaskAssignment struct {
	ID                 uuid.UUID        `json:"id"`
	TaskID             uuid.UUID        `json:"taskId"`
	TaskTitle          string           `json:"taskTitle"`
	AssignedUserID     uuid.UUID        `json:"assignedUserId"`
	AssignedByUserID   *uuid.UUID       `json:"assignedByUserId,omitempty"`
	Status             TaskStatus       `json:"status"`
	SpentHours         float64          `json:"spentHours"`
	RewardPointsEarned *int             `json:"rewardPointsEarned,omitempty"`
	StartedAt          *time.Time       `json:"startedAt,omitempty"`
	CompletedAt        *time.Time       `json:"completedAt,omitempty"`
	AssignedAt         time.Time        `json:"assignedAt"`
	UserNotes          string           `json:"userNotes"`
	SubmissionText     string           `json:"submissionText"`
	SubmissionURL      string           `json:"submissionUrl"`
	SubmissionStatus   SubmissionStatus `json:"submissionStatus"`
	GradeReceived      *float64         `json:"gradeReceived,omitempty"`
	Feedback           string           `json:"feedback"`
	CreatedAt          time.Time        `json:"createdAt"`
	UpdatedAt          time.Time        `json:"updatedAt"`
	Version            int              `json:"version"`
}

// TaskAssignmentPatch is a partial progress update keyed by (TaskID, UserID).
type TaskAssignmentPatch struct {
	TaskID           uuid.UUID
	UserID           uuid.UUID
	Status           *TaskStatus
	SpentHours       *float64
	UserNotes        *string
	SubmissionText   *string
	SubmissionURL    *string
	SubmissionStatus *SubmissionStatus
	GradeReceived    *float64
	Feedback         *string
}

// ApplyProgress applies p to ta. Entering ONGOING stamps StartedAt and
// entering COMPLETED stamps CompletedAt and awards the task's reward points,
// each only once; reverting a status never clears them.
func (ta *TaskAssignment) ApplyProgress(p TaskAssignmentPatch, taskRewardPoints int, now time.Time) {
	if p.Status != nil {
		ta.Status = *p.Status
		switch *p.Status {
		case TaskStatusOngoing:
			if ta.StartedAt == nil {
				ta.StartedAt = &now
			}
		case TaskStatusCompleted:
			if ta.CompletedAt == nil {
				ta.CompletedAt = &now
			}
			if ta.RewardPointsEarned == nil {
				points := taskRewardPoints
				ta.RewardPointsEarned = &points
			}
		}
	}
	if p.SpentHours != nil {
		ta.SpentHours = *p.SpentHours
	}
	if p.UserNotes != nil {
		ta.UserNotes = *p.UserNotes
	}
	if p.SubmissionText != nil {
		ta.SubmissionText = *p.SubmissionText
	}
	if p.SubmissionURL != nil {
		ta.SubmissionURL = *p.SubmissionURL
	}
	if p.SubmissionStatus != nil {
		ta.SubmissionStatus = *p.SubmissionStatus
	}
	if p.GradeReceived != nil {
		grade := *p.GradeReceived
		ta.GradeReceived = &grade
	}
	if p.Feedback != nil {
		ta.Feedback = *p.Feedback
	}
}
