package dto

import (
	"github.com/dimitrije/workspace-api/internal/models"
	"github.com/dimitrije/workspace-api/internal/validators"
	"github.com/google/uuid"
)

type AssignUsersRequest struct {
	UserIDs []uuid.UUID `json:"userIds"`
}

func (r AssignUsersRequest) Validate() error {
	var c checker
	c.check(len(r.UserIDs) > 0, "At least one user ID is required")
	for _, id := range r.UserIDs {
		c.check(id != uuid.Nil, "User ID cannot be null")
	}
	return c.err()
}

type AssignUsersResponse struct {
	Count       int                     `json:"count"`
	Assignments []models.TaskAssignment `json:"assignments,omitempty"`
}

type UpdateTaskAssignmentRequest struct {
	TaskID           uuid.UUID  `json:"taskId"`
	UserID           *uuid.UUID `json:"userId,omitempty"`
	Status           *string    `json:"status,omitempty"`
	SpentHours       *float64   `json:"spentHours,omitempty"`
	UserNotes        *string    `json:"userNotes,omitempty"`
	SubmissionText   *string    `json:"submissionText,omitempty"`
	SubmissionURL    *string    `json:"submissionUrl,omitempty"`
	SubmissionStatus *string    `json:"submissionStatus,omitempty"`
	GradeReceived    *float64   `json:"gradeReceived,omitempty"`
	Feedback         *string    `json:"feedback,omitempty"`
}

// ToPatch validates the request. The user defaults to callerID.
func (r UpdateTaskAssignmentRequest) ToPatch(callerID uuid.UUID) (models.TaskAssignmentPatch, error) {
	var c checker
	c.check(r.TaskID != uuid.Nil, "Task ID is required")
	userID := callerID
	if r.UserID != nil {
		userID = *r.UserID
	}
	c.check(userID != uuid.Nil, "User ID is required")

	if r.SpentHours != nil {
		c.nonNegative(*r.SpentHours, "Spent hours must be non-negative")
	}
	c.optionalMaxLen(r.UserNotes, 5000, "User notes must not exceed 5000 characters")
	c.optionalMaxLen(r.SubmissionText, 5000, "Submission text must not exceed 5000 characters")
	c.optionalMaxLen(r.Feedback, 2000, "Feedback must not exceed 2000 characters")
	if r.SubmissionURL != nil && *r.SubmissionURL != "" {
		c.check(validators.IsHTTPURL(*r.SubmissionURL), "Submission URL must be an http or https URL")
	}
	if r.GradeReceived != nil {
		c.check(validators.InRange(*r.GradeReceived, 0.0, 100.0), "Grade must be between 0 and 100")
	}

	p := models.TaskAssignmentPatch{
		TaskID:         r.TaskID,
		UserID:         userID,
		SpentHours:     r.SpentHours,
		UserNotes:      r.UserNotes,
		SubmissionText: r.SubmissionText,
		SubmissionURL:  r.SubmissionURL,
		GradeReceived:  r.GradeReceived,
		Feedback:       r.Feedback,
	}
	if r.Status != nil {
		s, ok := models.ParseTaskStatus(*r.Status)
		c.check(ok, "Status must be one of BACKLOG, ONGOING, COMPLETED, CANCELLED")
		p.Status = &s
	}
	if r.SubmissionStatus != nil {
		s, ok := models.ParseSubmissionStatus(*r.SubmissionStatus)
		c.check(ok, "Submission status must be one of NOT_SUBMITTED, SUBMITTED, UNDER_REVIEW, APPROVED, NEEDS_REVISION")
		p.SubmissionStatus = &s
	}
	if err := c.err(); err != nil {
		return models.TaskAssignmentPatch{}, err
	}
	return p, nil
}
