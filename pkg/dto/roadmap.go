package dto

import (
	"encoding/json"

	"github.com/dimitrije/workspace-api/internal/models"
)

type RoadmapTaskRequest struct {
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	RewardPoints   int     `json:"rewardPoints"`
	EstimatedHours float64 `json:"estimatedHours"`
	TitleColor     string  `json:"titleColor"`
	DaysToComplete int     `json:"daysToComplete"`
	Topic          string  `json:"topic"`
	OrderNumber    int     `json:"orderNumber"`
}

// RoadmapAssignmentRequest is the body of POST /api/roadmap/add-assignment.
type RoadmapAssignmentRequest struct {
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Tasks       []RoadmapTaskRequest `json:"tasks"`
}

func (r RoadmapAssignmentRequest) ToImport() (models.RoadmapImport, error) {
	var c checker
	c.required(r.Title, "Assignment title is required")
	c.maxLen(r.Title, 255, "Assignment title must not exceed 255 characters")
	c.required(r.Description, "Assignment description is required")
	c.maxLen(r.Description, 5000, "Description must not exceed 5000 characters")
	for _, t := range r.Tasks {
		c.required(t.Title, "Task title is required")
		c.maxLen(t.Title, 255, "Task title must not exceed 255 characters")
		c.maxLen(t.Topic, 255, "Topic must not exceed 255 characters")
		c.check(t.RewardPoints >= 0, "Reward points must be non-negative")
		c.check(t.DaysToComplete >= 0, "Days to complete must be non-negative")
		c.hexColor(t.TitleColor, "Title color must be a valid hex color")
	}
	if err := c.err(); err != nil {
		return models.RoadmapImport{}, err
	}

	in := models.RoadmapImport{Title: r.Title, Description: r.Description}
	for _, t := range r.Tasks {
		in.Steps = append(in.Steps, models.RoadmapImportStep{
			Title:          t.Title,
			Description:    t.Description,
			RewardPoints:   t.RewardPoints,
			EstimatedHours: t.EstimatedHours,
			TitleColor:     t.TitleColor,
			DaysToComplete: t.DaysToComplete,
			Topic:          t.Topic,
			OrderNumber:    t.OrderNumber,
		})
	}
	return in, nil
}

type RoadmapStepRequest struct {
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	StepOrder      int             `json:"stepOrder"`
	EstimatedHours float64         `json:"estimatedHours"`
	RewardPoints   int             `json:"rewardPoints"`
	IsOptional     bool            `json:"isOptional"`
	TitleColor     string          `json:"titleColor"`
	Topic          string          `json:"topic"`
	DaysToComplete int             `json:"daysToComplete"`
	Resources      json.RawMessage `json:"resources,omitempty"`
}

type CreateRoadmapRequest struct {
	Title           string               `json:"title"`
	Description     string               `json:"description"`
	Domain          string               `json:"domain"`
	DifficultyLevel int                  `json:"difficultyLevel"`
	IsPublic        bool                 `json:"isPublic"`
	Steps           []RoadmapStepRequest `json:"steps"`
}

func (r CreateRoadmapRequest) ToModel() (models.Roadmap, error) {
	var c checker
	c.required(r.Title, "Roadmap title is required")
	c.maxLen(r.Title, 255, "Roadmap title must not exceed 255 characters")
	c.maxLen(r.Description, 5000, "Description must not exceed 5000 characters")
	c.maxLen(r.Domain, 100, "Domain must not exceed 100 characters")
	c.check(r.DifficultyLevel >= 0 && r.DifficultyLevel <= 5, "Difficulty level must be between 0 and 5")
	for _, s := range r.Steps {
		c.required(s.Title, "Step title is required")
		c.maxLen(s.Title, 255, "Step title must not exceed 255 characters")
		c.maxLen(s.Topic, 255, "Topic must not exceed 255 characters")
		c.check(s.RewardPoints >= 0, "Reward points must be non-negative")
		c.nonNegative(s.EstimatedHours, "Estimated hours must be non-negative")
		c.check(s.DaysToComplete >= 0, "Days to complete must be non-negative")
		c.hexColor(s.TitleColor, "Title color must be a valid hex color")
		c.check(len(s.Resources) == 0 || json.Valid(s.Resources), "Resources must be valid JSON")
	}
	if err := c.err(); err != nil {
		return models.Roadmap{}, err
	}

	rm := models.Roadmap{
		Title:           r.Title,
		Description:     r.Description,
		Domain:          r.Domain,
		DifficultyLevel: r.DifficultyLevel,
		IsPublic:        r.IsPublic,
	}
	for _, s := range r.Steps {
		rm.Steps = append(rm.Steps, models.RoadmapStep{
			Title:          s.Title,
			Description:    s.Description,
			StepOrder:      s.StepOrder,
			EstimatedHours: s.EstimatedHours,
			RewardPoints:   s.RewardPoints,
			IsOptional:     s.IsOptional,
			TitleColor:     s.TitleColor,
			Topic:          s.Topic,
			DaysToComplete: s.DaysToComplete,
			Resources:      s.Resources,
		})
	}
	return rm, nil
}
