package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Roadmap is a reusable learning-plan template.
type Roadmap struct {
	ID              uuid.UUID     `json:"id"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	Domain          string        `json:"domain"`
	DifficultyLevel int           `json:"difficultyLevel"`
	IsPublic        bool          `json:"isPublic"`
	CreatedBy       uuid.UUID     `json:"createdBy"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
	Version         int           `json:"version"`
	Steps           []RoadmapStep `json:"steps"`
}

type RoadmapStep struct {
	ID             uuid.UUID       `json:"id"`
	RoadmapID      uuid.UUID       `json:"roadmapId"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	StepOrder      int             `json:"stepOrder"`
	EstimatedHours float64         `json:"estimatedHours"`
	RewardPoints   int             `json:"rewardPoints"`
	IsOptional     bool            `json:"isOptional"`
	TitleColor     string          `json:"titleColor"`
	Topic          string          `json:"topic"`
	DaysToComplete int             `json:"daysToComplete"`
	Resources      json.RawMessage `json:"resources"`
}

// RoadmapImport builds one ROADMAP assignment with one task per step in the
// caller's roadmap workspace.
type RoadmapImport struct {
	Title       string
	Description string
	Steps       []RoadmapImportStep
}

type RoadmapImportStep struct {
	Title          string
	Description    string
	RewardPoints   int
	EstimatedHours float64
	TitleColor     string
	DaysToComplete int
	Topic          string
	OrderNumber    int
}

// TotalRewardPoints sums the reward points of every step.
func (r RoadmapImport) TotalRewardPoints() int {
	total := 0
	for _, s := range r.Steps {
		total += s.RewardPoints
	}
	return total
}

func (r RoadmapImport) TotalEstimatedHours() float64 {
	total := 0.0
	for _, s := range r.Steps {
		total += s.EstimatedHours
	}
	return total
}

// ImportFromTemplate converts a stored roadmap into an import request,
// preserving step order.
func ImportFromTemplate(r *Roadmap) RoadmapImport {
	in := RoadmapImport{Title: r.Title, Description: r.Description}
	for _, s := range r.Steps {
		in.Steps = append(in.Steps, RoadmapImportStep{
			Title:          s.Title,
			Description:    s.Description,
			RewardPoints:   s.RewardPoints,
			EstimatedHours: s.EstimatedHours,
			TitleColor:     s.TitleColor,
			DaysToComplete: s.DaysToComplete,
			Topic:          s.Topic,
			OrderNumber:    s.StepOrder,
		})
	}
	return in
}
