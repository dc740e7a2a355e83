package dto

import (
	"github.com/dimitrije/workspace-api/internal/models"
	"github.com/dimitrije/workspace-api/internal/sanitize"
)

type CreateTagRequest struct {
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

func (r CreateTagRequest) Validate() error {
	var c checker
	c.required(r.Name, "Tag name is required")
	c.maxLen(r.Name, 100, "Tag name must not exceed 100 characters")
	c.hexColor(r.Color, "Color must be a valid hex color")
	c.maxLen(r.Description, 500, "Description must not exceed 500 characters")
	return c.err()
}

type UpdateTagRequest struct {
	Name        *string `json:"name,omitempty"`
	Color       *string `json:"color,omitempty"`
	Description *string `json:"description,omitempty"`
	Version     *int    `json:"version,omitempty"`
}

func (r UpdateTagRequest) ToPatch() (models.TagPatch, error) {
	var c checker
	if r.Name != nil {
		c.required(*r.Name, "Tag name must not be blank")
	}
	c.optionalMaxLen(r.Name, 100, "Tag name must not exceed 100 characters")
	if r.Color != nil {
		c.hexColor(*r.Color, "Color must be a valid hex color")
	}
	c.optionalMaxLen(r.Description, 500, "Description must not exceed 500 characters")
	if err := c.err(); err != nil {
		return models.TagPatch{}, err
	}

	var description *string
	if r.Description != nil {
		d := sanitize.StripTags(*r.Description)
		description = &d
	}
	return models.TagPatch{Name: r.Name, Color: r.Color, Description: description, Version: r.Version}, nil
}
