package dto

import (
	"github.com/dimitrije/workspace-api/internal/models"
	"github.com/dimitrije/workspace-api/internal/slug"
	"github.com/google/uuid"
)

type CreateGroupRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Visibility  string `json:"visibility"`
}

func (r CreateGroupRequest) Validate() (models.GroupVisibility, error) {
	var c checker
	c.required(r.Name, "Group name is required")
	c.maxLen(r.Name, 255, "Group name must not exceed 255 characters")
	c.maxLen(r.Slug, 255, "Slug must not exceed 255 characters")
	if r.Slug != "" {
		c.check(slug.IsValid(r.Slug), "Slug may contain only lowercase letters, digits and single hyphens")
	}
	c.maxLen(r.Description, 1000, "Description must not exceed 1000 characters")

	visibility := models.GroupPublic
	if r.Visibility != "" {
		v, ok := models.ParseGroupVisibility(r.Visibility)
		c.check(ok, "Visibility must be one of PUBLIC, PRIVATE")
		visibility = v
	}
	return visibility, c.err()
}

type UpdateGroupRequest struct {
	Name        *string `json:"name,omitempty"`
	Slug        *string `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
	Visibility  *string `json:"visibility,omitempty"`
	Version     *int    `json:"version,omitempty"`
}

func (r UpdateGroupRequest) ToPatch() (models.GroupPatch, error) {
	var c checker
	if r.Name != nil {
		c.required(*r.Name, "Group name must not be blank")
	}
	c.optionalMaxLen(r.Name, 255, "Group name must not exceed 255 characters")
	if r.Slug != nil {
		c.check(slug.IsValid(*r.Slug), "Slug may contain only lowercase letters, digits and single hyphens")
	}
	c.optionalMaxLen(r.Description, 1000, "Description must not exceed 1000 characters")

	p := models.GroupPatch{Name: r.Name, Slug: r.Slug, Description: r.Description, Version: r.Version}
	if r.Visibility != nil {
		v, ok := models.ParseGroupVisibility(*r.Visibility)
		c.check(ok, "Visibility must be one of PUBLIC, PRIVATE")
		p.Visibility = &v
	}
	if err := c.err(); err != nil {
		return models.GroupPatch{}, err
	}
	return p, nil
}

type AddGroupMemberRequest struct {
	UserID uuid.UUID `json:"userId"`
	Role   string    `json:"role"`
}

func (r AddGroupMemberRequest) Parse() (models.MembershipRole, error) {
	var c checker
	c.check(r.UserID != uuid.Nil, "User ID is required")
	role := models.RoleMember
	if r.Role != "" {
		ro, ok := models.ParseMembershipRole(r.Role)
		c.check(ok, "Role must be one of MEMBER, LEADER, MENTOR")
		role = ro
	}
	return role, c.err()
}
