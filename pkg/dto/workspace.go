package dto

import (
	"github.com/dimitrije/workspace-api/internal/models"
	"github.com/dimitrije/workspace-api/internal/sanitize"
	"github.com/google/uuid"
)

type CreateWorkspaceRequest struct {
	Name               string      `json:"name"`
	Description        string      `json:"description"`
	Visibility         string      `json:"visibility"`
	OwnerUserID        *uuid.UUID  `json:"ownerUserId,omitempty"`
	ReadAccessUserIDs  []uuid.UUID `json:"readAccessUserIds"`
	WriteAccessUserIDs []uuid.UUID `json:"writeAccessUserIds"`
	AdminAccessUserIDs []uuid.UUID `json:"adminAccessUserIds"`
}

// UpdateWorkspaceRequest overwrites every field. Version is optional; when
// present the update fails on a stale row.
type UpdateWorkspaceRequest struct {
	CreateWorkspaceRequest
	Version *int `json:"version,omitempty"`
}

// ToInput validates the request. The owner defaults to callerID and the
// visibility to PRIVATE.
func (r CreateWorkspaceRequest) ToInput(callerID uuid.UUID) (models.WorkspaceInput, error) {
	owner := callerID
	if r.OwnerUserID != nil && *r.OwnerUserID != uuid.Nil {
		owner = *r.OwnerUserID
	}
	var c checker
	return r.toInput(&c, owner)
}

// ToInput validates the request. An update overwrites the owner, so the
// owner must be supplied.
func (r UpdateWorkspaceRequest) ToInput() (models.WorkspaceInput, error) {
	var c checker
	c.check(r.OwnerUserID != nil && *r.OwnerUserID != uuid.Nil, "Owner user ID is required")
	var owner uuid.UUID
	if r.OwnerUserID != nil {
		owner = *r.OwnerUserID
	}
	return r.CreateWorkspaceRequest.toInput(&c, owner)
}

func (r CreateWorkspaceRequest) toInput(c *checker, owner uuid.UUID) (models.WorkspaceInput, error) {
	c.required(r.Name, "Workspace name is required")
	c.maxLen(r.Name, 255, "Workspace name must not exceed 255 characters")
	c.maxLen(r.Description, 1000, "Description must not exceed 1000 characters")

	visibility := models.VisibilityPrivate
	if r.Visibility != "" {
		v, ok := models.ParseVisibility(r.Visibility)
		c.check(ok, "Visibility must be one of PUBLIC, PRIVATE, ORGANIZATION_ONLY")
		visibility = v
	}
	if err := c.err(); err != nil {
		return models.WorkspaceInput{}, err
	}

	return models.WorkspaceInput{
		Name:               r.Name,
		Description:        sanitize.Sanitize(r.Description),
		Visibility:         visibility,
		OwnerUserID:        owner,
		ReadAccessUserIDs:  r.ReadAccessUserIDs,
		WriteAccessUserIDs: r.WriteAccessUserIDs,
		AdminAccessUserIDs: r.AdminAccessUserIDs,
	}, nil
}

type WorkspaceAccessRequest struct {
	UserID      uuid.UUID `json:"userId"`
	AccessLevel string    `json:"accessLevel"`
}

func (r WorkspaceAccessRequest) Parse() (uuid.UUID, models.AccessLevel, error) {
	var c checker
	c.check(r.UserID != uuid.Nil, "User ID is required")
	level, ok := models.ParseAccessLevel(r.AccessLevel)
	c.check(ok, "Access level must be one of READ, WRITE, ADMIN")
	return r.UserID, level, c.err()
}

type WorkspaceUsersResponse struct {
	WorkspaceID uuid.UUID                `json:"workspaceId"`
	OwnerUserID uuid.UUID                `json:"ownerUserId"`
	Users       []models.WorkspaceAccess `json:"users"`
}

type AccessCheckResponse struct {
	WorkspaceID uuid.UUID `json:"workspaceId"`
	UserID      uuid.UUID `json:"userId"`
	HasAccess   bool      `json:"hasAccess"`
}
