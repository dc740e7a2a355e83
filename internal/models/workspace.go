package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Visibility string

const (
	VisibilityPublic           Visibility = "PUBLIC"
	VisibilityPrivate          Visibility = "PRIVATE"
	VisibilityOrganizationOnly Visibility = "ORGANIZATION_ONLY"
)

// RoadmapWorkspaceName is the workspace roadmap imports land in.
const RoadmapWorkspaceName = "Roadmap Workspace"

func ParseVisibility(s string) (Visibility, bool) {
	switch v := Visibility(strings.ToUpper(strings.TrimSpace(s))); v {
	case VisibilityPublic, VisibilityPrivate, VisibilityOrganizationOnly:
		return v, true
	}
	return "", false
}

type Workspace struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Visibility  Visibility `json:"visibility"`
	OwnerUserID uuid.UUID  `json:"ownerUserId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	Version     int        `json:"version"`

	// Derived on read.
	AccessUserIDs   []uuid.UUID `json:"accessUserIds"`
	AssignmentCount int         `json:"assignmentCount"`
	TaskCount       int         `json:"taskCount"`
	TagCount        int         `json:"tagCount"`
}

func (w *Workspace) IsOwner(userID uuid.UUID) bool {
	return w.OwnerUserID == userID
}

// WorkspaceInput is the full set of writable workspace fields. Update
// overwrites every field and replaces the access lists.
type WorkspaceInput struct {
	Name               string
	Description        string
	Visibility         Visibility
	OwnerUserID        uuid.UUID
	ReadAccessUserIDs  []uuid.UUID
	WriteAccessUserIDs []uuid.UUID
	AdminAccessUserIDs []uuid.UUID
}

// VisibilityOrDefault returns the requested visibility, PRIVATE when unset.
func (in WorkspaceInput) VisibilityOrDefault() Visibility {
	if in.Visibility == "" {
		return VisibilityPrivate
	}
	return in.Visibility
}
