package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type AccessLevel string

const (
	AccessRead  AccessLevel = "READ"
	AccessWrite AccessLevel = "WRITE"
	AccessAdmin AccessLevel = "ADMIN"
)

// ParseAccessLevel is case-insensitive so the legacy lowercase "read" is accepted.
func ParseAccessLevel(s string) (AccessLevel, bool) {
	switch l := AccessLevel(strings.ToUpper(strings.TrimSpace(s))); l {
	case AccessRead, AccessWrite, AccessAdmin:
		return l, true
	}
	return "", false
}

func (l AccessLevel) rank() int {
	switch l {
	case AccessRead:
		return 1
	case AccessWrite:
		return 2
	case AccessAdmin:
		return 3
	}
	return 0
}

// AtLeast reports whether l grants everything min grants.
func (l AccessLevel) AtLeast(min AccessLevel) bool {
	return l.rank() >= min.rank()
}

type WorkspaceAccess struct {
	ID          uuid.UUID   `json:"id"`
	WorkspaceID uuid.UUID   `json:"workspaceId"`
	UserID      uuid.UUID   `json:"userId"`
	AccessLevel AccessLevel `json:"accessLevel"`
	IsActive    bool        `json:"isActive"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
	Version     int         `json:"version"`
}

// AccessGrant is one (user, level) pair to seed on a workspace.
type AccessGrant struct {
	UserID uuid.UUID
	Level  AccessLevel
}

// AccessGrants flattens the three access lists into unique grants. The owner
// is skipped since ownership already implies full access, and a user listed
// more than once keeps the highest level.
func AccessGrants(ownerID uuid.UUID, read, write, admin []uuid.UUID) []AccessGrant {
	var grants []AccessGrant
	index := make(map[uuid.UUID]int)

	add := func(ids []uuid.UUID, level AccessLevel) {
		for _, id := range ids {
			if id == ownerID || id == uuid.Nil {
				continue
			}
			if i, ok := index[id]; ok {
				if level.AtLeast(grants[i].Level) {
					grants[i].Level = level
				}
				continue
			}
			index[id] = len(grants)
			grants = append(grants, AccessGrant{UserID: id, Level: level})
		}
	}

	add(read, AccessRead)
	add(write, AccessWrite)
	add(admin, AccessAdmin)
	return grants
}
