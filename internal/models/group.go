package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type GroupVisibility string

const (
	GroupPublic  GroupVisibility = "PUBLIC"
	GroupPrivate GroupVisibility = "PRIVATE"
)

func ParseGroupVisibility(s string) (GroupVisibility, bool) {
	switch v := GroupVisibility(strings.ToUpper(strings.TrimSpace(s))); v {
	case GroupPublic, GroupPrivate:
		return v, true
	}
	return "", false
}

type MembershipRole string

const (
	RoleMember MembershipRole = "MEMBER"
	RoleLeader MembershipRole = "LEADER"
	RoleMentor MembershipRole = "MENTOR"
)

func ParseMembershipRole(s string) (MembershipRole, bool) {
	switch r := MembershipRole(strings.ToUpper(strings.TrimSpace(s))); r {
	case RoleMember, RoleLeader, RoleMentor:
		return r, true
	}
	return "", false
}

type Group struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Slug            string          `json:"slug"`
	Description     string          `json:"description"`
	Visibility      GroupVisibility `json:"visibility"`
	CreatedByUserID uuid.UUID       `json:"createdByUserId"`
	MemberCount     int             `json:"memberCount"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	Version         int             `json:"version"`
}

type GroupMembership struct {
	ID        uuid.UUID      `json:"id"`
	GroupID   uuid.UUID      `json:"groupId"`
	UserID    uuid.UUID      `json:"userId"`
	Role      MembershipRole `json:"role"`
	IsActive  bool           `json:"isActive"`
	CreatedAt time.Time      `json:"createdAt"`
}

type GroupPatch struct {
	Name        *string
	Slug        *string
	Description *string
	Visibility  *GroupVisibility
	Version     *int
}
