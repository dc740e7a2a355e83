package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dimitrije/workspace-api/internal/apperr"
	"github.com/dimitrije/workspace-api/internal/database"
	"github.com/dimitrije/workspace-api/internal/models"
	"github.com/dimitrije/workspace-api/internal/slug"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrAlreadyMember = apperr.BadRequest("User is already a member of this group")

const groupColumns = `
	g.id, g.name, g.slug, g.description, g.visibility, g.created_by,
	(SELECT COUNT(*) FROM group_memberships gm WHERE gm.group_id = g.id AND gm.is_active) AS member_count,
	g.created_at, g.updated_at, g.version`

func scanGroup(row pgx.Row, g *models.Group) error {
	return row.Scan(&g.ID, &g.Name, &g.Slug, &g.Description, &g.Visibility, &g.CreatedByUserID,
		&g.MemberCount, &g.CreatedAt, &g.UpdatedAt, &g.Version)
}

const membershipColumns = `id, group_id, user_id, role, is_active, created_at`

func scanMembership(row pgx.Row, m *models.GroupMembership) error {
	return row.Scan(&m.ID, &m.GroupID, &m.UserID, &m.Role, &m.IsActive, &m.CreatedAt)
}

type GroupService struct {
	db *database.DB
}

func NewGroupService(db *database.DB) *GroupService {
	return &GroupService{db: db}
}

// Create inserts the group and makes the creator its leader. An empty slug
// is generated from the name and made unique with a numeric suffix.
func (s *GroupService) Create(ctx context.Context, g models.Group) (*models.Group, error) {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	taken := func(candidate string) (bool, error) {
		var ok bool
		err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM user_groups WHERE slug = $1)`, candidate).Scan(&ok)
		return ok, err
	}

	if g.Slug == "" {
		base := slug.Generate(g.Name)
		if base == "" {
			base = "group"
		}
		if g.Slug, err = slug.GenerateUnique(base, taken); err != nil {
			return nil, fmt.Errorf("failed to generate slug: %w", err)
		}
	} else {
		exists, err := taken(g.Slug)
		if err != nil {
			return nil, fmt.Errorf("failed to check slug: %w", err)
		}
		if exists {
			return nil, apperr.BadRequest("Slug '%s' is already taken", g.Slug)
		}
	}
	if g.Visibility == "" {
		g.Visibility = models.GroupPublic
	}

	var id uuid.UUID
	err = tx.QueryRow(ctx, `
		INSERT INTO user_groups (name, slug, description, visibility, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, g.Name, g.Slug, g.Description, g.Visibility, g.CreatedByUserID).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO group_memberships (group_id, user_id, role)
		VALUES ($1, $2, $3)
	`, id, g.CreatedByUserID, models.RoleLeader)
	if err != nil {
		return nil, fmt.Errorf("failed to add creator as leader: %w", err)
	}

	group, err := getGroup(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return group, nil
}

func getGroup(ctx context.Context, q database.Querier, id uuid.UUID) (*models.Group, error) {
	var g models.Group
	err := scanGroup(q.QueryRow(ctx, `
		SELECT `+groupColumns+`
		FROM user_groups g
		WHERE g.id = $1 AND g.deleted_at IS NULL
	`, id), &g)
	if err != nil {
		return nil, notFoundOr(err, "Group", id)
	}
	return &g, nil
}

func (s *GroupService) GetByID(ctx context.Context, id uuid.UUID) (*models.Group, error) {
	return getGroup(ctx, s.db.Pool, id)
}

func (s *GroupService) GetBySlug(ctx context.Context, groupSlug string) (*models.Group, error) {
	var g models.Group
	err := scanGroup(s.db.Pool.QueryRow(ctx, `
		SELECT `+groupColumns+`
		FROM user_groups g
		WHERE g.slug = $1 AND g.deleted_at IS NULL
	`, slug.Normalize(groupSlug)), &g)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("Group not found with slug: %s", groupSlug)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return &g, nil
}

// ListVisible returns public groups plus every group the user belongs to.
func (s *GroupService) ListVisible(ctx context.Context, userID uuid.UUID) ([]models.Group, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+groupColumns+`
		FROM user_groups g
		WHERE g.deleted_at IS NULL AND (
			g.visibility = $1 OR EXISTS (
				SELECT 1 FROM group_memberships gm
				WHERE gm.group_id = g.id AND gm.user_id = $2 AND gm.is_active
			)
		)
		ORDER BY g.name
	`, models.GroupPublic, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return collect(rows, scanGroup)
}

func (s *GroupService) Update(ctx context.Context, id uuid.UUID, p models.GroupPatch) (*models.Group, error) {
	if p.Name == nil && p.Slug == nil && p.Description == nil && p.Visibility == nil {
		return nil, ErrNoFieldsToUpdate
	}

	var updatedID uuid.UUID
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE user_groups
		SET name = COALESCE($1, name),
		    slug = COALESCE($2, slug),
		    description = COALESCE($3, description),
		    visibility = COALESCE($4, visibility),
		    version = version + 1, updated_at = NOW()
		WHERE id = $5 AND deleted_at IS NULL AND ($6::int IS NULL OR version = $6)
		RETURNING id
	`, p.Name, p.Slug, p.Description, p.Visibility, id, p.Version).Scan(&updatedID)
	if isUniqueViolation(err) {
		return nil, apperr.BadRequest("Slug '%s' is already taken", *p.Slug)
	}
	if err != nil {
		return nil, checkVersionConflict(ctx, s.db.Pool, "user_groups", "Group", id, p.Version, err)
	}
	return getGroup(ctx, s.db.Pool, id)
}

func (s *GroupService) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.Pool.Exec(ctx, `
		UPDATE user_groups SET deleted_at = NOW(), version = version + 1
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Group not found with id: %s", id)
	}
	return nil
}

// IsLeader reports whether the user leads the group.
func (s *GroupService) IsLeader(ctx context.Context, groupID, userID uuid.UUID) (bool, error) {
	var ok bool
	err := s.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM group_memberships
			WHERE group_id = $1 AND user_id = $2 AND role = $3 AND is_active
		)
	`, groupID, userID, models.RoleLeader).Scan(&ok)
	return ok, err
}

func (s *GroupService) AddMember(ctx context.Context, groupID, userID uuid.UUID, role models.MembershipRole) (*models.GroupMembership, error) {
	ok, err := exists(ctx, s.db.Pool, "user_groups", groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to check group: %w", err)
	}
	if !ok {
		return nil, apperr.NotFound("Group not found with id: %s", groupID)
	}

	var m models.GroupMembership
	err = scanMembership(s.db.Pool.QueryRow(ctx, `
		INSERT INTO group_memberships (group_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (group_id, user_id) DO NOTHING
		RETURNING `+membershipColumns,
		groupID, userID, role), &m)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAlreadyMember
	}
	if err != nil {
		return nil, fmt.Errorf("failed to add group member: %w", err)
	}
	return &m, nil
}

// RemoveMember never removes the last leader of a group.
func (s *GroupService) RemoveMember(ctx context.Context, groupID, userID uuid.UUID) error {
	result, err := s.db.Pool.Exec(ctx, `
		DELETE FROM group_memberships gm
		WHERE gm.group_id = $1 AND gm.user_id = $2
		  AND (gm.role <> $3 OR (
			SELECT COUNT(*) FROM group_memberships l
			WHERE l.group_id = $1 AND l.role = $3 AND l.is_active
		  ) > 1)
	`, groupID, userID, models.RoleLeader)
	if err != nil {
		return fmt.Errorf("failed to remove group member: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.BadRequest("Member not found or is the last leader of the group")
	}
	return nil
}

func (s *GroupService) ListMembers(ctx context.Context, groupID uuid.UUID) ([]models.GroupMembership, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+membershipColumns+`
		FROM group_memberships
		WHERE group_id = $1 AND is_active
		ORDER BY created_at
	`, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list group members: %w", err)
	}
	return collect(rows, scanMembership)
}
