package services

import (
	"context"
	"testing"
	"time"

	"github.com/dimitrije/workspace-api/internal/apperr"
	"github.com/dimitrije/workspace-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGroup(creator uuid.UUID, name, groupSlug string) models.Group {
	now := time.Now()
	return models.Group{
		ID:              uuid.New(),
		Name:            name,
		Slug:            groupSlug,
		Visibility:      models.GroupPublic,
		CreatedByUserID: creator,
		MemberCount:     1,
		CreatedAt:       now,
		UpdatedAt:       now,
		Version:         1,
	}
}

func TestGroupService_Create_GeneratesUniqueSlug(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewGroupService(db)
	creator := uuid.New()
	g := newGroup(creator, "Backend Guild", "backend-guild-2")

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM user_groups WHERE slug`).WithArgs("backend-guild").WillReturnRows(existsRow(true))
	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM user_groups WHERE slug`).WithArgs("backend-guild-2").WillReturnRows(existsRow(false))
	mock.ExpectQuery(`INSERT INTO user_groups`).
		WithArgs("Backend Guild", "backend-guild-2", "", models.GroupPublic, creator).
		WillReturnRows(idRow(g.ID))
	mock.ExpectExec(`INSERT INTO group_memberships`).
		WithArgs(g.ID, creator, models.RoleLeader).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery(`FROM user_groups g`).WithArgs(g.ID).WillReturnRows(groupRows(g))
	mock.ExpectCommit()

	got, err := svc.Create(context.Background(), models.Group{Name: "Backend Guild", CreatedByUserID: creator})

	require.NoError(t, err)
	assert.Equal(t, "backend-guild-2", got.Slug)
	assert.Equal(t, 1, got.MemberCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupService_Create_CustomSlugTaken(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewGroupService(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM user_groups WHERE slug`).WithArgs("core").WillReturnRows(existsRow(true))
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), models.Group{Name: "Core", Slug: "core", CreatedByUserID: uuid.New()})

	require.Error(t, err)
	assert.Equal(t, "Slug 'core' is already taken", apperr.Message(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupService_GetBySlug_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewGroupService(db)

	mock.ExpectQuery(`WHERE g.slug = \$1`).WithArgs("missing").WillReturnError(pgx.ErrNoRows)

	_, err := svc.GetBySlug(context.Background(), " Missing ")

	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestGroupService_ListVisible(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewGroupService(db)
	userID := uuid.New()

	mock.ExpectQuery(`g.visibility = \$1 OR EXISTS`).
		WithArgs(models.GroupPublic, userID).
		WillReturnRows(groupRows(newGroup(uuid.New(), "Open", "open")))

	got, err := svc.ListVisible(context.Background(), userID)

	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestGroupService_AddMember_AlreadyMember(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewGroupService(db)
	groupID, userID := uuid.New(), uuid.New()

	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM user_groups WHERE id`).WithArgs(groupID).WillReturnRows(existsRow(true))
	mock.ExpectQuery(`ON CONFLICT \(group_id, user_id\) DO NOTHING`).
		WithArgs(groupID, userID, models.RoleMember).
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.AddMember(context.Background(), groupID, userID, models.RoleMember)

	assert.ErrorIs(t, err, ErrAlreadyMember)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupService_AddMember_GroupMissing(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewGroupService(db)
	groupID := uuid.New()

	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM user_groups WHERE id`).WithArgs(groupID).WillReturnRows(existsRow(false))

	_, err := svc.AddMember(context.Background(), groupID, uuid.New(), models.RoleMember)

	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestGroupService_RemoveMember_LastLeader(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewGroupService(db)
	groupID, userID := uuid.New(), uuid.New()

	mock.ExpectExec(`DELETE FROM group_memberships`).
		WithArgs(groupID, userID, models.RoleLeader).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := svc.RemoveMember(context.Background(), groupID, userID)

	assert.ErrorIs(t, err, apperr.ErrBadRequest)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupService_Delete_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewGroupService(db)
	id := uuid.New()

	mock.ExpectExec(`UPDATE user_groups SET deleted_at`).WithArgs(id).WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	assert.ErrorIs(t, svc.Delete(context.Background(), id), apperr.ErrNotFound)
}
