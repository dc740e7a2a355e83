package database

import (
	"context"
	"fmt"
	"time"
)

// Every entity table carries deleted_at and version. Reads filter on
// deleted_at IS NULL; physical deletes cascade along the foreign keys below.
var migrations = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,
	`CREATE EXTENSION IF NOT EXISTS pg_trgm`,

	`CREATE TABLE IF NOT EXISTS workspaces (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		visibility TEXT NOT NULL DEFAULT 'PRIVATE'
			CHECK (visibility IN ('PUBLIC', 'PRIVATE', 'ORGANIZATION_ONLY')),
		owner_user_id UUID NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		deleted_at TIMESTAMP WITH TIME ZONE,
		version INTEGER NOT NULL DEFAULT 1
	)`,

	`CREATE TABLE IF NOT EXISTS workspace_access (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		workspace_id UUID NOT NULL REFERENCES workspaces(id) ON DELETE CASCADE,
		user_id UUID NOT NULL,
		access_level TEXT NOT NULL DEFAULT 'READ'
			CHECK (access_level IN ('READ', 'WRITE', 'ADMIN')),
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		deleted_at TIMESTAMP WITH TIME ZONE,
		version INTEGER NOT NULL DEFAULT 1,
		UNIQUE(workspace_id, user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS assignments (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		workspace_id UUID NOT NULL REFERENCES workspaces(id) ON DELETE CASCADE,
		title VARCHAR(255) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		assignment_type_key TEXT NOT NULL DEFAULT 'CUSTOM'
			CHECK (assignment_type_key IN ('CUSTOM', 'ROADMAP')),
		total_reward_points INTEGER NOT NULL DEFAULT 0,
		total_estimated_hours DOUBLE PRECISION NOT NULL DEFAULT 0,
		deadline TIMESTAMP WITH TIME ZONE,
		created_by UUID,
		updated_by UUID,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		deleted_at TIMESTAMP WITH TIME ZONE,
		version INTEGER NOT NULL DEFAULT 1
	)`,

	// Deleting an assignment detaches its tasks rather than removing them.
	`CREATE TABLE IF NOT EXISTS tasks (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		workspace_id UUID NOT NULL REFERENCES workspaces(id) ON DELETE CASCADE,
		assignment_id UUID REFERENCES assignments(id) ON DELETE SET NULL,
		assignee_user_id UUID,
		reporter_user_id UUID,
		title VARCHAR(255) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		task_type_key VARCHAR(100) NOT NULL DEFAULT '',
		status_key TEXT NOT NULL DEFAULT 'BACKLOG'
			CHECK (status_key IN ('BACKLOG', 'ONGOING', 'COMPLETED', 'CANCELLED')),
		priority INTEGER NOT NULL DEFAULT 3 CHECK (priority BETWEEN 1 AND 5),
		reward_points INTEGER NOT NULL DEFAULT 0,
		estimated_hours DOUBLE PRECISION NOT NULL DEFAULT 0,
		spent_hours DOUBLE PRECISION NOT NULL DEFAULT 0,
		title_color VARCHAR(7) NOT NULL DEFAULT '',
		order_number INTEGER NOT NULL DEFAULT 0,
		topic VARCHAR(255) NOT NULL DEFAULT '',
		deadline TIMESTAMP WITH TIME ZONE,
		started_at TIMESTAMP WITH TIME ZONE,
		completed_at TIMESTAMP WITH TIME ZONE,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		deleted_at TIMESTAMP WITH TIME ZONE,
		version INTEGER NOT NULL DEFAULT 1
	)`,

	`CREATE TABLE IF NOT EXISTS tags (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		workspace_id UUID NOT NULL REFERENCES workspaces(id) ON DELETE CASCADE,
		name VARCHAR(100) NOT NULL,
		color VARCHAR(7) NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		deleted_at TIMESTAMP WITH TIME ZONE,
		version INTEGER NOT NULL DEFAULT 1
	)`,

	`CREATE TABLE IF NOT EXISTS task_tags (
		task_id UUID NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		tag_id UUID NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
		PRIMARY KEY (task_id, tag_id)
	)`,

	`CREATE TABLE IF NOT EXISTS comments (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		task_id UUID NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		user_id UUID NOT NULL,
		body TEXT NOT NULL,
		attachments JSONB NOT NULL DEFAULT '[]',
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		deleted_at TIMESTAMP WITH TIME ZONE,
		version INTEGER NOT NULL DEFAULT 1
	)`,

	`CREATE TABLE IF NOT EXISTS task_assignments (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		task_id UUID NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		assigned_user_id UUID NOT NULL,
		assigned_by_user_id UUID,
		status TEXT NOT NULL DEFAULT 'ONGOING'
			CHECK (status IN ('BACKLOG', 'ONGOING', 'COMPLETED', 'CANCELLED')),
		spent_hours DOUBLE PRECISION NOT NULL DEFAULT 0,
		reward_points_earned INTEGER,
		started_at TIMESTAMP WITH TIME ZONE,
		completed_at TIMESTAMP WITH TIME ZONE,
		assigned_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		user_notes TEXT NOT NULL DEFAULT '',
		submission_text TEXT NOT NULL DEFAULT '',
		submission_url VARCHAR(2048) NOT NULL DEFAULT '',
		submission_status TEXT NOT NULL DEFAULT 'NOT_SUBMITTED'
			CHECK (submission_status IN ('NOT_SUBMITTED', 'SUBMITTED', 'UNDER_REVIEW', 'APPROVED', 'NEEDS_REVISION')),
		grade_received DOUBLE PRECISION,
		feedback TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		deleted_at TIMESTAMP WITH TIME ZONE,
		version INTEGER NOT NULL DEFAULT 1,
		UNIQUE(task_id, assigned_user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS activity_logs (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		workspace_id UUID NOT NULL REFERENCES workspaces(id) ON DELETE CASCADE,
		user_id UUID NOT NULL,
		entity_type VARCHAR(50) NOT NULL,
		entity_id UUID NOT NULL,
		action_key VARCHAR(100) NOT NULL,
		details JSONB NOT NULL DEFAULT '{}',
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		deleted_at TIMESTAMP WITH TIME ZONE,
		version INTEGER NOT NULL DEFAULT 1
	)`,

	// "group" is reserved in SQL.
	`CREATE TABLE IF NOT EXISTS user_groups (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		slug VARCHAR(255) NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		visibility TEXT NOT NULL DEFAULT 'PUBLIC' CHECK (visibility IN ('PUBLIC', 'PRIVATE')),
		created_by UUID NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		deleted_at TIMESTAMP WITH TIME ZONE,
		version INTEGER NOT NULL DEFAULT 1
	)`,

	`CREATE TABLE IF NOT EXISTS group_memberships (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		group_id UUID NOT NULL REFERENCES user_groups(id) ON DELETE CASCADE,
		user_id UUID NOT NULL,
		role TEXT NOT NULL DEFAULT 'MEMBER' CHECK (role IN ('MEMBER', 'LEADER', 'MENTOR')),
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		deleted_at TIMESTAMP WITH TIME ZONE,
		version INTEGER NOT NULL DEFAULT 1,
		UNIQUE(group_id, user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS roadmaps (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		title VARCHAR(255) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		domain VARCHAR(100) NOT NULL DEFAULT '',
		difficulty_level INTEGER NOT NULL DEFAULT 1,
		is_public BOOLEAN NOT NULL DEFAULT TRUE,
		created_by UUID NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		deleted_at TIMESTAMP WITH TIME ZONE,
		version INTEGER NOT NULL DEFAULT 1
	)`,

	`CREATE TABLE IF NOT EXISTS roadmap_steps (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		roadmap_id UUID NOT NULL REFERENCES roadmaps(id) ON DELETE CASCADE,
		title VARCHAR(255) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		step_order INTEGER NOT NULL DEFAULT 0,
		estimated_hours DOUBLE PRECISION NOT NULL DEFAULT 0,
		reward_points INTEGER NOT NULL DEFAULT 0,
		is_optional BOOLEAN NOT NULL DEFAULT FALSE,
		title_color VARCHAR(7) NOT NULL DEFAULT '',
		topic VARCHAR(255) NOT NULL DEFAULT '',
		days_to_complete INTEGER NOT NULL DEFAULT 0,
		resources JSONB NOT NULL DEFAULT '[]',
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		deleted_at TIMESTAMP WITH TIME ZONE,
		version INTEGER NOT NULL DEFAULT 1
	)`,

	`CREATE INDEX IF NOT EXISTS idx_workspaces_owner_user_id ON workspaces(owner_user_id) WHERE deleted_at IS NULL`,
	`CREATE INDEX IF NOT EXISTS idx_workspaces_visibility ON workspaces(visibility) WHERE deleted_at IS NULL`,
	`CREATE INDEX IF NOT EXISTS idx_workspaces_name_search ON workspaces USING gin (name gin_trgm_ops)`,
	`CREATE INDEX IF NOT EXISTS idx_workspace_access_user_id ON workspace_access(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_assignments_workspace_id ON assignments(workspace_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_workspace_id ON tasks(workspace_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_assignment_id ON tasks(assignment_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_assignee_user_id ON tasks(assignee_user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_reporter_user_id ON tasks(reporter_user_id)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_tags_workspace_name ON tags(workspace_id, LOWER(name)) WHERE deleted_at IS NULL`,
	`CREATE INDEX IF NOT EXISTS idx_task_tags_tag_id ON task_tags(tag_id)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_task_id ON comments(task_id)`,
	`CREATE INDEX IF NOT EXISTS idx_task_assignments_assigned_user_id ON task_assignments(assigned_user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_activity_logs_workspace_id ON activity_logs(workspace_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_group_memberships_user_id ON group_memberships(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_roadmap_steps_roadmap_id ON roadmap_steps(roadmap_id, step_order)`,
}

func (db *DB) Migrate(ctx context.Context) error {
	for i, migration := range migrations {
		if _, err := db.Pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}

// Purge physically removes workspaces soft-deleted before the cutoff.
// Everything they own goes with them through ON DELETE CASCADE.
func (db *DB) Purge(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	result, err := db.Pool.Exec(ctx, `
		DELETE FROM workspaces
		WHERE deleted_at IS NOT NULL AND deleted_at < $1
	`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge workspaces: %w", err)
	}
	return result.RowsAffected(), nil
}
