package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseTaskStatus_RejectsLegacyNames(t *testing.T) {
	for _, s := range []string{"TODO", "IN_PROGRESS", "DONE"} {
		_, ok := ParseTaskStatus(s)
		assert.False(t, ok, s)
	}

	st, ok := ParseTaskStatus("ongoing")
	assert.True(t, ok)
	assert.Equal(t, TaskStatusOngoing, st)
}

func TestTask_IsOverdue(t *testing.T) {
	now := time.Now()
	past := now.Add(-24 * time.Hour)

	assert.True(t, (&Task{Deadline: &past, StatusKey: TaskStatusOngoing}).IsOverdue(now))
	assert.False(t, (&Task{Deadline: &past, StatusKey: TaskStatusCompleted}).IsOverdue(now))
	assert.False(t, (&Task{StatusKey: TaskStatusBacklog}).IsOverdue(now))
}

func TestTaskPatch_IsEmpty(t *testing.T) {
	assert.True(t, TaskPatch{}.IsEmpty())

	version := 2
	assert.True(t, TaskPatch{Version: &version}.IsEmpty())

	title := "x"
	assert.False(t, TaskPatch{Title: &title}.IsEmpty())
}
