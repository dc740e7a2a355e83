package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewAssignmentStats_NoTasks(t *testing.T) {
	stats := NewAssignmentStats(0, 0, 0)

	assert.Equal(t, 0, stats.TotalTasks)
	assert.Equal(t, 0, stats.PendingTasks)
	assert.Equal(t, 0.0, stats.CompletionPercentage)
}

func TestNewAssignmentStats_Fractional(t *testing.T) {
	stats := NewAssignmentStats(3, 1, 4.5)

	assert.Equal(t, 3, stats.TotalTasks)
	assert.Equal(t, 1, stats.CompletedTasks)
	assert.Equal(t, 2, stats.PendingTasks)
	assert.InDelta(t, 33.333333, stats.CompletionPercentage, 0.0001)
	assert.Equal(t, float64(1)/float64(3)*100, stats.CompletionPercentage)
	assert.Equal(t, 4.5, stats.TotalSpentHours)
}

func TestNewAssignmentStats_AllCompleted(t *testing.T) {
	stats := NewAssignmentStats(4, 4, 0)

	assert.Equal(t, 0, stats.PendingTasks)
	assert.Equal(t, 100.0, stats.CompletionPercentage)
}

func TestAssignment_IsOverdue(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	assert.True(t, (&Assignment{Deadline: &past}).IsOverdue(now))
	assert.False(t, (&Assignment{Deadline: &future}).IsOverdue(now))
	assert.False(t, (&Assignment{}).IsOverdue(now))
}

func TestParseAssignmentType(t *testing.T) {
	typ, ok := ParseAssignmentType("roadmap")
	assert.True(t, ok)
	assert.Equal(t, AssignmentTypeRoadmap, typ)

	_, ok = ParseAssignmentType("SPRINT")
	assert.False(t, ok)
}
