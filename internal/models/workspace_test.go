package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseVisibility(t *testing.T) {
	v, ok := ParseVisibility(" public ")
	assert.True(t, ok)
	assert.Equal(t, VisibilityPublic, v)

	_, ok = ParseVisibility("SECRET")
	assert.False(t, ok)
}

func TestWorkspaceInput_VisibilityOrDefault(t *testing.T) {
	assert.Equal(t, VisibilityPrivate, WorkspaceInput{}.VisibilityOrDefault())
	assert.Equal(t, VisibilityPublic, WorkspaceInput{Visibility: VisibilityPublic}.VisibilityOrDefault())
}
