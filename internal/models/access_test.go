package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAccessGrants_SkipsOwner(t *testing.T) {
	owner := uuid.New()
	reader := uuid.New()

	grants := AccessGrants(owner, []uuid.UUID{owner, reader}, []uuid.UUID{owner}, nil)

	assert.Equal(t, []AccessGrant{{UserID: reader, Level: AccessRead}}, grants)
}

func TestAccessGrants_HighestLevelWins(t *testing.T) {
	owner := uuid.New()
	u1 := uuid.New()
	u2 := uuid.New()

	grants := AccessGrants(owner,
		[]uuid.UUID{u1, u2},
		[]uuid.UUID{u1},
		[]uuid.UUID{u2, u2},
	)

	assert.Equal(t, []AccessGrant{
		{UserID: u1, Level: AccessWrite},
		{UserID: u2, Level: AccessAdmin},
	}, grants)
}

func TestAccessGrants_Empty(t *testing.T) {
	assert.Empty(t, AccessGrants(uuid.New(), nil, nil, nil))
}

func TestParseAccessLevel(t *testing.T) {
	tests := []struct {
		input string
		want  AccessLevel
		ok    bool
	}{
		{"read", AccessRead, true},
		{"READ", AccessRead, true},
		{"Write", AccessWrite, true},
		{" admin ", AccessAdmin, true},
		{"owner", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseAccessLevel(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAccessLevel_AtLeast(t *testing.T) {
	assert.True(t, AccessAdmin.AtLeast(AccessWrite))
	assert.True(t, AccessWrite.AtLeast(AccessWrite))
	assert.False(t, AccessRead.AtLeast(AccessWrite))
	assert.False(t, AccessLevel("").AtLeast(AccessRead))
}
