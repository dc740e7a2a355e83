package slug

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Go Study Group", "go-study-group"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Café Société", "cafe-societe"},
		{"C++ & Rust!!", "c-rust"},
		{"multiple---dashes", "multiple-dashes"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Generate(tt.input))
		})
	}
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("go-study-group"))
	assert.True(t, IsValid("team42"))
	assert.False(t, IsValid("Go-Study"))
	assert.False(t, IsValid("-leading"))
	assert.False(t, IsValid("double--dash"))
	assert.False(t, IsValid(""))
}

func TestGenerateUnique(t *testing.T) {
	taken := map[string]bool{"study": true, "study-2": true}

	got, err := GenerateUnique("study", func(s string) (bool, error) { return taken[s], nil })

	require.NoError(t, err)
	assert.Equal(t, "study-3", got)
}

func TestGenerateUnique_PropagatesError(t *testing.T) {
	_, err := GenerateUnique("study", func(string) (bool, error) { return false, errors.New("db down") })

	assert.EqualError(t, err, "db down")
}
