package validators

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsHexColor(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"#fff", true},
		{"#A1B2C3", true},
		{"#abcd", false},
		{"fff", false},
		{"#ggg", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, IsHexColor(tt.input))
		})
	}
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(""))
	assert.True(t, IsBlank("  \t"))
	assert.False(t, IsBlank(" x "))
}

func TestIsHTTPURL(t *testing.T) {
	assert.True(t, IsHTTPURL("https://github.com/me/repo"))
	assert.False(t, IsHTTPURL("ftp://example.com"))
	assert.False(t, IsHTTPURL("/relative"))
}

func TestMaxLen(t *testing.T) {
	assert.True(t, MaxLen("héllo", 5))
	assert.False(t, MaxLen(strings.Repeat("a", 256), 255))
}

func TestInRange(t *testing.T) {
	assert.True(t, InRange(3, 1, 5))
	assert.False(t, InRange(6, 1, 5))
	assert.True(t, InRange(100.0, 0.0, 100.0))
	assert.False(t, InRange(-0.5, 0.0, 100.0))
}
