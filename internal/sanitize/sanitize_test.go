package sanitize_test

import (
	"testing"

	"github.com/dimitrije/workspace-api/internal/sanitize"
	"github.com/stretchr/testify/assert"
)

func TestSanitize_Empty(t *testing.T) {
	assert.Equal(t, "", sanitize.Sanitize(""))
}

func TestSanitize_PlainText(t *testing.T) {
	assert.Equal(t, "Hello, World!", sanitize.Sanitize("Hello, World!"))
}

func TestSanitize_SafeHTML(t *testing.T) {
	input := "<p><strong>Bold</strong> and <em>italic</em></p>"
	assert.Equal(t, input, sanitize.Sanitize(input))
}

func TestSanitize_RemovesScript(t *testing.T) {
	assert.Equal(t, "<p>Hello</p>", sanitize.Sanitize("<p>Hello</p><script>alert(1)</script>"))
}

func TestSanitize_RemovesOnclick(t *testing.T) {
	result := sanitize.Sanitize(`<p onclick="alert(1)">Click</p>`)
	assert.NotContains(t, result, "onclick")
	assert.Contains(t, result, "Click")
}

func TestSanitize_RemovesJavascriptHref(t *testing.T) {
	result := sanitize.Sanitize(`<a href="javascript:alert(1)">Click</a>`)
	assert.NotContains(t, result, "javascript:")
}

func TestSanitize_AllowsSafeLinks(t *testing.T) {
	result := sanitize.Sanitize(`<a href="https://example.com">Link</a>`)
	assert.Contains(t, result, `href="https://example.com"`)
}

func TestStripTags(t *testing.T) {
	assert.Equal(t, "Bold text", sanitize.StripTags("<b>Bold</b> text<script>x()</script>"))
	assert.Equal(t, "", sanitize.StripTags(""))
}
