package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	out, err := Render("# Hello\n\nSome **bold** text.")
	require.NoError(t, err)

	assert.Contains(t, string(out), "<h1>Hello</h1>")
	assert.Contains(t, string(out), "<strong>bold</strong>")
}

func TestRenderDropsRawHTML(t *testing.T) {
	out, err := Render("<script>alert(1)</script>\n\ntext")
	require.NoError(t, err)

	assert.NotContains(t, string(out), "<script>")
	assert.Contains(t, string(out), "text")
}
