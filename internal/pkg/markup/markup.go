package markup

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// Render converts a Markdown body to HTML. Raw HTML in the source is
// dropped by goldmark's default (non-unsafe) renderer.
func Render(source string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("render markdown failed: %w", err)
	}
	return template.HTML(buf.String()), nil
}
