// Package mdconv converts the composer's restricted Markdown dialect to
// HTML using goldmark, so that composer.SetContentFromMarkdown can reuse
// htmlio.Parse rather than building a second Dom constructor.
package mdconv

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.Strikethrough),
)

// ToHTML renders source Markdown to an HTML fragment. Block elements
// outside the composer's supported set (tables, thematic breaks, images)
// render through goldmark's default HTML renderer and are then spliced
// through or dropped by htmlio.Parse, the same way any other unsupported
// tag is handled when converting from arbitrary HTML.
func ToHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("mdconv: convert: %w", err)
	}
	return buf.String(), nil
}
