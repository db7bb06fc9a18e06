package document

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

// markdown renders the small markdown subset used in profile texts
// (headings, bold, rules, lists, paragraphs). Raw HTML passes through so
// fragments produced by the HTML generators can be mixed in.
var markdown = goldmark.New(
	goldmark.WithRendererOptions(
		html.WithUnsafe(),
	),
)

// MarkdownToHTML converts simple markdown to an HTML fragment.
func MarkdownToHTML(text string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("markdown convert: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}
