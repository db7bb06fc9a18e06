package infrastructure

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-pdf/fpdf"
)

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// Layout of the plain-text fallback, in points.
const (
	titleMaxRunes  = 50
	titleFontSize  = 18
	titleSpace     = 30
	bodyFontSize   = 12
	bodySpace      = 12
	paragraphSpace = 12
	pageMargin     = 72
	lineSpacing    = 1.2
)

// TextBlock is one paragraph of the fallback layout.
type TextBlock struct {
	Text  string
	Title bool
}

// TextBlocks strips markup from an HTML document and splits the remaining
// text into paragraphs on blank lines. Short paragraphs that do not end
// with a period are treated as titles.
func TextBlocks(doc string) []TextBlock {
	text := html.UnescapeString(tagPattern.ReplaceAllString(doc, ""))

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}

	var blocks []TextBlock
	for _, para := range strings.Split(strings.Join(lines, "\n"), "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		blocks = append(blocks, TextBlock{
			Text:  para,
			Title: utf8.RuneCountInString(para) < titleMaxRunes && !strings.HasSuffix(para, "."),
		})
	}
	return blocks
}

// TextRenderer lays out the text content of a document with core PDF
// fonts. It needs no browser and is always available; styling is lost.
type TextRenderer struct{}

func NewTextRenderer() *TextRenderer { return &TextRenderer{} }

func (r *TextRenderer) Name() string { return "text" }

func (r *TextRenderer) Available() bool { return true }

// Render ignores css: the fallback only keeps the document text.
func (r *TextRenderer) Render(ctx context.Context, doc, _ string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle("Resume", true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, b := range TextBlocks(doc) {
		if b.Title {
			pdf.SetFont("Helvetica", "B", titleFontSize)
			pdf.MultiCell(0, titleFontSize*lineSpacing, tr(b.Text), "", "C", false)
			pdf.Ln(titleSpace)
		} else {
			pdf.SetFont("Helvetica", "", bodyFontSize)
			pdf.MultiCell(0, bodyFontSize*lineSpacing, tr(b.Text), "", "L", false)
			pdf.Ln(bodySpace)
		}
		pdf.Ln(paragraphSpace)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("text: write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
