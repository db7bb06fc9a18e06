package infrastructure

import (
	"bytes"
	"context"
	"os"
	"reflect"
	"testing"

	"portfolio-builder/pkg/document"
	"portfolio-builder/pkg/pdf"
)

var (
	_ pdf.Renderer = (*ChromedpRenderer)(nil)
	_ pdf.Renderer = (*RodRenderer)(nil)
	_ pdf.Renderer = (*TextRenderer)(nil)
)

func TestTextBlocks(t *testing.T) {
	t.Parallel()

	doc := "<h1>Ada Lovelace</h1>\n\n<p>Wrote the first published algorithm &amp; notes.</p>\n  \n<p>Skills</p>\n\n\n<p>" +
		"This paragraph is long enough to be body text even without a period at the end" + "</p>"
	got := TextBlocks(doc)
	want := []TextBlock{
		{Text: "Ada Lovelace", Title: true},
		{Text: "Wrote the first published algorithm & notes.", Title: false},
		{Text: "Skills", Title: true},
		{Text: "This paragraph is long enough to be body text even without a period at the end", Title: false},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TextBlocks() =\n%+v\nwant\n%+v", got, want)
	}
}

func TestTextBlocks_ShortSentenceIsBody(t *testing.T) {
	t.Parallel()

	got := TextBlocks("<p>Short.</p>")
	if len(got) != 1 || got[0].Title {
		t.Errorf("TextBlocks() = %+v", got)
	}
}

func TestTextRenderer_Render(t *testing.T) {
	t.Parallel()

	r := NewTextRenderer()
	if !r.Available() || r.Name() != "text" {
		t.Fatal("text renderer must always be available")
	}

	doc := document.FormatResumeForPDF("Zoë Ångström", "# Zoë Ångström\n\nBuilt – things • daily.\n\n- Go\n- SQL")
	out, err := r.Render(context.Background(), doc, document.TemplateCSS("modern"))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !pdf.IsPDF(out) {
		t.Fatalf("output is not a PDF: %q", out[:min(len(out), 16)])
	}
	if !bytes.Contains(out, []byte("%%EOF")) {
		t.Error("PDF trailer missing")
	}
}

func TestTextRenderer_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewTextRenderer().Render(ctx, "<p>x</p>", ""); err == nil {
		t.Error("expected error for canceled context")
	}
}

func TestBrowserRenderers_MissingBinary(t *testing.T) {
	t.Parallel()

	missing := "/nonexistent/chrome-for-tests"
	if NewChromedpRenderer(missing, 0).Available() {
		t.Error("chromedp reported available with a missing binary")
	}
	rod := NewRodRenderer(missing, 0)
	if rod.Available() {
		t.Error("rod reported available with a missing binary")
	}
	if _, err := rod.Render(context.Background(), "<p>x</p>", ""); err == nil {
		t.Error("rod Render should fail without a browser")
	}
	if err := rod.Close(); err != nil {
		t.Errorf("Close() without browser = %v", err)
	}
}

func TestWriteTempHTML(t *testing.T) {
	t.Parallel()

	path, cleanup, err := writeTempHTML("<p>x</p>")
	if err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(path)
	if err != nil || string(b) != "<p>x</p>" {
		t.Fatalf("ReadFile() = %q, %v", b, err)
	}
	cleanup()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("cleanup did not remove the file")
	}
}
