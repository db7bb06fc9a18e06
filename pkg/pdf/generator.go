package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"portfolio-builder/pkg/document"
)

// ContentType of every generated document.
const ContentType = "application/pdf"

// DefaultFilename is used when a request carries no filename.
const DefaultFilename = "resume.pdf"

// UnavailableMessage is the plain-text body sent when no renderer can run.
const UnavailableMessage = "PDF generation is currently unavailable. Please install a supported PDF renderer."

var (
	// ErrUnavailable means neither the primary nor the fallback renderer can run.
	ErrUnavailable = errors.New("pdf generation unavailable")
	// ErrRenderFailed means every available renderer returned an error.
	ErrRenderFailed = errors.New("pdf render failed")
	// ErrInvalidPDF means a renderer returned bytes without the PDF signature.
	ErrInvalidPDF = errors.New("renderer output is not a pdf")
)

// Renderer turns an HTML document plus a stylesheet into PDF bytes.
type Renderer interface {
	Name() string
	Available() bool
	Render(ctx context.Context, html, css string) ([]byte, error)
}

// Request describes one document to convert.
type Request struct {
	HTML     string
	Template string
	Filename string
}

// Result is a generated PDF ready to be served as an attachment.
type Result struct {
	PDF         []byte
	Filename    string
	ContentType string
	Renderer    string
}

// ContentDisposition returns the attachment header value for the result.
func (r *Result) ContentDisposition() string {
	return fmt.Sprintf("attachment; filename=%q", r.Filename)
}

// Options tune retries of the primary renderer.
type Options struct {
	// Attempts is the number of tries for the primary renderer (min 1).
	Attempts int
	// Backoff is the delay before the second attempt; it doubles afterwards.
	Backoff time.Duration
	Logger  *slog.Logger
}

// Generator converts HTML to PDF with a primary renderer and an optional
// fallback that is used when the primary is missing or keeps failing.
type Generator struct {
	primary  Renderer
	fallback Renderer
	attempts int
	backoff  time.Duration
	log      *slog.Logger
	sleep    func(ctx context.Context, d time.Duration) error
}

// NewGenerator wires the renderers. Either may be nil.
func NewGenerator(primary, fallback Renderer, opts Options) *Generator {
	if opts.Attempts < 1 {
		opts.Attempts = 1
	}
	if opts.Backoff <= 0 {
		opts.Backoff = time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Generator{
		primary:  primary,
		fallback: fallback,
		attempts: opts.Attempts,
		backoff:  opts.Backoff,
		log:      opts.Logger,
		sleep:    sleepContext,
	}
}

// Available reports whether any configured renderer can run.
func (g *Generator) Available() bool {
	return usable(g.primary) || usable(g.fallback)
}

// Renderers lists the configured renderers and their availability.
func (g *Generator) Renderers() map[string]bool {
	out := map[string]bool{}
	for _, r := range []Renderer{g.primary, g.fallback} {
		if r != nil {
			out[r.Name()] = r.Available()
		}
	}
	return out
}

// Generate renders req.HTML with the stylesheet of req.Template.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	if !g.Available() {
		return nil, ErrUnavailable
	}
	css := document.TemplateCSS(req.Template)
	filename := CleanFilename(req.Filename)

	var lastErr error
	if usable(g.primary) {
		out, err := g.renderWithRetry(ctx, g.primary, req.HTML, css, g.attempts)
		if err == nil {
			return &Result{PDF: out, Filename: filename, ContentType: ContentType, Renderer: g.primary.Name()}, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		lastErr = err
		g.log.Warn("primary pdf renderer failed", "renderer", g.primary.Name(), "error", err)
	}

	if usable(g.fallback) {
		out, err := g.renderWithRetry(ctx, g.fallback, req.HTML, css, 1)
		if err == nil {
			g.log.Info("pdf rendered with fallback", "renderer", g.fallback.Name(), "filename", filename)
			return &Result{PDF: out, Filename: filename, ContentType: ContentType, Renderer: g.fallback.Name()}, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("%w: %v", ErrRenderFailed, lastErr)
}

func (g *Generator) renderWithRetry(ctx context.Context, r Renderer, html, css string, attempts int) ([]byte, error) {
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			delay := g.backoff << (attempt - 2)
			g.log.Debug("retrying pdf render", "renderer", r.Name(), "attempt", attempt, "delay", delay)
			if serr := g.sleep(ctx, delay); serr != nil {
				return nil, serr
			}
		}
		var out []byte
		out, err = r.Render(ctx, html, css)
		if err == nil {
			if !IsPDF(out) {
				err = ErrInvalidPDF
				continue
			}
			return out, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	return nil, fmt.Errorf("%s after %d attempt(s): %w", r.Name(), attempts, err)
}

// IsPDF checks for the %PDF signature.
func IsPDF(b []byte) bool {
	return bytes.HasPrefix(b, []byte("%PDF"))
}

// CleanFilename strips characters that would break a Content-Disposition
// header or escape a directory, defaulting to DefaultFilename.
func CleanFilename(name string) string {
	name = strings.Map(func(r rune) rune {
		switch {
		case r == '"' || r == '\\' || r == '/' || r < 0x20:
			return -1
		}
		return r
	}, strings.TrimSpace(name))
	name = strings.TrimLeft(name, ".")
	if name == "" {
		return DefaultFilename
	}
	return name
}

func usable(r Renderer) bool {
	return r != nil && r.Available()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
