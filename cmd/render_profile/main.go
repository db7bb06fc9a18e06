// Command render_profile renders a portfolio document or a resume text file
// to HTML or PDF without a server or database.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"portfolio-builder/internal/config"
	"portfolio-builder/internal/model"
	"portfolio-builder/pkg/document"
	infra "portfolio-builder/pkg/infrastructure"
	"portfolio-builder/pkg/pdf"

	"github.com/google/uuid"
	flag "github.com/spf13/pflag"
)

// Exit codes.
const (
	ExitSuccess = 0
	ExitGeneral = 1
	ExitUsage   = 2
	ExitIO      = 3
	ExitPDF     = 4
)

var (
	ErrUsage     = errors.New("usage")
	ErrReadInput = errors.New("read input")
	ErrWrite     = errors.New("write output")
)

type options struct {
	template   string
	out        string
	htmlOnly   bool
	resume     bool
	name       string
	backend    string
	chromePath string
	timeout    time.Duration
	verbose    bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, input, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(stderr, "render_profile: %v\n", err)
		return ExitUsage
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	out, err := render(ctx, opts, input, log)
	if err != nil {
		fmt.Fprintf(stderr, "render_profile: %v\n", err)
		return exitCodeFor(err)
	}
	fmt.Fprintf(stdout, "wrote %s\n", out)
	return ExitSuccess
}

func parseFlags(args []string, stderr io.Writer) (options, string, error) {
	var opts options
	fs := flag.NewFlagSet("render_profile", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&opts.template, "template", "t", document.DefaultTemplate, "template: "+strings.Join(document.TemplateIDs(), ", "))
	fs.StringVarP(&opts.out, "out", "o", "", "output file (default: input name with .html or .pdf)")
	fs.BoolVar(&opts.htmlOnly, "html-only", false, "write styled HTML instead of PDF")
	fs.BoolVar(&opts.resume, "resume", false, "input is resume text or HTML instead of a JSON portfolio")
	fs.StringVar(&opts.name, "name", "", "full name for the resume title (with --resume)")
	fs.StringVar(&opts.backend, "backend", config.BackendChromedp, "primary PDF backend: chromedp, rod or text")
	fs.StringVar(&opts.chromePath, "chrome-path", "", "browser executable")
	fs.DurationVar(&opts.timeout, "timeout", 60*time.Second, "render timeout")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "log renderer activity")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: render_profile [flags] <input>\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return opts, "", err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return opts, "", fmt.Errorf("%w: expected exactly one input file", ErrUsage)
	}
	if _, ok := document.ResolveTemplate(opts.template); !ok {
		return opts, "", fmt.Errorf("%w: unknown template %q", ErrUsage, opts.template)
	}
	switch opts.backend {
	case config.BackendChromedp, config.BackendRod, config.BackendText:
	default:
		return opts, "", fmt.Errorf("%w: unknown backend %q", ErrUsage, opts.backend)
	}
	return opts, fs.Arg(0), nil
}

func render(ctx context.Context, opts options, input string, log *slog.Logger) (string, error) {
	raw, err := os.ReadFile(input)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	html, filename, err := buildHTML(opts, raw)
	if err != nil {
		return "", err
	}
	tpl, _ := document.ResolveTemplate(opts.template)

	out := opts.out
	if out == "" {
		ext := ".pdf"
		if opts.htmlOnly {
			ext = ".html"
		}
		out = strings.TrimSuffix(input, filepath.Ext(input)) + ext
	}

	var data []byte
	if opts.htmlOnly {
		data = []byte(document.InjectCSS(html, document.TemplateCSS(tpl)))
	} else {
		primary := primaryRenderer(opts)
		if c, ok := primary.(io.Closer); ok {
			defer c.Close()
		}
		gen := pdf.NewGenerator(primary, infra.NewTextRenderer(), pdf.Options{Attempts: 3, Logger: log})
		ctx, cancel := context.WithTimeout(ctx, opts.timeout)
		defer cancel()
		res, err := gen.Generate(ctx, pdf.Request{HTML: html, Template: tpl, Filename: filename})
		if err != nil {
			return "", err
		}
		log.Info("pdf rendered", "renderer", res.Renderer, "size", len(res.PDF))
		data = res.PDF
	}

	if err := os.WriteFile(out, data, 0o644); err != nil {
		return "", fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return out, nil
}

// buildHTML returns the unstyled document and its download name.
func buildHTML(opts options, raw []byte) (string, string, error) {
	if opts.resume {
		return document.FormatResumeForPDF(opts.name, string(raw)), pdf.DefaultFilename, nil
	}
	doc, err := model.ParsePortfolio(raw)
	if err != nil {
		return "", "", err
	}
	p, err := doc.ToPortfolio(uuid.New(), time.Now().UTC())
	if err != nil {
		return "", "", err
	}
	if err := p.Validate(); err != nil {
		return "", "", fmt.Errorf("%w: %w", model.ErrInvalidDocument, err)
	}
	html, err := document.CreatePortfolioHTML(p)
	if err != nil {
		return "", "", err
	}
	return html, "portfolio.pdf", nil
}

func primaryRenderer(opts options) pdf.Renderer {
	switch opts.backend {
	case config.BackendRod:
		return infra.NewRodRenderer(opts.chromePath, opts.timeout)
	case config.BackendText:
		return infra.NewTextRenderer()
	}
	return infra.NewChromedpRenderer(opts.chromePath, opts.timeout)
}

func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, pdf.ErrUnavailable), errors.Is(err, pdf.ErrRenderFailed):
		return ExitPDF
	case errors.Is(err, ErrReadInput), errors.Is(err, ErrWrite), errors.Is(err, os.ErrNotExist):
		return ExitIO
	case errors.Is(err, ErrUsage), errors.Is(err, model.ErrInvalidDocument):
		return ExitUsage
	}
	return ExitGeneral
}
