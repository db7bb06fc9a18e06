package infrastructure

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"portfolio-builder/pkg/document"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// chromeCandidates are looked up on PATH when no explicit binary is set.
var chromeCandidates = []string{"google-chrome", "google-chrome-stable", "chromium", "chromium-browser", "headless-shell"}

// ChromedpRenderer prints documents to PDF with headless Chrome.
type ChromedpRenderer struct {
	execPath string
	timeout  time.Duration
}

// NewChromedpRenderer uses the browser at execPath, or the first Chrome
// found on PATH when execPath is empty.
func NewChromedpRenderer(execPath string, timeout time.Duration) *ChromedpRenderer {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ChromedpRenderer{execPath: execPath, timeout: timeout}
}

func (r *ChromedpRenderer) Name() string { return "chromedp" }

// Available reports whether a Chrome binary can be located.
func (r *ChromedpRenderer) Available() bool {
	return r.browserPath() != ""
}

func (r *ChromedpRenderer) browserPath() string {
	if r.execPath != "" {
		if p, err := exec.LookPath(r.execPath); err == nil {
			return p
		}
		return ""
	}
	for _, name := range chromeCandidates {
		if p, err := exec.LookPath(name); err == nil {
			return p
		}
	}
	return ""
}

// Render loads the styled document in a fresh browser and prints it on A4.
func (r *ChromedpRenderer) Render(ctx context.Context, html, css string) ([]byte, error) {
	bin := r.browserPath()
	if bin == "" {
		return nil, fmt.Errorf("chromedp: chrome binary not found")
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.ExecPath(bin),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	cctx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	tctx, cancelTimeout := context.WithTimeout(cctx, r.timeout)
	defer cancelTimeout()

	htmlPath, cleanup, err := writeTempHTML(document.InjectCSS(html, css))
	if err != nil {
		return nil, fmt.Errorf("chromedp: write html: %w", err)
	}
	defer cleanup()

	var pdfBuf []byte
	err = chromedp.Run(tctx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4: 210mm x 297mm -> inches: 8.27 x 11.69
			pdfBuf, _, err = page.PrintToPDF().WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("chromedp: print: %w", err)
	}
	return pdfBuf, nil
}
