package infrastructure

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"time"

	"portfolio-builder/pkg/document"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// A4 in inches.
const (
	a4WidthInches  = 8.27
	a4HeightInches = 11.69
)

// RodRenderer prints documents to PDF through go-rod. The browser is
// started on first use and shared until Close.
type RodRenderer struct {
	bin     string
	timeout time.Duration

	mu      sync.Mutex
	browser *rod.Browser
}

// NewRodRenderer uses the browser at bin, or the one rod finds on the
// system when bin is empty.
func NewRodRenderer(bin string, timeout time.Duration) *RodRenderer {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &RodRenderer{bin: bin, timeout: timeout}
}

func (r *RodRenderer) Name() string { return "rod" }

// Available reports whether a local browser exists. Rod can download one,
// but that never happens implicitly here.
func (r *RodRenderer) Available() bool {
	return r.browserPath() != ""
}

func (r *RodRenderer) browserPath() string {
	if r.bin != "" {
		if p, err := exec.LookPath(r.bin); err == nil {
			return p
		}
		return ""
	}
	p, ok := launcher.LookPath()
	if !ok {
		return ""
	}
	return p
}

func (r *RodRenderer) ensureBrowser() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.browser != nil {
		return r.browser, nil
	}

	bin := r.browserPath()
	if bin == "" {
		return nil, fmt.Errorf("rod: browser not found")
	}
	u, err := launcher.New().Bin(bin).Headless(true).NoSandbox(true).Launch()
	if err != nil {
		return nil, fmt.Errorf("rod: launch: %w", err)
	}
	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("rod: connect: %w", err)
	}
	r.browser = b
	return b, nil
}

// Render loads the styled document and prints it on A4.
func (r *RodRenderer) Render(ctx context.Context, html, css string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	browser, err := r.ensureBrowser()
	if err != nil {
		return nil, err
	}

	htmlPath, cleanup, err := writeTempHTML(document.InjectCSS(html, css))
	if err != nil {
		return nil, fmt.Errorf("rod: write html: %w", err)
	}
	defer cleanup()

	page, err := browser.Context(ctx).Page(proto.TargetCreateTarget{URL: "file://" + htmlPath})
	if err != nil {
		return nil, fmt.Errorf("rod: open page: %w", err)
	}
	defer page.Close()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if timeout = time.Until(deadline); timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}
	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("rod: load page: %w", err)
	}

	width, height := a4WidthInches, a4HeightInches
	stream, err := page.PDF(&proto.PagePrintToPDF{
		PaperWidth:        &width,
		PaperHeight:       &height,
		PrintBackground:   true,
		PreferCSSPageSize: true,
	})
	if err != nil {
		return nil, fmt.Errorf("rod: print: %w", err)
	}
	out, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("rod: read pdf stream: %w", err)
	}
	return out, nil
}

// Close shuts the shared browser down.
func (r *RodRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.browser == nil {
		return nil
	}
	err := r.browser.Close()
	r.browser = nil
	return err
}
