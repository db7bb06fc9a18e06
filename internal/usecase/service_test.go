package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"portfolio-builder/internal/domain"
	"portfolio-builder/internal/model"
	"portfolio-builder/pkg/pdf"

	"github.com/google/uuid"
)

type memStore struct {
	mu         sync.Mutex
	portfolios map[uuid.UUID]*domain.Portfolio
	exports    []domain.Export
	saveErr    error
}

func newMemStore() *memStore {
	return &memStore{portfolios: map[uuid.UUID]*domain.Portfolio{}}
}

func (m *memStore) LoadPortfolio(_ context.Context, id uuid.UUID) (*domain.Portfolio, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.portfolios[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memStore) SavePortfolio(_ context.Context, p *domain.Portfolio) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.portfolios[p.User.ID] = p
	return nil
}

func (m *memStore) SaveExport(_ context.Context, e *domain.Export) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.exports = append(m.exports, *e)
	return nil
}

func (m *memStore) ListExports(_ context.Context, id uuid.UUID, limit int) ([]domain.Export, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Export{}
	for i := len(m.exports) - 1; i >= 0 && len(out) < limit; i-- {
		if m.exports[i].UserID == id {
			out = append(out, m.exports[i])
		}
	}
	return out, nil
}

type fakeGenerator struct {
	err  error
	reqs []pdf.Request
}

func (f *fakeGenerator) Generate(_ context.Context, req pdf.Request) (*pdf.Result, error) {
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return nil, f.err
	}
	return &pdf.Result{PDF: []byte("%PDF-1.4 fake"), Filename: pdf.CleanFilename(req.Filename), ContentType: pdf.ContentType, Renderer: "fake"}, nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seededService(t *testing.T, opts Options) (*Service, *memStore, *fakeGenerator, uuid.UUID) {
	t.Helper()
	store := newMemStore()
	id := uuid.New()
	store.portfolios[id] = &domain.Portfolio{
		User:    domain.User{ID: id, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
		Profile: &domain.Profile{UserID: id, Summary: "Analyst", Skills: "Math"},
		Experiences: []domain.Experience{
			{Company: "Babbage", Position: "Analyst", StartDate: time.Date(1842, 1, 1, 0, 0, 0, 0, time.UTC), CurrentlyWorking: true},
		},
	}
	gen := &fakeGenerator{}
	if opts.Logger == nil {
		opts.Logger = quietLogger()
	}
	return NewService(store, store, gen, opts), store, gen, id
}

func TestService_RenderPortfolio(t *testing.T) {
	t.Parallel()

	svc, _, _, id := seededService(t, Options{})
	html, err := svc.RenderPortfolio(context.Background(), id, "creative")
	if err != nil {
		t.Fatalf("RenderPortfolio() error = %v", err)
	}
	if !strings.Contains(html, "<style>") || !strings.Contains(html, "#ff6b6b") {
		t.Error("template CSS not inlined")
	}
	if !strings.Contains(html, "<h1>Ada Lovelace</h1>") {
		t.Error("portfolio body missing")
	}

	if _, err := svc.RenderPortfolio(context.Background(), uuid.New(), ""); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unknown user error = %v", err)
	}
}

func TestService_Template(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := seededService(t, Options{DefaultTemplate: "classic"})
	tests := map[string]string{"": "classic", "  ": "classic", "Minimal": "minimal", "retro": "modern"}
	for in, want := range tests {
		if got := svc.Template(in); got != want {
			t.Errorf("Template(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestService_ExportPortfolioPDF(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	svc, store, gen, id := seededService(t, Options{OutputDir: dir})

	res, err := svc.ExportPortfolioPDF(context.Background(), id, "executive")
	if err != nil {
		t.Fatalf("ExportPortfolioPDF() error = %v", err)
	}
	if !strings.HasSuffix(res.Filename, "_portfolio.pdf") || !strings.Contains(res.Filename, "lovelace") {
		t.Errorf("Filename = %q", res.Filename)
	}
	if len(gen.reqs) != 1 || gen.reqs[0].Template != "executive" || !strings.Contains(gen.reqs[0].HTML, "Portfolio - Ada Lovelace") {
		t.Errorf("generator request = %+v", gen.reqs)
	}

	if len(store.exports) != 1 {
		t.Fatalf("exports recorded = %d", len(store.exports))
	}
	rec := store.exports[0]
	if rec.Kind != domain.ExportPortfolio || rec.Status != domain.ExportCompleted || rec.Renderer != "fake" || rec.Size != len(res.PDF) {
		t.Errorf("export record = %+v", rec)
	}

	base := filepath.Join(dir, id.String(), rec.ID.String())
	for _, ext := range []string{".html", ".pdf"} {
		if _, err := os.Stat(base + ext); err != nil {
			t.Errorf("archived %s missing: %v", ext, err)
		}
	}
	styled, _ := os.ReadFile(base + ".html")
	if !strings.Contains(string(styled), "Confidential - ") {
		t.Error("archived HTML is not styled with the export template")
	}
}

func TestService_ExportResumePDF(t *testing.T) {
	t.Parallel()

	svc, store, gen, id := seededService(t, Options{})

	res, err := svc.ExportResumePDF(context.Background(), id, ResumeRequest{Content: "# Ada\n- Math", Filename: "ada.pdf"})
	if err != nil {
		t.Fatalf("ExportResumePDF() error = %v", err)
	}
	if res.Filename != "ada.pdf" {
		t.Errorf("Filename = %q", res.Filename)
	}
	html := gen.reqs[0].HTML
	if !strings.Contains(html, "<title>Resume - Ada Lovelace</title>") || !strings.Contains(html, "<h1>Ada</h1><ul><li>Math</li></ul>") {
		t.Errorf("legacy resume not formatted: %s", html)
	}
	if gen.reqs[0].Template != "modern" {
		t.Errorf("template = %q, want default", gen.reqs[0].Template)
	}
	if store.exports[0].Kind != domain.ExportResume {
		t.Errorf("kind = %q", store.exports[0].Kind)
	}
}

func TestService_ExportResumePDF_FromPortfolio(t *testing.T) {
	t.Parallel()

	svc, _, gen, id := seededService(t, Options{})
	if _, err := svc.ExportResumePDF(context.Background(), id, ResumeRequest{}); err != nil {
		t.Fatalf("ExportResumePDF() error = %v", err)
	}
	html := gen.reqs[0].HTML
	if !strings.Contains(html, "<title>Resume</title>") || !strings.Contains(html, "<h2>Work Experience</h2>") {
		t.Errorf("stored portfolio not rendered as resume: %s", html)
	}
}

func TestService_ExportFailureIsRecorded(t *testing.T) {
	t.Parallel()

	svc, store, gen, id := seededService(t, Options{})
	gen.err = pdf.ErrUnavailable

	_, err := svc.ExportPortfolioPDF(context.Background(), id, "")
	if !errors.Is(err, pdf.ErrUnavailable) {
		t.Fatalf("error = %v, want ErrUnavailable", err)
	}
	if len(store.exports) != 1 || store.exports[0].Status != domain.ExportFailed || store.exports[0].Metadata["error"] == nil {
		t.Errorf("failed export not recorded: %+v", store.exports)
	}
}

func TestService_ExportRecordErrorIsIgnored(t *testing.T) {
	t.Parallel()

	svc, store, _, id := seededService(t, Options{})
	store.saveErr = errors.New("disk full")

	if _, err := svc.ExportPortfolioPDF(context.Background(), id, ""); err != nil {
		t.Errorf("export failed because of history store: %v", err)
	}
}

func TestService_ImportPortfolio(t *testing.T) {
	t.Parallel()

	svc, store, _, _ := seededService(t, Options{})
	id := uuid.New()
	doc := []byte(`{
		"user": {"first_name": "Grace", "last_name": "Hopper", "email": "grace@example.com"},
		"experience": [{"company": "Navy", "position": "Officer", "start_date": "1943-12"}],
		"projects": [{"title": "COBOL", "description": "Language"}]
	}`)

	p, err := svc.ImportPortfolio(context.Background(), id, doc)
	if err != nil {
		t.Fatalf("ImportPortfolio() error = %v", err)
	}
	if p.User.ID != id || len(p.Experiences) != 1 || len(p.Projects) != 1 {
		t.Errorf("portfolio = %+v", p)
	}
	if _, ok := store.portfolios[id]; !ok {
		t.Error("portfolio not stored")
	}

	html, err := svc.RenderPortfolio(context.Background(), id, "")
	if err != nil || !strings.Contains(html, "Grace Hopper") {
		t.Errorf("imported portfolio not renderable: %v", err)
	}
}

func TestService_ImportPortfolio_Invalid(t *testing.T) {
	t.Parallel()

	svc, store, _, _ := seededService(t, Options{})
	id := uuid.New()

	_, err := svc.ImportPortfolio(context.Background(), id, []byte(`{"user": {"email": 5}}`))
	if !errors.Is(err, model.ErrInvalidDocument) {
		t.Errorf("schema error = %v", err)
	}

	_, err = svc.ImportPortfolio(context.Background(), id, []byte(`{"user": {"email": "not-an-email"}}`))
	if !domain.IsValidationError(err) {
		t.Errorf("model validation error = %v", err)
	}

	_, err = svc.ImportPortfolio(context.Background(), id, []byte(`{"user": {"email": "a@b.co"},
		"education": [{"institution": "X", "degree": "bachelor", "field_of_study": "Y", "start_date": "2020-01", "end_date": "2019-01"}]}`))
	if !domain.IsValidationError(err) {
		t.Errorf("end before start error = %v", err)
	}

	if _, ok := store.portfolios[id]; ok {
		t.Error("invalid document was stored")
	}
}

func TestService_ListExports(t *testing.T) {
	t.Parallel()

	svc, _, _, id := seededService(t, Options{})
	for _, tpl := range []string{"modern", "classic"} {
		if _, err := svc.ExportPortfolioPDF(context.Background(), id, tpl); err != nil {
			t.Fatal(err)
		}
	}
	got, err := svc.ListExports(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Template != "classic" {
		t.Errorf("ListExports() = %+v", got)
	}

	none := NewService(newMemStore(), nil, &fakeGenerator{}, Options{Logger: quietLogger()})
	if got, err := none.ListExports(context.Background(), id); err != nil || got == nil || len(got) != 0 {
		t.Errorf("ListExports() without store = %v, %v", got, err)
	}
}

func TestPortfolioFilename(t *testing.T) {
	t.Parallel()

	if got := PortfolioFilename(domain.User{}); got != "portfolio.pdf" {
		t.Errorf("PortfolioFilename(empty) = %q", got)
	}
	got := PortfolioFilename(domain.User{FirstName: "Ada", LastName: "Lovelace"})
	if strings.ContainsAny(got, " /\"") || got != strings.ToLower(got) {
		t.Errorf("PortfolioFilename() = %q", got)
	}
}
