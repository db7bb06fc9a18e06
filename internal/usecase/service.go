package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"portfolio-builder/internal/domain"
	"portfolio-builder/internal/model"
	"portfolio-builder/pkg/document"
	"portfolio-builder/pkg/pdf"

	"github.com/goliatone/go-slug"
	"github.com/google/uuid"
)

type Options struct {
	// DefaultTemplate is used when a request names no template.
	DefaultTemplate string
	// OutputDir, when set, receives a copy of every generated document.
	OutputDir string
	Logger    *slog.Logger
	Now       func() time.Time
}

// Service renders portfolios and resumes for stored users.
type Service struct {
	portfolios      PortfolioStore
	exports         ExportStore
	pdf             PDFGenerator
	defaultTemplate string
	outputDir       string
	log             *slog.Logger
	now             func() time.Time
}

func NewService(portfolios PortfolioStore, exports ExportStore, gen PDFGenerator, opts Options) *Service {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.DefaultTemplate == "" {
		opts.DefaultTemplate = document.DefaultTemplate
	}
	return &Service{
		portfolios:      portfolios,
		exports:         exports,
		pdf:             gen,
		defaultTemplate: opts.DefaultTemplate,
		outputDir:       opts.OutputDir,
		log:             opts.Logger,
		now:             opts.Now,
	}
}

// Template resolves a requested template id. Blank ids use the configured
// default; unknown ids fall back to modern.
func (s *Service) Template(id string) string {
	if strings.TrimSpace(id) == "" {
		id = s.defaultTemplate
	}
	resolved, ok := document.ResolveTemplate(id)
	if !ok {
		s.log.Debug("unknown template, using default", "template", id, "resolved", resolved)
	}
	return resolved
}

// RenderPortfolio returns the user's portfolio page with the template
// stylesheet inlined.
func (s *Service) RenderPortfolio(ctx context.Context, userID uuid.UUID, template string) (string, error) {
	p, err := s.portfolios.LoadPortfolio(ctx, userID)
	if err != nil {
		return "", err
	}
	html, err := document.CreatePortfolioHTML(p)
	if err != nil {
		return "", err
	}
	return document.InjectCSS(html, document.TemplateCSS(s.Template(template))), nil
}

// ExportPortfolioPDF renders the portfolio page to PDF.
func (s *Service) ExportPortfolioPDF(ctx context.Context, userID uuid.UUID, template string) (*pdf.Result, error) {
	p, err := s.portfolios.LoadPortfolio(ctx, userID)
	if err != nil {
		return nil, err
	}
	html, err := document.CreatePortfolioHTML(p)
	if err != nil {
		return nil, err
	}
	return s.export(ctx, userID, domain.ExportPortfolio, s.Template(template), html, PortfolioFilename(p.User))
}

// ExportResumePDF formats resume content for the user and renders it to
// PDF. Without content the stored portfolio is rendered as a resume.
func (s *Service) ExportResumePDF(ctx context.Context, userID uuid.UUID, req ResumeRequest) (*pdf.Result, error) {
	p, err := s.portfolios.LoadPortfolio(ctx, userID)
	if err != nil {
		return nil, err
	}
	content := req.Content
	if strings.TrimSpace(content) == "" {
		if content, err = document.RenderResumeBody(p); err != nil {
			return nil, err
		}
	}
	html := document.FormatResumeForPDF(p.User.FullName(), content)
	return s.export(ctx, userID, domain.ExportResume, s.Template(req.Template), html, req.Filename)
}

// ImportPortfolio validates a JSON portfolio document and replaces the
// user's stored data with it.
func (s *Service) ImportPortfolio(ctx context.Context, userID uuid.UUID, doc []byte) (*domain.Portfolio, error) {
	parsed, err := model.ParsePortfolio(doc)
	if err != nil {
		return nil, err
	}
	p, err := parsed.ToPortfolio(userID, s.now().UTC())
	if err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.portfolios.SavePortfolio(ctx, p); err != nil {
		return nil, fmt.Errorf("save portfolio: %w", err)
	}
	s.log.Info("portfolio imported", "user_id", userID,
		"educations", len(p.Educations), "experiences", len(p.Experiences), "projects", len(p.Projects))
	return p, nil
}

// ListExports returns the user's recent export history.
func (s *Service) ListExports(ctx context.Context, userID uuid.UUID) ([]domain.Export, error) {
	if s.exports == nil {
		return []domain.Export{}, nil
	}
	return s.exports.ListExports(ctx, userID, ExportHistoryLimit)
}

func (s *Service) export(ctx context.Context, userID uuid.UUID, kind, template, html, filename string) (*pdf.Result, error) {
	now := s.now().UTC()
	rec := &domain.Export{
		ID:        uuid.New(),
		UserID:    userID,
		Kind:      kind,
		Template:  template,
		Filename:  pdf.CleanFilename(filename),
		Metadata:  map[string]interface{}{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	res, err := s.pdf.Generate(ctx, pdf.Request{HTML: html, Template: template, Filename: filename})
	if err != nil {
		rec.Status = domain.ExportFailed
		rec.Metadata["error"] = err.Error()
		s.record(ctx, rec)
		return nil, err
	}

	rec.Status = domain.ExportCompleted
	rec.Renderer = res.Renderer
	rec.Size = len(res.PDF)
	rec.UpdatedAt = s.now().UTC()
	if dir := s.archive(rec, html, res.PDF); dir != "" {
		rec.Metadata["archive_dir"] = dir
	}
	s.record(ctx, rec)
	s.log.Info("document exported", "user_id", userID, "kind", kind, "template", template,
		"renderer", res.Renderer, "size", rec.Size)
	return res, nil
}

// record stores the export row. Failures only get logged.
func (s *Service) record(ctx context.Context, rec *domain.Export) {
	if s.exports == nil {
		return
	}
	if err := s.exports.SaveExport(context.WithoutCancel(ctx), rec); err != nil {
		s.log.Warn("unable to save export record (non-fatal)", "export_id", rec.ID, "error", err)
	}
}

// archive copies the styled HTML and the PDF to <OutputDir>/<user id>/.
func (s *Service) archive(rec *domain.Export, html string, pdfBytes []byte) string {
	if s.outputDir == "" {
		return ""
	}
	dir := filepath.Join(s.outputDir, rec.UserID.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		s.log.Warn("unable to create archive dir", "dir", dir, "error", err)
		return ""
	}
	styled := document.InjectCSS(html, document.TemplateCSS(rec.Template))
	base := filepath.Join(dir, rec.ID.String())
	if err := os.WriteFile(base+".html", []byte(styled), 0o644); err != nil {
		s.log.Warn("unable to archive html", "path", base+".html", "error", err)
		return ""
	}
	if err := os.WriteFile(base+".pdf", pdfBytes, 0o644); err != nil {
		s.log.Warn("unable to archive pdf", "path", base+".pdf", "error", err)
		return ""
	}
	return dir
}

// PortfolioFilename builds "<slug of full name>_portfolio.pdf".
func PortfolioFilename(u domain.User) string {
	name, err := slug.Normalize(u.FullName())
	if err != nil || name == "" {
		return "portfolio.pdf"
	}
	return name + "_portfolio.pdf"
}
