package usecase

import (
	"context"

	"portfolio-builder/internal/domain"
	"portfolio-builder/pkg/pdf"

	"github.com/google/uuid"
)

// ExportHistoryLimit caps ListExports.
const ExportHistoryLimit = 50

type PortfolioStore interface {
	LoadPortfolio(ctx context.Context, userID uuid.UUID) (*domain.Portfolio, error)
	SavePortfolio(ctx context.Context, p *domain.Portfolio) error
}

type ExportStore interface {
	SaveExport(ctx context.Context, e *domain.Export) error
	ListExports(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Export, error)
}

type PDFGenerator interface {
	Generate(ctx context.Context, req pdf.Request) (*pdf.Result, error)
}

// ResumeRequest is the input of ExportResumePDF. An empty Content renders
// the stored portfolio as a resume.
type ResumeRequest struct {
	Content  string `json:"content"`
	Template string `json:"template"`
	Filename string `json:"filename"`
}
