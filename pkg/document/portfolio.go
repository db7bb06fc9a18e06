package document

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"portfolio-builder/internal/domain"
)

//go:embed layouts/*.html
var layouts embed.FS

// ErrNoPortfolio is returned when a builder is called without data.
var ErrNoPortfolio = errors.New("portfolio is nil")

var funcs = template.FuncMap{
	"join":      strings.Join,
	"joinLinks": joinLinks,
	"links":     ProfileLinks,
	"linkLabel": LinkLabel,
	"bullets":   descriptionBullets,
}

var (
	portfolioTpl  = template.Must(template.New("portfolio.html").Funcs(funcs).ParseFS(layouts, "layouts/portfolio.html"))
	resumeBodyTpl = template.Must(template.New("resume_body.html").Funcs(funcs).ParseFS(layouts, "layouts/resume_body.html"))
)

// CreatePortfolioHTML renders the complete portfolio page for a user.
// Educations and experiences are listed newest first; every user supplied
// value is HTML-escaped.
func CreatePortfolioHTML(p *domain.Portfolio) (string, error) {
	return render(portfolioTpl, p)
}

// RenderResumeBody renders the portfolio data as a resume HTML fragment.
// The fragment starts with a tag, so FormatResumeForPDF wraps it as is.
func RenderResumeBody(p *domain.Portfolio) (string, error) {
	return render(resumeBodyTpl, p)
}

func render(tpl *template.Template, p *domain.Portfolio) (string, error) {
	if p == nil {
		return "", ErrNoPortfolio
	}
	ordered := *p
	ordered.Educations = append([]domain.Education(nil), p.Educations...)
	ordered.Experiences = append([]domain.Experience(nil), p.Experiences...)
	ordered.SortByStartDate()

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, &ordered); err != nil {
		return "", fmt.Errorf("render %s: %w", tpl.Name(), err)
	}
	return buf.String(), nil
}

// descriptionBullets splits a free-text description into list items, one
// per non-empty line, dropping any leading bullet marker.
func descriptionBullets(description string) []string {
	var out []string
	for _, line := range strings.Split(description, "\n") {
		line = strings.TrimSpace(line)
		if item, ok := cutListPrefix(line); ok {
			line = item
		}
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
