// Package sqlitestore persists portfolios and export history in SQLite.
package sqlitestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"portfolio-builder/internal/adapter/sqlitestore/migrations"
	"portfolio-builder/internal/domain"
)

// Store implements the portfolio and export stores on one SQLite file.
type Store struct {
	db *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

func optionalMillis(value *time.Time) sql.NullInt64 {
	if value == nil || value.IsZero() {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: toMillis(*value), Valid: true}
}

func fromOptionalMillis(value sql.NullInt64) *time.Time {
	if !value.Valid {
		return nil
	}
	t := fromMillis(value.Int64)
	return &t
}

// Open opens the database at path and applies embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// LoadPortfolio returns the user's portfolio, or domain.ErrNotFound.
func (s *Store) LoadPortfolio(ctx context.Context, userID uuid.UUID) (*domain.Portfolio, error) {
	p := &domain.Portfolio{}

	err := s.db.QueryRowContext(ctx, `SELECT id, first_name, last_name, email, phone FROM users WHERE id = ?`, userID.String()).
		Scan(&p.User.ID, &p.User.FirstName, &p.User.LastName, &p.User.Email, &p.User.Phone)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	var prof domain.Profile
	err = s.db.QueryRowContext(ctx, `SELECT user_id, location, linkedin_url, github_url, portfolio_url, summary, skills
		FROM profiles WHERE user_id = ?`, userID.String()).
		Scan(&prof.UserID, &prof.Location, &prof.LinkedInURL, &prof.GitHubURL, &prof.PortfolioURL, &prof.Summary, &prof.Skills)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, fmt.Errorf("load profile: %w", err)
	default:
		p.Profile = &prof
	}

	if p.Educations, err = s.educations(ctx, userID); err != nil {
		return nil, err
	}
	if p.Experiences, err = s.experiences(ctx, userID); err != nil {
		return nil, err
	}
	if p.Projects, err = s.projects(ctx, userID); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Store) educations(ctx context.Context, userID uuid.UUID) ([]domain.Education, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, user_id, institution, degree, field_of_study, start_date, end_date,
		currently_studying, grade, description
		FROM educations WHERE user_id = ? ORDER BY start_date DESC`, userID.String())
	if err != nil {
		return nil, fmt.Errorf("load educations: %w", err)
	}
	defer rows.Close()

	var out []domain.Education
	for rows.Next() {
		var (
			e     domain.Education
			start int64
			end   sql.NullInt64
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.Institution, &e.Degree, &e.FieldOfStudy, &start, &end,
			&e.CurrentlyStudying, &e.Grade, &e.Description); err != nil {
			return nil, fmt.Errorf("scan education: %w", err)
		}
		e.StartDate, e.EndDate = fromMillis(start), fromOptionalMillis(end)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) experiences(ctx context.Context, userID uuid.UUID) ([]domain.Experience, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, user_id, company, position, location, start_date, end_date,
		currently_working, description
		FROM experiences WHERE user_id = ? ORDER BY start_date DESC`, userID.String())
	if err != nil {
		return nil, fmt.Errorf("load experiences: %w", err)
	}
	defer rows.Close()

	var out []domain.Experience
	for rows.Next() {
		var (
			e     domain.Experience
			start int64
			end   sql.NullInt64
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.Company, &e.Position, &e.Location, &start, &end,
			&e.CurrentlyWorking, &e.Description); err != nil {
			return nil, fmt.Errorf("scan experience: %w", err)
		}
		e.StartDate, e.EndDate = fromMillis(start), fromOptionalMillis(end)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) projects(ctx context.Context, userID uuid.UUID) ([]domain.Project, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, user_id, title, description, technologies, project_url, created_at
		FROM projects WHERE user_id = ? ORDER BY created_at, rowid`, userID.String())
	if err != nil {
		return nil, fmt.Errorf("load projects: %w", err)
	}
	defer rows.Close()

	var out []domain.Project
	for rows.Next() {
		var (
			pr      domain.Project
			created int64
		)
		if err := rows.Scan(&pr.ID, &pr.UserID, &pr.Title, &pr.Description, &pr.Technologies, &pr.ProjectURL, &created); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		pr.CreatedAt = fromMillis(created)
		out = append(out, pr)
	}
	return out, rows.Err()
}

// SavePortfolio replaces everything stored for p.User.ID in one transaction.
func (s *Store) SavePortfolio(ctx context.Context, p *domain.Portfolio) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	u := p.User
	id := u.ID.String()
	if _, err = tx.ExecContext(ctx, `INSERT INTO users (id, first_name, last_name, email, phone) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET first_name = excluded.first_name, last_name = excluded.last_name,
		email = excluded.email, phone = excluded.phone`,
		id, u.FirstName, u.LastName, u.Email, u.Phone); err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	for _, table := range []string{"profiles", "educations", "experiences", "projects"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE user_id = ?", id); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if pr := p.Profile; pr != nil {
		if _, err = tx.ExecContext(ctx, `INSERT INTO profiles (user_id, location, linkedin_url, github_url, portfolio_url, summary, skills)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, pr.Location, pr.LinkedInURL, pr.GitHubURL, pr.PortfolioURL, pr.Summary, pr.Skills); err != nil {
			return fmt.Errorf("insert profile: %w", err)
		}
	}
	for _, e := range p.Educations {
		if _, err = tx.ExecContext(ctx, `INSERT INTO educations (id, user_id, institution, degree, field_of_study, start_date, end_date,
			currently_studying, grade, description) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID.String(), id, e.Institution, e.Degree, e.FieldOfStudy, toMillis(e.StartDate), optionalMillis(e.EndDate),
			e.CurrentlyStudying, e.Grade, e.Description); err != nil {
			return fmt.Errorf("insert education: %w", err)
		}
	}
	for _, e := range p.Experiences {
		if _, err = tx.ExecContext(ctx, `INSERT INTO experiences (id, user_id, company, position, location, start_date, end_date,
			currently_working, description) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID.String(), id, e.Company, e.Position, e.Location, toMillis(e.StartDate), optionalMillis(e.EndDate),
			e.CurrentlyWorking, e.Description); err != nil {
			return fmt.Errorf("insert experience: %w", err)
		}
	}
	for _, pr := range p.Projects {
		if _, err = tx.ExecContext(ctx, `INSERT INTO projects (id, user_id, title, description, technologies, project_url, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			pr.ID.String(), id, pr.Title, pr.Description, pr.Technologies, pr.ProjectURL, toMillis(pr.CreatedAt)); err != nil {
			return fmt.Errorf("insert project: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// SaveExport upserts an export history row.
func (s *Store) SaveExport(ctx context.Context, e *domain.Export) error {
	meta := []byte("{}")
	if e.Metadata != nil {
		b, err := json.Marshal(e.Metadata)
		if err != nil {
			return fmt.Errorf("marshal export metadata: %w", err)
		}
		meta = b
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO exports (id, user_id, kind, template, filename, renderer, status, size, metadata, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET renderer = excluded.renderer, status = excluded.status, size = excluded.size,
		metadata = excluded.metadata, updated_at = excluded.updated_at`,
		e.ID.String(), e.UserID.String(), e.Kind, e.Template, e.Filename, e.Renderer, e.Status, e.Size, string(meta),
		toMillis(e.CreatedAt), toMillis(e.UpdatedAt))
	if err != nil {
		return fmt.Errorf("save export: %w", err)
	}
	return nil
}

// ListExports returns the user's most recent exports first.
func (s *Store) ListExports(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Export, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, user_id, kind, template, filename, renderer, status, size, metadata, created_at, updated_at
		FROM exports WHERE user_id = ? ORDER BY created_at DESC, rowid DESC LIMIT ?`, userID.String(), limit)
	if err != nil {
		return nil, fmt.Errorf("list exports: %w", err)
	}
	defer rows.Close()

	out := []domain.Export{}
	for rows.Next() {
		var (
			e                domain.Export
			meta             string
			created, updated int64
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.Kind, &e.Template, &e.Filename, &e.Renderer, &e.Status, &e.Size,
			&meta, &created, &updated); err != nil {
			return nil, fmt.Errorf("scan export: %w", err)
		}
		if meta != "" {
			_ = json.Unmarshal([]byte(meta), &e.Metadata)
		}
		e.CreatedAt, e.UpdatedAt = fromMillis(created), fromMillis(updated)
		out = append(out, e)
	}
	return out, rows.Err()
}
