package repository

import (
	"context"
	"errors"
	"fmt"

	"portfolio-builder/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// PortfolioRepo reads and writes user portfolios in PostgreSQL.
type PortfolioRepo struct {
	pool *pgxpool.Pool
}

func NewPortfolioRepo(pool *pgxpool.Pool) *PortfolioRepo {
	return &PortfolioRepo{pool: pool}
}

// LoadPortfolio gathers the user, the optional profile and every entry.
// Educations and experiences come back newest first, projects in insertion
// order.
func (r *PortfolioRepo) LoadPortfolio(ctx context.Context, userID uuid.UUID) (*domain.Portfolio, error) {
	p := &domain.Portfolio{}

	err := r.pool.QueryRow(ctx, `SELECT id, first_name, last_name, email, phone FROM users WHERE id = $1`, userID).
		Scan(&p.User.ID, &p.User.FirstName, &p.User.LastName, &p.User.Email, &p.User.Phone)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	var prof domain.Profile
	err = r.pool.QueryRow(ctx, `SELECT user_id, location, linkedin_url, github_url, portfolio_url, summary, skills
		FROM profiles WHERE user_id = $1`, userID).
		Scan(&prof.UserID, &prof.Location, &prof.LinkedInURL, &prof.GitHubURL, &prof.PortfolioURL, &prof.Summary, &prof.Skills)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
	case err != nil:
		return nil, fmt.Errorf("load profile: %w", err)
	default:
		p.Profile = &prof
	}

	if p.Educations, err = r.educations(ctx, userID); err != nil {
		return nil, err
	}
	if p.Experiences, err = r.experiences(ctx, userID); err != nil {
		return nil, err
	}
	if p.Projects, err = r.projects(ctx, userID); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PortfolioRepo) educations(ctx context.Context, userID uuid.UUID) ([]domain.Education, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, user_id, institution, degree, field_of_study, start_date, end_date,
		currently_studying, grade, description
		FROM educations WHERE user_id = $1 ORDER BY start_date DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("load educations: %w", err)
	}
	defer rows.Close()

	var out []domain.Education
	for rows.Next() {
		var e domain.Education
		if err := rows.Scan(&e.ID, &e.UserID, &e.Institution, &e.Degree, &e.FieldOfStudy, &e.StartDate, &e.EndDate,
			&e.CurrentlyStudying, &e.Grade, &e.Description); err != nil {
			return nil, fmt.Errorf("scan education: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *PortfolioRepo) experiences(ctx context.Context, userID uuid.UUID) ([]domain.Experience, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, user_id, company, position, location, start_date, end_date,
		currently_working, description
		FROM experiences WHERE user_id = $1 ORDER BY start_date DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("load experiences: %w", err)
	}
	defer rows.Close()

	var out []domain.Experience
	for rows.Next() {
		var e domain.Experience
		if err := rows.Scan(&e.ID, &e.UserID, &e.Company, &e.Position, &e.Location, &e.StartDate, &e.EndDate,
			&e.CurrentlyWorking, &e.Description); err != nil {
			return nil, fmt.Errorf("scan experience: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *PortfolioRepo) projects(ctx context.Context, userID uuid.UUID) ([]domain.Project, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, user_id, title, description, technologies, project_url, created_at
		FROM projects WHERE user_id = $1 ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("load projects: %w", err)
	}
	defer rows.Close()

	var out []domain.Project
	for rows.Next() {
		var pr domain.Project
		if err := rows.Scan(&pr.ID, &pr.UserID, &pr.Title, &pr.Description, &pr.Technologies, &pr.ProjectURL, &pr.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		out = append(out, pr)
	}
	return out, rows.Err()
}

// SavePortfolio replaces everything stored for p.User.ID in one transaction.
func (r *PortfolioRepo) SavePortfolio(ctx context.Context, p *domain.Portfolio) error {
	return r.pool.BeginFunc(ctx, func(tx pgx.Tx) error {
		u := p.User
		if _, err := tx.Exec(ctx, `INSERT INTO users (id, first_name, last_name, email, phone) VALUES ($1,$2,$3,$4,$5)
			ON CONFLICT (id) DO UPDATE SET first_name = EXCLUDED.first_name, last_name = EXCLUDED.last_name,
			email = EXCLUDED.email, phone = EXCLUDED.phone`,
			u.ID, u.FirstName, u.LastName, u.Email, u.Phone); err != nil {
			return fmt.Errorf("upsert user: %w", err)
		}

		for _, table := range []string{"profiles", "educations", "experiences", "projects"} {
			if _, err := tx.Exec(ctx, "DELETE FROM "+table+" WHERE user_id = $1", u.ID); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}

		if pr := p.Profile; pr != nil {
			if _, err := tx.Exec(ctx, `INSERT INTO profiles (user_id, location, linkedin_url, github_url, portfolio_url, summary, skills)
				VALUES ($1,$2,$3,$4,$5,$6,$7)`,
				u.ID, pr.Location, pr.LinkedInURL, pr.GitHubURL, pr.PortfolioURL, pr.Summary, pr.Skills); err != nil {
				return fmt.Errorf("insert profile: %w", err)
			}
		}
		for _, e := range p.Educations {
			if _, err := tx.Exec(ctx, `INSERT INTO educations (id, user_id, institution, degree, field_of_study, start_date, end_date,
				currently_studying, grade, description) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
				e.ID, u.ID, e.Institution, e.Degree, e.FieldOfStudy, e.StartDate, e.EndDate,
				e.CurrentlyStudying, e.Grade, e.Description); err != nil {
				return fmt.Errorf("insert education: %w", err)
			}
		}
		for _, e := range p.Experiences {
			if _, err := tx.Exec(ctx, `INSERT INTO experiences (id, user_id, company, position, location, start_date, end_date,
				currently_working, description) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
				e.ID, u.ID, e.Company, e.Position, e.Location, e.StartDate, e.EndDate,
				e.CurrentlyWorking, e.Description); err != nil {
				return fmt.Errorf("insert experience: %w", err)
			}
		}
		for _, pr := range p.Projects {
			if _, err := tx.Exec(ctx, `INSERT INTO projects (id, user_id, title, description, technologies, project_url, created_at)
				VALUES ($1,$2,$3,$4,$5,$6,$7)`,
				pr.ID, u.ID, pr.Title, pr.Description, pr.Technologies, pr.ProjectURL, pr.CreatedAt); err != nil {
				return fmt.Errorf("insert project: %w", err)
			}
		}
		return nil
	})
}
