package migration

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v4/pgxpool"
)

// RunMigrations executes all necessary database migrations on startup
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}
	log.Info("Starting database migrations")

	for _, m := range Migrations() {
		if err := m.Up(ctx, pool); err != nil {
			log.Error("Migration failed", "name", m.Name, "error", err)
			return fmt.Errorf("migration %s: %w", m.Name, err)
		}
		log.Info("Migration completed", "name", m.Name)
	}

	log.Info("All migrations completed successfully")
	return nil
}

// Migration represents a database migration
type Migration struct {
	Name string
	Up   func(ctx context.Context, pool *pgxpool.Pool) error
}

// Migrations lists the schema steps in the order they run. Every step is
// idempotent.
func Migrations() []Migration {
	return []Migration{
		{Name: "create_users", Up: exec(createUsers)},
		{Name: "create_profiles", Up: exec(createProfiles)},
		{Name: "create_educations", Up: exec(createEducations)},
		{Name: "create_experiences", Up: exec(createExperiences)},
		{Name: "create_projects", Up: exec(createProjects)},
		{Name: "create_exports", Up: exec(createExports)},
	}
}

func exec(query string) func(ctx context.Context, pool *pgxpool.Pool) error {
	return func(ctx context.Context, pool *pgxpool.Pool) error {
		_, err := pool.Exec(ctx, query)
		return err
	}
}

const createUsers = `
	CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		first_name VARCHAR(150) NOT NULL DEFAULT '',
		last_name VARCHAR(150) NOT NULL DEFAULT '',
		email VARCHAR(254) NOT NULL,
		phone VARCHAR(20) NOT NULL DEFAULT ''
	);
`

const createProfiles = `
	CREATE TABLE IF NOT EXISTS profiles (
		user_id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		location VARCHAR(100) NOT NULL DEFAULT '',
		linkedin_url TEXT NOT NULL DEFAULT '',
		github_url TEXT NOT NULL DEFAULT '',
		portfolio_url TEXT NOT NULL DEFAULT '',
		summary TEXT NOT NULL DEFAULT '',
		skills TEXT NOT NULL DEFAULT ''
	);
`

const createEducations = `
	CREATE TABLE IF NOT EXISTS educations (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		institution VARCHAR(200) NOT NULL,
		degree VARCHAR(20) NOT NULL,
		field_of_study VARCHAR(200) NOT NULL,
		start_date DATE NOT NULL,
		end_date DATE,
		currently_studying BOOLEAN NOT NULL DEFAULT FALSE,
		grade VARCHAR(50) NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS educations_user_start_idx ON educations (user_id, start_date DESC);
`

const createExperiences = `
	CREATE TABLE IF NOT EXISTS experiences (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		company VARCHAR(200) NOT NULL,
		position VARCHAR(200) NOT NULL,
		location VARCHAR(100) NOT NULL DEFAULT '',
		start_date DATE NOT NULL,
		end_date DATE,
		currently_working BOOLEAN NOT NULL DEFAULT FALSE,
		description TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS experiences_user_start_idx ON experiences (user_id, start_date DESC);
`

const createProjects = `
	CREATE TABLE IF NOT EXISTS projects (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title VARCHAR(200) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		technologies TEXT NOT NULL DEFAULT '',
		project_url TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
`

const createExports = `
	CREATE TABLE IF NOT EXISTS exports (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL,
		kind VARCHAR(20) NOT NULL,
		template VARCHAR(20) NOT NULL,
		filename TEXT NOT NULL,
		renderer VARCHAR(20) NOT NULL DEFAULT '',
		status VARCHAR(20) NOT NULL,
		size INTEGER NOT NULL DEFAULT 0,
		metadata JSONB NOT NULL DEFAULT '{}'::jsonb,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS exports_user_created_idx ON exports (user_id, created_at DESC);
`
