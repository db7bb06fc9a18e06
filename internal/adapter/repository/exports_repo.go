package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"portfolio-builder/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
)

type ExportsRepo struct {
	pool *pgxpool.Pool
}

func NewExportsRepo(pool *pgxpool.Pool) *ExportsRepo {
	return &ExportsRepo{pool: pool}
}

// SaveExport upserts an export history row.
func (r *ExportsRepo) SaveExport(ctx context.Context, e *domain.Export) error {
	if r.pool == nil {
		return nil
	}

	metaB, err := json.Marshal(e.Metadata)
	if err != nil {
		return fmt.Errorf("marshal export metadata: %w", err)
	}
	if e.Metadata == nil {
		metaB = []byte("{}")
	}

	_, err = r.pool.Exec(ctx, `INSERT INTO exports (id, user_id, kind, template, filename, renderer, status, size, metadata, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (id) DO UPDATE SET renderer = EXCLUDED.renderer, status = EXCLUDED.status, size = EXCLUDED.size,
		metadata = EXCLUDED.metadata, updated_at = EXCLUDED.updated_at`,
		e.ID, e.UserID, e.Kind, e.Template, e.Filename, e.Renderer, e.Status, e.Size, metaB, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save export: %w", err)
	}
	return nil
}

// ListExports returns the user's most recent exports first.
func (r *ExportsRepo) ListExports(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Export, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, user_id, kind, template, filename, renderer, status, size, metadata, created_at, updated_at
		FROM exports WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list exports: %w", err)
	}
	defer rows.Close()

	out := []domain.Export{}
	for rows.Next() {
		var e domain.Export
		var metaB []byte
		if err := rows.Scan(&e.ID, &e.UserID, &e.Kind, &e.Template, &e.Filename, &e.Renderer, &e.Status, &e.Size,
			&metaB, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan export: %w", err)
		}
		if len(metaB) > 0 {
			_ = json.Unmarshal(metaB, &e.Metadata)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
