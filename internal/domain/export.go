package domain

import (
	"time"

	"github.com/google/uuid"
)

// Export kinds.
const (
	ExportResume    = "resume"
	ExportPortfolio = "portfolio"
)

// Export statuses.
const (
	ExportCompleted = "completed"
	ExportFailed    = "failed"
)

// Export records one generated document.
type Export struct {
	ID        uuid.UUID              `json:"id"`
	UserID    uuid.UUID              `json:"user_id"`
	Kind      string                 `json:"kind"`
	Template  string                 `json:"template"`
	Filename  string                 `json:"filename"`
	Renderer  string                 `json:"renderer"`
	Status    string                 `json:"status"`
	Size      int                    `json:"size"`
	Metadata  map[string]interface{} `json:"metadata"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}
