package storage

import (
	"time"

	"github.com/google/uuid"

	"comp-valuation/models"
)

// Run bundles everything one valuation produced, under a shared run id.
type Run struct {
	ID             uuid.UUID
	SubjectAddress string
	Grid           []*models.GridRow
	Summary        models.Summary
	CreatedAt      time.Time
}

// NewRun wraps a finished grid and summary with a fresh run id.
func NewRun(subjectAddress string, grid []*models.GridRow, summary models.Summary) *Run {
	return &Run{
		ID:             uuid.New(),
		SubjectAddress: subjectAddress,
		Grid:           grid,
		Summary:        summary,
		CreatedAt:      time.Now(),
	}
}

// GridWriter is the interface any grid storage backend must satisfy.
type GridWriter interface {
	WriteRun(run *Run) error
	Close() error
}
