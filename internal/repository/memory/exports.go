// Package memory keeps export records in process memory, used when no database is configured.
package memory

import (
	"context"
	"sync"

	"github.com/coilgen/coilgen/internal/repository"
	"github.com/coilgen/coilgen/pkg/models"
	"github.com/google/uuid"
)

type exportRepository struct {
	mu      sync.RWMutex
	exports map[string]models.Export
}

// NewExportRepository creates an empty in-memory export repository
func NewExportRepository() repository.ExportRepository {
	return &exportRepository{exports: make(map[string]models.Export)}
}

func (r *exportRepository) Create(ctx context.Context, export *models.Export) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exports[export.ID] = *export
	return nil
}

func (r *exportRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Export, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	export, ok := r.exports[id.String()]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &export, nil
}
