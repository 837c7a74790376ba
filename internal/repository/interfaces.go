package repository

import (
	"context"
	"errors"

	"github.com/coilgen/coilgen/pkg/models"
	"github.com/google/uuid"
)

// ErrNotFound is returned when no export exists for an ID
var ErrNotFound = errors.New("export not found")

// ExportRepository defines the interface for export record operations
type ExportRepository interface {
	Create(ctx context.Context, export *models.Export) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Export, error)
}
