package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/coilgen/coilgen/internal/repository"
	"github.com/coilgen/coilgen/pkg/models"
	"github.com/google/uuid"
)

// Schema creates the exports table
const Schema = `
CREATE TABLE IF NOT EXISTS coil_exports (
	id           UUID PRIMARY KEY,
	params       JSONB NOT NULL,
	format       TEXT NOT NULL,
	object_key   TEXT NOT NULL,
	content_type TEXT NOT NULL,
	size_bytes   BIGINT NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// PostgresExportRepository implements ExportRepository for PostgreSQL
type PostgresExportRepository struct {
	db *sql.DB
}

// NewPostgresExportRepository creates a new PostgreSQL export repository
func NewPostgresExportRepository(db *sql.DB) repository.ExportRepository {
	return &PostgresExportRepository{db: db}
}

// Migrate creates the tables the repository needs
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("failed to create coil_exports table: %w", err)
	}
	return nil
}

// Create inserts a new export record
func (r *PostgresExportRepository) Create(ctx context.Context, export *models.Export) error {
	params, err := json.Marshal(export.Params)
	if err != nil {
		return fmt.Errorf("failed to marshal coil params: %w", err)
	}

	query := `
		INSERT INTO coil_exports (id, params, format, object_key, content_type, size_bytes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = r.db.ExecContext(ctx, query,
		export.ID,
		string(params),
		export.Format,
		export.ObjectKey,
		export.ContentType,
		export.SizeBytes,
		export.CreatedAt)

	return err
}

// GetByID retrieves an export by ID
func (r *PostgresExportRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Export, error) {
	query := `
		SELECT id, params, format, object_key, content_type, size_bytes, created_at
		FROM coil_exports
		WHERE id = $1`

	var export models.Export
	var params []byte

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&export.ID,
		&params,
		&export.Format,
		&export.ObjectKey,
		&export.ContentType,
		&export.SizeBytes,
		&export.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(params, &export.Params); err != nil {
		return nil, fmt.Errorf("failed to unmarshal coil params: %w", err)
	}

	return &export, nil
}
