package processing

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coilgen/coilgen/internal/coil"
	"github.com/coilgen/coilgen/internal/export"
	"github.com/coilgen/coilgen/internal/repository"
	"github.com/coilgen/coilgen/internal/storage"
	"github.com/coilgen/coilgen/pkg/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrStorageDisabled is returned by export operations when no object store is configured
var ErrStorageDisabled = errors.New("export storage is not configured")

// ExportService generates coil files and keeps the one file of each request in object storage
type ExportService interface {
	CreateExport(ctx context.Context, spec coil.Spec, format export.Format) (*models.Export, string, error)
	GetExport(ctx context.Context, id uuid.UUID) (*models.Export, string, error)
}

type exportService struct {
	store      storage.ObjectStore
	repository repository.ExportRepository
	options    export.Options
	now        func() time.Time
}

// NewExportService creates an export service. store may be nil, in which case every call
// fails with ErrStorageDisabled.
func NewExportService(store storage.ObjectStore, repo repository.ExportRepository, opts export.Options) ExportService {
	return &exportService{
		store:      store,
		repository: repo,
		options:    opts,
		now:        time.Now,
	}
}

// CreateExport renders the coil, uploads the file and records it. It returns the record and a
// pre-signed download URL. Generator errors are returned unchanged.
func (s *exportService) CreateExport(ctx context.Context, spec coil.Spec, format export.Format) (*models.Export, string, error) {
	if s.store == nil {
		return nil, "", ErrStorageDisabled
	}

	// Step 1: Generate geometry
	c, err := coil.Generate(spec)
	if err != nil {
		return nil, "", err
	}

	// Step 2: Render the file
	var buf bytes.Buffer
	if err := export.Write(&buf, c, format, s.options); err != nil {
		return nil, "", fmt.Errorf("failed to render %s export: %w", format, err)
	}

	id := uuid.New()
	key := fmt.Sprintf("exports/%s/%s", id, format.Filename())

	// Step 3: Upload
	log.Info().Str("exportID", id.String()).Str("key", key).Int("size", buf.Len()).Msg("Uploading coil export")
	if err := s.store.Upload(ctx, key, format.ContentType(), buf.Bytes()); err != nil {
		return nil, "", err
	}

	// Step 4: Record
	record := &models.Export{
		ID:          id.String(),
		Params:      models.ParamsFromSpec(spec),
		Format:      string(format),
		ObjectKey:   key,
		ContentType: format.ContentType(),
		SizeBytes:   int64(buf.Len()),
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repository.Create(ctx, record); err != nil {
		if delErr := s.store.DeleteFile(ctx, key); delErr != nil {
			log.Warn().Err(delErr).Str("key", key).Msg("Failed to remove orphaned export file")
		}
		return nil, "", fmt.Errorf("failed to record export: %w", err)
	}

	// Step 5: Sign
	url, err := s.store.GenerateDownloadURL(ctx, key, format.Filename())
	if err != nil {
		return nil, "", err
	}

	log.Info().Str("exportID", record.ID).Str("format", record.Format).Msg("Coil export stored")
	return record, url, nil
}

// GetExport looks up a stored export and signs a fresh download URL
func (s *exportService) GetExport(ctx context.Context, id uuid.UUID) (*models.Export, string, error) {
	if s.store == nil {
		return nil, "", ErrStorageDisabled
	}

	record, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}

	format, err := export.ParseFormat(record.Format)
	if err != nil {
		return nil, "", err
	}

	url, err := s.store.GenerateDownloadURL(ctx, record.ObjectKey, format.Filename())
	if err != nil {
		return nil, "", err
	}
	return record, url, nil
}
