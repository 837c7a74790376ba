package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/coilgen/coilgen/internal/coil"
	"github.com/coilgen/coilgen/internal/export"
	"github.com/coilgen/coilgen/internal/processing"
	"github.com/coilgen/coilgen/internal/repository"
	"github.com/coilgen/coilgen/pkg/models"
	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ExportHandler handles stored export requests
type ExportHandler struct {
	exportSvc processing.ExportService
	urlExpiry time.Duration
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportSvc processing.ExportService, urlExpiry time.Duration) *ExportHandler {
	return &ExportHandler{
		exportSvc: exportSvc,
		urlExpiry: urlExpiry,
	}
}

// CreateExport generates a coil file, stores it and returns a download URL
func (h *ExportHandler) CreateExport(ctx context.Context, req *models.CreateExportRequest) (*models.ExportResponse, error) {
	format, err := export.ParseFormat(req.Body.Format)
	if err != nil {
		return nil, huma.Error400BadRequest(err.Error(), err)
	}

	log.Info().Str("format", string(format)).Int("turns", req.Body.Coil.Turns).Msg("Creating coil export")
	record, url, err := h.exportSvc.CreateExport(ctx, req.Body.Coil.Spec(), format)
	if err != nil {
		return nil, h.exportError(err)
	}

	return h.response(record, url), nil
}

// GetExport returns a stored export with a fresh download URL
func (h *ExportHandler) GetExport(ctx context.Context, req *models.GetExportRequest) (*models.ExportResponse, error) {
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid export ID", err)
	}

	record, url, err := h.exportSvc.GetExport(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, huma.Error404NotFound("Export not found", err)
		}
		return nil, h.exportError(err)
	}

	return h.response(record, url), nil
}

func (h *ExportHandler) exportError(err error) error {
	var paramErr *coil.InvalidParameterError
	var geomErr *coil.GeometryError

	switch {
	case errors.Is(err, processing.ErrStorageDisabled):
		return huma.Error503ServiceUnavailable("Export storage is not configured", err)
	case errors.As(err, &paramErr), errors.As(err, &geomErr):
		return coilError(err)
	default:
		log.Error().Err(err).Msg("Export failed")
		return huma.Error500InternalServerError("Failed to store export", err)
	}
}

func (h *ExportHandler) response(record *models.Export, url string) *models.ExportResponse {
	return &models.ExportResponse{
		Body: models.ExportResponseBody{
			ID:          record.ID,
			Params:      record.Params,
			Format:      record.Format,
			Filename:    export.Format(record.Format).Filename(),
			SizeBytes:   record.SizeBytes,
			DownloadURL: url,
			ExpiresIn:   int(h.urlExpiry.Seconds()),
			CreatedAt:   record.CreatedAt,
		},
	}
}
