package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/coilgen/coilgen/internal/coil"
	"github.com/coilgen/coilgen/internal/export"
	"github.com/coilgen/coilgen/pkg/models"
	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog/log"
)

// CoilHandler handles coil generation requests
type CoilHandler struct {
	options export.Options
}

// NewCoilHandler creates a new coil handler
func NewCoilHandler(opts export.Options) *CoilHandler {
	return &CoilHandler{options: opts}
}

// GenerateCoil computes the corner coordinates of a coil
func (h *CoilHandler) GenerateCoil(ctx context.Context, req *models.GenerateCoilRequest) (*models.GenerateCoilResponse, error) {
	spec := req.Body.Spec()
	log.Info().
		Float64("lx", spec.OuterWidth).
		Float64("by", spec.OuterHeight).
		Float64("traceWidth", spec.TraceWidth).
		Float64("gap", spec.Gap).
		Int("turns", spec.Turns).
		Bool("includeInner", spec.IncludeInner).
		Msg("Generating coil")

	c, err := coil.Generate(spec)
	if err != nil {
		return nil, coilError(err)
	}

	body := models.GenerateCoilResponseBody{
		Params:   req.Body,
		Pitch:    spec.Pitch(),
		MaxTurns: coil.MaxTurns(spec.OuterWidth, spec.OuterHeight, spec.TraceWidth, spec.Gap),
		Turns:    toTurns(c.Turns),
		Outer:    toPoints(c.Outer),
	}
	if c.Inner != nil {
		body.InnerTurns = toTurns(c.InnerTurns)
		body.Inner = toPoints(c.Inner)
	}

	return &models.GenerateCoilResponse{Body: body}, nil
}

// DownloadCoil renders a coil in the requested format and returns it as an attachment
func (h *CoilHandler) DownloadCoil(ctx context.Context, req *models.DownloadCoilRequest) (*models.DownloadCoilResponse, error) {
	format, err := export.ParseFormat(req.Format)
	if err != nil {
		return nil, huma.Error400BadRequest(err.Error(), err)
	}

	c, err := coil.Generate(req.Params().Spec())
	if err != nil {
		return nil, coilError(err)
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, c, format, h.options); err != nil {
		log.Error().Err(err).Str("format", string(format)).Msg("Failed to render coil export")
		return nil, huma.Error500InternalServerError("Failed to render export", err)
	}

	log.Info().Str("format", string(format)).Int("size", buf.Len()).Msg("Serving coil download")
	return &models.DownloadCoilResponse{
		ContentType:        format.ContentType(),
		ContentDisposition: fmt.Sprintf("attachment; filename=%q", format.Filename()),
		Body:               buf.Bytes(),
	}, nil
}

// coilError translates generator errors into HTTP errors
func coilError(err error) error {
	var paramErr *coil.InvalidParameterError
	var geomErr *coil.GeometryError

	switch {
	case errors.As(err, &paramErr):
		return huma.Error400BadRequest(paramErr.Error(), err)
	case errors.As(err, &geomErr):
		return huma.Error422UnprocessableEntity(geomErr.Error(), err)
	default:
		log.Error().Err(err).Msg("Coil generation failed")
		return huma.Error500InternalServerError("Failed to generate coil", err)
	}
}

func toPoints(path coil.Path) []models.Point {
	points := make([]models.Point, len(path))
	for i, p := range path {
		points[i] = models.Point{X: p.X, Y: p.Y}
	}
	return points
}

func toTurns(turns []coil.Turn) []models.Turn {
	out := make([]models.Turn, len(turns))
	for i, t := range turns {
		out[i] = models.Turn{
			Turn:    t.Index + 1,
			Width:   t.Bounds.Width(),
			Height:  t.Bounds.Height(),
			Corners: toPoints(t.Corners[:]),
		}
	}
	return out
}
