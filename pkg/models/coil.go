package models

import (
	"time"

	"github.com/coilgen/coilgen/internal/coil"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Body struct {
		Status  string    `json:"status" example:"healthy" doc:"Service health status"`
		Version string    `json:"version" example:"1.0.0" doc:"API version"`
		Time    time.Time `json:"time" doc:"Current server time"`
	}
}

// CoilParams holds the coil parameters as sent by clients. Value ranges are checked by
// coil.Spec.Validate, not by the schema.
type CoilParams struct {
	OuterWidth   float64 `json:"outer_width" required:"true" example:"50" doc:"Outer width Lx in mm, greater than 0"`
	OuterHeight  float64 `json:"outer_height" required:"true" example:"50" doc:"Outer height By in mm, greater than 0"`
	TraceWidth   float64 `json:"trace_width" required:"true" example:"2" doc:"Copper trace width in mm, greater than 0"`
	Gap          float64 `json:"gap" required:"true" example:"1" doc:"Spacing between adjacent turns in mm, 0 or more"`
	Turns        int     `json:"turns" required:"true" example:"3" doc:"Number of turns, 1 to 10000"`
	IncludeInner bool    `json:"include_inner,omitempty" doc:"Also compute the inner edge of the trace"`
}

// Spec converts the request parameters into a generator spec
func (p CoilParams) Spec() coil.Spec {
	return coil.Spec{
		OuterWidth:   p.OuterWidth,
		OuterHeight:  p.OuterHeight,
		TraceWidth:   p.TraceWidth,
		Gap:          p.Gap,
		Turns:        p.Turns,
		IncludeInner: p.IncludeInner,
	}
}

// ParamsFromSpec is the inverse of CoilParams.Spec
func ParamsFromSpec(s coil.Spec) CoilParams {
	return CoilParams{
		OuterWidth:   s.OuterWidth,
		OuterHeight:  s.OuterHeight,
		TraceWidth:   s.TraceWidth,
		Gap:          s.Gap,
		Turns:        s.Turns,
		IncludeInner: s.IncludeInner,
	}
}

// Point represents a single coordinate in millimetres
type Point struct {
	X float64 `json:"x" doc:"X coordinate in mm"`
	Y float64 `json:"y" doc:"Y coordinate in mm"`
}

// Turn represents one loop of the spiral
type Turn struct {
	Turn    int     `json:"turn" doc:"Turn number, 1 is outermost"`
	Width   float64 `json:"width" doc:"Width of the turn rectangle in mm"`
	Height  float64 `json:"height" doc:"Height of the turn rectangle in mm"`
	Corners []Point `json:"corners" doc:"Corners P1..P4 in traversal order"`
}

// GenerateCoilRequest represents a request to compute coil coordinates
type GenerateCoilRequest struct {
	Body CoilParams
}

// GenerateCoilResponseBody is the body of the generate response
type GenerateCoilResponseBody struct {
	Params     CoilParams `json:"params" doc:"Parameters the coil was generated from"`
	Pitch      float64    `json:"pitch" doc:"Centre-to-centre spacing between turns in mm"`
	MaxTurns   int        `json:"max_turns" doc:"Largest turn count that fits these dimensions"`
	Turns      []Turn     `json:"turns" doc:"Outer edge corners grouped by turn"`
	Outer      []Point    `json:"outer" doc:"Outer edge path, outermost corner first"`
	InnerTurns []Turn     `json:"inner_turns,omitempty" doc:"Inner edge corners grouped by turn"`
	Inner      []Point    `json:"inner,omitempty" doc:"Inner edge path"`
}

// GenerateCoilResponse represents the computed coil
type GenerateCoilResponse struct {
	Body GenerateCoilResponseBody
}

// DownloadCoilRequest carries coil parameters as query values for direct downloads
type DownloadCoilRequest struct {
	OuterWidth   float64 `query:"lx" required:"true" doc:"Outer width Lx in mm"`
	OuterHeight  float64 `query:"by" required:"true" doc:"Outer height By in mm"`
	TraceWidth   float64 `query:"width" required:"true" doc:"Trace width in mm"`
	Gap          float64 `query:"gap" doc:"Gap between turns in mm"`
	Turns        int     `query:"turns" required:"true" doc:"Number of turns, 1 to 10000"`
	IncludeInner bool    `query:"include_inner" doc:"Include the inner edge"`
	Format       string  `query:"format" enum:"csv,txt,png,svg" default:"csv" doc:"Export format"`
}

// Params returns the coil parameters of the query
func (r *DownloadCoilRequest) Params() CoilParams {
	return CoilParams{
		OuterWidth:   r.OuterWidth,
		OuterHeight:  r.OuterHeight,
		TraceWidth:   r.TraceWidth,
		Gap:          r.Gap,
		Turns:        r.Turns,
		IncludeInner: r.IncludeInner,
	}
}

// DownloadCoilResponse streams an export file
type DownloadCoilResponse struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

// CreateExportRequestBody is the body of the create export request
type CreateExportRequestBody struct {
	Coil   CoilParams `json:"coil" required:"true" doc:"Coil parameters"`
	Format string     `json:"format" enum:"csv,txt,png,svg" default:"csv" doc:"Export format"`
}

// CreateExportRequest represents a request to generate and store an export file
type CreateExportRequest struct {
	Body CreateExportRequestBody
}

// ExportResponseBody describes a stored export
type ExportResponseBody struct {
	ID          string     `json:"id" doc:"Export unique identifier"`
	Params      CoilParams `json:"params" doc:"Parameters the file was generated from"`
	Format      string     `json:"format" doc:"Export format"`
	Filename    string     `json:"filename" doc:"Suggested download file name"`
	SizeBytes   int64      `json:"size_bytes" doc:"File size in bytes"`
	DownloadURL string     `json:"download_url" doc:"Pre-signed download URL"`
	ExpiresIn   int        `json:"expires_in" doc:"URL expiration time in seconds"`
	CreatedAt   time.Time  `json:"created_at" doc:"Export creation timestamp"`
}

// ExportResponse is returned by the export endpoints
type ExportResponse struct {
	Body ExportResponseBody
}

// GetExportRequest represents a request for a stored export
type GetExportRequest struct {
	ID string `path:"id" doc:"Export ID"`
}

// Export is the stored record of one generated file (for internal use)
type Export struct {
	ID          string     `json:"id"`
	Params      CoilParams `json:"params"`
	Format      string     `json:"format"`
	ObjectKey   string     `json:"object_key"`
	ContentType string     `json:"content_type"`
	SizeBytes   int64      `json:"size_bytes"`
	CreatedAt   time.Time  `json:"created_at"`
}
