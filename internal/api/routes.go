package api

import (
	"net/http"

	"github.com/coilgen/coilgen/internal/api/handlers"
	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes sets up all API and page routes
func RegisterRoutes(router chi.Router, api huma.API, coilHandler *handlers.CoilHandler, exportHandler *handlers.ExportHandler, webHandler *handlers.WebHandler) {
	// Register coil routes
	huma.Register(api, huma.Operation{
		OperationID: "createCoil",
		Method:      http.MethodPost,
		Path:        "/api/coils",
		Summary:     "Generate a coil",
		Description: "Computes the corner coordinates of a rectangular spiral coil",
		Tags:        []string{"Coil"},
	}, coilHandler.GenerateCoil)

	huma.Register(api, huma.Operation{
		OperationID: "downloadCoil",
		Method:      http.MethodGet,
		Path:        "/api/coils/download",
		Summary:     "Download a coil",
		Description: "Renders a coil as CSV, TXT, PNG or SVG and returns it as an attachment",
		Tags:        []string{"Coil"},
	}, coilHandler.DownloadCoil)

	// Register export routes
	huma.Register(api, huma.Operation{
		OperationID:   "createExport",
		Method:        http.MethodPost,
		Path:          "/api/exports",
		Summary:       "Store a coil export",
		Description:   "Renders a coil, uploads it to object storage and returns a download URL",
		Tags:          []string{"Export"},
		DefaultStatus: http.StatusCreated,
	}, exportHandler.CreateExport)

	huma.Register(api, huma.Operation{
		OperationID: "getExport",
		Method:      http.MethodGet,
		Path:        "/api/exports/{id}",
		Summary:     "Get a stored export",
		Description: "Returns an export record with a fresh download URL",
		Tags:        []string{"Export"},
	}, exportHandler.GetExport)

	// HTML form
	router.Get("/", webHandler.Index)
	router.Post("/", webHandler.Index)
	router.Post("/download", webHandler.Download)
}
