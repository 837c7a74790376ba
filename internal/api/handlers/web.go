package handlers

import (
	"bytes"
	"embed"
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/coilgen/coilgen/internal/coil"
	"github.com/coilgen/coilgen/internal/export"
	"github.com/coilgen/coilgen/internal/plot"
	"github.com/coilgen/coilgen/pkg/models"
	"github.com/rs/zerolog/log"
)

//go:embed templates/index.html
var templateFS embed.FS

const maxDownloadBytes = 1 << 20

// formValues keeps the raw form input so it can be shown back to the user
type formValues struct {
	Lx           string
	By           string
	Width        string
	Gap          string
	Turns        string
	IncludeInner bool
}

var defaultForm = formValues{Lx: "10", By: "6", Width: "0.15", Gap: "0.15", Turns: "4"}

type pageData struct {
	Form       formValues
	Error      string
	Pitch      float64
	MaxTurns   int
	Turns      []models.Turn
	InnerTurns []models.Turn
	Plot       template.URL
	TxtData    string
}

// WebHandler serves the HTML coil form
type WebHandler struct {
	tmpl *template.Template
	plot plot.Options
}

// NewWebHandler parses the embedded page template
func NewWebHandler(plotOpts plot.Options) (*WebHandler, error) {
	tmpl, err := template.New("index.html").
		Funcs(template.FuncMap{"mm": func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }}).
		ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}
	return &WebHandler{tmpl: tmpl, plot: plotOpts}, nil
}

// Index renders the form; on POST it also renders the generated coil
func (h *WebHandler) Index(w http.ResponseWriter, r *http.Request) {
	data := pageData{Form: defaultForm}

	if r.Method != http.MethodPost {
		h.render(w, http.StatusOK, data)
		return
	}

	if err := r.ParseForm(); err != nil {
		data.Error = "Could not read the form."
		h.render(w, http.StatusBadRequest, data)
		return
	}

	form := readForm(r)
	data.Form = form

	spec, err := form.spec()
	if err != nil {
		data.Error = err.Error()
		h.render(w, http.StatusBadRequest, data)
		return
	}

	c, err := coil.Generate(spec)
	if err != nil {
		data.Error = err.Error()
		h.render(w, generationStatus(err), data)
		return
	}

	var img bytes.Buffer
	if err := plot.PNG(&img, c, h.plot); err != nil {
		log.Error().Err(err).Msg("Failed to render coil preview")
		data.Error = "Failed to render the preview."
		h.render(w, http.StatusInternalServerError, data)
		return
	}

	var txt bytes.Buffer
	if err := export.WriteTXT(&txt, c); err != nil {
		log.Error().Err(err).Msg("Failed to format coil coordinates")
		data.Error = "Failed to format the coordinates."
		h.render(w, http.StatusInternalServerError, data)
		return
	}

	data.Pitch = spec.Pitch()
	data.MaxTurns = coil.MaxTurns(spec.OuterWidth, spec.OuterHeight, spec.TraceWidth, spec.Gap)
	data.Turns = toTurns(c.Turns)
	if c.InnerTurns != nil {
		data.InnerTurns = toTurns(c.InnerTurns)
	}
	data.Plot = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(img.Bytes()))
	data.TxtData = txt.String()

	log.Info().Int("turns", spec.Turns).Bool("includeInner", spec.IncludeInner).Msg("Rendered coil page")
	h.render(w, http.StatusOK, data)
}

// Download returns the posted coordinate text as a file attachment
func (h *WebHandler) Download(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxDownloadBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid download request", http.StatusBadRequest)
		return
	}

	data := r.PostForm.Get("data")
	if strings.TrimSpace(data) == "" {
		http.Error(w, "Nothing to download", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", export.FormatTXT.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FormatTXT.Filename()))
	if _, err := w.Write([]byte(data)); err != nil {
		log.Warn().Err(err).Msg("Failed to write download")
	}
}

func (h *WebHandler) render(w http.ResponseWriter, status int, data pageData) {
	var buf bytes.Buffer
	if err := h.tmpl.Execute(&buf, data); err != nil {
		log.Error().Err(err).Msg("Failed to execute page template")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func readForm(r *http.Request) formValues {
	return formValues{
		Lx:           strings.TrimSpace(r.PostForm.Get("lx")),
		By:           strings.TrimSpace(r.PostForm.Get("by")),
		Width:        strings.TrimSpace(r.PostForm.Get("width")),
		Gap:          strings.TrimSpace(r.PostForm.Get("gap")),
		Turns:        strings.TrimSpace(r.PostForm.Get("turns")),
		IncludeInner: r.PostForm.Get("include_inner") == "1",
	}
}

// spec coerces the raw strings into numbers; range checks are left to the generator
func (f formValues) spec() (coil.Spec, error) {
	var spec coil.Spec
	var err error

	if spec.OuterWidth, err = parseNumber("Outer width", f.Lx); err != nil {
		return spec, err
	}
	if spec.OuterHeight, err = parseNumber("Outer height", f.By); err != nil {
		return spec, err
	}
	if spec.TraceWidth, err = parseNumber("Trace width", f.Width); err != nil {
		return spec, err
	}
	if spec.Gap, err = parseNumber("Gap", f.Gap); err != nil {
		return spec, err
	}

	turns, err := strconv.Atoi(f.Turns)
	if err != nil {
		return spec, fmt.Errorf("Turns must be a whole number, got %q", f.Turns)
	}
	spec.Turns = turns
	spec.IncludeInner = f.IncludeInner

	return spec, nil
}

func parseNumber(label, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got %q", label, s)
	}
	return v, nil
}

func generationStatus(err error) int {
	var geomErr *coil.GeometryError
	if errors.As(err, &geomErr) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadRequest
}
