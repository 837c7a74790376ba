// Package export serialises a generated coil into downloadable files.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/coilgen/coilgen/internal/coil"
	"github.com/coilgen/coilgen/internal/plot"
)

// Format identifies an export file type
type Format string

const (
	FormatCSV Format = "csv"
	FormatTXT Format = "txt"
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// Formats lists every supported format
var Formats = []Format{FormatCSV, FormatTXT, FormatPNG, FormatSVG}

// ParseFormat accepts a format name or file extension, case-insensitively
func ParseFormat(s string) (Format, error) {
	f := Format(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "."))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

// ContentType returns the MIME type served for the format
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatTXT:
		return "text/plain; charset=utf-8"
	case FormatPNG:
		return "image/png"
	case FormatSVG:
		return "image/svg+xml"
	default:
		return "application/octet-stream"
	}
}

// Extension returns the file extension including the leading dot
func (f Format) Extension() string {
	return "." + string(f)
}

// Filename is the download name offered to clients
func (f Format) Filename() string {
	return "coil_coordinates" + f.Extension()
}

// Options carries the formatting knobs of every format
type Options struct {
	Precision int
	Plot      plot.Options
}

// DefaultOptions uses three CSV decimals and the default plot canvas
func DefaultOptions() Options {
	return Options{
		Precision: DefaultPrecision,
		Plot:      plot.DefaultOptions(),
	}
}

// Write renders c in the given format
func Write(w io.Writer, c *coil.Coil, f Format, opts Options) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, c, opts.Precision)
	case FormatTXT:
		return WriteTXT(w, c)
	case FormatPNG:
		return plot.PNG(w, c, opts.Plot)
	case FormatSVG:
		return plot.SVG(w, c, opts.Plot)
	default:
		return fmt.Errorf("unsupported export format %q", string(f))
	}
}
