package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/coilgen/coilgen/internal/coil"
)

// DefaultPrecision is the number of decimals written for coordinates in CSV output
const DefaultPrecision = 3

var csvHeader = []string{"path", "turn", "corner", "x_mm", "y_mm"}

// WriteCSV writes one row per point, outer edge first and inner edge after it when present.
// Turns and corners are numbered from 1 to match the P1..P4 naming.
func WriteCSV(w io.Writer, c *coil.Coil, precision int) error {
	if precision < 0 {
		precision = DefaultPrecision
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	if err := writeTurns(cw, "outer", c.Turns, precision); err != nil {
		return err
	}
	if c.InnerTurns != nil {
		if err := writeTurns(cw, "inner", c.InnerTurns, precision); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func writeTurns(cw *csv.Writer, section string, turns []coil.Turn, precision int) error {
	for _, turn := range turns {
		for i, p := range turn.Corners {
			row := []string{
				section,
				strconv.Itoa(turn.Index + 1),
				strconv.Itoa(i + 1),
				strconv.FormatFloat(p.X, 'f', precision, 64),
				strconv.FormatFloat(p.Y, 'f', precision, 64),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write %s row: %w", section, err)
			}
		}
	}
	return nil
}
