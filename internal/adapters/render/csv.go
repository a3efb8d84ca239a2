package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/okian/pitcheq/internal/domain/model"
)

// Series names in the first CSV column. Reference rows use the point's name.
const (
	seriesCurve = "curve"
	seriesInput = "input"
)

type csvRenderer struct{}

func (csvRenderer) Format() string { return "csv" }

// Render writes series,distance_ft,speed_mph rows: the input point, the
// curve, then every visible reference point.
func (csvRenderer) Render(w io.Writer, c *model.Chart) error {
	if c == nil {
		return ErrNilChart
	}
	cw := csv.NewWriter(w)

	rows := make([][]string, 0, len(c.Curve)+len(c.Annotations)+2)
	rows = append(rows,
		[]string{"series", "distance_ft", "speed_mph"},
		row(seriesInput, float64(c.Input.Distance), float64(c.Input.Speed)),
	)
	for _, p := range c.Curve {
		rows = append(rows, row(seriesCurve, float64(p.Distance), float64(p.Speed)))
	}
	for _, a := range c.Visible() {
		rows = append(rows, row(a.Name, float64(a.Distance), float64(a.Speed)))
	}

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("render csv: %w", err)
	}
	return nil
}

func row(series string, distance, speed float64) []string {
	return []string{
		series,
		strconv.FormatFloat(distance, 'f', -1, 64),
		strconv.FormatFloat(speed, 'f', 4, 64),
	}
}
