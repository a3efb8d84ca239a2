package render

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/okian/pitcheq/internal/domain/model"
)

const (
	tabMinWidth = 0
	tabWidth    = 4
	tabPadding  = 2
)

type tableRenderer struct{}

func (tableRenderer) Format() string { return "table" }

func (tableRenderer) Render(w io.Writer, c *model.Chart) error {
	if c == nil {
		return ErrNilChart
	}
	tw := tabwriter.NewWriter(w, tabMinWidth, tabWidth, tabPadding, ' ', 0)

	fmt.Fprintln(tw, c.Title())
	fmt.Fprintf(tw, "Reaction Time: %.3f seconds\n", float64(c.ReactionTime))

	if vis := c.Visible(); len(vis) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "REFERENCE\tDISTANCE (ft)\tSPEED")
		for _, a := range vis {
			fmt.Fprintf(tw, "%s\t%.1f\t%.1f mph\n", a.Name, float64(a.Distance), float64(a.Speed))
		}
	}

	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "DISTANCE (ft)\tSPEED (mph)\t")
	for _, p := range c.Curve {
		mark := ""
		if p.Distance == c.Input.Distance {
			mark = "*"
		}
		fmt.Fprintf(tw, "%.1f\t%.1f\t%s\n", float64(p.Distance), float64(p.Speed), mark)
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	return nil
}
