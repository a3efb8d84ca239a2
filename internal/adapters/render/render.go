// Package render turns charts into text for a terminal or another program.
// It is the presentation collaborator of the calculator and holds no state.
package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/okian/pitcheq/internal/domain/model"
)

// Sentinel kinds for render errors.
var (
	ErrUnknownFormat = errors.New("unknown output format")
	ErrNilChart      = errors.New("nil chart")
)

// Renderer writes one chart.
type Renderer interface {
	Render(w io.Writer, c *model.Chart) error
	// Format is the name New accepts for this renderer.
	Format() string
}

// New returns the renderer for format (table, csv or json).
func New(format string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "table", "":
		return tableRenderer{}, nil
	case "csv":
		return csvRenderer{}, nil
	case "json":
		return jsonRenderer{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Messages writes validation messages, one per line.
func Messages(w io.Writer, msgs []string) error {
	for _, m := range msgs {
		if _, err := fmt.Fprintf(w, "error: %s\n", m); err != nil {
			return fmt.Errorf("write message: %w", err)
		}
	}
	return nil
}
