// Package reference holds the named release distances drawn on the chart.
// Names are labels only; the distances pass through the same solver as any
// other point.
package reference

import (
	"errors"
	"fmt"
	"strings"

	eq "github.com/okian/pitcheq/internal/domain/equivalency"
)

// Sentinel errors for reference configuration.
var (
	ErrOutOfDomain = errors.New("reference distance out of domain")
	ErrEmptyName   = errors.New("reference name is empty")
)

// Point is a named release distance.
type Point struct {
	Name     string      `koanf:"name" json:"name"`
	Distance eq.Distance `koanf:"distance" json:"distance"`
}

// Annotation is a reference point solved for a reaction time.
type Annotation struct {
	Point
	Speed eq.Speed `json:"speed"`
	// Suppressed marks a point at the user's own distance.
	Suppressed bool `json:"suppressed"`
}

// Defaults returns the common batting-practice and age-group distances.
func Defaults() []Point {
	return []Point{
		{Name: "20ft BP", Distance: 20},
		{Name: "30ft BP", Distance: 30},
		{Name: "46ft (10U)", Distance: 46},
		{Name: "50ft (12U)", Distance: 50},
		{Name: "60.5ft (MLB)", Distance: 60.5},
	}
}

// Check validates configured points and returns a trimmed copy.
func Check(points []Point) ([]Point, error) {
	out := make([]Point, 0, len(points))
	for i, p := range points {
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" {
			return nil, fmt.Errorf("reference %d: %w", i, ErrEmptyName)
		}
		if !eq.InDomain(p.Distance) {
			return nil, fmt.Errorf("reference %q at %g ft: %w", p.Name, float64(p.Distance), ErrOutOfDomain)
		}
		out = append(out, p)
	}
	return out, nil
}

// Annotate solves every point for t. Points at exactly the input distance
// are kept but flagged Suppressed so the renderer does not draw them twice.
func Annotate(t eq.Seconds, input eq.Distance, points []Point) []Annotation {
	out := make([]Annotation, len(points))
	for i, p := range points {
		out[i] = Annotation{
			Point:      p,
			Speed:      eq.EquivalentSpeed(t, p.Distance),
			Suppressed: p.Distance == input,
		}
	}
	return out
}
