// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"strconv"

	eq "github.com/okian/pitcheq/internal/domain/equivalency"
	"github.com/okian/pitcheq/internal/domain/reference"
)

// Point is one (distance, speed) sample.
type Point struct {
	Distance eq.Distance `json:"distance_ft"`
	Speed    eq.Speed    `json:"speed_mph"`
}

// Chart is everything a renderer needs for one calculation. ID correlates
// log lines; Curve has one sample per DistanceRange element.
type Chart struct {
	ID           string                 `json:"id"`
	Input        Point                  `json:"input"`
	ReactionTime eq.Seconds             `json:"reaction_time_s"`
	Curve        []Point                `json:"curve"`
	Annotations  []reference.Annotation `json:"annotations"`
}

// Title names the chart after its input point.
func (c *Chart) Title() string {
	return fmt.Sprintf("Equivalent Speeds for %s mph at %s ft",
		strconv.FormatFloat(float64(c.Input.Speed), 'f', -1, 64),
		strconv.FormatFloat(float64(c.Input.Distance), 'f', -1, 64))
}

// Visible returns the annotations that should be drawn.
func (c *Chart) Visible() []reference.Annotation {
	out := make([]reference.Annotation, 0, len(c.Annotations))
	for _, a := range c.Annotations {
		if !a.Suppressed {
			out = append(out, a)
		}
	}
	return out
}

// NewCurve zips distances and speeds. Extra elements of the longer slice are dropped.
func NewCurve(distances []eq.Distance, speeds []eq.Speed) []Point {
	n := min(len(distances), len(speeds))
	out := make([]Point, n)
	for i := range n {
		out[i] = Point{Distance: distances[i], Speed: speeds[i]}
	}
	return out
}
