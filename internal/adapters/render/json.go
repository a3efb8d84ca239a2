package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/okian/pitcheq/internal/domain/model"
)

type jsonRenderer struct{}

func (jsonRenderer) Format() string { return "json" }

type jsonChart struct {
	Title string `json:"title"`
	*model.Chart
}

func (jsonRenderer) Render(w io.Writer, c *model.Chart) error {
	if c == nil {
		return ErrNilChart
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(jsonChart{Title: c.Title(), Chart: c}); err != nil {
		return fmt.Errorf("render json: %w", err)
	}
	return nil
}
