// Package export writes laid out schedule grids in a chosen format. HTML is
// the timetable itself; JSON, CSV and YAML list the same cells for other
// tools.
package export

import (
	"io"

	"github.com/kilianp07/confsched/core/factory"
	"github.com/kilianp07/confsched/core/schedule"
)

// Writer renders grids into w.
type Writer interface {
	Write(w io.Writer, grids []schedule.Grid) error
}

var formats = factory.NewRegistry[Writer]()

func init() {
	_ = formats.Register("html", newHTML)
	_ = formats.Register("json", func(map[string]any) (Writer, error) { return JSON{}, nil })
	_ = formats.Register("csv", func(map[string]any) (Writer, error) { return CSV{}, nil })
	_ = formats.Register("yaml", func(map[string]any) (Writer, error) { return YAML{}, nil })
}

// New creates the Writer for cfg.Type with cfg.Conf as its options.
func New(cfg factory.ModuleConfig) (Writer, error) {
	return formats.Create(cfg)
}

// Formats lists the supported format names.
func Formats() []string { return formats.Names() }
