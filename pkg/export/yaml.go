package export

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/confsched/core/schedule"
)

// YAML writes the grids as a YAML list of DayRecords.
type YAML struct{}

func (YAML) Write(w io.Writer, grids []schedule.Grid) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Records(grids)); err != nil {
		return err
	}
	return enc.Close()
}
