package export

import (
	"encoding/json"
	"io"

	"github.com/kilianp07/confsched/core/schedule"
)

// JSON writes the grids as an indented JSON array of DayRecords.
type JSON struct{}

func (JSON) Write(w io.Writer, grids []schedule.Grid) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Records(grids))
}
