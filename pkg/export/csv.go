package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/kilianp07/confsched/core/schedule"
)

// CSV writes one line per emitted cell.
type CSV struct{}

func (CSV) Write(w io.Writer, grids []schedule.Grid) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"day", "row", "room", "kind", "rowspan", "start", "end", "code", "title", "track", "speakers"}); err != nil {
		return err
	}
	for _, d := range Records(grids) {
		for _, c := range d.Cells {
			rec := []string{
				d.Day,
				c.Row,
				c.Room,
				c.Kind,
				strconv.Itoa(c.RowSpan),
				c.Start,
				c.End,
				c.Code,
				c.Title,
				c.Track,
				joinSpeakers(c.Speakers),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
