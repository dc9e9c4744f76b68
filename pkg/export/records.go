package export

import (
	"strings"

	"github.com/kilianp07/confsched/core/schedule"
)

const timestampLayout = "2006-01-02T15:04"

// DayRecord is the machine readable form of one grid.
type DayRecord struct {
	Day   string       `json:"day" yaml:"day"`
	Rooms []string     `json:"rooms" yaml:"rooms"`
	Start string       `json:"start,omitempty" yaml:"start,omitempty"`
	End   string       `json:"end,omitempty" yaml:"end,omitempty"`
	Cells []CellRecord `json:"cells" yaml:"cells"`
}

// CellRecord is one emitted cell with the row it starts in.
type CellRecord struct {
	Row      string   `json:"row" yaml:"row"`
	Room     string   `json:"room" yaml:"room"`
	Kind     string   `json:"kind" yaml:"kind"`
	RowSpan  int      `json:"rowspan" yaml:"rowspan"`
	Start    string   `json:"start" yaml:"start"`
	End      string   `json:"end" yaml:"end"`
	Code     string   `json:"code,omitempty" yaml:"code,omitempty"`
	Title    string   `json:"title,omitempty" yaml:"title,omitempty"`
	Track    string   `json:"track,omitempty" yaml:"track,omitempty"`
	Speakers []string `json:"speakers,omitempty" yaml:"speakers,omitempty"`
}

// Records flattens grids into DayRecords.
func Records(grids []schedule.Grid) []DayRecord {
	out := make([]DayRecord, 0, len(grids))
	for _, g := range grids {
		rec := DayRecord{Day: g.Day, Rooms: g.Rooms, Cells: []CellRecord{}}
		if !g.Start.IsZero() {
			rec.Start = g.Start.Format(timestampLayout)
			rec.End = g.End.Format(timestampLayout)
		}
		for _, row := range g.Rows {
			for _, c := range row.Cells {
				cr := CellRecord{
					Row:     row.Time.Format(timestampLayout),
					Room:    c.Room,
					Kind:    c.Kind.String(),
					RowSpan: c.RowSpan,
					Start:   c.Start.Format(timestampLayout),
					End:     c.End.Format(timestampLayout),
				}
				if s := c.Session; s != nil {
					cr.Code = s.Code
					cr.Title = s.Title
					cr.Track = s.TrackID.String()
					cr.Speakers = s.SpeakerNames()
				}
				rec.Cells = append(rec.Cells, cr)
			}
		}
		out = append(out, rec)
	}
	return out
}

func joinSpeakers(names []string) string {
	return strings.Join(names, ", ")
}
