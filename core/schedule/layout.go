package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/kilianp07/confsched/core/model"
)

// CellKind tells whether a cell shows a session or a gap.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellSession
)

// String returns a human-readable representation of the cell kind.
func (k CellKind) String() string {
	switch k {
	case CellEmpty:
		return "empty"
	case CellSession:
		return "session"
	default:
		return "unknown"
	}
}

// HourLabel marks the first row of a full hour in the time column.
type HourLabel struct {
	Start   time.Time
	End     time.Time
	RowSpan int
}

// Cell is one table cell of a room column. It covers RowSpan consecutive
// rows starting at the row it was emitted in.
type Cell struct {
	Kind    CellKind
	Room    string
	RowSpan int
	Start   time.Time
	End     time.Time
	Session *model.Session // set for CellSession
}

// Row is one timeslot tick. Rooms still covered by a cell from an earlier
// row contribute no cell, so Cells may be empty.
type Row struct {
	Time  time.Time
	Label *HourLabel
	Cells []Cell
}

// Grid is the laid out timetable of a single day.
type Grid struct {
	Day   string // YYYY-MM-DD
	Rooms []string
	Start time.Time
	End   time.Time
	Rows  []Row

	// Hidden lists sessions that could not be placed because their room
	// was still covered by an overlapping session.
	Hidden []model.Session
}

// Date parses Day.
func (g Grid) Date() (time.Time, error) {
	return time.Parse(time.DateOnly, g.Day)
}

// CellCount returns the number of emitted cells of the given kind.
func (g Grid) CellCount(kind CellKind) int {
	n := 0
	for _, r := range g.Rows {
		for _, c := range r.Cells {
			if c.Kind == kind {
				n++
			}
		}
	}
	return n
}

// Layout builds the grid of every day that has scheduled sessions, in
// ascending day order. It stops at the first day that fails.
func Layout(sessions []model.Session, cfg Config) ([]Grid, error) {
	days := DistinctDays(sessions)
	grids := make([]Grid, 0, len(days))
	for _, day := range days {
		g, err := LayoutDay(day, sessions, cfg)
		if err != nil {
			return nil, err
		}
		grids = append(grids, g)
	}
	return grids, nil
}

// LayoutDay builds the grid for day out of all sessions. Rows run from the
// earliest slot boundary of the day (inclusive) to the latest (exclusive)
// in steps of cfg.TimeslotMinutes.
//
// A *RoomMismatchError is returned, and no row is built, when a session of
// the day sits in a room that cfg.Rooms does not list.
func LayoutDay(day string, sessions []model.Session, cfg Config) (Grid, error) {
	if cfg.TimeslotMinutes <= 0 {
		return Grid{}, fmt.Errorf("schedule: invalid timeslot %d", cfg.TimeslotMinutes)
	}
	daySessions := SessionsOn(day, sessions)
	grid := Grid{Day: day, Rooms: append([]string(nil), cfg.Rooms...)}
	if len(daySessions) == 0 {
		return grid, nil
	}
	if err := checkRooms(day, daySessions, cfg.Rooms); err != nil {
		return Grid{}, err
	}

	axis := timeAxis(daySessions)
	minTime, maxTime := axis[0], axis[len(axis)-1]
	grid.Start, grid.End = minTime, maxTime

	step := cfg.Step()
	// A room is covered until the last row its cell spans; the zero
	// value means free.
	occupied := make(map[string]time.Time, len(cfg.Rooms))
	// End of the slot last placed in each room. A session starting
	// before it overlaps and is never placed.
	lastEnd := make(map[string]time.Time, len(cfg.Rooms))
	placed := make([]bool, len(daySessions))

	for cur := minTime; cur.Before(maxTime); cur = cur.Add(step) {
		row := Row{Time: cur}
		if cur.Minute() == 0 {
			row.Label = &HourLabel{Start: cur, End: cur.Add(time.Hour), RowSpan: 60 / cfg.TimeslotMinutes}
		}
		for _, room := range cfg.Rooms {
			if until := occupied[room]; until.After(cur) {
				continue
			}
			if i := startingAt(daySessions, placed, room, lastEnd[room], cur.Add(step)); i >= 0 {
				s := &daySessions[i]
				placed[i] = true
				lastEnd[room] = s.Slot.End
				span := min(rowSpan(s.Duration, cfg.TimeslotMinutes), rowsLeft(cur, maxTime, step))
				occupied[room] = cur.Add(time.Duration(span) * step)
				row.Cells = append(row.Cells, Cell{
					Kind:    CellSession,
					Room:    room,
					RowSpan: span,
					Start:   s.Slot.Start,
					End:     s.Slot.End,
					Session: s,
				})
				continue
			}
			until := maxTime
			if next := nextAfter(daySessions, room, cur); next != nil {
				until = next.Slot.Start
			}
			span := rowSpan(int(until.Sub(cur)/time.Minute), cfg.TimeslotMinutes)
			occupied[room] = cur.Add(time.Duration(span) * step)
			row.Cells = append(row.Cells, Cell{
				Kind:    CellEmpty,
				Room:    room,
				RowSpan: span,
				Start:   cur,
				End:     until,
			})
		}
		grid.Rows = append(grid.Rows, row)
	}

	for i, ok := range placed {
		if !ok {
			grid.Hidden = append(grid.Hidden, daySessions[i])
		}
	}
	return grid, nil
}

// rowSpan converts minutes into grid rows, rounding down but never below one.
func rowSpan(minutes, timeslot int) int {
	n := minutes / timeslot
	if n < 1 {
		return 1
	}
	return n
}

func checkRooms(day string, sessions []model.Session, rooms []string) error {
	known := make(map[string]struct{}, len(rooms))
	for _, r := range rooms {
		known[r] = struct{}{}
	}
	missing := make(map[string]struct{})
	for _, s := range sessions {
		if _, ok := known[s.Slot.Room]; !ok {
			missing[s.Slot.Room] = struct{}{}
		}
	}
	if len(missing) == 0 {
		return nil
	}
	names := make([]string, 0, len(missing))
	for r := range missing {
		names = append(names, r)
	}
	sort.Strings(names)
	return &RoomMismatchError{Day: day, Missing: names}
}

// timeAxis returns the distinct slot boundaries of sessions in ascending order.
func timeAxis(sessions []model.Session) []time.Time {
	seen := make(map[time.Time]struct{}, 2*len(sessions))
	axis := make([]time.Time, 0, 2*len(sessions))
	for _, s := range sessions {
		for _, t := range []time.Time{s.Slot.Start, s.Slot.End} {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			axis = append(axis, t)
		}
	}
	sort.Slice(axis, func(i, j int) bool { return axis[i].Before(axis[j]) })
	return axis
}

// rowsLeft is the number of ticks from cur up to end, counting a partial
// last tick.
func rowsLeft(cur, end time.Time, step time.Duration) int {
	d := end.Sub(cur)
	n := int(d / step)
	if d%step != 0 {
		n++
	}
	return n
}

// startingAt returns the index of the first unplaced session in room that
// starts before the end of the current tick and not before notBefore, or -1.
// A session whose start fell inside rows still covered by the previous cell
// is placed at the first free tick.
func startingAt(sessions []model.Session, placed []bool, room string, notBefore, tickEnd time.Time) int {
	for i, s := range sessions {
		if placed[i] || s.Slot.Room != room {
			continue
		}
		if !s.Slot.Start.Before(notBefore) && s.Slot.Start.Before(tickEnd) {
			return i
		}
	}
	return -1
}

// nextAfter returns the earliest session in room starting strictly after cur.
// sessions must be sorted by start.
func nextAfter(sessions []model.Session, room string, cur time.Time) *model.Session {
	for i := range sessions {
		s := &sessions[i]
		if s.Slot.Room == room && s.Slot.Start.After(cur) {
			return s
		}
	}
	return nil
}
