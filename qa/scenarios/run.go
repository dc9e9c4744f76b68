package scenarios

import (
	"errors"
	"testing"

	"github.com/kilianp07/confsched/core/model"
	"github.com/kilianp07/confsched/core/schedule"
)

// RunScenario lays out the scenario day and compares every emitted cell
// with the expectation.
func RunScenario(t *testing.T, sc *Scenario) {
	t.Helper()
	sessions := make([]model.Session, len(sc.Sessions))
	for i, def := range sc.Sessions {
		s, err := def.ToModel()
		if err != nil {
			t.Fatalf("session %s: %v", def.Code, err)
		}
		sessions[i] = s
	}
	cfg := schedule.Config{Rooms: sc.Rooms, TimeslotMinutes: sc.TimeslotMinutes}
	cfg.SetDefaults()

	grid, err := schedule.LayoutDay(sc.Day, sessions, cfg)
	if len(sc.Expected.MissingRooms) > 0 {
		var rme *schedule.RoomMismatchError
		if !errors.As(err, &rme) {
			t.Fatalf("expected room mismatch, got %v", err)
		}
		if !equalStrings(rme.Missing, sc.Expected.MissingRooms) {
			t.Fatalf("missing rooms %v, want %v", rme.Missing, sc.Expected.MissingRooms)
		}
		return
	}
	if err != nil {
		t.Fatalf("layout: %v", err)
	}

	if len(grid.Rows) != sc.Expected.Rows {
		t.Fatalf("rows = %d, want %d", len(grid.Rows), sc.Expected.Rows)
	}
	if sc.Expected.Labels != nil {
		if got := labels(grid); !equalStrings(got, sc.Expected.Labels) {
			t.Errorf("labels %v, want %v", got, sc.Expected.Labels)
		}
	}
	got := cells(grid)
	if len(got) != len(sc.Expected.Cells) {
		t.Fatalf("got %d cells %+v, want %d", len(got), got, len(sc.Expected.Cells))
	}
	for i := range got {
		if got[i] != sc.Expected.Cells[i] {
			t.Errorf("cell %d = %+v, want %+v", i, got[i], sc.Expected.Cells[i])
		}
	}
}

func cells(g schedule.Grid) []CellDef {
	var out []CellDef
	for _, row := range g.Rows {
		for _, c := range row.Cells {
			d := CellDef{Row: row.Time.Format("15:04"), Room: c.Room, Kind: c.Kind.String(), RowSpan: c.RowSpan}
			if c.Session != nil {
				d.Code = c.Session.Code
			}
			out = append(out, d)
		}
	}
	return out
}

func labels(g schedule.Grid) []string {
	out := []string{}
	for _, row := range g.Rows {
		if row.Label != nil {
			out = append(out, row.Label.Start.Format("15:04")+"-"+row.Label.End.Format("15:04"))
		}
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
