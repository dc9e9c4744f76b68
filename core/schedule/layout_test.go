package schedule

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/confsched/core/model"
)

func at(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := model.ParseTimestamp(s)
	require.NoError(t, err)
	return ts
}

func session(t *testing.T, code, room, start, end string) model.Session {
	t.Helper()
	slot := &model.Slot{Start: at(t, start), End: at(t, end), Room: room, StartRaw: start}
	return model.Session{Code: code, Title: "Talk " + code, Duration: slot.Minutes(), Slot: slot}
}

func cfgAB() Config {
	return Config{Rooms: []string{"A", "B"}, TimeslotMinutes: 5}
}

func TestLayoutDaySingleSession(t *testing.T) {
	s := session(t, "x", "A", "2024-11-14T09:00", "2024-11-14T09:10")

	grid, err := LayoutDay("2024-11-14", []model.Session{s}, cfgAB())
	require.NoError(t, err)
	assert.Equal(t, at(t, "2024-11-14T09:00"), grid.Start)
	assert.Equal(t, at(t, "2024-11-14T09:10"), grid.End)
	require.Len(t, grid.Rows, 2)

	first := grid.Rows[0]
	require.NotNil(t, first.Label)
	assert.Equal(t, 12, first.Label.RowSpan)
	assert.Equal(t, 10, first.Label.End.Hour())
	require.Len(t, first.Cells, 2)
	assert.Equal(t, CellSession, first.Cells[0].Kind)
	assert.Equal(t, "A", first.Cells[0].Room)
	assert.Equal(t, 2, first.Cells[0].RowSpan)
	assert.Equal(t, "x", first.Cells[0].Session.Code)
	assert.Equal(t, CellEmpty, first.Cells[1].Kind)
	assert.Equal(t, "B", first.Cells[1].Room)
	assert.Equal(t, 2, first.Cells[1].RowSpan)
	assert.Equal(t, grid.End, first.Cells[1].End)

	second := grid.Rows[1]
	assert.Nil(t, second.Label)
	assert.Empty(t, second.Cells, "09:05 is covered by the 09:00 row spans")
}

func TestLayoutDayRowSpanRounding(t *testing.T) {
	cases := []struct {
		duration int
		want     int
	}{
		{13, 2},
		{3, 1},
		{0, 1},
		{5, 1},
		{45, 9},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%dmin", c.duration), func(t *testing.T) {
			s := session(t, "x", "A", "2024-11-14T09:00", "2024-11-14T10:00")
			s.Duration = c.duration
			grid, err := LayoutDay("2024-11-14", []model.Session{s}, cfgAB())
			require.NoError(t, err)
			cell := grid.Rows[0].Cells[0]
			require.Equal(t, CellSession, cell.Kind)
			assert.Equal(t, c.want, cell.RowSpan)
		})
	}
}

func TestLayoutDayRoomMismatch(t *testing.T) {
	sessions := []model.Session{
		session(t, "1", "A", "2024-11-14T09:00", "2024-11-14T09:30"),
		session(t, "2", "Lobby", "2024-11-14T09:00", "2024-11-14T09:30"),
		session(t, "3", "Garden", "2024-11-14T10:00", "2024-11-14T10:30"),
		session(t, "4", "Lobby", "2024-11-14T11:00", "2024-11-14T11:30"),
		session(t, "5", "Attic", "2024-11-15T11:00", "2024-11-15T11:30"),
	}
	grid, err := LayoutDay("2024-11-14", sessions, cfgAB())
	require.Error(t, err)
	assert.Empty(t, grid.Rows)

	var rme *RoomMismatchError
	require.True(t, errors.As(err, &rme))
	assert.Equal(t, "2024-11-14", rme.Day)
	assert.Equal(t, []string{"Garden", "Lobby"}, rme.Missing)
	assert.Contains(t, err.Error(), "Garden, Lobby")
}

func TestLayoutDayNoSessions(t *testing.T) {
	grid, err := LayoutDay("2024-11-14", nil, cfgAB())
	require.NoError(t, err)
	assert.Empty(t, grid.Rows)
	assert.Equal(t, []string{"A", "B"}, grid.Rooms)
}

func TestLayoutDayInvalidTimeslot(t *testing.T) {
	_, err := LayoutDay("2024-11-14", nil, Config{Rooms: []string{"A"}})
	assert.Error(t, err)
}

func TestLayoutDayGapBeforeSession(t *testing.T) {
	sessions := []model.Session{
		session(t, "early", "A", "2024-11-14T09:00", "2024-11-14T10:00"),
		session(t, "late", "B", "2024-11-14T09:30", "2024-11-14T09:45"),
	}
	grid, err := LayoutDay("2024-11-14", sessions, cfgAB())
	require.NoError(t, err)
	require.Len(t, grid.Rows, 12)

	b := grid.Rows[0].Cells[1]
	assert.Equal(t, CellEmpty, b.Kind)
	assert.Equal(t, 6, b.RowSpan)

	late := grid.Rows[6].Cells
	require.Len(t, late, 1)
	assert.Equal(t, "late", late[0].Session.Code)
	assert.Equal(t, 3, late[0].RowSpan)

	tail := grid.Rows[9].Cells
	require.Len(t, tail, 1)
	assert.Equal(t, CellEmpty, tail[0].Kind)
	assert.Equal(t, 3, tail[0].RowSpan)
}

func TestLayoutDayOffGridStart(t *testing.T) {
	sessions := []model.Session{
		session(t, "a", "A", "2024-11-14T09:00", "2024-11-14T09:30"),
		session(t, "b", "B", "2024-11-14T09:12", "2024-11-14T09:30"),
	}
	grid, err := LayoutDay("2024-11-14", sessions, cfgAB())
	require.NoError(t, err)
	assert.Empty(t, grid.Hidden)
	assert.Equal(t, 2, grid.CellCount(CellSession))
	assertPartition(t, grid, 5)
}

func TestLayoutDayOverlapHidden(t *testing.T) {
	sessions := []model.Session{
		session(t, "a", "A", "2024-11-14T09:00", "2024-11-14T10:00"),
		session(t, "b", "A", "2024-11-14T09:30", "2024-11-14T10:00"),
	}
	grid, err := LayoutDay("2024-11-14", sessions, cfgAB())
	require.NoError(t, err)
	require.Len(t, grid.Hidden, 1)
	assert.Equal(t, "b", grid.Hidden[0].Code)
	assertPartition(t, grid, 5)
}

func TestLayoutDayBackToBackOffGrid(t *testing.T) {
	sessions := []model.Session{
		session(t, "a1", "A", "2024-11-14T09:00", "2024-11-14T09:03"),
		session(t, "a2", "A", "2024-11-14T09:03", "2024-11-14T09:10"),
	}
	grid, err := LayoutDay("2024-11-14", sessions, cfgAB())
	require.NoError(t, err)
	assert.Empty(t, grid.Hidden)
	require.Len(t, grid.Rows, 2)
	require.Len(t, grid.Rows[1].Cells, 1)
	second := grid.Rows[1].Cells[0]
	assert.Equal(t, "a2", second.Session.Code)
	assert.Equal(t, 1, second.RowSpan)
	assertPartition(t, grid, 5)
}

func TestLayoutDayDurationPastDayEnd(t *testing.T) {
	s := session(t, "long", "A", "2024-11-14T09:00", "2024-11-14T09:30")
	s.Duration = 60
	grid, err := LayoutDay("2024-11-14", []model.Session{s}, cfgAB())
	require.NoError(t, err)
	require.Len(t, grid.Rows, 6)
	assert.Equal(t, 6, grid.Rows[0].Cells[0].RowSpan)
	assertPartition(t, grid, 5)
}

func TestLayoutDayAcrossMidnight(t *testing.T) {
	sessions := []model.Session{
		session(t, "late", "A", "2024-11-14T23:00", "2024-11-15T00:30"),
		session(t, "next", "A", "2024-11-15T09:00", "2024-11-15T09:30"),
	}
	grid, err := LayoutDay("2024-11-14", sessions, cfgAB())
	require.NoError(t, err)
	assert.Len(t, grid.Rows, 18)
	assert.Equal(t, 18, grid.Rows[0].Cells[0].RowSpan)
	require.NotNil(t, grid.Rows[12].Label)
	assert.Equal(t, 0, grid.Rows[12].Time.Hour())
}

func TestLayoutDaysAscending(t *testing.T) {
	sessions := []model.Session{
		session(t, "fri", "A", "2024-11-15T09:00", "2024-11-15T09:30"),
		{Code: "unscheduled", Title: "Later"},
		session(t, "thu", "B", "2024-11-14T09:00", "2024-11-14T09:30"),
	}
	assert.Equal(t, []string{"2024-11-14", "2024-11-15"}, DistinctDays(sessions))

	grids, err := Layout(sessions, cfgAB())
	require.NoError(t, err)
	require.Len(t, grids, 2)
	assert.Equal(t, "2024-11-14", grids[0].Day)
	assert.Equal(t, "thu", grids[0].Rows[0].Cells[1].Session.Code)
	assert.Equal(t, "2024-11-15", grids[1].Day)
}

func TestLayoutStopsOnMismatch(t *testing.T) {
	sessions := []model.Session{
		session(t, "ok", "A", "2024-11-14T09:00", "2024-11-14T09:30"),
		session(t, "bad", "Z", "2024-11-15T09:00", "2024-11-15T09:30"),
	}
	grids, err := Layout(sessions, cfgAB())
	assert.Nil(t, grids)
	var rme *RoomMismatchError
	require.True(t, errors.As(err, &rme))
	assert.Equal(t, "2024-11-15", rme.Day)
}

func TestSessionsOnStable(t *testing.T) {
	sessions := []model.Session{
		session(t, "second", "A", "2024-11-14T10:00", "2024-11-14T10:30"),
		session(t, "tie1", "A", "2024-11-14T09:00", "2024-11-14T09:30"),
		session(t, "tie2", "B", "2024-11-14T09:00", "2024-11-14T09:30"),
		session(t, "other", "B", "2024-11-15T09:00", "2024-11-15T09:30"),
	}
	var codes []string
	for _, s := range SessionsOn("2024-11-14", sessions) {
		codes = append(codes, s.Code)
	}
	assert.Equal(t, []string{"tie1", "tie2", "second"}, codes)
}

func TestConfigValidate(t *testing.T) {
	c := Config{Rooms: []string{"A"}}
	c.SetDefaults()
	assert.Equal(t, 5, c.TimeslotMinutes)
	assert.NoError(t, c.Validate())
	assert.Equal(t, 5*time.Minute, c.Step())

	assert.Error(t, Config{TimeslotMinutes: 5}.Validate())
	assert.Error(t, Config{Rooms: []string{"A", "A"}, TimeslotMinutes: 5}.Validate())
	assert.Error(t, Config{Rooms: []string{"A"}, TimeslotMinutes: 7}.Validate())
}

// TestLayoutDayRandomSchedules checks coverage and per-room partitioning on
// generated on-grid schedules without overlaps.
func TestLayoutDayRandomSchedules(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	rooms := []string{"A", "B", "C"}
	cfg := Config{Rooms: rooms, TimeslotMinutes: 5}
	base := at(t, "2024-11-14T08:00")

	for iter := 0; iter < 50; iter++ {
		var sessions []model.Session
		for _, room := range rooms {
			cur := base.Add(time.Duration(rng.Intn(12)*5) * time.Minute)
			for k := 0; k < 4; k++ {
				start := cur.Add(time.Duration(rng.Intn(4)*5) * time.Minute)
				end := start.Add(time.Duration(1+rng.Intn(12)) * 5 * time.Minute)
				code := fmt.Sprintf("%s%d", room, k)
				startRaw := start.Format("2006-01-02T15:04")
				sessions = append(sessions, model.Session{
					Code: code, Title: code, Duration: int(end.Sub(start) / time.Minute),
					Slot: &model.Slot{Start: start, End: end, Room: room, StartRaw: startRaw},
				})
				cur = end
			}
		}
		rng.Shuffle(len(sessions), func(i, j int) { sessions[i], sessions[j] = sessions[j], sessions[i] })

		grid, err := LayoutDay("2024-11-14", sessions, cfg)
		require.NoError(t, err)
		assert.Empty(t, grid.Hidden)

		// every session appears exactly once, at its start row and room
		seen := map[string]int{}
		for _, row := range grid.Rows {
			for _, c := range row.Cells {
				if c.Kind != CellSession {
					continue
				}
				seen[c.Session.Code]++
				assert.True(t, c.Session.Slot.Start.Equal(row.Time), "session %s at wrong row", c.Session.Code)
				assert.Equal(t, c.Session.Slot.Room, c.Room)
			}
		}
		for _, s := range sessions {
			assert.Equal(t, 1, seen[s.Code], "session %s", s.Code)
		}
		assertPartition(t, grid, cfg.TimeslotMinutes)
	}
}

// assertPartition checks that the cells of every room tile [Start, End)
// without gaps or overlaps.
func assertPartition(t *testing.T, grid Grid, timeslot int) {
	t.Helper()
	step := time.Duration(timeslot) * time.Minute
	rows := int(grid.End.Sub(grid.Start) / step)
	if grid.End.Sub(grid.Start)%step != 0 {
		rows++
	}
	require.Len(t, grid.Rows, rows)
	for _, room := range grid.Rooms {
		covered := 0
		for i, row := range grid.Rows {
			for _, c := range row.Cells {
				if c.Room != room {
					continue
				}
				require.Equal(t, covered, i, "room %s: cell at row %d but coverage ends at row %d", room, i, covered)
				covered += c.RowSpan
			}
		}
		assert.Equal(t, rows, covered, "room %s not tiled exactly", room)
	}
}
