package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/kilianp07/confsched/core/factory"
	"github.com/kilianp07/confsched/core/model"
	"github.com/kilianp07/confsched/core/schedule"
)

func sampleGrids(t *testing.T) []schedule.Grid {
	t.Helper()
	mk := func(code, title, track, room, start, end string, speakers ...string) model.Session {
		s, err := model.ParseTimestamp(start)
		require.NoError(t, err)
		e, err := model.ParseTimestamp(end)
		require.NoError(t, err)
		var sp []model.Speaker
		for _, n := range speakers {
			sp = append(sp, model.Speaker{Name: n})
		}
		slot := &model.Slot{Start: s, End: e, Room: room, StartRaw: start}
		return model.Session{Code: code, Title: title, TrackID: model.Identifier(track), Duration: slot.Minutes(), Speakers: sp, Slot: slot}
	}
	sessions := []model.Session{
		mk("S1", "Intro & <welcome>", "3", "A", "2024-11-14T09:00", "2024-11-14T09:10", "Alice", "Bob"),
		mk("S2", "Workshop", "7", "B", "2024-11-15T10:00", "2024-11-15T10:30"),
	}
	grids, err := schedule.Layout(sessions, schedule.Config{Rooms: []string{"A", "B"}, TimeslotMinutes: 5})
	require.NoError(t, err)
	return grids
}

func TestHTMLWrite(t *testing.T) {
	var buf bytes.Buffer
	h := HTML{Title: "DevConf", Locale: "en_US", Stylesheets: []string{"grid.css"}}
	require.NoError(t, h.Write(&buf, sampleGrids(t)))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>\n<html>"))
	assert.Contains(t, out, `<link rel="stylesheet" type="text/css" href="grid.css">`)
	assert.Contains(t, out, "<title>DevConf</title>")
	assert.Contains(t, out, "<h1>Thursday, 14. November 2024</h1>")
	assert.Contains(t, out, "<h1>Friday, 15. November 2024</h1>")
	assert.Less(t, strings.Index(out, "Thursday"), strings.Index(out, "Friday"))
	assert.Contains(t, out, `<tr><th></th><th>A</th><th>B</th></tr>`)
	assert.Contains(t, out, `<td rowspan="12">09:00 &mdash; 10:00 </td>`)
	assert.Contains(t, out, `<td rowspan="2" class="track3">Alice, Bob: <span class="title">Intro &amp; &lt;welcome&gt;</span><br><span class="date">09:00-09:10</span></td>`)
	assert.Contains(t, out, `<td rowspan="2"></td>`)
	assert.Contains(t, out, `<td rowspan="6" class="track7"><span class="title">Workshop</span><br><span class="date">10:00-10:30</span></td>`)
	assert.Equal(t, 2, strings.Count(out, `<table border="1">`))
	// header + 2 rows on the first day, header + 6 rows on the second
	assert.Equal(t, 10, strings.Count(out, "<tr>"))
	assert.True(t, strings.HasSuffix(out, "</body>\n</html>\n"))
}

func TestHTMLDefaults(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, HTML{}.Write(&buf, nil))
	out := buf.String()
	assert.Contains(t, out, "<title>Conference Schedule</title>")
	assert.Contains(t, out, `href="styles.css"`)
	assert.Contains(t, out, `href="./style.css"`)
	assert.NotContains(t, out, "<table")
}

func TestHTMLHeadingBadDay(t *testing.T) {
	_, err := HTML{}.Heading("14.11.2024")
	assert.Error(t, err)
}

func TestNewFromConfig(t *testing.T) {
	w, err := New(factory.ModuleConfig{Type: "html", Conf: map[string]any{
		"title":       "DevConf",
		"locale":      "en_US",
		"stylesheets": []any{"a.css"},
	}})
	require.NoError(t, err)
	h, ok := w.(HTML)
	require.True(t, ok, "got %T", w)
	assert.Equal(t, HTML{Title: "DevConf", Locale: "en_US", Stylesheets: []string{"a.css"}}, h)

	_, err = New(factory.ModuleConfig{Type: "pdf"})
	assert.Error(t, err)
	assert.Equal(t, []string{"csv", "html", "json", "yaml"}, Formats())
}

func TestJSONWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON{}.Write(&buf, sampleGrids(t)))

	var days []DayRecord
	require.NoError(t, json.Unmarshal(buf.Bytes(), &days))
	require.Len(t, days, 2)
	assert.Equal(t, "2024-11-14", days[0].Day)
	assert.Equal(t, "2024-11-14T09:00", days[0].Start)
	assert.Equal(t, "2024-11-14T09:10", days[0].End)
	require.Len(t, days[0].Cells, 2)
	first := days[0].Cells[0]
	assert.Equal(t, "session", first.Kind)
	assert.Equal(t, "S1", first.Code)
	assert.Equal(t, "3", first.Track)
	assert.Equal(t, []string{"Alice", "Bob"}, first.Speakers)
	assert.Equal(t, "empty", days[0].Cells[1].Kind)
	assert.Equal(t, 2, days[0].Cells[1].RowSpan)
}

func TestCSVWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CSV{}.Write(&buf, sampleGrids(t)))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "day", rows[0][0])
	assert.Equal(t, []string{"2024-11-14", "2024-11-14T09:00", "A", "session", "2",
		"2024-11-14T09:00", "2024-11-14T09:10", "S1", "Intro & <welcome>", "3", "Alice, Bob"}, rows[1])
	assert.Equal(t, "B", rows[4][2])
	assert.Equal(t, "Workshop", rows[4][8])
}

func TestYAMLWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, YAML{}.Write(&buf, sampleGrids(t)))

	var days []DayRecord
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &days))
	require.Len(t, days, 2)
	assert.Equal(t, []string{"A", "B"}, days[1].Rooms)
	assert.Equal(t, "Workshop", days[1].Cells[1].Title)
}
