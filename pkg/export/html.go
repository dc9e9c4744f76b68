package export

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/goodsign/monday"

	"github.com/kilianp07/confsched/core/factory"
	"github.com/kilianp07/confsched/core/model"
	"github.com/kilianp07/confsched/core/schedule"
)

const (
	DefaultTitle  = "Conference Schedule"
	DefaultLocale = "cs_CZ"

	headingLayout = "Monday, 2. January 2006"
)

// DefaultStylesheets are linked when none are configured.
var DefaultStylesheets = []string{"styles.css", "./style.css"}

var htmlFuncs = template.FuncMap{
	"clock": func(t time.Time) string { return t.Format("15:04") },
	"speakers": func(s *model.Session) string {
		return joinSpeakers(s.SpeakerNames())
	},
}

const tmplPage = `{{define "page"}}<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
{{range .Stylesheets}}<link rel="stylesheet" type="text/css" href="{{.}}">
{{end}}<title>{{.Title}}</title>
</head>
<body>
{{range .Days}}<h1>{{.Heading}}</h1>
<table border="1">
<tr><th></th>{{range .Grid.Rooms}}<th>{{.}}</th>{{end}}</tr>
{{range .Grid.Rows}}<tr>{{with .Label}}<td rowspan="{{.RowSpan}}">{{clock .Start}} &mdash; {{clock .End}} </td>{{end}}{{range .Cells}}{{template "cell" .}}{{end}}</tr>
{{end}}</table>
{{end}}</body>
</html>
{{end}}`

const tmplCell = `{{define "cell"}}{{if .Session}}<td rowspan="{{.RowSpan}}" class="track{{.Session.TrackID}}">{{with speakers .Session}}{{.}}: {{end}}<span class="title">{{.Session.Title}}</span><br><span class="date">{{clock .Start}}-{{clock .End}}</span></td>
{{else}}<td rowspan="{{.RowSpan}}"></td>{{end}}{{end}}`

var pageTemplate = template.Must(template.New("export").Funcs(htmlFuncs).Parse(tmplPage + tmplCell))

// HTML renders the timetable document: one heading and one table per day.
type HTML struct {
	Title       string   `json:"title"`
	Locale      string   `json:"locale"`
	Stylesheets []string `json:"stylesheets"`
}

func newHTML(conf map[string]any) (Writer, error) {
	var h HTML
	if err := factory.Decode(conf, &h); err != nil {
		return nil, fmt.Errorf("html options: %w", err)
	}
	return h, nil
}

type htmlDay struct {
	Heading string
	Grid    schedule.Grid
}

type htmlPage struct {
	Title       string
	Stylesheets []string
	Days        []htmlDay
}

// Heading formats an ISO day as a localized heading, e.g.
// "Thursday, 14. November 2024" for en_US.
func (h HTML) Heading(day string) (string, error) {
	d, err := time.Parse(time.DateOnly, day)
	if err != nil {
		return "", fmt.Errorf("day %q: %w", day, err)
	}
	locale := h.Locale
	if locale == "" {
		locale = DefaultLocale
	}
	return monday.Format(d, headingLayout, monday.Locale(locale)), nil
}

func (h HTML) Write(w io.Writer, grids []schedule.Grid) error {
	page := htmlPage{Title: h.Title, Stylesheets: h.Stylesheets}
	if page.Title == "" {
		page.Title = DefaultTitle
	}
	if page.Stylesheets == nil {
		page.Stylesheets = DefaultStylesheets
	}
	for _, g := range grids {
		heading, err := h.Heading(g.Day)
		if err != nil {
			return err
		}
		page.Days = append(page.Days, htmlDay{Heading: heading, Grid: g})
	}
	return pageTemplate.ExecuteTemplate(w, "page", page)
}
