package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/confsched/core/metrics"
)

// PromSink records run statistics in Prometheus gauges. A one-shot CLI has
// nothing to scrape, so the gauges are written to a node_exporter textfile
// on Flush when a path is configured.
type PromSink struct {
	reg          *prometheus.Registry
	textfilePath string

	sessions     *prometheus.GaugeVec
	unscheduled  prometheus.Gauge
	loadDuration prometheus.Gauge
	lastRun      prometheus.Gauge
	rows         *prometheus.GaugeVec
	cells        *prometheus.GaugeVec
	hidden       *prometheus.GaugeVec
}

// NewPromSink registers run metrics on a fresh registry.
func NewPromSink(textfilePath string) (*PromSink, error) {
	return NewPromSinkWithRegistry(textfilePath, prometheus.NewRegistry())
}

// NewPromSinkWithRegistry registers metrics on the provided registry.
// A nil registry is replaced by a fresh one.
func NewPromSinkWithRegistry(textfilePath string, reg *prometheus.Registry) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	s := &PromSink{
		reg:          reg,
		textfilePath: textfilePath,
		sessions: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "confsched_sessions_loaded",
			Help: "Number of sessions loaded, by source",
		}, []string{"source"}),
		unscheduled: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "confsched_sessions_unscheduled",
			Help: "Number of loaded sessions without a slot",
		}),
		loadDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "confsched_load_duration_seconds",
			Help: "Time spent loading sessions",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "confsched_last_load_timestamp_seconds",
			Help: "Unix time of the last session load",
		}),
		rows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "confsched_day_rows",
			Help: "Number of timeslot rows in a day's grid",
		}, []string{"day"}),
		cells: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "confsched_day_cells",
			Help: "Number of cells in a day's grid, by kind",
		}, []string{"day", "kind"}),
		hidden: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "confsched_day_hidden_sessions",
			Help: "Sessions left out of a day's grid because their room was covered",
		}, []string{"day"}),
	}
	for _, c := range []prometheus.Collector{s.sessions, s.unscheduled, s.loadDuration, s.lastRun, s.rows, s.cells, s.hidden} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register collector: %w", err)
		}
	}
	return s, nil
}

// RecordLoad sets the load gauges.
func (s *PromSink) RecordLoad(ev coremetrics.LoadEvent) error {
	s.sessions.WithLabelValues(ev.Source).Set(float64(ev.Sessions))
	s.unscheduled.Set(float64(ev.Unscheduled))
	s.loadDuration.Set(ev.Duration.Seconds())
	if !ev.Time.IsZero() {
		s.lastRun.Set(float64(ev.Time.Unix()))
	}
	return nil
}

// RecordDay sets the per-day grid gauges.
func (s *PromSink) RecordDay(ev coremetrics.DayEvent) error {
	s.rows.WithLabelValues(ev.Day).Set(float64(ev.Rows))
	s.cells.WithLabelValues(ev.Day, "session").Set(float64(ev.SessionCells))
	s.cells.WithLabelValues(ev.Day, "empty").Set(float64(ev.EmptyCells))
	s.hidden.WithLabelValues(ev.Day).Set(float64(ev.Hidden))
	return nil
}

// Registry exposes the underlying registry.
func (s *PromSink) Registry() *prometheus.Registry { return s.reg }

// Flush writes all gauges to the textfile. It is a no-op without a path.
func (s *PromSink) Flush() error {
	if s.textfilePath == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(s.textfilePath, s.reg); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
