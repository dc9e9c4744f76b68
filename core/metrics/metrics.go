package metrics

import "time"

// LoadEvent describes one SessionRepository load.
type LoadEvent struct {
	Source      string // "cache" or "remote"
	Sessions    int
	Unscheduled int
	Duration    time.Duration
	Time        time.Time
}

// DayEvent describes the grid laid out for a single day.
type DayEvent struct {
	Day          string
	Sessions     int
	Rows         int
	SessionCells int
	EmptyCells   int
	Hidden       int
}

// MetricsSink records run statistics for observability purposes.
type MetricsSink interface {
	RecordLoad(ev LoadEvent) error
	RecordDay(ev DayEvent) error
}

// Flusher is implemented by sinks that buffer until the run ends.
type Flusher interface {
	Flush() error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordLoad(LoadEvent) error { return nil }
func (NopSink) RecordDay(DayEvent) error   { return nil }
