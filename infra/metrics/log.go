package metrics

import (
	coremetrics "github.com/kilianp07/confsched/core/metrics"
	"github.com/kilianp07/confsched/infra/logger"
)

// LogSink reports run statistics as structured debug logs.
type LogSink struct {
	log logger.Logger
}

// NewLogSink returns a LogSink writing through l. A nil logger uses the
// "metrics" component logger.
func NewLogSink(l logger.Logger) *LogSink {
	if l == nil {
		l = logger.New("metrics")
	}
	return &LogSink{log: l}
}

func (s *LogSink) RecordLoad(ev coremetrics.LoadEvent) error {
	s.log.Debugw("sessions loaded", map[string]any{
		"source":      ev.Source,
		"sessions":    ev.Sessions,
		"unscheduled": ev.Unscheduled,
		"duration_ms": ev.Duration.Milliseconds(),
	})
	return nil
}

func (s *LogSink) RecordDay(ev coremetrics.DayEvent) error {
	s.log.Debugw("day laid out", map[string]any{
		"day":           ev.Day,
		"sessions":      ev.Sessions,
		"rows":          ev.Rows,
		"session_cells": ev.SessionCells,
		"empty_cells":   ev.EmptyCells,
		"hidden":        ev.Hidden,
	})
	return nil
}
