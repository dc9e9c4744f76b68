package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/kilianp07/confsched/config"
	coremetrics "github.com/kilianp07/confsched/core/metrics"
	"github.com/kilianp07/confsched/core/model"
	"github.com/kilianp07/confsched/core/schedule"
	"github.com/kilianp07/confsched/infra/logger"
	_ "github.com/kilianp07/confsched/infra/metrics" // registers built-in sinks
	"github.com/kilianp07/confsched/infra/source"
	"github.com/kilianp07/confsched/pkg/export"
)

// SessionLoader provides the flat list of sessions.
type SessionLoader interface {
	Load(ctx context.Context) ([]model.Session, error)
	Refresh(ctx context.Context) ([]model.Session, error)
	Source() string
}

// Service runs the pipeline: load sessions, lay out one grid per day and
// export the result.
type Service struct {
	cfg    config.Config
	loader SessionLoader
	sink   coremetrics.MetricsSink
	log    logger.Logger
	now    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLoader replaces the repository built from cfg.Source.
func WithLoader(l SessionLoader) Option { return func(s *Service) { s.loader = l } }

// WithMetricsSink replaces the sinks built from cfg.Metrics.
func WithMetricsSink(m coremetrics.MetricsSink) Option { return func(s *Service) { s.sink = m } }

// WithLogger replaces the service logger.
func WithLogger(l logger.Logger) Option { return func(s *Service) { s.log = l } }

// New creates a Service from the configuration.
func New(cfg *config.Config, opts ...Option) (*Service, error) {
	if err := logger.SetLevel(cfg.Logging.Level); err != nil {
		return nil, err
	}
	svc := &Service{cfg: *cfg, log: logger.New("service"), now: time.Now}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.loader == nil {
		svc.loader = source.NewRepository(cfg.Source)
	}
	if svc.sink == nil {
		sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
		if err != nil {
			return nil, fmt.Errorf("metrics sink: %w", err)
		}
		svc.sink = sink
	}
	return svc, nil
}

// Render writes the timetable of every day to w in the configured format,
// or in format when it is not empty.
func (s *Service) Render(ctx context.Context, w io.Writer, format string) error {
	render := s.cfg.Render
	if format != "" {
		render.Type = format
	}
	writer, err := export.New(render.Module())
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	sessions, err := s.load(ctx, s.loader.Load)
	if err != nil {
		return err
	}
	grids, err := s.layout(sessions)
	if err != nil {
		return err
	}
	if err := writer.Write(w, grids); err != nil {
		return fmt.Errorf("write %s: %w", render.Type, err)
	}
	s.log.Infof("rendered %d days as %s", len(grids), render.Type)
	return nil
}

// Days returns the distinct days that have scheduled sessions.
func (s *Service) Days(ctx context.Context) ([]string, error) {
	sessions, err := s.load(ctx, s.loader.Load)
	if err != nil {
		return nil, err
	}
	return schedule.DistinctDays(sessions), nil
}

// Refresh downloads the sessions again and replaces the cache. It returns
// the number of sessions received.
func (s *Service) Refresh(ctx context.Context) (int, error) {
	sessions, err := s.load(ctx, s.loader.Refresh)
	if err != nil {
		return 0, err
	}
	return len(sessions), nil
}

// Close flushes buffered metrics.
func (s *Service) Close() error {
	if f, ok := s.sink.(coremetrics.Flusher); ok {
		return f.Flush()
	}
	return nil
}

func (s *Service) load(ctx context.Context, fn func(context.Context) ([]model.Session, error)) ([]model.Session, error) {
	start := s.now()
	sessions, err := fn(ctx)
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}
	unscheduled := 0
	for _, ss := range sessions {
		if !ss.Scheduled() {
			unscheduled++
		}
	}
	s.log.Infof("loaded %d sessions from %s, %d unscheduled", len(sessions), s.loader.Source(), unscheduled)
	if err := s.sink.RecordLoad(coremetrics.LoadEvent{
		Source:      s.loader.Source(),
		Sessions:    len(sessions),
		Unscheduled: unscheduled,
		Duration:    s.now().Sub(start),
		Time:        start,
	}); err != nil {
		s.log.Warnf("record load metrics: %v", err)
	}
	return sessions, nil
}

func (s *Service) layout(sessions []model.Session) ([]schedule.Grid, error) {
	grids, err := schedule.Layout(sessions, s.cfg.Schedule)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	for _, g := range grids {
		day := g.Day
		for _, h := range g.Hidden {
			s.log.Warnf("session %q at %s in %s overlaps another session and is not shown",
				h.Code, h.Slot.Start.Format("2006-01-02 15:04"), h.Slot.Room)
		}
		s.log.Debugw("day laid out", map[string]any{"day": day, "rows": len(g.Rows)})
		if err := s.sink.RecordDay(coremetrics.DayEvent{
			Day:          day,
			Sessions:     len(schedule.SessionsOn(day, sessions)),
			Rows:         len(g.Rows),
			SessionCells: g.CellCount(schedule.CellSession),
			EmptyCells:   g.CellCount(schedule.CellEmpty),
			Hidden:       len(g.Hidden),
		}); err != nil {
			s.log.Warnf("record day metrics: %v", err)
		}
	}
	return grids, nil
}
