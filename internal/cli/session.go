package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/ntm"
	"github.com/aretw0/ntm/internal/config"
	"github.com/aretw0/ntm/internal/logging"
	"github.com/aretw0/ntm/internal/presentation/tui"
	"github.com/aretw0/ntm/pkg/domain"
	"github.com/aretw0/ntm/pkg/observability"
)

// Session carries what every command needs: settings, logger, metrics and output streams.
type Session struct {
	Config  config.Config
	Logger  *slog.Logger
	Metrics *observability.Metrics
	Stdout  io.Writer
	Stderr  io.Writer

	// Terminal is true when Stdout is an interactive terminal.
	Terminal bool

	closer io.Closer
}

// NewSession builds a session from cfg, writing to the process streams.
func NewSession(cfg config.Config) (*Session, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger, closer, err := logging.NewWithFile(level, cfg.LogFile)
	if err != nil {
		return nil, err
	}

	s := &Session{
		Config:   cfg,
		Logger:   logger,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Terminal: tui.IsTerminal(os.Stdout),
		closer:   closer,
	}
	if cfg.MetricsFile != "" {
		s.Metrics = observability.NewMetrics()
	}
	return s, nil
}

// Close exports metrics when a metrics file is configured and releases the log file.
func (s *Session) Close() error {
	var errs []error
	if s.Metrics != nil && s.Config.MetricsFile != "" {
		if err := s.Metrics.WriteTextfile(s.Config.MetricsFile); err != nil {
			errs = append(errs, fmt.Errorf("failed to write metrics: %w", err))
		}
	}
	if s.closer != nil {
		errs = append(errs, s.closer.Close())
	}
	return errors.Join(errs...)
}

// hooks combines debug logging with the metrics collector, if any.
func (s *Session) hooks() domain.LifecycleHooks {
	sets := []domain.LifecycleHooks{createDebugHooks(s.Logger)}
	if s.Metrics != nil {
		sets = append(sets, s.Metrics.Hooks())
	}
	return observability.ChainHooks(sets...)
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTraceStart: func(ctx context.Context, e *domain.TraceEvent) {
			logger.Debug("Trace Start", "machine", e.Machine, "input", e.Input, "max_depth", e.MaxDepth)
		},
		OnTraceFinished: func(ctx context.Context, e *domain.TraceEvent) {
			logger.Debug("Trace Finished", "machine", e.Machine, "level_sizes", e.Result.LevelSizes, "examined", e.Result.Examined)
		},
		OnRunStart: func(ctx context.Context, e *domain.RunEvent) {
			logger.Debug("Run Start", "machine", e.Machine, "input", e.Input, "max_steps", e.MaxSteps)
		},
		OnRunFinished: func(ctx context.Context, e *domain.RunEvent) {
			logger.Debug("Run Finished", "machine", e.Machine, "steps", e.Result.Steps)
		},
	}
}

// engineOptions are the options every command applies.
func (s *Session) engineOptions() ([]ntm.Option, error) {
	policy, err := domain.ParseWildcardPolicy(s.Config.WildcardPolicy)
	if err != nil {
		return nil, err
	}
	return []ntm.Option{
		ntm.WithLogger(s.Logger),
		ntm.WithLifecycleHooks(s.hooks()),
		ntm.WithWildcardPolicy(policy),
		ntm.WithStrictInput(s.Config.StrictInput),
	}, nil
}
