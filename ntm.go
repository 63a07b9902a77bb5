package ntm

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/loam"
	"github.com/aretw0/ntm/internal/compiler"
	"github.com/aretw0/ntm/internal/runtime"
	"github.com/aretw0/ntm/internal/validator"
	"github.com/aretw0/ntm/pkg/adapters/file"
	loamAdapter "github.com/aretw0/ntm/pkg/adapters/loam"
	"github.com/aretw0/ntm/pkg/domain"
	"github.com/aretw0/ntm/pkg/ports"
)

// Engine is the high-level entry point for the ntm library.
// It loads machines through a MachineLoader and runs them with the internal runtime.
type Engine struct {
	loader      ports.MachineLoader
	parser      *compiler.Parser
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	policy      domain.WildcardPolicy
	keepTree    bool
	history     bool
	strictInput bool
	Name        string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLoader injects a custom MachineLoader, bypassing the default file/Loam initialization.
func WithLoader(l ports.MachineLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithWildcardPolicy selects how wildcard rules combine with exact rules (default: exact-first).
func WithWildcardPolicy(p domain.WildcardPolicy) Option {
	return func(e *Engine) {
		e.policy = p
	}
}

// WithTreeRetention keeps the whole configuration tree in trace results.
func WithTreeRetention(keep bool) Option {
	return func(e *Engine) {
		e.keepTree = keep
	}
}

// WithHistory records per-step tape snapshots in deterministic run results.
func WithHistory(keep bool) Option {
	return func(e *Engine) {
		e.history = keep
	}
}

// WithStrictInput rejects inputs with symbols outside the input alphabet before simulating.
// It is enabled by default.
func WithStrictInput(strict bool) Option {
	return func(e *Engine) {
		e.strictInput = strict
	}
}

// New initializes a new Engine.
// By default path is opened as a machine source: a single machine file is served
// as is, and a directory is opened as a Loam library of machine documents.
// If WithLoader is provided, path can be empty and is only used as a label.
func New(path string, opts ...Option) (*Engine, error) {
	eng := &Engine{
		parser:      compiler.NewParser(),
		policy:      domain.WildcardExactFirst,
		strictInput: true,
	}

	for _, opt := range opts {
		opt(eng)
	}

	if eng.loader == nil {
		if path == "" {
			return nil, fmt.Errorf("path is required when no custom loader is provided")
		}

		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("invalid path: %w", err)
		}
		eng.Name = filepath.Base(absPath)

		loader, err := openSource(absPath)
		if err != nil {
			return nil, err
		}
		eng.loader = loader
	} else if path != "" {
		eng.Name = filepath.Base(path)
	}

	if _, err := domain.ParseWildcardPolicy(string(eng.policy)); err != nil {
		return nil, err
	}

	// Ensure logger is initialized
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("source", eng.Name)
	}

	return eng, nil
}

func openSource(absPath string) (ports.MachineLoader, error) {
	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open machine source: %w", err)
	}
	if !info.IsDir() {
		l, err := file.New(absPath)
		if err != nil {
			return nil, err
		}
		return l, nil
	}

	// The engine never modifies the library, so Loam is opened read-only and strict
	// (consistent numeric types across Markdown, YAML and JSON documents).
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return loamAdapter.New(loam.NewTypedRepository[loamAdapter.MachineMetadata](repo)), nil
}

// Machine loads, parses and validates the machine registered under id.
// The returned machine uses the engine's wildcard policy.
func (e *Engine) Machine(id string) (*domain.Machine, error) {
	data, format, err := e.loader.GetMachine(id)
	if err != nil {
		return nil, err
	}
	m, err := e.parser.Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to load machine %s: %w", id, err)
	}
	return m.WithPolicy(e.policy), nil
}

// Trace explores the configuration tree of machine id on input breadth first,
// stopping at the first accepting configuration or after maxDepth levels.
func (e *Engine) Trace(ctx context.Context, id string, input string, maxDepth int) (*domain.TraceResult, error) {
	m, err := e.prepare(id, input)
	if err != nil {
		return nil, err
	}

	tracer, err := runtime.NewTracer(m, runtime.WithTreeRetention(e.keepTree))
	if err != nil {
		return nil, err
	}

	event := &domain.TraceEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventTraceStart},
		Machine:   m.Name(),
		Input:     input,
		MaxDepth:  maxDepth,
	}
	if e.hooks.OnTraceStart != nil {
		e.hooks.OnTraceStart(ctx, event)
	}
	e.logger.Debug("trace started", "machine", m.Name(), "input", input, "max_depth", maxDepth)

	start := time.Now()
	res, err := tracer.RunContext(ctx, input, maxDepth)
	if err != nil {
		e.logger.Warn("trace interrupted", "machine", m.Name(), "err", err)
		return nil, err
	}

	finished := *event
	finished.EventBase = domain.EventBase{Timestamp: time.Now(), Type: domain.EventTraceFinished}
	finished.Result = res
	finished.Elapsed = time.Since(start)
	if e.hooks.OnTraceFinished != nil {
		e.hooks.OnTraceFinished(ctx, &finished)
	}
	e.logger.Info("trace finished",
		"machine", m.Name(),
		"verdict", res.Verdict,
		"depth", res.Depth,
		"transitions", res.Transitions,
		"nondeterminism", res.Degree,
		"elapsed", finished.Elapsed,
	)

	return res, nil
}

// Run executes machine id deterministically on k tapes for at most maxSteps steps.
func (e *Engine) Run(ctx context.Context, id string, input string, maxSteps int) (*domain.RunResult, error) {
	m, err := e.prepare(id, input)
	if err != nil {
		return nil, err
	}

	dtm, err := runtime.NewDTM(m, runtime.WithHistory(e.history))
	if err != nil {
		return nil, err
	}

	event := &domain.RunEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventRunStart},
		Machine:   m.Name(),
		Input:     input,
		MaxSteps:  maxSteps,
	}
	if e.hooks.OnRunStart != nil {
		e.hooks.OnRunStart(ctx, event)
	}
	e.logger.Debug("run started", "machine", m.Name(), "input", input, "max_steps", maxSteps)

	start := time.Now()
	res, err := dtm.RunContext(ctx, input, maxSteps)
	if err != nil {
		e.logger.Warn("run interrupted", "machine", m.Name(), "err", err)
		return nil, err
	}

	finished := *event
	finished.EventBase = domain.EventBase{Timestamp: time.Now(), Type: domain.EventRunFinished}
	finished.Result = res
	finished.Elapsed = time.Since(start)
	if e.hooks.OnRunFinished != nil {
		e.hooks.OnRunFinished(ctx, &finished)
	}
	e.logger.Info("run finished",
		"machine", m.Name(),
		"verdict", res.Verdict,
		"steps", res.Steps,
		"final_state", res.FinalState,
		"elapsed", finished.Elapsed,
	)

	return res, nil
}

func (e *Engine) prepare(id, input string) (*domain.Machine, error) {
	m, err := e.Machine(id)
	if err != nil {
		return nil, err
	}
	if e.strictInput {
		if err := m.ValidateInput(input); err != nil {
			return nil, fmt.Errorf("machine %s: %w", id, err)
		}
	}
	return m, nil
}

// Validate runs the static checks on machine id.
// The error is non-nil only when the machine cannot be loaded; findings are in the report.
func (e *Engine) Validate(id string) (*validator.Report, error) {
	m, err := e.Machine(id)
	if err != nil {
		return nil, err
	}
	return validator.ValidateMachine(m), nil
}

// List returns the IDs of every machine the loader serves.
func (e *Engine) List() ([]string, error) {
	return e.loader.ListMachines()
}

// Loader returns the underlying MachineLoader used by the engine.
func (e *Engine) Loader() ports.MachineLoader {
	return e.loader
}

// Policy returns the wildcard policy applied to loaded machines.
func (e *Engine) Policy() domain.WildcardPolicy {
	return e.policy
}
