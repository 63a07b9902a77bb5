package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventTraceStart    EventType = "trace_start"
	EventTraceFinished EventType = "trace_finished"
	EventRunStart      EventType = "run_start"
	EventRunFinished   EventType = "run_finished"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// TraceEvent is emitted around a breadth-first trace. Result is nil on start.
type TraceEvent struct {
	EventBase
	Machine  string        `json:"machine"`
	Input    string        `json:"input"`
	MaxDepth int           `json:"max_depth"`
	Result   *TraceResult  `json:"result,omitempty"`
	Elapsed  time.Duration `json:"elapsed,omitempty"`
}

// RunEvent is emitted around a deterministic run. Result is nil on start.
type RunEvent struct {
	EventBase
	Machine  string        `json:"machine"`
	Input    string        `json:"input"`
	MaxSteps int           `json:"max_steps"`
	Result   *RunResult    `json:"result,omitempty"`
	Elapsed  time.Duration `json:"elapsed,omitempty"`
}

// LifecycleHooks defines callbacks for engine observability.
// Hooks run outside the simulation loop, before and after each run.
type LifecycleHooks struct {
	OnTraceStart    func(context.Context, *TraceEvent)
	OnTraceFinished func(context.Context, *TraceEvent)
	OnRunStart      func(context.Context, *RunEvent)
	OnRunFinished   func(context.Context, *RunEvent)
}
