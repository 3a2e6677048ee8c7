// Package recompute runs tracking off the caller's goroutine with at most one run
// in flight and a single trailing rerun for requests made meanwhile.
package recompute

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/LdDl/lifetrack/lifetrack"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrNotTracked is reported when there is nothing valid to show yet
var ErrNotTracked = errors.New("press Track first")

// State of a scheduler
type State uint16

const (
	// Idle means no run is in flight
	Idle State = iota
	// Running means a run is in flight
	Running
	// RunningPending means a run is in flight and another one follows it
	RunningPending
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case RunningPending:
		return "running_pending"
	default:
		return "unknown"
	}
}

const (
	kindRecalc   = "recalc"
	kindRefilter = "refilter"

	outcomeOK         = "ok"
	outcomeFailed     = "failed"
	outcomeNotTracked = "not_tracked"
)

// Input is the latest state of the collaborators at the start of a run
type Input[S any] struct {
	Frames   []lifetrack.Frame[S]
	Params   lifetrack.Params
	Lifespan lifetrack.LifespanBounds
}

// Loader reads the current input. It is called once per run from the scheduler's goroutine.
type Loader[S any] func(ctx context.Context) (Input[S], error)

// Snapshot is a published outcome. It is never modified after publication.
type Snapshot[S any] struct {
	Seq uint64
	// Recalculated is false when the snapshot re-filters the previous result
	Recalculated bool
	Result       *lifetrack.Result[S]
	Lifespan     lifetrack.LifespanBounds
	Visible      []*lifetrack.Timeline[S]
	Summary      lifetrack.Summary
}

// Options of a scheduler. Every field is optional.
// Callbacks are invoked from the scheduler's goroutine.
type Options[S any] struct {
	OnPublish  func(snapshot *Snapshot[S])
	OnMessage  func(message string)
	OnProgress lifetrack.ProgressFunc
	Metrics    *Metrics
	Logger     *slog.Logger
}

// Scheduler is a single-flight recompute runner with a trailing-edge coalesce
type Scheduler[S lifetrack.Shape[S]] struct {
	loader  Loader[S]
	options Options[S]
	logger  *slog.Logger
	tracer  trace.Tracer

	mu         sync.Mutex
	idle       *sync.Cond
	state      State
	pendRecalc bool

	seq    atomic.Uint64
	latest atomic.Pointer[Snapshot[S]]
}

// NewScheduler creates an idle scheduler reading its input from loader
func NewScheduler[S lifetrack.Shape[S]](loader Loader[S], options Options[S]) *Scheduler[S] {
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	scheduler := &Scheduler[S]{
		loader:  loader,
		options: options,
		logger:  logger,
		tracer:  otel.Tracer("github.com/LdDl/lifetrack/recompute"),
	}
	scheduler.idle = sync.NewCond(&scheduler.mu)
	return scheduler
}

// Request asks for a run and returns immediately. recalc=false only re-filters the
// last published result. Requests made while a run is in flight collapse into
// one rerun, which recalculates if any of them asked to.
func (scheduler *Scheduler[S]) Request(recalc bool) {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	switch scheduler.state {
	case Idle:
		scheduler.state = Running
		go scheduler.loop(recalc)
	case Running:
		scheduler.state = RunningPending
		scheduler.pendRecalc = recalc
		scheduler.options.Metrics.coalesce()
	case RunningPending:
		scheduler.pendRecalc = scheduler.pendRecalc || recalc
		scheduler.options.Metrics.coalesce()
	}
}

// State returns current state
func (scheduler *Scheduler[S]) State() State {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return scheduler.state
}

// Wait blocks until the scheduler is idle
func (scheduler *Scheduler[S]) Wait() {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	for scheduler.state != Idle {
		scheduler.idle.Wait()
	}
}

// Latest returns the last published snapshot, nil if none
func (scheduler *Scheduler[S]) Latest() *Snapshot[S] {
	return scheduler.latest.Load()
}

func (scheduler *Scheduler[S]) loop(recalc bool) {
	for {
		scheduler.run(recalc)
		scheduler.mu.Lock()
		if scheduler.state == RunningPending {
			recalc = scheduler.pendRecalc
			scheduler.pendRecalc = false
			scheduler.state = Running
			scheduler.mu.Unlock()
			continue
		}
		scheduler.state = Idle
		scheduler.idle.Broadcast()
		scheduler.mu.Unlock()
		return
	}
}

func (scheduler *Scheduler[S]) run(recalc bool) {
	kind := kindRefilter
	if recalc {
		kind = kindRecalc
	}
	defer func() {
		if r := recover(); r != nil {
			scheduler.logger.Error("Recompute run panicked", slog.String("kind", kind), slog.Any("panic", r))
		}
	}()
	ctx, span := scheduler.tracer.Start(context.Background(), "recompute.Scheduler.run",
		trace.WithAttributes(attribute.Bool("recalc", recalc)),
	)
	defer span.End()
	start := time.Now()

	snapshot, err := scheduler.execute(ctx, recalc)
	outcome := outcomeOK
	switch {
	case errors.Is(err, ErrNotTracked):
		outcome = outcomeNotTracked
	case err != nil:
		outcome = outcomeFailed
	}
	elapsed := time.Since(start)
	scheduler.options.Metrics.observeRun(kind, outcome, elapsed)
	span.SetAttributes(attribute.String("outcome", outcome))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		scheduler.logger.Warn("Recompute failed",
			slog.String("kind", kind),
			slog.String("outcome", outcome),
			slog.Any("err", err),
		)
		if scheduler.options.OnMessage != nil {
			scheduler.callback("OnMessage", func() { scheduler.options.OnMessage(err.Error()) })
		}
		return
	}

	snapshot.Seq = scheduler.seq.Add(1)
	scheduler.latest.Store(snapshot)
	scheduler.options.Metrics.published(snapshot.Result.Len(), len(snapshot.Visible))
	span.SetAttributes(
		attribute.Int("timelines", snapshot.Result.Len()),
		attribute.Int("visible", len(snapshot.Visible)),
	)
	scheduler.logger.Debug("Recompute published",
		slog.String("kind", kind),
		slog.Uint64("seq", snapshot.Seq),
		slog.Int("timelines", snapshot.Result.Len()),
		slog.Duration("elapsed", elapsed),
	)
	if scheduler.options.OnPublish != nil {
		scheduler.callback("OnPublish", func() { scheduler.options.OnPublish(snapshot) })
	}
}

// callback runs a caller supplied function. A panic in it is logged and swallowed.
func (scheduler *Scheduler[S]) callback(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			scheduler.logger.Error("Recompute callback panicked", slog.String("callback", name), slog.Any("panic", r))
		}
	}()
	fn()
}

// notTracked keeps both ErrNotTracked and the configuration error matchable by errors.Is
func notTracked(cause error) error {
	return fmt.Errorf("%w: %w", cause, ErrNotTracked)
}

// execute produces the next snapshot without publishing it
func (scheduler *Scheduler[S]) execute(ctx context.Context, recalc bool) (snapshot *Snapshot[S], err error) {
	defer func() {
		if r := recover(); r != nil {
			snapshot = nil
			err = errors.Errorf("recompute panicked: %v", r)
		}
	}()
	input, err := scheduler.loader(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "Can't load tracking input")
	}

	var result *lifetrack.Result[S]
	if recalc {
		if len(input.Frames) == 0 {
			return nil, notTracked(lifetrack.ErrNoFrames)
		}
		tracker, err := lifetrack.NewTracker[S](input.Params)
		if err != nil {
			return nil, notTracked(err)
		}
		tracker.SetLogger(scheduler.logger)
		result, err = tracker.Track(ctx, input.Frames, scheduler.options.OnProgress)
		if err != nil {
			return nil, errors.Wrap(err, "Can't track frames")
		}
	} else {
		previous := scheduler.latest.Load()
		if previous == nil {
			return nil, ErrNotTracked
		}
		result = previous.Result
	}

	bounds := input.Lifespan.Clamp(result.GetMaxTime())
	visible := lifetrack.Filter(result, bounds)
	return &Snapshot[S]{
		Recalculated: recalc,
		Result:       result,
		Lifespan:     bounds,
		Visible:      visible,
		Summary:      lifetrack.Summarize(result, visible),
	}, nil
}
