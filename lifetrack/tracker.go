package lifetrack

import (
	"context"
	"log/slog"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// ProgressFunc receives run progress in percent, 0 to 100
type ProgressFunc func(percent int)

// Tracker links independently detected shapes of a stack into timelines.
// S is the shape type implementing Shape[S] interface.
type Tracker[S Shape[S]] struct {
	params Params
	logger *slog.Logger
}

// NewTrackerDefault creates tracker for area-like shapes with DefaultAreaParams
func NewTrackerDefault[S Shape[S]]() *Tracker[S] {
	return &Tracker[S]{
		params: DefaultAreaParams(),
		logger: slog.Default(),
	}
}

// NewTracker creates new instance of Tracker. Parameters are validated.
func NewTracker[S Shape[S]](params Params) (*Tracker[S], error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Tracker[S]{
		params: params,
		logger: slog.Default(),
	}, nil
}

// SetLogger replaces the logger used for skipped shapes and run diagnostics
func (tracker *Tracker[S]) SetLogger(logger *slog.Logger) {
	if logger != nil {
		tracker.logger = logger
	}
}

// GetParams returns tracker's parameters
func (tracker *Tracker[S]) GetParams() Params {
	return tracker.params
}

// Track matches every adjacent frame pair, classifies events and builds timelines.
// Frame pairs are matched by up to Params.Workers goroutines, timelines are
// always built in time order. progress may be nil.
func (tracker *Tracker[S]) Track(ctx context.Context, frames []Frame[S], progress ProgressFunc) (*Result[S], error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}
	for t, frame := range frames {
		if frame.Time != t {
			return nil, errors.Wrapf(ErrFrameOrder, "frame at position %d has time %d", t, frame.Time)
		}
	}
	extent, skipped := frameExtent(frames)
	if skipped > 0 {
		tracker.logger.Debug("Skipped degenerate shapes", slog.Int("count", skipped))
	}

	reporter := newProgressReporter(progress, len(frames))
	pairs := make([]*PairMatches, len(frames)-1)
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(tracker.params.workers())
	for t := range pairs {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			pm, err := MatchFrames(t, frames[t].Shapes, frames[t+1].Shapes, tracker.params)
			if err != nil {
				return err
			}
			pairs[t] = pm
			reporter.step()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, errors.Wrap(err, "Can't match frames")
	}

	b := builder[S]{params: tracker.params}
	result := b.build(frames, pairs, extent)
	reporter.done()
	tracker.logger.Debug("Tracking finished",
		slog.String("mode", tracker.params.Mode.String()),
		slog.Int("frames", len(frames)),
		slog.Int("timelines", result.Len()),
	)
	return result, nil
}

// frameExtent returns union of valid shape bounds and the number of empty shapes
func frameExtent[S Shape[S]](frames []Frame[S]) (Rectangle, int) {
	extent := Rectangle{}
	found := false
	skipped := 0
	for _, frame := range frames {
		for _, shape := range frame.Shapes {
			if shape.Empty() {
				skipped++
				continue
			}
			if !found {
				extent = shape.Bounds()
				found = true
				continue
			}
			extent = extent.Union(shape.Bounds())
		}
	}
	return extent, skipped
}

// progressReporter converts matched pairs into monotonic percentages.
// Matching covers 0..99, building finishes at 100.
type progressReporter struct {
	mu       sync.Mutex
	fn       ProgressFunc
	total    int
	finished int
	last     int
}

func newProgressReporter(fn ProgressFunc, frames int) *progressReporter {
	return &progressReporter{fn: fn, total: frames - 1, last: -1}
}

func (reporter *progressReporter) step() {
	if reporter.fn == nil {
		return
	}
	reporter.mu.Lock()
	defer reporter.mu.Unlock()
	reporter.finished++
	reporter.emit(reporter.finished * 99 / reporter.total)
}

func (reporter *progressReporter) done() {
	if reporter.fn == nil {
		return
	}
	reporter.mu.Lock()
	defer reporter.mu.Unlock()
	reporter.emit(100)
}

func (reporter *progressReporter) emit(percent int) {
	if percent <= reporter.last {
		return
	}
	reporter.last = percent
	reporter.fn(percent)
}
