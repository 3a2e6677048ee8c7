package lifetrack

import (
	"sort"

	"github.com/google/uuid"
)

// Result is the set of timelines produced by one tracking run.
// It is never mutated after the run that built it returns.
type Result[S any] struct {
	timelines []*Timeline[S]
	byID      map[uuid.UUID]*Timeline[S]
	maxTime   int
	extent    Rectangle
	params    Params
}

func newResult[S any](timelines []*Timeline[S], maxTime int, extent Rectangle, params Params) *Result[S] {
	byID := make(map[uuid.UUID]*Timeline[S], len(timelines))
	for _, tl := range timelines {
		byID[tl.id] = tl
	}
	return &Result[S]{
		timelines: timelines,
		byID:      byID,
		maxTime:   maxTime,
		extent:    extent,
		params:    params,
	}
}

// GetTimelines returns timelines ordered by birth, then by the starting shape index
func (result *Result[S]) GetTimelines() []*Timeline[S] {
	return append([]*Timeline[S](nil), result.timelines...)
}

// Len returns the number of timelines
func (result *Result[S]) Len() int {
	return len(result.timelines)
}

// GetMaxTime returns the largest time index of the tracked stack
func (result *Result[S]) GetMaxTime() int {
	return result.maxTime
}

// GetExtent returns the union of all shape bounding boxes
func (result *Result[S]) GetExtent() Rectangle {
	return result.extent
}

// GetParams returns the parameters the result was computed with
func (result *Result[S]) GetParams() Params {
	return result.params
}

// Timeline looks a timeline up by its identifier
func (result *Result[S]) Timeline(id uuid.UUID) (*Timeline[S], bool) {
	tl, ok := result.byID[id]
	return tl, ok
}

// Instant is one object at one time: a row of an export or an overlay item
type Instant[S any] struct {
	Timeline *Timeline[S]
	Time     int
	Event    Event[S]
}

// InstantOrder selects grouping of instants
type InstantOrder uint16

const (
	// ByTimeline groups instants per timeline, each in time order
	ByTimeline InstantOrder = iota
	// ByTime groups instants per time, each in timeline order
	ByTime
)

// EventsAt returns events active at time t, one per timeline present
func (result *Result[S]) EventsAt(t int) []Instant[S] {
	instants := make([]Instant[S], 0)
	for _, tl := range result.timelines {
		if t < tl.birth || t > tl.death {
			continue
		}
		if event, ok := tl.events[t]; ok {
			instants = append(instants, Instant[S]{Timeline: tl, Time: t, Event: event})
		}
	}
	return instants
}

// Instants returns every object-instant of the result in the given order
func (result *Result[S]) Instants(order InstantOrder) []Instant[S] {
	instants := make([]Instant[S], 0)
	for _, tl := range result.timelines {
		for _, t := range tl.times {
			instants = append(instants, Instant[S]{Timeline: tl, Time: t, Event: tl.events[t]})
		}
	}
	if order == ByTime {
		sort.SliceStable(instants, func(i, j int) bool {
			return instants[i].Time < instants[j].Time
		})
	}
	return instants
}
