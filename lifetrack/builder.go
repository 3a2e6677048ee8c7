package lifetrack

import (
	"github.com/google/uuid"
)

// builder folds per-frame events into timelines
type builder[S Shape[S]] struct {
	params    Params
	timelines []*Timeline[S]
}

func (b *builder[S]) open(birth, index int, origin Origin, parents []uuid.UUID) *Timeline[S] {
	tl := newTimeline[S](len(b.timelines), birth, index, origin, parents)
	b.timelines = append(b.timelines, tl)
	return tl
}

// build consumes frame pairs strictly in time order. pairs[t] holds the
// matches between frames t and t+1.
func (b *builder[S]) build(frames []Frame[S], pairs []*PairMatches, extent Rectangle) *Result[S] {
	maxTime := len(frames) - 1
	current := make([]*Timeline[S], len(frames[0].Shapes))
	for i, shape := range frames[0].Shapes {
		if !shape.Empty() {
			current[i] = b.open(0, i, OriginStackStart, nil)
		}
	}
	var entered []kindSet
	for t := 0; t <= maxTime; t++ {
		var prev, next *PairMatches
		if t > 0 {
			prev = pairs[t-1]
		}
		if t < maxTime {
			next = pairs[t]
		}
		events := classifyFrame(frames, t, prev, next, entered, b.params.contacts())
		for i, event := range events {
			if event != nil {
				current[i].record(t, event)
			}
		}
		if next == nil {
			for _, tl := range current {
				if tl != nil {
					tl.close(t, b.params.LengthMode)
				}
			}
			break
		}
		current, entered = b.advance(frames, t, next, current, events)
	}
	return newResult(b.timelines, maxTime, extent, b.params)
}

// advance threads identities from frame t to frame t+1 and closes timelines
// which do not continue. Returns timelines of frame t+1 and the kinds of
// events which led into each of its shapes.
func (b *builder[S]) advance(frames []Frame[S], t int, next *PairMatches, current []*Timeline[S], events []Event[S]) ([]*Timeline[S], []kindSet) {
	targets := frames[t+1].Shapes
	upcoming := make([]*Timeline[S], len(targets))
	entered := make([]kindSet, len(targets))
	for _, c := range next.Strict {
		entered[c.Target] = entered[c.Target].with(events[c.Source].Kind())
	}
	continued := make([]bool, len(current))
	for u, shape := range targets {
		if shape.Empty() {
			continue
		}
		predecessors := next.Predecessors(u)
		if len(predecessors) == 0 {
			upcoming[u] = b.open(t+1, u, OriginBirth, nil)
			continue
		}
		// Identity goes to the best scoring predecessor matching nothing else.
		// Predecessors are ordered by index, so ties keep the lowest one.
		winner := -1
		bestScore := 0.0
		for _, c := range predecessors {
			if next.OutDegree(c.Source) != 1 {
				continue
			}
			if winner == -1 || c.Score > bestScore {
				winner = c.Source
				bestScore = c.Score
			}
		}
		if winner == -1 {
			parents := make([]uuid.UUID, 0, len(predecessors))
			for _, c := range predecessors {
				parents = append(parents, current[c.Source].id)
			}
			upcoming[u] = b.open(t+1, u, OriginSplit, parents)
			continue
		}
		tl := current[winner]
		upcoming[u] = tl
		continued[winner] = true
		for _, c := range predecessors {
			if c.Source != winner && next.OutDegree(c.Source) == 1 {
				current[c.Source].mergedInto = tl.id
			}
		}
	}
	for s, tl := range current {
		if tl != nil && !continued[s] {
			tl.close(t, b.params.LengthMode)
		}
	}
	return upcoming, entered
}
