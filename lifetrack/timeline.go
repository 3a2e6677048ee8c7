package lifetrack

import (
	"fmt"

	"github.com/google/uuid"
)

// Origin tells how a timeline started
type Origin uint16

const (
	// OriginStackStart is an object present in the first frame
	OriginStackStart Origin = iota
	// OriginBirth is an object without any predecessor
	OriginBirth
	// OriginSplit is an object whose predecessors all split
	OriginSplit
)

func (o Origin) String() string {
	switch o {
	case OriginStackStart:
		return "stack_start"
	case OriginBirth:
		return "birth"
	case OriginSplit:
		return "split"
	default:
		return "unknown"
	}
}

// timelineNamespace scopes deterministic timeline identifiers
var timelineNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/LdDl/lifetrack/timeline"))

// timelineID derives an identifier from where the timeline starts, so that
// recomputing unchanged input yields the same identities
func timelineID(birth, index int) uuid.UUID {
	return uuid.NewSHA1(timelineNamespace, []byte(fmt.Sprintf("%d:%d", birth, index)))
}

// Timeline is the tracked identity of one object across frames.
// It is immutable once the building run has finished.
type Timeline[S any] struct {
	id         uuid.UUID
	seq        int
	birth      int
	death      int
	length     int
	origin     Origin
	parents    []uuid.UUID
	mergedInto uuid.UUID
	times      []int
	events     map[int]Event[S]
}

func newTimeline[S any](seq, birth, index int, origin Origin, parents []uuid.UUID) *Timeline[S] {
	return &Timeline[S]{
		id:      timelineID(birth, index),
		seq:     seq,
		birth:   birth,
		death:   birth,
		origin:  origin,
		parents: parents,
		times:   make([]int, 0, 8),
		events:  make(map[int]Event[S]),
	}
}

func (tl *Timeline[S]) record(t int, event Event[S]) {
	if _, ok := tl.events[t]; !ok {
		tl.times = append(tl.times, t)
	}
	tl.events[t] = event
}

func (tl *Timeline[S]) close(t int, mode LengthMode) {
	tl.death = t
	switch mode {
	case LengthCount:
		tl.length = len(tl.times)
	default:
		tl.length = tl.death - tl.birth
	}
}

// GetID returns timeline's identifier
func (tl *Timeline[S]) GetID() uuid.UUID {
	return tl.id
}

// GetSeq returns creation order of the timeline within its run
func (tl *Timeline[S]) GetSeq() int {
	return tl.seq
}

// GetBirth returns first time the object is present
func (tl *Timeline[S]) GetBirth() int {
	return tl.birth
}

// GetDeath returns last time the object is present
func (tl *Timeline[S]) GetDeath() int {
	return tl.death
}

// GetLength returns timeline's lifespan according to the run's LengthMode
func (tl *Timeline[S]) GetLength() int {
	return tl.length
}

// GetOrigin returns how the timeline started. Unlike a SingleSource event at
// birth time it is always set, whatever happens to the shape next.
func (tl *Timeline[S]) GetOrigin() Origin {
	return tl.origin
}

// GetParents returns identifiers of the split predecessors. Be careful: this is not copy of parents, but reference to it
func (tl *Timeline[S]) GetParents() []uuid.UUID {
	return tl.parents
}

// GetMergedInto returns identifier of the timeline this one fused into, uuid.Nil if none
func (tl *Timeline[S]) GetMergedInto() uuid.UUID {
	return tl.mergedInto
}

// Times returns the time keys in ascending order
func (tl *Timeline[S]) Times() []int {
	return append([]int(nil), tl.times...)
}

// Len returns the number of time slots with an event
func (tl *Timeline[S]) Len() int {
	return len(tl.times)
}

// At returns the event at time t
func (tl *Timeline[S]) At(t int) (Event[S], bool) {
	event, ok := tl.events[t]
	return event, ok
}

// Shape returns the timeline's shape at time t
func (tl *Timeline[S]) Shape(t int) (S, bool) {
	event, ok := tl.events[t]
	if !ok {
		var zero S
		return zero, false
	}
	return event.Subject().Shape, true
}

// First returns the event at birth time
func (tl *Timeline[S]) First() Event[S] {
	return tl.events[tl.birth]
}

// Last returns the event at death time
func (tl *Timeline[S]) Last() Event[S] {
	return tl.events[tl.death]
}

// Count returns how many events of given kind the timeline holds
func (tl *Timeline[S]) Count(kind EventKind) int {
	n := 0
	for _, t := range tl.times {
		if tl.events[t].Kind() == kind {
			n++
		}
	}
	return n
}
