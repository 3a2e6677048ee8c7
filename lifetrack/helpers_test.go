package lifetrack

import (
	"context"
	"image"
	"testing"
)

// box creates a solid region covering [x0, x1) x [y0, y1)
func box(x0, y0, x1, y1 int) *Region {
	return NewRegionRect(image.Rect(x0, y0, x1, y1))
}

func mustTrack[S Shape[S]](t *testing.T, params Params, stack [][]S) *Result[S] {
	t.Helper()
	tracker, err := NewTracker[S](params)
	if err != nil {
		t.Fatalf("Can't create tracker: %v", err)
	}
	result, err := tracker.Track(context.Background(), NewFrames(stack), nil)
	if err != nil {
		t.Fatalf("Tracking failed: %v", err)
	}
	checkInvariants(t, result)
	return result
}

// checkInvariants verifies properties every result must hold
func checkInvariants[S any](t *testing.T, result *Result[S]) {
	t.Helper()
	owners := make(map[[2]int]string)
	for _, tl := range result.GetTimelines() {
		if tl.GetBirth() > tl.GetDeath() {
			t.Errorf("timeline %s: birth %d after death %d", tl.GetID(), tl.GetBirth(), tl.GetDeath())
		}
		for _, tm := range tl.Times() {
			if tm < 0 || tm > result.GetMaxTime() {
				t.Errorf("timeline %s: time %d outside [0, %d]", tl.GetID(), tm, result.GetMaxTime())
			}
			event, _ := tl.At(tm)
			subject := event.Subject()
			key := [2]int{subject.Time, subject.Index}
			if owner, ok := owners[key]; ok {
				t.Errorf("shape %v belongs to timelines %s and %s", key, owner, tl.GetID())
			}
			owners[key] = tl.GetID().String()
		}
	}
}

func kindsOf[S any](tl *Timeline[S]) []EventKind {
	kinds := make([]EventKind, 0, tl.Len())
	for _, tm := range tl.Times() {
		event, _ := tl.At(tm)
		kinds = append(kinds, event.Kind())
	}
	return kinds
}

// stubShape scores targets from a lookup table
type stubShape struct {
	id     int
	empty  bool
	panics bool
	scores map[int]float64
}

func (s *stubShape) Empty() bool { return s.empty }

func (s *stubShape) Bounds() Rectangle { return NewRect(0, 0, 10, 10) }

func (s *stubShape) Match(other *stubShape, params Params) (float64, bool) {
	if s.panics {
		panic("broken geometry")
	}
	score, ok := s.scores[other.id]
	return score, ok
}

func (s *stubShape) Contact(other *stubShape, params Params) bool { return false }
