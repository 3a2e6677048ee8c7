package lifetrack

import (
	"sync"
	"testing"

	"github.com/google/uuid"
)

func TestMarks(t *testing.T) {
	result := mustTrack(t, DefaultAreaParams(), lifespanStack())
	timelines := result.GetTimelines()
	marks := NewMarks()

	for _, tl := range timelines {
		if !marks.Keep(tl.GetID()) {
			t.Errorf("Timeline %s should be kept by default", tl.GetID())
		}
		if marks.Selected(tl.GetID()) {
			t.Errorf("Timeline %s should not be selected by default", tl.GetID())
		}
	}

	marks.SetKeep(timelines[1].GetID(), false)
	kept := Kept(marks, timelines)
	if len(kept) != 3 {
		t.Fatalf("Expected 3 kept timelines, got %d", len(kept))
	}
	if kept[0] != timelines[0] || kept[1] != timelines[2] || kept[2] != timelines[3] {
		t.Error("Kept must preserve timeline order")
	}
	marks.SetKeep(timelines[1].GetID(), true)
	if len(Kept(marks, timelines)) != 4 {
		t.Error("Timeline should be kept again")
	}

	marks.SetSelected(timelines[0].GetID(), true)
	marks.SetSelected(timelines[2].GetID(), true)
	marks.SetSelected(timelines[2].GetID(), false)
	if !marks.Selected(timelines[0].GetID()) || marks.Selected(timelines[2].GetID()) {
		t.Error("Unexpected selection state")
	}
	marks.ClearSelection()
	if marks.Selected(timelines[0].GetID()) {
		t.Error("Selection should be cleared")
	}
}

func TestPruneMarks(t *testing.T) {
	result := mustTrack(t, DefaultAreaParams(), lifespanStack())
	known := result.GetTimelines()[0].GetID()
	stale := uuid.New()

	marks := NewMarks()
	marks.SetKeep(known, false)
	marks.SetKeep(stale, false)
	marks.SetSelected(stale, true)
	PruneMarks(marks, result)

	if marks.Keep(known) {
		t.Error("Flag of a timeline present in result must survive pruning")
	}
	if !marks.Keep(stale) || marks.Selected(stale) {
		t.Error("Flags of a timeline absent from result must be forgotten")
	}
}

func TestMarksConcurrent(t *testing.T) {
	result := mustTrack(t, DefaultAreaParams(), lifespanStack())
	timelines := result.GetTimelines()
	marks := NewMarks()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				id := timelines[(i+j)%len(timelines)].GetID()
				marks.SetKeep(id, j%2 == 0)
				marks.SetSelected(id, j%3 == 0)
				_ = Kept(marks, timelines)
			}
		}(i)
	}
	wg.Wait()
}
