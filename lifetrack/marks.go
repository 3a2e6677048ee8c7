package lifetrack

import (
	"sync"

	"github.com/google/uuid"
)

// Marks holds user flags of timelines keyed by timeline identity.
// Keep defaults to true, selected defaults to false. Flags live outside of
// engine-owned timelines, so a recompute never races with the UI editing them.
// Marks is safe for concurrent use.
type Marks struct {
	mu       sync.RWMutex
	dropped  map[uuid.UUID]struct{}
	selected map[uuid.UUID]struct{}
}

// NewMarks creates empty marks: everything kept, nothing selected
func NewMarks() *Marks {
	return &Marks{
		dropped:  make(map[uuid.UUID]struct{}),
		selected: make(map[uuid.UUID]struct{}),
	}
}

// Keep reports whether timeline id is kept
func (marks *Marks) Keep(id uuid.UUID) bool {
	marks.mu.RLock()
	defer marks.mu.RUnlock()
	_, dropped := marks.dropped[id]
	return !dropped
}

// SetKeep sets the keep flag of timeline id
func (marks *Marks) SetKeep(id uuid.UUID, keep bool) {
	marks.mu.Lock()
	defer marks.mu.Unlock()
	if keep {
		delete(marks.dropped, id)
		return
	}
	marks.dropped[id] = struct{}{}
}

// Selected reports whether timeline id is selected
func (marks *Marks) Selected(id uuid.UUID) bool {
	marks.mu.RLock()
	defer marks.mu.RUnlock()
	_, ok := marks.selected[id]
	return ok
}

// SetSelected sets the selected flag of timeline id
func (marks *Marks) SetSelected(id uuid.UUID, selected bool) {
	marks.mu.Lock()
	defer marks.mu.Unlock()
	if selected {
		marks.selected[id] = struct{}{}
		return
	}
	delete(marks.selected, id)
}

// ClearSelection deselects every timeline
func (marks *Marks) ClearSelection() {
	marks.mu.Lock()
	defer marks.mu.Unlock()
	marks.selected = make(map[uuid.UUID]struct{})
}

// PruneMarks forgets flags of timelines absent from result
func PruneMarks[S any](marks *Marks, result *Result[S]) {
	marks.mu.Lock()
	defer marks.mu.Unlock()
	for id := range marks.dropped {
		if _, ok := result.byID[id]; !ok {
			delete(marks.dropped, id)
		}
	}
	for id := range marks.selected {
		if _, ok := result.byID[id]; !ok {
			delete(marks.selected, id)
		}
	}
}

// Kept returns timelines whose keep flag is set, preserving order
func Kept[S any](marks *Marks, timelines []*Timeline[S]) []*Timeline[S] {
	kept := make([]*Timeline[S], 0, len(timelines))
	for _, tl := range timelines {
		if marks.Keep(tl.id) {
			kept = append(kept, tl)
		}
	}
	return kept
}
