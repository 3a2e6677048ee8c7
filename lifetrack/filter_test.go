package lifetrack

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// lifespanStack produces timelines with lengths 7, 3, 2 and 0
func lifespanStack() [][]*Region {
	stack := make([][]*Region, 8)
	for i := range stack {
		stack[i] = []*Region{box(0, 0, 10, 10)}
		if i >= 1 && i <= 4 {
			stack[i] = append(stack[i], box(30, 0, 40, 10))
		}
		if i >= 2 && i <= 4 {
			stack[i] = append(stack[i], box(60, 0, 70, 10))
		}
		if i == 6 {
			stack[i] = append(stack[i], box(90, 0, 100, 10))
		}
	}
	return stack
}

func lengths[S any](timelines []*Timeline[S]) []int {
	result := make([]int, len(timelines))
	for i, tl := range timelines {
		result[i] = tl.GetLength()
	}
	return result
}

func TestFilter(t *testing.T) {
	result := mustTrack(t, DefaultAreaParams(), lifespanStack())
	if diff := cmp.Diff([]int{7, 3, 2, 0}, lengths(result.GetTimelines())); diff != "" {
		t.Fatalf("Unexpected lengths (-want +got):\n%s", diff)
	}
	cases := []struct {
		bounds LifespanBounds
		want   []int
	}{
		{LifespanBounds{}, []int{7, 3, 2, 0}},
		{LifespanBounds{MinEnabled: true, Min: 3}, []int{7, 3}},
		{LifespanBounds{MinEnabled: true, Min: 2}, []int{7, 3, 2}},
		{LifespanBounds{MaxEnabled: true, Max: 2}, []int{2, 0}},
		{LifespanBounds{MinEnabled: true, Min: 1, MaxEnabled: true, Max: 3}, []int{3, 2}},
		{LifespanBounds{MinEnabled: false, Min: 100, MaxEnabled: true, Max: 0}, []int{0}},
	}
	for i, c := range cases {
		got := lengths(Filter(result, c.bounds))
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Errorf("case %d: unexpected lengths (-want +got):\n%s", i, diff)
		}
	}
	if result.Len() != 4 {
		t.Errorf("Filtering must not change the result, got %d timelines", result.Len())
	}
}

func TestFilterMonotonic(t *testing.T) {
	result := mustTrack(t, DefaultAreaParams(), lifespanStack())
	narrow := Filter(result, LifespanBounds{MinEnabled: true, Min: 3, MaxEnabled: true, Max: 5})
	wide := Filter(result, LifespanBounds{MinEnabled: true, Min: 1, MaxEnabled: true, Max: 7})
	inWide := make(map[string]bool)
	for _, tl := range wide {
		inWide[tl.GetID().String()] = true
	}
	for _, tl := range narrow {
		if !inWide[tl.GetID().String()] {
			t.Errorf("Timeline %s is missing from the wider filter", tl.GetID())
		}
	}
	again := Filter(result, LifespanBounds{MinEnabled: true, Min: 3, MaxEnabled: true, Max: 5})
	if diff := cmp.Diff(lengths(narrow), lengths(again)); diff != "" {
		t.Errorf("Filter is not idempotent (-first +second):\n%s", diff)
	}
}

func TestLifespanBoundsClamp(t *testing.T) {
	bounds := LifespanBounds{MinEnabled: true, Min: -4, MaxEnabled: true, Max: 50}.Clamp(9)
	if bounds.Min != 0 || bounds.Max != 10 {
		t.Errorf("Expected clamped bounds [0, 10], got [%d, %d]", bounds.Min, bounds.Max)
	}
	if !bounds.MinEnabled || !bounds.MaxEnabled {
		t.Error("Clamp must keep enabled flags")
	}
	if Filter[*Region](nil, bounds) != nil {
		t.Error("Filtering nil result should return nil")
	}
}
