package lifetrack

// LifespanBounds selects timelines by length. A disabled bound leaves that side unconstrained.
type LifespanBounds struct {
	MinEnabled bool
	Min        int
	MaxEnabled bool
	Max        int
}

// Contains reports whether length satisfies the enabled bounds
func (bounds LifespanBounds) Contains(length int) bool {
	if bounds.MinEnabled && length < bounds.Min {
		return false
	}
	if bounds.MaxEnabled && length > bounds.Max {
		return false
	}
	return true
}

// Clamp limits both bounds to lengths possible in a stack ending at maxTime
func (bounds LifespanBounds) Clamp(maxTime int) LifespanBounds {
	limit := maxTime + 1
	clamped := bounds
	clamped.Min = clampInt(bounds.Min, 0, limit)
	clamped.Max = clampInt(bounds.Max, 0, limit)
	return clamped
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Filter returns timelines of result whose length satisfies bounds, in result order.
// The result itself is left untouched.
func Filter[S any](result *Result[S], bounds LifespanBounds) []*Timeline[S] {
	if result == nil {
		return nil
	}
	filtered := make([]*Timeline[S], 0, len(result.timelines))
	for _, tl := range result.timelines {
		if bounds.Contains(tl.length) {
			filtered = append(filtered, tl)
		}
	}
	return filtered
}
