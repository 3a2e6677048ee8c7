package lifetrack

// classifyFrame classifies every shape of frame t against the next frame.
// prev holds matches from frame t-1 (nil at t=0), next the matches to frame
// t+1 (nil at the last frame). entered holds, per shape of frame t, the kinds
// of events that led into it. Empty shapes get a nil event.
func classifyFrame[S Shape[S]](frames []Frame[S], t int, prev, next *PairMatches, entered []kindSet, contacts bool) []Event[S] {
	shapes := frames[t].Shapes
	events := make([]Event[S], len(shapes))
	for i, shape := range shapes {
		if shape.Empty() {
			continue
		}
		self := Ref[S]{Time: t, Index: i, Shape: shape}
		born := prev != nil && prev.InDegree(i) == 0
		var enteredKinds kindSet
		if entered != nil {
			enteredKinds = entered[i]
		}
		events[i] = classifyShape(frames, self, born, next, enteredKinds, contacts)
	}
	return events
}

func classifyShape[S Shape[S]](frames []Frame[S], self Ref[S], born bool, next *PairMatches, entered kindSet, contacts bool) Event[S] {
	if next == nil {
		if born {
			return SingleSource[S]{Target: refPtr(self)}
		}
		return Alive[S]{Source: self, Target: self}
	}
	successors := next.Successors(self.Index)
	switch {
	case len(successors) == 0:
		if born {
			return SingleSource[S]{Source: refPtr(self), Target: refPtr(self)}
		}
		return SingleSource[S]{Source: refPtr(self)}
	case len(successors) > 1:
		targets := make([]Ref[S], len(successors))
		for i, c := range successors {
			targets[i] = targetRef(frames, next.Time, c.Target)
		}
		if contacts && (entered.has(EventTouch) || entered.has(EventFusion)) {
			return DeTouch[S]{Source: self, Targets: targets}
		}
		return Split[S]{Source: self, Targets: targets}
	}
	target := targetRef(frames, next.Time, successors[0].Target)
	if next.InDegree(target.Index) > 1 {
		predecessors := next.Predecessors(target.Index)
		sources := make([]Ref[S], len(predecessors))
		for i, c := range predecessors {
			sources[i] = Ref[S]{Time: self.Time, Index: c.Source, Shape: frames[self.Time].Shapes[c.Source]}
		}
		return Fusion[S]{Source: self, Sources: sources, Target: target}
	}
	if contacts && (next.SoftOut(self.Index) > 0 || next.SoftIn(target.Index) > 0) {
		return Touch[S]{Source: self, Target: target}
	}
	if contacts && entered.has(EventTouch) {
		return DeTouch[S]{Source: self, Targets: []Ref[S]{target}}
	}
	if born {
		return SingleSource[S]{Target: refPtr(self)}
	}
	return Alive[S]{Source: self, Target: target}
}

func targetRef[S any](frames []Frame[S], t, index int) Ref[S] {
	return Ref[S]{Time: t + 1, Index: index, Shape: frames[t+1].Shapes[index]}
}

func refPtr[S any](ref Ref[S]) *Ref[S] {
	return &ref
}
