package lifetrack

// EventKind is the lifecycle event vocabulary
type EventKind uint16

const (
	// EventAlive is a 1:1 continuation
	EventAlive EventKind = iota
	// EventSplit is one predecessor mapping to several successors
	EventSplit
	// EventFusion is several predecessors mapping to one successor
	EventFusion
	// EventTouch is a continuation in soft contact with a neighbouring object
	EventTouch
	// EventDeTouch is a touching or fused group separating again
	EventDeTouch
	// EventSingleSource is a birth, a death or both
	EventSingleSource
)

func (k EventKind) String() string {
	switch k {
	case EventAlive:
		return "alive"
	case EventSplit:
		return "split"
	case EventFusion:
		return "fusion"
	case EventTouch:
		return "touch"
	case EventDeTouch:
		return "detouch"
	case EventSingleSource:
		return "single_source"
	default:
		return "unknown"
	}
}

// Ref points at a shape: its frame time, its position in that frame and the shape itself
type Ref[S any] struct {
	Time  int
	Index int
	Shape S
}

// Event is the classified relation between a timeline's shape at some time
// and the shapes of the next frame. The set of implementations is closed:
// Alive, Split, Fusion, Touch, DeTouch and SingleSource.
type Event[S any] interface {
	Kind() EventKind
	// Subject is the timeline's own shape at the event's time
	Subject() Ref[S]
	sealed()
}

// Alive is a 1:1 continuation. At the last frame of a stack Target equals Source.
type Alive[S any] struct {
	Source Ref[S]
	Target Ref[S]
}

func (e Alive[S]) Kind() EventKind { return EventAlive }
func (e Alive[S]) Subject() Ref[S] { return e.Source }
func (e Alive[S]) sealed()         {}

// Terminal reports the continuation recorded at the last frame of the stack
func (e Alive[S]) Terminal() bool { return e.Target.Time == e.Source.Time }

// Split is one shape matching several successors
type Split[S any] struct {
	Source  Ref[S]
	Targets []Ref[S]
}

func (e Split[S]) Kind() EventKind { return EventSplit }
func (e Split[S]) Subject() Ref[S] { return e.Source }
func (e Split[S]) sealed()         {}

// Fusion is Source converging, together with the rest of Sources, into Target
type Fusion[S any] struct {
	Source  Ref[S]
	Sources []Ref[S]
	Target  Ref[S]
}

func (e Fusion[S]) Kind() EventKind { return EventFusion }
func (e Fusion[S]) Subject() Ref[S] { return e.Source }
func (e Fusion[S]) sealed()         {}

// Touch is a continuation while in soft contact with another object
type Touch[S any] struct {
	Source Ref[S]
	Target Ref[S]
}

func (e Touch[S]) Kind() EventKind { return EventTouch }
func (e Touch[S]) Subject() Ref[S] { return e.Source }
func (e Touch[S]) sealed()         {}

// DeTouch is a previously touching or fused shape separating
type DeTouch[S any] struct {
	Source  Ref[S]
	Targets []Ref[S]
}

func (e DeTouch[S]) Kind() EventKind { return EventDeTouch }
func (e DeTouch[S]) Subject() Ref[S] { return e.Source }
func (e DeTouch[S]) sealed()         {}

// SingleSource is a shape without predecessor (birth, Target set), without
// successor (death, Source set) or without both (both set to the same shape).
// One event describes one time slot, so a newborn shape which splits, fuses or
// touches right away carries that event instead of the birth marker.
// Timeline.GetOrigin is the canonical birth signal.
type SingleSource[S any] struct {
	Source *Ref[S]
	Target *Ref[S]
}

func (e SingleSource[S]) Kind() EventKind { return EventSingleSource }

func (e SingleSource[S]) Subject() Ref[S] {
	if e.Source != nil {
		return *e.Source
	}
	return *e.Target
}

func (e SingleSource[S]) sealed() {}

// IsBirth reports a shape without predecessor
func (e SingleSource[S]) IsBirth() bool { return e.Target != nil }

// IsDeath reports a shape without successor
func (e SingleSource[S]) IsDeath() bool { return e.Source != nil }

// Targets returns the shapes of the next frame an event points to.
// Terminal continuations and deaths have none.
func Targets[S any](event Event[S]) []Ref[S] {
	switch e := event.(type) {
	case Alive[S]:
		if e.Terminal() {
			return nil
		}
		return []Ref[S]{e.Target}
	case Split[S]:
		return append([]Ref[S](nil), e.Targets...)
	case Fusion[S]:
		return []Ref[S]{e.Target}
	case Touch[S]:
		return []Ref[S]{e.Target}
	case DeTouch[S]:
		return append([]Ref[S](nil), e.Targets...)
	case SingleSource[S]:
		return nil
	default:
		return nil
	}
}

// kindSet is a small bit set of event kinds
type kindSet uint8

func (ks kindSet) with(kind EventKind) kindSet { return ks | 1<<kind }
func (ks kindSet) has(kind EventKind) bool     { return ks&(1<<kind) != 0 }
