package lifetrack

// Shape is the capability every trackable geometry implements.
// Self is the concrete type implementing this interface (e.g., *Region).
// The engine is written once against it, so area, generic shape and filament
// tracking share the same matching and timeline code.
type Shape[Self any] interface {
	// Empty reports degenerate geometry. Empty shapes never produce candidates
	// and never start a timeline.
	Empty() bool

	// Bounds returns the axis-aligned bounding box used to prune candidate pairs
	Bounds() Rectangle

	// Match applies the strict "same object" predicate against a shape of the
	// next frame. Higher scores mean more similar shapes.
	Match(other Self, params Params) (float64, bool)

	// Contact applies the looser contact predicate. Adapters without a notion
	// of soft contact return false.
	Contact(other Self, params Params) bool
}

// Centered is implemented by shapes having a meaningful center point
type Centered interface {
	Center() Point
}

// Frame is one time-indexed set of detected shapes.
// Time must equal the frame's position in the stack.
type Frame[S any] struct {
	Time   int
	Shapes []S
}

// NewFrames wraps per-frame shape slices into frames indexed by position
func NewFrames[S any](stack [][]S) []Frame[S] {
	frames := make([]Frame[S], len(stack))
	for t := range stack {
		frames[t] = Frame[S]{Time: t, Shapes: stack[t]}
	}
	return frames
}
