package lifetrack

import (
	"math"
)

// Filament is a traced fiber: a chain of points from one end to the other.
// It implements Shape[*Filament] interface.
type Filament struct {
	points      []Point
	length      float64
	orientation float64
	bounds      Rectangle
}

// NewFilament creates a filament from its ordered chain of points
func NewFilament(points []Point) *Filament {
	filament := &Filament{
		points: append([]Point(nil), points...),
		bounds: Rectangle{Width: -1, Height: -1},
	}
	if len(points) < 2 {
		return filament
	}
	for i := 1; i < len(points); i++ {
		filament.length += euclideanDistance(points[i-1], points[i])
	}
	first, last := points[0], points[len(points)-1]
	angle := math.Atan2(last.Y-first.Y, last.X-first.X) * 180.0 / math.Pi
	angle = math.Mod(angle+360.0, 180.0)
	filament.orientation = angle

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	filament.bounds = Rectangle{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
	return filament
}

// Points returns a copy of the chain
func (filament *Filament) Points() []Point {
	return append([]Point(nil), filament.points...)
}

// Length returns the sum of chain segment lengths
func (filament *Filament) Length() float64 {
	return filament.length
}

// Orientation returns the chord angle in degrees, in [0, 180)
func (filament *Filament) Orientation() float64 {
	return filament.orientation
}

// Ends returns the first and the last points of the chain
func (filament *Filament) Ends() (Point, Point) {
	return filament.points[0], filament.points[len(filament.points)-1]
}

// Empty reports chains with fewer than two points or zero length
func (filament *Filament) Empty() bool {
	return filament == nil || len(filament.points) < 2 || filament.length == 0
}

// Bounds returns filament's bounding box
func (filament *Filament) Bounds() Rectangle {
	return filament.bounds
}

// Center returns the middle of the chord
func (filament *Filament) Center() Point {
	if filament.Empty() {
		return Point{}
	}
	a, b := filament.Ends()
	return Point{X: (a.X + b.X) / 2.0, Y: (a.Y + b.Y) / 2.0}
}

// EndpointDistance returns mean distance between ends of both filaments.
// Chains may be traced in opposite directions, so the better pairing is used.
func (filament *Filament) EndpointDistance(other *Filament) float64 {
	a0, a1 := filament.Ends()
	b0, b1 := other.Ends()
	straight := (euclideanDistance(a0, b0) + euclideanDistance(a1, b1)) / 2.0
	swapped := (euclideanDistance(a0, b1) + euclideanDistance(a1, b0)) / 2.0
	return math.Min(straight, swapped)
}

// AngleDifference returns the orientation difference in degrees, in [0, 90]
func (filament *Filament) AngleDifference(other *Filament) float64 {
	diff := math.Abs(filament.orientation - other.orientation)
	if diff > 90.0 {
		diff = 180.0 - diff
	}
	return diff
}

// Cost returns the weighted combination of endpoint distance, orientation
// difference and length difference
func (filament *Filament) Cost(other *Filament, params Params) float64 {
	return filament.EndpointDistance(other) +
		params.AngleFactor*filament.AngleDifference(other) +
		params.LengthFactor*math.Abs(filament.length-other.length)
}

// Match accepts other filament when both are long enough, ends are within
// params.MaxDistance and the composite cost does not exceed params.MaxDistance
func (filament *Filament) Match(other *Filament, params Params) (float64, bool) {
	if filament.Empty() || other.Empty() {
		return 0, false
	}
	if filament.length < params.MinLength || other.length < params.MinLength {
		return 0, false
	}
	if filament.EndpointDistance(other) > params.MaxDistance {
		return 0, false
	}
	cost := filament.Cost(other, params)
	if cost > params.MaxDistance {
		return 0, false
	}
	return 1.0 / (1.0 + cost), true
}

// Contact is never reported for filaments
func (filament *Filament) Contact(other *Filament, params Params) bool {
	return false
}
