package lifetrack

import (
	"image"
	"math"
)

// Polygon is a generic closed shape given by its vertices.
// Matching works on its rasterization, so it behaves like a Region.
// It implements Shape[*Polygon] interface.
type Polygon struct {
	vertices []Point
	mask     *Region
}

// NewPolygon creates a polygon and rasterizes it: every pixel whose center lies
// inside the outline (even-odd rule) belongs to the shape
func NewPolygon(vertices []Point) *Polygon {
	poly := &Polygon{
		vertices: append([]Point(nil), vertices...),
	}
	poly.mask = NewRegion(rasterize(poly.vertices))
	return poly
}

func rasterize(vertices []Point) []image.Point {
	pixels := make([]image.Point, 0)
	if len(vertices) < 3 {
		return pixels
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, v := range vertices {
		minX, maxX = math.Min(minX, v.X), math.Max(maxX, v.X)
		minY, maxY = math.Min(minY, v.Y), math.Max(maxY, v.Y)
	}
	for y := int(math.Floor(minY)); y <= int(math.Ceil(maxY)); y++ {
		for x := int(math.Floor(minX)); x <= int(math.Ceil(maxX)); x++ {
			if pointInPolygon(NewPoint(float64(x)+0.5, float64(y)+0.5), vertices) {
				pixels = append(pixels, image.Pt(x, y))
			}
		}
	}
	return pixels
}

func pointInPolygon(p Point, vertices []Point) bool {
	inside := false
	j := len(vertices) - 1
	for i := range vertices {
		vi, vj := vertices[i], vertices[j]
		if (vi.Y > p.Y) != (vj.Y > p.Y) {
			crossX := vj.X + (p.Y-vj.Y)*(vi.X-vj.X)/(vi.Y-vj.Y)
			if p.X < crossX {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// Vertices returns a copy of the outline
func (poly *Polygon) Vertices() []Point {
	return append([]Point(nil), poly.vertices...)
}

// Area returns the enclosed area computed with the shoelace formula
func (poly *Polygon) Area() float64 {
	n := len(poly.vertices)
	if n < 3 {
		return 0
	}
	sum := 0.0
	for i := range poly.vertices {
		a, b := poly.vertices[i], poly.vertices[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return math.Abs(sum) / 2.0
}

// Perimeter returns the outline length
func (poly *Polygon) Perimeter() float64 {
	n := len(poly.vertices)
	if n < 2 {
		return 0
	}
	sum := 0.0
	for i := range poly.vertices {
		sum += euclideanDistance(poly.vertices[i], poly.vertices[(i+1)%n])
	}
	return sum
}

// Mask returns the rasterized pixels of the polygon
func (poly *Polygon) Mask() *Region {
	return poly.mask
}

// Empty reports polygons covering no pixel center
func (poly *Polygon) Empty() bool {
	return poly == nil || poly.mask.Empty()
}

// Bounds returns the bounding box of the rasterized shape
func (poly *Polygon) Bounds() Rectangle {
	if poly.Empty() {
		return Rectangle{Width: -1, Height: -1}
	}
	return poly.mask.Bounds()
}

// Center returns centroid of the rasterized shape
func (poly *Polygon) Center() Point {
	if poly.Empty() {
		return Point{}
	}
	return poly.mask.Center()
}

// Match accepts other polygon when the overlap ratio reaches params.Tolerance
func (poly *Polygon) Match(other *Polygon, params Params) (float64, bool) {
	if poly.Empty() || other.Empty() {
		return 0, false
	}
	return poly.mask.Match(other.mask, params)
}

// Contact reports rasterized shapes within params.ContactDistance of each other
func (poly *Polygon) Contact(other *Polygon, params Params) bool {
	if poly.Empty() || other.Empty() {
		return false
	}
	return poly.mask.Contact(other.mask, params)
}
