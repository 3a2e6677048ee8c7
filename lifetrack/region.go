package lifetrack

import (
	"image"
	"math"
)

// Region is a set of pixels detected as one cell area.
// It implements Shape[*Region] interface.
type Region struct {
	rect   image.Rectangle
	bits   []uint64
	count  int
	center Point
}

// NewRegion creates a region from its pixels. Duplicated pixels are counted once.
func NewRegion(pixels []image.Point) *Region {
	if len(pixels) == 0 {
		return &Region{}
	}
	rect := image.Rectangle{Min: pixels[0], Max: pixels[0].Add(image.Pt(1, 1))}
	for _, p := range pixels[1:] {
		rect = rect.Union(image.Rectangle{Min: p, Max: p.Add(image.Pt(1, 1))})
	}
	region := &Region{
		rect: rect,
		bits: make([]uint64, (rect.Dx()*rect.Dy()+63)/64),
	}
	sum := image.Point{}
	for _, p := range pixels {
		if region.set(p.X, p.Y) {
			sum = sum.Add(p)
		}
	}
	total := NewPointFrom(sum)
	n := float64(region.count)
	region.center = NewPoint(total.X/n, total.Y/n)
	return region
}

// NewRegionFromMask creates a region from every pixel of mask with non-zero alpha
func NewRegionFromMask(mask *image.Alpha) *Region {
	pixels := make([]image.Point, 0)
	bounds := mask.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if mask.AlphaAt(x, y).A != 0 {
				pixels = append(pixels, image.Pt(x, y))
			}
		}
	}
	return NewRegion(pixels)
}

// NewRegionRect creates a solid rectangular region covering rect
func NewRegionRect(rect image.Rectangle) *Region {
	pixels := make([]image.Point, 0, rect.Dx()*rect.Dy())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			pixels = append(pixels, image.Pt(x, y))
		}
	}
	return NewRegion(pixels)
}

func (region *Region) set(x, y int) bool {
	idx := (y-region.rect.Min.Y)*region.rect.Dx() + (x - region.rect.Min.X)
	word, bit := idx/64, uint(idx%64)
	if region.bits[word]&(1<<bit) != 0 {
		return false
	}
	region.bits[word] |= 1 << bit
	region.count++
	return true
}

// Has reports whether pixel (x, y) belongs to the region
func (region *Region) Has(x, y int) bool {
	if region == nil || !image.Pt(x, y).In(region.rect) {
		return false
	}
	idx := (y-region.rect.Min.Y)*region.rect.Dx() + (x - region.rect.Min.X)
	return region.bits[idx/64]&(1<<uint(idx%64)) != 0
}

// Area returns the number of pixels
func (region *Region) Area() int {
	if region == nil {
		return 0
	}
	return region.count
}

// Pixels returns a copy of the region's pixels in row-major order
func (region *Region) Pixels() []image.Point {
	pixels := make([]image.Point, 0, region.Area())
	if region.Empty() {
		return pixels
	}
	for y := region.rect.Min.Y; y < region.rect.Max.Y; y++ {
		for x := region.rect.Min.X; x < region.rect.Max.X; x++ {
			if region.Has(x, y) {
				pixels = append(pixels, image.Pt(x, y))
			}
		}
	}
	return pixels
}

// Empty reports a region without pixels
func (region *Region) Empty() bool {
	return region == nil || region.count == 0
}

// Bounds returns region's bounding box
func (region *Region) Bounds() Rectangle {
	if region.Empty() {
		return Rectangle{Width: -1, Height: -1}
	}
	return NewRectFrom(region.rect)
}

// Center returns region's centroid
func (region *Region) Center() Point {
	if region.Empty() {
		return Point{}
	}
	return region.center
}

// Overlap returns the number of pixels shared with other region
func (region *Region) Overlap(other *Region) int {
	if region.Empty() || other.Empty() {
		return 0
	}
	inter := region.rect.Intersect(other.rect)
	shared := 0
	for y := inter.Min.Y; y < inter.Max.Y; y++ {
		for x := inter.Min.X; x < inter.Max.X; x++ {
			if region.Has(x, y) && other.Has(x, y) {
				shared++
			}
		}
	}
	return shared
}

// OverlapRatio returns shared pixels relative to the smaller of both regions
func (region *Region) OverlapRatio(other *Region) float64 {
	shared := region.Overlap(other)
	if shared == 0 {
		return 0
	}
	smaller := region.count
	if other.count < smaller {
		smaller = other.count
	}
	return float64(shared) / float64(smaller)
}

// Match accepts other region when the overlap ratio reaches params.Tolerance
func (region *Region) Match(other *Region, params Params) (float64, bool) {
	ratio := region.OverlapRatio(other)
	if ratio == 0 || ratio < params.Tolerance {
		return 0, false
	}
	return ratio, true
}

// Contact reports any pixel of other lying within params.ContactDistance
// (Chebyshev distance) of a pixel of this region
func (region *Region) Contact(other *Region, params Params) bool {
	if region.Empty() || other.Empty() {
		return false
	}
	reach := int(math.Floor(params.ContactDistance))
	if reach <= 0 {
		return region.Overlap(other) > 0
	}
	search := other.rect.Intersect(region.rect.Inset(-reach))
	for y := search.Min.Y; y < search.Max.Y; y++ {
		for x := search.Min.X; x < search.Max.X; x++ {
			if !other.Has(x, y) {
				continue
			}
			for dy := -reach; dy <= reach; dy++ {
				for dx := -reach; dx <= reach; dx++ {
					if region.Has(x+dx, y+dy) {
						return true
					}
				}
			}
		}
	}
	return false
}
