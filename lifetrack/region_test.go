package lifetrack

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func TestNewRegion(t *testing.T) {
	region := NewRegion([]image.Point{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 3}})
	if region.Area() != 3 {
		t.Errorf("Expected area 3, got %d", region.Area())
	}
	expectedBounds := Rectangle{X: 1, Y: 1, Width: 2, Height: 3}
	if region.Bounds() != expectedBounds {
		t.Errorf("Expected bounds %v, got %v", expectedBounds, region.Bounds())
	}
	center := region.Center()
	if math.Abs(center.X-4.0/3.0) > eps || math.Abs(center.Y-5.0/3.0) > eps {
		t.Errorf("Unexpected center %v", center)
	}
	if !region.Has(1, 3) || region.Has(2, 3) {
		t.Error("Unexpected pixel membership")
	}
	if len(region.Pixels()) != 3 {
		t.Errorf("Expected 3 pixels, got %d", len(region.Pixels()))
	}
}

func TestRegionEmpty(t *testing.T) {
	var nilRegion *Region
	if !nilRegion.Empty() || !NewRegion(nil).Empty() {
		t.Error("Regions without pixels should be empty")
	}
	if !NewRegion(nil).Bounds().IsEmpty() {
		t.Error("Empty region should have empty bounds")
	}
	if _, ok := NewRegion(nil).Match(box(0, 0, 5, 5), DefaultAreaParams()); ok {
		t.Error("Empty region should never match")
	}
}

func TestNewRegionFromMask(t *testing.T) {
	mask := image.NewAlpha(image.Rect(0, 0, 8, 8))
	for y := 2; y < 4; y++ {
		for x := 3; x < 6; x++ {
			mask.SetAlpha(x, y, color.Alpha{A: 255})
		}
	}
	region := NewRegionFromMask(mask)
	if region.Area() != 6 {
		t.Errorf("Expected area 6, got %d", region.Area())
	}
	if region.Bounds() != (Rectangle{X: 3, Y: 2, Width: 3, Height: 2}) {
		t.Errorf("Unexpected bounds %v", region.Bounds())
	}
}

func TestRegionOverlapRatio(t *testing.T) {
	whole := box(0, 0, 20, 10)
	half := box(0, 0, 10, 10)
	shifted := box(5, 0, 15, 10)
	if ratio := whole.OverlapRatio(half); math.Abs(ratio-1.0) > eps {
		t.Errorf("Expected ratio 1, got %f", ratio)
	}
	if ratio := half.OverlapRatio(shifted); math.Abs(ratio-0.5) > eps {
		t.Errorf("Expected ratio 0.5, got %f", ratio)
	}
	params := DefaultAreaParams()
	params.Tolerance = 0.6
	if _, ok := half.Match(shifted, params); ok {
		t.Error("Ratio 0.5 should not pass tolerance 0.6")
	}
	params.Tolerance = 0.5
	if score, ok := half.Match(shifted, params); !ok || math.Abs(score-0.5) > eps {
		t.Errorf("Expected match with score 0.5, got %f, %v", score, ok)
	}
}

func TestRegionContact(t *testing.T) {
	a := box(0, 0, 10, 10)
	adjacent := box(10, 0, 20, 10)
	diagonal := box(10, 10, 20, 20)
	gap := box(12, 0, 20, 10)
	params := DefaultAreaParams()
	if !a.Contact(adjacent, params) {
		t.Error("Adjacent regions should be in contact")
	}
	if !a.Contact(diagonal, params) {
		t.Error("Diagonal neighbours should be in contact")
	}
	if a.Contact(gap, params) {
		t.Error("Regions separated by a two pixel gap should not be in contact")
	}
	params.ContactDistance = 3
	if !a.Contact(gap, params) {
		t.Error("Regions separated by a two pixel gap should be in contact with distance 3")
	}
	params.ContactDistance = 0
	if a.Contact(adjacent, params) {
		t.Error("Without contact distance only overlap counts")
	}
}
