package lifetrack

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMatchFramesDegrees(t *testing.T) {
	sources := []*Region{box(0, 0, 20, 10), box(100, 100, 110, 110)}
	targets := []*Region{box(0, 0, 10, 10), box(10, 0, 20, 10), box(300, 300, 310, 310)}
	pm, err := MatchFrames(0, sources, targets, DefaultAreaParams())
	if err != nil {
		t.Fatal(err)
	}
	if pm.OutDegree(0) != 2 {
		t.Errorf("Expected out-degree 2, got %d", pm.OutDegree(0))
	}
	if pm.OutDegree(1) != 0 {
		t.Errorf("Expected out-degree 0, got %d", pm.OutDegree(1))
	}
	if pm.InDegree(0) != 1 || pm.InDegree(1) != 1 || pm.InDegree(2) != 0 {
		t.Errorf("Unexpected in-degrees %d %d %d", pm.InDegree(0), pm.InDegree(1), pm.InDegree(2))
	}
	want := []Candidate{{Source: 0, Target: 0, Score: 1}, {Source: 0, Target: 1, Score: 1}}
	if diff := cmp.Diff(want, pm.Successors(0)); diff != "" {
		t.Errorf("Unexpected successors (-want +got):\n%s", diff)
	}
}

func TestMatchFramesSoftContact(t *testing.T) {
	sources := []*Region{box(0, 0, 10, 10)}
	targets := []*Region{box(10, 0, 20, 10), box(13, 0, 23, 10)}
	pm, err := MatchFrames(3, sources, targets, DefaultAreaParams())
	if err != nil {
		t.Fatal(err)
	}
	if len(pm.Strict) != 0 {
		t.Errorf("Expected no strict candidates, got %v", pm.Strict)
	}
	if pm.SoftOut(0) != 1 || pm.SoftIn(0) != 1 || pm.SoftIn(1) != 0 {
		t.Errorf("Unexpected soft contacts: %v", pm.Soft)
	}
	if pm.Time != 3 {
		t.Errorf("Expected time 3, got %d", pm.Time)
	}

	filamentParams := DefaultFilamentParams()
	fa := []*Filament{NewFilament([]Point{{X: 0, Y: 0}, {X: 10, Y: 0}})}
	fb := []*Filament{NewFilament([]Point{{X: 0, Y: 50}, {X: 10, Y: 50}})}
	pmf, err := MatchFrames(0, fa, fb, filamentParams)
	if err != nil {
		t.Fatal(err)
	}
	if len(pmf.Soft) != 0 || len(pmf.Strict) != 0 {
		t.Errorf("Expected no candidates for distant filaments")
	}
}

func TestMatchFramesSkipsEmpty(t *testing.T) {
	sources := []*Region{NewRegion(nil), box(0, 0, 10, 10)}
	targets := []*Region{box(0, 0, 10, 10), nil}
	pm, err := MatchFrames(0, sources, targets, DefaultAreaParams())
	if err != nil {
		t.Fatal(err)
	}
	want := []Candidate{{Source: 1, Target: 0, Score: 1}}
	if diff := cmp.Diff(want, pm.Strict); diff != "" {
		t.Errorf("Unexpected candidates (-want +got):\n%s", diff)
	}
}
