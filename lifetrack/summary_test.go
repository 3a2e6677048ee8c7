package lifetrack

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	result := mustTrack(t, DefaultAreaParams(), lifespanStack())
	all := result.GetTimelines()
	visible := []*Timeline[*Region]{all[0], all[1], all[3]}

	summary := Summarize(result, visible)
	if summary.Total != 4 || summary.Visible != 3 {
		t.Errorf("Expected 4 total and 3 visible timelines, got %d and %d", summary.Total, summary.Visible)
	}
	if summary.MaxTime != 7 {
		t.Errorf("Expected max time 7, got %d", summary.MaxTime)
	}
	extent := result.GetExtent()
	if summary.Width != extent.Width || summary.Height != extent.Height {
		t.Errorf("Summary extent %vx%v differs from result extent %vx%v", summary.Width, summary.Height, extent.Width, extent.Height)
	}
	if math.Abs(summary.MeanLifespan-10.0/3.0) > eps {
		t.Errorf("Mean lifespan should be %f, got %f", 10.0/3.0, summary.MeanLifespan)
	}
	if math.Abs(summary.StdLifespan-3.511885) > eps {
		t.Errorf("Lifespan deviation should be %f, got %f", 3.511885, summary.StdLifespan)
	}
	if summary.MaxLifespan != 7 {
		t.Errorf("Max lifespan should be 7, got %d", summary.MaxLifespan)
	}

	single := Summarize(result, all[1:2])
	if single.MeanLifespan != 3 || single.StdLifespan != 0 {
		t.Errorf("Single timeline summary should be mean 3 std 0, got %f %f", single.MeanLifespan, single.StdLifespan)
	}
	none := Summarize(result, nil)
	if none.Visible != 0 || none.MeanLifespan != 0 || none.Total != 4 {
		t.Errorf("Unexpected summary without visible timelines: %+v", none)
	}
}
