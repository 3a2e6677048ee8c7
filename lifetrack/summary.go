package lifetrack

import (
	"gonum.org/v1/gonum/stat"
)

// Summary holds counts and lifespan statistics shown next to a result
type Summary struct {
	Total        int
	Visible      int
	MaxTime      int
	Width        float64
	Height       float64
	MeanLifespan float64
	StdLifespan  float64
	MaxLifespan  int
}

// Summarize describes result and the visible (e.g. filtered) subset of its timelines.
// Lifespan statistics cover the visible timelines.
func Summarize[S any](result *Result[S], visible []*Timeline[S]) Summary {
	if result == nil {
		return Summary{}
	}
	summary := Summary{
		Total:   result.Len(),
		Visible: len(visible),
		MaxTime: result.maxTime,
		Width:   result.extent.Width,
		Height:  result.extent.Height,
	}
	if len(visible) == 0 {
		return summary
	}
	lengths := make([]float64, len(visible))
	for i, tl := range visible {
		lengths[i] = float64(tl.length)
		if tl.length > summary.MaxLifespan {
			summary.MaxLifespan = tl.length
		}
	}
	if len(lengths) == 1 {
		summary.MeanLifespan = lengths[0]
		return summary
	}
	summary.MeanLifespan, summary.StdLifespan = stat.MeanStdDev(lengths, nil)
	return summary
}
