package lifetrack

import (
	"sort"

	"github.com/pkg/errors"
)

// Candidate is a scored pairing of a shape in frame t with a shape in frame t+1
type Candidate struct {
	Source int
	Target int
	Score  float64
}

// PairMatches is the match multigraph between two adjacent frames.
// Strict candidates passed the "same object" predicate. Soft candidates are in
// contact only.
type PairMatches struct {
	// Time of the source frame. Targets live in frame Time+1.
	Time   int
	Strict []Candidate
	Soft   []Candidate

	out     [][]int
	in      [][]int
	softOut []int
	softIn  []int
}

func newPairMatches(t, numSources, numTargets int, strict, soft []Candidate) *PairMatches {
	sortCandidates(strict)
	sortCandidates(soft)
	pm := &PairMatches{
		Time:    t,
		Strict:  strict,
		Soft:    soft,
		out:     make([][]int, numSources),
		in:      make([][]int, numTargets),
		softOut: make([]int, numSources),
		softIn:  make([]int, numTargets),
	}
	for i, c := range strict {
		pm.out[c.Source] = append(pm.out[c.Source], i)
		pm.in[c.Target] = append(pm.in[c.Target], i)
	}
	for _, c := range soft {
		pm.softOut[c.Source]++
		pm.softIn[c.Target]++
	}
	return pm
}

// sortCandidates orders by source then target index
func sortCandidates(candidates []Candidate) {
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Source != candidates[j].Source {
			return candidates[i].Source < candidates[j].Source
		}
		return candidates[i].Target < candidates[j].Target
	})
}

// OutDegree returns how many successors source shape matches
func (pm *PairMatches) OutDegree(source int) int {
	return len(pm.out[source])
}

// InDegree returns how many predecessors match target shape
func (pm *PairMatches) InDegree(target int) int {
	return len(pm.in[target])
}

// Successors returns strict candidates of source ordered by target index
func (pm *PairMatches) Successors(source int) []Candidate {
	result := make([]Candidate, len(pm.out[source]))
	for i, idx := range pm.out[source] {
		result[i] = pm.Strict[idx]
	}
	return result
}

// Predecessors returns strict candidates of target ordered by source index
func (pm *PairMatches) Predecessors(target int) []Candidate {
	result := make([]Candidate, len(pm.in[target]))
	for i, idx := range pm.in[target] {
		result[i] = pm.Strict[idx]
	}
	return result
}

// SoftOut returns the number of soft contacts of source shape
func (pm *PairMatches) SoftOut(source int) int {
	return pm.softOut[source]
}

// SoftIn returns the number of soft contacts of target shape
func (pm *PairMatches) SoftIn(target int) int {
	return pm.softIn[target]
}

// MatchFrames computes the match multigraph between two adjacent frames.
// Shape pairs are tested only when their bounding boxes, extended by the
// search margin, overlap. Empty shapes never produce candidates.
// A panic inside a shape predicate is returned as an error naming the pair.
func MatchFrames[S Shape[S]](t int, sources, targets []S, params Params) (pm *PairMatches, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("frame pair %d->%d: shape predicate panicked: %v", t, t+1, r)
		}
	}()
	margin := params.searchMargin()
	targetBounds := make([]Rectangle, len(targets))
	targetValid := make([]bool, len(targets))
	for j, target := range targets {
		if target.Empty() {
			continue
		}
		targetValid[j] = true
		targetBounds[j] = target.Bounds()
	}
	strict := make([]Candidate, 0)
	soft := make([]Candidate, 0)
	for i, source := range sources {
		if source.Empty() {
			continue
		}
		searchBox := source.Bounds().Expand(margin)
		for j, target := range targets {
			if !targetValid[j] || !searchBox.Overlaps(targetBounds[j]) {
				continue
			}
			if score, ok := source.Match(target, params); ok {
				strict = append(strict, Candidate{Source: i, Target: j, Score: score})
				continue
			}
			if params.contacts() && source.Contact(target, params) {
				soft = append(soft, Candidate{Source: i, Target: j})
			}
		}
	}
	strict = assign(strict, params.Assignment)
	return newPairMatches(t, len(sources), len(targets), strict, soft), nil
}
