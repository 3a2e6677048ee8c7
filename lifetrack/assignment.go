package lifetrack

import (
	"sort"

	"github.com/arthurkushman/go-hungarian"
)

// assign applies the candidate policy. AssignAll returns candidates unchanged.
func assign(candidates []Candidate, policy Assignment) []Candidate {
	if len(candidates) == 0 {
		return candidates
	}
	switch policy {
	case AssignGreedy:
		return assignGreedy(candidates)
	case AssignHungarian:
		return assignHungarian(candidates)
	default:
		return candidates
	}
}

// assignGreedy takes candidates from the highest score down, skipping shapes
// already reserved. Equal scores are resolved by lower source, then target index.
func assignGreedy(candidates []Candidate) []Candidate {
	ordered := append([]Candidate(nil), candidates...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Score != ordered[j].Score {
			return ordered[i].Score > ordered[j].Score
		}
		if ordered[i].Source != ordered[j].Source {
			return ordered[i].Source < ordered[j].Source
		}
		return ordered[i].Target < ordered[j].Target
	})
	reservedSources := make(map[int]struct{})
	reservedTargets := make(map[int]struct{})
	result := make([]Candidate, 0, len(ordered))
	for _, c := range ordered {
		if _, ok := reservedSources[c.Source]; ok {
			continue
		}
		if _, ok := reservedTargets[c.Target]; ok {
			continue
		}
		reservedSources[c.Source] = struct{}{}
		reservedTargets[c.Target] = struct{}{}
		result = append(result, c)
	}
	return result
}

// assignHungarian keeps the one-to-one subset of candidates with maximal total score
func assignHungarian(candidates []Candidate) []Candidate {
	// Compact indices: only shapes having candidates take part
	rows := make(map[int]int)
	cols := make(map[int]int)
	rowShape := make([]int, 0)
	colShape := make([]int, 0)
	for _, c := range candidates {
		if _, ok := rows[c.Source]; !ok {
			rows[c.Source] = len(rowShape)
			rowShape = append(rowShape, c.Source)
		}
		if _, ok := cols[c.Target]; !ok {
			cols[c.Target] = len(colShape)
			colShape = append(colShape, c.Target)
		}
	}
	// Rectangular matrix - pad to make it square with zero scores
	size := len(rowShape)
	if len(colShape) > size {
		size = len(colShape)
	}
	matrix := make([][]float64, size)
	for i := range matrix {
		matrix[i] = make([]float64, size)
	}
	byPair := make(map[[2]int]Candidate, len(candidates))
	for _, c := range candidates {
		row, col := rows[c.Source], cols[c.Target]
		matrix[row][col] = c.Score
		byPair[[2]int{row, col}] = c
	}
	assignments := hungarian.SolveMax(matrix)
	result := make([]Candidate, 0, len(rowShape))
	for row, rowMap := range assignments {
		for col := range rowMap {
			// Padding cells are not real candidates
			if c, ok := byPair[[2]int{row, col}]; ok {
				result = append(result, c)
			}
		}
	}
	sortCandidates(result)
	return result
}
