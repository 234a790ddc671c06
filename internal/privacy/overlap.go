package privacy

import "sort"

// resolveOverlaps selects a non-overlapping subset of candidate
// matches. Candidates are considered in (start ascending, confidence
// descending) order and accepted greedily; an already-accepted match is
// displaced only by a strictly higher-confidence overlapping candidate,
// so ties keep the earlier-accepted match. The result is sorted by
// start position.
func resolveOverlaps(matches []Match) []Match {
	if len(matches) == 0 {
		return nil
	}

	sorted := make([]Match, len(matches))
	copy(sorted, matches)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].Confidence > sorted[j].Confidence
	})

	var accepted []Match
	for _, candidate := range sorted {
		overlapped := false
		for i, existing := range accepted {
			if candidate.overlaps(existing) {
				if candidate.Confidence > existing.Confidence {
					accepted = append(accepted[:i], accepted[i+1:]...)
					accepted = append(accepted, candidate)
				}
				overlapped = true
				break
			}
		}
		if !overlapped {
			accepted = append(accepted, candidate)
		}
	}

	sort.SliceStable(accepted, func(i, j int) bool {
		return accepted[i].Start < accepted[j].Start
	})
	return accepted
}
