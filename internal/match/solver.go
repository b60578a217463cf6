package match

import "sort"

// pair is one (candidate, track) cell of the confidence matrix.
type pair struct {
	cand  int
	track int
	score float64
}

// solve performs greedy assignment by descending global confidence:
// repeatedly take the single highest-confidence pair whose candidate and
// track are both still free, and accept it automatically only when it
// clears the auto-accept threshold and no competing pair for either
// endpoint scores within the tie margin. Contested or sub-threshold
// candidates are left StatusUnmatched for disambiguation.
//
// Global order avoids a strong candidate being starved by a weaker one
// claiming its track first. A candidate flagged for disambiguation keeps
// competing in margin checks: its preferred track stays contested until the
// human resolves the entry, so the track is never silently auto-awarded to
// the runner-up.
func solve(matrix [][]float64, cfg Config) ([]Entry, []bool) {
	candidates := len(matrix)
	entries := make([]Entry, candidates)
	for i := range entries {
		entries[i] = Entry{TrackIndex: -1, Status: StatusUnmatched}
	}
	if candidates == 0 {
		return entries, nil
	}

	tracks := len(matrix[0])
	trackTaken := make([]bool, tracks)

	pairs := make([]pair, 0, candidates*tracks)
	for c := range matrix {
		for t, score := range matrix[c] {
			pairs = append(pairs, pair{cand: c, track: t, score: score})
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].score != pairs[j].score {
			return pairs[i].score > pairs[j].score
		}
		if pairs[i].cand != pairs[j].cand {
			return pairs[i].cand < pairs[j].cand
		}
		return pairs[i].track < pairs[j].track
	})

	// free: candidate still considered by the greedy loop. flagged
	// candidates leave the loop but still contest margin checks until
	// disambiguation resolves them.
	free := make([]bool, candidates)
	assigned := make([]bool, candidates)
	for i := range free {
		free[i] = true
	}
	remaining := candidates

	for remaining > 0 {
		best := bestPair(pairs, free, trackTaken)
		if best == nil || best.score < cfg.AutoAcceptThreshold {
			// The global maximum is below threshold, so every remaining
			// pair is too: flag all remaining candidates.
			for c := range free {
				if free[c] {
					free[c] = false
					remaining--
				}
			}
			break
		}

		if contested(pairs, *best, assigned, trackTaken, cfg.TieMargin) {
			free[best.cand] = false
			remaining--
			continue
		}

		entries[best.cand] = Entry{
			TrackIndex: best.track,
			Confidence: best.score,
			Status:     StatusAuto,
		}
		assigned[best.cand] = true
		trackTaken[best.track] = true
		free[best.cand] = false
		remaining--
	}

	return entries, trackTaken
}

// bestPair returns the highest-scoring pair whose candidate is still free
// and whose track is unclaimed, or nil when none is left.
func bestPair(pairs []pair, free []bool, trackTaken []bool) *pair {
	for i := range pairs {
		p := &pairs[i]
		if free[p.cand] && !trackTaken[p.track] {
			return p
		}
	}
	return nil
}

// contested reports whether another live pair sharing either endpoint with
// p scores within the tie margin. Pairs of auto-assigned candidates and
// claimed tracks are settled and do not compete.
func contested(pairs []pair, p pair, assigned []bool, trackTaken []bool, margin float64) bool {
	for _, other := range pairs {
		if other.score <= p.score-margin {
			// Sorted descending: everything further is out of range too.
			return false
		}
		if other.cand == p.cand && other.track == p.track {
			continue
		}
		if other.cand != p.cand && other.track != p.track {
			continue
		}
		if assigned[other.cand] || trackTaken[other.track] {
			continue
		}
		return true
	}
	return false
}
