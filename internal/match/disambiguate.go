package match

import (
	"context"
	"sort"

	"github.com/handiism/album-formatter/internal/model"
)

// Option is one shortlist entry offered to the user during disambiguation.
type Option struct {
	// TrackIndex is the track's index in the album's track list.
	TrackIndex int

	// Track is the catalog track itself, for display.
	Track model.CatalogTrack

	// Confidence is the candidate's score against this track.
	Confidence float64
}

// Decider supplies the human decision for entries the solver could not
// resolve automatically. Implementations block until a decision is made;
// the engine waits indefinitely.
//
// Resolve returns the chosen position within options and ok=true, or
// ok=false when the user declines to assign any of the offered tracks
// (which fails the run). A non-nil error aborts the run.
//
// The interactive implementation lives in the tui package; tests inject a
// scripted Decider.
type Decider interface {
	Resolve(ctx context.Context, candidate model.FileCandidate, options []Option) (choice int, ok bool, err error)
}

// disambiguate resolves every StatusUnmatched entry through the Decider,
// one at a time in descending order of best-available confidence, so the
// most confident ambiguous cases cannot lose their best track to a weaker
// entry resolved earlier. After each resolution the chosen track leaves
// every other shortlist; an entry left with a single plausible,
// uncontested option is promoted to StatusAuto without a prompt.
func (e *Engine) disambiguate(
	ctx context.Context,
	album *model.CatalogAlbum,
	candidates []model.FileCandidate,
	matrix [][]float64,
	entries []Entry,
	trackTaken []bool,
) error {
	for {
		unresolved := unresolvedIndexes(entries)
		if len(unresolved) == 0 {
			return nil
		}

		shortlists := make(map[int][]Option, len(unresolved))
		for _, c := range unresolved {
			shortlists[c] = shortlist(album, matrix[c], trackTaken)
		}

		if promoted := e.promote(unresolved, candidates, entries, trackTaken, shortlists); promoted {
			continue
		}

		// Most confident ambiguous entry first.
		next := unresolved[0]
		for _, c := range unresolved[1:] {
			if bestConfidence(shortlists[c]) > bestConfidence(shortlists[next]) {
				next = c
			}
		}

		options := shortlists[next]
		e.logger.Debug("prompting for unresolved candidate",
			"label", candidates[next].Label, "options", len(options))

		choice, ok, err := e.decider.Resolve(ctx, candidates[next], options)
		if err != nil {
			return err
		}
		if !ok {
			entries[next].Status = StatusRejected
			return &UnresolvedError{Label: candidates[next].Label}
		}
		if choice < 0 || choice >= len(options) {
			return &UnresolvedError{Label: candidates[next].Label}
		}

		picked := options[choice]
		entries[next] = Entry{
			Candidate:  candidates[next],
			TrackIndex: picked.TrackIndex,
			Confidence: picked.Confidence,
			Status:     StatusUserConfirmed,
		}
		trackTaken[picked.TrackIndex] = true
	}
}

// promote auto-assigns entries whose shortlist has exactly one option at or
// above the auto-accept threshold, provided no other unresolved entry
// scores within the tie margin for that track. Returns true if any entry
// was promoted; shortlists are then rebuilt.
func (e *Engine) promote(
	unresolved []int,
	candidates []model.FileCandidate,
	entries []Entry,
	trackTaken []bool,
	shortlists map[int][]Option,
) bool {
	for _, c := range unresolved {
		options := shortlists[c]
		plausible := -1
		unambiguous := true
		for i, opt := range options {
			if opt.Confidence < e.cfg.AutoAcceptThreshold {
				continue
			}
			if plausible >= 0 {
				unambiguous = false
				break
			}
			plausible = i
		}
		if plausible < 0 || !unambiguous {
			continue
		}

		target := options[plausible]
		if contestedByOther(c, target, shortlists, e.cfg.TieMargin) {
			continue
		}

		entries[c] = Entry{
			Candidate:  candidates[c],
			TrackIndex: target.TrackIndex,
			Confidence: target.Confidence,
			Status:     StatusAuto,
		}
		trackTaken[target.TrackIndex] = true
		e.logger.Debug("promoted single remaining option",
			"label", candidates[c].Label, "track", target.Track.Name)
		return true
	}
	return false
}

// contestedByOther reports whether another unresolved entry wants the same
// track with a score within the tie margin.
func contestedByOther(cand int, target Option, shortlists map[int][]Option, margin float64) bool {
	for other, options := range shortlists {
		if other == cand {
			continue
		}
		for _, opt := range options {
			if opt.TrackIndex == target.TrackIndex && opt.Confidence > target.Confidence-margin {
				return true
			}
		}
	}
	return false
}

// shortlist ranks the remaining tracks for one candidate: confidence
// descending, ties broken by ascending disc then track number. A candidate
// with no plausible match anywhere still receives the full remaining list
// at whatever low confidences it scored, so the human decides instead of
// the run failing outright.
func shortlist(album *model.CatalogAlbum, row []float64, trackTaken []bool) []Option {
	options := make([]Option, 0, len(row))
	for t, score := range row {
		if trackTaken[t] {
			continue
		}
		options = append(options, Option{
			TrackIndex: t,
			Track:      album.Tracks[t],
			Confidence: score,
		})
	}

	sort.SliceStable(options, func(i, j int) bool {
		if options[i].Confidence != options[j].Confidence {
			return options[i].Confidence > options[j].Confidence
		}
		if options[i].Track.Disc != options[j].Track.Disc {
			return options[i].Track.Disc < options[j].Track.Disc
		}
		return options[i].Track.Number < options[j].Track.Number
	})

	return options
}

func unresolvedIndexes(entries []Entry) []int {
	var indexes []int
	for i, e := range entries {
		if e.Status == StatusUnmatched {
			indexes = append(indexes, i)
		}
	}
	return indexes
}

func bestConfidence(options []Option) float64 {
	if len(options) == 0 {
		return 0
	}
	return options[0].Confidence
}
