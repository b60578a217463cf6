// Package match implements the track matching engine: it maps local audio
// files, identified only by imprecise text labels, onto the canonical
// ordered track list of a catalog album.
//
// # Scoring
//
// Score compares two labels after normalization (case folding, apostrophe
// and punctuation handling, bracketed-annotation and track-number-prefix
// stripping) and blends a whole-string metric with a token-set metric:
//
//	match.Score("01 Wanna Be Startin Somethin", "Wanna Be Startin' Somethin'") // 1.0
//
// # Assignment
//
// The solver assigns greedily by descending global confidence across the
// whole (candidate, track) matrix. A pair is accepted automatically only
// when it clears the auto-accept threshold and no competing pair scores
// within the tie margin; everything else is escalated to the user.
//
// # Disambiguation
//
// Unresolved entries are presented to an injected Decider one at a time,
// most confident first, each with a shortlist of the remaining tracks
// ranked by confidence. A declined entry fails the run: the engine never
// lowers a threshold to force a match.
//
//	engine := match.NewEngine(match.DefaultConfig(), decider, logger)
//	result, err := engine.Match(ctx, album, candidates)
package match
