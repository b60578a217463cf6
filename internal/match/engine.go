package match

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/handiism/album-formatter/internal/model"
	"golang.org/x/sync/errgroup"
)

// Config holds the engine's tuning knobs. Pass it explicitly rather than
// reading ambient settings so test runs are deterministic and parallel-safe.
type Config struct {
	// AutoAcceptThreshold is the minimum confidence at which a clear
	// winner is accepted without a prompt.
	AutoAcceptThreshold float64

	// TieMargin is the score delta below which two competing pairs are
	// considered contested rather than a clear winner.
	TieMargin float64

	// Workers bounds the goroutines computing the confidence matrix.
	// Zero means GOMAXPROCS.
	Workers int
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		AutoAcceptThreshold: 0.8,
		TieMargin:           0.05,
	}
}

// Engine turns noisy, unordered file labels into a verified one-to-one
// mapping onto canonical catalog tracks.
//
// The pipeline is sequential: score all (candidate, track) pairs, assign
// greedily by descending global confidence, then resolve whatever remains
// through the injected Decider. The only suspension point is the Decider's
// human decision, which blocks until answered.
//
// Example:
//
//	engine := match.NewEngine(match.DefaultConfig(), decider, logger)
//	result, err := engine.Match(ctx, album, candidates)
//	if err != nil {
//	    // no partial result: nothing may be written downstream
//	}
type Engine struct {
	cfg     Config
	decider Decider
	logger  *slog.Logger
}

// NewEngine creates an Engine. A nil logger disables logging.
func NewEngine(cfg Config, decider Decider, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{cfg: cfg, decider: decider, logger: logger}
}

// Match computes the assignment of candidates onto the album's tracks.
//
// Preconditions: len(candidates) <= len(album.Tracks), enforced before any
// scoring; violation returns a *CardinalityError.
//
// On success every candidate appears in exactly one entry with status
// StatusAuto or StatusUserConfirmed and no two entries share a track. On
// any failure (user rejection, abort, cancellation) no Assignment is
// returned, so downstream writers can treat the result as all-or-nothing.
func (e *Engine) Match(ctx context.Context, album *model.CatalogAlbum, candidates []model.FileCandidate) (*Assignment, error) {
	if len(candidates) > len(album.Tracks) {
		return nil, &CardinalityError{Candidates: len(candidates), Tracks: len(album.Tracks)}
	}

	matrix, err := e.confidenceMatrix(ctx, album, candidates)
	if err != nil {
		return nil, err
	}

	entries, trackTaken := solve(matrix, e.cfg)
	for i := range entries {
		entries[i].Candidate = candidates[i]
	}
	if trackTaken == nil {
		trackTaken = make([]bool, len(album.Tracks))
	}

	auto := 0
	for _, entry := range entries {
		if entry.Status == StatusAuto {
			auto++
		}
	}
	e.logger.Info("automatic assignment complete",
		"candidates", len(candidates), "auto", auto, "unresolved", len(candidates)-auto)

	if err := e.disambiguate(ctx, album, candidates, matrix, entries, trackTaken); err != nil {
		return nil, err
	}

	return &Assignment{Album: album, Entries: entries}, nil
}

// confidenceMatrix scores every (candidate, track) pair. Rows are computed
// in parallel; the scorer is pure, so computation order cannot affect the
// final values the greedy assignment depends on.
func (e *Engine) confidenceMatrix(ctx context.Context, album *model.CatalogAlbum, candidates []model.FileCandidate) ([][]float64, error) {
	matrix := make([][]float64, len(candidates))

	workers := e.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range candidates {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			row := make([]float64, len(album.Tracks))
			for t, track := range album.Tracks {
				row[t] = Score(candidates[i].Label, track.Name)
			}
			matrix[i] = row
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return matrix, nil
}
