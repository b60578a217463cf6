package match

import (
	"context"
	"errors"
	"testing"

	"github.com/handiism/album-formatter/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedDecider replays a fixed sequence of decisions. Each step either
// selects the option whose track name matches Pick, or declines.
type scriptedDecider struct {
	steps   []scriptedStep
	prompts []prompt
}

type scriptedStep struct {
	Pick    string
	Decline bool
}

type prompt struct {
	Label   string
	Options []Option
}

func (d *scriptedDecider) Resolve(_ context.Context, candidate model.FileCandidate, options []Option) (int, bool, error) {
	d.prompts = append(d.prompts, prompt{Label: candidate.Label, Options: options})

	if len(d.steps) == 0 {
		return 0, false, errors.New("unexpected prompt for " + candidate.Label)
	}
	step := d.steps[0]
	d.steps = d.steps[1:]

	if step.Decline {
		return 0, false, nil
	}
	for i, opt := range options {
		if opt.Track.Name == step.Pick {
			return i, true, nil
		}
	}
	return 0, false, errors.New("scripted track not in shortlist: " + step.Pick)
}

func thrillerAlbum(names ...string) *model.CatalogAlbum {
	album := &model.CatalogAlbum{
		Name:    "Thriller",
		Artists: []string{"Michael Jackson"},
		Genre:   "Pop",
		Year:    1982,
	}
	for i, name := range names {
		album.Tracks = append(album.Tracks, model.CatalogTrack{
			Name:   name,
			Number: i + 1,
			Disc:   1,
		})
	}
	return album
}

func candidates(labels ...string) []model.FileCandidate {
	out := make([]model.FileCandidate, len(labels))
	for i, label := range labels {
		out[i] = model.FileCandidate{Label: label, Path: "/music/" + label + ".mp3"}
	}
	return out
}

func TestEngine_AutoMatchesNoisyLabels(t *testing.T) {
	album := thrillerAlbum("Wanna Be Startin' Somethin'", "Baby Be Mine", "The Girl Is Mine")
	files := candidates("02 Baby Be Mine", "01 Wanna Be Startin Somethin", "03 The Girl Is Mine")

	decider := &scriptedDecider{}
	engine := NewEngine(DefaultConfig(), decider, nil)

	result, err := engine.Match(context.Background(), album, files)
	require.NoError(t, err)
	require.Len(t, result.Entries, 3)

	assert.Empty(t, decider.prompts, "unambiguous matches must not prompt")

	// Track numbers come from the catalog, not the filename prefix.
	wantTracks := map[string]string{
		"02 Baby Be Mine":              "Baby Be Mine",
		"01 Wanna Be Startin Somethin": "Wanna Be Startin' Somethin'",
		"03 The Girl Is Mine":          "The Girl Is Mine",
	}
	for _, entry := range result.Entries {
		assert.Equal(t, StatusAuto, entry.Status)
		assert.Equal(t, wantTracks[entry.Candidate.Label], result.Track(entry).Name)
		assert.GreaterOrEqual(t, entry.Confidence, 0.8)
	}
}

func TestEngine_TrackUniqueness(t *testing.T) {
	album := thrillerAlbum("Wanna Be Startin' Somethin'", "Baby Be Mine", "The Girl Is Mine", "Thriller")
	files := candidates("Thriller", "Baby Be Mine", "The Girl Is Mine")

	engine := NewEngine(DefaultConfig(), &scriptedDecider{}, nil)
	result, err := engine.Match(context.Background(), album, files)
	require.NoError(t, err)

	seen := map[int]bool{}
	for _, entry := range result.Entries {
		assert.False(t, seen[entry.TrackIndex], "track assigned twice")
		seen[entry.TrackIndex] = true
		assert.Contains(t, []Status{StatusAuto, StatusUserConfirmed}, entry.Status)
	}
}

func TestEngine_CardinalityErrorBeforeScoring(t *testing.T) {
	album := thrillerAlbum("Only Track")
	files := candidates("a", "b")

	engine := NewEngine(DefaultConfig(), &scriptedDecider{}, nil)
	_, err := engine.Match(context.Background(), album, files)

	var cardErr *CardinalityError
	require.ErrorAs(t, err, &cardErr)
	assert.Equal(t, 2, cardErr.Candidates)
	assert.Equal(t, 1, cardErr.Tracks)
}

func TestEngine_ContestedPairEscalated(t *testing.T) {
	// Two files both plausibly matching the single "Track A" slot: the
	// contested entry is prompted with both tracks in its shortlist;
	// whichever file claims "Track A", the other cannot be assigned and
	// the run fails once the user declines its implausible shortlist.
	album := thrillerAlbum("Track A", "Completely Different Song")
	files := candidates("Track A (Live)", "Track A")

	decider := &scriptedDecider{steps: []scriptedStep{
		{Pick: "Track A"},
		{Decline: true},
	}}
	engine := NewEngine(DefaultConfig(), decider, nil)

	_, err := engine.Match(context.Background(), album, files)

	var unresolved *UnresolvedError
	require.ErrorAs(t, err, &unresolved)

	require.NotEmpty(t, decider.prompts)
	first := decider.prompts[0]
	names := make([]string, 0, len(first.Options))
	for _, opt := range first.Options {
		names = append(names, opt.Track.Name)
	}
	assert.Contains(t, names, "Track A")
	assert.Contains(t, names, "Completely Different Song")
}

func TestEngine_UserConfirmedSelection(t *testing.T) {
	album := thrillerAlbum("Human Nature", "Beat It")
	files := candidates("totally unrelated label")

	decider := &scriptedDecider{steps: []scriptedStep{{Pick: "Beat It"}}}
	engine := NewEngine(DefaultConfig(), decider, nil)

	result, err := engine.Match(context.Background(), album, files)
	require.NoError(t, err)

	require.Len(t, result.Entries, 1)
	assert.Equal(t, StatusUserConfirmed, result.Entries[0].Status)
	assert.Equal(t, "Beat It", result.Track(result.Entries[0]).Name)
}

func TestEngine_DeclineFailsRun(t *testing.T) {
	album := thrillerAlbum("Human Nature", "Beat It")
	files := candidates("totally unrelated label")

	decider := &scriptedDecider{steps: []scriptedStep{{Decline: true}}}
	engine := NewEngine(DefaultConfig(), decider, nil)

	result, err := engine.Match(context.Background(), album, files)
	assert.Nil(t, result)

	var unresolved *UnresolvedError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "totally unrelated label", unresolved.Label)
}

func TestEngine_DeciderErrorAborts(t *testing.T) {
	album := thrillerAlbum("Human Nature", "Beat It")
	files := candidates("totally unrelated label")

	// No scripted steps: the decider errors on the first prompt.
	engine := NewEngine(DefaultConfig(), &scriptedDecider{}, nil)

	result, err := engine.Match(context.Background(), album, files)
	assert.Nil(t, result)
	assert.Error(t, err)
}

func TestEngine_AutoPromotionAfterResolution(t *testing.T) {
	// Both files match their tracks well but the two tracks are near
	// duplicates, so both entries are contested. Resolving the first
	// leaves the second with a single plausible option, which promotes
	// without a second prompt.
	album := thrillerAlbum("Thriller", "Thriller (Instrumental)")
	files := candidates("Thriller", "Thriller (Instrumental)")

	decider := &scriptedDecider{steps: []scriptedStep{{Pick: "Thriller"}}}
	engine := NewEngine(DefaultConfig(), decider, nil)

	result, err := engine.Match(context.Background(), album, files)
	require.NoError(t, err)

	assert.Len(t, decider.prompts, 1, "second entry should auto-promote")

	seen := map[int]bool{}
	for _, entry := range result.Entries {
		assert.False(t, seen[entry.TrackIndex])
		seen[entry.TrackIndex] = true
	}
}

func TestSolve_BelowThresholdUnmatched(t *testing.T) {
	matrix := [][]float64{
		{0.3, 0.2},
		{0.1, 0.25},
	}
	entries, taken := solve(matrix, DefaultConfig())

	for _, e := range entries {
		assert.Equal(t, StatusUnmatched, e.Status)
		assert.Equal(t, -1, e.TrackIndex)
	}
	for _, tk := range taken {
		assert.False(t, tk)
	}
}

func TestSolve_GlobalGreedyAvoidsStarvation(t *testing.T) {
	// Candidate 0 matches both tracks decently, candidate 1 only track 0.
	// Per-candidate greedy in index order would hand track 0 to candidate
	// 0; global order assigns the strongest pair first and leaves track 0
	// for candidate 1.
	matrix := [][]float64{
		{0.85, 0.95},
		{0.9, 0.1},
	}
	entries, _ := solve(matrix, DefaultConfig())

	require.Equal(t, StatusAuto, entries[0].Status)
	require.Equal(t, StatusAuto, entries[1].Status)
	assert.Equal(t, 1, entries[0].TrackIndex)
	assert.Equal(t, 0, entries[1].TrackIndex)
}
