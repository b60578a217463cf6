package match

import "github.com/handiism/album-formatter/internal/model"

// Status describes how a candidate's match entry was (or was not) resolved.
type Status int

const (
	// StatusUnmatched means no automatic assignment was accepted; the
	// entry awaits disambiguation.
	StatusUnmatched Status = iota

	// StatusAuto means the solver accepted the assignment automatically.
	StatusAuto

	// StatusUserConfirmed means the assignment was chosen by the user
	// during disambiguation.
	StatusUserConfirmed

	// StatusRejected means the user declined to assign any track. This is
	// terminal and fails the whole run.
	StatusRejected
)

// String returns the status name for logs and tables.
func (s Status) String() string {
	switch s {
	case StatusAuto:
		return "auto"
	case StatusUserConfirmed:
		return "confirmed"
	case StatusRejected:
		return "rejected"
	default:
		return "unmatched"
	}
}

// Entry is the resolution record for a single candidate.
type Entry struct {
	// Candidate is the local file being matched.
	Candidate model.FileCandidate

	// TrackIndex is the index of the assigned track in the album's track
	// list, or -1 while unassigned.
	TrackIndex int

	// Confidence is the score of the assigned pair, in [0, 1]. Zero while
	// unassigned.
	Confidence float64

	// Status is the entry's resolution state.
	Status Status
}

// Assignment is the engine's final output: a complete mapping of every
// candidate onto a distinct catalog track, plus the album the mapping was
// built against. Built once per run and immutable thereafter.
type Assignment struct {
	Album   *model.CatalogAlbum
	Entries []Entry
}

// Track returns the catalog track assigned to the given entry.
func (a *Assignment) Track(e Entry) model.CatalogTrack {
	return a.Album.Tracks[e.TrackIndex]
}

// AutoCount returns the number of entries resolved without a prompt.
func (a *Assignment) AutoCount() int {
	count := 0
	for _, e := range a.Entries {
		if e.Status == StatusAuto {
			count++
		}
	}
	return count
}
