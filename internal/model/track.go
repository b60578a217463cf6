package model

import "strings"

// CatalogTrack is one canonical track descriptor within a CatalogAlbum.
//
// CatalogTrack is immutable. The (Disc, Number) pair is unique across the
// album and is expected, but not required, to match the track's position in
// CatalogAlbum.Tracks.
type CatalogTrack struct {
	// Name is the canonical track title.
	Name string

	// Artists is the ordered list of track-specific artists. An empty
	// slice means the track artists are the same as the album artists.
	Artists []string

	// Number is the track number on its disc (1-indexed).
	Number int

	// Disc is the disc number (1-indexed, 1 for single-disc albums).
	Disc int
}

// ArtistLine returns the track artists joined with ", ". Empty string when
// the track has no artists of its own.
func (t CatalogTrack) ArtistLine() string {
	return strings.Join(t.Artists, ", ")
}

// FileCandidate represents one local audio file to be matched against the
// catalog. Only the Label takes part in matching; Path is an opaque handle
// used by the tagger and renamer once the match is resolved.
type FileCandidate struct {
	// Label is the text used for matching: the filename stem or the
	// embedded track title, depending on the configured label source.
	Label string

	// Path is the absolute path of the underlying file.
	Path string
}
