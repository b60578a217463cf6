package model

import "strings"

// CatalogAlbum is the canonical description of an album as retrieved from
// the external catalog (an Apple Music album page).
//
// CatalogAlbum is immutable once built: the matching engine and all
// downstream consumers (tagger, renamer) read from it but never modify it.
//
// Example:
//
//	album := &model.CatalogAlbum{
//	    Name:    "Thriller",
//	    Artists: []string{"Michael Jackson"},
//	    Genre:   "Pop",
//	    Year:    1982,
//	    Tracks:  tracks,
//	}
//	fmt.Println(album.ArtistLine()) // "Michael Jackson"
type CatalogAlbum struct {
	// Name is the album title.
	Name string

	// Artists is the ordered list of album artists.
	Artists []string

	// Genre is the primary genre reported by the catalog.
	Genre string

	// Year is the release year.
	Year int

	// ArtworkURL is the URL of the cover art at the target resolution.
	// Empty string means no artwork is available.
	ArtworkURL string

	// Tracks is the ordered list of canonical tracks. Track identity is
	// positional: the index in this slice is the track's identity for the
	// matching engine.
	Tracks []CatalogTrack
}

// ArtistLine returns the album artists joined with ", ", the form used for
// the TPE2 frame and the %r format token.
func (a *CatalogAlbum) ArtistLine() string {
	return strings.Join(a.Artists, ", ")
}

// HasArtwork returns true if the album has cover art available for download.
func (a *CatalogAlbum) HasArtwork() bool {
	return a.ArtworkURL != ""
}

// TotalDiscs returns the highest disc number across all tracks, or 1 for an
// album with no tracks.
func (a *CatalogAlbum) TotalDiscs() int {
	total := 1
	for _, t := range a.Tracks {
		if t.Disc > total {
			total = t.Disc
		}
	}
	return total
}

// DiscTrackCount returns the number of tracks on the given disc, the
// denominator of the TRCK (n/total) frame.
func (a *CatalogAlbum) DiscTrackCount(disc int) int {
	count := 0
	for _, t := range a.Tracks {
		if t.Disc == disc {
			count++
		}
	}
	return count
}
