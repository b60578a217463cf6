// Package model defines the core data structures shared across the
// album-formatter application.
//
// # CatalogAlbum and CatalogTrack
//
// CatalogAlbum describes an album as retrieved from Apple Music: album
// name, artists, genre, year, cover art URL and the ordered track list.
// Both types are immutable value types; the matching engine identifies
// tracks by their index in CatalogAlbum.Tracks.
//
//	album.ArtistLine()       // "Artist A, Artist B"
//	album.DiscTrackCount(1)  // tracks on disc 1
//
// # FileCandidate
//
// FileCandidate is a local audio file reduced to the single text label used
// for matching, plus the file path used later for tagging and renaming.
package model
