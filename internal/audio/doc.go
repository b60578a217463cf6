// Package audio handles the local MP3 files: deriving matching labels from
// filenames or embedded titles, and writing catalog metadata back as ID3
// tags once matching is resolved.
package audio
