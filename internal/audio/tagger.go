package audio

import (
	"fmt"
	"strconv"

	"github.com/bogem/id3v2"
	"github.com/handiism/album-formatter/internal/model"
)

// TagEditAction defines how to handle individual ID3 tags.
//
// Each tag field can be configured independently to determine whether
// it should be modified, cleared, or left unchanged.
type TagEditAction int

const (
	// TagEmpty clears the tag value (sets to empty string).
	TagEmpty TagEditAction = iota

	// TagModify updates the tag with the value from the catalog.
	TagModify

	// TagDoNotModify leaves the existing tag value unchanged.
	TagDoNotModify
)

// TagConfig holds tagging configuration for each ID3 field.
//
// This allows fine-grained control over which tags are modified
// when processing matched MP3 files.
//
// Example:
//
//	cfg := &TagConfig{
//	    ModifyTags:  true,
//	    Artist:      TagModify,      // Update artist from the catalog
//	    Album:       TagModify,      // Update album title
//	    TrackTitle:  TagModify,      // Update title
//	    Genre:       TagModify,      // Update genre
//	    AlbumArtist: TagDoNotModify, // Keep existing album artist
//	}
type TagConfig struct {
	// ModifyTags is a master switch. If false, no string tags are modified.
	ModifyTags bool

	// Artist controls the TPE1 (Lead artist) frame.
	Artist TagEditAction

	// AlbumArtist controls the TPE2 (Album artist) frame.
	AlbumArtist TagEditAction

	// Album controls the TALB (Album title) frame.
	Album TagEditAction

	// Genre controls the TCON (Content type) frame.
	Genre TagEditAction

	// Year controls the TYER (Year) frame.
	Year TagEditAction

	// TrackNumber controls the TRCK (Track number) frame.
	TrackNumber TagEditAction

	// DiscNumber controls the TPOS (Part of a set) frame.
	DiscNumber TagEditAction

	// TrackTitle controls the TIT2 (Title) frame.
	TrackTitle TagEditAction
}

// DefaultTagConfig returns the default tag configuration.
//
// By default, all tags are set to TagModify, which overwrites them with
// catalog data.
func DefaultTagConfig() *TagConfig {
	return &TagConfig{
		ModifyTags:  true,
		Artist:      TagModify,
		AlbumArtist: TagModify,
		Album:       TagModify,
		Genre:       TagModify,
		Year:        TagModify,
		TrackNumber: TagModify,
		DiscNumber:  TagModify,
		TrackTitle:  TagModify,
	}
}

// Tagger writes ID3 tags to MP3 files.
//
// Tagger uses the id3v2 library to modify MP3 file metadata including:
//   - Artist, Album Artist, Album, Title, Genre
//   - Track Number (as "track/total on disc"), Disc Number ("disc/total")
//   - Year
//   - Cover Art (attached picture)
//
// Example:
//
//	tagger := NewTagger(DefaultTagConfig())
//	err := tagger.SaveTags(path, album, track, artworkBytes)
type Tagger struct {
	config *TagConfig
}

// NewTagger creates a new Tagger with the given configuration.
//
// If config is nil, DefaultTagConfig() is used.
func NewTagger(config *TagConfig) *Tagger {
	if config == nil {
		config = DefaultTagConfig()
	}
	return &Tagger{config: config}
}

// SaveTags writes ID3 tags to the MP3 file at path.
//
// This method:
//  1. Opens the existing MP3 file's tags (or creates empty tags if none exist)
//  2. Updates string tags based on TagConfig settings
//  3. Embeds cover art if artwork bytes are provided
//  4. Saves the modified tags to the file
//
// Parameters:
//   - path: The MP3 file to tag
//   - album: The album the track belongs to (provides album-level fields)
//   - track: The matched catalog track (provides title and position)
//   - artwork: JPEG image bytes for cover art (nil to skip artwork)
//
// Returns an error if the file cannot be opened or saved.
func (t *Tagger) SaveTags(path string, album *model.CatalogAlbum, track *model.CatalogTrack, artwork []byte) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("opening tags of %s: %w", path, err)
	}
	defer tag.Close()

	if t.config.ModifyTags {
		t.updateStringTags(tag, album, track)
	}

	if artwork != nil {
		t.updateArtwork(tag, artwork)
	}

	return tag.Save()
}

// updateStringTags updates text-based ID3 frames based on configuration.
func (t *Tagger) updateStringTags(tag *id3v2.Tag, album *model.CatalogAlbum, track *model.CatalogTrack) {
	// Artist (TPE1): track-specific artists take precedence over the
	// album artists (duets, featured guests).
	switch t.config.Artist {
	case TagEmpty:
		tag.SetArtist("")
	case TagModify:
		if line := track.ArtistLine(); line != "" {
			tag.SetArtist(line)
		} else {
			tag.SetArtist(album.ArtistLine())
		}
	}

	// Album Artist (TPE2)
	switch t.config.AlbumArtist {
	case TagEmpty:
		tag.DeleteFrames("TPE2")
	case TagModify:
		tag.AddTextFrame("TPE2", id3v2.EncodingUTF8, album.ArtistLine())
	}

	// Album (TALB)
	switch t.config.Album {
	case TagEmpty:
		tag.SetAlbum("")
	case TagModify:
		tag.SetAlbum(album.Name)
	}

	// Genre (TCON)
	switch t.config.Genre {
	case TagEmpty:
		tag.SetGenre("")
	case TagModify:
		tag.SetGenre(album.Genre)
	}

	// Year (TYER) - ID3v2.3
	switch t.config.Year {
	case TagEmpty:
		tag.DeleteFrames("TYER")
	case TagModify:
		if album.Year > 0 {
			tag.AddTextFrame("TYER", id3v2.EncodingUTF8, strconv.Itoa(album.Year))
		}
	}

	// Track Number (TRCK), written as "track/total tracks on disc"
	switch t.config.TrackNumber {
	case TagEmpty:
		tag.DeleteFrames("TRCK")
	case TagModify:
		tag.AddTextFrame("TRCK", id3v2.EncodingUTF8,
			fmt.Sprintf("%d/%d", track.Number, album.DiscTrackCount(track.Disc)))
	}

	// Disc Number (TPOS), written as "disc/total discs"
	switch t.config.DiscNumber {
	case TagEmpty:
		tag.DeleteFrames("TPOS")
	case TagModify:
		tag.AddTextFrame("TPOS", id3v2.EncodingUTF8,
			fmt.Sprintf("%d/%d", track.Disc, album.TotalDiscs()))
	}

	// Track Title (TIT2)
	switch t.config.TrackTitle {
	case TagEmpty:
		tag.SetTitle("")
	case TagModify:
		tag.SetTitle(track.Name)
	}
}

// updateArtwork embeds cover art as an attached picture frame.
func (t *Tagger) updateArtwork(tag *id3v2.Tag, artwork []byte) {
	// Remove any existing cover pictures
	tag.DeleteFrames(tag.CommonID("Attached picture"))

	pic := id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    "image/jpeg",
		PictureType: id3v2.PTFrontCover,
		Description: "Cover",
		Picture:     artwork,
	}
	tag.AddAttachedPicture(pic)
}
