package dto

import (
	"encoding/json"
	"regexp"
	"strconv"
	"time"

	"github.com/handiism/album-formatter/internal/model"
)

var artworkDimensions = regexp.MustCompile(`\d+x\d+(bb)?`)

// coverArtSize is the fixed square rendition requested for cover art.
const coverArtSize = "512x512bb"

// NameList handles schema.org fields that may be a string, a list of
// strings, an object with a "name" property, or a list of such objects.
type NameList []string

// UnmarshalJSON accepts all the shapes Apple emits for byArtist and genre.
func (n *NameList) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*n = NameList{s}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*n = NameList(list)
		return nil
	}

	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err == nil && obj.Name != "" {
		*n = NameList{obj.Name}
		return nil
	}

	var objs []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &objs); err != nil {
		return err
	}
	*n = nil
	for _, o := range objs {
		if o.Name != "" {
			*n = append(*n, o.Name)
		}
	}
	return nil
}

// JSONAlbum is the deserialized schema.org MusicAlbum block embedded in an
// Apple Music album page.
type JSONAlbum struct {
	Type          string      `json:"@type"`
	Name          string      `json:"name"`
	ByArtist      NameList    `json:"byArtist"`
	Genre         NameList    `json:"genre"`
	DatePublished string      `json:"datePublished"`
	Image         string      `json:"image"`
	Tracks        []JSONTrack `json:"tracks"`
}

// IsAlbum reports whether this ld+json block describes a music album.
func (ja *JSONAlbum) IsAlbum() bool {
	return ja.Type == "MusicAlbum"
}

// ToAlbum converts the DTO into the immutable catalog model.
//
// Track numbering restarts per disc; blocks without explicit disc info are
// treated as a single disc. Track artists identical to the album artists
// collapse to nil, meaning "same as album artists".
func (ja *JSONAlbum) ToAlbum() *model.CatalogAlbum {
	album := &model.CatalogAlbum{
		Name:       ja.Name,
		Artists:    ja.ByArtist,
		Genre:      ja.primaryGenre(),
		Year:       ja.year(),
		ArtworkURL: upgradeArtworkURL(ja.Image),
	}

	numberOnDisc := make(map[int]int)
	for _, jt := range ja.Tracks {
		disc := 1
		if jt.Disc != nil && *jt.Disc > 0 {
			disc = *jt.Disc
		}
		numberOnDisc[disc]++

		album.Tracks = append(album.Tracks, model.CatalogTrack{
			Name:    jt.Name,
			Artists: jt.trackArtists(ja.ByArtist),
			Number:  numberOnDisc[disc],
			Disc:    disc,
		})
	}

	return album
}

func (ja *JSONAlbum) primaryGenre() string {
	for _, g := range ja.Genre {
		if g != "" && g != "Music" {
			return g
		}
	}
	return ""
}

// year extracts the release year from datePublished, which Apple emits in
// several shapes ("1982-11-29", "1982", RFC 3339).
func (ja *JSONAlbum) year() int {
	formats := []string{
		"2006-01-02",
		"2006",
		time.RFC3339,
	}
	for _, format := range formats {
		if t, err := time.Parse(format, ja.DatePublished); err == nil {
			return t.Year()
		}
	}
	if len(ja.DatePublished) >= 4 {
		if y, err := strconv.Atoi(ja.DatePublished[:4]); err == nil {
			return y
		}
	}
	return 0
}

// upgradeArtworkURL rewrites the dimension segment of the artwork URL to
// the fixed 512x512 rendition. Apple serves the same asset at any
// requested size, so the page's thumbnail URL upgrades in place.
func upgradeArtworkURL(url string) string {
	if url == "" {
		return ""
	}
	return artworkDimensions.ReplaceAllString(url, coverArtSize)
}
