package catalog

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/handiism/album-formatter/internal/catalog/dto"
	"github.com/handiism/album-formatter/internal/model"
)

// ParseAlbumPage extracts the canonical album description from an Apple
// Music album page.
//
// Apple embeds the album data as a schema.org MusicAlbum JSON block:
//
//	<script id="schema:music-album" type="application/ld+json">{...}</script>
//
// The page may carry several ld+json blocks (breadcrumbs, organization
// info); ParseAlbumPage scans them in order and uses the first MusicAlbum.
//
// Returns an error if no MusicAlbum block can be found or the block fails
// to parse, or if the album has no tracks.
func ParseAlbumPage(htmlContent string) (*model.CatalogAlbum, error) {
	remaining := htmlContent
	for {
		block, rest, err := nextJSONBlock(remaining)
		if err != nil {
			return nil, fmt.Errorf("could not retrieve album data: %w", err)
		}
		remaining = rest

		var jsonAlbum dto.JSONAlbum
		if err := json.Unmarshal([]byte(block), &jsonAlbum); err != nil {
			// Not every ld+json block on the page is album data.
			continue
		}
		if !jsonAlbum.IsAlbum() {
			continue
		}

		album := jsonAlbum.ToAlbum()
		if len(album.Tracks) == 0 {
			return nil, fmt.Errorf("album %q has no tracks", album.Name)
		}
		return album, nil
	}
}

// nextJSONBlock returns the body of the next ld+json script element and the
// remainder of the document after it.
func nextJSONBlock(htmlContent string) (block, rest string, err error) {
	const marker = `application/ld+json`
	const closeTag = `</script>`

	markerIdx := strings.Index(htmlContent, marker)
	if markerIdx == -1 {
		return "", "", fmt.Errorf("no album data block in page")
	}

	after := htmlContent[markerIdx+len(marker):]
	bodyStart := strings.Index(after, ">")
	if bodyStart == -1 {
		return "", "", fmt.Errorf("malformed album data block")
	}

	body := after[bodyStart+1:]
	bodyEnd := strings.Index(body, closeTag)
	if bodyEnd == -1 {
		return "", "", fmt.Errorf("unterminated album data block")
	}

	return html.UnescapeString(strings.TrimSpace(body[:bodyEnd])), body[bodyEnd+len(closeTag):], nil
}
