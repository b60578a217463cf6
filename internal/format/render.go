package format

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/handiism/album-formatter/internal/model"
)

// Default templates used when the configuration does not override them.
const (
	// DefaultFolderTemplate names album folders after the album title.
	DefaultFolderTemplate = "%a"

	// DefaultSongTemplate names song files after the track title.
	DefaultSongTemplate = "%t"
)

// Context carries the album and track a template is rendered against.
//
// Track may be nil for folder templates; track-level tokens then render as
// empty strings.
type Context struct {
	Album *model.CatalogAlbum
	Track *model.CatalogTrack
}

// Render expands a template of literal characters and two-character tokens
// ("%" followed by a letter) against the given context, then sanitizes the
// result for use as a file or folder name.
//
// Recognized tokens:
//
//	%a  album name
//	%r  album artist(s), joined with ", "
//	%g  genre
//	%y  release year
//	%t  track name
//	%s  additional track artist(s), joined with ", "
//	%n  track number, zero-padded to two digits
//	%d  disc number
//
// Unrecognized tokens pass through literally:
//
//	Render("%d.%n - %t", ctx) // "1.01 - Wanna Be Startin' Somethin'"
//	Render("100%z", ctx)      // "100%z"
func Render(template string, ctx Context) string {
	var sb strings.Builder

	for i := 0; i < len(template); i++ {
		c := template[i]
		if c != '%' || i+1 >= len(template) {
			sb.WriteByte(c)
			continue
		}

		value, ok := expand(template[i+1], ctx)
		if !ok {
			sb.WriteByte(c)
			sb.WriteByte(template[i+1])
			i++
			continue
		}
		sb.WriteString(value)
		i++
	}

	return Sanitize(sb.String())
}

// expand returns the value for a single token letter, or ok=false for an
// unrecognized letter.
func expand(letter byte, ctx Context) (string, bool) {
	switch letter {
	case 'a':
		return ctx.Album.Name, true
	case 'r':
		return ctx.Album.ArtistLine(), true
	case 'g':
		return ctx.Album.Genre, true
	case 'y':
		return fmt.Sprintf("%d", ctx.Album.Year), true
	case 't':
		if ctx.Track == nil {
			return "", true
		}
		return ctx.Track.Name, true
	case 's':
		if ctx.Track == nil {
			return "", true
		}
		return ctx.Track.ArtistLine(), true
	case 'n':
		if ctx.Track == nil {
			return "", true
		}
		return fmt.Sprintf("%02d", ctx.Track.Number), true
	case 'd':
		if ctx.Track == nil {
			return "", true
		}
		return fmt.Sprintf("%d", ctx.Track.Disc), true
	default:
		return "", false
	}
}

var (
	invalidChars  = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots  = regexp.MustCompile(`\.+$`)
	multipleSpace = regexp.MustCompile(`\s+`)
)

// Sanitize removes or replaces characters that are invalid in file and
// folder names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars) are replaced with underscore
//   - Trailing dots are removed (Windows limitation)
//   - Multiple whitespace is collapsed to single space
//   - Leading and trailing whitespace is removed
//
// Example:
//
//	Sanitize("Song: Part 1/2") // "Song_ Part 1_2"
func Sanitize(name string) string {
	name = invalidChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = multipleSpace.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}
