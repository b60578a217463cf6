package format

import (
	"testing"

	"github.com/handiism/album-formatter/internal/model"
)

func testContext() Context {
	album := &model.CatalogAlbum{
		Name:    "Thriller",
		Artists: []string{"Michael Jackson"},
		Genre:   "Pop",
		Year:    1982,
	}
	track := &model.CatalogTrack{
		Name:   "Wanna Be Startin' Somethin'",
		Number: 1,
		Disc:   1,
	}
	return Context{Album: album, Track: track}
}

func TestRender(t *testing.T) {
	ctx := testContext()

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"default song", "%t", "Wanna Be Startin' Somethin'"},
		{"default folder", "%a", "Thriller"},
		{"disc and track", "%d.%n - %t", "1.01 - Wanna Be Startin' Somethin'"},
		{"album artist genre year", "%r - %a (%g, %y)", "Michael Jackson - Thriller (Pop, 1982)"},
		{"unrecognized token passes through", "100%z", "100%z"},
		{"trailing percent is literal", "title%", "title%"},
		{"zero padding", "%n", "01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.template, ctx); got != tt.want {
				t.Errorf("Render(%q) = %q, want %q", tt.template, got, tt.want)
			}
		})
	}
}

func TestRender_FolderContextWithoutTrack(t *testing.T) {
	ctx := testContext()
	ctx.Track = nil

	if got := Render("%a", ctx); got != "Thriller" {
		t.Errorf("Render(%%a) = %q, want %q", got, "Thriller")
	}
	// Track tokens degrade to empty rather than panicking.
	if got := Render("%a %t", ctx); got != "Thriller" {
		t.Errorf("Render(%%a %%t) = %q, want %q", got, "Thriller")
	}
}

func TestRender_TrackArtists(t *testing.T) {
	ctx := testContext()
	ctx.Track = &model.CatalogTrack{
		Name:    "The Girl Is Mine",
		Artists: []string{"Michael Jackson", "Paul McCartney"},
		Number:  3,
		Disc:    1,
	}

	want := "The Girl Is Mine (Michael Jackson, Paul McCartney)"
	if got := Render("%t (%s)", ctx); got != want {
		t.Errorf("Render(%%t (%%s)) = %q, want %q", got, want)
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"normal name", "normal name"},
		{"name:with:colons", "name_with_colons"},
		{"name<with>brackets", "name_with_brackets"},
		{"name/with\\slashes", "name_with_slashes"},
		{"name|with|pipes", "name_with_pipes"},
		{"name?with*wildcards", "name_with_wildcards"},
		{"name\"with\"quotes", "name_with_quotes"},
		{"trailing dots...", "trailing dots"},
		{"multiple   spaces", "multiple spaces"},
		{"  surrounding spaces  ", "surrounding spaces"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
