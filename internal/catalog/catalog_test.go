package catalog

import (
	"testing"
)

const albumPage = `<!DOCTYPE html>
<html>
<head>
<script type="application/ld+json">
{"@context":"https://schema.org","@type":"BreadcrumbList","itemListElement":[]}
</script>
<script id="schema:music-album" type="application/ld+json">
{
  "@context": "https://schema.org",
  "@type": "MusicAlbum",
  "name": "Thriller",
  "byArtist": [{"@type": "MusicGroup", "name": "Michael Jackson"}],
  "genre": ["Pop", "Music"],
  "datePublished": "1982-11-29",
  "image": "https://is1-ssl.mzstatic.com/image/thumb/Music/thriller/296x296bb.webp",
  "tracks": [
    {"@type": "MusicRecording", "name": "Wanna Be Startin&#39; Somethin&#39;"},
    {"@type": "MusicRecording", "name": "Baby Be Mine"},
    {"@type": "MusicRecording", "name": "The Girl Is Mine", "byArtist": [{"@type": "MusicGroup", "name": "Michael Jackson"}, {"@type": "MusicGroup", "name": "Paul McCartney"}]}
  ]
}
</script>
</head>
<body></body>
</html>`

func TestParseAlbumPage(t *testing.T) {
	album, err := ParseAlbumPage(albumPage)
	if err != nil {
		t.Fatalf("ParseAlbumPage() error = %v", err)
	}

	if album.Name != "Thriller" {
		t.Errorf("Name = %q, want %q", album.Name, "Thriller")
	}
	if album.ArtistLine() != "Michael Jackson" {
		t.Errorf("ArtistLine() = %q, want %q", album.ArtistLine(), "Michael Jackson")
	}
	if album.Genre != "Pop" {
		t.Errorf("Genre = %q, want %q (generic 'Music' entry skipped)", album.Genre, "Pop")
	}
	if album.Year != 1982 {
		t.Errorf("Year = %d, want 1982", album.Year)
	}

	wantArtwork := "https://is1-ssl.mzstatic.com/image/thumb/Music/thriller/512x512bb.webp"
	if album.ArtworkURL != wantArtwork {
		t.Errorf("ArtworkURL = %q, want %q", album.ArtworkURL, wantArtwork)
	}

	if len(album.Tracks) != 3 {
		t.Fatalf("len(Tracks) = %d, want 3", len(album.Tracks))
	}

	// HTML entities in the embedded JSON are unescaped.
	if album.Tracks[0].Name != "Wanna Be Startin' Somethin'" {
		t.Errorf("Tracks[0].Name = %q", album.Tracks[0].Name)
	}

	for i, track := range album.Tracks {
		if track.Number != i+1 {
			t.Errorf("Tracks[%d].Number = %d, want %d", i, track.Number, i+1)
		}
		if track.Disc != 1 {
			t.Errorf("Tracks[%d].Disc = %d, want 1", i, track.Disc)
		}
	}

	// Track artists identical to the album collapse to "same as album";
	// genuinely different track artists are preserved.
	if len(album.Tracks[1].Artists) != 0 {
		t.Errorf("Tracks[1].Artists = %v, want empty", album.Tracks[1].Artists)
	}
	if got := album.Tracks[2].ArtistLine(); got != "Michael Jackson, Paul McCartney" {
		t.Errorf("Tracks[2].ArtistLine() = %q", got)
	}
}

func TestParseAlbumPage_NoAlbumData(t *testing.T) {
	if _, err := ParseAlbumPage("<html><body>nothing here</body></html>"); err == nil {
		t.Error("expected error for page without album data")
	}
}

func TestParseAlbumPage_EmptyTrackList(t *testing.T) {
	page := `<script type="application/ld+json">{"@type":"MusicAlbum","name":"Empty","tracks":[]}</script>`
	if _, err := ParseAlbumPage(page); err == nil {
		t.Error("expected error for album without tracks")
	}
}

func TestParseAlbumPage_MultiDisc(t *testing.T) {
	page := `<script type="application/ld+json">
{"@type":"MusicAlbum","name":"Set","byArtist":{"name":"Artist"},"datePublished":"1999","tracks":[
  {"name":"One","disc":1},
  {"name":"Two","disc":1},
  {"name":"Three","disc":2}
]}
</script>`

	album, err := ParseAlbumPage(page)
	if err != nil {
		t.Fatalf("ParseAlbumPage() error = %v", err)
	}

	if album.Year != 1999 {
		t.Errorf("Year = %d, want 1999", album.Year)
	}
	if album.TotalDiscs() != 2 {
		t.Errorf("TotalDiscs() = %d, want 2", album.TotalDiscs())
	}

	// Numbering restarts per disc.
	if album.Tracks[2].Disc != 2 || album.Tracks[2].Number != 1 {
		t.Errorf("Tracks[2] = disc %d track %d, want disc 2 track 1",
			album.Tracks[2].Disc, album.Tracks[2].Number)
	}
	if album.DiscTrackCount(1) != 2 || album.DiscTrackCount(2) != 1 {
		t.Errorf("DiscTrackCount = %d/%d, want 2/1",
			album.DiscTrackCount(1), album.DiscTrackCount(2))
	}
}
