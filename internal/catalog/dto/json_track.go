package dto

// JSONTrack is one MusicRecording within the album's ld+json track list.
type JSONTrack struct {
	Name     string   `json:"name"`
	ByArtist NameList `json:"byArtist"`
	Disc     *int     `json:"disc"`
}

// trackArtists returns the track's own artists, or nil when they are the
// same as the album artists (the model's convention for "no extra
// artists").
func (jt *JSONTrack) trackArtists(albumArtists NameList) []string {
	if len(jt.ByArtist) == 0 {
		return nil
	}
	if sameNames(jt.ByArtist, albumArtists) {
		return nil
	}
	return jt.ByArtist
}

func sameNames(a, b NameList) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
