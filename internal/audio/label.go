package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bogem/id3v2"
	"github.com/handiism/album-formatter/internal/model"
)

// LabelSource selects where the matching label of a local file comes from.
type LabelSource string

const (
	// LabelFromFilename uses the filename without its extension.
	LabelFromFilename LabelSource = "filename"

	// LabelFromTags uses the embedded ID3 title, falling back to the
	// filename when the file carries no title frame.
	LabelFromTags LabelSource = "tags"
)

// ExtractCandidates lists the MP3 files in dir and derives a matching label
// for each one according to source.
//
// Files are returned in lexicographic filename order so repeated runs over
// the same directory see the same candidate order. Non-MP3 files are
// ignored.
func ExtractCandidates(dir string, source LabelSource) ([]model.FileCandidate, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	var candidates []model.FileCandidate
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".mp3") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		label := stem(entry.Name())
		if source == LabelFromTags {
			if title := embeddedTitle(path); title != "" {
				label = title
			}
		}

		candidates = append(candidates, model.FileCandidate{Label: label, Path: path})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Path < candidates[j].Path
	})
	return candidates, nil
}

// stem returns the filename without its extension.
func stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// embeddedTitle reads the TIT2 frame of an MP3 file. Returns "" when the
// file has no readable title.
func embeddedTitle(path string) string {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return ""
	}
	defer tag.Close()
	return strings.TrimSpace(tag.Title())
}
