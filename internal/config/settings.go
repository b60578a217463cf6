package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/handiism/album-formatter/internal/audio"
	"github.com/handiism/album-formatter/internal/format"
	"github.com/handiism/album-formatter/internal/match"
)

// Settings holds all configuration options.
type Settings struct {
	// Matching settings
	AutoAcceptThreshold float64 `json:"auto_accept_threshold"`
	TieMargin           float64 `json:"tie_margin"`
	MatchWorkers        int     `json:"match_workers"`
	LabelSource         string  `json:"label_source"` // filename, tags

	// Naming settings
	FolderTemplate    string `json:"folder_template"`
	SongTemplate      string `json:"song_template"`
	PreserveAlbumName bool   `json:"preserve_album_name"`
	PreserveSongNames bool   `json:"preserve_song_names"`

	// Tag settings
	ModifyTags   bool `json:"modify_tags"`
	EmbedArtwork bool `json:"embed_artwork"`
	CoverArtSize int  `json:"cover_art_size"`

	// Network settings
	HTTPTimeoutSeconds int `json:"http_timeout_seconds"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		AutoAcceptThreshold: 0.8,
		TieMargin:           0.05,
		LabelSource:         string(audio.LabelFromFilename),

		FolderTemplate: format.DefaultFolderTemplate,
		SongTemplate:   format.DefaultSongTemplate,

		ModifyTags:   true,
		EmbedArtwork: true,
		CoverArtSize: 512,

		HTTPTimeoutSeconds: 60,
	}
}

// Load reads settings from a JSON file. A missing file yields defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, settings.Validate()
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate rejects settings the pipeline cannot run with.
func (s *Settings) Validate() error {
	if s.AutoAcceptThreshold <= 0 || s.AutoAcceptThreshold > 1 {
		return fmt.Errorf("auto_accept_threshold must be in (0, 1], got %v", s.AutoAcceptThreshold)
	}
	if s.TieMargin < 0 || s.TieMargin >= 1 {
		return fmt.Errorf("tie_margin must be in [0, 1), got %v", s.TieMargin)
	}
	switch audio.LabelSource(s.LabelSource) {
	case audio.LabelFromFilename, audio.LabelFromTags:
	default:
		return fmt.Errorf("label_source must be %q or %q, got %q",
			audio.LabelFromFilename, audio.LabelFromTags, s.LabelSource)
	}
	if s.CoverArtSize <= 0 {
		return fmt.Errorf("cover_art_size must be positive, got %d", s.CoverArtSize)
	}
	return nil
}

// ToMatchConfig converts settings to the matching engine configuration.
func (s *Settings) ToMatchConfig() match.Config {
	return match.Config{
		AutoAcceptThreshold: s.AutoAcceptThreshold,
		TieMargin:           s.TieMargin,
		Workers:             s.MatchWorkers,
	}
}

// ToTagConfig converts settings to the tagger configuration.
func (s *Settings) ToTagConfig() *audio.TagConfig {
	cfg := audio.DefaultTagConfig()
	cfg.ModifyTags = s.ModifyTags
	return cfg
}
