package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), settings)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"tie_margin": 0.1}`), 0644))

	settings, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.1, settings.TieMargin)
	assert.Equal(t, 0.8, settings.AutoAcceptThreshold)
	assert.Equal(t, "%a", settings.FolderTemplate)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"threshold above one", `{"auto_accept_threshold": 1.5}`},
		{"negative margin", `{"tie_margin": -0.1}`},
		{"unknown label source", `{"label_source": "guess"}`},
		{"zero cover size", `{"cover_art_size": 0}`},
		{"malformed json", `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")

	settings := DefaultSettings()
	settings.PreserveAlbumName = true
	settings.MatchWorkers = 4
	require.NoError(t, settings.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, settings, loaded)
}

func TestToMatchConfig(t *testing.T) {
	settings := DefaultSettings()
	settings.MatchWorkers = 2

	cfg := settings.ToMatchConfig()
	assert.Equal(t, 0.8, cfg.AutoAcceptThreshold)
	assert.Equal(t, 0.05, cfg.TieMargin)
	assert.Equal(t, 2, cfg.Workers)
}
