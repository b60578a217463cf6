package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/handiism/album-formatter/internal/archive"
	"github.com/handiism/album-formatter/internal/audio"
	"github.com/handiism/album-formatter/internal/catalog"
	"github.com/handiism/album-formatter/internal/config"
	"github.com/handiism/album-formatter/internal/format"
	"github.com/handiism/album-formatter/internal/httpx"
	"github.com/handiism/album-formatter/internal/ioutils"
	"github.com/handiism/album-formatter/internal/match"
	"github.com/handiism/album-formatter/internal/model"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a pipeline progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Interactor supplies every human decision the pipeline needs: shortlist
// choices during matching, yes/no confirmations, and the final assignment
// review. The tui package provides the terminal implementation; tests
// inject a scripted one.
type Interactor interface {
	match.Decider

	// Confirm asks a yes/no question and blocks until answered.
	Confirm(ctx context.Context, question string) (bool, error)

	// ShowAssignment renders the resolved assignment for review before
	// anything is written.
	ShowAssignment(assignment *match.Assignment)
}

// Options selects the input for one formatting run.
type Options struct {
	// AlbumPath is the album directory, or the zip archive when Extract
	// is set.
	AlbumPath string

	// AlbumURL is the catalog page describing the album.
	AlbumURL string

	// Extract treats AlbumPath as a zip archive and extracts it next to
	// itself before processing.
	Extract bool

	// DryRun stops after showing the resolved assignment; nothing is
	// written or renamed.
	DryRun bool
}

// Manager coordinates a full formatting run: extract, fetch the catalog,
// match, review, then tag and rename.
//
// Example:
//
//	mgr := workflow.NewManager(settings, interactor, onProgress, logger)
//	if err := mgr.Run(ctx, workflow.Options{AlbumPath: dir, AlbumURL: url}); err != nil {
//	    // nothing was partially written
//	}
type Manager struct {
	settings     *config.Settings
	catalog      *catalog.Client
	tagger       *audio.Tagger
	imageService *ioutils.ImageService
	engine       *match.Engine
	interactor   Interactor

	onProgress func(ProgressEvent)
	logger     *slog.Logger
}

// NewManager creates a Manager wired from settings. A nil logger disables
// logging; a nil onProgress discards progress events.
func NewManager(settings *config.Settings, interactor Interactor, onProgress func(ProgressEvent), logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	httpClient := httpx.NewClient(time.Duration(settings.HTTPTimeoutSeconds) * time.Second)

	return &Manager{
		settings:     settings,
		catalog:      catalog.NewClient(httpClient, logger),
		tagger:       audio.NewTagger(settings.ToTagConfig()),
		imageService: ioutils.NewImageService(),
		engine:       match.NewEngine(settings.ToMatchConfig(), interactor, logger),
		interactor:   interactor,
		onProgress:   onProgress,
		logger:       logger,
	}
}

// Run executes the pipeline. On any failure before the apply confirmation
// nothing has been written; a freshly extracted directory is removed again
// so reruns start clean.
func (m *Manager) Run(ctx context.Context, opts Options) error {
	dir, extracted, err := m.prepareDirectory(ctx, opts)
	if err != nil {
		return err
	}
	cleanup := func() {
		if extracted {
			os.RemoveAll(dir)
		}
	}

	album, err := m.catalog.FetchAlbum(ctx, opts.AlbumURL)
	if err != nil {
		cleanup()
		return err
	}
	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Found album: %s - %s (%d tracks)", album.ArtistLine(), album.Name, len(album.Tracks)),
		Level:   LevelInfo,
	})

	candidates, err := audio.ExtractCandidates(dir, audio.LabelSource(m.settings.LabelSource))
	if err != nil {
		cleanup()
		return err
	}
	if len(candidates) == 0 {
		cleanup()
		return fmt.Errorf("no audio files in %s", dir)
	}

	// A partial rip is workable, but only deliberately.
	if len(candidates) < len(album.Tracks) {
		ok, err := m.interactor.Confirm(ctx, fmt.Sprintf(
			"The album has %d songs but only %d files were found. Continue anyway?",
			len(album.Tracks), len(candidates)))
		if err != nil {
			cleanup()
			return err
		}
		if !ok {
			cleanup()
			return fmt.Errorf("aborted: %d of %d files present", len(candidates), len(album.Tracks))
		}
	}

	assignment, err := m.engine.Match(ctx, album, candidates)
	if err != nil {
		cleanup()
		return err
	}

	m.interactor.ShowAssignment(assignment)
	if opts.DryRun {
		m.progress(ProgressEvent{Message: "Dry run: no files modified", Level: LevelInfo})
		cleanup()
		return nil
	}

	ok, err := m.interactor.Confirm(ctx, "Apply tags and rename files?")
	if err != nil {
		cleanup()
		return err
	}
	if !ok {
		cleanup()
		return fmt.Errorf("aborted before writing")
	}

	if err := m.apply(ctx, dir, assignment); err != nil {
		cleanup()
		return err
	}

	if opts.Extract {
		m.offerZipRemoval(ctx, opts.AlbumPath)
	}
	return nil
}

// prepareDirectory resolves the directory holding the audio files,
// extracting and flattening the archive first when requested. The returned
// bool reports whether the directory was created by this run.
func (m *Manager) prepareDirectory(ctx context.Context, opts Options) (string, bool, error) {
	dir := opts.AlbumPath
	extracted := false

	if opts.Extract {
		dir = extractionDir(opts.AlbumPath)
		m.progress(ProgressEvent{Message: fmt.Sprintf("Extracting %s", filepath.Base(opts.AlbumPath)), Level: LevelVerbose})
		if err := archive.ExtractZip(ctx, opts.AlbumPath, dir); err != nil {
			return "", false, err
		}
		extracted = true
	}

	if err := archive.Flatten(dir); err != nil {
		if extracted {
			os.RemoveAll(dir)
		}
		return "", false, err
	}
	return dir, extracted, nil
}

// apply writes tags and performs the renames. Tagging happens before any
// rename so a tagging failure leaves the filenames untouched.
func (m *Manager) apply(ctx context.Context, dir string, assignment *match.Assignment) error {
	artwork, err := m.prepareArtwork(ctx, assignment.Album)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Cover art unavailable: %v", err), Level: LevelWarning})
	}

	for _, entry := range assignment.Entries {
		track := assignment.Track(entry)
		if err := m.tagger.SaveTags(entry.Candidate.Path, assignment.Album, &track, artwork); err != nil {
			return fmt.Errorf("tagging %s: %w", entry.Candidate.Path, err)
		}
		m.progress(ProgressEvent{Message: fmt.Sprintf("Tagged: %s", track.Name), Level: LevelVerbose})
	}

	if !m.settings.PreserveSongNames {
		if err := m.renameSongs(dir, assignment); err != nil {
			return err
		}
	}

	finalDir := dir
	if !m.settings.PreserveAlbumName {
		finalDir, err = m.renameFolder(dir, assignment.Album)
		if err != nil {
			return err
		}
	}

	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Formatted album: %s (%d songs, %d matched automatically)",
			finalDir, len(assignment.Entries), assignment.AutoCount()),
		Level: LevelSuccess,
	})
	return nil
}

// prepareArtwork downloads the cover and normalizes it for embedding.
// Returns nil bytes when the album has no artwork or embedding is disabled.
func (m *Manager) prepareArtwork(ctx context.Context, album *model.CatalogAlbum) ([]byte, error) {
	if !m.settings.EmbedArtwork || !album.HasArtwork() {
		return nil, nil
	}
	raw, err := m.catalog.FetchArtwork(ctx, album)
	if err != nil {
		return nil, err
	}
	return m.imageService.PrepareCover(raw, m.settings.CoverArtSize)
}

// renameSongs renames each matched file according to the song template.
func (m *Manager) renameSongs(dir string, assignment *match.Assignment) error {
	for _, entry := range assignment.Entries {
		track := assignment.Track(entry)
		name := format.Render(m.settings.SongTemplate, format.Context{
			Album: assignment.Album,
			Track: &track,
		})
		target := filepath.Join(dir, name+filepath.Ext(entry.Candidate.Path))
		if target == entry.Candidate.Path {
			continue
		}
		target = ioutils.UniquePath(target)
		if err := ioutils.MoveFile(entry.Candidate.Path, target); err != nil {
			return err
		}
		m.progress(ProgressEvent{
			Message: fmt.Sprintf("Renamed: %s -> %s", filepath.Base(entry.Candidate.Path), filepath.Base(target)),
			Level:   LevelVerbose,
		})
	}
	return nil
}

// renameFolder renames the album directory according to the folder template
// and returns the new path.
func (m *Manager) renameFolder(dir string, album *model.CatalogAlbum) (string, error) {
	name := format.Render(m.settings.FolderTemplate, format.Context{Album: album})
	target := filepath.Join(filepath.Dir(dir), name)
	if target == dir {
		return dir, nil
	}
	target = ioutils.UniquePath(target)
	if err := os.Rename(dir, target); err != nil {
		return "", fmt.Errorf("renaming album folder: %w", err)
	}
	return target, nil
}

// offerZipRemoval asks whether to delete the source archive after a
// successful run. Declining or failing to delete is not an error.
func (m *Manager) offerZipRemoval(ctx context.Context, zipPath string) {
	ok, err := m.interactor.Confirm(ctx, fmt.Sprintf("Delete the archive %s?", filepath.Base(zipPath)))
	if err != nil || !ok {
		return
	}
	if err := os.Remove(zipPath); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Could not delete archive: %v", err), Level: LevelWarning})
		return
	}
	m.progress(ProgressEvent{Message: "Deleted source archive", Level: LevelVerbose})
}

// extractionDir derives the extraction target from the archive path:
// the archive's own name without its extension, next to it.
func extractionDir(zipPath string) string {
	base := filepath.Base(zipPath)
	return filepath.Join(filepath.Dir(zipPath), base[:len(base)-len(filepath.Ext(base))])
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
