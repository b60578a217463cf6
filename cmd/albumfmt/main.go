package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/csmith/envflag/v2"
	"github.com/csmith/slogflags"

	"github.com/handiism/album-formatter/internal/config"
	"github.com/handiism/album-formatter/internal/match"
	"github.com/handiism/album-formatter/internal/tui"
	"github.com/handiism/album-formatter/internal/workflow"
)

var (
	albumFlag         = flag.String("album", "", "Album directory, or zip archive with -extract")
	urlFlag           = flag.String("url", "", "Apple Music album page URL")
	configFlag        = flag.String("config", "", "Path to config file")
	extractFlag       = flag.Bool("extract", false, "Treat -album as a zip archive and extract it first")
	labelsFlag        = flag.String("labels", "", "Label source for matching: filename or tags (overrides config)")
	preserveAlbumFlag = flag.Bool("preserve-album", false, "Keep the album folder name")
	preserveSongsFlag = flag.Bool("preserve-songs", false, "Keep the song file names")
	verboseFlag       = flag.Bool("verbose", false, "Show verbose output")
	dryRunFlag        = flag.Bool("dry-run", false, "Resolve the matching without writing anything")
)

func main() {
	envflag.Parse()
	logger := slogflags.Logger(slogflags.WithSetDefault(true))

	if *albumFlag == "" || *urlFlag == "" {
		fmt.Println("albumfmt - match local audio files against an Apple Music album and tag them")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  albumfmt -album <dir> -url <URL> [options]")
		fmt.Println("  albumfmt -album <archive.zip> -extract -url <URL> [options]")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(1)
	}

	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// Apply flag overrides
	if *labelsFlag != "" {
		settings.LabelSource = *labelsFlag
	}
	if *preserveAlbumFlag {
		settings.PreserveAlbumName = true
	}
	if *preserveSongsFlag {
		settings.PreserveSongNames = true
	}
	if err := settings.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid settings: %v\n", err)
		os.Exit(1)
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	interactor := &tui.Interactor{Verbose: *verboseFlag}
	manager := workflow.NewManager(settings, interactor, interactor.PrintProgress, logger)

	err := manager.Run(ctx, workflow.Options{
		AlbumPath: *albumFlag,
		AlbumURL:  *urlFlag,
		Extract:   *extractFlag,
		DryRun:    *dryRunFlag,
	})
	if err != nil {
		if ctx.Err() != nil {
			fmt.Println("\nCancelled.")
			os.Exit(130)
		}

		var cardinality *match.CardinalityError
		var unresolved *match.UnresolvedError
		switch {
		case errors.As(err, &cardinality):
			fmt.Fprintf(os.Stderr, "Error: %v\n", cardinality)
		case errors.As(err, &unresolved):
			fmt.Fprintf(os.Stderr, "Error: %v\nNothing was written.\n", unresolved)
		default:
			slog.Error("Run failed", "error", err)
		}
		os.Exit(1)
	}
}
