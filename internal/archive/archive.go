// Package archive extracts the delivered album zip and normalizes its
// layout so the matcher sees a flat directory of audio files.
package archive

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ExtractZip extracts the archive at zipPath into destDir, creating destDir
// if needed.
//
// Entry paths are validated against destDir so a crafted archive cannot
// write outside it. Respects ctx cancellation between entries.
func ExtractZip(ctx context.Context, zipPath, destDir string) error {
	reader, err := zip.OpenReader(zipPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", zipPath, err)
	}
	defer reader.Close()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return err
	}

	for _, file := range reader.File {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := extractEntry(file, destDir); err != nil {
			return fmt.Errorf("extracting %s: %w", file.Name, err)
		}
	}
	return nil
}

func extractEntry(file *zip.File, destDir string) error {
	target := filepath.Join(destDir, filepath.FromSlash(file.Name))

	// Zip slip guard: the resolved target must stay inside destDir.
	rel, err := filepath.Rel(destDir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("entry escapes destination directory")
	}

	if file.FileInfo().IsDir() {
		return os.MkdirAll(target, 0755)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(target)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

// Flatten moves every file found in subdirectories of root directly into
// root, then removes the emptied subdirectories.
//
// Album archives often wrap the tracks in one or more nested folders;
// flattening gives the rest of the pipeline a single directory to work
// with. When two files share a name, the later one gets "_" appended to
// its stem until the name is free.
func Flatten(root string) error {
	var nested []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Dir(path) == root {
			return nil
		}
		nested = append(nested, path)
		return nil
	})
	if err != nil {
		return fmt.Errorf("scanning %s: %w", root, err)
	}

	for _, path := range nested {
		target := filepath.Join(root, filepath.Base(path))
		for exists(target) {
			ext := filepath.Ext(target)
			target = strings.TrimSuffix(target, ext) + "_" + ext
		}
		if err := os.Rename(path, target); err != nil {
			return fmt.Errorf("moving %s: %w", path, err)
		}
	}

	return removeSubdirs(root)
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// removeSubdirs deletes the immediate subdirectories of root. They are
// empty of files after flattening (only nested directories remain inside).
func removeSubdirs(root string) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			if err := os.RemoveAll(filepath.Join(root, entry.Name())); err != nil {
				return err
			}
		}
	}
	return nil
}
