package ioutils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureDir creates a directory and all parent directories if they don't
// exist. Directories are created with mode 0755.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// UniquePath returns path unchanged when nothing exists there, otherwise a
// variant with "_" appended to the stem until the name is free.
//
// Example:
//
//	UniquePath("/music/track.mp3") // "/music/track_.mp3" if taken
func UniquePath(path string) string {
	for {
		if _, err := os.Lstat(path); err != nil {
			return path
		}
		ext := filepath.Ext(path)
		path = strings.TrimSuffix(path, ext) + "_" + ext
	}
}

// MoveFile renames a file, refusing to overwrite an existing target.
func MoveFile(src, dst string) error {
	if src == dst {
		return nil
	}
	if _, err := os.Lstat(dst); err == nil {
		return fmt.Errorf("moving %s: %s already exists", src, dst)
	}
	return os.Rename(src, dst)
}
