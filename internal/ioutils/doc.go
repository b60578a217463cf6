// Package ioutils provides file system and image utilities for the album
// formatter: directory creation, collision-safe renames, and cover art
// preparation.
package ioutils
