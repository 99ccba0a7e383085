// Package ioutils provides file system utilities for the flyer tools.
//
// This package contains functions for:
//   - Reading text files
//   - Overwriting files in place
//   - Formatting file sizes for reports
//
// All functions that accept a context.Context check it before touching the
// disk; the file operations themselves are not interruptible.
package ioutils

import (
	"context"
	"fmt"
	"os"
)

// ReadText reads the whole file at path as a string.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// OverwriteFile replaces the content of an existing file in place.
//
// The file keeps its permission bits. There is no backup and no atomic
// rename: a crash mid-write leaves a truncated file.
//
// Example:
//
//	err := OverwriteFile(ctx, "/site/weeklyMeeting.html", []byte(updated))
func OverwriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, info.Mode().Perm())
}

// FormatSize renders a byte count in kilobytes with one decimal,
// e.g. 2048 -> "2.0 KB".
func FormatSize(size int64) string {
	return fmt.Sprintf("%.1f KB", float64(size)/1024)
}
