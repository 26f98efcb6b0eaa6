// =============================================================================
// INI to CSV Converter - File Manager Utility
// =============================================================================
//
// This module provides file utilities for the converter, including:
//   - Existence and size checks
//   - Hex previews of raw input bytes
//   - Atomic output writes (temp file + rename)
//   - Directory management
//
// ATOMIC WRITE STRATEGY:
//   - Output is written to a uniquely named temp file in the target directory
//   - The temp file is synced and closed, then renamed over the target
//   - On any error the temp file is removed and the target is left untouched
//
// =============================================================================

package utils

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// =============================================================================
// FILE INFORMATION
// =============================================================================

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// GetFileSize returns the size of a file in bytes.
func GetFileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// HexPreview returns the lowercase hex encoding of at most n leading bytes.
func HexPreview(data []byte, n int) string {
	if n >= 0 && len(data) > n {
		data = data[:n]
	}
	return hex.EncodeToString(data)
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureParentDir creates the directory that will hold path.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// =============================================================================
// ATOMIC WRITES
// =============================================================================

// WriteFileAtomic creates or replaces path with whatever fill writes.
//
// PARAMETERS:
//   - path: The final file path.
//   - fill: Writes the complete content to the buffered writer it receives.
//
// RETURNS:
//   - An error if the directory, temp file, fill, flush, sync or rename fails.
//     In every error case path is left as it was before the call.
func WriteFileAtomic(path string, fill func(w io.Writer) error) (err error) {
	if err := EnsureParentDir(path); err != nil {
		return err
	}

	tmpPath := tempPathFor(path)
	file, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	// Remove the temp file on every failure path.
	defer func() {
		if err != nil {
			file.Close()
			os.Remove(tmpPath)
		}
	}()

	writer := bufio.NewWriter(file)
	if err = fill(writer); err != nil {
		return err
	}
	if err = writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", tmpPath, err)
	}
	if err = file.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", tmpPath, err)
	}
	if err = file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpPath, err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to move output into place: %w", err)
	}

	return nil
}

// tempPathFor returns a hidden, unique sibling path for path.
func tempPathFor(path string) string {
	dir, name := filepath.Split(path)
	return filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", name, uuid.New().String()))
}

// CleanTempFiles removes leftover temp files for path, returning how many were removed.
func CleanTempFiles(path string) (int, error) {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	matches, err := filepath.Glob(filepath.Join(dir, "."+name+".*.tmp"))
	if err != nil {
		return 0, fmt.Errorf("failed to scan for temp files: %w", err)
	}

	removed := 0
	var errs []error
	for _, m := range matches {
		if err := os.Remove(m); err != nil {
			errs = append(errs, err)
			continue
		}
		removed++
	}

	return removed, errors.Join(errs...)
}
