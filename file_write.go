package pngme

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// Save writes the current chunk list back to the original file.
//
// This is an atomic operation: writes to a temporary file first, then renames
// to the original path. If any step fails, the original file remains unchanged.
//
// Options can be provided to customize save behavior:
//
//	err := file.Save(
//	    pngme.WithBackup(".bak"),
//	    pngme.WithValidation(),
//	)
func (f *File) Save(opts ...SaveOption) error {
	return f.SaveAs(f.Path, opts...)
}

// SaveAs writes the file to a new location.
//
// This is an atomic operation: writes to a temporary file first, then renames
// to the output path. If any step fails, any partially written data is cleaned up.
//
// Options can be provided to customize save behavior:
//
//	err := file.SaveAs("/new/path/dice.png",
//	    pngme.WithBackup(".bak"),
//	    pngme.WithValidation(),
//	)
func (f *File) SaveAs(outputPath string, opts ...SaveOption) error { //nolint:gocyclo // Atomic file operations require sequential steps
	options := defaultSaveOptions()
	for _, opt := range opts {
		opt(options)
	}

	if f.container == nil {
		return fmt.Errorf("file not open: no chunks loaded")
	}

	// Mod time comes from the source file, which may differ from outputPath.
	var origInfo os.FileInfo
	if options.preserveModTime {
		if info, err := os.Stat(f.Path); err == nil {
			origInfo = info
		}
	}

	// Temp file in the output directory so the rename stays on one filesystem.
	tempFile, err := os.CreateTemp(filepath.Dir(outputPath), ".pngme-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	success := false
	defer func() {
		if !success {
			_ = tempFile.Close()    //nolint:errcheck // Best effort cleanup
			_ = os.Remove(tempPath) //nolint:errcheck // Best effort cleanup
		}
	}()

	n, err := f.container.WriteTo(tempFile)
	if err != nil {
		return fmt.Errorf("write: %w", err)
	}

	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if options.backupSuffix != "" {
		backupPath := outputPath + options.backupSuffix
		if _, err := os.Stat(outputPath); err == nil {
			if err := os.Rename(outputPath, backupPath); err != nil {
				return fmt.Errorf("create backup: %w", err)
			}
			f.log().Debug("created backup", "path", backupPath)
		}
	}

	if err := os.Rename(tempPath, outputPath); err != nil {
		return fmt.Errorf("rename temp to output: %w", err)
	}

	success = true
	f.Size = n

	if origInfo != nil {
		_ = os.Chtimes(outputPath, origInfo.ModTime(), origInfo.ModTime()) //nolint:errcheck // Non-fatal: file was written successfully
	}

	f.log().Debug("saved png", "path", outputPath, "size", n, "chunks", f.container.Len())

	if options.validate {
		if err := f.validateWrittenFile(outputPath); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
	}

	return nil
}

// validateWrittenFile re-opens the file and compares it with the in-memory chunks.
func (f *File) validateWrittenFile(path string) error {
	written, err := Open(path)
	if err != nil {
		return fmt.Errorf("re-open: %w", err)
	}

	if got, want := written.Container().Len(), f.container.Len(); got != want {
		return fmt.Errorf("chunk count mismatch: got %d, want %d", got, want)
	}
	if !bytes.Equal(written.Bytes(), f.Bytes()) {
		return fmt.Errorf("content mismatch after write")
	}

	return nil
}
