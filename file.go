package pngme

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/simonhull/pngme/internal/png"
	"github.com/simonhull/pngme/internal/types"
)

// File represents an opened PNG file and its parsed chunks.
//
// The whole file is read into memory on open; no handle stays open, so a
// File needs no Close. Modifications (Encode, Remove) apply to the in-memory
// chunk list until Save or SaveAs writes them out.
//
//	file, err := pngme.Open("dice.png")
//	if err != nil {
//		return err
//	}
//	fmt.Println(file.Container())
type File struct {
	// Path to the PNG file
	Path string

	// Encoded size in bytes, kept current across modifications
	Size int64

	// Warnings encountered during parsing (non-fatal issues)
	Warnings []Warning

	container *png.Container
	logger    *slog.Logger
}

// Open opens a PNG file and parses its chunks.
//
// Open fails if the signature is wrong, a chunk is truncated or carries a
// bad CRC, or the file exceeds WithMaxFileSize. Parse failures are returned
// as *CorruptedFileError wrapping the underlying sentinel.
//
// Structural oddities that do not stop parsing are recorded in
// File.Warnings; see WithStrictParsing.
//
// Example:
//
//	file, err := pngme.Open("dice.png")
//	if err != nil {
//		return err
//	}
//	for _, w := range file.Warnings {
//		log.Printf("warning: %s", w)
//	}
func Open(path string, opts ...Option) (*File, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close() //nolint:errcheck // Read-only handle

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}
	if err := checkSize(path, stat.Size(), options); err != nil {
		return nil, err
	}

	data := make([]byte, stat.Size())
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return openBytes(data, path, options)
}

// OpenBytes parses an in-memory PNG stream. Path is used in errors and
// warnings and as the default Save destination.
//
// The data slice is not retained.
func OpenBytes(data []byte, path string, opts ...Option) (*File, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	if err := checkSize(path, int64(len(data)), options); err != nil {
		return nil, err
	}
	return openBytes(data, path, options)
}

func checkSize(path string, size int64, options *openOptions) error {
	if options.maxFileSize > 0 && size > options.maxFileSize {
		return fmt.Errorf("%s: %w: %d bytes exceeds limit of %d", path, ErrFileTooLarge, size, options.maxFileSize)
	}
	return nil
}

// openBytes parses data (internal, shared by Open and OpenBytes).
func openBytes(data []byte, path string, options *openOptions) (*File, error) {
	c, err := png.ParseContainerFrom(data, path)
	if err != nil {
		return nil, corrupted(path, err)
	}

	file := &File{
		Path:      path,
		Size:      int64(len(data)),
		Warnings:  png.Check(c),
		container: c,
		logger:    options.logger,
	}

	if options.ignoreWarnings {
		file.Warnings = nil
	}
	if options.strictParsing && len(file.Warnings) > 0 {
		return nil, fmt.Errorf("%s: %w: %s", path, ErrStrictParsing, file.Warnings[0])
	}

	file.logger.Debug("opened png",
		"path", path,
		"size", file.Size,
		"chunks", c.Len(),
		"warnings", len(file.Warnings))

	return file, nil
}

// corrupted wraps a parse failure with the file path and, when known, the
// offset of the chunk that failed.
func corrupted(path string, err error) error {
	cfe := &types.CorruptedFileError{Path: path, Reason: "parse png", Err: err}

	var ce *types.ChunkError
	if errors.As(err, &ce) {
		cfe.Offset = ce.Offset
		cfe.Reason = "parse chunk"
	}
	return cfe
}

// Container returns the parsed chunk list. Changes made through it are
// written by Save; File.Size is refreshed by File methods only.
func (f *File) Container() *Container {
	return f.container
}

// Chunks returns a copy of the file's chunks in order.
func (f *File) Chunks() []Chunk {
	return f.container.Chunks()
}

// Bytes returns the encoded file: signature followed by every chunk.
func (f *File) Bytes() []byte {
	return f.container.Bytes()
}

// OpenContext opens a file with context support for cancellation.
//
// The context is checked before the file is read. Options can be provided
// just like with Open():
//
//	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
//	defer cancel()
//
//	file, err := pngme.OpenContext(ctx, "dice.png", pngme.WithStrictParsing())
func OpenContext(ctx context.Context, path string, opts ...Option) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Open(path, opts...)
}

// OpenMany opens multiple PNG files concurrently.
//
// Files are parsed in parallel using up to runtime.NumCPU() goroutines.
// Results are returned in the same order as the input paths. Every file is
// opened with the same options.
//
// If any file fails to open, or ctx is cancelled, no files are returned and
// the first error is reported.
//
// Example:
//
//	files, err := pngme.OpenMany(ctx, []string{"a.png", "b.png"})
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, f := range files {
//		fmt.Printf("%s: %d chunks\n", f.Path, f.Container().Len())
//	}
func OpenMany(ctx context.Context, paths []string, opts ...Option) ([]*File, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*File, len(paths))

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			file, err := Open(path, opts...)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			results[i] = file
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func (f *File) log() *slog.Logger {
	if f.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return f.logger
}
