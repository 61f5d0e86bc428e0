// Package types provides the error kinds and diagnostics shared by the
// chunk codec and the file-level API.
package types

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSignature indicates the leading bytes are not the PNG signature.
	ErrInvalidSignature = errors.New("invalid PNG signature")
	// ErrInvalidChunkType indicates a chunk carries a malformed type tag.
	ErrInvalidChunkType = errors.New("invalid chunk type")
	// ErrInvalidBytes indicates a type tag byte is not an ASCII letter.
	ErrInvalidBytes = errors.New("chunk type bytes are not ASCII letters")
	// ErrInvalidLength indicates a type tag string is not 4 characters long.
	ErrInvalidLength = errors.New("chunk type must be 4 characters")
	// ErrInvalidCharacter indicates a type tag string has a non-letter character.
	ErrInvalidCharacter = errors.New("chunk type character is not an ASCII letter")
	// ErrUnexpectedEOF indicates the input ends before a declared length.
	ErrUnexpectedEOF = errors.New("unexpected end of chunk data")
	// ErrInvalidData indicates a chunk stream whose framing is inconsistent.
	ErrInvalidData = errors.New("invalid chunk data")
	// ErrInvalidChecksum indicates a stored CRC differs from the computed one.
	ErrInvalidChecksum = errors.New("chunk checksum mismatch")
	// ErrTrailingGarbage indicates bytes after the last chunk that cannot form a chunk.
	ErrTrailingGarbage = errors.New("trailing bytes after last chunk")
	// ErrChunkNotFound indicates no chunk matches the requested type.
	ErrChunkNotFound = errors.New("chunk not found")
	// ErrInvalidUTF8 indicates chunk data is not valid UTF-8 text.
	ErrInvalidUTF8 = errors.New("chunk data is not valid UTF-8")
	// ErrStrictParsing indicates a warning was promoted to an error.
	ErrStrictParsing = errors.New("strict parsing failed")
	// ErrFileTooLarge indicates the input exceeds the configured size limit.
	ErrFileTooLarge = errors.New("file too large")
	// ErrPayloadDecode indicates a compressed message payload could not be inflated.
	ErrPayloadDecode = errors.New("decode message payload failed")
)

// OutOfBoundsError is returned when attempting to read beyond the input bounds.
type OutOfBoundsError struct {
	Path   string
	What   string
	Offset int64
	Length int
	Size   int64
}

func (e *OutOfBoundsError) Error() string {
	if e.Offset >= e.Size {
		return fmt.Sprintf("%s: offset %d out of bounds (size: %d) while reading %s",
			e.Path, e.Offset, e.Size, e.What)
	}
	return fmt.Sprintf("%s: read of %d bytes at offset %d would exceed size %d while reading %s",
		e.Path, e.Length, e.Offset, e.Size, e.What)
}

// Unwrap reports every out-of-bounds read as a truncated input.
func (e *OutOfBoundsError) Unwrap() error {
	return ErrUnexpectedEOF
}

// ChunkError locates a chunk parse failure inside a container.
type ChunkError struct {
	Err    error
	Index  int
	Offset int64
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("chunk %d at offset %d: %v", e.Index, e.Offset, e.Err)
}

func (e *ChunkError) Unwrap() error {
	return e.Err
}

// ChecksumError carries both CRC values of a rejected chunk.
type ChecksumError struct {
	Type     string
	Expected uint32
	Actual   uint32
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("%s: %v (stored %#08x, computed %#08x)",
		e.Type, ErrInvalidChecksum, e.Actual, e.Expected)
}

func (e *ChecksumError) Unwrap() error {
	return ErrInvalidChecksum
}

// CorruptedFileError is returned when a file's chunk structure is invalid.
type CorruptedFileError struct {
	Err    error
	Path   string
	Reason string
	Offset int64
}

func (e *CorruptedFileError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: corrupted file at offset %d: %s: %v", e.Path, e.Offset, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: corrupted file at offset %d: %s", e.Path, e.Offset, e.Reason)
}

func (e *CorruptedFileError) Unwrap() error {
	return e.Err
}

// Warning represents a non-fatal issue found in a file's chunk structure.
//
// Warnings indicate files that parse cleanly but break a convention of the
// format. Examples include:
//   - A first chunk other than IHDR
//   - A missing or misplaced IEND
//   - A chunk type with the reserved bit set
//
// Warnings are collected in File.Warnings after parsing.
type Warning struct {
	// Stage where the warning occurred
	Stage string // "structure", "chunk type"

	// Warning message
	Message string

	// Offset of the chunk concerned (0 if not applicable)
	Offset int64
}

// String returns a human-readable warning message.
func (w Warning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("%s (at offset %d): %s", w.Stage, w.Offset, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}
