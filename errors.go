package pngme

import (
	"github.com/simonhull/pngme/internal/types"
)

// OutOfBoundsError is an alias to types.OutOfBoundsError.
type OutOfBoundsError = types.OutOfBoundsError

// ChunkError is an alias to types.ChunkError.
type ChunkError = types.ChunkError

// ChecksumError is an alias to types.ChecksumError.
type ChecksumError = types.ChecksumError

// CorruptedFileError is an alias to types.CorruptedFileError.
type CorruptedFileError = types.CorruptedFileError

// Warning is an alias to types.Warning.
type Warning = types.Warning

// Sentinel errors, re-exported from internal/types for errors.Is checks.
var (
	ErrInvalidSignature = types.ErrInvalidSignature
	ErrInvalidChunkType = types.ErrInvalidChunkType
	ErrInvalidBytes     = types.ErrInvalidBytes
	ErrInvalidLength    = types.ErrInvalidLength
	ErrInvalidCharacter = types.ErrInvalidCharacter
	ErrUnexpectedEOF    = types.ErrUnexpectedEOF
	ErrInvalidData      = types.ErrInvalidData
	ErrInvalidChecksum  = types.ErrInvalidChecksum
	ErrTrailingGarbage  = types.ErrTrailingGarbage
	ErrChunkNotFound    = types.ErrChunkNotFound
	ErrInvalidUTF8      = types.ErrInvalidUTF8
	ErrStrictParsing    = types.ErrStrictParsing
	ErrFileTooLarge     = types.ErrFileTooLarge
	ErrPayloadDecode    = types.ErrPayloadDecode
)
