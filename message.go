package pngme

import (
	"fmt"
	"unicode/utf8"

	"github.com/simonhull/pngme/internal/message"
)

// Encode hides msg in a new chunk of type tag.
//
// The chunk is inserted just before IEND, or appended when the file has no
// IEND. Existing chunks of the same type are kept; Decode and Remove act on
// the first one. The change is in memory until Save.
//
// Tags that are not 4 ASCII letters fail with ErrInvalidLength or
// ErrInvalidCharacter. Tags with the reserved bit set are accepted, but
// show up as a warning the next time the file is opened.
func (f *File) Encode(tag, msg string, opts ...EncodeOption) error {
	options := defaultEncodeOptions()
	for _, opt := range opts {
		opt(options)
	}

	ct, err := ChunkTypeFromString(tag)
	if err != nil {
		return fmt.Errorf("encode %q: %w", tag, err)
	}

	payload, err := message.Encode([]byte(msg), options.compress)
	if err != nil {
		return fmt.Errorf("encode %q: %w", tag, err)
	}

	chunk := NewChunk(ct, payload)
	f.container.AppendChunk(chunk)
	f.Size += int64(chunk.EncodedLen())

	f.log().Debug("encoded message",
		"path", f.Path,
		"type", tag,
		"length", chunk.Length(),
		"compressed", options.compress,
		"crc", chunk.CRC())

	return nil
}

// Decode returns the message held by the first chunk of type tag.
//
// Compressed payloads are inflated transparently, up to 16 MiB; larger
// ones fail with ErrPayloadDecode. Returns ErrChunkNotFound when no chunk
// matches and ErrInvalidUTF8 when the payload is not text.
func (f *File) Decode(tag string) (string, error) {
	chunk, ok := f.container.ChunkByType(tag)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrChunkNotFound, tag)
	}

	msg, err := message.Decode(chunk.Data())
	if err != nil {
		return "", fmt.Errorf("decode %q: %w", tag, err)
	}
	if !utf8.Valid(msg) {
		return "", fmt.Errorf("decode %q: %w", tag, ErrInvalidUTF8)
	}

	return string(msg), nil
}

// Remove deletes the first chunk of type tag and returns it.
//
// Returns ErrChunkNotFound, leaving the file unchanged, when no chunk matches.
func (f *File) Remove(tag string) (Chunk, error) {
	chunk, err := f.container.RemoveChunk(tag)
	if err != nil {
		return Chunk{}, err
	}
	f.Size -= int64(chunk.EncodedLen())

	f.log().Debug("removed chunk", "path", f.Path, "type", tag, "length", chunk.Length())

	return chunk, nil
}
