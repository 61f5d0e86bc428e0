// Package png implements the PNG chunk model: chunk type tags, checksummed
// chunks, and the signature-prefixed container that holds them.
package png

import (
	"bytes"
	"fmt"

	"github.com/simonhull/pngme/internal/types"
)

// propertyBit is the ASCII case bit that carries a chunk type property.
const propertyBit = 1 << 5

// Byte positions of the four chunk type properties.
const (
	ancillaryByte = iota
	privateByte
	reservedByte
	safeToCopyByte
)

// ChunkType is a validated 4-byte chunk type tag such as "IHDR" or "ruSt".
//
// Each byte is an ASCII letter. The case of each letter encodes one property:
//
//	byte 0: uppercase = critical,          lowercase = ancillary
//	byte 1: uppercase = public,            lowercase = private
//	byte 2: uppercase = reserved bit valid, lowercase = invalid
//	byte 3: uppercase = unsafe to copy,    lowercase = safe to copy
//
// ChunkType is a comparable value; two types are equal when their bytes are.
type ChunkType struct {
	b [4]byte
}

// ParseChunkType builds a ChunkType from raw bytes.
//
// It fails with types.ErrInvalidBytes if any byte is not an ASCII letter.
// A set reserved bit is accepted here and only affects IsValid.
func ParseChunkType(b [4]byte) (ChunkType, error) {
	for i, c := range b {
		if !isLetter(c) {
			return ChunkType{}, fmt.Errorf("%w: byte %d is 0x%02x", types.ErrInvalidBytes, i, c)
		}
	}
	return ChunkType{b: b}, nil
}

// ChunkTypeFromString builds a ChunkType from a 4-character tag.
//
// The length is counted in bytes, so a tag with multi-byte characters
// fails with types.ErrInvalidLength or types.ErrInvalidCharacter depending
// on its encoded size.
func ChunkTypeFromString(tag string) (ChunkType, error) {
	if len(tag) != 4 {
		return ChunkType{}, fmt.Errorf("%w: got %d bytes in %q", types.ErrInvalidLength, len(tag), tag)
	}

	var b [4]byte
	for i := 0; i < 4; i++ {
		if !isLetter(tag[i]) {
			return ChunkType{}, fmt.Errorf("%w: %q at position %d in %q", types.ErrInvalidCharacter, tag[i], i, tag)
		}
		b[i] = tag[i]
	}

	return ChunkType{b: b}, nil
}

// MustChunkType is like ChunkTypeFromString but panics on error.
// It is intended for package-level constants such as "IEND".
func MustChunkType(tag string) ChunkType {
	t, err := ChunkTypeFromString(tag)
	if err != nil {
		panic(err)
	}
	return t
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func bitSet(c byte) bool {
	return c&propertyBit != 0
}

// Bytes returns the raw tag bytes.
func (t ChunkType) Bytes() [4]byte {
	return t.b
}

// String returns the tag as a 4-character string.
func (t ChunkType) String() string {
	return string(t.b[:])
}

// IsCritical reports whether a decoder must understand the chunk.
func (t ChunkType) IsCritical() bool {
	return !bitSet(t.b[ancillaryByte])
}

// IsPublic reports whether the type is part of the public registry.
func (t ChunkType) IsPublic() bool {
	return !bitSet(t.b[privateByte])
}

// IsReservedBitValid reports whether the reserved bit is unset.
func (t ChunkType) IsReservedBitValid() bool {
	return !bitSet(t.b[reservedByte])
}

// IsSafeToCopy reports whether editors may copy the chunk without understanding it.
func (t ChunkType) IsSafeToCopy() bool {
	return bitSet(t.b[safeToCopyByte])
}

// IsValid reports whether every byte is a letter and the reserved bit is valid.
func (t ChunkType) IsValid() bool {
	for _, c := range t.b {
		if !isLetter(c) {
			return false
		}
	}
	return t.IsReservedBitValid()
}

// Equal reports whether both tags have the same bytes.
func (t ChunkType) Equal(other ChunkType) bool {
	return t.b == other.b
}

// Compare orders chunk types by their raw bytes.
func (t ChunkType) Compare(other ChunkType) int {
	return bytes.Compare(t.b[:], other.b[:])
}

// MarshalText implements encoding.TextMarshaler.
func (t ChunkType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *ChunkType) UnmarshalText(text []byte) error {
	parsed, err := ChunkTypeFromString(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
