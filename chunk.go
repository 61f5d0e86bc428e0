package pngme

import (
	"github.com/simonhull/pngme/internal/png"
)

// ChunkType is a validated 4-letter chunk type code.
type ChunkType = png.ChunkType

// Chunk is one length/type/data/CRC record of a PNG stream.
type Chunk = png.Chunk

// Container is a PNG signature plus its ordered chunks.
type Container = png.Container

// Signature is the 8-byte preamble of every PNG file.
var Signature = png.Signature

// Well-known chunk types.
var (
	TypeIHDR = png.TypeIHDR
	TypeIDAT = png.TypeIDAT
	TypeIEND = png.TypeIEND
)

// ParseChunkType builds a chunk type from 4 raw bytes.
func ParseChunkType(b [4]byte) (ChunkType, error) {
	return png.ParseChunkType(b)
}

// ChunkTypeFromString builds a chunk type from a 4-letter tag such as "ruSt".
func ChunkTypeFromString(tag string) (ChunkType, error) {
	return png.ChunkTypeFromString(tag)
}

// NewChunk builds a chunk and computes its CRC.
func NewChunk(t ChunkType, data []byte) Chunk {
	return png.NewChunk(t, data)
}

// ParseChunk decodes exactly one encoded chunk.
func ParseChunk(b []byte) (Chunk, error) {
	return png.ParseChunk(b)
}

// NewContainer returns a container holding chunks in order.
func NewContainer(chunks ...Chunk) *Container {
	return png.NewContainer(chunks...)
}

// ParseContainer decodes a complete PNG byte stream.
func ParseContainer(b []byte) (*Container, error) {
	return png.ParseContainer(b)
}
