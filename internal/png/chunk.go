package png

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/simonhull/pngme/internal/binary"
	"github.com/simonhull/pngme/internal/types"
)

const (
	lengthSize = 4
	typeSize   = 4
	crcSize    = 4

	// MinChunkSize is the encoded size of a chunk with no data.
	MinChunkSize = lengthSize + typeSize + crcSize

	// MaxDataLength is the largest data length a chunk may declare (2^31-1).
	MaxDataLength = 1<<31 - 1
)

// Chunk is one length-prefixed, typed, checksummed unit of a PNG stream.
//
// A Chunk is immutable: its CRC is computed once from the type and data and
// the data slice is never exposed for writing. Replace a chunk by building a
// new one.
type Chunk struct {
	typ  ChunkType
	data []byte
	crc  uint32
}

// NewChunk builds a chunk and computes its CRC. The data is copied.
func NewChunk(t ChunkType, data []byte) Chunk {
	d := bytes.Clone(data)
	return Chunk{
		typ:  t,
		data: d,
		crc:  binary.Checksum(t.Bytes(), d),
	}
}

// ParseChunk decodes exactly one encoded chunk.
//
// b must hold the length, type, data and CRC fields and nothing else:
// a buffer shorter than the declared length fails with types.ErrUnexpectedEOF,
// a longer one with types.ErrInvalidData.
func ParseChunk(b []byte) (Chunk, error) {
	c, n, err := ReadChunk(b)
	if err != nil {
		return Chunk{}, err
	}
	if n != len(b) {
		return Chunk{}, fmt.Errorf("%w: length field declares %d data bytes, buffer holds %d",
			types.ErrInvalidData, c.Length(), len(b)-MinChunkSize)
	}
	return c, nil
}

// ReadChunk decodes the chunk at the front of b and returns the number of
// bytes it occupies.
func ReadChunk(b []byte) (Chunk, int, error) {
	sr := binary.NewSafeReader(bytes.NewReader(b), int64(len(b)), "chunk")
	return readChunk(sr, 0)
}

func readChunk(sr *binary.SafeReader, off int64) (Chunk, int, error) {
	r := binary.NewReader(sr, off)

	length, err := binary.ReadValue[uint32](r, "chunk length")
	if err != nil {
		return Chunk{}, 0, err
	}
	if length > MaxDataLength {
		return Chunk{}, 0, fmt.Errorf("%w: declared length %d exceeds %d", types.ErrInvalidData, length, MaxDataLength)
	}

	raw, err := r.ReadBytes(typeSize, "chunk type")
	if err != nil {
		return Chunk{}, 0, err
	}
	t, err := ParseChunkType([4]byte(raw))
	if err != nil {
		return Chunk{}, 0, fmt.Errorf("%w: %w", types.ErrInvalidChunkType, err)
	}

	data, err := r.ReadBytes(int(length), "chunk data")
	if err != nil {
		return Chunk{}, 0, err
	}

	stored, err := binary.ReadValue[uint32](r, "chunk crc")
	if err != nil {
		return Chunk{}, 0, err
	}

	computed := binary.Checksum(t.Bytes(), data)
	if stored != computed {
		return Chunk{}, 0, &types.ChecksumError{
			Type:     t.String(),
			Expected: computed,
			Actual:   stored,
		}
	}

	return Chunk{typ: t, data: data, crc: computed}, int(r.Offset() - off), nil
}

// Length returns the number of data bytes.
func (c Chunk) Length() uint32 {
	return uint32(len(c.data))
}

// Type returns the chunk type.
func (c Chunk) Type() ChunkType {
	return c.typ
}

// Data returns a copy of the chunk data.
func (c Chunk) Data() []byte {
	return bytes.Clone(c.data)
}

// CRC returns the CRC-32 of the type and data.
func (c Chunk) CRC() uint32 {
	return c.crc
}

// DataString returns the data as text.
func (c Chunk) DataString() (string, error) {
	if !utf8.Valid(c.data) {
		return "", fmt.Errorf("%w: %s chunk", types.ErrInvalidUTF8, c.typ)
	}
	return string(c.data), nil
}

// EncodedLen returns the size of the chunk on the wire.
func (c Chunk) EncodedLen() int {
	return MinChunkSize + len(c.data)
}

// Bytes encodes the chunk as length, type, data, CRC.
func (c Chunk) Bytes() []byte {
	buf := bytes.NewBuffer(make([]byte, 0, c.EncodedLen()))
	_, _ = c.WriteTo(buf)
	return buf.Bytes()
}

// WriteTo writes the encoded chunk to w.
func (c Chunk) WriteTo(w io.Writer) (int64, error) {
	sw := binary.NewSafeWriter(w)
	typ := c.typ.Bytes()

	if err := binary.Write(sw, c.Length()); err != nil {
		return sw.Offset(), err
	}
	if err := sw.WriteBytes(typ[:]); err != nil {
		return sw.Offset(), err
	}
	if err := sw.WriteBytes(c.data); err != nil {
		return sw.Offset(), err
	}
	if err := binary.Write(sw, c.crc); err != nil {
		return sw.Offset(), err
	}

	return sw.Offset(), nil
}

// Equal reports whether both chunks have the same type, data and CRC.
func (c Chunk) Equal(other Chunk) bool {
	return c.typ == other.typ && c.crc == other.crc && bytes.Equal(c.data, other.data)
}

// String renders the chunk for display. Non-text data is shown as <Invalid UTF-8>.
func (c Chunk) String() string {
	text, err := c.DataString()
	if err != nil {
		text = "<Invalid UTF-8>"
	}
	return fmt.Sprintf("{ length: %4d type: %s, data: %s, crc %10d }", c.Length(), c.typ, text, c.crc)
}
