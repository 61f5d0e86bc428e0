package png

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/simonhull/pngme/internal/binary"
	"github.com/simonhull/pngme/internal/types"
)

// Signature is the 8-byte preamble of every PNG file.
var Signature = [8]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}

// Well-known chunk types.
var (
	TypeIHDR = MustChunkType("IHDR")
	TypeIDAT = MustChunkType("IDAT")
	TypeIEND = MustChunkType("IEND")
)

// Container is a PNG signature followed by an ordered list of chunks.
//
// Container is not safe for concurrent mutation.
type Container struct {
	chunks []Chunk
}

// NewContainer returns a container holding the given chunks in order.
func NewContainer(chunks ...Chunk) *Container {
	return &Container{chunks: append([]Chunk(nil), chunks...)}
}

// ParseContainer decodes a complete PNG byte stream.
//
// Parsing is all-or-nothing. Chunk failures are reported as *types.ChunkError
// with the chunk index and offset; the underlying kind stays reachable with
// errors.Is.
func ParseContainer(b []byte) (*Container, error) {
	return parseContainer(b, "png")
}

// ParseContainerFrom is ParseContainer with a path used in error messages.
func ParseContainerFrom(b []byte, path string) (*Container, error) {
	return parseContainer(b, path)
}

func parseContainer(b []byte, path string) (*Container, error) {
	if len(b) < len(Signature) || !bytes.Equal(b[:len(Signature)], Signature[:]) {
		return nil, types.ErrInvalidSignature
	}

	sr := binary.NewSafeReader(bytes.NewReader(b), int64(len(b)), path)
	offset := int64(len(Signature))
	size := int64(len(b))

	c := &Container{}
	for offset < size {
		if size-offset < MinChunkSize {
			return nil, fmt.Errorf("%w: %d bytes at offset %d", types.ErrTrailingGarbage, size-offset, offset)
		}

		chunk, n, err := readChunk(sr, offset)
		if err != nil {
			return nil, &types.ChunkError{Index: len(c.chunks), Offset: offset, Err: err}
		}

		c.chunks = append(c.chunks, chunk)
		offset += int64(n)
	}

	return c, nil
}

// Header returns the PNG signature.
func (c *Container) Header() [8]byte {
	return Signature
}

// Chunks returns the chunks in stored order. The returned slice is a copy.
func (c *Container) Chunks() []Chunk {
	return append([]Chunk(nil), c.chunks...)
}

// Len returns the number of chunks.
func (c *Container) Len() int {
	return len(c.chunks)
}

// AppendChunk adds a chunk at the logical end of the stream, keeping a
// trailing IEND chunk last.
func (c *Container) AppendChunk(chunk Chunk) {
	at := c.insertionPoint()
	c.chunks = append(c.chunks, Chunk{})
	copy(c.chunks[at+1:], c.chunks[at:])
	c.chunks[at] = chunk
}

// insertionPoint is the index before a trailing IEND, or the end of the list.
func (c *Container) insertionPoint() int {
	n := len(c.chunks)
	if n > 0 && c.chunks[n-1].Type() == TypeIEND {
		return n - 1
	}
	return n
}

// RemoveChunk removes the first chunk whose type is tag and returns it.
// The other chunks are left untouched when nothing matches.
func (c *Container) RemoveChunk(tag string) (Chunk, error) {
	i := c.indexOf(tag)
	if i < 0 {
		return Chunk{}, fmt.Errorf("%w: %q", types.ErrChunkNotFound, tag)
	}

	removed := c.chunks[i]
	c.chunks = append(c.chunks[:i], c.chunks[i+1:]...)
	return removed, nil
}

// ChunkByType returns the first chunk whose type is tag.
func (c *Container) ChunkByType(tag string) (Chunk, bool) {
	i := c.indexOf(tag)
	if i < 0 {
		return Chunk{}, false
	}
	return c.chunks[i], true
}

// ChunksByType returns every chunk whose type is tag, in stored order.
func (c *Container) ChunksByType(tag string) []Chunk {
	var out []Chunk
	for _, chunk := range c.chunks {
		if chunk.Type().String() == tag {
			out = append(out, chunk)
		}
	}
	return out
}

func (c *Container) indexOf(tag string) int {
	for i, chunk := range c.chunks {
		if chunk.Type().String() == tag {
			return i
		}
	}
	return -1
}

// EncodedLen returns the size of the encoded container.
func (c *Container) EncodedLen() int {
	n := len(Signature)
	for _, chunk := range c.chunks {
		n += chunk.EncodedLen()
	}
	return n
}

// Bytes encodes the signature followed by every chunk in order.
func (c *Container) Bytes() []byte {
	buf := bytes.NewBuffer(make([]byte, 0, c.EncodedLen()))
	_, _ = c.WriteTo(buf)
	return buf.Bytes()
}

// WriteTo writes the encoded container to w.
func (c *Container) WriteTo(w io.Writer) (int64, error) {
	sw := binary.NewSafeWriter(w)
	if err := sw.WriteBytes(Signature[:]); err != nil {
		return sw.Offset(), err
	}

	total := sw.Offset()
	for _, chunk := range c.chunks {
		n, err := chunk.WriteTo(w)
		total += n
		if err != nil {
			return total, err
		}
	}

	return total, nil
}

// Equal reports whether both containers hold equal chunks in the same order.
func (c *Container) Equal(other *Container) bool {
	if len(c.chunks) != len(other.chunks) {
		return false
	}
	for i := range c.chunks {
		if !c.chunks[i].Equal(other.chunks[i]) {
			return false
		}
	}
	return true
}

// String lists the chunks one per line.
func (c *Container) String() string {
	var sb strings.Builder
	for _, chunk := range c.chunks {
		sb.WriteString(chunk.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
