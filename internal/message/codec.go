// Package message encodes the payload of a hidden message chunk.
//
// A payload is either the raw message bytes or an LZ4 frame holding them.
// Decode tells the two apart by the LZ4 frame magic number. A payload that
// starts with the magic but does not parse as a frame is read as plain text
// when it is valid UTF-8, so text written by other tools stays readable.
package message

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/pierrec/lz4/v4"

	"github.com/simonhull/pngme/internal/types"
)

// MaxMessageSize bounds the inflated size of a compressed message in Decode.
const MaxMessageSize = 16 << 20

// frameMagic is the little-endian LZ4 frame magic number 0x184D2204.
var frameMagic = []byte{0x04, 0x22, 0x4D, 0x18}

// Excerpt is the start of a decoded message.
type Excerpt struct {
	Text       []byte
	Truncated  bool
	Compressed bool
}

// Encode returns the chunk payload for msg, compressed when compress is set.
func Encode(msg []byte, compress bool) ([]byte, error) {
	if !compress {
		return bytes.Clone(msg), nil
	}

	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if err := zw.Apply(lz4.ChecksumOption(true)); err != nil {
		return nil, fmt.Errorf("configure lz4 writer: %w", err)
	}
	if _, err := zw.Write(msg); err != nil {
		return nil, fmt.Errorf("compress message: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finish lz4 frame: %w", err)
	}

	return buf.Bytes(), nil
}

// Decode returns the message held by payload. Compressed messages larger
// than MaxMessageSize fail with types.ErrPayloadDecode.
func Decode(payload []byte) ([]byte, error) {
	return DecodeLimit(payload, MaxMessageSize)
}

// DecodeLimit is like Decode but with an explicit bound on the inflated
// size. Plain payloads are returned whole.
func DecodeLimit(payload []byte, limit int) ([]byte, error) {
	out, compressed, err := inflate(payload, limit)
	if err != nil {
		return nil, err
	}
	if !compressed {
		return bytes.Clone(payload), nil
	}
	if len(out) > limit {
		return nil, fmt.Errorf("%w: message inflates past %d bytes", types.ErrPayloadDecode, limit)
	}
	return out, nil
}

// Peek returns at most n bytes of the message held by payload. Only that
// much of a compressed frame is inflated.
func Peek(payload []byte, n int) (Excerpt, error) {
	out, compressed, err := inflate(payload, n)
	if err != nil {
		return Excerpt{}, err
	}
	if !compressed {
		out = payload
	}

	ex := Excerpt{Compressed: compressed}
	if len(out) > n {
		out = out[:n]
		ex.Truncated = true
	}
	ex.Text = bytes.Clone(out)
	return ex, nil
}

// IsCompressed reports whether payload starts with an LZ4 frame header.
func IsCompressed(payload []byte) bool {
	return bytes.HasPrefix(payload, frameMagic)
}

// inflate reads up to limit+1 bytes from the LZ4 frame in payload.
// compressed is false for plain payloads, including text that only starts
// with the frame magic.
func inflate(payload []byte, limit int) (out []byte, compressed bool, err error) {
	if !IsCompressed(payload) {
		return nil, false, nil
	}

	zr := lz4.NewReader(bytes.NewReader(payload))
	out, err = io.ReadAll(io.LimitReader(zr, int64(limit)+1))
	if err != nil {
		if utf8.Valid(payload) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%w: %v", types.ErrPayloadDecode, err)
	}
	return out, true, nil
}
