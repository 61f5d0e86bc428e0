package pngme

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/simonhull/pngme/internal/message"
)

// previewRunes bounds ChunkInfo.Text.
const previewRunes = 64

// ChunkInfo summarises one chunk for display.
type ChunkInfo struct {
	Index            int    `json:"index" yaml:"index"`
	Offset           int64  `json:"offset" yaml:"offset"`
	Type             string `json:"type" yaml:"type"`
	Length           uint32 `json:"length" yaml:"length"`
	CRC              uint32 `json:"crc" yaml:"crc"`
	Critical         bool   `json:"critical" yaml:"critical"`
	Public           bool   `json:"public" yaml:"public"`
	ReservedBitValid bool   `json:"reserved_bit_valid" yaml:"reserved_bit_valid"`
	SafeToCopy       bool   `json:"safe_to_copy" yaml:"safe_to_copy"`
	Compressed       bool   `json:"compressed,omitempty" yaml:"compressed,omitempty"`

	// Text is a printable preview of the payload; empty for binary data.
	Text string `json:"text,omitempty" yaml:"text,omitempty"`
}

// Describe returns one ChunkInfo per chunk, in file order.
func (f *File) Describe() []ChunkInfo {
	chunks := f.container.Chunks()
	infos := make([]ChunkInfo, 0, len(chunks))

	offset := int64(len(Signature))
	for i, c := range chunks {
		t := c.Type()
		info := ChunkInfo{
			Index:            i,
			Offset:           offset,
			Type:             t.String(),
			Length:           c.Length(),
			CRC:              c.CRC(),
			Critical:         t.IsCritical(),
			Public:           t.IsPublic(),
			ReservedBitValid: t.IsReservedBitValid(),
			SafeToCopy:       t.IsSafeToCopy(),
		}

		// Critical chunks carry image data, never messages.
		if !t.IsCritical() {
			info.Compressed, info.Text = preview(c.Data())
		}

		infos = append(infos, info)
		offset += int64(c.EncodedLen())
	}

	return infos
}

// preview decodes the start of a payload and returns a shortened printable
// form of it. Compressed frames are inflated only as far as the preview needs.
func preview(payload []byte) (compressed bool, text string) {
	ex, err := message.Peek(payload, previewRunes*utf8.UTFMax)
	if err != nil {
		return message.IsCompressed(payload), ""
	}

	msg := ex.Text
	if ex.Truncated {
		// Drop a rune cut in half by the byte limit.
		for i := 0; i < utf8.UTFMax && len(msg) > 0; i++ {
			if r, size := utf8.DecodeLastRune(msg); r != utf8.RuneError || size > 1 {
				break
			}
			msg = msg[:len(msg)-1]
		}
	}
	if len(msg) == 0 || !utf8.Valid(msg) {
		return ex.Compressed, ""
	}

	s := string(msg)
	if strings.IndexFunc(s, func(r rune) bool { return !unicode.IsPrint(r) && !unicode.IsSpace(r) }) >= 0 {
		return ex.Compressed, ""
	}

	if utf8.RuneCountInString(s) > previewRunes {
		s = string([]rune(s)[:previewRunes])
		ex.Truncated = true
	}
	if ex.Truncated {
		s += "…"
	}
	return ex.Compressed, s
}
