package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/simonhull/pngme/internal/binary"
	"github.com/simonhull/pngme/internal/png"
)

func dump(t *testing.T, raw []byte) string {
	t.Helper()

	var out bytes.Buffer
	sr := binary.NewSafeReader(bytes.NewReader(raw), int64(len(raw)), "test.png")
	if err := dumpChunks(&out, sr); err != nil {
		t.Fatalf("dumpChunks: %v", err)
	}
	return out.String()
}

func TestDumpChunks(t *testing.T) {
	c := png.NewContainer(
		png.NewChunk(png.TypeIHDR, make([]byte, 13)),
		png.NewChunk(png.MustChunkType("ruSt"), []byte("hidden")),
		png.NewChunk(png.TypeIEND, nil),
	)

	out := dump(t, c.Bytes())

	if !strings.HasPrefix(out, "signature: ok\n") {
		t.Errorf("unexpected signature line:\n%s", out)
	}
	for _, want := range []string{"  0 IHDR (length: 13, offset: 8", "  1 ruSt", "  2 IEND (length: 0"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "MISMATCH") {
		t.Errorf("unexpected mismatch:\n%s", out)
	}
}

func TestDumpChunks_Damaged(t *testing.T) {
	ruSt := png.NewChunk(png.MustChunkType("ruSt"), []byte("hidden"))
	raw := png.NewContainer(ruSt, png.NewChunk(png.TypeIEND, nil)).Bytes()

	// Break the ruSt CRC and leave a few stray bytes at the end.
	raw[len(png.Signature)+ruSt.EncodedLen()-1] ^= 0xff
	raw = append(raw, 1, 2, 3)

	out := dump(t, raw)

	if !strings.Contains(out, "ruSt") || !strings.Contains(out, "MISMATCH") {
		t.Errorf("expected a reported mismatch:\n%s", out)
	}
	if !strings.Contains(out, "IEND") {
		t.Errorf("dump should continue past a bad CRC:\n%s", out)
	}
	if !strings.Contains(out, "trailing: 3 bytes") {
		t.Errorf("expected trailing bytes report:\n%s", out)
	}
}

func TestDumpChunks_Truncated(t *testing.T) {
	raw := png.NewContainer(png.NewChunk(png.MustChunkType("ruSt"), bytes.Repeat([]byte("x"), 40))).Bytes()

	out := dump(t, raw[:len(raw)-10])

	if !strings.Contains(out, "truncated") {
		t.Errorf("expected truncation report:\n%s", out)
	}
}
