package pngme

import (
	"bytes"
	"image"
	"image/color"
	stdpng "image/png"
	"os"
	"path/filepath"
	"testing"
)

// testImage returns a small PNG produced by the standard library encoder.
func testImage(t testing.TB) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 30), G: uint8(y * 30), B: 200, A: 255})
		}
	}

	buf := &bytes.Buffer{}
	if err := stdpng.Encode(buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// writeFile stores data under dir and returns its path.
func writeFile(t testing.TB, dir, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// openTestImage opens a freshly written test image.
func openTestImage(t testing.TB, opts ...Option) *File {
	t.Helper()

	path := writeFile(t, t.TempDir(), "dice.png", testImage(t))
	f, err := Open(path, opts...)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return f
}
