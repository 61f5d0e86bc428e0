package binary

import (
	"bytes"
	"errors"
	"testing"
)

func TestSafeWriter_Write(t *testing.T) {
	tests := []struct {
		write func(sw *SafeWriter) error
		name  string
		want  []byte
	}{
		{
			name:  "uint8",
			write: func(sw *SafeWriter) error { return Write[uint8](sw, 0x42) },
			want:  []byte{0x42},
		},
		{
			name:  "uint16 big-endian",
			write: func(sw *SafeWriter) error { return Write[uint16](sw, 0xABCD) },
			want:  []byte{0xAB, 0xCD},
		},
		{
			name:  "uint32 big-endian",
			write: func(sw *SafeWriter) error { return Write[uint32](sw, 0x12345678) },
			want:  []byte{0x12, 0x34, 0x56, 0x78},
		},
		{
			name:  "uint64 big-endian",
			write: func(sw *SafeWriter) error { return Write[uint64](sw, 0x0102030405060708) },
			want:  []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			sw := NewSafeWriter(buf)

			if err := tt.write(sw); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !bytes.Equal(buf.Bytes(), tt.want) {
				t.Errorf("expected %v, got %v", tt.want, buf.Bytes())
			}
			if sw.Offset() != int64(len(tt.want)) {
				t.Errorf("expected offset %d, got %d", len(tt.want), sw.Offset())
			}
		})
	}
}

func TestSafeWriter_ChunkLayout(t *testing.T) {
	buf := &bytes.Buffer{}
	sw := NewSafeWriter(buf)

	data := []byte("hi")
	typ := [4]byte{'t', 'E', 'X', 't'}

	if err := Write[uint32](sw, uint32(len(data))); err != nil {
		t.Fatal(err)
	}
	if err := sw.WriteBytes(typ[:]); err != nil {
		t.Fatal(err)
	}
	if err := sw.WriteBytes(data); err != nil {
		t.Fatal(err)
	}
	if err := Write[uint32](sw, Checksum(typ, data)); err != nil {
		t.Fatal(err)
	}

	if sw.Offset() != 14 {
		t.Errorf("expected offset 14, got %d", sw.Offset())
	}
	if got := buf.Bytes()[:8]; !bytes.Equal(got, []byte{0, 0, 0, 2, 't', 'E', 'X', 't'}) {
		t.Errorf("unexpected header bytes %v", got)
	}
}

type failingWriter struct{ n int }

func (w *failingWriter) Write(p []byte) (int, error) {
	if len(p) > w.n {
		return w.n, errors.New("disk full")
	}
	return len(p), nil
}

func TestSafeWriter_PartialWrite(t *testing.T) {
	sw := NewSafeWriter(&failingWriter{n: 2})

	err := Write[uint32](sw, 1)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if sw.Offset() != 2 {
		t.Errorf("offset should count the bytes actually written, got %d", sw.Offset())
	}
}
