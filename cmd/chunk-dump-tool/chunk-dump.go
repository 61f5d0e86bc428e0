package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"

	"github.com/simonhull/pngme/internal/binary"
	"github.com/simonhull/pngme/internal/png"
)

// Debugging aid: lists every chunk header as stored, including chunks the
// parser would reject, so corrupted files can be inspected.
//
// Run with -v=1 to log chunk payload previews.
func main() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: chunk-dump [-v=1] <file.png>")
		flag.PrintDefaults()
	}
	flag.Parse()
	flag.Lookup("logtostderr").Value.Set("true")

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}
	path := flag.Arg(0)

	f, err := os.Open(path)
	if err != nil {
		glog.Fatalf("open: %v", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		glog.Fatalf("stat: %v", err)
	}

	sr := binary.NewSafeReader(f, stat.Size(), path)
	if err := dumpChunks(os.Stdout, sr); err != nil {
		glog.Fatalf("dump %s: %v", path, err)
	}
}

func dumpChunks(w io.Writer, sr *binary.SafeReader) error {
	sig := make([]byte, len(png.Signature))
	if err := sr.ReadAt(sig, 0, "signature"); err != nil {
		return err
	}
	if !bytes.Equal(sig, png.Signature[:]) {
		fmt.Fprintf(w, "signature: % x (not a PNG signature)\n", sig)
	} else {
		fmt.Fprintln(w, "signature: ok")
	}

	offset := int64(len(png.Signature))
	for index := 0; offset < sr.Size(); index++ {
		if left := sr.Size() - offset; left < png.MinChunkSize {
			fmt.Fprintf(w, "trailing: %d bytes at offset %d\n", left, offset)
			return nil
		}
		r := binary.NewReader(sr, offset)

		length, err := binary.ReadValue[uint32](r, "chunk length")
		if err != nil {
			return err
		}
		typ, err := r.ReadBytes(4, "chunk type")
		if err != nil {
			return err
		}

		if int64(length) > r.Remaining()-4 {
			fmt.Fprintf(w, "%3d %q (length: %d, offset: %d) truncated: only %d bytes left\n",
				index, typ, length, offset, r.Remaining())
			return nil
		}

		data, err := r.ReadBytes(int(length), "chunk data")
		if err != nil {
			return err
		}
		stored, err := binary.ReadValue[uint32](r, "chunk crc")
		if err != nil {
			return err
		}

		computed := binary.Checksum([4]byte(typ), data)
		status := "ok"
		if stored != computed {
			status = "MISMATCH"
			glog.Warningf("chunk %d (%s) at offset %d: stored crc %08x, computed %08x", index, typ, offset, stored, computed)
		}
		if glog.V(1) && len(data) > 0 {
			glog.Infof("chunk %d (%s) data: %q", index, typ, preview(data))
		}

		fmt.Fprintf(w, "%3d %s (length: %d, offset: %d, crc: %08x, computed: %08x) %s\n",
			index, typ, length, offset, stored, computed, status)

		offset = r.Offset()
	}

	return nil
}

func preview(data []byte) []byte {
	const limit = 32
	if len(data) > limit {
		return data[:limit]
	}
	return data
}
