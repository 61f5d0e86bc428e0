// Package pngme hides and recovers text messages in PNG files.
//
// A PNG file is a fixed 8-byte signature followed by a sequence of chunks.
// pngme reads that sequence without decoding any pixels, lets callers add,
// find and remove chunks, and writes the file back byte for byte. Messages
// are stored as the data of ancillary chunks that image viewers skip.
//
// # Quick Start
//
// Hiding a message:
//
//	file, err := pngme.Open("dice.png")
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := file.Encode("ruSt", "meet at noon"); err != nil {
//		log.Fatal(err)
//	}
//	if err := file.Save(pngme.WithBackup(".bak")); err != nil {
//		log.Fatal(err)
//	}
//
// Reading it back:
//
//	msg, err := file.Decode("ruSt")
//	if errors.Is(err, pngme.ErrChunkNotFound) {
//		fmt.Println("no message")
//	}
//
// # Chunk Types
//
// A chunk type is four ASCII letters. Bit 5 of each letter (its case) is a
// property flag:
//
//	byte 0  lowercase = ancillary   uppercase = critical
//	byte 1  lowercase = private     uppercase = public
//	byte 2  must be uppercase (reserved)
//	byte 3  lowercase = safe to copy
//
// "ruSt" is ancillary, private, valid and safe to copy, which makes it a good
// home for a message.
//
// # Error Handling
//
// Parsing is all-or-nothing: a bad signature, a truncated chunk or a CRC
// mismatch fails the whole open. Errors wrap sentinel values, so callers test
// them with errors.Is:
//
//	if errors.Is(err, pngme.ErrInvalidChecksum) { ... }
//
// Files that parse but break a convention of the format (no IHDR first, IEND
// not last, reserved bit set) open successfully and carry File.Warnings.
// WithStrictParsing turns those warnings into errors.
//
// # Compression
//
// WithCompression stores the message as an LZ4 frame. Decode recognises the
// frame by its magic number, so compressed and plain messages read the same
// way.
//
// # Concurrency
//
// Chunks, chunk types and containers hold no shared state. A File belongs to
// one goroutine; OpenMany opens many files in parallel, one File each.
package pngme
