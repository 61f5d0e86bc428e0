package binary

import "hash/crc32"

// Checksum returns the CRC-32 (IEEE, reflected polynomial 0xEDB88320) of a
// chunk type followed by its data, as stored in a PNG chunk trailer.
func Checksum(typ [4]byte, data []byte) uint32 {
	h := crc32.NewIEEE()
	_, _ = h.Write(typ[:])
	_, _ = h.Write(data)
	return h.Sum32()
}
