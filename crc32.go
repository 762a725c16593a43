package compressor

import "hash/crc32"

// Checksum computes the IEEE 802.3 CRC-32 of b (polynomial 0xEDB88320,
// reflected, initial and final XOR 0xFFFFFFFF). It is used to verify
// round-trip integrity when CompressionConfig.VerifyIntegrity is set.
//
// hash/crc32's IEEETable is built once, lazily, by the standard library
// itself and is safe for concurrent use, so there is no bespoke
// one-time-init here: flate/gzip.go and snappy/encode.go in the pack
// both reach for this same table rather than hand-rolling it.
func Checksum(b []byte) uint32 {
	return crc32.ChecksumIEEE(b)
}
