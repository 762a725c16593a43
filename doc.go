// Package compressor is a modular system for lossless byte-stream
// compression.
//
// It packages a handful of classical codecs — run-length encoding,
// canonical Huffman, and LZ77 — behind a single Codec interface, and
// composes them into an adaptive Hybrid codec that partitions its input
// into blocks, classifies each one, and routes it to whichever primitive
// fits its statistical profile best.
//
// Every codec produces a self-describing frame: decoding never needs
// side information beyond the bytes themselves. Callers that only need
// one codec can import its subpackage directly (rle, huffman, lz77,
// hybrid); callers that want to pick a codec by name at runtime go
// through the Registry in this package.
package compressor
