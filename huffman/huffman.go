// Package huffman implements canonical Huffman coding with a
// self-contained, serialised tree: the decoder never needs anything
// beyond the encoded bytes themselves.
//
// The frame has two shapes, distinguished by a leading tag byte: a
// single-symbol shortcut for constant input, and a general multi-symbol
// shape carrying the serialised tree followed by the bit-packed
// codewords. Bit packing goes through the bitio package; tree
// construction and (de)serialisation live in tree.go.
package huffman

import (
	"encoding/binary"
	"hash/crc32"
	"time"

	"github.com/joaogasparp/compressor-system/bitio"
	"github.com/joaogasparp/compressor-system/cerrors"
	"github.com/joaogasparp/compressor-system/codec"
	"github.com/joaogasparp/compressor-system/internal/entropy"
)

const (
	tagSingleSymbol = 0x01
	tagMultiSymbol  = 0x02
)

// Codec implements codec.Codec for canonical Huffman coding.
type Codec struct{}

// New returns a fresh Huffman codec instance.
func New() *Codec { return &Codec{} }

func (c *Codec) Info() codec.Info {
	return codec.Info{
		Name:             "huffman",
		Description:      "canonical Huffman coding with a self-contained serialised tree",
		SupportsParallel: false,
		MinBlockSize:     1,
	}
}

func (c *Codec) OptimalBlockSize(n int) int {
	return n
}

// EstimateRatio approximates compressed/original size as Shannon
// entropy (in bytes per byte) plus the serialised tree's overhead
// amortized over the input length, capped to [0, 1].
func (c *Codec) EstimateRatio(b []byte) float64 {
	if len(b) == 0 {
		return 0
	}
	var freq [256]int
	for _, v := range b {
		freq[v]++
	}
	distinct := 0
	for _, f := range freq {
		if f > 0 {
			distinct++
		}
	}
	treeOverheadBytes := 0
	if distinct > 1 {
		treeOverheadBytes = 3*distinct - 1
	}
	r := entropy.NormalizedShannon(b) + float64(treeOverheadBytes)/float64(len(b))
	if r > 1 {
		r = 1
	}
	if r < 0 {
		r = 0
	}
	return r
}

func (c *Codec) Encode(src []byte, cfg codec.CompressionConfig) ([]byte, codec.Stats, error) {
	start := time.Now()
	if len(src) == 0 {
		return nil, codec.Stats{}, cerrors.New(cerrors.EmptyInput, "huffman: cannot encode empty input")
	}
	cfg = codec.Normalize(cfg)

	var freq [256]int
	for _, b := range src {
		freq[b]++
	}
	distinct := 0
	var onlySymbol byte
	for sym, f := range freq {
		if f > 0 {
			distinct++
			onlySymbol = byte(sym)
		}
	}

	var out []byte
	if distinct == 1 {
		codec.Logf(cfg, "huffman: single symbol 0x%02x, using single-symbol frame", onlySymbol)
		out = make([]byte, 0, 6)
		out = append(out, tagSingleSymbol, onlySymbol)
		out = binary.BigEndian.AppendUint32(out, uint32(len(src)))
	} else {
		codec.Logf(cfg, "huffman: %d distinct symbols, building tree", distinct)
		arena, root := buildTree(freq)
		codes := assignCodes(arena, root)
		treeBytes := serializeTree(arena, root)

		out = make([]byte, 0, len(treeBytes)+16+len(src))
		out = append(out, tagMultiSymbol)
		out = binary.BigEndian.AppendUint16(out, uint16(len(treeBytes)))
		out = append(out, treeBytes...)
		out = binary.BigEndian.AppendUint32(out, uint32(len(src)))

		bw := bitio.NewWriter(out)
		for _, b := range src {
			entry := codes[b]
			bw.WriteBits(entry.bits, int(entry.len))
		}
		bw.Flush()
		out = bw.Bytes()
	}

	stats := codec.Stats{
		OriginalSize:   len(src),
		CompressedSize: len(out),
		NumThreads:     1,
		Algorithm:      "huffman",
		EncodeTime:     time.Since(start).Nanoseconds(),
	}
	stats.Ratio = float64(len(out)) / float64(len(src))
	if cfg.VerifyIntegrity {
		stats.Checksum = crc32.ChecksumIEEE(src)
	}
	return out, stats, nil
}

func (c *Codec) Decode(src []byte, cfg codec.CompressionConfig) ([]byte, codec.Stats, error) {
	start := time.Now()
	cfg = codec.Normalize(cfg)

	if len(src) == 0 {
		return nil, codec.Stats{}, cerrors.New(cerrors.TruncatedStream, "huffman: empty frame")
	}

	var out []byte
	var err error
	switch src[0] {
	case tagSingleSymbol:
		out, err = decodeSingleSymbol(src)
	case tagMultiSymbol:
		out, err = decodeMultiSymbol(src, cfg)
	default:
		err = cerrors.New(cerrors.CorruptFrame, "huffman: unknown frame tag 0x%02x", src[0])
	}
	if err != nil {
		return nil, codec.Stats{}, err
	}

	stats := codec.Stats{
		OriginalSize:   len(out),
		CompressedSize: len(src),
		NumThreads:     1,
		Algorithm:      "huffman",
		DecodeTime:     time.Since(start).Nanoseconds(),
	}
	if len(out) > 0 {
		stats.Ratio = float64(len(src)) / float64(len(out))
	}
	if cfg.VerifyIntegrity {
		stats.Checksum = crc32.ChecksumIEEE(out)
	}
	return out, stats, nil
}

func decodeSingleSymbol(src []byte) ([]byte, error) {
	if len(src) < 6 {
		return nil, cerrors.New(cerrors.TruncatedStream, "huffman: single-symbol frame too short")
	}
	symbol := src[1]
	count := binary.BigEndian.Uint32(src[2:6])
	out := make([]byte, count)
	for i := range out {
		out[i] = symbol
	}
	return out, nil
}

func decodeMultiSymbol(src []byte, cfg codec.CompressionConfig) ([]byte, error) {
	if len(src) < 3 {
		return nil, cerrors.New(cerrors.TruncatedStream, "huffman: multi-symbol frame too short for tree_size")
	}
	treeSize := binary.BigEndian.Uint16(src[1:3])
	pos := 3
	if pos+int(treeSize) > len(src) {
		return nil, cerrors.New(cerrors.CorruptTree, "huffman: declared tree_size %d exceeds remaining frame", treeSize)
	}
	treeBytes := src[pos : pos+int(treeSize)]
	arena, root, consumed, ok := deserializeTree(treeBytes)
	if !ok {
		return nil, cerrors.New(cerrors.CorruptTree, "huffman: malformed tree serialisation")
	}
	if consumed != int(treeSize) {
		return nil, cerrors.New(cerrors.CorruptTree, "huffman: tree_size %d does not match serialised tree length %d", treeSize, consumed)
	}
	pos += int(treeSize)

	if pos+4 > len(src) {
		return nil, cerrors.New(cerrors.TruncatedStream, "huffman: frame missing original_size field")
	}
	originalSize := binary.BigEndian.Uint32(src[pos : pos+4])
	pos += 4

	codec.Logf(cfg, "huffman: decoding %d symbols from %d-byte tree", originalSize, treeSize)

	br := bitio.NewReader(src[pos:])
	out := make([]byte, 0, originalSize)
	for uint32(len(out)) < originalSize {
		idx := root
		for {
			n := arena[idx]
			if n.isLeaf {
				out = append(out, n.symbol)
				break
			}
			bit, err := br.ReadBits(1)
			if err != nil {
				return nil, cerrors.Wrap(cerrors.TruncatedStream, err, "huffman: ran out of bits decoding symbol %d of %d", len(out), originalSize)
			}
			var next uint16
			if bit == 0 {
				next = n.left
			} else {
				next = n.right
			}
			if next == nilIdx {
				return nil, cerrors.New(cerrors.CorruptTree, "huffman: descended into a null child")
			}
			idx = next
		}
	}
	return out, nil
}
