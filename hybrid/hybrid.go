// Package hybrid implements the Hybrid meta-codec: it byte-differences
// the whole input, partitions the result into adaptively-sized blocks,
// classifies each block by a cheap statistical profile, and routes it
// to whichever of RLE, LZ77, or Huffman the classification calls for.
//
// A block's on-wire header carries both the classifier's verdict (for
// diagnostics) and a second, independent tag naming the primitive the
// encoder actually used for that block's payload. The decoder dispatches
// on the second tag only, never on the classifier's verdict — this is
// what makes a MIXED block (which tries all three primitives and keeps
// the smallest) round-trip correctly regardless of which one won.
package hybrid

import (
	"encoding/binary"
	"hash/crc32"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/joaogasparp/compressor-system/cerrors"
	"github.com/joaogasparp/compressor-system/codec"
	"github.com/joaogasparp/compressor-system/huffman"
	"github.com/joaogasparp/compressor-system/lz77"
	"github.com/joaogasparp/compressor-system/rle"
)

var magic = [4]byte{'H', 'Y', 'B', 'R'}

// primitiveTag values identify the primitive a block's payload was
// actually encoded with. tagStored is the "nothing compressed this
// block" fallback: the payload is the raw (post-differencing) block
// bytes, copied verbatim. It is only reachable if all three primitives
// refuse a non-empty block, which none of them do in practice — it
// exists to satisfy the documented fallback rather than to ever fire.
const (
	tagRLE     byte = 0
	tagLZ77    byte = 1
	tagHuffman byte = 2
	tagStored  byte = 3
)

const blockHeaderSize = 1 + 1 + 4 + 4 // type tag, primitive tag, decoded size, encoded size

// Codec implements codec.Codec for the Hybrid meta-codec.
type Codec struct{}

// New returns a fresh Hybrid codec instance.
func New() *Codec { return &Codec{} }

var (
	rleCodec     = rle.New()
	lz77Codec    = lz77.New()
	huffmanCodec = huffman.New()
)

func (c *Codec) Info() codec.Info {
	return codec.Info{
		Name:             "hybrid",
		Description:      "adaptive block-partitioned meta-codec routing to RLE, LZ77, or Huffman per block",
		SupportsParallel: true,
		MinBlockSize:     1,
	}
}

func (c *Codec) OptimalBlockSize(n int) int {
	return blockSizeFor(n)
}

// EstimateRatio returns the lowest of the three primitives' own
// estimates over the whole input, weighting none of them by
// classification: it's a cheap guess, not a block-by-block simulation.
func (c *Codec) EstimateRatio(b []byte) float64 {
	if len(b) == 0 {
		return 0
	}
	r := rleCodec.EstimateRatio(b)
	l := lz77Codec.EstimateRatio(b)
	h := huffmanCodec.EstimateRatio(b)
	best := r
	if l < best {
		best = l
	}
	if h < best {
		best = h
	}
	return best
}

func (c *Codec) Encode(src []byte, cfg codec.CompressionConfig) ([]byte, codec.Stats, error) {
	start := time.Now()
	if len(src) == 0 {
		return nil, codec.Stats{}, cerrors.New(cerrors.EmptyInput, "hybrid: cannot encode empty input")
	}
	cfg = codec.Normalize(cfg)

	blockSize := cfg.BlockSize
	if blockSize <= 0 {
		blockSize = blockSizeFor(len(src))
	}

	diffed := diffEncode(src)

	out := make([]byte, 0, len(src))
	out = append(out, magic[:]...)

	var blockCount uint32
	var body []byte
	var ptags []byte
	for blockStart := 0; blockStart < len(diffed); blockStart += blockSize {
		end := blockStart + blockSize
		if end > len(diffed) {
			end = len(diffed)
		}
		block := diffed[blockStart:end]

		bt := classify(block)
		ptag, payload := encodeBlock(bt, block, cfg)
		codec.Logf(cfg, "hybrid: block %d (%d bytes) classified %d, encoded with primitive %d to %d bytes",
			blockCount, len(block), bt, ptag, len(payload))

		body = append(body, byte(bt), ptag)
		body = binary.BigEndian.AppendUint32(body, uint32(len(block)))
		body = binary.BigEndian.AppendUint32(body, uint32(len(payload)))
		body = append(body, payload...)
		ptags = append(ptags, ptag)
		blockCount++
	}

	out = binary.BigEndian.AppendUint32(out, blockCount)
	out = append(out, body...)

	stats := codec.Stats{
		OriginalSize:   len(src),
		CompressedSize: len(out),
		NumThreads:     cfg.NumThreads,
		Algorithm:      algorithmFor(ptags),
		Blocks:         int(blockCount),
		EncodeTime:     time.Since(start).Nanoseconds(),
	}
	stats.Ratio = float64(len(out)) / float64(len(src))
	if cfg.VerifyIntegrity {
		stats.Checksum = crc32.ChecksumIEEE(src)
	}
	return out, stats, nil
}

// encodeBlock tries the primitive the classification prefers first; a
// MIXED block, or a preferred primitive that unexpectedly errors, falls
// through to trying all three and keeping the smallest.
func encodeBlock(bt blockType, block []byte, cfg codec.CompressionConfig) (byte, []byte) {
	switch bt {
	case lowEntropy:
		if out, err := encodeWith(tagRLE, block, cfg); err == nil {
			return tagRLE, out
		}
	case highRepetition:
		if out, err := encodeWith(tagLZ77, block, cfg); err == nil {
			return tagLZ77, out
		}
	case random:
		if out, err := encodeWith(tagHuffman, block, cfg); err == nil {
			return tagHuffman, out
		}
	}
	return encodeMixed(block, cfg)
}

// encodeMixed tries all three primitives and keeps the smallest
// successful output. If every primitive errors — only reachable for a
// pathological block no non-empty input actually produces — the block
// is stored uncompressed and the joined errors are logged, never
// returned, since this path must still succeed.
func encodeMixed(block []byte, cfg codec.CompressionConfig) (byte, []byte) {
	type candidate struct {
		tag byte
		out []byte
	}
	var best *candidate
	var errs *multierror.Error

	for _, tag := range []byte{tagRLE, tagLZ77, tagHuffman} {
		out, err := encodeWith(tag, block, cfg)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		if best == nil || len(out) < len(best.out) {
			best = &candidate{tag: tag, out: out}
		}
	}
	if best != nil {
		return best.tag, best.out
	}
	codec.Logf(cfg, "hybrid: all primitives failed on a %d-byte block, storing uncompressed: %v", len(block), errs)
	return tagStored, block
}

func encodeWith(tag byte, block []byte, cfg codec.CompressionConfig) ([]byte, error) {
	switch tag {
	case tagRLE:
		out, _, err := rleCodec.Encode(block, cfg)
		return out, err
	case tagLZ77:
		out, _, err := lz77Codec.Encode(block, cfg)
		return out, err
	case tagHuffman:
		out, _, err := huffmanCodec.Encode(block, cfg)
		return out, err
	}
	return nil, cerrors.New(cerrors.Unsupported, "hybrid: unknown primitive tag 0x%02x", tag)
}

// primitiveName maps a primitiveTag to the Codec.Info().Name of the
// primitive it selects, or "hybrid" for tagStored (nothing compressed
// that block, so no single primitive's name applies).
func primitiveName(tag byte) string {
	switch tag {
	case tagRLE:
		return rleCodec.Info().Name
	case tagLZ77:
		return lz77Codec.Info().Name
	case tagHuffman:
		return huffmanCodec.Info().Name
	default:
		return "hybrid"
	}
}

// algorithmFor reports the Stats.Algorithm value for a set of per-block
// primitive tags: the primitive's own name when every block agreed on
// one, "hybrid" otherwise (including the zero-block case, which Encode
// never produces since it rejects empty input, but which Decode reaches
// for a frame declaring zero blocks). This is what lets a caller read
// Stats.Algorithm for a single-block or uniformly-routed input without
// re-parsing the frame.
func algorithmFor(tags []byte) string {
	if len(tags) == 0 {
		return "hybrid"
	}
	first := tags[0]
	for _, t := range tags[1:] {
		if t != first {
			return "hybrid"
		}
	}
	return primitiveName(first)
}

func decodeWith(tag byte, payload []byte, cfg codec.CompressionConfig) ([]byte, error) {
	switch tag {
	case tagRLE:
		out, _, err := rleCodec.Decode(payload, cfg)
		return out, err
	case tagLZ77:
		out, _, err := lz77Codec.Decode(payload, cfg)
		return out, err
	case tagHuffman:
		out, _, err := huffmanCodec.Decode(payload, cfg)
		return out, err
	case tagStored:
		return payload, nil
	}
	return nil, cerrors.New(cerrors.CorruptFrame, "hybrid: unknown primitive tag 0x%02x", tag)
}

func (c *Codec) Decode(src []byte, cfg codec.CompressionConfig) ([]byte, codec.Stats, error) {
	start := time.Now()
	cfg = codec.Normalize(cfg)

	if len(src) < 8 || src[0] != magic[0] || src[1] != magic[1] || src[2] != magic[2] || src[3] != magic[3] {
		return nil, codec.Stats{}, cerrors.New(cerrors.CorruptFrame, "hybrid: missing HYBR magic header")
	}
	blockCount := binary.BigEndian.Uint32(src[4:8])
	pos := 8

	var diffed []byte
	var ptags []byte
	for k := uint32(0); k < blockCount; k++ {
		if pos+blockHeaderSize > len(src) {
			return nil, codec.Stats{}, cerrors.New(cerrors.TruncatedStream, "hybrid: stream ended before block %d of %d header", k, blockCount)
		}
		ptag := src[pos+1]
		decodedSize := binary.BigEndian.Uint32(src[pos+2 : pos+6])
		encodedSize := binary.BigEndian.Uint32(src[pos+6 : pos+10])
		pos += blockHeaderSize

		if pos+int(encodedSize) > len(src) {
			return nil, codec.Stats{}, cerrors.New(cerrors.TruncatedStream, "hybrid: block %d payload truncated", k)
		}
		payload := src[pos : pos+int(encodedSize)]
		pos += int(encodedSize)

		decoded, err := decodeWith(ptag, payload, cfg)
		if err != nil {
			return nil, codec.Stats{}, cerrors.Wrap(cerrors.CorruptFrame, err, "hybrid: block %d failed to decode", k)
		}
		if uint32(len(decoded)) != decodedSize {
			return nil, codec.Stats{}, cerrors.New(cerrors.CorruptFrame, "hybrid: block %d decoded to %d bytes, header declared %d", k, len(decoded), decodedSize)
		}
		diffed = append(diffed, decoded...)
		ptags = append(ptags, ptag)
	}

	out := diffDecode(diffed)

	stats := codec.Stats{
		OriginalSize:   len(out),
		CompressedSize: len(src),
		NumThreads:     cfg.NumThreads,
		Algorithm:      algorithmFor(ptags),
		Blocks:         int(blockCount),
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
