// Package lz77 implements LZ77 compression with a hash-chain match
// search: positions sharing a 3-byte prefix hash are linked into a
// bounded chain, and the encoder walks the chain for the position's
// current key to find the longest match within the window.
//
// The chain-walking search is grounded directly on lz4/chain.go and the
// root-level chain.go in the pack examples (both named HashChain): a
// fixed-size head table plus a per-position back-link array, walked for
// a bounded number of steps. Those examples produce an abstract
// (unmatched, length, distance) triple for a generic Encoder to frame;
// this package frames the match itself, concretely, because spec.md
// §4.4 fixes LZ77's wire format as part of the codec's own contract
// rather than delegating it to a pluggable Encoder.
package lz77

import (
	"encoding/binary"
	"hash/crc32"
	"time"

	"github.com/joaogasparp/compressor-system/cerrors"
	"github.com/joaogasparp/compressor-system/codec"
	"github.com/joaogasparp/compressor-system/internal/profile"
)

const (
	window    = 4096
	lookahead = 18
	minMatch  = 3
	maxChain  = 16

	hashBits = 12
	hashSize = 1 << hashBits
	hashMask = hashSize - 1
)

var magic = [4]byte{'L', 'Z', '7', '7'}

const (
	tagLiteral = 0x00
	tagMatch   = 0x01
)

// Codec implements codec.Codec for LZ77 compression.
type Codec struct{}

// New returns a fresh LZ77 codec instance.
func New() *Codec { return &Codec{} }

func (c *Codec) Info() codec.Info {
	return codec.Info{
		Name:             "lz77",
		Description:      "LZ77 with hash-chain match search over a 4096-byte window",
		SupportsParallel: false,
		MinBlockSize:     minMatch,
	}
}

func (c *Codec) OptimalBlockSize(n int) int {
	return n
}

// EstimateRatio approximates compressed/original size from the
// fraction of repeated 3-grams in b: highly repetitive data compresses
// well under LZ77, so its estimate leans toward a low ratio.
func (c *Codec) EstimateRatio(b []byte) float64 {
	if len(b) == 0 {
		return 0
	}
	rep := profile.Repetition(b)
	r := 1 - 0.8*rep
	if r > 1 {
		r = 1
	}
	if r < 0 {
		r = 0
	}
	return r
}

func hashOf(a, b, c byte) uint32 {
	return (uint32(a)<<16 | uint32(b)<<8 | uint32(c)) & hashMask
}

// matchLength returns how many bytes starting at a and b agree, capped
// at lookahead and reserving the final byte of src: a match is never
// allowed to reach all the way to the end of the input, so that every
// match token's follow_byte is always a real input byte. Without this
// reservation, a match ending exactly at EOF would force the decoder to
// append a fabricated zero follow_byte per spec.md §4.4's "all declared
// tokens are consumed and their follow_byte appended" — the failure
// mode original_source/src/algorithms/lz77/lz77_algorithm.cpp's
// decompress actually has (its `next_char != 0 || !matches.empty()`
// guard is always true, so it always appends, including the fabricated
// byte). Reserving the last byte avoids reproducing that bug.
func matchLength(src []byte, a, b, n int) int {
	max := (n - 1) - b
	if max > lookahead {
		max = lookahead
	}
	if max < 0 {
		max = 0
	}
	l := 0
	for l < max && src[a+l] == src[b+l] {
		l++
	}
	return l
}

type token struct {
	isMatch  bool
	literal  byte
	distance int
	length   int
	follow   byte
}

// findMatches scans src left to right, maintaining a hash chain keyed
// on each position's 3-byte prefix, and returns the literal/match token
// sequence spec.md §4.4 describes.
func findMatches(src []byte) []token {
	n := len(src)
	var head [hashSize]int32
	for i := range head {
		head[i] = -1
	}
	prev := make([]int32, n)

	insert := func(pos int) {
		h := hashOf(src[pos], src[pos+1], src[pos+2])
		prev[pos] = head[h]
		head[h] = int32(pos)
	}

	var tokens []token
	i := 0
	for i < n {
		// Require room for a minMatch-length match plus a real follow
		// byte; otherwise there's no way to emit a match token without
		// fabricating the follow_byte, so fall back to a literal.
		if n-i < minMatch+1 {
			tokens = append(tokens, token{literal: src[i]})
			i++
			continue
		}

		h := hashOf(src[i], src[i+1], src[i+2])
		bestLen, bestDist := 0, 0
		cand := head[h]
		depth := 0
		for cand >= 0 && depth < maxChain {
			dist := i - int(cand)
			if dist > window {
				break
			}
			l := matchLength(src, int(cand), i, n)
			if l > bestLen {
				bestLen, bestDist = l, dist
			}
			cand = prev[cand]
			depth++
		}

		if bestLen < minMatch {
			tokens = append(tokens, token{literal: src[i]})
			insert(i)
			i++
			continue
		}

		var follow byte
		if i+bestLen < n {
			follow = src[i+bestLen]
		}
		tokens = append(tokens, token{isMatch: true, distance: bestDist, length: bestLen, follow: follow})

		end := i + bestLen + 1
		for p := i; p < end && p+minMatch <= n; p++ {
			insert(p)
		}
		i = end
	}
	return tokens
}

func (c *Codec) Encode(src []byte, cfg codec.CompressionConfig) ([]byte, codec.Stats, error) {
	start := time.Now()
	if len(src) == 0 {
		return nil, codec.Stats{}, cerrors.New(cerrors.EmptyInput, "lz77: cannot encode empty input")
	}
	cfg = codec.Normalize(cfg)

	tokens := findMatches(src)
	codec.Logf(cfg, "lz77: %d tokens for %d bytes", len(tokens), len(src))

	out := make([]byte, 0, len(src))
	out = append(out, magic[:]...)
	out = binary.BigEndian.AppendUint32(out, uint32(len(tokens)))
	for _, t := range tokens {
		if t.isMatch {
			out = append(out, tagMatch)
			out = binary.BigEndian.AppendUint16(out, uint16(t.distance))
			out = append(out, byte(t.length), t.follow)
		} else {
			out = append(out, tagLiteral, t.literal)
		}
	}

	stats := codec.Stats{
		OriginalSize:   len(src),
		CompressedSize: len(out),
		NumThreads:     1,
		Algorithm:      "lz77",
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

	if len(src) < 8 || src[0] != magic[0] || src[1] != magic[1] || src[2] != magic[2] || src[3] != magic[3] {
		return nil, codec.Stats{}, cerrors.New(cerrors.CorruptFrame, "lz77: missing LZ77 magic header")
	}
	count := binary.BigEndian.Uint32(src[4:8])
	pos := 8

	out := make([]byte, 0, len(src))
	for k := uint32(0); k < count; k++ {
		if pos >= len(src) {
			return nil, codec.Stats{}, cerrors.New(cerrors.TruncatedStream, "lz77: stream ended before token %d of %d", k, count)
		}
		tag := src[pos]
		pos++
		switch tag {
		case tagLiteral:
			if pos >= len(src) {
				return nil, codec.Stats{}, cerrors.New(cerrors.TruncatedStream, "lz77: literal token missing its byte")
			}
			out = append(out, src[pos])
			pos++
		case tagMatch:
			if pos+4 > len(src) {
				return nil, codec.Stats{}, cerrors.New(cerrors.TruncatedStream, "lz77: match token truncated")
			}
			distance := int(binary.BigEndian.Uint16(src[pos : pos+2]))
			length := int(src[pos+2])
			follow := src[pos+3]
			pos += 4

			if distance < 1 || distance > len(out) {
				return nil, codec.Stats{}, cerrors.New(cerrors.BadReference, "lz77: distance %d invalid against %d decoded bytes", distance, len(out))
			}
			copyStart := len(out) - distance
			for j := 0; j < length; j++ {
				out = append(out, out[copyStart+j])
			}
			out = append(out, follow)
		default:
			return nil, codec.Stats{}, cerrors.New(cerrors.CorruptFrame, "lz77: unknown token tag 0x%02x", tag)
		}
	}

	stats := codec.Stats{
		OriginalSize:   len(out),
		CompressedSize: len(src),
		NumThreads:     1,
		Algorithm:      "lz77",
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
