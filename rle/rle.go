// Package rle implements run-length encoding in two wire variants: a
// plain escape-byte format and an enhanced tagged-token format, chosen
// automatically from the input's Shannon entropy (low-entropy input,
// dominated by long runs, gets the denser enhanced encoding).
//
// The alternating run-token / literal-run-token framing is modelled on
// lz4/block.go's token loop in the pack examples: emit a token that
// describes what follows, then the payload, repeat.
package rle

import (
	"hash/crc32"
	"time"

	"github.com/joaogasparp/compressor-system/cerrors"
	"github.com/joaogasparp/compressor-system/codec"
	"github.com/joaogasparp/compressor-system/internal/entropy"
)

// enhancedMagic is the leading byte of an Enhanced-variant frame. Decode
// picks the variant from the first byte alone, so encodePlain never
// starts a Plain-variant frame with this byte: a leading literal 0xE1 is
// written as the one-byte run form 0xFF 0x01 0xE1 instead.
const enhancedMagic = 0xE1

// escapeByte is the Plain variant's escape marker.
const escapeByte = 0xFF

// entropyThreshold selects the Enhanced variant when the input's
// normalized Shannon entropy falls below it.
const entropyThreshold = 0.5

// Codec implements codec.Codec for run-length encoding.
type Codec struct{}

// New returns a fresh RLE codec instance.
func New() *Codec { return &Codec{} }

func (c *Codec) Info() codec.Info {
	return codec.Info{
		Name:             "rle",
		Description:      "run-length encoding with a plain escape-byte format and an enhanced tagged-token format",
		SupportsParallel: false,
		MinBlockSize:     1,
	}
}

func (c *Codec) OptimalBlockSize(n int) int {
	return n
}

func (c *Codec) EstimateRatio(b []byte) float64 {
	if len(b) == 0 {
		return 0
	}
	// RLE only pays off when runs dominate; approximate its ratio as
	// entropy plus a fixed per-run overhead fraction, capped to [0, 1].
	r := entropy.NormalizedShannon(b) + 0.05
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
		return nil, codec.Stats{}, cerrors.New(cerrors.EmptyInput, "rle: cannot encode empty input")
	}
	cfg = codec.Normalize(cfg)

	ent := entropy.NormalizedShannon(src)
	var out []byte
	if ent < entropyThreshold {
		codec.Logf(cfg, "rle: entropy %.3f < %.1f, using enhanced variant", ent, entropyThreshold)
		out = encodeEnhanced(src)
	} else {
		codec.Logf(cfg, "rle: entropy %.3f >= %.1f, using plain variant", ent, entropyThreshold)
		out = encodePlain(src)
	}

	stats := codec.Stats{
		OriginalSize:   len(src),
		CompressedSize: len(out),
		NumThreads:     1,
		Algorithm:      "rle",
		EncodeTime:     time.Since(start).Nanoseconds(),
	}
	if len(src) > 0 {
		stats.Ratio = float64(len(out)) / float64(len(src))
	}
	if cfg.VerifyIntegrity {
		stats.Checksum = crc32.ChecksumIEEE(src)
	}
	return out, stats, nil
}

func (c *Codec) Decode(src []byte, cfg codec.CompressionConfig) ([]byte, codec.Stats, error) {
	start := time.Now()
	cfg = codec.Normalize(cfg)
	var out []byte
	var err error
	if len(src) > 0 && src[0] == enhancedMagic {
		out, err = decodeEnhanced(src)
	} else {
		out, err = decodePlain(src)
	}
	if err != nil {
		return nil, codec.Stats{}, err
	}

	stats := codec.Stats{
		OriginalSize:   len(out),
		CompressedSize: len(src),
		NumThreads:     1,
		Algorithm:      "rle",
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

// encodePlain partitions src into maximal equal-byte runs, capped at
// 255. Runs of length >= 3 use the 0xFF n v escape form; shorter runs
// and all other bytes are emitted as literals, with 0xFF itself escaped
// as 0xFF 0x00 and a leading 0xE1 written as 0xFF 0x01 0xE1.
func encodePlain(src []byte) []byte {
	dst := make([]byte, 0, len(src))
	i := 0
	for i < len(src) {
		b := src[i]
		runLen := 1
		for i+runLen < len(src) && src[i+runLen] == b && runLen < 255 {
			runLen++
		}
		if runLen >= 3 {
			dst = append(dst, escapeByte, byte(runLen), b)
			i += runLen
			continue
		}
		for k := 0; k < runLen; k++ {
			v := src[i+k]
			if v == escapeByte {
				dst = append(dst, escapeByte, 0x00)
			} else if len(dst) == 0 && v == enhancedMagic {
				dst = append(dst, escapeByte, 0x01, v)
			} else {
				dst = append(dst, v)
			}
		}
		i += runLen
	}
	return dst
}

func decodePlain(src []byte) ([]byte, error) {
	dst := make([]byte, 0, len(src))
	i := 0
	for i < len(src) {
		b := src[i]
		if b != escapeByte {
			dst = append(dst, b)
			i++
			continue
		}
		if i+1 >= len(src) {
			return nil, cerrors.New(cerrors.TruncatedStream, "rle: dangling escape at end of stream")
		}
		n := src[i+1]
		if n == 0 {
			dst = append(dst, escapeByte)
			i += 2
			continue
		}
		if i+2 >= len(src) {
			return nil, cerrors.New(cerrors.TruncatedStream, "rle: run escape missing value byte")
		}
		v := src[i+2]
		for k := byte(0); k < n; k++ {
			dst = append(dst, v)
		}
		i += 3
	}
	return dst, nil
}

// encodeEnhanced writes the 0xE1-prefixed tagged-token format: run
// tokens (high bit set, length 1..127 in the low 7 bits, emitted only
// for runs of length >= 4) interleaved with literal-run tokens (high
// bit clear, count 0..127 in the low 7 bits).
func encodeEnhanced(src []byte) []byte {
	dst := make([]byte, 0, len(src)+1)
	dst = append(dst, enhancedMagic)

	var lits []byte
	flush := func() {
		for len(lits) > 0 {
			n := len(lits)
			if n > 127 {
				n = 127
			}
			dst = append(dst, byte(n))
			dst = append(dst, lits[:n]...)
			lits = lits[n:]
		}
	}

	i := 0
	for i < len(src) {
		b := src[i]
		runLen := 1
		for i+runLen < len(src) && src[i+runLen] == b && runLen < 127 {
			runLen++
		}
		if runLen >= 4 {
			flush()
			dst = append(dst, 0x80|byte(runLen), b)
			i += runLen
			continue
		}
		lits = append(lits, b)
		i++
		if len(lits) == 127 {
			flush()
		}
	}
	flush()
	return dst
}

func decodeEnhanced(src []byte) ([]byte, error) {
	if len(src) == 0 || src[0] != enhancedMagic {
		return nil, cerrors.New(cerrors.CorruptFrame, "rle: missing enhanced-variant header")
	}
	dst := make([]byte, 0, len(src))
	i := 1
	for i < len(src) {
		tok := src[i]
		i++
		if tok&0x80 != 0 {
			n := tok & 0x7F
			if i >= len(src) {
				return nil, cerrors.New(cerrors.CorruptFrame, "rle: run token missing value byte")
			}
			v := src[i]
			i++
			for k := byte(0); k < n; k++ {
				dst = append(dst, v)
			}
			continue
		}
		m := int(tok & 0x7F)
		if i+m > len(src) {
			return nil, cerrors.New(cerrors.CorruptFrame, "rle: truncated literal run")
		}
		dst = append(dst, src[i:i+m]...)
		i += m
	}
	return dst, nil
}
