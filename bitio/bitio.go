// Package bitio provides an MSB-first bit writer and reader over a
// caller-supplied byte buffer. It backs the Huffman codec's bit-packed
// codewords; no other codec in this module needs bit-level granularity.
//
// The writer and reader are the mirror image of each other: writing a
// sequence of WriteBits calls and then reading the same n-values back in
// order with ReadBits recovers the original values exactly, as long as
// the reader is told how many values to expect (the byte stream carries
// no self-delimiting end marker — trailing padding bits are ignored).
package bitio

import "github.com/joaogasparp/compressor-system/cerrors"

// Writer accumulates bits MSB-first into a partial byte and appends
// completed bytes to an externally supplied buffer.
type Writer struct {
	dst   []byte
	cur   byte
	nbits uint // number of valid bits already packed into cur, right-justified until Flush shifts them up
}

// NewWriter returns a Writer that appends to dst. dst may be nil.
func NewWriter(dst []byte) *Writer {
	return &Writer{dst: dst}
}

// WriteBits packs the low n bits of value into the stream, most
// significant bit first. 1 <= n <= 24.
func (w *Writer) WriteBits(value uint32, n int) {
	for i := n - 1; i >= 0; i-- {
		bit := byte((value >> uint(i)) & 1)
		w.cur = w.cur<<1 | bit
		w.nbits++
		if w.nbits == 8 {
			w.dst = append(w.dst, w.cur)
			w.cur = 0
			w.nbits = 0
		}
	}
}

// Flush emits the partial byte, left-padded in meaning (the already
// written bits occupy the high-order positions) and zero-padded in the
// low bits. It is idempotent: calling it again without an intervening
// WriteBits does nothing.
func (w *Writer) Flush() {
	if w.nbits == 0 {
		return
	}
	w.cur <<= 8 - w.nbits
	w.dst = append(w.dst, w.cur)
	w.cur = 0
	w.nbits = 0
}

// Bytes returns the buffer written so far, including any bytes supplied
// to NewWriter. Call Flush first to include a trailing partial byte.
func (w *Writer) Bytes() []byte {
	return w.dst
}

// Reader is the dual of Writer: it reads bits MSB-first from a fixed
// byte slice.
type Reader struct {
	src     []byte
	bytePos int
	bitPos  uint // 0..7, number of bits already consumed from src[bytePos]
}

// NewReader returns a Reader over src.
func NewReader(src []byte) *Reader {
	return &Reader{src: src}
}

// HasMore reports whether at least one unread bit remains.
func (r *Reader) HasMore() bool {
	return r.bytePos < len(r.src)
}

// ReadBits reads n bits MSB-first and returns them right-justified in a
// uint32. It fails with a TruncatedStream error if src is exhausted
// before n bits have been read.
func (r *Reader) ReadBits(n int) (uint32, error) {
	var result uint32
	for i := 0; i < n; i++ {
		if r.bytePos >= len(r.src) {
			return 0, cerrors.New(cerrors.TruncatedStream, "ran out of bits after %d of %d", i, n)
		}
		bit := (r.src[r.bytePos] >> (7 - r.bitPos)) & 1
		result = result<<1 | uint32(bit)
		r.bitPos++
		if r.bitPos == 8 {
			r.bitPos = 0
			r.bytePos++
		}
	}
	return result, nil
}
