// Package entropy computes Shannon byte entropy, the statistical
// feature RLE's variant selector, Huffman's EstimateRatio, and Hybrid's
// block classifier all build on.
//
// No codec in the retrieval pack exposes byte-entropy estimation as a
// standalone function (klauspost/compress's FSE tables and brotli's
// histogram code compute frequency tables internally but never surface
// an entropy number), so this is implemented directly against the
// standard library's math.Log2 rather than grounded on a pack example;
// see DESIGN.md for the justification.
package entropy

import "math"

// Shannon returns the Shannon entropy of b in bits per byte, in
// [0, 8]. An empty input has zero entropy by convention.
func Shannon(b []byte) float64 {
	if len(b) == 0 {
		return 0
	}
	var freq [256]int
	for _, c := range b {
		freq[c]++
	}
	n := float64(len(b))
	var h float64
	for _, f := range freq {
		if f == 0 {
			continue
		}
		p := float64(f) / n
		h -= p * math.Log2(p)
	}
	return h
}

// NormalizedShannon returns Shannon(b) normalized to [0, 1] by dividing
// by 8, the form spec.md calls "H(b)/8" throughout.
func NormalizedShannon(b []byte) float64 {
	return Shannon(b) / 8
}
