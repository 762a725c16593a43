// Package profile computes the cheap statistical features Hybrid's
// block classifier (spec.md §4.5) and LZ77's ratio estimator use to
// characterize a slice of bytes without actually compressing it.
package profile

import "github.com/joaogasparp/compressor-system/internal/entropy"

const lookback = 64
const windowSize = 256
const windowStride = 128

// Repetition returns the fraction of 3-grams in b that also occur
// earlier in b within a 64-byte look-back window — a cheap proxy for
// how repetitive the data is, used in place of an actual match search.
func Repetition(b []byte) float64 {
	if len(b) < 3 {
		return 0
	}
	total := len(b) - 2
	matched := 0
	for i := 0; i < total; i++ {
		lo := i - lookback
		if lo < 0 {
			lo = 0
		}
		found := false
		for j := lo; j < i; j++ {
			if b[j] == b[i] && b[j+1] == b[i+1] && b[j+2] == b[i+2] {
				found = true
				break
			}
		}
		if found {
			matched++
		}
	}
	return float64(matched) / float64(total)
}

// LocalEntropy returns the mean Shannon entropy (normalized to [0,1])
// of 256-byte sub-windows of b, sliding by 128 bytes.
func LocalEntropy(b []byte) float64 {
	if len(b) == 0 {
		return 0
	}
	if len(b) <= windowSize {
		return entropy.NormalizedShannon(b)
	}
	var sum float64
	count := 0
	for start := 0; start < len(b); start += windowStride {
		end := start + windowSize
		if end > len(b) {
			end = len(b)
		}
		sum += entropy.NormalizedShannon(b[start:end])
		count++
		if end == len(b) {
			break
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
