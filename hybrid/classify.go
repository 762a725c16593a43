package hybrid

import (
	"github.com/joaogasparp/compressor-system/internal/entropy"
	"github.com/joaogasparp/compressor-system/internal/profile"
)

// blockType is the Hybrid classifier's advisory verdict for a block. It
// is recorded on the wire for diagnostics, but the decoder never relies
// on it to pick a primitive — see primitiveTag in hybrid.go.
type blockType byte

const (
	lowEntropy     blockType = 0
	highRepetition blockType = 1
	random         blockType = 2
	mixed          blockType = 3
)

const (
	entropyLowThreshold   = 0.3
	repetitionThreshold   = 0.6
	localEntropyThreshold = 0.8
	entropyHighThreshold  = 0.7
)

// classify computes the three statistical features and returns the
// block type they select, per the thresholds fixed on the wire.
func classify(block []byte) blockType {
	ent := entropy.NormalizedShannon(block)
	if ent < entropyLowThreshold {
		return lowEntropy
	}
	if profile.Repetition(block) > repetitionThreshold {
		return highRepetition
	}
	if profile.LocalEntropy(block) > localEntropyThreshold && ent > entropyHighThreshold {
		return random
	}
	return mixed
}

// blockSizeFor computes the adaptive block size for a total input of n
// bytes, per the three-tier rule fixed on the wire.
func blockSizeFor(n int) int {
	switch {
	case n < 16384:
		bs := n / 4
		if bs < 4096 {
			bs = 4096
		}
		return bs
	case n < 1048576:
		return 16384
	default:
		bs := n / 64
		if bs > 65536 {
			bs = 65536
		}
		return bs
	}
}
