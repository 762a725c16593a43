package codec

// Info describes a codec's identity and capabilities. It is static per
// codec type; it never depends on the data being compressed.
type Info struct {
	Name             string
	Description      string
	SupportsParallel bool
	MinBlockSize     int
}

// Stats reports the outcome of a single Encode or Decode call. The
// original/compressed size pair is always populated, the checksum only
// when VerifyIntegrity is set; EncodeTime/DecodeTime are populated by
// whichever of the two operations just ran (the other is left at zero).
type Stats struct {
	OriginalSize   int
	CompressedSize int
	Ratio          float64
	EncodeTime     int64 // nanoseconds
	DecodeTime     int64 // nanoseconds
	Checksum       uint32
	NumThreads     int

	// Blocks is populated only by the Hybrid codec: the number of
	// blocks the input was partitioned into. Zero for primitive codecs.
	Blocks int

	// Algorithm names the primitive that actually produced the bytes.
	// For a primitive codec this always equals Info.Name; for Hybrid it
	// is the primitive's name when every block used the same one, and
	// "hybrid" when blocks used different primitives. The empty string
	// is never returned.
	Algorithm string
}

// Codec is the capability set every compressor in this module exposes:
// Run-Length Encoding, Huffman, LZ77, and the Hybrid meta-codec all
// implement it, and the root package's Registry hands out fresh
// instances of each by name.
//
// The set of implementations is closed (spec.md §9 prefers a closed
// enum-style dispatch here), but representing it as an interface keeps
// each codec's package independently importable without a central
// switch statement needing to know about all four.
type Codec interface {
	// Info returns this codec's static identity and capabilities.
	Info() Info

	// Encode compresses src into a self-describing frame. It fails only
	// with EmptyInput (for codecs whose frame has no empty
	// representation) or Unsupported (for an unsatisfiable cfg).
	Encode(src []byte, cfg CompressionConfig) ([]byte, Stats, error)

	// Decode reverses Encode. It never returns partial output: callers
	// see either the full original bytes or an error.
	Decode(src []byte, cfg CompressionConfig) ([]byte, Stats, error)

	// EstimateRatio returns an approximate compressed/original size
	// ratio in [0, 1], without actually compressing b. It is advisory,
	// used for reporting and by Hybrid's block classifier; it is never
	// part of the correctness contract.
	EstimateRatio(b []byte) float64

	// OptimalBlockSize returns the block size this codec would choose
	// for an input of n bytes, absent an explicit override in
	// CompressionConfig.BlockSize.
	OptimalBlockSize(n int) int
}
