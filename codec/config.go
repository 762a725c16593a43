// Package codec defines the interface every compressor in this module
// implements, and the small set of types (CompressionConfig, Stats, Info)
// shared between the root registry and each codec's own package. It has
// no dependencies beyond the standard library and internal/diag, so that
// rle, huffman, lz77, and hybrid can all import it without creating an
// import cycle back to the root package that wires them into a Registry.
package codec

import "github.com/joaogasparp/compressor-system/internal/diag"

// CompressionConfig carries the optional, codec-independent parameters
// every codec's Encode and Decode accept. The zero value is a valid
// config: it selects each codec's own default block size, single-
// threaded operation, integrity verification on, and no logging.
type CompressionConfig struct {
	// BlockSize overrides a codec's default block size. Zero means
	// "use the codec's own default" (see Codec.OptimalBlockSize).
	BlockSize int

	// NumThreads is advisory; the core codecs in this module are
	// single-threaded per call regardless of its value. It exists so
	// that callers composing their own parallel front end over several
	// codec instances have somewhere to record their intent.
	NumThreads int

	// VerifyIntegrity, when true (the default), makes Encode attach a
	// CRC-32 of the raw input to Stats, and makes Decode attach a CRC-32
	// of the decoded output to its Stats. No frame carries a checksum, so
	// Decode does not compare the two; that comparison is left to the
	// caller.
	VerifyIntegrity bool

	// Verbose enables informational logging to the standard logger
	// during Encode/Decode. It never changes the bytes produced.
	Verbose bool
}

// DefaultConfig returns the documented defaults spelled out: single
// threaded, integrity verification on, no logging, codec-default block
// size.
func DefaultConfig() CompressionConfig {
	return CompressionConfig{
		NumThreads:      1,
		VerifyIntegrity: true,
	}
}

// Logf writes a verbose-only diagnostic line, mirroring the debug-gated
// println/printf helpers in zstd/zstd.go: a no-op unless the caller's
// config asked for logging on this particular call.
func Logf(cfg CompressionConfig, format string, args ...interface{}) {
	diag.Logf(cfg.Verbose, format, args...)
}

// Normalize fills in documented defaults for a caller-supplied config.
// A Go zero value can't distinguish "I want VerifyIntegrity off" from
// "I didn't set it", so the convention used throughout this module is:
// a totally zero-valued CompressionConfig means "use the defaults", and
// any other value is taken at face value, including an explicit
// VerifyIntegrity: false.
func Normalize(cfg CompressionConfig) CompressionConfig {
	if cfg == (CompressionConfig{}) {
		return DefaultConfig()
	}
	if cfg.NumThreads == 0 {
		cfg.NumThreads = 1
	}
	return cfg
}
