// Package diag is the one-line verbose-logging helper shared by every
// codec package, gated by CompressionConfig.Verbose the way
// zstd/zstd.go gates its own debug/debugEncoder constants.
package diag

import "log"

// Logf writes a formatted line to the standard logger when enabled is
// true, and does nothing otherwise.
func Logf(enabled bool, format string, args ...interface{}) {
	if enabled {
		log.Printf(format, args...)
	}
}
