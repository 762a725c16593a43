package rle_test

import (
	"bytes"
	"testing"

	"github.com/joaogasparp/compressor-system/cerrors"
	"github.com/joaogasparp/compressor-system/codec"
	"github.com/joaogasparp/compressor-system/rle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, b []byte) []byte {
	c := rle.New()
	encoded, _, err := c.Encode(b, codec.CompressionConfig{})
	require.NoError(t, err)
	decoded, _, err := c.Decode(encoded, codec.CompressionConfig{})
	require.NoError(t, err)
	return decoded
}

func TestEncode_EmptyInput(t *testing.T) {
	c := rle.New()
	_, _, err := c.Encode(nil, codec.CompressionConfig{})
	require.Error(t, err)
	assert.True(t, cerrors.Is(err, cerrors.EmptyInput))
}

func TestRoundTrip_SingleByte(t *testing.T) {
	got := roundTrip(t, []byte{0x41})
	assert.Equal(t, []byte{0x41}, got)
}

func TestRoundTrip_AllIdentical(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 255, 256, 257, 100000} {
		b := bytes.Repeat([]byte{0x7A}, n)
		got := roundTrip(t, b)
		assert.Equal(t, b, got, "n=%d", n)
	}
}

func TestRoundTrip_FiveEscapeBytes(t *testing.T) {
	b := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	got := roundTrip(t, b)
	assert.Equal(t, b, got)
}

func TestRoundTrip_AllByteValues(t *testing.T) {
	b := make([]byte, 256)
	for i := range b {
		b[i] = byte(i)
	}
	got := roundTrip(t, b)
	assert.Equal(t, b, got)
}

func TestScenario_TenBytesOf0x41(t *testing.T) {
	b := bytes.Repeat([]byte{0x41}, 10)
	got := roundTrip(t, b)
	assert.Equal(t, b, got)
}

func TestScenario_ThreeFFBytesUsesEnhanced(t *testing.T) {
	// Zero-entropy input always selects the enhanced variant. A run of
	// only 3 bytes is below the run-token threshold (>= 4, per §4.3 and
	// confirmed against the original encoder), so it's packed as a
	// literal-run token rather than a run token.
	c := rle.New()
	b := []byte{0xFF, 0xFF, 0xFF}
	encoded, _, err := c.Encode(b, codec.CompressionConfig{})
	require.NoError(t, err)
	assert.Equal(t, byte(0xE1), encoded[0])

	decoded, _, err := c.Decode(encoded, codec.CompressionConfig{})
	require.NoError(t, err)
	assert.Equal(t, b, decoded)
}

func TestDecode_DanglingEscapeIsTruncatedStream(t *testing.T) {
	c := rle.New()
	_, _, err := c.Decode([]byte{0x01, 0xFF}, codec.CompressionConfig{})
	require.Error(t, err)
	assert.True(t, cerrors.Is(err, cerrors.TruncatedStream))
}

func TestDecode_EnhancedMissingValueByteIsCorruptFrame(t *testing.T) {
	c := rle.New()
	_, _, err := c.Decode([]byte{0xE1, 0x85}, codec.CompressionConfig{})
	require.Error(t, err)
	assert.True(t, cerrors.Is(err, cerrors.CorruptFrame))
}

func TestRoundTrip_RandomBytes(t *testing.T) {
	b := make([]byte, 4096)
	seed := uint32(12345)
	for i := range b {
		seed = seed*1664525 + 1013904223
		b[i] = byte(seed >> 24)
	}
	got := roundTrip(t, b)
	assert.Equal(t, b, got)
}
