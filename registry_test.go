package compressor_test

import (
	"testing"

	compressor "github.com/joaogasparp/compressor-system"
	"github.com/joaogasparp/compressor-system/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_ListIsFixedOrder(t *testing.T) {
	r := compressor.NewRegistry()
	assert.Equal(t, []string{"rle", "huffman", "lz77", "hybrid"}, r.List())
}

func TestRegistry_CreateKnownCodecs(t *testing.T) {
	r := compressor.NewRegistry()
	for _, name := range r.List() {
		c, ok := r.Create(name)
		require.True(t, ok, "expected %q to be registered", name)
		assert.Equal(t, name, c.Info().Name)
	}
}

func TestRegistry_CreateUnknownCodec(t *testing.T) {
	r := compressor.NewRegistry()
	_, ok := r.Create("quantum-fractal-neural")
	assert.False(t, ok)
}

func TestRegistry_InstancesAreIndependent(t *testing.T) {
	r := compressor.NewRegistry()
	a, _ := r.Create("rle")
	b, _ := r.Create("rle")
	assert.NotSame(t, a, b)
}

func TestChecksum_MatchesDecodedData(t *testing.T) {
	r := compressor.NewRegistry()
	c, _ := r.Create("huffman")
	data := []byte("checksum round trip")

	encoded, encodeStats, err := c.Encode(data, codec.CompressionConfig{VerifyIntegrity: true})
	require.NoError(t, err)

	decoded, decodeStats, err := c.Decode(encoded, codec.CompressionConfig{VerifyIntegrity: true})
	require.NoError(t, err)

	assert.Equal(t, data, decoded)
	assert.Equal(t, compressor.Checksum(data), encodeStats.Checksum)
	assert.Equal(t, compressor.Checksum(data), decodeStats.Checksum)
}
