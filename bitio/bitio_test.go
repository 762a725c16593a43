package bitio_test

import (
	"testing"

	"github.com/joaogasparp/compressor-system/bitio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterReader_RoundTrip(t *testing.T) {
	values := []struct {
		v uint32
		n int
	}{
		{0x1, 1},
		{0x0, 1},
		{0x5, 3},
		{0xFF, 8},
		{0x3FF, 10},
		{0xABCDE, 20},
	}

	w := bitio.NewWriter(nil)
	for _, tc := range values {
		w.WriteBits(tc.v, tc.n)
	}
	w.Flush()

	r := bitio.NewReader(w.Bytes())
	for _, tc := range values {
		got, err := r.ReadBits(tc.n)
		require.NoError(t, err)
		assert.Equal(t, tc.v, got)
	}
}

func TestWriter_BitOrderIsMSBFirst(t *testing.T) {
	w := bitio.NewWriter(nil)
	w.WriteBits(0b1011, 4)
	w.Flush()
	require.Len(t, w.Bytes(), 1)
	assert.Equal(t, byte(0b1011_0000), w.Bytes()[0])
}

func TestFlush_Idempotent(t *testing.T) {
	w := bitio.NewWriter(nil)
	w.WriteBits(1, 1)
	w.Flush()
	first := append([]byte{}, w.Bytes()...)
	w.Flush()
	assert.Equal(t, first, w.Bytes())
}

func TestReader_TruncatedStream(t *testing.T) {
	r := bitio.NewReader([]byte{0xFF})
	_, err := r.ReadBits(8)
	require.NoError(t, err)
	_, err = r.ReadBits(1)
	assert.Error(t, err)
}

func TestReader_HasMore(t *testing.T) {
	r := bitio.NewReader([]byte{0xAB})
	assert.True(t, r.HasMore())
	_, err := r.ReadBits(8)
	require.NoError(t, err)
	assert.False(t, r.HasMore())
}
