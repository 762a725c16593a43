package benchmark_test

import (
	"context"
	"testing"

	compressor "github.com/joaogasparp/compressor-system"
	"github.com/joaogasparp/compressor-system/benchmark"
	"github.com/joaogasparp/compressor-system/cerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHarness_RunAllCodecsSucceed(t *testing.T) {
	h := &benchmark.Harness{Registry: compressor.NewRegistry()}
	data := []byte("the quick brown fox jumps over the lazy dog, repeated. " +
		"the quick brown fox jumps over the lazy dog, repeated.")

	results := h.Run(context.Background(), []string{"rle", "huffman", "lz77", "hybrid"}, data)
	require.Len(t, results, 4)
	for _, r := range results {
		assert.True(t, r.Success, "%s: %v", r.Name, r.Err)
		assert.Equal(t, len(data), r.Stats.OriginalSize)
	}
}

func TestHarness_UnsupportedCodecName(t *testing.T) {
	h := &benchmark.Harness{Registry: compressor.NewRegistry()}
	results := h.Run(context.Background(), []string{"quantum"}, []byte("data"))
	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.True(t, cerrors.Is(results[0].Err, cerrors.Unsupported))
}

func TestHarness_CancelledContextSkipsRemaining(t *testing.T) {
	h := &benchmark.Harness{Registry: compressor.NewRegistry()}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := h.Run(ctx, []string{"rle", "huffman"}, []byte("data"))
	require.Len(t, results, 2)
	for _, r := range results {
		assert.False(t, r.Success)
		assert.ErrorIs(t, r.Err, context.Canceled)
	}
}
