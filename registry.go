package compressor

import (
	"sort"

	"github.com/joaogasparp/compressor-system/codec"
	"github.com/joaogasparp/compressor-system/huffman"
	"github.com/joaogasparp/compressor-system/hybrid"
	"github.com/joaogasparp/compressor-system/lz77"
	"github.com/joaogasparp/compressor-system/rle"
)

// order fixes the Registry's reported listing order, independent of Go
// map iteration order, so benchmark output stays reproducible across
// runs.
var order = []string{"rle", "huffman", "lz77", "hybrid"}

// Registry is a process-wide, immutable mapping from a codec's short
// name to a factory producing a fresh instance. It is built once by
// NewRegistry and never mutated afterward, so it is safe to share
// across goroutines without a mutex.
type Registry struct {
	factories map[string]func() codec.Codec
}

// NewRegistry returns a Registry pre-populated with the four built-in
// codecs.
func NewRegistry() *Registry {
	return &Registry{
		factories: map[string]func() codec.Codec{
			"rle":     func() codec.Codec { return rle.New() },
			"huffman": func() codec.Codec { return huffman.New() },
			"lz77":    func() codec.Codec { return lz77.New() },
			"hybrid":  func() codec.Codec { return hybrid.New() },
		},
	}
}

// Create returns a fresh codec instance for name, or false if name is
// not registered.
func (r *Registry) Create(name string) (codec.Codec, bool) {
	factory, ok := r.factories[name]
	if !ok {
		return nil, false
	}
	return factory(), true
}

// List returns the registered codec names in a fixed order.
func (r *Registry) List() []string {
	names := make([]string, 0, len(order))
	for _, name := range order {
		if _, ok := r.factories[name]; ok {
			names = append(names, name)
		}
	}
	// Any name registered outside the fixed set is appended sorted, so
	// List never silently drops an entry. NewRegistry registers only the
	// fixed set and nothing adds entries afterward, so this is empty for
	// every Registry built here.
	var extra []string
	for name := range r.factories {
		known := false
		for _, n := range order {
			if n == name {
				known = true
				break
			}
		}
		if !known {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}
