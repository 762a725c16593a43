package hybrid

// diffEncode applies byte differencing: the first byte passes through
// unchanged, and every later byte becomes the difference (mod 256) from
// its predecessor. Run-heavy and slowly-varying inputs turn into
// long runs of small/zero values, which helps the LOW_ENTROPY and
// HIGH_REPETITION paths. diffDecode reverses it with a running sum.
func diffEncode(in []byte) []byte {
	if len(in) == 0 {
		return in
	}
	out := make([]byte, len(in))
	out[0] = in[0]
	for i := 1; i < len(in); i++ {
		out[i] = in[i] - in[i-1]
	}
	return out
}

func diffDecode(diffed []byte) []byte {
	if len(diffed) == 0 {
		return diffed
	}
	out := make([]byte, len(diffed))
	out[0] = diffed[0]
	for i := 1; i < len(diffed); i++ {
		out[i] = out[i-1] + diffed[i]
	}
	return out
}
