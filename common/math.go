package common

// Clamp limits v to [lo, hi]. If hi < lo, lo wins.
func Clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
