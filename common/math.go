package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// TicksPerSecond matches Ebitengine's default update rate.
	TicksPerSecond = 60
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Wrap folds v back into [lo, hi). A zero or negative span returns lo.
func Wrap(v, lo, hi float64) float64 {
	span := hi - lo
	if span <= 0 {
		return lo
	}
	off := v - lo
	off -= span * float64(int64(off/span))
	if off < 0 {
		off += span
	}
	return lo + off
}
