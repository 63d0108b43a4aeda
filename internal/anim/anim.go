// Package anim holds the stateless animation primitives used by the frame
// compositor. Every function is a pure mapping from elapsed frames to a
// value; there are no objects tracking time internally, which is what keeps
// frame rendering deterministic and order-independent.
package anim

// Lerp performs linear interpolation between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
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

// Interpolate maps v from [inStart, inEnd] to [outStart, outEnd], clamped to
// the output range. Entrance windows rely on the clamp: once the window
// elapses the value holds its final state with no overshoot.
func Interpolate(v, inStart, inEnd, outStart, outEnd float64) float64 {
	if inEnd == inStart {
		return outEnd
	}
	t := Clamp((v-inStart)/(inEnd-inStart), 0, 1)
	return Lerp(outStart, outEnd, t)
}

// EaseOutCubic decelerates toward 1.
func EaseOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

// EaseInOutCubic applies smooth easing on both ends.
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}
