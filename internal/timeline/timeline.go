// Package timeline maps a point in video time to the active slide. The
// timings it consumes are sorted, contiguous and gapless (enforced by
// plan.Validate), so resolution is a plain scan over window boundaries.
package timeline

import (
	"github.com/ElviraMjeshtri/book-to-course/internal/plan"
)

// ResolveAt returns the timing window active at time t (seconds). Windows
// are half-open: a boundary time belongs to the window that starts there.
// Only end boundaries are scanned, so validation-tolerated float drift
// between adjacent windows cannot open a crack that matches nothing; a
// query inside such a micro-gap resolves to the next window. Queries at or
// past the final end fall back to the last window; the final rendered frame
// can land exactly on the total duration through rounding, and that frame
// still shows the closing slide.
func ResolveAt(timings []plan.SlideTiming, t float64) plan.SlideTiming {
	if len(timings) == 0 {
		return plan.SlideTiming{}
	}

	for _, w := range timings {
		if t < w.EndSec {
			return w
		}
	}

	return timings[len(timings)-1]
}

// ResolveFrame resolves a frame index at the given frame rate and returns
// the active window together with the number of frames elapsed since the
// window began. Frame-in-slide is the sole clock for per-slide entrance
// animations.
func ResolveFrame(timings []plan.SlideTiming, frameIndex, fps int) (plan.SlideTiming, int) {
	t := float64(frameIndex) / float64(fps)
	w := ResolveAt(timings, t)

	frameInSlide := frameIndex - int(w.StartSec*float64(fps)+0.5)
	if frameInSlide < 0 {
		frameInSlide = 0
	}
	return w, frameInSlide
}
