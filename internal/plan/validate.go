package plan

import (
	"fmt"
	"math"
)

// timingEpsilon absorbs float error from producers that accumulate window
// boundaries by repeated addition. Anything larger is a real gap or overlap.
const timingEpsilon = 1e-6

// Validate checks every plan invariant once, before any frame is rendered.
// The returned error names the violated invariant so upstream
// plan-construction bugs stay diagnosable. Per-frame code assumes a
// validated plan and has no error path.
func (p *LessonVideoPlan) Validate() error {
	if len(p.Slides) == 0 {
		return fmt.Errorf("plan %s has no slides", p.LessonID)
	}
	if len(p.SlideTimings) == 0 {
		return fmt.Errorf("plan %s has no slide timings", p.LessonID)
	}
	if p.TotalDurationSec <= 0 {
		return fmt.Errorf("totalDurationSec must be positive, got %g", p.TotalDurationSec)
	}

	if first := p.SlideTimings[0].StartSec; math.Abs(first) > timingEpsilon {
		return fmt.Errorf("first timing must start at 0, starts at %g", first)
	}

	covered := make([]bool, len(p.Slides))
	for i, w := range p.SlideTimings {
		if w.SlideIndex < 0 || w.SlideIndex >= len(p.Slides) {
			return fmt.Errorf("timing %d references slide %d, plan has %d slides",
				i, w.SlideIndex, len(p.Slides))
		}
		covered[w.SlideIndex] = true

		if w.EndSec-w.StartSec <= timingEpsilon {
			return fmt.Errorf("timing %d (slide %d) has non-positive duration [%g, %g)",
				i, w.SlideIndex, w.StartSec, w.EndSec)
		}

		if i == 0 {
			continue
		}
		prev := p.SlideTimings[i-1]
		switch delta := w.StartSec - prev.EndSec; {
		case delta > timingEpsilon:
			return fmt.Errorf("timing gap between slide %d and %d: slide %d ends at %g, next starts at %g",
				prev.SlideIndex, w.SlideIndex, prev.SlideIndex, prev.EndSec, w.StartSec)
		case delta < -timingEpsilon:
			return fmt.Errorf("timing overlap between slide %d and %d: slide %d ends at %g, next starts at %g",
				prev.SlideIndex, w.SlideIndex, prev.SlideIndex, prev.EndSec, w.StartSec)
		}
	}

	for idx, ok := range covered {
		if !ok {
			return fmt.Errorf("slide %d has no timing window", idx)
		}
	}

	last := p.SlideTimings[len(p.SlideTimings)-1]
	if math.Abs(last.EndSec-p.TotalDurationSec) > timingEpsilon {
		return fmt.Errorf("totalDurationSec %g does not match last timing end %g",
			p.TotalDurationSec, last.EndSec)
	}

	return nil
}
