package planner

import (
	"fmt"
	"math"

	"github.com/ElviraMjeshtri/book-to-course/internal/plan"
)

// BuildTimings converts measured per-slide narration durations into the
// contiguous half-open windows the timeline resolver consumes. Boundaries
// are accumulated in whole frames so contiguity holds exactly, with no float
// drift; every slide keeps at least one frame even if its narration measured
// to nothing.
func BuildTimings(durations []float64, fps int) ([]plan.SlideTiming, float64, error) {
	if len(durations) == 0 {
		return nil, 0, fmt.Errorf("no slide durations")
	}
	if fps <= 0 {
		return nil, 0, fmt.Errorf("fps must be positive, got %d", fps)
	}

	f := float64(fps)
	timings := make([]plan.SlideTiming, 0, len(durations))
	cumFrames := 0

	for i, d := range durations {
		if d < 0 {
			return nil, 0, fmt.Errorf("slide %d has negative duration %g", i, d)
		}
		frames := int(math.Round(d * f))
		if frames < 1 {
			frames = 1
		}
		timings = append(timings, plan.SlideTiming{
			SlideIndex: i,
			StartSec:   float64(cumFrames) / f,
			EndSec:     float64(cumFrames+frames) / f,
		})
		cumFrames += frames
	}

	return timings, float64(cumFrames) / f, nil
}

// AttachTimings fills a plan's timings and total duration from measured
// audio durations, one per slide in order.
func AttachTimings(p *plan.LessonVideoPlan, durations []float64, fps int) error {
	if len(durations) != len(p.Slides) {
		return fmt.Errorf("%d durations for %d slides", len(durations), len(p.Slides))
	}

	timings, total, err := BuildTimings(durations, fps)
	if err != nil {
		return err
	}

	p.SlideTimings = timings
	p.TotalDurationSec = total
	return nil
}
