package compose

import (
	"fmt"
	"testing"

	"github.com/ElviraMjeshtri/book-to-course/internal/plan"
)

func layoutPlan() *plan.LessonVideoPlan {
	return &plan.LessonVideoPlan{
		LessonID: "layout-test",
		Title:    "Concurrency Patterns",
		Slides: []plan.Slide{
			{Title: "Intro", Bullets: []string{"a", "b", "c"}},
			{Title: "Worker pools", Bullets: []string{"d"}, CodeSnippet: "go worker()"},
			{Title: "Recap", Bullets: []string{"e"}},
		},
		TotalDurationSec: 20,
		SlideTimings: []plan.SlideTiming{
			{SlideIndex: 0, StartSec: 0, EndSec: 7},
			{SlideIndex: 1, StartSec: 7, EndSec: 14},
			{SlideIndex: 2, StartSec: 14, EndSec: 20},
		},
	}
}

func TestBuildLayoutCapsBulletsWithOverflowLabel(t *testing.T) {
	p := layoutPlan()
	p.Slides[0].Bullets = []string{"one", "two", "three", "four", "five", "six", "seven"}

	layout := BuildLayout(p, 100, 30)
	if len(layout.Bullets) != MaxBullets {
		t.Fatalf("got %d bullets, want %d", len(layout.Bullets), MaxBullets)
	}
	if layout.OverflowLabel != "+2 more..." {
		t.Fatalf("overflow label %q, want %q", layout.OverflowLabel, "+2 more...")
	}
	for i, b := range layout.Bullets {
		if b.Text != p.Slides[0].Bullets[i] {
			t.Errorf("bullet %d: %q, want %q (original order)", i, b.Text, p.Slides[0].Bullets[i])
		}
	}
}

func TestBuildLayoutNoOverflowAtCap(t *testing.T) {
	p := layoutPlan()
	p.Slides[0].Bullets = []string{"one", "two", "three", "four", "five"}

	layout := BuildLayout(p, 100, 30)
	if layout.OverflowLabel != "" {
		t.Fatalf("exactly %d bullets produced overflow label %q", MaxBullets, layout.OverflowLabel)
	}
	if len(layout.Bullets) != 5 {
		t.Fatalf("got %d bullets, want 5", len(layout.Bullets))
	}
}

func TestBuildLayoutImageWinsOverCode(t *testing.T) {
	p := layoutPlan()
	p.Slides[0].CodeSnippet = "x := 1"
	p.Slides[0].ImagePath = "diagram.png"

	layout := BuildLayout(p, 30, 30)
	if layout.Secondary != SecondaryImage {
		t.Fatalf("secondary = %d, want image when both are set", layout.Secondary)
	}

	p.Slides[0].ImagePath = ""
	layout = BuildLayout(p, 30, 30)
	if layout.Secondary != SecondaryCode {
		t.Fatalf("secondary = %d, want code", layout.Secondary)
	}

	p.Slides[0].CodeSnippet = ""
	layout = BuildLayout(p, 30, 30)
	if layout.Secondary != SecondaryNone {
		t.Fatalf("secondary = %d, want none", layout.Secondary)
	}
}

func TestBuildLayoutEntranceRestartsAtSlideBoundary(t *testing.T) {
	p := layoutPlan()

	before := BuildLayout(p, 209, 30) // last frame of slide 0
	after := BuildLayout(p, 210, 30)  // first frame of slide 1

	if before.SlideIndex != 0 || after.SlideIndex != 1 {
		t.Fatalf("slides %d -> %d across boundary, want 0 -> 1", before.SlideIndex, after.SlideIndex)
	}
	if before.TitleOpacity != 1 {
		t.Errorf("settled slide title opacity %g, want 1", before.TitleOpacity)
	}
	if after.FrameInSlide != 0 {
		t.Errorf("frameInSlide %d after boundary, want 0", after.FrameInSlide)
	}
	if after.TitleOpacity != 0 {
		t.Errorf("title opacity %g at slide entry, want 0", after.TitleOpacity)
	}
	if after.TitleScale >= before.TitleScale {
		t.Errorf("title scale did not restart: %g -> %g", before.TitleScale, after.TitleScale)
	}
}

func TestBuildLayoutBulletStagger(t *testing.T) {
	p := layoutPlan()

	// At frame 6 of the slide, bullet 0 (window 0..12) is mid-entrance and
	// bullet 2 (window 10..22) has not started.
	layout := BuildLayout(p, 6, 30)
	if layout.Bullets[0].Opacity <= layout.Bullets[1].Opacity {
		t.Errorf("bullet 0 (%g) should lead bullet 1 (%g)", layout.Bullets[0].Opacity, layout.Bullets[1].Opacity)
	}
	if layout.Bullets[2].Opacity != 0 {
		t.Errorf("bullet 2 opacity %g before its window, want 0", layout.Bullets[2].Opacity)
	}

	// Offsets decay with opacity.
	if layout.Bullets[2].OffsetY != bulletSlidePx {
		t.Errorf("hidden bullet offset %g, want %g", layout.Bullets[2].OffsetY, bulletSlidePx)
	}

	// Well past the window everything is settled.
	layout = BuildLayout(p, 120, 30)
	for i, b := range layout.Bullets {
		if b.Opacity != 1 || b.OffsetY != 0 {
			t.Errorf("bullet %d not settled at frame 120: opacity %g offset %g", i, b.Opacity, b.OffsetY)
		}
	}
}

func TestBuildLayoutProgressIsLessonWide(t *testing.T) {
	p := layoutPlan()
	total := p.TotalFrames(30)

	// Monotonic across the whole lesson, including slide boundaries.
	prev := -1.0
	for frame := 0; frame < total; frame++ {
		fill := BuildLayout(p, frame, 30).ProgressFill
		if fill < prev {
			t.Fatalf("progress decreased at frame %d: %g -> %g", frame, prev, fill)
		}
		if fill < 0 || fill > 1 {
			t.Fatalf("progress out of range at frame %d: %g", frame, fill)
		}
		prev = fill
	}

	// It does not reset when the slide changes.
	atBoundary := BuildLayout(p, 210, 30).ProgressFill
	if atBoundary < 0.3 {
		t.Errorf("progress %g at frame 210, should be well past zero", atBoundary)
	}
}

func TestBuildLayoutBadgeOnLastSlideOnly(t *testing.T) {
	p := layoutPlan()
	if BuildLayout(p, 0, 30).ShowBadge {
		t.Error("badge shown on first slide")
	}
	if BuildLayout(p, 210, 30).ShowBadge {
		t.Error("badge shown on middle slide")
	}
	if !BuildLayout(p, 450, 30).ShowBadge {
		t.Error("badge missing on last slide")
	}
}

func TestBuildLayoutIsPure(t *testing.T) {
	p := layoutPlan()

	// Random-access evaluation must match sequential evaluation exactly.
	frames := []int{599, 0, 210, 37, 210, 0, 599}
	seen := map[int]string{}
	for _, frame := range frames {
		got := fmt.Sprintf("%+v", BuildLayout(p, frame, 30))
		if prev, ok := seen[frame]; ok && prev != got {
			t.Fatalf("frame %d produced different layouts:\n%s\n%s", frame, prev, got)
		}
		seen[frame] = got
	}
}
