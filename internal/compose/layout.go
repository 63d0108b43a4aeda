package compose

import (
	"fmt"

	"github.com/ElviraMjeshtri/book-to-course/internal/anim"
	"github.com/ElviraMjeshtri/book-to-course/internal/plan"
	"github.com/ElviraMjeshtri/book-to-course/internal/timeline"
)

// MaxBullets is the display cap: slides with more key points render the
// first MaxBullets plus an overflow indicator.
const MaxBullets = 5

const (
	titleEntranceFrames  = 15
	bulletStaggerFrames  = 5
	bulletWindowFrames   = 12
	bulletSlidePx        = 16.0
	panelDelayFrames     = 8
	panelWindowFrames    = 18
	panelStartScale      = 0.92
	titleStartScale      = 0.8
	avatarEntranceFrames = 20
	idlePeriodFrames     = 90
	idleAmplitudePx      = 3.0
)

// SecondaryKind identifies the slide's secondary visual panel.
type SecondaryKind int

const (
	SecondaryNone SecondaryKind = iota
	SecondaryImage
	SecondaryCode
)

// BulletLayout is one visible bullet with its entrance state.
type BulletLayout struct {
	Text    string
	Opacity float64
	OffsetY float64
}

// SlideLayout is every derived quantity a frame needs, computed before any
// pixel is touched. It is a pure function of (frameIndex, plan), which is
// what the determinism tests exercise.
type SlideLayout struct {
	SlideIndex   int
	FrameInSlide int

	TitleScale   float64
	TitleOpacity float64

	Bullets       []BulletLayout
	OverflowLabel string

	Secondary    SecondaryKind
	PanelScale   float64
	PanelOpacity float64

	ProgressFill float64
	DotCount     int

	ShowBadge bool
}

// BuildLayout resolves the active slide for a frame and derives all
// animation values from frame-in-slide (or the global frame index for the
// lesson-wide progress fill).
func BuildLayout(p *plan.LessonVideoPlan, frameIndex, fps int) SlideLayout {
	w, frameInSlide := timeline.ResolveFrame(p.SlideTimings, frameIndex, fps)
	slide := p.Slides[w.SlideIndex]
	f := float64(frameInSlide)

	layout := SlideLayout{
		SlideIndex:   w.SlideIndex,
		FrameInSlide: frameInSlide,
		TitleScale:   anim.SpringBetween(f, fps, titleStartScale, 1.0, anim.DefaultSpring),
		TitleOpacity: anim.Interpolate(f, 0, titleEntranceFrames, 0, 1),
		DotCount:     len(p.Slides),
	}

	visible := slide.Bullets
	if len(visible) > MaxBullets {
		layout.OverflowLabel = fmt.Sprintf("+%d more...", len(visible)-MaxBullets)
		visible = visible[:MaxBullets]
	}
	for i, text := range visible {
		start := float64(i * bulletStaggerFrames)
		opacity := anim.Interpolate(f, start, start+bulletWindowFrames, 0, 1)
		layout.Bullets = append(layout.Bullets, BulletLayout{
			Text:    text,
			Opacity: opacity,
			OffsetY: (1 - opacity) * bulletSlidePx,
		})
	}

	// Image wins over code when a slide carries both.
	switch {
	case slide.ImagePath != "":
		layout.Secondary = SecondaryImage
	case slide.CodeSnippet != "":
		layout.Secondary = SecondaryCode
	}
	if layout.Secondary != SecondaryNone {
		layout.PanelScale = anim.SpringBetween(f-panelDelayFrames, fps, panelStartScale, 1.0, anim.DefaultSpring)
		layout.PanelOpacity = anim.Interpolate(f, panelDelayFrames, panelDelayFrames+panelWindowFrames, 0, 1)
	}

	// The fill tracks lesson progress, not slide progress, so it never jumps
	// at a slide boundary; the spring only softens the ramp at video start.
	totalFrames := p.TotalFrames(fps)
	if totalFrames > 0 {
		frac := anim.Clamp(float64(frameIndex)/float64(totalFrames), 0, 1)
		layout.ProgressFill = anim.Spring(float64(frameIndex), fps, anim.GentleSpring) * frac
	}

	layout.ShowBadge = w.SlideIndex == len(p.Slides)-1

	return layout
}
