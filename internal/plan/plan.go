package plan

import "math"

// Slide is one content unit of a lesson video: a heading, its key points and
// an optional secondary visual (code snippet or image).
type Slide struct {
	Title       string   `json:"title"`
	Bullets     []string `json:"bullets"`
	Narration   string   `json:"narration,omitempty"`
	CodeSnippet string   `json:"codeSnippet,omitempty"`
	ImagePath   string   `json:"imagePath,omitempty"`
	VisualHint  string   `json:"visualHint,omitempty"`
}

// SlideTiming marks the half-open interval [StartSec, EndSec) during which
// the slide at SlideIndex is on screen.
type SlideTiming struct {
	SlideIndex int     `json:"slideIndex"`
	StartSec   float64 `json:"startSec"`
	EndSec     float64 `json:"endSec"`
}

// LessonVideoPlan is the complete, immutable description of one lesson video.
// It is produced once, after narration audio has been synthesized and
// measured, and consumed read-only for the duration of a render job.
type LessonVideoPlan struct {
	LessonID         string        `json:"lessonId"`
	Title            string        `json:"title"`
	Slides           []Slide       `json:"slides"`
	TotalDurationSec float64       `json:"totalDurationSec"`
	SlideTimings     []SlideTiming `json:"slideTimings"`
}

// TotalFrames returns the number of frames the render job produces at the
// given frame rate.
func (p *LessonVideoPlan) TotalFrames(fps int) int {
	return int(math.Round(p.TotalDurationSec * float64(fps)))
}

// HasSecondary reports whether the slide renders a secondary panel at all.
func (s *Slide) HasSecondary() bool {
	return s.ImagePath != "" || s.CodeSnippet != ""
}
