package planner

import (
	"math"
	"strings"
	"testing"

	"github.com/ElviraMjeshtri/book-to-course/internal/plan"
)

func TestBuildTimingsIsGapless(t *testing.T) {
	durations := []float64{7.03, 6.98, 5.51, 4.204}
	timings, total, err := BuildTimings(durations, 30)
	if err != nil {
		t.Fatal(err)
	}

	if timings[0].StartSec != 0 {
		t.Errorf("first window starts at %g", timings[0].StartSec)
	}
	for i := 1; i < len(timings); i++ {
		if timings[i].StartSec != timings[i-1].EndSec {
			t.Errorf("boundary %d: %g != %g", i, timings[i].StartSec, timings[i-1].EndSec)
		}
		if timings[i].SlideIndex != i {
			t.Errorf("window %d references slide %d", i, timings[i].SlideIndex)
		}
	}
	if timings[len(timings)-1].EndSec != total {
		t.Errorf("last end %g != total %g", timings[len(timings)-1].EndSec, total)
	}

	// Boundaries snap to the frame grid.
	for i, w := range timings {
		frames := (w.EndSec - w.StartSec) * 30
		if math.Abs(frames-math.Round(frames)) > 1e-9 {
			t.Errorf("window %d duration %g is not frame-aligned", i, w.EndSec-w.StartSec)
		}
	}
}

func TestBuildTimingsMinimumOneFrame(t *testing.T) {
	timings, _, err := BuildTimings([]float64{5, 0, 0.001, 3}, 30)
	if err != nil {
		t.Fatal(err)
	}
	for i, w := range timings {
		if w.EndSec-w.StartSec < 1.0/30-1e-9 {
			t.Errorf("window %d narrower than one frame: [%g, %g)", i, w.StartSec, w.EndSec)
		}
	}
}

func TestBuildTimingsRejectsBadInput(t *testing.T) {
	if _, _, err := BuildTimings(nil, 30); err == nil {
		t.Error("empty durations accepted")
	}
	if _, _, err := BuildTimings([]float64{1, -2}, 30); err == nil {
		t.Error("negative duration accepted")
	}
	if _, _, err := BuildTimings([]float64{1}, 0); err == nil {
		t.Error("zero fps accepted")
	}
}

func TestAttachTimingsProducesValidPlan(t *testing.T) {
	p := &plan.LessonVideoPlan{
		LessonID: "attach-test",
		Title:    "Slices",
		Slides: []plan.Slide{
			{Title: "A"}, {Title: "B"}, {Title: "C"},
		},
	}
	if err := AttachTimings(p, []float64{6.2, 7.9, 5.433}, 30); err != nil {
		t.Fatal(err)
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("attached plan fails validation: %v", err)
	}
	if len(p.SlideTimings) != 3 {
		t.Fatalf("%d timings", len(p.SlideTimings))
	}
}

func TestAttachTimingsLengthMismatch(t *testing.T) {
	p := &plan.LessonVideoPlan{Slides: []plan.Slide{{Title: "A"}, {Title: "B"}}}
	if err := AttachTimings(p, []float64{3}, 30); err == nil {
		t.Fatal("mismatched durations accepted")
	}
}

const sampleScript = `Welcome to this lesson on goroutines. A goroutine is a lightweight thread managed by the Go runtime. Starting one costs only a few kilobytes of stack. The runtime multiplexes goroutines onto operating system threads. Channels let goroutines communicate safely. A send on an unbuffered channel blocks until a receiver is ready. This pairing is what makes channels a synchronization primitive. Buffered channels decouple the two sides up to their capacity. Select lets a goroutine wait on several channel operations at once. A default case makes the select non-blocking. Always close channels from the sending side. Closing signals completion to every receiver. The range loop over a channel exits when it is closed. Worker pools combine all of these pieces. A fixed set of workers pulls jobs from a shared channel. Results flow back over a second channel. This pattern bounds concurrency without locks. Remember that goroutines leak when nothing ever unblocks them. Keep every goroutine's exit path in mind as you design.`

func TestPlanFromScriptSlideCount(t *testing.T) {
	p := PlanFromScript("l1", "Goroutines", sampleScript, "")
	if n := len(p.Slides); n < 4 || n > 6 {
		t.Fatalf("%d slides, want 4..6", n)
	}
	for i, s := range p.Slides {
		if strings.TrimSpace(s.Title) == "" {
			t.Errorf("slide %d has no title", i)
		}
		if len(s.Bullets) == 0 || len(s.Bullets) > 5 {
			t.Errorf("slide %d has %d bullets", i, len(s.Bullets))
		}
		if strings.TrimSpace(s.Narration) == "" {
			t.Errorf("slide %d has no narration", i)
		}
	}
}

func TestPlanFromScriptHeadlineSkipsGreeting(t *testing.T) {
	p := PlanFromScript("l1", "Goroutines", sampleScript, "")
	if strings.HasPrefix(strings.ToLower(p.Slides[0].Title), "welcome") {
		t.Errorf("headline kept the greeting opener: %q", p.Slides[0].Title)
	}
}

func TestPlanFromScriptPlacesSnippetOnce(t *testing.T) {
	snippet := "ch := make(chan int)\ngo func() { ch <- 1 }()"
	p := PlanFromScript("l1", "Goroutines", sampleScript, snippet)

	count := 0
	for i, s := range p.Slides {
		if s.CodeSnippet != "" {
			count++
			if i == 0 {
				t.Error("snippet placed on the opening slide")
			}
		}
	}
	if count != 1 {
		t.Fatalf("snippet appears on %d slides, want 1", count)
	}
}

func TestPlanFromScriptNarrationCoversScript(t *testing.T) {
	p := PlanFromScript("l1", "Goroutines", sampleScript, "")

	var joined strings.Builder
	for _, s := range p.Slides {
		joined.WriteString(s.Narration)
		joined.WriteString(" ")
	}
	for _, probe := range []string{"lightweight thread", "Worker pools", "exit path"} {
		if !strings.Contains(joined.String(), probe) {
			t.Errorf("narration lost script text %q", probe)
		}
	}
}

func TestApplyNarrationsFillsOnlyEmptySlides(t *testing.T) {
	slides := []plan.Slide{
		{Title: "A", Narration: "already written"},
		{Title: "B", Bullets: []string{"point"}},
		{Title: "C", Narration: "also written"},
	}
	ApplyNarrations(slides, "")

	if slides[0].Narration != "already written" {
		t.Errorf("existing narration replaced: %q", slides[0].Narration)
	}
	if strings.TrimSpace(slides[1].Narration) == "" {
		t.Error("empty narration not filled")
	}
	if !strings.Contains(slides[1].Narration, "B") {
		t.Errorf("fallback narration ignores slide content: %q", slides[1].Narration)
	}
}

func TestSplitSentencesHandlesAbbreviationsLoosely(t *testing.T) {
	got := splitSentences("First point. Second point! Third point? Trailing fragment")
	if len(got) != 4 {
		t.Fatalf("%d sentences: %q", len(got), got)
	}
	if got[3] != "Trailing fragment" {
		t.Errorf("trailing fragment lost: %q", got[3])
	}
}

func TestTruncateAtWord(t *testing.T) {
	long := "Channels let goroutines communicate safely without explicit locks in concurrent programs"
	got := truncateAtWord(long, 40, 20)
	if len([]rune(got)) > 41 {
		t.Fatalf("truncated to %d runes: %q", len([]rune(got)), got)
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("no ellipsis: %q", got)
	}
	if strings.Contains(strings.TrimSuffix(got, "…"), "  ") {
		t.Errorf("broken spacing: %q", got)
	}

	short := "Stays whole"
	if truncateAtWord(short, 40, 20) != short {
		t.Error("short string altered")
	}
}
