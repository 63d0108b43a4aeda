// Package planner turns lesson material into a LessonVideoPlan: slides
// derived from a narration script, and timing windows derived from measured
// narration audio. The compositor consumes its output read-only.
package planner

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ElviraMjeshtri/book-to-course/internal/plan"
)

const (
	minSlides        = 4
	maxSlides        = 6
	maxBulletsPer    = 5
	maxBulletLen     = 120
	maxHeadlineLen   = 80
	sentencesPerPart = 4
)

var slideLabels = []string{
	"Introduction", "Core Concepts", "Deep Dive", "Key Insights", "Application", "Summary",
}

// greetingPattern matches filler openers that make poor headlines.
var greetingPattern = regexp.MustCompile(`(?i)^(hey|hi|hello|welcome|let'?s|today|now|so|okay|alright|in this|we'?ll|we'?re going)\b`)

// PlanFromScript chunks a narration script into 4-6 slides with headlines,
// bullets and per-slide narration. Timings are left empty; attach them once
// the narration audio has been synthesized and measured.
func PlanFromScript(lessonID, title, script, codeSnippet string) *plan.LessonVideoPlan {
	sentences := splitSentences(script)
	if len(sentences) == 0 {
		sentences = []string{strings.TrimSpace(script)}
	}

	target := len(sentences) / sentencesPerPart
	if target < minSlides {
		target = minSlides
	}
	if target > maxSlides {
		target = maxSlides
	}

	chunks := chunkEvenly(sentences, target)

	slides := make([]plan.Slide, 0, len(chunks))
	snippetAssigned := false

	for idx, chunk := range chunks {
		label := fmt.Sprintf("Part %d", idx+1)
		if idx < len(slideLabels) {
			label = slideLabels[idx]
		}

		slide := plan.Slide{
			Title:     headlineFrom(chunk, idx+1, label),
			Narration: strings.Join(chunk, " "),
		}

		for _, sent := range chunk {
			if len(slide.Bullets) >= maxBulletsPer {
				break
			}
			slide.Bullets = append(slide.Bullets, truncateAtWord(sent, maxBulletLen, 60))
		}

		// The snippet lands after the introduction so the concept is framed
		// before the code appears.
		if codeSnippet != "" && !snippetAssigned && idx >= 1 {
			slide.CodeSnippet = codeSnippet
			snippetAssigned = true
		}

		slides = append(slides, slide)
	}

	if codeSnippet != "" && !snippetAssigned && len(slides) > 1 {
		slides[len(slides)-2].CodeSnippet = codeSnippet
	}

	return &plan.LessonVideoPlan{
		LessonID: lessonID,
		Title:    title,
		Slides:   slides,
	}
}

// DefaultNarration builds spoken text for a slide that has none.
func DefaultNarration(slide plan.Slide) string {
	lines := []string{slide.Title}
	lines = append(lines, slide.Bullets...)
	if slide.CodeSnippet != "" {
		lines = append(lines, "We'll look at a short code example to reinforce the concept.")
	}
	return strings.TrimSpace(strings.Join(lines, " "))
}

// ApplyNarrations fills missing narrations. Slides built from a script
// already carry aligned narration and are left alone; only empty ones get a
// script segment or the default fallback.
func ApplyNarrations(slides []plan.Slide, script string) {
	if len(slides) == 0 {
		return
	}

	withNarration := 0
	for _, s := range slides {
		if strings.TrimSpace(s.Narration) != "" {
			withNarration++
		}
	}

	if withNarration*2 >= len(slides) {
		for i := range slides {
			if strings.TrimSpace(slides[i].Narration) == "" {
				slides[i].Narration = DefaultNarration(slides[i])
			}
		}
		return
	}

	var segments []string
	if script != "" {
		segments = splitEvenly(script, len(slides))
	}

	for i := range slides {
		if strings.TrimSpace(slides[i].Narration) != "" {
			continue
		}
		if i < len(segments) && strings.TrimSpace(segments[i]) != "" {
			slides[i].Narration = strings.TrimSpace(segments[i])
			continue
		}
		slides[i].Narration = DefaultNarration(slides[i])
	}
}

// splitSentences breaks text after terminal punctuation followed by
// whitespace.
func splitSentences(text string) []string {
	var sentences []string
	var b strings.Builder

	runes := []rune(strings.TrimSpace(text))
	for i, r := range runes {
		b.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') &&
			(i+1 >= len(runes) || runes[i+1] == ' ' || runes[i+1] == '\n' || runes[i+1] == '\t') {
			if s := strings.TrimSpace(b.String()); s != "" {
				sentences = append(sentences, s)
			}
			b.Reset()
		}
	}
	if s := strings.TrimSpace(b.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// chunkEvenly splits items into up to parts runs of near-equal length,
// dropping empty runs.
func chunkEvenly(items []string, parts int) [][]string {
	var chunks [][]string
	for i := 0; i < parts; i++ {
		start := (i * len(items) + parts/2) / parts
		end := ((i + 1) * len(items) + parts/2) / parts
		if end > len(items) {
			end = len(items)
		}
		if start < end {
			chunks = append(chunks, items[start:end])
		}
	}
	return chunks
}

// splitEvenly divides text into parts word-balanced segments.
func splitEvenly(text string, parts int) []string {
	words := strings.Fields(text)
	if len(words) == 0 || parts <= 0 {
		return nil
	}

	segments := make([]string, 0, parts)
	for i := 0; i < parts; i++ {
		start := i * len(words) / parts
		end := (i + 1) * len(words) / parts
		segments = append(segments, strings.Join(words[start:end], " "))
	}
	return segments
}

// headlineFrom derives a slide heading from its sentences, skipping filler
// openers and cutting at a word boundary.
func headlineFrom(chunk []string, idx int, label string) string {
	if len(chunk) == 0 {
		return fmt.Sprintf("%s: Part %d", label, idx)
	}

	source := chunk[0]
	if greetingPattern.MatchString(source) && len(chunk) > 1 {
		source = chunk[1]
	}

	headline := truncateAtWord(source, maxHeadlineLen, 40)
	if strings.TrimSpace(headline) == "" {
		return fmt.Sprintf("%s: Part %d", label, idx)
	}
	return headline
}

// truncateAtWord cuts s to max runes, backing up to the last space past
// minKeep so words stay whole, and marks the cut with an ellipsis.
func truncateAtWord(s string, max, minKeep int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}

	cut := string(runes[:max])
	if idx := strings.LastIndex(cut, " "); idx > minKeep {
		cut = cut[:idx]
	}
	return cut + "…"
}
