package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ElviraMjeshtri/book-to-course/internal/engine"
	"github.com/ElviraMjeshtri/book-to-course/internal/logger"
	"github.com/ElviraMjeshtri/book-to-course/internal/media"
	"github.com/ElviraMjeshtri/book-to-course/internal/plan"
	"github.com/ElviraMjeshtri/book-to-course/internal/planner"
	"github.com/ElviraMjeshtri/book-to-course/internal/theme"
)

func main() {
	propsPtr := flag.String("props", "", "Path to a render props JSON (plan + audioSrc + avatarSrc)")
	scriptPtr := flag.String("script", "", "Build a plan from this narration script instead of -props")
	audioDirPtr := flag.String("audio-dir", "", "Directory of per-slide narration audio, lexically ordered (required with -script)")
	titlePtr := flag.String("title", "", "Course/lesson title for the header (with -script)")
	lessonIDPtr := flag.String("lesson-id", "", "Lesson identifier (with -script)")
	codePtr := flag.String("code", "", "Optional code snippet file to place on a slide (with -script)")
	avatarPtr := flag.String("avatar", "", "Optional narrator clip for the corner bubble (with -script)")
	lessonURLPtr := flag.String("lesson-url", "", "Optional course link rendered as a QR badge on the closing slide")
	propsOutPtr := flag.String("props-out", "", "Where to save the generated props JSON (with -script)")

	outputPtr := flag.String("out", "", "Output video path (default: output/<lesson>_<timestamp>.mp4)")
	widthPtr := flag.Int("width", 1280, "Output width")
	heightPtr := flag.Int("height", 720, "Output height")
	presetPtr := flag.String("preset", "", "Format preset: 16:9, 9:16 (Shorts/TikTok), 4:5 (Instagram)")
	fpsPtr := flag.Int("fps", 30, "Frame rate")
	workersPtr := flag.Int("workers", 0, "Render workers (0 = physical cores)")
	qualityPtr := flag.Int("quality", 0, "Encoder quality (0 = auto per encoder)")
	themePtr := flag.String("theme", "", "Theme yaml file (default: built-in dark theme)")
	assetsPtr := flag.String("assets", "", "Root directory for relative asset paths in the props")
	statsPtr := flag.Bool("stats", false, "Print a render report")
	logModePtr := flag.String("log", "dev", "Log mode: dev or prod")

	flag.Parse()

	log, err := logger.New(*logModePtr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	width, height := *widthPtr, *heightPtr
	switch *presetPtr {
	case "16:9":
		width, height = 1280, 720
	case "9:16":
		width, height = 720, 1280
	case "4:5":
		width, height = 1080, 1350
	}

	ctx := context.Background()

	var props *plan.RenderProps
	switch {
	case *propsPtr != "":
		props, err = plan.ReadProps(*propsPtr)
		if err != nil {
			log.Fatal("load props", "error", err)
		}
	case *scriptPtr != "":
		props, err = buildProps(ctx, *scriptPtr, *audioDirPtr, *titlePtr, *lessonIDPtr, *codePtr, *fpsPtr, log)
		if err != nil {
			log.Fatal("build plan", "error", err)
		}
		props.AvatarSrc = *avatarPtr
		if *propsOutPtr != "" {
			if err := plan.WriteProps(props, *propsOutPtr); err != nil {
				log.Warn("save props", "error", err)
			}
		}
	default:
		fmt.Fprintln(os.Stderr, "either -props or -script is required")
		flag.Usage()
		os.Exit(2)
	}

	if *lessonURLPtr != "" {
		props.LessonURL = *lessonURLPtr
	}

	output := *outputPtr
	if output == "" {
		name := props.Plan.LessonID
		if name == "" {
			name = "lesson"
		}
		timestamp := time.Now().Format("2006-01-02_15-04-05")
		output = filepath.Join("output", fmt.Sprintf("%s_%s.mp4", strings.ReplaceAll(name, " ", "_"), timestamp))
	}
	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		log.Fatal("create output dir", "error", err)
	}

	job := engine.NewJob(props, loadTheme(*themePtr, log), engine.Options{
		Width:     width,
		Height:    height,
		FPS:       *fpsPtr,
		Workers:   *workersPtr,
		OutPath:   output,
		Quality:   *qualityPtr,
		AssetRoot: *assetsPtr,
		ShowStats: *statsPtr,
	}, log)

	if err := job.Run(ctx); err != nil {
		log.Fatal("render failed", "error", err)
	}

	fmt.Printf("[+++] Done: %s\n", output)
}

func loadTheme(path string, log *logger.Logger) *theme.Theme {
	if path == "" {
		return theme.Default()
	}
	th, err := theme.Load(path)
	if err != nil {
		log.Warn("theme load failed, using default", "error", err)
		return theme.Default()
	}
	return th
}

// buildProps runs the planner path: derive slides from the script, measure
// the per-slide narration segments, build gapless timings and concatenate
// the segments into the single continuous track.
func buildProps(ctx context.Context, scriptPath, audioDir, title, lessonID, codePath string, fps int, log *logger.Logger) (*plan.RenderProps, error) {
	if audioDir == "" {
		return nil, fmt.Errorf("-audio-dir is required with -script")
	}

	scriptBytes, err := os.ReadFile(scriptPath)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}

	codeSnippet := ""
	if codePath != "" {
		codeBytes, err := os.ReadFile(codePath)
		if err != nil {
			return nil, fmt.Errorf("read code snippet: %w", err)
		}
		codeSnippet = string(codeBytes)
	}

	if lessonID == "" {
		lessonID = strings.TrimSuffix(filepath.Base(scriptPath), filepath.Ext(scriptPath))
	}
	if title == "" {
		title = lessonID
	}

	p := planner.PlanFromScript(lessonID, title, string(scriptBytes), codeSnippet)
	planner.ApplyNarrations(p.Slides, string(scriptBytes))

	segments, err := media.ListAudioSegments(audioDir)
	if err != nil {
		return nil, err
	}
	if len(segments) != len(p.Slides) {
		return nil, fmt.Errorf("%d audio segments for %d slides", len(segments), len(p.Slides))
	}

	durations := make([]float64, len(segments))
	for i, seg := range segments {
		d, err := media.AudioDuration(ctx, seg)
		if err != nil {
			return nil, err
		}
		durations[i] = d
	}

	if err := planner.AttachTimings(p, durations, fps); err != nil {
		return nil, err
	}

	// Keep the assembled track out of the segment directory so reruns do
	// not pick it up as another slide.
	if err := os.MkdirAll("output", 0755); err != nil {
		return nil, err
	}
	audioOut := filepath.Join("output", lessonID+"_audio.wav")
	if err := media.ConcatAudio(ctx, segments, audioOut); err != nil {
		return nil, err
	}
	log.Info("narration track assembled", "segments", len(segments), "out", audioOut)

	return &plan.RenderProps{Plan: *p, AudioSrc: audioOut}, nil
}
