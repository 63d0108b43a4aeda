// Package engine orchestrates a render job: validate the plan once, fan
// frame composition out across workers, and feed the encoder in strict frame
// order. Frames are independent by construction, so the pool needs no
// coordination beyond the final reordering stage.
package engine

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shirou/gopsutil/v3/cpu"
	"golang.org/x/sync/errgroup"

	"github.com/ElviraMjeshtri/book-to-course/internal/assets"
	"github.com/ElviraMjeshtri/book-to-course/internal/compose"
	"github.com/ElviraMjeshtri/book-to-course/internal/logger"
	"github.com/ElviraMjeshtri/book-to-course/internal/media"
	"github.com/ElviraMjeshtri/book-to-course/internal/plan"
	"github.com/ElviraMjeshtri/book-to-course/internal/theme"
)

// Options configures one render job.
type Options struct {
	Width       int
	Height      int
	FPS         int
	Workers     int
	OutPath     string
	EncoderName string
	Quality     int
	AssetRoot   string
	ShowStats   bool
}

// Job renders one lesson video from validated props.
type Job struct {
	id    string
	props *plan.RenderProps
	theme *theme.Theme
	opts  Options
	log   *logger.Logger
}

// NewJob creates a render job. A nil logger renders silently.
func NewJob(props *plan.RenderProps, th *theme.Theme, opts Options, log *logger.Logger) *Job {
	if log == nil {
		log = logger.Nop()
	}
	id := uuid.NewString()[:8]
	return &Job{
		id:    id,
		props: props,
		theme: th,
		opts:  opts,
		log:   log.With("job", id, "lesson", props.Plan.LessonID),
	}
}

// DefaultWorkers sizes the render pool from physical cores; frame
// composition is CPU-bound and gains nothing from hyperthread siblings.
func DefaultWorkers() int {
	if n, err := cpu.Counts(false); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// Run validates, renders and encodes the whole video. Validation failures
// abort before any frame is composed.
func (j *Job) Run(ctx context.Context) error {
	start := time.Now()

	if err := j.props.Plan.Validate(); err != nil {
		return fmt.Errorf("plan validation: %w", err)
	}

	totalFrames := j.props.Plan.TotalFrames(j.opts.FPS)
	if totalFrames == 0 {
		return fmt.Errorf("plan produces zero frames at %d fps", j.opts.FPS)
	}

	workers := j.opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers()
	}
	if workers > totalFrames {
		workers = totalFrames
	}

	j.log.Info("render job starting",
		"slides", len(j.props.Plan.Slides),
		"frames", totalFrames,
		"duration_sec", j.props.Plan.TotalDurationSec,
		"size", fmt.Sprintf("%dx%d@%d", j.opts.Width, j.opts.Height, j.opts.FPS),
		"workers", workers,
	)

	tempDir, err := os.MkdirTemp("", "lessonvideo_"+j.id+"_")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tempDir)

	store := assets.NewStore(j.opts.AssetRoot)
	if j.props.AvatarSrc != "" {
		bubblePx := int(150 * float64(j.opts.Width) / 1280)
		framesDir := filepath.Join(tempDir, "avatar")
		if err := media.ExtractFrames(ctx, j.resolveAsset(j.props.AvatarSrc), framesDir, j.opts.FPS, bubblePx); err != nil {
			return fmt.Errorf("avatar frames: %w", err)
		}
		if err := store.SetAvatarFrames(framesDir); err != nil {
			return err
		}
	}

	encoderName := j.opts.EncoderName
	if encoderName == "" {
		encoderName = media.BestH264Encoder()
	}

	audioPath := ""
	if j.props.AudioSrc != "" {
		audioPath = j.resolveAsset(j.props.AudioSrc)
	}

	encoder, err := media.NewFFmpegEncoder(ctx, media.EncodeConfig{
		Width:       j.opts.Width,
		Height:      j.opts.Height,
		FPS:         j.opts.FPS,
		OutPath:     j.opts.OutPath,
		AudioPath:   audioPath,
		EncoderName: encoderName,
		Quality:     j.opts.Quality,
	})
	if err != nil {
		return err
	}

	composeOpts := compose.Options{Width: j.opts.Width, Height: j.opts.Height, FPS: j.opts.FPS}
	newCompositor := func() (*compose.Compositor, error) {
		// Each worker gets its own compositor: font faces cache glyphs and
		// are not safe to share.
		return compose.New(j.props, j.theme, store, composeOpts)
	}

	renderStart := time.Now()
	if err := renderFrames(ctx, totalFrames, workers, newCompositor, encoder); err != nil {
		encoder.Close()
		return err
	}
	renderTime := time.Since(renderStart)

	if err := encoder.Close(); err != nil {
		return err
	}

	total := time.Since(start)
	j.log.Info("render job finished",
		"output", j.opts.OutPath,
		"total_sec", total.Seconds(),
		"render_sec", renderTime.Seconds(),
		"effective_fps", float64(totalFrames)/total.Seconds(),
	)

	if j.opts.ShowStats {
		fmt.Printf("--- [RENDER REPORT] ---\n"+
			"Frames: %d\nTotal Time: %.2fs\nCompose+Encode: %.2fs\nEffective FPS: %.2f\n"+
			"-----------------------\n",
			totalFrames, total.Seconds(), renderTime.Seconds(), float64(totalFrames)/total.Seconds())
	}

	return nil
}

func (j *Job) resolveAsset(path string) string {
	if filepath.IsAbs(path) || j.opts.AssetRoot == "" {
		return path
	}
	return filepath.Join(j.opts.AssetRoot, strings.TrimPrefix(path, "/"))
}

type renderedFrame struct {
	index int
	img   *image.RGBA
}

// renderFrames composes frames on a worker pool and delivers them to the
// sink in index order. Out-of-order memory stays bounded by the pool size:
// each worker holds at most one frame and the results channel is small.
func renderFrames(
	ctx context.Context,
	totalFrames, workers int,
	newCompositor func() (*compose.Compositor, error),
	sink media.FrameSink,
) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan int)
	results := make(chan renderedFrame, workers*2)

	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < totalFrames; i++ {
			select {
			case jobs <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			comp, err := newCompositor()
			if err != nil {
				return err
			}
			for idx := range jobs {
				img, err := comp.Frame(idx)
				if err != nil {
					return fmt.Errorf("frame %d: %w", idx, err)
				}
				select {
				case results <- renderedFrame{index: idx, img: img}:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}

	renderErr := make(chan error, 1)
	go func() {
		renderErr <- g.Wait()
		close(results)
	}()

	pending := make(map[int]*image.RGBA, workers*2)
	next := 0
	var writeErr error

	for rf := range results {
		if writeErr != nil {
			continue // drain so workers can exit
		}
		pending[rf.index] = rf.img
		for {
			img, ok := pending[next]
			if !ok {
				break
			}
			if err := sink.WriteFrame(img); err != nil {
				writeErr = fmt.Errorf("frame %d: %w", next, err)
				cancel()
				break
			}
			delete(pending, next)
			next++
		}
	}

	if err := <-renderErr; err != nil && writeErr == nil {
		return err
	}
	if writeErr != nil {
		return writeErr
	}
	if next != totalFrames {
		return fmt.Errorf("delivered %d of %d frames", next, totalFrames)
	}
	return nil
}
