package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os/exec"
)

// FrameSink consumes composed frames strictly in index order. The engine's
// reorder stage guarantees the ordering; the sink only has to stream.
type FrameSink interface {
	WriteFrame(img *image.RGBA) error
	Close() error
}

// EncodeConfig describes one encoding session.
type EncodeConfig struct {
	Width       int
	Height      int
	FPS         int
	OutPath     string
	AudioPath   string
	EncoderName string
	Quality     int
}

// FFmpegEncoder streams raw RGBA frames into a single ffmpeg process over
// stdin and muxes the narration track in the same pass, so no intermediate
// files touch the disk.
type FFmpegEncoder struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	errBuf bytes.Buffer
}

// NewFFmpegEncoder starts the ffmpeg process for the given config.
func NewFFmpegEncoder(ctx context.Context, cfg EncodeConfig) (*FFmpegEncoder, error) {
	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"-framerate", fmt.Sprintf("%d", cfg.FPS),
		"-i", "-",
	}

	if cfg.AudioPath != "" {
		args = append(args, "-i", cfg.AudioPath)
	}

	args = append(args, "-map", "0:v")
	if cfg.AudioPath != "" {
		args = append(args, "-map", "1:a", "-c:a", "aac", "-b:a", "192k", "-shortest")
	}

	encoderName := cfg.EncoderName
	if encoderName == "" {
		encoderName = "libx264"
	}
	quality := cfg.Quality
	if quality <= 0 {
		quality = DefaultQuality(encoderName)
	}

	args = append(args, "-pix_fmt", "yuv420p", "-c:v", encoderName)
	args = append(args, QualityArgs(encoderName, quality)...)
	args = append(args, cfg.OutPath)

	e := &FFmpegEncoder{cmd: exec.CommandContext(ctx, "ffmpeg", args...)}
	e.cmd.Stdout = &e.errBuf
	e.cmd.Stderr = &e.errBuf

	stdin, err := e.cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg stdin pipe: %w", err)
	}
	e.stdin = stdin

	if err := e.cmd.Start(); err != nil {
		return nil, fmt.Errorf("ffmpeg start: %w", err)
	}
	return e, nil
}

// WriteFrame streams one frame. Frames must arrive in index order.
func (e *FFmpegEncoder) WriteFrame(img *image.RGBA) error {
	bounds := img.Bounds()
	if img.Stride != bounds.Dx()*4 || bounds.Min.X != 0 || bounds.Min.Y != 0 {
		normalized := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(normalized, normalized.Bounds(), img, bounds.Min, draw.Src)
		img = normalized
	}

	if _, err := e.stdin.Write(img.Pix); err != nil {
		return fmt.Errorf("write frame: %w: %s", err, tail(e.errBuf.String()))
	}
	return nil
}

// Close finishes the stream and waits for ffmpeg to flush the container.
func (e *FFmpegEncoder) Close() error {
	e.stdin.Close()
	if err := e.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg wait: %w: %s", err, tail(e.errBuf.String()))
	}
	return nil
}
