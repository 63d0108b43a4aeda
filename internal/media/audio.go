package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
)

// ConcatAudio joins per-slide narration segments into the single continuous
// track the video is synchronized against. The output is PCM so later muxing
// never re-encodes twice.
func ConcatAudio(ctx context.Context, segments []string, outPath string) error {
	if len(segments) == 0 {
		return fmt.Errorf("no audio segments to concatenate")
	}
	if len(segments) == 1 {
		return copyFile(segments[0], outPath)
	}

	listPath := outPath + ".concat.txt"
	if err := writeConcatList(segments, listPath); err != nil {
		return err
	}
	defer os.Remove(listPath)

	cmd := exec.CommandContext(ctx, "ffmpeg", "-y",
		"-f", "concat", "-safe", "0", "-i", listPath,
		"-c:a", "pcm_s16le",
		outPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg concat: %w: %s", err, tail(string(out)))
	}
	return nil
}

// writeConcatList writes the ffmpeg concat demuxer list. A truncated list
// silently drops narration segments, so every write error matters.
func writeConcatList(segments []string, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	for _, s := range segments {
		abs, err := filepath.Abs(s)
		if err != nil {
			f.Close()
			return fmt.Errorf("resolve segment %s: %w", s, err)
		}
		if _, err := fmt.Fprintf(f, "file '%s'\n", abs); err != nil {
			f.Close()
			return fmt.Errorf("write concat list: %w", err)
		}
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write concat list: %w", err)
	}
	return nil
}

// ExtractFrames splits a narrator clip into one PNG per frame at the job's
// frame rate, scaled to the bubble size, so the compositor can look frames
// up by index.
func ExtractFrames(ctx context.Context, videoPath, outDir string, fps, size int) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, "ffmpeg", "-y",
		"-i", videoPath,
		"-vf", fmt.Sprintf("fps=%d,scale=%d:-2", fps, size),
		filepath.Join(outDir, "frame_%06d.png"),
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg extract frames: %w: %s", err, tail(string(out)))
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}

// tail keeps ffmpeg diagnostics readable: the useful part is at the end.
func tail(s string) string {
	const max = 500
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max:]
}
