// Package media shells out to ffmpeg/ffprobe for everything that touches
// encoded bytes: duration probing, audio concatenation, avatar frame
// extraction and final video encoding. The compositor never sees any of it.
package media

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// AudioDuration returns the duration of an audio file in seconds via ffprobe.
func AudioDuration(ctx context.Context, path string) (float64, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w: %s", path, err, strings.TrimSpace(string(out)))
	}

	var duration float64
	if _, err := fmt.Sscanf(strings.TrimSpace(string(out)), "%f", &duration); err != nil {
		return 0, fmt.Errorf("parse ffprobe output %q: %w", strings.TrimSpace(string(out)), err)
	}
	return duration, nil
}

// BestH264Encoder picks the fastest available h264 encoder. Hardware
// encoders are preferred when ffmpeg reports them; libx264 always works.
func BestH264Encoder() string {
	cmd := exec.Command("ffmpeg", "-encoders")
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "libx264"
	}

	for _, name := range []string{"h264_videotoolbox", "h264_nvenc"} {
		if strings.Contains(string(out), name) {
			return name
		}
	}
	return "libx264"
}

// QualityArgs maps a quality number onto the selected encoder's knobs.
// x264 and nvenc take CRF-style values; videotoolbox wants a bitrate.
func QualityArgs(encoderName string, quality int) []string {
	switch encoderName {
	case "h264_videotoolbox":
		return []string{"-b:v", fmt.Sprintf("%dk", quality*100)}
	case "h264_nvenc":
		return []string{"-cq", fmt.Sprintf("%d", quality)}
	default:
		return []string{"-crf", fmt.Sprintf("%d", quality), "-preset", "medium"}
	}
}

// DefaultQuality returns a sensible quality value for the encoder.
func DefaultQuality(encoderName string) int {
	switch encoderName {
	case "h264_videotoolbox":
		return 75
	case "h264_nvenc":
		return 28
	default:
		return 23
	}
}

var audioExtensions = []string{".mp3", ".wav", ".m4a", ".ogg", ".aac", ".flac"}

// ListAudioSegments returns the audio files in dir in lexical order, which
// is the per-slide segment order the planner expects.
func ListAudioSegments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read audio dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := strings.ToLower(e.Name())
		for _, ext := range audioExtensions {
			if strings.HasSuffix(name, ext) {
				paths = append(paths, filepath.Join(dir, e.Name()))
				break
			}
		}
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("no audio segments in %s", dir)
	}
	sort.Strings(paths)
	return paths, nil
}
