package assets

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SetAvatarFrames points the store at a directory of extracted narrator
// frames (one PNG per video frame, lexically ordered).
func (s *Store) SetAvatarFrames(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read avatar frames: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".png") {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	if len(paths) == 0 {
		return fmt.Errorf("no avatar frames in %s", dir)
	}
	sort.Strings(paths)

	s.mu.Lock()
	s.avatarPaths = paths
	s.mu.Unlock()
	return nil
}

// HasAvatar reports whether a narrator clip was attached to this job.
func (s *Store) HasAvatar() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.avatarPaths) > 0
}

// AvatarFrame returns the narrator frame for a video frame index. When the
// clip is shorter than the lesson the final frame is held, so the bubble
// never goes blank mid-video.
func (s *Store) AvatarFrame(frameIndex int) (image.Image, error) {
	s.mu.RLock()
	n := len(s.avatarPaths)
	s.mu.RUnlock()
	if n == 0 {
		return nil, fmt.Errorf("no avatar frames loaded")
	}

	if frameIndex < 0 {
		frameIndex = 0
	}
	if frameIndex >= n {
		frameIndex = n - 1
	}

	s.mu.RLock()
	img, ok := s.avatarFrames[frameIndex]
	path := s.avatarPaths[frameIndex]
	s.mu.RUnlock()
	if ok {
		return img, nil
	}

	img, err := s.Image(path)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.avatarFrames[frameIndex] = img
	s.mu.Unlock()
	return img, nil
}
