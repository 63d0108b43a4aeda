// Package assets loads and caches the media a render job references. Assets
// are immutable for the lifetime of one job, so everything is cached by path
// and safe to share across concurrent frame workers.
package assets

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/draw"
)

// Store is a read-through cache of decoded images keyed by path, plus the
// avatar frame sequence when a narrator clip is present.
type Store struct {
	root string

	mu           sync.RWMutex
	images       map[string]image.Image
	avatarPaths  []string
	avatarFrames map[int]image.Image
}

// NewStore creates a store. Relative asset paths resolve against root.
func NewStore(root string) *Store {
	return &Store{
		root:         root,
		images:       make(map[string]image.Image),
		avatarFrames: make(map[int]image.Image),
	}
}

func (s *Store) resolve(path string) string {
	if filepath.IsAbs(path) || s.root == "" {
		return path
	}
	return filepath.Join(s.root, strings.TrimPrefix(path, "/"))
}

// Image returns the decoded image at path, decoding it on first use.
func (s *Store) Image(path string) (image.Image, error) {
	s.mu.RLock()
	img, ok := s.images[path]
	s.mu.RUnlock()
	if ok {
		return img, nil
	}

	f, err := os.Open(s.resolve(path))
	if err != nil {
		return nil, fmt.Errorf("open asset: %w", err)
	}
	defer f.Close()

	img, _, err = image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode asset %s: %w", path, err)
	}

	s.mu.Lock()
	s.images[path] = img
	s.mu.Unlock()
	return img, nil
}

// Scaled returns the image at path resized to fit within maxW x maxH while
// keeping its aspect ratio. The scaled variant is cached under its own key
// so every frame showing the same card reuses one resample.
func (s *Store) Scaled(path string, maxW, maxH int) (image.Image, error) {
	key := fmt.Sprintf("%s#%dx%d", path, maxW, maxH)

	s.mu.RLock()
	img, ok := s.images[key]
	s.mu.RUnlock()
	if ok {
		return img, nil
	}

	src, err := s.Image(path)
	if err != nil {
		return nil, err
	}

	scaled := FitInto(src, maxW, maxH)

	s.mu.Lock()
	s.images[key] = scaled
	s.mu.Unlock()
	return scaled, nil
}

// FitInto resamples src so it fits within maxW x maxH.
func FitInto(src image.Image, maxW, maxH int) image.Image {
	b := src.Bounds()
	sw, sh := b.Dx(), b.Dy()
	if sw == 0 || sh == 0 {
		return src
	}

	scale := float64(maxW) / float64(sw)
	if s := float64(maxH) / float64(sh); s < scale {
		scale = s
	}
	if scale >= 1 {
		return src
	}

	dw := int(float64(sw) * scale)
	dh := int(float64(sh) * scale)
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
