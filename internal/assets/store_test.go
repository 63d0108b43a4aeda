package assets

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, path string, w, h int, c color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestImageResolvesAgainstRoot(t *testing.T) {
	root := t.TempDir()
	writePNG(t, filepath.Join(root, "diagram.png"), 10, 10, color.NRGBA{255, 0, 0, 255})

	s := NewStore(root)
	img, err := s.Image("diagram.png")
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 10 {
		t.Fatalf("bounds %v", img.Bounds())
	}

	// Orchestrators sometimes emit leading-slash relative paths.
	if _, err := s.Image("/diagram.png"); err != nil {
		t.Fatalf("leading slash path: %v", err)
	}
}

func TestImageCachesDecode(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "once.png")
	writePNG(t, path, 4, 4, color.NRGBA{0, 255, 0, 255})

	s := NewStore(root)
	if _, err := s.Image("once.png"); err != nil {
		t.Fatal(err)
	}

	// Deleting the backing file proves later reads come from the cache.
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Image("once.png"); err != nil {
		t.Fatalf("cached read: %v", err)
	}
}

func TestScaledFitsWithinBounds(t *testing.T) {
	root := t.TempDir()
	writePNG(t, filepath.Join(root, "wide.png"), 200, 50, color.NRGBA{0, 0, 255, 255})

	s := NewStore(root)
	img, err := s.Scaled("wide.png", 100, 100)
	if err != nil {
		t.Fatal(err)
	}
	if w, h := img.Bounds().Dx(), img.Bounds().Dy(); w != 100 || h != 25 {
		t.Fatalf("scaled to %dx%d, want 100x25", w, h)
	}

	// Images already inside the box are returned as-is.
	writePNG(t, filepath.Join(root, "small.png"), 30, 20, color.NRGBA{9, 9, 9, 255})
	img, err = s.Scaled("small.png", 100, 100)
	if err != nil {
		t.Fatal(err)
	}
	if w, h := img.Bounds().Dx(), img.Bounds().Dy(); w != 30 || h != 20 {
		t.Fatalf("small image resized to %dx%d", w, h)
	}
}

func TestAvatarFrameHoldsLastFrame(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 3; i++ {
		writePNG(t, filepath.Join(dir, fmt.Sprintf("frame_%06d.png", i+1)), 8, 8,
			color.NRGBA{uint8(50 * (i + 1)), 0, 0, 255})
	}

	s := NewStore("")
	if s.HasAvatar() {
		t.Fatal("store reports avatar before one is set")
	}
	if err := s.SetAvatarFrames(dir); err != nil {
		t.Fatal(err)
	}
	if !s.HasAvatar() {
		t.Fatal("avatar not registered")
	}

	first, err := s.AvatarFrame(0)
	if err != nil {
		t.Fatal(err)
	}
	held, err := s.AvatarFrame(500)
	if err != nil {
		t.Fatal(err)
	}
	last, err := s.AvatarFrame(2)
	if err != nil {
		t.Fatal(err)
	}

	fr := color.NRGBAModel.Convert(first.At(0, 0)).(color.NRGBA).R
	hr := color.NRGBAModel.Convert(held.At(0, 0)).(color.NRGBA).R
	lr := color.NRGBAModel.Convert(last.At(0, 0)).(color.NRGBA).R
	if fr != 50 {
		t.Errorf("first frame R = %d, want 50", fr)
	}
	if hr != lr || hr != 150 {
		t.Errorf("past-end frame R = %d, want last frame's %d", hr, lr)
	}
}

func TestSetAvatarFramesEmptyDir(t *testing.T) {
	s := NewStore("")
	if err := s.SetAvatarFrames(t.TempDir()); err == nil {
		t.Fatal("empty frame dir accepted")
	}
}
