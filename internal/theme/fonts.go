package theme

import (
	"fmt"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// Faces bundles the font faces one compositor instance draws with. Faces
// cache glyphs internally and are not safe for concurrent use, so each
// render worker builds its own set.
type Faces struct {
	Header  font.Face
	Title   font.Face
	Bullet  font.Face
	Caption font.Face
	Code    font.Face
}

// FaceSizes are the point sizes at the 1280x720 reference resolution; the
// compositor scales them for other output sizes.
type FaceSizes struct {
	Header  float64
	Title   float64
	Bullet  float64
	Caption float64
	Code    float64
}

// DefaultSizes returns the reference face sizes.
func DefaultSizes() FaceSizes {
	return FaceSizes{Header: 18, Title: 44, Bullet: 24, Caption: 17, Code: 16}
}

// NewFaces parses the theme's fonts at the given sizes. Unset paths use the
// embedded Go fonts so rendering is deterministic with no font files on the
// host.
func (t *Theme) NewFaces(sizes FaceSizes) (*Faces, error) {
	regular, err := parseFont(t.FontRegular, goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("regular font: %w", err)
	}
	bold, err := parseFont(t.FontBold, gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("bold font: %w", err)
	}
	mono, err := parseFont(t.FontMono, gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("mono font: %w", err)
	}

	return &Faces{
		Header:  newFace(bold, sizes.Header),
		Title:   newFace(bold, sizes.Title),
		Bullet:  newFace(regular, sizes.Bullet),
		Caption: newFace(regular, sizes.Caption),
		Code:    newFace(mono, sizes.Code),
	}, nil
}

func parseFont(path string, embedded []byte) (*truetype.Font, error) {
	data := embedded
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read font file: %w", err)
		}
	}
	parsed, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse TTF: %w", err)
	}
	return parsed, nil
}

func newFace(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
