// Package theme defines the visual configuration of rendered lessons. A
// theme is an input to the compositor, never global state: loading fonts or
// colors mutates nothing outside the returned values.
package theme

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Theme holds every color and font choice the compositor needs. Colors are
// stored as #RRGGBB strings so themes stay hand-editable yaml.
type Theme struct {
	Background     string `yaml:"background"`
	BackgroundEdge string `yaml:"background_edge"`
	Panel          string `yaml:"panel"`
	Accent         string `yaml:"accent"`
	TitleColor     string `yaml:"title_color"`
	TextColor      string `yaml:"text_color"`
	MutedColor     string `yaml:"muted_color"`
	CodeBackground string `yaml:"code_background"`
	CodeGutter     string `yaml:"code_gutter"`
	CodeText       string `yaml:"code_text"`

	// Empty font paths fall back to the embedded Go faces.
	FontRegular string `yaml:"font_regular"`
	FontBold    string `yaml:"font_bold"`
	FontMono    string `yaml:"font_mono"`
}

// Default returns the dark slate theme the lesson videos ship with.
func Default() *Theme {
	return &Theme{
		Background:     "#0F172A",
		BackgroundEdge: "#1E1B4B",
		Panel:          "#1E293B",
		Accent:         "#38BDF8",
		TitleColor:     "#F8FAFC",
		TextColor:      "#E2E8F0",
		MutedColor:     "#94A3B8",
		CodeBackground: "#282C34",
		CodeGutter:     "#5C6370",
		CodeText:       "#ABB2BF",
	}
}

// Load reads a theme yaml file, filling unset fields from the default theme.
func Load(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme: %w", err)
	}

	th := Default()
	if err := yaml.Unmarshal(data, th); err != nil {
		return nil, fmt.Errorf("parse theme %s: %w", path, err)
	}
	return th, nil
}

// Color parses one of the theme's hex fields. Unparseable values fall back
// to the provided default rather than failing a render over a typo.
func (t *Theme) Color(hexStr string, fallback color.NRGBA) color.NRGBA {
	c, err := ParseHex(hexStr)
	if err != nil {
		return fallback
	}
	return c
}

// ParseHex parses a #RRGGBB color string.
func ParseHex(s string) (color.NRGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.NRGBA{}, fmt.Errorf("expected 6 hex chars, got %q", s)
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	return color.NRGBA{R: raw[0], G: raw[1], B: raw[2], A: 255}, nil
}
