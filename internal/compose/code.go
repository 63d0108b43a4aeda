package compose

import (
	"fmt"
	"strings"

	"github.com/fogleman/gg"
)

// drawCodePanel renders a syntax-styled code block: dark rounded panel with
// window chrome, a fixed-width numbered gutter, and monospace lines
// truncated to fit. Overlong snippets end in an ellipsis row, as the
// narration is expected to walk through the interesting part anyway.
func (c *Compositor) drawCodePanel(dc *gg.Context, code string, layout SlideLayout, x float64) {
	panelW := float64(c.opts.Width) - c.px(80) - x
	panelY := c.px(170)
	panelH := c.px(380)
	opacity := layout.PanelOpacity

	dc.Push()
	dc.ScaleAbout(layout.PanelScale, layout.PanelScale, x+panelW/2, panelY+panelH/2)

	setColor(dc, c.pal.codeBg, opacity)
	dc.DrawRoundedRectangle(x, panelY, panelW, panelH, c.px(12))
	dc.Fill()

	// Window chrome dots
	chromeY := panelY + c.px(18)
	for i, col := range []struct{ r, g, b uint8 }{
		{c.pal.chromeRed.R, c.pal.chromeRed.G, c.pal.chromeRed.B},
		{c.pal.chromeYellow.R, c.pal.chromeYellow.G, c.pal.chromeYellow.B},
		{c.pal.chromeGrn.R, c.pal.chromeGrn.G, c.pal.chromeGrn.B},
	} {
		dc.SetRGBA(float64(col.r)/255, float64(col.g)/255, float64(col.b)/255, opacity)
		dc.DrawCircle(x+c.px(20)+float64(i)*c.px(18), chromeY, c.px(5))
		dc.Fill()
	}

	dc.SetFontFace(c.faces.Code)
	lineHeight := c.px(24)
	textTop := panelY + c.px(48)
	gutterX := x + c.px(16)
	codeX := x + c.px(56)

	charW, _ := dc.MeasureString("M")
	maxCols := int((panelW - c.px(72)) / charW)
	if maxCols < 8 {
		maxCols = 8
	}
	maxLines := int((panelH - c.px(64)) / lineHeight)

	lines := strings.Split(strings.TrimRight(code, "\n"), "\n")
	y := textTop + lineHeight

	for i, line := range lines {
		if i >= maxLines {
			setColor(dc, c.pal.codeText, opacity)
			dc.DrawString("...", codeX, y)
			break
		}

		setColor(dc, c.pal.codeGutter, opacity)
		dc.DrawString(fmt.Sprintf("%2d", i+1), gutterX, y)

		runes := []rune(line)
		if len(runes) > maxCols {
			runes = append(runes[:maxCols-1], '…')
		}
		setColor(dc, c.pal.codeText, opacity)
		dc.DrawString(string(runes), codeX, y)

		y += lineHeight
	}

	dc.Pop()
}
