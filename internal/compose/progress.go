package compose

import "github.com/fogleman/gg"

// drawProgress renders the slide-dot row and the lesson-wide fill bar along
// the bottom edge. Dot states depend only on the resolved slide index; the
// fill fraction depends only on the global frame index.
func (c *Compositor) drawProgress(dc *gg.Context, layout SlideLayout) {
	w := float64(c.opts.Width)
	h := float64(c.opts.Height)

	// Continuous fill bar
	barH := c.px(5)
	setColor(dc, c.pal.panel, 1)
	dc.DrawRectangle(0, h-barH, w, barH)
	dc.Fill()
	setColor(dc, c.pal.accent, 1)
	dc.DrawRectangle(0, h-barH, w*layout.ProgressFill, barH)
	dc.Fill()

	// Slide dots: completed in a dimmer accent shade, current highlighted,
	// upcoming barely visible.
	spacing := c.px(22)
	total := float64(layout.DotCount-1) * spacing
	startX := (w - total) / 2
	dotY := h - c.px(34)

	for i := 0; i < layout.DotCount; i++ {
		x := startX + float64(i)*spacing
		switch {
		case i == layout.SlideIndex:
			setColor(dc, c.pal.accent, 1)
			dc.DrawCircle(x, dotY, c.px(6))
		case i < layout.SlideIndex:
			setColor(dc, c.pal.accent, 0.45)
			dc.DrawCircle(x, dotY, c.px(4.5))
		default:
			setColor(dc, c.pal.muted, 0.3)
			dc.DrawCircle(x, dotY, c.px(4.5))
		}
		dc.Fill()
	}
}
