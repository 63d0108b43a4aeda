package compose

import "github.com/fogleman/gg"

// drawBadge places the lesson-link QR code on the closing slide so viewers
// can jump from the video back into the course.
func (c *Compositor) drawBadge(dc *gg.Context) {
	b := c.qr.Bounds()
	pad := c.px(12)
	cardW := float64(b.Dx()) + 2*pad
	cardH := float64(b.Dy()) + 2*pad

	x := c.px(80)
	y := float64(c.opts.Height) - c.px(48) - cardH

	dc.SetRGBA(1, 1, 1, 1)
	dc.DrawRoundedRectangle(x, y, cardW, cardH, c.px(8))
	dc.Fill()
	dc.DrawImage(c.qr, int(x+pad), int(y+pad))

	dc.SetFontFace(c.faces.Caption)
	setColor(dc, c.pal.muted, 1)
	dc.DrawString("Continue the course", x+cardW+c.px(16), y+cardH/2)
}
