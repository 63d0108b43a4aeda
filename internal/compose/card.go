package compose

import (
	"github.com/fogleman/gg"

	"github.com/ElviraMjeshtri/book-to-course/internal/plan"
)

// drawImageCard renders the slide image inside a rounded card with its
// optional caption. The image is pre-scaled once per job by the asset store;
// drawing here is placement only.
func (c *Compositor) drawImageCard(dc *gg.Context, slide plan.Slide, layout SlideLayout, x float64) error {
	panelW := float64(c.opts.Width) - c.px(80) - x
	panelY := c.px(170)
	panelH := c.px(380)
	pad := c.px(16)
	opacity := layout.PanelOpacity

	captionH := 0.0
	if slide.VisualHint != "" {
		captionH = c.px(40)
	}

	img, err := c.store.Scaled(slide.ImagePath, int(panelW-2*pad), int(panelH-2*pad-captionH))
	if err != nil {
		return err
	}

	dc.Push()
	dc.ScaleAbout(layout.PanelScale, layout.PanelScale, x+panelW/2, panelY+panelH/2)

	setColor(dc, c.pal.panel, opacity)
	dc.DrawRoundedRectangle(x, panelY, panelW, panelH, c.px(12))
	dc.Fill()

	imgAreaH := panelH - 2*pad - captionH
	b := img.Bounds()
	ix := x + pad + (panelW-2*pad-float64(b.Dx()))/2
	iy := panelY + pad + (imgAreaH-float64(b.Dy()))/2

	// gg has no per-image alpha, so the card fades via a scrim matching the
	// background rather than blending the pixels themselves.
	dc.DrawImage(img, int(ix), int(iy))
	if opacity < 1 {
		setColor(dc, c.pal.bg, 1-opacity)
		dc.DrawRectangle(ix, iy, float64(b.Dx()), float64(b.Dy()))
		dc.Fill()
	}

	if slide.VisualHint != "" {
		dc.SetFontFace(c.faces.Caption)
		setColor(dc, c.pal.muted, opacity)
		dc.DrawStringAnchored(slide.VisualHint, x+panelW/2, panelY+panelH-pad-c.px(8), 0.5, 0.5)
	}

	dc.Pop()
	return nil
}
