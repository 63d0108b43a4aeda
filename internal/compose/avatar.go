package compose

import (
	"math"

	"github.com/fogleman/gg"

	"github.com/ElviraMjeshtri/book-to-course/internal/anim"
	"github.com/ElviraMjeshtri/book-to-course/internal/assets"
)

// drawAvatar composites the narrator bubble: the matching avatar frame
// clipped to a circle in the bottom-right corner, with a short scale-in when
// the video starts and a low-amplitude sinusoidal bob afterwards. Both
// motions are functions of the global frame index, since the narrator
// persists across slide boundaries.
func (c *Compositor) drawAvatar(dc *gg.Context, frameIndex int) error {
	frame, err := c.store.AvatarFrame(frameIndex)
	if err != nil {
		return err
	}

	diameter := c.px(150)
	margin := c.px(48)
	entry := anim.Spring(float64(frameIndex), c.opts.FPS, anim.DefaultSpring)
	bob := c.px(idleAmplitudePx) * math.Sin(2*math.Pi*float64(frameIndex)/idlePeriodFrames)

	cx := float64(c.opts.Width) - margin - diameter/2
	cy := float64(c.opts.Height) - margin - diameter/2 + bob
	radius := diameter / 2 * entry
	if radius < 1 {
		return nil
	}

	scaled := assets.FitInto(frame, int(diameter), int(diameter))

	dc.Push()
	dc.DrawCircle(cx, cy, radius)
	dc.Clip()
	setColor(dc, c.pal.panel, 1)
	dc.DrawRectangle(cx-radius, cy-radius, 2*radius, 2*radius)
	dc.Fill()
	dc.DrawImageAnchored(scaled, int(cx), int(cy), 0.5, 0.5)
	dc.ResetClip()
	dc.Pop()

	setColor(dc, c.pal.accent, 1)
	dc.SetLineWidth(c.px(3))
	dc.DrawCircle(cx, cy, radius)
	dc.Stroke()

	return nil
}
