// Package compose renders one video frame from a frame index and a lesson
// plan. The compositor is a stateless function of its inputs: no field is
// mutated between frames, so frames can be computed concurrently and in any
// order with bit-identical results.
package compose

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/ElviraMjeshtri/book-to-course/internal/assets"
	"github.com/ElviraMjeshtri/book-to-course/internal/plan"
	"github.com/ElviraMjeshtri/book-to-course/internal/theme"
)

// Options fixes the output geometry for one render job.
type Options struct {
	Width  int
	Height int
	FPS    int
}

// AudioDirective tells the encoder which track spans the video. The same
// directive applies to every frame; slide switching is purely visual.
type AudioDirective struct {
	Src      string  `json:"src"`
	StartSec float64 `json:"startSec"`
}

type palette struct {
	bg, bgEdge, panel, accent          color.NRGBA
	title, text, muted                 color.NRGBA
	codeBg, codeGutter, codeText       color.NRGBA
	chromeRed, chromeYellow, chromeGrn color.NRGBA
}

// Compositor renders frames for a single validated plan. Font faces cache
// glyphs internally, so each concurrent render worker needs its own
// instance; everything else it holds is read-only.
type Compositor struct {
	opts  Options
	scale float64
	props *plan.RenderProps
	store *assets.Store
	faces *theme.Faces
	pal   palette
	qr    image.Image
}

// New builds a compositor for one job. The plan must already be validated.
func New(props *plan.RenderProps, th *theme.Theme, store *assets.Store, opts Options) (*Compositor, error) {
	if opts.Width <= 0 || opts.Height <= 0 || opts.FPS <= 0 {
		return nil, fmt.Errorf("invalid compositor options %dx%d@%d", opts.Width, opts.Height, opts.FPS)
	}

	scale := float64(opts.Width) / 1280.0

	sizes := theme.DefaultSizes()
	sizes.Header *= scale
	sizes.Title *= scale
	sizes.Bullet *= scale
	sizes.Caption *= scale
	sizes.Code *= scale

	faces, err := th.NewFaces(sizes)
	if err != nil {
		return nil, fmt.Errorf("theme faces: %w", err)
	}

	c := &Compositor{
		opts:  opts,
		scale: scale,
		props: props,
		store: store,
		faces: faces,
		pal: palette{
			bg:           th.Color(th.Background, color.NRGBA{15, 23, 42, 255}),
			bgEdge:       th.Color(th.BackgroundEdge, color.NRGBA{30, 27, 75, 255}),
			panel:        th.Color(th.Panel, color.NRGBA{30, 41, 59, 255}),
			accent:       th.Color(th.Accent, color.NRGBA{56, 189, 248, 255}),
			title:        th.Color(th.TitleColor, color.NRGBA{248, 250, 252, 255}),
			text:         th.Color(th.TextColor, color.NRGBA{226, 232, 240, 255}),
			muted:        th.Color(th.MutedColor, color.NRGBA{148, 163, 184, 255}),
			codeBg:       th.Color(th.CodeBackground, color.NRGBA{40, 44, 52, 255}),
			codeGutter:   th.Color(th.CodeGutter, color.NRGBA{92, 99, 112, 255}),
			codeText:     th.Color(th.CodeText, color.NRGBA{171, 178, 191, 255}),
			chromeRed:    color.NRGBA{255, 95, 86, 255},
			chromeYellow: color.NRGBA{255, 189, 46, 255},
			chromeGrn:    color.NRGBA{39, 201, 63, 255},
		},
	}

	if props.LessonURL != "" {
		qr, err := qrcode.New(props.LessonURL, qrcode.Medium)
		if err != nil {
			return nil, fmt.Errorf("lesson url qr: %w", err)
		}
		qr.DisableBorder = true
		c.qr = qr.Image(int(c.px(96)))
	}

	return c, nil
}

// Audio returns the single continuous track directive for this job.
func (c *Compositor) Audio() AudioDirective {
	return AudioDirective{Src: c.props.AudioSrc, StartSec: 0}
}

// px converts a length at the 1280-wide reference layout to output pixels.
func (c *Compositor) px(v float64) float64 {
	return v * c.scale
}

func setColor(dc *gg.Context, col color.NRGBA, opacity float64) {
	dc.SetRGBA(
		float64(col.R)/255,
		float64(col.G)/255,
		float64(col.B)/255,
		float64(col.A)/255*opacity,
	)
}

// Frame composes the frame at frameIndex. It is safe to call for any index;
// indices past the end clamp to the closing slide the same way the timeline
// resolver does.
func (c *Compositor) Frame(frameIndex int) (*image.RGBA, error) {
	p := &c.props.Plan
	layout := BuildLayout(p, frameIndex, c.opts.FPS)
	slide := p.Slides[layout.SlideIndex]

	dc := gg.NewContext(c.opts.Width, c.opts.Height)

	c.drawBackground(dc)
	c.drawHeader(dc, p)

	margin := c.px(80)
	contentTop := c.px(150)
	fullWidth := float64(c.opts.Width) - 2*margin

	colWidth := fullWidth
	if layout.Secondary != SecondaryNone {
		colWidth = fullWidth * 0.46
	}

	textBottom := c.drawTitle(dc, slide.Title, layout, margin, contentTop, colWidth)
	c.drawBullets(dc, layout, margin, textBottom+c.px(28), colWidth)

	switch layout.Secondary {
	case SecondaryCode:
		c.drawCodePanel(dc, slide.CodeSnippet, layout, margin+colWidth+c.px(44))
	case SecondaryImage:
		if err := c.drawImageCard(dc, slide, layout, margin+colWidth+c.px(44)); err != nil {
			return nil, err
		}
	}

	c.drawProgress(dc, layout)

	if c.store != nil && c.store.HasAvatar() {
		if err := c.drawAvatar(dc, frameIndex); err != nil {
			return nil, err
		}
	}

	if c.qr != nil && layout.ShowBadge {
		c.drawBadge(dc)
	}

	return dc.Image().(*image.RGBA), nil
}

func (c *Compositor) drawBackground(dc *gg.Context) {
	w := float64(c.opts.Width)
	h := float64(c.opts.Height)

	grad := gg.NewLinearGradient(0, 0, 0, h)
	grad.AddColorStop(0, c.pal.bg)
	grad.AddColorStop(1, c.pal.bgEdge)
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()
}

func (c *Compositor) drawHeader(dc *gg.Context, p *plan.LessonVideoPlan) {
	margin := c.px(80)
	baseline := c.px(64)

	dc.SetFontFace(c.faces.Header)
	setColor(dc, c.pal.muted, 1)
	dc.DrawString(p.Title, margin, baseline)

	if p.LessonID != "" {
		setColor(dc, c.pal.muted, 0.7)
		dc.DrawStringAnchored(p.LessonID, float64(c.opts.Width)-margin, baseline, 1, 0)
	}

	setColor(dc, c.pal.accent, 1)
	dc.DrawRectangle(margin, baseline+c.px(12), c.px(56), c.px(3))
	dc.Fill()
}

// drawTitle renders the slide heading with its scale/opacity entrance and
// returns the y coordinate below the last title line.
func (c *Compositor) drawTitle(dc *gg.Context, title string, layout SlideLayout, x, top, width float64) float64 {
	dc.SetFontFace(c.faces.Title)
	lines := dc.WordWrap(title, width)
	lineHeight := c.px(52)

	dc.Push()
	dc.ScaleAbout(layout.TitleScale, layout.TitleScale, x, top+lineHeight)
	setColor(dc, c.pal.title, layout.TitleOpacity)
	y := top + lineHeight
	for _, line := range lines {
		dc.DrawString(line, x, y)
		y += lineHeight
	}
	dc.Pop()

	return top + float64(len(lines))*lineHeight
}

func (c *Compositor) drawBullets(dc *gg.Context, layout SlideLayout, x, top, width float64) {
	dc.SetFontFace(c.faces.Bullet)
	lineHeight := c.px(32)
	gap := c.px(14)
	textX := x + c.px(28)
	textWidth := width - c.px(28)

	y := top
	for _, b := range layout.Bullets {
		lines := dc.WordWrap(b.Text, textWidth)
		offsetY := b.OffsetY * c.scale

		setColor(dc, c.pal.accent, b.Opacity)
		dc.DrawCircle(x+c.px(8), y+offsetY+lineHeight*0.38, c.px(4))
		dc.Fill()

		setColor(dc, c.pal.text, b.Opacity)
		ly := y + offsetY + lineHeight*0.72
		for _, line := range lines {
			dc.DrawString(line, textX, ly)
			ly += lineHeight
		}

		y += float64(len(lines))*lineHeight + gap
	}

	if layout.OverflowLabel != "" {
		// Overflow keeps the cadence of the list it truncates.
		last := 1.0
		if n := len(layout.Bullets); n > 0 {
			last = layout.Bullets[n-1].Opacity
		}
		setColor(dc, c.pal.muted, last)
		dc.DrawString(layout.OverflowLabel, textX, y+lineHeight*0.72)
	}
}
