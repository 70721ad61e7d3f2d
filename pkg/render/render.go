package render

import (
	"image"
	"io"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"flexlay/pkg/css"
	"flexlay/pkg/layout"
)

// Options control how boxes are painted.
type Options struct {
	Background css.Color
	Labels     bool    // draw each element's id in its top-left corner
	Scale      float64 // device pixels per layout pixel; 0 means 1
}

// DefaultOptions paints on white at scale 1 without labels.
func DefaultOptions() Options {
	return Options{Background: css.Color{R: 255, G: 255, B: 255, A: 1}, Scale: 1}
}

type Renderer struct {
	context *gg.Context
	opts    Options
}

func NewRenderer(width, height int) *Renderer {
	return NewRendererWithOptions(width, height, DefaultOptions())
}

func NewRendererWithOptions(width, height int, opts Options) *Renderer {
	return &Renderer{context: gg.NewContext(width, height), opts: opts}
}

// NewRendererForImage paints directly into target.
func NewRendererForImage(target *image.RGBA, opts Options) *Renderer {
	return &Renderer{context: gg.NewContextForRGBA(target), opts: opts}
}

// Render clears the canvas and paints boxes back to front in stacking
// order. Hidden boxes are skipped; their descendants still paint.
func (r *Renderer) Render(boxes []*layout.Box) {
	r.context.Push()
	defer r.context.Pop()

	setColor(r.context, r.opts.Background)
	r.context.Clear()
	if r.opts.Scale > 0 && r.opts.Scale != 1 {
		r.context.Scale(r.opts.Scale, r.opts.Scale)
	}

	for _, box := range layout.BuildStackingContextTree(boxes).PaintOrder() {
		if box.Hidden {
			continue
		}
		r.drawBox(box)
	}
}

func (r *Renderer) drawBox(box *layout.Box) {
	// Background covers the padding box.
	if bgColor, ok := box.Style.GetBackgroundColor(); ok && bgColor.A > 0 {
		bgX := box.X + box.Border.Left
		bgY := box.Y + box.Border.Top
		bgWidth := box.Width + box.Padding.Horizontal()
		bgHeight := box.Height + box.Padding.Vertical()
		if bgWidth > 0 && bgHeight > 0 {
			setColor(r.context, bgColor)
			r.context.DrawRectangle(bgX, bgY, bgWidth, bgHeight)
			r.context.Fill()
		}
	}

	r.drawBorder(box)

	if r.opts.Labels {
		r.drawLabel(box)
	}
}

// borderSideColor returns the color for one border side: the per-side
// color, then border-color, then color, then black.
func borderSideColor(box *layout.Box, side string) css.Color {
	for _, property := range []string{"border-" + side + "-color", "border-color", "color"} {
		if colorStr, ok := box.Style.Get(property); ok {
			if color, ok := css.ParseColor(colorStr); ok {
				return color
			}
		}
	}
	return css.Color{A: 1}
}

// drawBorder paints each side as a trapezoid so corners miter.
func (r *Renderer) drawBorder(box *layout.Box) {
	if box.Border.Top <= 0 && box.Border.Right <= 0 && box.Border.Bottom <= 0 && box.Border.Left <= 0 {
		return
	}

	outer := box.BorderRect()
	outerLeft, outerTop := outer.X, outer.Y
	outerRight, outerBottom := outer.Right(), outer.Bottom()
	innerLeft := outerLeft + box.Border.Left
	innerTop := outerTop + box.Border.Top
	innerRight := outerRight - box.Border.Right
	innerBottom := outerBottom - box.Border.Bottom

	sides := []struct {
		name  string
		width float64
		pts   [4][2]float64
	}{
		{"top", box.Border.Top, [4][2]float64{{outerLeft, outerTop}, {outerRight, outerTop}, {innerRight, innerTop}, {innerLeft, innerTop}}},
		{"right", box.Border.Right, [4][2]float64{{outerRight, outerTop}, {outerRight, outerBottom}, {innerRight, innerBottom}, {innerRight, innerTop}}},
		{"bottom", box.Border.Bottom, [4][2]float64{{outerLeft, outerBottom}, {outerRight, outerBottom}, {innerRight, innerBottom}, {innerLeft, innerBottom}}},
		{"left", box.Border.Left, [4][2]float64{{outerLeft, outerTop}, {outerLeft, outerBottom}, {innerLeft, innerBottom}, {innerLeft, innerTop}}},
	}
	for _, side := range sides {
		if side.width <= 0 {
			continue
		}
		color := borderSideColor(box, side.name)
		if color.A <= 0 {
			continue
		}
		setColor(r.context, color)
		r.context.MoveTo(side.pts[0][0], side.pts[0][1])
		for _, p := range side.pts[1:] {
			r.context.LineTo(p[0], p[1])
		}
		r.context.ClosePath()
		r.context.Fill()
	}
}

// drawLabel writes the element id inside the content box.
func (r *Renderer) drawLabel(box *layout.Box) {
	if box.Node == nil {
		return
	}
	id := box.Node.ID()
	if id == "" {
		return
	}
	face := basicfont.Face7x13
	r.context.SetFontFace(face)
	r.context.SetRGB(0, 0, 0)
	r.context.DrawString(id, box.ContentX()+2, box.ContentY()+float64(face.Ascent)+1)
}

// Image returns the canvas.
func (r *Renderer) Image() image.Image {
	return r.context.Image()
}

func (r *Renderer) SavePNG(filename string) error {
	return r.context.SavePNG(filename)
}

// EncodePNG writes the canvas to w as PNG.
func (r *Renderer) EncodePNG(w io.Writer) error {
	return r.context.EncodePNG(w)
}

func setColor(dc *gg.Context, c css.Color) {
	dc.SetRGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, c.A)
}
