// Package pipeline runs a scene end to end: build the document, run its
// scripts, lay it out and optionally paint it.
package pipeline

import (
	"fmt"
	"image"
	"io"
	"math"

	"flexlay/pkg/html"
	"flexlay/pkg/js"
	"flexlay/pkg/layout"
	"flexlay/pkg/render"
	"flexlay/pkg/scene"
)

type Options struct {
	Mode   layout.DistributionMode
	Render render.Options

	// ScriptOut and ScriptErr receive console output from scene scripts.
	// Nil leaves the engine's defaults (stdout and stderr).
	ScriptOut io.Writer
	ScriptErr io.Writer
}

// Result is one laid-out scene.
type Result struct {
	Document *html.Document
	Boxes    []*layout.Box
	Viewport layout.Size
}

type Pipeline struct {
	opts Options
}

func New(opts Options) *Pipeline {
	return &Pipeline{opts: opts}
}

// Layout builds a fresh document for sc, runs its scripts with the
// viewport visible to them, and lays it out. A zero viewport takes the
// scene's own. Every call starts from the scene file again, so a resize
// is a full reflow.
func (p *Pipeline) Layout(sc *scene.Scene, viewport layout.Size) (*Result, error) {
	if viewport.Width <= 0 {
		viewport.Width = sc.Viewport.Width
	}
	if viewport.Height <= 0 {
		viewport.Height = sc.Viewport.Height
	}

	doc, err := sc.Document()
	if err != nil {
		return nil, fmt.Errorf("building document: %w", err)
	}

	if len(doc.Scripts) > 0 {
		engine := js.New()
		if p.opts.ScriptOut != nil || p.opts.ScriptErr != nil {
			engine.SetOutput(orDiscard(p.opts.ScriptOut), orDiscard(p.opts.ScriptErr))
		}
		engine.SetViewport(viewport.Width, viewport.Height)
		if err := engine.Execute(doc); err != nil {
			return nil, fmt.Errorf("running scripts: %w", err)
		}
	}

	le := layout.NewLayoutEngine(viewport.Width, viewport.Height)
	le.SetDistributionMode(p.opts.Mode)
	return &Result{Document: doc, Boxes: le.Layout(doc), Viewport: viewport}, nil
}

// Render lays sc out at the size of target (divided by the render scale)
// and paints it into target.
func (p *Pipeline) Render(sc *scene.Scene, target *image.RGBA) (*Result, error) {
	scale := p.scale()
	bounds := target.Bounds()
	res, err := p.Layout(sc, layout.Size{
		Width:  float64(bounds.Dx()) / scale,
		Height: float64(bounds.Dy()) / scale,
	})
	if err != nil {
		return nil, err
	}
	render.NewRendererForImage(target, p.opts.Render).Render(res.Boxes)
	return res, nil
}

// RenderImage lays sc out at viewport and paints it onto a new canvas
// sized viewport times the render scale.
func (p *Pipeline) RenderImage(sc *scene.Scene, viewport layout.Size) (*render.Renderer, *Result, error) {
	res, err := p.Layout(sc, viewport)
	if err != nil {
		return nil, nil, err
	}
	scale := p.scale()
	w := int(math.Ceil(res.Viewport.Width * scale))
	h := int(math.Ceil(res.Viewport.Height * scale))
	r := render.NewRendererWithOptions(w, h, p.opts.Render)
	r.Render(res.Boxes)
	return r, res, nil
}

func (p *Pipeline) scale() float64 {
	if p.opts.Render.Scale > 0 {
		return p.opts.Render.Scale
	}
	return 1
}

func orDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}
