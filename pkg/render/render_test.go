package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"flexlay/pkg/css"
	"flexlay/pkg/html"
	"flexlay/pkg/layout"
)

func layoutMarkup(t *testing.T, markup string, width, height float64) []*layout.Box {
	t.Helper()
	doc, err := html.Parse(markup)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return layout.NewLayoutEngine(width, height).Layout(doc)
}

func pixel(img image.Image, x, y int) color.RGBA {
	r, g, b, a := img.At(x, y).RGBA()
	return color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}

var (
	white = color.RGBA{255, 255, 255, 255}
	red   = color.RGBA{255, 0, 0, 255}
	blue  = color.RGBA{0, 0, 255, 255}
	black = color.RGBA{0, 0, 0, 255}
)

func TestRender_Background(t *testing.T) {
	boxes := layoutMarkup(t, `<div style="width: 40px; height: 20px; padding: 5px; background-color: red"></div>`, 100, 100)
	r := NewRenderer(100, 100)
	r.Render(boxes)
	img := r.Image()

	if got := pixel(img, 2, 2); got != red {
		t.Errorf("padding area = %v, want red", got)
	}
	if got := pixel(img, 48, 28); got != red {
		t.Errorf("content corner = %v, want red", got)
	}
	if got := pixel(img, 60, 10); got != white {
		t.Errorf("outside = %v, want white", got)
	}
}

func TestRender_Border(t *testing.T) {
	boxes := layoutMarkup(t, `<div style="width: 20px; height: 20px; border: 4px solid blue; background-color: red"></div>`, 100, 100)
	r := NewRenderer(100, 100)
	r.Render(boxes)
	img := r.Image()

	if got := pixel(img, 1, 14); got != blue {
		t.Errorf("left border = %v, want blue", got)
	}
	if got := pixel(img, 14, 26); got != blue {
		t.Errorf("bottom border = %v, want blue", got)
	}
	if got := pixel(img, 14, 14); got != red {
		t.Errorf("inside = %v, want red", got)
	}
}

func TestRender_BorderDefaultsToBlack(t *testing.T) {
	boxes := layoutMarkup(t, `<div style="width: 20px; height: 20px; border-width: 4px"></div>`, 100, 100)
	r := NewRenderer(100, 100)
	r.Render(boxes)
	if got := pixel(r.Image(), 14, 1); got != black {
		t.Errorf("top border = %v, want black", got)
	}
}

func TestRender_HiddenSkipped(t *testing.T) {
	boxes := layoutMarkup(t, `<div style="width: 20px; height: 20px; visibility: hidden; background-color: red"></div>`, 50, 50)
	r := NewRenderer(50, 50)
	r.Render(boxes)
	if got := pixel(r.Image(), 10, 10); got != white {
		t.Errorf("hidden box painted: %v", got)
	}
}

func TestRender_ZIndexOrder(t *testing.T) {
	markup := `<div style="position: relative; width: 100px; height: 100px">` +
		`<div style="position: absolute; left: 0px; top: 0px; width: 50px; height: 50px; z-index: 2; background-color: red"></div>` +
		`<div style="position: absolute; left: 0px; top: 0px; width: 50px; height: 50px; z-index: 1; background-color: blue"></div>` +
		`</div>`
	boxes := layoutMarkup(t, markup, 100, 100)
	r := NewRenderer(100, 100)
	r.Render(boxes)
	if got := pixel(r.Image(), 25, 25); got != red {
		t.Errorf("overlap = %v, want red (higher z-index)", got)
	}
}

func TestRender_TreeOrderWithoutZIndex(t *testing.T) {
	markup := `<div style="position: relative; width: 100px; height: 100px">` +
		`<div style="position: absolute; left: 0px; top: 0px; width: 50px; height: 50px; background-color: red"></div>` +
		`<div style="position: absolute; left: 0px; top: 0px; width: 50px; height: 50px; background-color: blue"></div>` +
		`</div>`
	boxes := layoutMarkup(t, markup, 100, 100)
	r := NewRenderer(100, 100)
	r.Render(boxes)
	if got := pixel(r.Image(), 25, 25); got != blue {
		t.Errorf("overlap = %v, want blue (later in tree)", got)
	}
}

func TestRender_BackgroundOption(t *testing.T) {
	opts := DefaultOptions()
	opts.Background = css.Color{R: 0, G: 0, B: 255, A: 1}
	r := NewRendererWithOptions(10, 10, opts)
	r.Render(nil)
	if got := pixel(r.Image(), 5, 5); got != blue {
		t.Errorf("background = %v, want blue", got)
	}
}

func TestRender_Scale(t *testing.T) {
	boxes := layoutMarkup(t, `<div style="width: 10px; height: 10px; background-color: red"></div>`, 20, 20)
	opts := DefaultOptions()
	opts.Scale = 2
	r := NewRendererWithOptions(40, 40, opts)
	r.Render(boxes)
	img := r.Image()
	if got := pixel(img, 18, 18); got != red {
		t.Errorf("scaled box = %v, want red", got)
	}
	if got := pixel(img, 22, 22); got != white {
		t.Errorf("outside scaled box = %v, want white", got)
	}
}

func TestRender_Labels(t *testing.T) {
	boxes := layoutMarkup(t, `<div id="hello" style="width: 80px; height: 20px"></div>`, 100, 40)

	plain := NewRenderer(100, 40)
	plain.Render(boxes)

	opts := DefaultOptions()
	opts.Labels = true
	labelled := NewRendererWithOptions(100, 40, opts)
	labelled.Render(boxes)

	dark := 0
	for y := 0; y < 20; y++ {
		for x := 0; x < 80; x++ {
			if pixel(plain.Image(), x, y) != white {
				t.Fatalf("plain render has ink at (%d,%d)", x, y)
			}
			if p := pixel(labelled.Image(), x, y); p.R < 128 {
				dark++
			}
		}
	}
	if dark == 0 {
		t.Error("label render drew no text")
	}
}

func TestRenderForImage(t *testing.T) {
	target := image.NewRGBA(image.Rect(0, 0, 30, 30))
	boxes := layoutMarkup(t, `<div style="width: 10px; height: 10px; background-color: blue"></div>`, 30, 30)
	NewRendererForImage(target, DefaultOptions()).Render(boxes)
	if got := pixel(target, 5, 5); got != blue {
		t.Errorf("target pixel = %v, want blue", got)
	}
}

func TestEncodePNG(t *testing.T) {
	r := NewRenderer(8, 8)
	r.Render(nil)
	var buf bytes.Buffer
	if err := r.EncodePNG(&buf); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Errorf("bounds = %v", b)
	}
}
