// Command flexview shows a scene in a window and lays it out again
// whenever the window is resized.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"flexlay/pkg/config"
	"flexlay/pkg/layout"
	"flexlay/pkg/pipeline"
	"flexlay/pkg/render"
	"flexlay/pkg/scene"
)

func main() {
	configPath := flag.String("config", "", "TOML config file")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: flexview [flags] <scene>\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	level, _ := cfg.LogLevel()
	layout.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	v, err := newViewer(flag.Arg(0), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	v.run()
}

// viewer holds the scene and settings the raster reads on every redraw.
type viewer struct {
	path string

	mu     sync.Mutex
	sc     *scene.Scene
	mode   layout.DistributionMode
	render render.Options

	status     *widget.Label
	lastStatus string
	raster     *canvas.Raster
	window     fyne.Window
}

func newViewer(path string, cfg config.Config) (*viewer, error) {
	sc, err := scene.Load(path)
	if err != nil {
		return nil, err
	}
	mode, _ := cfg.DistributionMode()
	opts := render.DefaultOptions()
	opts.Labels = cfg.Render.Labels
	// Scale follows the window's device scale instead.
	opts.Scale = 1
	return &viewer{path: path, sc: sc, mode: mode, render: opts}, nil
}

func (v *viewer) run() {
	a := app.New()
	v.window = a.NewWindow("flexview: " + v.path)
	v.window.Resize(fyne.NewSize(float32(v.sc.Viewport.Width), float32(v.sc.Viewport.Height)))

	v.status = widget.NewLabel("")
	v.raster = canvas.NewRaster(v.draw)

	modeSelect := widget.NewSelect([]string{"single", "iterative"}, func(s string) {
		mode, err := config.ParseDistributionMode(s)
		if err != nil {
			return
		}
		v.mu.Lock()
		v.mode = mode
		v.mu.Unlock()
		v.raster.Refresh()
	})
	modeSelect.SetSelected(v.mode.String())

	labels := widget.NewCheck("Labels", func(on bool) {
		v.mu.Lock()
		v.render.Labels = on
		v.mu.Unlock()
		v.raster.Refresh()
	})
	labels.SetChecked(v.render.Labels)

	reload := widget.NewButton("Reload", v.reload)

	toolbar := container.NewHBox(reload, modeSelect, labels)
	v.window.SetContent(container.NewBorder(toolbar, v.status, nil, nil, v.raster))
	v.window.ShowAndRun()
}

// reload reads the scene file again, keeping the current window size.
func (v *viewer) reload() {
	sc, err := scene.Load(v.path)
	if err != nil {
		v.status.SetText("Reload failed: " + err.Error())
		return
	}
	v.mu.Lock()
	v.sc = sc
	v.mu.Unlock()
	v.raster.Refresh()
}

// draw is the raster generator: w and h are device pixels. The layout
// viewport is the raster size in layout pixels, so resizing the window
// reflows the scene.
func (v *viewer) draw(w, h int) image.Image {
	target := image.NewRGBA(image.Rect(0, 0, w, h))
	if w <= 0 || h <= 0 {
		return target
	}

	v.mu.Lock()
	sc := v.sc
	opts := pipeline.Options{Mode: v.mode, Render: v.render}
	v.mu.Unlock()

	if v.window != nil {
		if s := v.window.Canvas().Scale(); s > 0 {
			opts.Render.Scale = float64(s)
		}
	}

	res, err := pipeline.New(opts).Render(sc, target)
	if err != nil {
		fillError(target)
		v.setStatus("Error: " + err.Error())
		return target
	}
	v.setStatus(fmt.Sprintf("viewport %.0fx%.0f  mode %s  %d root boxes",
		res.Viewport.Width, res.Viewport.Height, opts.Mode, len(res.Boxes)))
	return target
}

func (v *viewer) setStatus(text string) {
	v.mu.Lock()
	changed := text != v.lastStatus
	v.lastStatus = text
	v.mu.Unlock()
	if v.status == nil || !changed {
		return
	}
	fyne.Do(func() { v.status.SetText(text) })
}

func fillError(img *image.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.Set(x, y, color.RGBA{255, 235, 235, 255})
		}
	}
}
