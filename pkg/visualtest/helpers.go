package visualtest

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"flexlay/pkg/layout"
	"flexlay/pkg/pipeline"
	"flexlay/pkg/render"
	"flexlay/pkg/scene"
)

// RenderScene lays out and paints sc at the given canvas size. Script
// console output is discarded.
func RenderScene(sc *scene.Scene, width, height int) (image.Image, error) {
	p := pipeline.New(pipeline.Options{
		Render:    render.DefaultOptions(),
		ScriptOut: io.Discard,
		ScriptErr: io.Discard,
	})
	r, _, err := p.RenderImage(sc, layout.Size{Width: float64(width), Height: float64(height)})
	if err != nil {
		return nil, err
	}
	return r.Image(), nil
}

// RenderSceneFile renders the scene file at scenePath to a PNG at outputPath.
func RenderSceneFile(scenePath, outputPath string, width, height int) error {
	sc, err := scene.Load(scenePath)
	if err != nil {
		return err
	}
	img, err := RenderScene(sc, width, height)
	if err != nil {
		return fmt.Errorf("render %s: %w", scenePath, err)
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := savePNG(img, outputPath); err != nil {
		return fmt.Errorf("save error: %w", err)
	}
	return nil
}
