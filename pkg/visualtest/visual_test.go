package visualtest

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestCompareImages_Identical(t *testing.T) {
	// Create a simple test image
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			img.Set(x, y, color.RGBA{255, 0, 0, 255}) // Red
		}
	}

	// Save it twice
	tmpDir := t.TempDir()
	path1 := filepath.Join(tmpDir, "img1.png")
	path2 := filepath.Join(tmpDir, "img2.png")

	saveTestImage(t, img, path1)
	saveTestImage(t, img, path2)

	// Compare
	result, err := CompareImages(path1, path2, DefaultOptions())
	if err != nil {
		t.Fatalf("comparison failed: %v", err)
	}

	if !result.Match {
		t.Errorf("expected images to match")
	}
	if result.DifferentPixels != 0 {
		t.Errorf("expected 0 different pixels, got %d", result.DifferentPixels)
	}
}

func TestCompareImages_Different(t *testing.T) {
	tmpDir := t.TempDir()

	// Create image 1 (red)
	img1 := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			img1.Set(x, y, color.RGBA{255, 0, 0, 255})
		}
	}
	path1 := filepath.Join(tmpDir, "img1.png")
	saveTestImage(t, img1, path1)

	// Create image 2 (blue)
	img2 := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			img2.Set(x, y, color.RGBA{0, 0, 255, 255})
		}
	}
	path2 := filepath.Join(tmpDir, "img2.png")
	saveTestImage(t, img2, path2)

	// Compare
	opts := DefaultOptions()
	opts.DiffImagePath = filepath.Join(tmpDir, "diff.png")

	result, err := CompareImages(path1, path2, opts)
	if err != nil {
		t.Fatalf("comparison failed: %v", err)
	}

	if result.Match {
		t.Errorf("expected images to not match")
	}
	if result.DifferentPixels != 100 {
		t.Errorf("expected 100 different pixels, got %d", result.DifferentPixels)
	}

	// Verify diff image was created
	if _, err := os.Stat(opts.DiffImagePath); os.IsNotExist(err) {
		t.Errorf("diff image was not created")
	}
}

func TestCompareImages_WithTolerance(t *testing.T) {
	tmpDir := t.TempDir()

	// Create image 1
	img1 := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			img1.Set(x, y, color.RGBA{100, 100, 100, 255})
		}
	}
	path1 := filepath.Join(tmpDir, "img1.png")
	saveTestImage(t, img1, path1)

	// Create image 2 (slightly different - 2 points off)
	img2 := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			img2.Set(x, y, color.RGBA{102, 102, 102, 255})
		}
	}
	path2 := filepath.Join(tmpDir, "img2.png")
	saveTestImage(t, img2, path2)

	// Compare with tolerance=2 (should match)
	opts := DefaultOptions()
	opts.Tolerance = 2
	result, err := CompareImages(path1, path2, opts)
	if err != nil {
		t.Fatalf("comparison failed: %v", err)
	}
	if !result.Match {
		t.Errorf("expected images to match with tolerance=2")
	}

	// Compare with tolerance=0 (should not match)
	opts.Tolerance = 0
	result, err = CompareImages(path1, path2, opts)
	if err != nil {
		t.Fatalf("comparison failed: %v", err)
	}
	if result.Match {
		t.Errorf("expected images to not match with tolerance=0")
	}
}

func TestCompareImages_DifferentDimensions(t *testing.T) {
	tmpDir := t.TempDir()

	// Create 10x10 image
	img1 := image.NewRGBA(image.Rect(0, 0, 10, 10))
	path1 := filepath.Join(tmpDir, "img1.png")
	saveTestImage(t, img1, path1)

	// Create 20x20 image
	img2 := image.NewRGBA(image.Rect(0, 0, 20, 20))
	path2 := filepath.Join(tmpDir, "img2.png")
	saveTestImage(t, img2, path2)

	// Compare - should error or return mismatch
	result, err := CompareImages(path1, path2, DefaultOptions())
	if err == nil {
		t.Errorf("expected error for different dimensions")
	}
	if result != nil && result.Match {
		t.Errorf("expected images with different dimensions to not match")
	}
}

// Helper function to save test images
func saveTestImage(t *testing.T, img image.Image, path string) {
	t.Helper()
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create image file: %v", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
}

func fill(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.Set(x, y, c)
		}
	}
}

func TestCompare_FuzzyShift(t *testing.T) {
	white := color.RGBA{255, 255, 255, 255}
	red := color.RGBA{255, 0, 0, 255}
	a := image.NewRGBA(image.Rect(0, 0, 20, 20))
	b := image.NewRGBA(image.Rect(0, 0, 20, 20))
	fill(a, a.Bounds(), white)
	fill(b, b.Bounds(), white)
	fill(a, image.Rect(5, 5, 10, 10), red)
	fill(b, image.Rect(6, 5, 11, 10), red)

	result, err := Compare(a, b, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if result.Match {
		t.Fatal("expected shifted images to differ without fuzzy matching")
	}

	opts := DefaultOptions()
	opts.FuzzyRadius = 1
	result, err = Compare(a, b, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Match {
		t.Errorf("expected 1px shift to match with FuzzyRadius=1, %d pixels differ", result.DifferentPixels)
	}
}

func TestCompare_MaxDifferentPercent(t *testing.T) {
	a := image.NewRGBA(image.Rect(0, 0, 10, 10))
	b := image.NewRGBA(image.Rect(0, 0, 10, 10))
	b.Set(0, 0, color.RGBA{255, 255, 255, 255})

	opts := DefaultOptions()
	opts.MaxDifferentPercent = 1
	result, err := Compare(a, b, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Match || result.DifferentPixels != 1 {
		t.Errorf("match=%v different=%d, want match with 1 different pixel", result.Match, result.DifferentPixels)
	}
	if result.MaxDifference != 255 {
		t.Errorf("max difference = %d, want 255", result.MaxDifference)
	}
}

func TestRenderSceneFile(t *testing.T) {
	dir := t.TempDir()
	scenePath := filepath.Join(dir, "box.yaml")
	scene := "nodes:\n  - style: \"width: 10px; height: 10px; background-color: red\"\n"
	if err := os.WriteFile(scenePath, []byte(scene), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out", "box.png")
	if err := RenderSceneFile(scenePath, out, 20, 20); err != nil {
		t.Fatal(err)
	}
	img, err := loadPNG(out)
	if err != nil {
		t.Fatal(err)
	}
	if r, g, b, _ := img.At(5, 5).RGBA(); r>>8 != 255 || g != 0 || b != 0 {
		t.Errorf("pixel (5,5) = %v, want red", img.At(5, 5))
	}
	if r, g, b, _ := img.At(15, 15).RGBA(); r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Errorf("pixel (15,15) = %v, want white", img.At(15, 15))
	}
}
