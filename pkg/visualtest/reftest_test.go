package visualtest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"flexlay/pkg/scene"
)

// TestReftests renders every testdata/reftests/NAME.yaml next to its
// NAME-ref.yaml and requires the two images to match. Each pair reaches
// the same picture through different flex features.
func TestReftests(t *testing.T) {
	tests, err := filepath.Glob(filepath.Join("testdata", "reftests", "*.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	ran := 0
	for _, testPath := range tests {
		if strings.HasSuffix(testPath, "-ref.yaml") {
			continue
		}
		refPath := strings.TrimSuffix(testPath, ".yaml") + "-ref.yaml"
		if _, err := os.Stat(refPath); err != nil {
			t.Errorf("%s: missing reference %s", testPath, refPath)
			continue
		}
		ran++
		name := strings.TrimSuffix(filepath.Base(testPath), ".yaml")
		t.Run(name, func(t *testing.T) {
			runReftest(t, testPath, refPath)
		})
	}
	if ran == 0 {
		t.Fatal("no reftests found")
	}
}

func runReftest(t *testing.T, testPath, refPath string) {
	t.Helper()
	const width, height = 200, 120

	test, err := scene.Load(testPath)
	if err != nil {
		t.Fatal(err)
	}
	ref, err := scene.Load(refPath)
	if err != nil {
		t.Fatal(err)
	}
	testImg, err := RenderScene(test, width, height)
	if err != nil {
		t.Fatalf("render test: %v", err)
	}
	refImg, err := RenderScene(ref, width, height)
	if err != nil {
		t.Fatalf("render reference: %v", err)
	}

	opts := DefaultOptions()
	opts.DiffImagePath = filepath.Join(t.TempDir(), "diff.png")
	result, err := Compare(testImg, refImg, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Match {
		pct := float64(result.DifferentPixels) / float64(result.TotalPixels) * 100
		t.Errorf("REFTEST FAIL: %d/%d pixels differ (%.1f%%, max diff: %d), diff at %s",
			result.DifferentPixels, result.TotalPixels, pct, result.MaxDifference, opts.DiffImagePath)
	}
}
