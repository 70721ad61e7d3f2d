package layout

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"flexlay/pkg/css"
	"flexlay/pkg/html"
)

func layoutHTML(t *testing.T, markup string) []*Box {
	t.Helper()
	return layoutWith(t, NewLayoutEngine(800, 600), markup)
}

func layoutWith(t *testing.T, engine *LayoutEngine, markup string) []*Box {
	t.Helper()
	doc, err := html.Parse(markup)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return engine.Layout(doc)
}

func checkBox(t *testing.T, name string, b *Box, x, y, w, h float64) {
	t.Helper()
	if !approx(b.X, x) || !approx(b.Y, y) || !approx(b.Width, w) || !approx(b.Height, h) {
		t.Errorf("%s: got (%v,%v) %vx%v, want (%v,%v) %vx%v", name, b.X, b.Y, b.Width, b.Height, x, y, w, h)
	}
}

func TestFlex_GrowWithColumnGap(t *testing.T) {
	boxes := layoutHTML(t, `<div style="display: flex; width: 400px; column-gap: 10px">
		<div style="flex: 1 1 0; height: 20px"></div>
		<div style="flex: 2 1 0; height: 20px"></div>
	</div>`)
	row := boxes[0]
	if len(row.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(row.Children))
	}
	checkBox(t, "first", row.Children[0], 0, 0, 130, 20)
	checkBox(t, "second", row.Children[1], 140, 0, 260, 20)
	checkBox(t, "container", row, 0, 0, 400, 20)
}

func TestFlex_StretchRespectsMargins(t *testing.T) {
	boxes := layoutHTML(t, `<div style="display: flex; width: 300px; height: 100px">
		<div style="width: 50px"></div>
		<div style="width: 50px; margin: 10px"></div>
	</div>`)
	row := boxes[0]
	checkBox(t, "plain", row.Children[0], 0, 0, 50, 100)
	checkBox(t, "margined", row.Children[1], 60, 10, 50, 80)
}

func TestFlex_ExplicitCrossSizeDisablesStretch(t *testing.T) {
	boxes := layoutHTML(t, `<div style="display: flex; width: 300px; height: 100px">
		<div style="width: 50px; height: 30px"></div>
	</div>`)
	checkBox(t, "item", boxes[0].Children[0], 0, 0, 50, 30)
}

func TestFlex_PaddingAndBorder(t *testing.T) {
	boxes := layoutHTML(t, `<div style="display: flex; width: 300px; padding: 10px; border: 5px solid black">
		<div style="width: 50px; height: 20px; padding: 5px"></div>
		<div style="width: 50px; height: 20px"></div>
	</div>`)
	row := boxes[0]
	checkBox(t, "padded item", row.Children[0], 15, 15, 50, 20)
	checkBox(t, "second item", row.Children[1], 75, 15, 50, 20)
	if row.Height != 30 {
		t.Errorf("container content height = %v, want 30", row.Height)
	}
}

func TestFlex_WrapWithGap(t *testing.T) {
	boxes := layoutHTML(t, `<div style="display: flex; flex-wrap: wrap; width: 250px; gap: 10px">
		<div style="width: 100px; height: 50px"></div>
		<div style="width: 100px; height: 50px"></div>
		<div style="width: 100px; height: 50px"></div>
	</div>`)
	row := boxes[0]
	checkBox(t, "item 1", row.Children[1], 110, 0, 100, 50)
	checkBox(t, "item 2", row.Children[2], 0, 60, 100, 50)
	if row.Height != 110 {
		t.Errorf("container height = %v, want 110", row.Height)
	}
}

func TestFlex_ColumnAutoHeight(t *testing.T) {
	boxes := layoutHTML(t, `<div style="display: flex; flex-direction: column; width: 200px; row-gap: 5px">
		<div style="height: 30px"></div>
		<div style="height: 30px"></div>
		<div style="height: 30px"></div>
	</div>`)
	col := boxes[0]
	for i, want := range []float64{0, 35, 70} {
		checkBox(t, "item", col.Children[i], 0, want, 200, 30)
	}
	if col.Height != 100 {
		t.Errorf("column height = %v, want 100", col.Height)
	}
}

func TestFlex_RowReverse(t *testing.T) {
	boxes := layoutHTML(t, `<div style="display: flex; flex-direction: row-reverse; width: 300px">
		<div style="width: 100px; height: 10px"></div>
		<div style="width: 100px; height: 10px"></div>
	</div>`)
	row := boxes[0]
	if row.Children[0].X != 200 || row.Children[1].X != 100 {
		t.Errorf("reverse positions = %v, %v; want 200, 100", row.Children[0].X, row.Children[1].X)
	}
}

func TestFlex_JustifyAndAlignCenter(t *testing.T) {
	boxes := layoutHTML(t, `<div style="display: flex; width: 300px; height: 100px; justify-content: center; align-items: center">
		<div style="width: 100px; height: 20px"></div>
	</div>`)
	checkBox(t, "centered", boxes[0].Children[0], 100, 40, 100, 20)
}

func TestFlex_Order(t *testing.T) {
	boxes := layoutHTML(t, `<div style="display: flex; width: 300px">
		<div id="a" style="width: 100px; height: 10px"></div>
		<div id="b" style="width: 100px; height: 10px; order: -1"></div>
	</div>`)
	row := boxes[0]
	if row.Children[0].Node.ID() != "a" {
		t.Fatal("children must stay in document order")
	}
	if row.Children[0].X != 100 || row.Children[1].X != 0 {
		t.Errorf("order not applied: a=%v b=%v", row.Children[0].X, row.Children[1].X)
	}
}

func TestFlex_HiddenAndNoneChildren(t *testing.T) {
	boxes := layoutHTML(t, `<div style="display: flex; width: 300px">
		<div style="width: 100px; height: 10px"></div>
		<div style="visibility: hidden; width: 100px; height: 10px"></div>
		<div style="display: none; width: 100px; height: 10px"></div>
		<div style="width: 100px; height: 10px"></div>
	</div>`)
	row := boxes[0]
	if len(row.Children) != 3 {
		t.Fatalf("expected 3 boxes (display: none dropped), got %d", len(row.Children))
	}
	if !row.Children[1].Hidden {
		t.Error("hidden child should be marked Hidden")
	}
	if row.Children[2].X != 100 {
		t.Errorf("hidden child should not take space, last item at %v", row.Children[2].X)
	}
}

func TestFlex_AbsoluteChild(t *testing.T) {
	boxes := layoutHTML(t, `<div style="display: flex; position: relative; width: 300px; height: 100px">
		<div style="width: 100px; height: 10px"></div>
		<div style="position: absolute; right: 0; top: 10px; width: 50px; height: 20px"></div>
		<div style="width: 100px; height: 10px"></div>
	</div>`)
	row := boxes[0]
	checkBox(t, "absolute", row.Children[1], 250, 10, 50, 20)
	if row.Children[2].X != 100 {
		t.Errorf("absolute child should not take space, last item at %v", row.Children[2].X)
	}
}

func TestFlex_NestedShrinkToFit(t *testing.T) {
	boxes := layoutHTML(t, `<div style="display: flex; width: 400px">
		<div style="display: flex">
			<div style="width: 50px; height: 20px"></div>
			<div style="width: 50px; height: 20px"></div>
		</div>
	</div>`)
	inner := boxes[0].Children[0]
	checkBox(t, "inner", inner, 0, 0, 100, 20)
	if inner.Children[1].X != 50 {
		t.Errorf("inner second child at %v, want 50", inner.Children[1].X)
	}
}

func TestFlex_GrownItemRelaysChildren(t *testing.T) {
	boxes := layoutHTML(t, `<div style="display: flex; width: 400px; padding-left: 20px">
		<div style="width: 40px; height: 20px"></div>
		<div style="display: flex; flex-grow: 1; justify-content: flex-end">
			<div style="width: 50px; height: 20px"></div>
		</div>
	</div>`)
	inner := boxes[0].Children[1]
	checkBox(t, "inner", inner, 60, 0, 360, 20)
	checkBox(t, "inner child", inner.Children[0], 370, 0, 50, 20)
}

func TestFlex_AspectRatio(t *testing.T) {
	boxes := layoutHTML(t, `<div style="display: flex; width: 300px">
		<div style="flex: 1; aspect-ratio: 2"></div>
	</div>`)
	checkBox(t, "ratio item", boxes[0].Children[0], 0, 0, 300, 150)
	if boxes[0].Height != 150 {
		t.Errorf("container height = %v, want 150", boxes[0].Height)
	}
}

func TestFlex_AutoMargins(t *testing.T) {
	boxes := layoutHTML(t, `<div style="display: flex; width: 300px; height: 100px">
		<div style="width: 50px; height: 20px; margin-left: auto; margin-top: auto; margin-bottom: auto"></div>
	</div>`)
	item := boxes[0].Children[0]
	checkBox(t, "auto margins", item, 250, 40, 50, 20)
	if item.Margin.Left != 250 {
		t.Errorf("resolved margin-left = %v, want 250", item.Margin.Left)
	}
}

func TestFlex_DistributionModes(t *testing.T) {
	markup := `<div style="display: flex; width: 300px">
		<div style="flex: 1 1 0; height: 10px; max-width: 60px"></div>
		<div style="flex: 1 1 0; height: 10px"></div>
		<div style="flex: 1 1 0; height: 10px"></div>
	</div>`

	single := layoutHTML(t, markup)[0]
	if single.Children[0].Width != 60 || single.Children[1].Width != 100 {
		t.Errorf("single pass widths = %v, %v; want 60, 100", single.Children[0].Width, single.Children[1].Width)
	}

	engine := NewLayoutEngine(800, 600)
	engine.SetDistributionMode(DistributeIterative)
	iterative := layoutWith(t, engine, markup)[0]
	if iterative.Children[0].Width != 60 || iterative.Children[1].Width != 120 || iterative.Children[2].X != 180 {
		t.Errorf("iterative widths = %v, %v (last at %v); want 60, 120 (180)",
			iterative.Children[0].Width, iterative.Children[1].Width, iterative.Children[2].X)
	}
}

type failingMeasurer struct {
	next   Measurer
	failID string
}

func (m failingMeasurer) MeasureInlineBlock(node *html.Node, style *css.Style, availableWidth float64, parent *Box) (*Box, error) {
	if node.ID() == m.failID {
		return nil, errors.New("measurement failed")
	}
	return m.next.MeasureInlineBlock(node, style, availableWidth, parent)
}

func TestFlex_FailedMeasurementSkipsChild(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	engine := NewLayoutEngine(800, 600)
	engine.SetMeasurer(failingMeasurer{next: engine, failID: "bad"})
	boxes := layoutWith(t, engine, `<div style="display: flex; width: 300px">
		<div style="width: 100px; height: 10px"></div>
		<div id="bad" style="width: 100px; height: 10px"></div>
		<div style="width: 100px; height: 10px"></div>
	</div>`)

	row := boxes[0]
	if len(row.Children) != 2 {
		t.Fatalf("expected failed child to be skipped, got %d children", len(row.Children))
	}
	if row.Children[1].X != 100 {
		t.Errorf("remaining child at %v, want 100", row.Children[1].X)
	}
	if !strings.Contains(buf.String(), "skipping child") || !strings.Contains(buf.String(), "div#bad") {
		t.Errorf("expected a warning naming the child, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "resolved container") {
		t.Errorf("expected a debug summary, got %q", buf.String())
	}
}

func TestFlex_EmptyContainer(t *testing.T) {
	boxes := layoutHTML(t, `<div style="display: flex; width: 300px"></div>`)
	if len(boxes[0].Children) != 0 || boxes[0].Height != 0 {
		t.Errorf("empty container: %d children, height %v", len(boxes[0].Children), boxes[0].Height)
	}
}

func TestFlex_ReflowAtNewViewport(t *testing.T) {
	doc, err := html.Parse(`<div style="display: flex; flex-wrap: wrap">
		<div style="width: 100px; height: 10px"></div>
		<div style="width: 100px; height: 10px"></div>
	</div>`)
	if err != nil {
		t.Fatal(err)
	}
	engine := NewLayoutEngine(300, 100)
	if boxes := engine.Layout(doc); boxes[0].Children[1].Y != 0 {
		t.Errorf("wide viewport: second item should share the line")
	}
	engine.SetViewport(150, 100)
	if boxes := engine.Layout(doc); boxes[0].Children[1].Y != 10 {
		t.Errorf("narrow viewport: second item should wrap")
	}
}
