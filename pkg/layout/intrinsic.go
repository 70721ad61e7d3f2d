package layout

import (
	"fmt"

	"flexlay/pkg/css"
	"flexlay/pkg/html"
)

// MeasureInlineBlock lays node out as an inline-block inside a containing
// block of availableWidth and returns the box with its natural size.
// Explicit width/height win; an auto width shrinks to the content, capped
// at the available width. The box is placed at the parent's content origin
// (or the page origin without a parent).
func (le *LayoutEngine) MeasureInlineBlock(node *html.Node, style *css.Style, availableWidth float64, parent *Box) (*Box, error) {
	if node == nil || node.TagName == "" {
		return nil, ErrNotElement
	}
	if style == nil {
		style = le.styleOf(node)
	}
	if style.GetDisplay() == css.DisplayNone {
		return nil, fmt.Errorf("%w: %s has display: none", ErrNotElement, getNodeName(node))
	}

	box := newBox(node, style, parent)
	if w, ok := style.GetLength("width"); ok {
		box.Width = w
	} else {
		box.Width = nonNegative(availableWidth - box.Margin.Horizontal() - box.Padding.Horizontal() - box.Border.Horizontal())
		box.autoWidth = true
	}
	if h, ok := style.GetLength("height"); ok {
		box.Height = h
	} else {
		box.autoHeight = true
	}
	applyAspectRatioToBox(box)
	clampBoxWidth(box)

	x, y := 0.0, 0.0
	if parent != nil {
		x, y = parent.ContentX(), parent.ContentY()
	}
	box.X = x + box.Margin.Left
	box.Y = y + box.Margin.Top

	le.layoutChildren(box)

	if box.autoWidth && len(box.Children) == 0 {
		box.Width = styleLength(style, "min-width")
	}
	return box, nil
}

// NaturalSize is the border-box size of a measured box.
func (b *Box) NaturalSize() Size {
	return Size{Width: b.BorderBoxWidth(), Height: b.BorderBoxHeight()}
}
