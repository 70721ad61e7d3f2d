package layout

import (
	"flexlay/pkg/css"
	"flexlay/pkg/html"
)

// Layout lays out the document's top-level elements as blocks stacked
// down the viewport and returns their boxes. Every call builds a fresh
// box tree; a reflow is just another call.
func (le *LayoutEngine) Layout(doc *html.Document) []*Box {
	boxes := make([]*Box, 0)
	y := 0.0
	var absolute []*Box

	for _, node := range doc.Root.Children {
		style := le.styleOf(node)
		if style.GetPosition() == css.PositionAbsolute || style.GetPosition() == css.PositionFixed {
			box, err := le.measurer.MeasureInlineBlock(node, style, le.viewport.width, nil)
			if err != nil {
				Logger().Warn("layout: skipping positioned root child", "node", getNodeName(node), "err", err)
				continue
			}
			boxes = append(boxes, box)
			absolute = append(absolute, box)
			continue
		}

		box := le.layoutNode(node, 0, y, le.viewport.width, nil)
		if box == nil {
			continue
		}
		boxes = append(boxes, box)
		y = box.Y + box.BorderBoxHeight() + box.Margin.Bottom
	}

	for _, box := range absolute {
		le.applyAbsolutePositioning(box)
	}
	return boxes
}

// styleOf returns the computed style of a node, read from its style attribute.
func (le *LayoutEngine) styleOf(node *html.Node) *css.Style {
	if node == nil {
		return css.NewStyle()
	}
	if attr, ok := node.GetAttribute("style"); ok {
		return css.ParseInlineStyle(attr)
	}
	return css.NewStyle()
}

// newBox creates a box for node with its box-model edges resolved.
func newBox(node *html.Node, style *css.Style, parent *Box) *Box {
	return &Box{
		Node:     node,
		Style:    style,
		Margin:   style.GetMargin(),
		Padding:  style.GetPadding(),
		Border:   style.GetBorderWidth(),
		Parent:   parent,
		Position: style.GetPosition(),
		ZIndex:   style.GetZIndex(),
		Hidden:   style.GetVisibility() == css.VisibilityHidden,
		Children: make([]*Box, 0),
	}
}

// layoutNode lays out a block-level element at (x, y) in a containing
// block of the given width. It returns nil for display: none.
func (le *LayoutEngine) layoutNode(node *html.Node, x, y, availableWidth float64, parent *Box) *Box {
	style := le.styleOf(node)
	if style.GetDisplay() == css.DisplayNone {
		return nil
	}

	box := newBox(node, style, parent)
	if w, ok := style.GetLength("width"); ok {
		box.Width = w
	} else {
		box.Width = nonNegative(availableWidth - box.Margin.Horizontal() - box.Padding.Horizontal() - box.Border.Horizontal())
	}
	if h, ok := style.GetLength("height"); ok {
		box.Height = h
	} else {
		box.autoHeight = true
	}
	applyAspectRatioToBox(box)
	clampBoxWidth(box)

	box.X = x + box.Margin.Left
	box.Y = y + box.Margin.Top

	le.layoutChildren(box)
	return box
}

// layoutChildren lays out the element children of box according to its
// display type and settles any auto dimensions.
func (le *LayoutEngine) layoutChildren(box *Box) {
	var children []*html.Node
	if box.Node != nil {
		children = box.Node.Children
	}

	if box.IsFlexContainer() {
		le.layoutFlexChildren(box, children)
	} else {
		le.layoutBlockChildren(box, children)
	}

	if box.autoHeight {
		box.Height = box.ContentHeight
	}
	clampBoxHeight(box)
}

// relayoutChildren lays the subtree of box out again after its size was
// changed from outside (flexing or stretching), keeping the new size.
func (le *LayoutEngine) relayoutChildren(box *Box) {
	if box.Node == nil || len(box.Node.Children) == 0 {
		return
	}
	box.autoWidth = false
	box.autoHeight = false
	box.Children = box.Children[:0]
	box.ContentWidth, box.ContentHeight = 0, 0
	le.layoutChildren(box)
}

// applyAspectRatioToBox derives an auto dimension from the other one.
func applyAspectRatioToBox(box *Box) {
	ratio := box.Style.GetAspectRatio()
	if ratio <= 0 {
		return
	}
	switch {
	case box.autoHeight && !box.autoWidth:
		box.Height = nonNegative(box.BorderBoxWidth()/ratio - box.Padding.Vertical() - box.Border.Vertical())
		box.autoHeight = false
	case box.autoWidth && !box.autoHeight:
		box.Width = nonNegative(box.BorderBoxHeight()*ratio - box.Padding.Horizontal() - box.Border.Horizontal())
		box.autoWidth = false
	}
}

func clampBoxWidth(box *Box) {
	box.Width = Clamp(box.Width, styleLength(box.Style, "min-width"), styleLimit(box.Style, "max-width"))
}

func clampBoxHeight(box *Box) {
	box.Height = Clamp(box.Height, styleLength(box.Style, "min-height"), styleLimit(box.Style, "max-height"))
}

func styleLength(style *css.Style, property string) float64 {
	v, ok := style.GetLength(property)
	if !ok {
		return 0
	}
	return nonNegative(v)
}

func styleLimit(style *css.Style, property string) Limit {
	if v, ok := style.GetMaxLength(property); ok {
		return Bounded(v)
	}
	return Unbounded
}
