package layout

import (
	"fmt"
	"math"

	"flexlay/pkg/css"
	"flexlay/pkg/html"
)

// layoutFlexChildren lays out the children of a flex container.
//
// Each child is measured once as an inline-block, turned into a FlexItem,
// and resolved together with its siblings. Results are copied back into
// the child boxes in page coordinates, and the parent's content extent
// and auto size are updated from the placed children. Children whose
// measurement fails are skipped; absolutely positioned and hidden
// children stay out of the flex pass.
func (le *LayoutEngine) layoutFlexChildren(parent *Box, children []*html.Node) {
	if len(children) == 0 {
		return
	}

	boxes := make([]*Box, 0, len(children))
	for _, node := range children {
		style := le.styleOf(node)
		if style.GetDisplay() == css.DisplayNone {
			continue
		}
		box, err := le.measurer.MeasureInlineBlock(node, style, parent.Width, parent)
		if err != nil || box == nil {
			Logger().Warn("flex: skipping child",
				"container", getNodeName(parent.Node),
				"node", getNodeName(node),
				"err", err)
			continue
		}
		box.Parent = parent
		boxes = append(boxes, box)
	}
	if len(boxes) == 0 {
		return
	}
	parent.Children = append(parent.Children, boxes...)

	container := le.flexContainerFor(parent, boxes)
	dir := container.Direction

	result := le.resolver.Resolve(&container)
	Logger().Debug("flex: resolved container",
		"container", getNodeName(parent.Node),
		"items", len(container.Items),
		"lines", len(result.Lines),
		"used_width", result.UsedSize.Width,
		"used_height", result.UsedSize.Height)

	originX, originY := parent.ContentX(), parent.ContentY()
	placed := make([]*Box, 0, len(boxes))
	var absolute []*Box
	for i, box := range boxes {
		it := &container.Items[i]
		if it.PositionType == PositionAbsolute {
			absolute = append(absolute, box)
			continue
		}
		if it.Excluded() {
			continue
		}

		size := it.Size(dir)
		width := nonNegative(size.Width - box.Padding.Horizontal() - box.Border.Horizontal())
		height := nonNegative(size.Height - box.Padding.Vertical() - box.Border.Vertical())
		box.Margin = css.BoxEdge{
			Top:    it.Margin.Top,
			Right:  it.Margin.Right,
			Bottom: it.Margin.Bottom,
			Left:   it.Margin.Left,
		}
		le.moveBox(box, originX+it.Position.X, originY+it.Position.Y)

		resized := width != box.Width || height != box.Height
		box.Width, box.Height = width, height
		if resized {
			le.relayoutChildren(box)
			box.Width, box.Height = width, height
		}
		placed = append(placed, box)
	}

	parent.ContentWidth, parent.ContentHeight = contentExtent(parent, placed)
	if parent.autoHeight {
		parent.Height = parent.ContentHeight
		clampBoxHeight(parent)
	}

	for _, box := range absolute {
		le.applyAbsolutePositioning(box)
	}
}

// flexContainerFor builds the FlexContainer for parent. The item slice is
// sized once here and never grows afterwards.
func (le *LayoutEngine) flexContainerFor(parent *Box, boxes []*Box) FlexContainer {
	style := parent.Style
	dir := flexDirection(style.GetFlexDirection())
	alignItems := alignFromItems(style.GetAlignItems())

	c := FlexContainer{
		ContentWidth: parent.Width,
		Direction:    dir,
		Wrap:         flexWrap(style.GetFlexWrap()),
		Justify:      justify(style.GetJustifyContent()),
		AlignItems:   alignItems,
		AlignContent: alignContentOf(style.GetAlignContent()),
		RowGap:       style.GetRowGap(),
		ColumnGap:    style.GetColumnGap(),
		Items:        make([]FlexItem, len(boxes)),
	}
	if !parent.autoHeight {
		c.ContentHeight = parent.Height
	}
	for i, box := range boxes {
		c.Items[i] = flexItemFor(box, dir, alignItems)
	}

	if parent.autoWidth {
		fit := maxOuterCross(&c)
		if dir.IsRow() {
			fit = hypotheticalMainSize(&c)
		}
		parent.Width = math.Min(parent.Width, fit)
		clampBoxWidth(parent)
		c.ContentWidth = parent.Width
	}
	if !dir.IsRow() && parent.autoHeight {
		c.ContentHeight = hypotheticalMainSize(&c)
		parent.Height = c.ContentHeight
	}
	return c
}

// flexItemFor turns a measured box into a FlexItem. Sizes are border-box
// sizes, so content-box min/max constraints get padding and border added.
func flexItemFor(box *Box, dir Direction, alignItems Align) FlexItem {
	style := box.Style
	pbW := box.Padding.Horizontal() + box.Border.Horizontal()
	pbH := box.Padding.Vertical() + box.Border.Vertical()

	cons := Constraints{
		MinWidth:  styleLength(style, "min-width") + pbW,
		MinHeight: styleLength(style, "min-height") + pbH,
		MaxWidth:  growLimit(styleLimit(style, "max-width"), pbW),
		MaxHeight: growLimit(styleLimit(style, "max-height"), pbH),
	}
	it := NewFlexItem(box.NaturalSize(), dir, cons)

	it.FlexGrow = style.GetFlexGrow()
	it.FlexShrink = style.GetFlexShrink()
	if basis := style.GetFlexBasis(); basis >= 0 {
		if dir.IsRow() {
			it.FlexBasis = basis + pbW
		} else {
			it.FlexBasis = basis + pbH
		}
	}

	auto := style.GetAutoMargins()
	it.Margin = Margin{
		Edges: Edges{
			Top:    box.Margin.Top,
			Right:  box.Margin.Right,
			Bottom: box.Margin.Bottom,
			Left:   box.Margin.Left,
		},
		AutoTop:    auto.Top,
		AutoRight:  auto.Right,
		AutoBottom: auto.Bottom,
		AutoLeft:   auto.Left,
	}

	crossProperty := "height"
	if !dir.IsRow() {
		crossProperty = "width"
	}
	_, definiteCross := style.GetLength(crossProperty)

	align := ResolveAlignSelf(alignFromSelf(style.GetAlignSelf()), alignItems)
	if align == AlignStretch && definiteCross {
		align = AlignStart
	}
	it.AlignSelf = align

	it.Order = style.GetOrder()
	if !definiteCross {
		it.AspectRatio = style.GetAspectRatio()
	}
	it.Visibility = visibility(style.GetVisibility())
	it.PositionType = positionType(style.GetPosition())
	return it
}

func growLimit(l Limit, by float64) Limit {
	if v, ok := l.Value(); ok {
		return Bounded(v + by)
	}
	return l
}

// hypotheticalMainSize is the main size a single unwrapped line would
// need: clamped bases plus margins and gaps.
func hypotheticalMainSize(c *FlexContainer) float64 {
	dir := c.Direction
	total := 0.0
	n := 0
	for i := range c.Items {
		it := &c.Items[i]
		if it.Excluded() || it.Visibility == VisibilityCollapse {
			continue
		}
		basis := it.naturalMain(dir)
		if it.FlexBasis >= 0 {
			basis = it.FlexBasis
		}
		s, e := it.mainMargins(dir)
		total += Clamp(basis, it.MinMain, it.MaxMain) + s + e
		n++
	}
	if n > 1 {
		total += float64(n-1) * c.MainGap()
	}
	return total
}

// maxOuterCross is the largest natural outer cross size among in-flow items.
func maxOuterCross(c *FlexContainer) float64 {
	dir := c.Direction
	cross := 0.0
	for i := range c.Items {
		it := &c.Items[i]
		if it.Excluded() {
			continue
		}
		s, e := it.crossMargins(dir)
		cross = math.Max(cross, Clamp(it.naturalCross(dir), it.MinCross, it.MaxCross)+s+e)
	}
	return cross
}

// The css accessors only return members of each keyword set; anything
// else reaching these conversions is a programming error.

func flexDirection(d css.FlexDirection) Direction {
	switch d {
	case css.FlexDirectionRow:
		return DirectionRow
	case css.FlexDirectionRowReverse:
		return DirectionRowReverse
	case css.FlexDirectionColumn:
		return DirectionColumn
	case css.FlexDirectionColumnReverse:
		return DirectionColumnReverse
	}
	panic(fmt.Sprintf("layout: unknown flex-direction %q", d))
}

func flexWrap(w css.FlexWrap) FlexWrap {
	switch w {
	case css.FlexWrapNowrap:
		return NoWrap
	case css.FlexWrapWrap:
		return Wrap
	case css.FlexWrapWrapReverse:
		return WrapReverse
	}
	panic(fmt.Sprintf("layout: unknown flex-wrap %q", w))
}

func justify(j css.JustifyContent) Justify {
	switch j {
	case css.JustifyContentFlexStart:
		return JustifyStart
	case css.JustifyContentFlexEnd:
		return JustifyEnd
	case css.JustifyContentCenter:
		return JustifyCenter
	case css.JustifyContentSpaceBetween:
		return JustifySpaceBetween
	case css.JustifyContentSpaceAround:
		return JustifySpaceAround
	case css.JustifyContentSpaceEvenly:
		return JustifySpaceEvenly
	}
	panic(fmt.Sprintf("layout: unknown justify-content %q", j))
}

func alignFromItems(a css.AlignItems) Align {
	switch a {
	case css.AlignItemsFlexStart:
		return AlignStart
	case css.AlignItemsFlexEnd:
		return AlignEnd
	case css.AlignItemsCenter:
		return AlignCenter
	case css.AlignItemsBaseline:
		return AlignBaseline
	case css.AlignItemsStretch:
		return AlignStretch
	}
	panic(fmt.Sprintf("layout: unknown align-items %q", a))
}

func alignFromSelf(a css.AlignSelf) Align {
	if a == css.AlignSelfAuto {
		return AlignAuto
	}
	return alignFromItems(css.AlignItems(a))
}

func alignContentOf(a css.AlignContent) AlignContent {
	switch a {
	case css.AlignContentStretch:
		return ContentStretch
	case css.AlignContentFlexStart:
		return ContentStart
	case css.AlignContentFlexEnd:
		return ContentEnd
	case css.AlignContentCenter:
		return ContentCenter
	case css.AlignContentSpaceBetween:
		return ContentSpaceBetween
	case css.AlignContentSpaceAround:
		return ContentSpaceAround
	case css.AlignContentSpaceEvenly:
		return ContentSpaceEvenly
	}
	panic(fmt.Sprintf("layout: unknown align-content %q", a))
}

func visibility(v css.Visibility) Visibility {
	switch v {
	case css.VisibilityVisible:
		return VisibilityVisible
	case css.VisibilityHidden:
		return VisibilityHidden
	case css.VisibilityCollapse:
		return VisibilityCollapse
	}
	panic(fmt.Sprintf("layout: unknown visibility %q", v))
}

func positionType(p css.PositionType) PositionType {
	switch p {
	case css.PositionAbsolute, css.PositionFixed:
		return PositionAbsolute
	case css.PositionStatic, css.PositionRelative:
		return PositionStatic
	}
	panic(fmt.Sprintf("layout: unknown position %q", p))
}
