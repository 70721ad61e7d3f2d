package layout

import (
	"math"

	"flexlay/pkg/css"
	"flexlay/pkg/html"
)

// layoutBlockChildren stacks the element children of parent vertically
// in its content box. Margins do not collapse. When the parent's width is
// shrink-to-fit, children are measured as inline-blocks and the parent
// takes the widest of them.
func (le *LayoutEngine) layoutBlockChildren(parent *Box, children []*html.Node) {
	x := parent.ContentX()
	y := parent.ContentY()
	var absolute []*Box

	for _, node := range children {
		style := le.styleOf(node)
		if style.GetDisplay() == css.DisplayNone {
			continue
		}

		pos := style.GetPosition()
		shrink := parent.autoWidth || style.GetDisplay() == css.DisplayInlineBlock || style.GetDisplay() == css.DisplayInlineFlex
		if pos == css.PositionAbsolute || pos == css.PositionFixed || shrink {
			box, err := le.measurer.MeasureInlineBlock(node, style, parent.Width, parent)
			if err != nil {
				Logger().Warn("layout: skipping child", "node", getNodeName(node), "err", err)
				continue
			}
			parent.Children = append(parent.Children, box)
			if pos == css.PositionAbsolute || pos == css.PositionFixed {
				absolute = append(absolute, box)
				continue
			}
			le.moveBox(box, x+box.Margin.Left, y+box.Margin.Top)
			y = box.Y + box.BorderBoxHeight() + box.Margin.Bottom
			continue
		}

		box := le.layoutNode(node, x, y, parent.Width, parent)
		if box == nil {
			continue
		}
		parent.Children = append(parent.Children, box)
		y = box.Y + box.BorderBoxHeight() + box.Margin.Bottom
	}

	updateContentExtent(parent)
	if parent.autoWidth {
		parent.Width = Clamp(parent.ContentWidth, 0, Bounded(math.Max(parent.Width, 0)))
		clampBoxWidth(parent)
	}
	if parent.autoHeight {
		parent.Height = parent.ContentHeight
	}

	for _, box := range absolute {
		le.applyAbsolutePositioning(box)
	}
}
