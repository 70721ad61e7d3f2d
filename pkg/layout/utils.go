package layout

import (
	"fmt"
	"math"

	"flexlay/pkg/css"
	"flexlay/pkg/html"
)

// getNodeName returns a debug string for a node
func getNodeName(node *html.Node) string {
	if node == nil {
		return "<nil>"
	}
	if id := node.ID(); id != "" {
		return fmt.Sprintf("<%s#%s>", node.TagName, id)
	}
	if node.TagName != "" {
		return "<" + node.TagName + ">"
	}
	return "<element>"
}

// moveBox places the border-box origin of box at (x, y), carrying its
// laid-out descendants along.
func (le *LayoutEngine) moveBox(box *Box, x, y float64) {
	dx, dy := x-box.X, y-box.Y
	box.X, box.Y = x, y
	if dx != 0 || dy != 0 {
		le.shiftChildren(box, dx, dy)
	}
}

func (le *LayoutEngine) shiftChildren(box *Box, dx, dy float64) {
	for _, child := range box.Children {
		child.X += dx
		child.Y += dy
		le.shiftChildren(child, dx, dy)
	}
}

// updateContentExtent sets ContentWidth/ContentHeight of parent to the
// far edges of its in-flow children's margin boxes, measured from the
// content-box origin.
func updateContentExtent(parent *Box) {
	parent.ContentWidth, parent.ContentHeight = contentExtent(parent, parent.Children)
}

func contentExtent(parent *Box, boxes []*Box) (width, height float64) {
	originX, originY := parent.ContentX(), parent.ContentY()
	for _, child := range boxes {
		if !inFlow(child) {
			continue
		}
		r := child.MarginRect()
		width = math.Max(width, r.Right()-originX)
		height = math.Max(height, r.Bottom()-originY)
	}
	return width, height
}

// inFlow reports whether a box takes part in its parent's flow.
func inFlow(b *Box) bool {
	return b.Position != css.PositionAbsolute && b.Position != css.PositionFixed
}
