package layout

import (
	"errors"

	"flexlay/pkg/css"
	"flexlay/pkg/html"
)

// ErrNotElement is returned when a measurement is asked for a node that
// cannot produce a box.
var ErrNotElement = errors.New("layout: node cannot produce a box")

// Box is a laid-out element. Coordinates are page coordinates of the
// border-box origin; Width and Height are the content size.
type Box struct {
	Node     *html.Node
	Style    *css.Style
	X        float64
	Y        float64
	Width    float64 // Content width
	Height   float64 // Content height
	Margin   css.BoxEdge
	Padding  css.BoxEdge
	Border   css.BoxEdge
	Children []*Box
	Parent   *Box
	Position css.PositionType
	ZIndex   int
	Hidden   bool // visibility: hidden; occupies no flex slot and is not painted

	// ContentWidth/ContentHeight are the extent of the laid-out children,
	// measured from the content-box origin.
	ContentWidth  float64
	ContentHeight float64

	autoWidth  bool // width is shrink-to-fit
	autoHeight bool // height comes from content
}

// ContentX is the page x of the content-box origin.
func (b *Box) ContentX() float64 { return b.X + b.Border.Left + b.Padding.Left }

// ContentY is the page y of the content-box origin.
func (b *Box) ContentY() float64 { return b.Y + b.Border.Top + b.Padding.Top }

// BorderBoxWidth is the content width plus padding and border.
func (b *Box) BorderBoxWidth() float64 {
	return b.Width + b.Padding.Horizontal() + b.Border.Horizontal()
}

// BorderBoxHeight is the content height plus padding and border.
func (b *Box) BorderBoxHeight() float64 {
	return b.Height + b.Padding.Vertical() + b.Border.Vertical()
}

// MarginRect is the margin box in page coordinates.
func (b *Box) MarginRect() Rect {
	return Rect{
		X:      b.X - b.Margin.Left,
		Y:      b.Y - b.Margin.Top,
		Width:  b.BorderBoxWidth() + b.Margin.Horizontal(),
		Height: b.BorderBoxHeight() + b.Margin.Vertical(),
	}
}

// BorderRect is the border box in page coordinates.
func (b *Box) BorderRect() Rect {
	return Rect{X: b.X, Y: b.Y, Width: b.BorderBoxWidth(), Height: b.BorderBoxHeight()}
}

// IsFlexContainer reports whether the box lays out its children as flex items.
func (b *Box) IsFlexContainer() bool {
	return b.Style != nil && b.Style.IsFlexContainer()
}

// Measurer lays out a node as an inline-block to learn its natural size.
// The returned box has its subtree laid out and sits at the parent's
// content origin; the flex pass moves it afterwards.
type Measurer interface {
	MeasureInlineBlock(node *html.Node, style *css.Style, availableWidth float64, parent *Box) (*Box, error)
}

type LayoutEngine struct {
	viewport struct {
		width  float64
		height float64
	}
	resolver Resolver
	measurer Measurer
}
