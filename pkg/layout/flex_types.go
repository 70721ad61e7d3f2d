package layout

import "fmt"

// Direction is the flex-direction of a container.
type Direction uint8

const (
	DirectionRow Direction = iota
	DirectionRowReverse
	DirectionColumn
	DirectionColumnReverse
)

// IsRow reports whether the main axis is horizontal.
func (d Direction) IsRow() bool {
	switch d {
	case DirectionRow, DirectionRowReverse:
		return true
	case DirectionColumn, DirectionColumnReverse:
		return false
	}
	panic(fmt.Sprintf("layout: invalid Direction %d", d))
}

// IsReverse reports whether items are placed from the main-end edge.
func (d Direction) IsReverse() bool {
	switch d {
	case DirectionRowReverse, DirectionColumnReverse:
		return true
	case DirectionRow, DirectionColumn:
		return false
	}
	panic(fmt.Sprintf("layout: invalid Direction %d", d))
}

// FlexWrap controls whether the container is single- or multi-line,
// and the direction in which the lines are stacked.
type FlexWrap uint8

const (
	NoWrap FlexWrap = iota
	Wrap
	WrapReverse
)

// Justify distributes free space along the main axis (justify-content).
type Justify uint8

const (
	JustifyStart Justify = iota
	JustifyEnd
	JustifyCenter
	JustifySpaceBetween
	JustifySpaceAround
	JustifySpaceEvenly
)

// Align positions an item on the cross axis (align-items, align-self).
type Align uint8

const (
	AlignAuto Align = iota
	AlignStart
	AlignEnd
	AlignCenter
	AlignBaseline
	AlignStretch
)

// AlignContent distributes free cross space between lines of a multi-line
// container. It uses the justify formulas plus Stretch.
type AlignContent uint8

const (
	ContentStretch AlignContent = iota
	ContentStart
	ContentEnd
	ContentCenter
	ContentSpaceBetween
	ContentSpaceAround
	ContentSpaceEvenly
)

// Visibility of a flex item.
type Visibility uint8

const (
	VisibilityVisible Visibility = iota
	VisibilityHidden
	VisibilityCollapse
)

// PositionType of a flex item; absolute items are not part of the flow.
type PositionType uint8

const (
	PositionStatic PositionType = iota
	PositionAbsolute
)

// BasisAuto is the FlexBasis value meaning "use the natural main size".
const BasisAuto = -1

// FlexItem is the per-child input and output record of a flex pass.
type FlexItem struct {
	NaturalSize Size // from the measurement pass; never modified

	MainSize  float64
	CrossSize float64
	MinMain   float64
	MaxMain   Limit
	MinCross  float64
	MaxCross  Limit

	FlexBasis  float64 // BasisAuto or a length
	FlexGrow   float64
	FlexShrink float64

	Margin      Margin
	AlignSelf   Align // never AlignAuto once the item is in a container
	Order       int
	AspectRatio float64 // width / height; 0 means none

	Visibility   Visibility
	PositionType PositionType

	// Position is the output border-box origin relative to the
	// container's content box.
	Position Point

	hypothetical float64 // basis clamped to min/max
	violation    float64
	frozen       bool
}

// Excluded reports whether the item is kept out of every flex line.
func (it *FlexItem) Excluded() bool {
	return it.PositionType == PositionAbsolute || it.Visibility == VisibilityHidden
}

// Size maps the item's main/cross sizes back to width and height.
func (it *FlexItem) Size(dir Direction) Size {
	if dir.IsRow() {
		return Size{Width: it.MainSize, Height: it.CrossSize}
	}
	return Size{Width: it.CrossSize, Height: it.MainSize}
}

// mainMargins returns the margins before and after the item on the main axis.
func (it *FlexItem) mainMargins(dir Direction) (start, end float64) {
	if dir.IsRow() {
		return it.Margin.Left, it.Margin.Right
	}
	return it.Margin.Top, it.Margin.Bottom
}

func (it *FlexItem) mainAutoMargins(dir Direction) (start, end bool) {
	if dir.IsRow() {
		return it.Margin.AutoLeft, it.Margin.AutoRight
	}
	return it.Margin.AutoTop, it.Margin.AutoBottom
}

func (it *FlexItem) crossMargins(dir Direction) (start, end float64) {
	if dir.IsRow() {
		return it.Margin.Top, it.Margin.Bottom
	}
	return it.Margin.Left, it.Margin.Right
}

func (it *FlexItem) crossAutoMargins(dir Direction) (start, end bool) {
	if dir.IsRow() {
		return it.Margin.AutoTop, it.Margin.AutoBottom
	}
	return it.Margin.AutoLeft, it.Margin.AutoRight
}

// outerMain is the main size plus main-axis margins. A collapsed item
// is a strut with no main extent.
func (it *FlexItem) outerMain(dir Direction) float64 {
	if it.Visibility == VisibilityCollapse {
		return 0
	}
	s, e := it.mainMargins(dir)
	return it.MainSize + s + e
}

func (it *FlexItem) outerCross(dir Direction) float64 {
	s, e := it.crossMargins(dir)
	return it.CrossSize + s + e
}

func (it *FlexItem) setMainPos(dir Direction, v float64) {
	if dir.IsRow() {
		it.Position.X = v
	} else {
		it.Position.Y = v
	}
}

func (it *FlexItem) setCrossPos(dir Direction, v float64) {
	if dir.IsRow() {
		it.Position.Y = v
	} else {
		it.Position.X = v
	}
}

// setMainMargins writes resolved auto margins back into the item.
func (it *FlexItem) setMainMargins(dir Direction, start, end float64) {
	if dir.IsRow() {
		it.Margin.Left, it.Margin.Right = start, end
	} else {
		it.Margin.Top, it.Margin.Bottom = start, end
	}
}

func (it *FlexItem) setCrossMargins(dir Direction, start, end float64) {
	if dir.IsRow() {
		it.Margin.Top, it.Margin.Bottom = start, end
	} else {
		it.Margin.Left, it.Margin.Right = start, end
	}
}

// ResolveAlignSelf replaces AlignAuto with the container's align-items.
// It runs once, when the item is built.
func ResolveAlignSelf(self, alignItems Align) Align {
	if self == AlignAuto {
		if alignItems == AlignAuto {
			return AlignStretch
		}
		return alignItems
	}
	return self
}

// FlexLine is a run of items placed along the main axis. It refers to
// items by index into the container's item slice.
type FlexLine struct {
	Items     []int
	MainSize  float64 // outer item sizes plus gaps
	CrossSize float64 // tallest outer item, or the stretched line size
	CrossPos  float64 // offset of the line from the cross-start edge
}

// FlexContainer holds the container geometry, flow properties and items
// of one flex layout pass.
type FlexContainer struct {
	ContentWidth  float64
	ContentHeight float64

	Direction    Direction
	Wrap         FlexWrap
	Justify      Justify
	AlignItems   Align
	AlignContent AlignContent
	RowGap       float64
	ColumnGap    float64

	// Items is allocated once per pass; lines index into it, so it must
	// not be appended to while lines exist.
	Items []FlexItem
}

// MainSize is the content size along the main axis, floored at zero.
func (c *FlexContainer) MainSize() float64 {
	if c.Direction.IsRow() {
		return nonNegative(c.ContentWidth)
	}
	return nonNegative(c.ContentHeight)
}

// CrossSize is the content size along the cross axis, floored at zero.
func (c *FlexContainer) CrossSize() float64 {
	if c.Direction.IsRow() {
		return nonNegative(c.ContentHeight)
	}
	return nonNegative(c.ContentWidth)
}

// MainGap is the gap between adjacent items on a line.
func (c *FlexContainer) MainGap() float64 {
	if c.Direction.IsRow() {
		return nonNegative(c.ColumnGap)
	}
	return nonNegative(c.RowGap)
}

// CrossGap is the gap between adjacent lines.
func (c *FlexContainer) CrossGap() float64 {
	if c.Direction.IsRow() {
		return nonNegative(c.RowGap)
	}
	return nonNegative(c.ColumnGap)
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// Constraints are an item's min/max sizes in physical terms.
type Constraints struct {
	MinWidth  float64
	MinHeight float64
	MaxWidth  Limit
	MaxHeight Limit
}

// NewFlexItem builds an in-flow item for a container flowing in dir,
// with the initial flex factors (grow 0, shrink 1, basis auto).
func NewFlexItem(natural Size, dir Direction, cons Constraints) FlexItem {
	it := FlexItem{
		NaturalSize: natural,
		FlexBasis:   BasisAuto,
		FlexShrink:  1,
	}
	if dir.IsRow() {
		it.MainSize, it.CrossSize = natural.Width, natural.Height
		it.MinMain, it.MaxMain = cons.MinWidth, cons.MaxWidth
		it.MinCross, it.MaxCross = cons.MinHeight, cons.MaxHeight
	} else {
		it.MainSize, it.CrossSize = natural.Height, natural.Width
		it.MinMain, it.MaxMain = cons.MinHeight, cons.MaxHeight
		it.MinCross, it.MaxCross = cons.MinWidth, cons.MaxWidth
	}
	return it
}

func (it *FlexItem) naturalMain(dir Direction) float64 {
	if dir.IsRow() {
		return it.NaturalSize.Width
	}
	return it.NaturalSize.Height
}

func (it *FlexItem) naturalCross(dir Direction) float64 {
	if dir.IsRow() {
		return it.NaturalSize.Height
	}
	return it.NaturalSize.Width
}
