package layout

// applyAbsolutePositioning places an absolutely positioned box against its
// containing block's padding edge. Without a positioned ancestor the
// viewport is the containing block.
//
// With both left and right set an auto width fills the space between
// them, and auto margins on both sides centre the box. The vertical axis
// works the same way with top and bottom.
func (le *LayoutEngine) applyAbsolutePositioning(box *Box) {
	cb := le.containingRect(box)
	offset := box.Style.GetPositionOffset()
	auto := box.Style.GetAutoMargins()
	_, explicitWidth := box.Style.GetLength("width")
	_, explicitHeight := box.Style.GetLength("height")

	resized := false
	if offset.HasLeft && offset.HasRight && !explicitWidth {
		w := nonNegative(cb.Width - offset.Left - offset.Right - box.Margin.Horizontal() -
			box.Padding.Horizontal() - box.Border.Horizontal())
		resized = resized || w != box.Width
		box.Width = w
		clampBoxWidth(box)
	}
	if offset.HasTop && offset.HasBottom && !explicitHeight {
		h := nonNegative(cb.Height - offset.Top - offset.Bottom - box.Margin.Vertical() -
			box.Padding.Vertical() - box.Border.Vertical())
		resized = resized || h != box.Height
		box.Height = h
		clampBoxHeight(box)
	}
	if resized {
		w, h := box.Width, box.Height
		le.relayoutChildren(box)
		box.Width, box.Height = w, h
	}

	var x, y float64
	switch {
	case offset.HasLeft && offset.HasRight && auto.Left && auto.Right:
		free := cb.Width - offset.Left - offset.Right - box.BorderBoxWidth()
		if free < 0 {
			free = 0
		}
		box.Margin.Left, box.Margin.Right = free/2, free/2
		x = cb.X + offset.Left + box.Margin.Left
	case offset.HasLeft:
		x = cb.X + offset.Left + box.Margin.Left
	case offset.HasRight:
		x = cb.Right() - offset.Right - box.Margin.Right - box.BorderBoxWidth()
	default:
		x = cb.X + box.Margin.Left
	}

	switch {
	case offset.HasTop && offset.HasBottom && auto.Top && auto.Bottom:
		free := cb.Height - offset.Top - offset.Bottom - box.BorderBoxHeight()
		if free < 0 {
			free = 0
		}
		box.Margin.Top, box.Margin.Bottom = free/2, free/2
		y = cb.Y + offset.Top + box.Margin.Top
	case offset.HasTop:
		y = cb.Y + offset.Top + box.Margin.Top
	case offset.HasBottom:
		y = cb.Bottom() - offset.Bottom - box.Margin.Bottom - box.BorderBoxHeight()
	default:
		y = cb.Y + box.Margin.Top
	}

	le.moveBox(box, x, y)
}

// containingRect is the padding rectangle of box's containing block, or
// the viewport.
func (le *LayoutEngine) containingRect(box *Box) Rect {
	cb := box.FindContainingBlock()
	if cb == nil {
		return Rect{Width: le.viewport.width, Height: le.viewport.height}
	}
	return Rect{
		X:      cb.X + cb.Border.Left,
		Y:      cb.Y + cb.Border.Top,
		Width:  cb.Width + cb.Padding.Horizontal(),
		Height: cb.Height + cb.Padding.Vertical(),
	}
}
