package layout

import "sort"

// StackingContext groups the boxes painted together under one z-index.
// Positioned boxes with an explicit z-index start a new context; all
// other boxes paint in tree order inside the nearest enclosing one.
type StackingContext struct {
	Box    *Box // nil for the root context
	ZIndex int

	// Flow holds the boxes of this context that start no context of
	// their own, in tree order.
	Flow []*Box

	Negative []*StackingContext // z-index < 0, ascending
	Zero     []*StackingContext // z-index == 0, tree order
	Positive []*StackingContext // z-index > 0, ascending
}

// CreatesStackingContext reports whether box starts a stacking context.
func CreatesStackingContext(box *Box) bool {
	if box == nil || box.Style == nil || !box.IsPositioned() {
		return false
	}
	z, ok := box.Style.Get("z-index")
	return ok && z != "auto" && z != ""
}

// BuildStackingContextTree sorts the box trees under roots into
// stacking contexts.
func BuildStackingContextTree(roots []*Box) *StackingContext {
	root := &StackingContext{}
	for _, box := range roots {
		collectContexts(box, root)
	}
	root.sort()
	return root
}

func collectContexts(box *Box, ctx *StackingContext) {
	if box == nil {
		return
	}
	if CreatesStackingContext(box) {
		child := &StackingContext{Box: box, ZIndex: box.ZIndex}
		switch {
		case child.ZIndex < 0:
			ctx.Negative = append(ctx.Negative, child)
		case child.ZIndex > 0:
			ctx.Positive = append(ctx.Positive, child)
		default:
			ctx.Zero = append(ctx.Zero, child)
		}
		for _, c := range box.Children {
			collectContexts(c, child)
		}
		child.sort()
		return
	}
	ctx.Flow = append(ctx.Flow, box)
	for _, c := range box.Children {
		collectContexts(c, ctx)
	}
}

func (sc *StackingContext) sort() {
	byZ := func(list []*StackingContext) {
		sort.SliceStable(list, func(i, j int) bool { return list[i].ZIndex < list[j].ZIndex })
	}
	byZ(sc.Negative)
	byZ(sc.Positive)
}

// PaintOrder flattens the context into back-to-front paint order: the
// context's own box, negative children, flow boxes, then zero and
// positive children.
func (sc *StackingContext) PaintOrder() []*Box {
	var out []*Box
	sc.appendPaintOrder(&out)
	return out
}

func (sc *StackingContext) appendPaintOrder(out *[]*Box) {
	if sc.Box != nil {
		*out = append(*out, sc.Box)
	}
	for _, c := range sc.Negative {
		c.appendPaintOrder(out)
	}
	*out = append(*out, sc.Flow...)
	for _, c := range sc.Zero {
		c.appendPaintOrder(out)
	}
	for _, c := range sc.Positive {
		c.appendPaintOrder(out)
	}
}
