package layout

import (
	"fmt"
	"math"
)

// DistributionMode selects how free space is shared among flexible items.
type DistributionMode uint8

const (
	// DistributeSinglePass hands out free space once, in proportion to
	// the raw grow/shrink factors, then clamps each item to its min/max.
	// Space lost or gained by clamping is not redistributed.
	DistributeSinglePass DistributionMode = iota

	// DistributeIterative freezes items that violate their min/max and
	// redistributes the remainder until no violations are left. Shrinking
	// is weighted by the item's hypothetical size.
	DistributeIterative
)

func (m DistributionMode) String() string {
	switch m {
	case DistributeSinglePass:
		return "single"
	case DistributeIterative:
		return "iterative"
	}
	panic(fmt.Sprintf("layout: unknown distribution mode %d", uint8(m)))
}

// violationEpsilon treats tiny clamping differences as no violation.
const violationEpsilon = 1e-9

// FlexResult is the outcome of resolving one container.
type FlexResult struct {
	Lines    []FlexLine
	UsedSize Size // extent covered by the lines, in physical terms
}

// Resolver runs the flex algorithm over a FlexContainer. The zero value
// uses single-pass distribution.
type Resolver struct {
	Mode DistributionMode
}

// Resolve sizes and positions every in-flow item of c. Excluded items are
// never read or written. A main size of zero is treated as indefinite:
// items keep their hypothetical sizes. Resolve allocates its own scratch lines, so a
// Resolver may be reused but c must not be shared between calls.
func (r *Resolver) Resolve(c *FlexContainer) FlexResult {
	dir := c.Direction
	mainSize := c.MainSize()
	mainGap, crossGap := c.MainGap(), c.CrossGap()
	if mainSize <= 0 {
		mainGap, crossGap = 0, 0
	}

	resolveBases(c)
	lines := BreakLines(c.Items, dir, mainSize, c.Wrap, mainGap)
	if len(lines) == 0 {
		return FlexResult{}
	}

	for i := range lines {
		line := &lines[i]
		if mainSize > 0 {
			r.distribute(c, line, mainSize, mainGap)
		}
		applyAspectRatio(c, line)
		line.MainSize = lineMainSize(c.Items, line.Items, dir, mainGap)
		line.CrossSize = lineCrossSize(c.Items, line.Items, dir)
		placeMain(c, line, mainSize, mainGap)
	}

	if c.Wrap == NoWrap && c.CrossSize() > 0 {
		lines[0].CrossSize = c.CrossSize()
	}

	stackLines(lines, crossGap, 0, 0)
	if c.Wrap != NoWrap {
		alignContent(c, lines, crossGap)
	}
	if c.Wrap == WrapReverse {
		reverseLines(c, lines, crossGap)
	}

	for i := range lines {
		AlignCross(c, &lines[i])
	}

	return FlexResult{Lines: lines, UsedSize: usedSize(c, lines)}
}

// resolveBases sets every in-flow item's main size to its flex basis
// (or natural main size) clamped by its min/max, and its cross size to
// the clamped natural cross size.
func resolveBases(c *FlexContainer) {
	dir := c.Direction
	for i := range c.Items {
		it := &c.Items[i]
		if it.Excluded() {
			continue
		}
		basis := it.naturalMain(dir)
		if it.FlexBasis >= 0 {
			basis = it.FlexBasis
		}
		if it.Visibility == VisibilityCollapse {
			basis = 0
		}
		it.MainSize = Clamp(basis, it.MinMain, it.MaxMain)
		it.CrossSize = Clamp(it.naturalCross(dir), it.MinCross, it.MaxCross)
		it.AlignSelf = ResolveAlignSelf(it.AlignSelf, c.AlignItems)
		it.hypothetical = it.MainSize
		it.violation = 0
		it.frozen = it.Visibility == VisibilityCollapse
	}
}

// distribute grows or shrinks the items of one line toward mainSize.
// Only one of grow or shrink applies to a line. Each loop iteration is a
// distribution pass; single-pass mode stops after the first.
func (r *Resolver) distribute(c *FlexContainer, line *FlexLine, mainSize, mainGap float64) {
	items := c.Items
	dir := c.Direction

	free := mainSize - lineMainSize(items, line.Items, dir, mainGap)
	if free == 0 {
		return
	}
	growing := free > 0

	for {
		var active []int
		sumFactors := 0.0
		for _, idx := range line.Items {
			it := &items[idx]
			if it.frozen {
				continue
			}
			f := r.factor(it, growing)
			if f <= 0 {
				it.frozen = true
				continue
			}
			active = append(active, idx)
			sumFactors += f
		}
		if len(active) == 0 {
			return
		}

		for _, idx := range active {
			items[idx].MainSize = items[idx].hypothetical
		}
		remaining := mainSize - lineMainSize(items, line.Items, dir, mainGap)
		if (growing && remaining <= 0) || (!growing && remaining >= 0) {
			return
		}

		totalViolation := 0.0
		for _, idx := range active {
			it := &items[idx]
			target := it.hypothetical + remaining*r.factor(it, growing)/sumFactors
			clamped := Clamp(target, it.MinMain, it.MaxMain)
			it.MainSize = clamped
			it.violation = clamped - target
			totalViolation += it.violation
		}

		if r.Mode == DistributeSinglePass {
			return
		}

		froze := 0
		for _, idx := range active {
			it := &items[idx]
			switch {
			case math.Abs(totalViolation) < violationEpsilon:
			case totalViolation > 0 && it.violation > violationEpsilon:
			case totalViolation < 0 && it.violation < -violationEpsilon:
			default:
				continue
			}
			it.frozen = true
			froze++
		}
		if froze == 0 || froze == len(active) {
			return
		}
	}
}

// factor is the share weight of an item in the current direction.
func (r *Resolver) factor(it *FlexItem, growing bool) float64 {
	if growing {
		return it.FlexGrow
	}
	if r.Mode == DistributeIterative {
		return it.FlexShrink * it.hypothetical
	}
	return it.FlexShrink
}

// applyAspectRatio derives the cross size of ratio-bound items from
// their flexed main size.
func applyAspectRatio(c *FlexContainer, line *FlexLine) {
	dir := c.Direction
	for _, idx := range line.Items {
		it := &c.Items[idx]
		if it.AspectRatio <= 0 {
			continue
		}
		cross := it.MainSize / it.AspectRatio
		if !dir.IsRow() {
			cross = it.MainSize * it.AspectRatio
		}
		it.CrossSize = Clamp(cross, it.MinCross, it.MaxCross)
	}
}

// placeMain positions the items of a line along the main axis. Auto
// margins absorb positive free space first; justify handles the rest.
// Reverse directions anchor the walk at the far edge. A non-positive
// main size packs the line against the main-start edge of the content
// box, mirrored within the line's own extent for reverse directions.
func placeMain(c *FlexContainer, line *FlexLine, mainSize, mainGap float64) {
	items := c.Items
	dir := c.Direction
	free := mainSize - line.MainSize
	anchor := mainSize
	if mainSize <= 0 {
		free, anchor = 0, line.MainSize
	}

	autoMargins := 0
	for _, idx := range line.Items {
		s, e := items[idx].mainAutoMargins(dir)
		autoMargins += boolCount(s) + boolCount(e)
	}
	if free > 0 && autoMargins > 0 {
		share := free / float64(autoMargins)
		for _, idx := range line.Items {
			it := &items[idx]
			s, e := it.mainMargins(dir)
			as, ae := it.mainAutoMargins(dir)
			if as {
				s = share
			}
			if ae {
				e = share
			}
			it.setMainMargins(dir, s, e)
		}
		free = 0
	}

	offset, spacing := c.Justify.distribution().space(free, len(line.Items))

	reverse := dir.IsReverse()
	cursor := offset
	for _, idx := range line.Items {
		it := &items[idx]
		lead, trail := it.mainMargins(dir)
		if reverse {
			lead, trail = trail, lead
		}
		size := it.MainSize
		if it.Visibility == VisibilityCollapse {
			lead, trail, size = 0, 0, 0
		}
		pos := cursor + lead
		if reverse {
			pos = anchor - pos - size
		}
		it.setMainPos(dir, pos)
		cursor += lead + size + trail + mainGap + spacing
	}
}

// AlignCross positions the items of a line on the cross axis. Stretched
// items take the line's cross size minus their cross margins, so running
// AlignCross again on the same line gives the same result.
func AlignCross(c *FlexContainer, line *FlexLine) {
	dir := c.Direction
	for _, idx := range line.Items {
		it := &c.Items[idx]
		cs, ce := it.crossMargins(dir)
		as, ae := it.crossAutoMargins(dir)
		free := line.CrossSize - it.outerCross(dir)

		if (as || ae) && free > 0 {
			switch {
			case as && ae:
				cs += free / 2
				ce += free / 2
			case as:
				cs += free
			default:
				ce += free
			}
			it.setCrossMargins(dir, cs, ce)
			it.setCrossPos(dir, line.CrossPos+cs)
			continue
		}

		switch ResolveAlignSelf(it.AlignSelf, c.AlignItems) {
		case AlignStart, AlignBaseline:
			it.setCrossPos(dir, line.CrossPos+cs)
		case AlignEnd:
			it.setCrossPos(dir, line.CrossPos+line.CrossSize-ce-it.CrossSize)
		case AlignCenter:
			it.setCrossPos(dir, line.CrossPos+cs+free/2)
		case AlignStretch:
			// Min/max cross constraints are not re-applied here.
			it.CrossSize = nonNegative(line.CrossSize - cs - ce)
			it.setCrossPos(dir, line.CrossPos+cs)
		default:
			panic(fmt.Sprintf("layout: invalid Align %d", it.AlignSelf))
		}
	}
}

// stackLines lays lines out one after another along the cross axis,
// starting at offset with gap+between between neighbours.
func stackLines(lines []FlexLine, gap, offset, between float64) {
	pos := offset
	for i := range lines {
		lines[i].CrossPos = pos
		pos += lines[i].CrossSize + gap + between
	}
}

// alignContent shares the container's free cross space among the lines
// of a multi-line container. It is a no-op when the cross size is not
// definite.
func alignContent(c *FlexContainer, lines []FlexLine, gap float64) {
	cross := c.CrossSize()
	if cross <= 0 {
		return
	}
	free := cross - stackedCross(lines, gap)

	if c.AlignContent == ContentStretch {
		if free > 0 {
			extra := free / float64(len(lines))
			for i := range lines {
				lines[i].CrossSize += extra
			}
			stackLines(lines, gap, 0, 0)
		}
		return
	}

	offset, between := c.AlignContent.distribution().space(free, len(lines))
	stackLines(lines, gap, offset, between)
}

// reverseLines mirrors line positions so the first line sits at the
// cross-end edge. Item order within each line is unchanged.
func reverseLines(c *FlexContainer, lines []FlexLine, gap float64) {
	extent := c.CrossSize()
	if extent <= 0 {
		extent = stackedCross(lines, gap)
	}
	for i := range lines {
		lines[i].CrossPos = extent - lines[i].CrossPos - lines[i].CrossSize
	}
}

func stackedCross(lines []FlexLine, gap float64) float64 {
	total := 0.0
	for i := range lines {
		if i > 0 {
			total += gap
		}
		total += lines[i].CrossSize
	}
	return total
}

// usedSize is the extent the lines cover, mapped to width and height.
func usedSize(c *FlexContainer, lines []FlexLine) Size {
	main, crossEnd := 0.0, 0.0
	for i := range lines {
		main = math.Max(main, lines[i].MainSize)
		crossEnd = math.Max(crossEnd, lines[i].CrossPos+lines[i].CrossSize)
	}
	if c.Direction.IsRow() {
		return Size{Width: main, Height: crossEnd}
	}
	return Size{Width: crossEnd, Height: main}
}

func boolCount(b bool) int {
	if b {
		return 1
	}
	return 0
}

// distribution is the shared space-distribution rule behind
// justify-content and align-content.
type distribution uint8

const (
	distStart distribution = iota
	distEnd
	distCenter
	distSpaceBetween
	distSpaceAround
	distSpaceEvenly
)

func (j Justify) distribution() distribution {
	switch j {
	case JustifyStart:
		return distStart
	case JustifyEnd:
		return distEnd
	case JustifyCenter:
		return distCenter
	case JustifySpaceBetween:
		return distSpaceBetween
	case JustifySpaceAround:
		return distSpaceAround
	case JustifySpaceEvenly:
		return distSpaceEvenly
	}
	panic(fmt.Sprintf("layout: invalid Justify %d", j))
}

// distribution maps align-content onto the justify rules. Stretch is
// handled by the caller and packs like Start when there is nothing to
// stretch into.
func (a AlignContent) distribution() distribution {
	switch a {
	case ContentStart, ContentStretch:
		return distStart
	case ContentEnd:
		return distEnd
	case ContentCenter:
		return distCenter
	case ContentSpaceBetween:
		return distSpaceBetween
	case ContentSpaceAround:
		return distSpaceAround
	case ContentSpaceEvenly:
		return distSpaceEvenly
	}
	panic(fmt.Sprintf("layout: invalid AlignContent %d", a))
}

// space returns the leading offset and the extra space between n
// neighbours for the given free space. Negative free space falls back to
// start (space-between) or center (space-around, space-evenly).
func (d distribution) space(free float64, n int) (offset, between float64) {
	if n <= 0 {
		return 0, 0
	}
	if free < 0 {
		switch d {
		case distSpaceBetween:
			d = distStart
		case distSpaceAround, distSpaceEvenly:
			d = distCenter
		}
	}
	switch d {
	case distStart:
		return 0, 0
	case distEnd:
		return free, 0
	case distCenter:
		return free / 2, 0
	case distSpaceBetween:
		if n > 1 {
			return 0, free / float64(n-1)
		}
		return 0, 0
	case distSpaceAround:
		between = free / float64(n)
		return between / 2, between
	case distSpaceEvenly:
		between = free / float64(n+1)
		return between, between
	}
	panic(fmt.Sprintf("layout: invalid distribution %d", d))
}
