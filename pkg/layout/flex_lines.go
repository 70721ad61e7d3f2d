package layout

import "sort"

// fitEpsilon absorbs float drift when deciding whether an item still fits.
const fitEpsilon = 1e-6

// orderedIndices returns the indices of in-flow items sorted by their
// order property. Items with equal order keep document order.
func orderedIndices(items []FlexItem) []int {
	indices := make([]int, 0, len(items))
	for i := range items {
		if items[i].Excluded() {
			continue
		}
		indices = append(indices, i)
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return items[indices[a]].Order < items[indices[b]].Order
	})
	return indices
}

// BreakLines groups the in-flow items into flex lines. Item sizes are
// read from MainSize plus main-axis margins, so basis resolution must
// already have run.
//
// An item larger than mainSize still gets a line of its own. With
// wrapping enabled and mainSize <= 0 every item gets its own line and
// gaps are ignored.
func BreakLines(items []FlexItem, dir Direction, mainSize float64, wrap FlexWrap, mainGap float64) []FlexLine {
	order := orderedIndices(items)
	if len(order) == 0 {
		return nil
	}

	lines := make([]FlexLine, 0, 1)
	degenerate := wrap != NoWrap && mainSize <= 0

	current := FlexLine{}
	remaining := mainSize
	for _, idx := range order {
		size := items[idx].outerMain(dir)

		if degenerate {
			lines = append(lines, newLine([]int{idx}, size))
			continue
		}

		need := size
		if len(current.Items) > 0 {
			need += mainGap
		}
		if wrap == NoWrap || len(current.Items) == 0 || remaining+fitEpsilon >= need {
			current.Items = append(current.Items, idx)
			current.MainSize += need
			remaining -= need
			continue
		}

		lines = append(lines, current)
		current = newLine([]int{idx}, size)
		remaining = mainSize - size
	}
	if len(current.Items) > 0 {
		lines = append(lines, current)
	}

	for i := range lines {
		lines[i].CrossSize = lineCrossSize(items, lines[i].Items, dir)
	}
	return lines
}

func newLine(indices []int, mainSize float64) FlexLine {
	return FlexLine{Items: indices, MainSize: mainSize}
}

// lineCrossSize is the largest outer cross size among the line's items.
func lineCrossSize(items []FlexItem, indices []int, dir Direction) float64 {
	cross := 0.0
	for _, idx := range indices {
		if c := items[idx].outerCross(dir); c > cross {
			cross = c
		}
	}
	return cross
}

// lineMainSize sums outer main sizes and the gaps between them.
func lineMainSize(items []FlexItem, indices []int, dir Direction, mainGap float64) float64 {
	total := 0.0
	for i, idx := range indices {
		if i > 0 {
			total += mainGap
		}
		total += items[idx].outerMain(dir)
	}
	return total
}
