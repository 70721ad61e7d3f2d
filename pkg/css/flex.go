package css

import (
	"strconv"
	"strings"
)

// Flexbox properties. Accessors return the initial value when the
// property is missing or not a recognized keyword, so callers only ever
// see members of each closed set.

type FlexDirection string

const (
	FlexDirectionRow           FlexDirection = "row"
	FlexDirectionRowReverse    FlexDirection = "row-reverse"
	FlexDirectionColumn        FlexDirection = "column"
	FlexDirectionColumnReverse FlexDirection = "column-reverse"
)

// GetFlexDirection returns flex-direction (default: row)
func (s *Style) GetFlexDirection() FlexDirection {
	if v, ok := s.Get("flex-direction"); ok {
		switch FlexDirection(v) {
		case FlexDirectionRowReverse, FlexDirectionColumn, FlexDirectionColumnReverse:
			return FlexDirection(v)
		}
	}
	return FlexDirectionRow
}

type FlexWrap string

const (
	FlexWrapNowrap      FlexWrap = "nowrap"
	FlexWrapWrap        FlexWrap = "wrap"
	FlexWrapWrapReverse FlexWrap = "wrap-reverse"
)

// GetFlexWrap returns flex-wrap (default: nowrap)
func (s *Style) GetFlexWrap() FlexWrap {
	if v, ok := s.Get("flex-wrap"); ok {
		switch FlexWrap(v) {
		case FlexWrapWrap, FlexWrapWrapReverse:
			return FlexWrap(v)
		}
	}
	return FlexWrapNowrap
}

type JustifyContent string

const (
	JustifyContentFlexStart    JustifyContent = "flex-start"
	JustifyContentFlexEnd      JustifyContent = "flex-end"
	JustifyContentCenter       JustifyContent = "center"
	JustifyContentSpaceBetween JustifyContent = "space-between"
	JustifyContentSpaceAround  JustifyContent = "space-around"
	JustifyContentSpaceEvenly  JustifyContent = "space-evenly"
)

// GetJustifyContent returns justify-content (default: flex-start).
// "start"/"end" are accepted as aliases.
func (s *Style) GetJustifyContent() JustifyContent {
	if v, ok := s.Get("justify-content"); ok {
		switch v {
		case "flex-end", "end":
			return JustifyContentFlexEnd
		case "center":
			return JustifyContentCenter
		case "space-between":
			return JustifyContentSpaceBetween
		case "space-around":
			return JustifyContentSpaceAround
		case "space-evenly":
			return JustifyContentSpaceEvenly
		}
	}
	return JustifyContentFlexStart
}

type AlignItems string

const (
	AlignItemsFlexStart AlignItems = "flex-start"
	AlignItemsFlexEnd   AlignItems = "flex-end"
	AlignItemsCenter    AlignItems = "center"
	AlignItemsBaseline  AlignItems = "baseline"
	AlignItemsStretch   AlignItems = "stretch"
)

// GetAlignItems returns align-items (default: stretch)
func (s *Style) GetAlignItems() AlignItems {
	if v, ok := s.Get("align-items"); ok {
		if a, ok := parseAlignKeyword(v); ok {
			return a
		}
	}
	return AlignItemsStretch
}

type AlignSelf string

const (
	AlignSelfAuto      AlignSelf = "auto"
	AlignSelfFlexStart AlignSelf = "flex-start"
	AlignSelfFlexEnd   AlignSelf = "flex-end"
	AlignSelfCenter    AlignSelf = "center"
	AlignSelfBaseline  AlignSelf = "baseline"
	AlignSelfStretch   AlignSelf = "stretch"
)

// GetAlignSelf returns align-self (default: auto)
func (s *Style) GetAlignSelf() AlignSelf {
	if v, ok := s.Get("align-self"); ok {
		if a, ok := parseAlignKeyword(v); ok {
			return AlignSelf(a)
		}
	}
	return AlignSelfAuto
}

func parseAlignKeyword(v string) (AlignItems, bool) {
	switch v {
	case "flex-start", "start":
		return AlignItemsFlexStart, true
	case "flex-end", "end":
		return AlignItemsFlexEnd, true
	case "center":
		return AlignItemsCenter, true
	case "baseline":
		return AlignItemsBaseline, true
	case "stretch":
		return AlignItemsStretch, true
	}
	return "", false
}

type AlignContent string

const (
	AlignContentStretch      AlignContent = "stretch"
	AlignContentFlexStart    AlignContent = "flex-start"
	AlignContentFlexEnd      AlignContent = "flex-end"
	AlignContentCenter       AlignContent = "center"
	AlignContentSpaceBetween AlignContent = "space-between"
	AlignContentSpaceAround  AlignContent = "space-around"
	AlignContentSpaceEvenly  AlignContent = "space-evenly"
)

// GetAlignContent returns align-content (default: stretch; "normal" behaves as stretch)
func (s *Style) GetAlignContent() AlignContent {
	if v, ok := s.Get("align-content"); ok {
		switch v {
		case "flex-start", "start":
			return AlignContentFlexStart
		case "flex-end", "end":
			return AlignContentFlexEnd
		case "center":
			return AlignContentCenter
		case "space-between":
			return AlignContentSpaceBetween
		case "space-around":
			return AlignContentSpaceAround
		case "space-evenly":
			return AlignContentSpaceEvenly
		}
	}
	return AlignContentStretch
}

// GetFlexGrow returns flex-grow (default: 0). Negative values are invalid and ignored.
func (s *Style) GetFlexGrow() float64 {
	if v, ok := s.GetNumber("flex-grow"); ok && v >= 0 {
		return v
	}
	return 0
}

// GetFlexShrink returns flex-shrink (default: 1)
func (s *Style) GetFlexShrink() float64 {
	if v, ok := s.GetNumber("flex-shrink"); ok && v >= 0 {
		return v
	}
	return 1
}

// GetFlexBasis returns flex-basis in px, or -1 for auto/content.
func (s *Style) GetFlexBasis() float64 {
	if v, ok := s.GetLength("flex-basis"); ok && v >= 0 {
		return v
	}
	return -1
}

// GetOrder returns the order property (default: 0)
func (s *Style) GetOrder() int {
	if v, ok := s.Get("order"); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return 0
}

// GetRowGap returns row-gap in px (default: 0)
func (s *Style) GetRowGap() float64 {
	if v, ok := s.GetLength("row-gap"); ok && v > 0 {
		return v
	}
	return 0
}

// GetColumnGap returns column-gap in px (default: 0)
func (s *Style) GetColumnGap() float64 {
	if v, ok := s.GetLength("column-gap"); ok && v > 0 {
		return v
	}
	return 0
}

// GetAspectRatio returns width/height from "16/9", "1.5" or "16 / 9".
// Zero means no ratio.
func (s *Style) GetAspectRatio() float64 {
	v, ok := s.Get("aspect-ratio")
	if !ok || v == "auto" {
		return 0
	}
	num, den := v, "1"
	if i := strings.Index(v, "/"); i >= 0 {
		num, den = v[:i], v[i+1:]
	}
	n, err1 := strconv.ParseFloat(strings.TrimSpace(num), 64)
	d, err2 := strconv.ParseFloat(strings.TrimSpace(den), 64)
	if err1 != nil || err2 != nil || n <= 0 || d <= 0 {
		return 0
	}
	return n / d
}

// GetMaxLength returns a max-width/max-height value; "none" reports false.
func (s *Style) GetMaxLength(property string) (float64, bool) {
	v, ok := s.GetLength(property)
	if !ok || v < 0 {
		return 0, false
	}
	return v, true
}

// expandGap expands "gap: <row> [<column>]".
func expandGap(style *Style, value string) {
	parts := strings.Fields(value)
	switch len(parts) {
	case 1:
		style.Set("row-gap", parts[0])
		style.Set("column-gap", parts[0])
	case 2:
		style.Set("row-gap", parts[0])
		style.Set("column-gap", parts[1])
	}
}

// expandFlex expands the flex shorthand:
//
//	flex: none        -> 0 0 auto
//	flex: auto        -> 1 1 auto
//	flex: <n>         -> n 1 0
//	flex: <n> <m>     -> n m 0
//	flex: <n> <basis> -> n 1 basis
//	flex: <n> <m> <basis>
func expandFlex(style *Style, value string) {
	parts := strings.Fields(value)
	grow, shrink, basis := "0", "1", "auto"

	switch {
	case len(parts) == 1 && parts[0] == "none":
		shrink = "0"
	case len(parts) == 1 && parts[0] == "auto":
		grow = "1"
	case len(parts) == 1 && isNumber(parts[0]):
		grow, basis = parts[0], "0"
	case len(parts) == 1:
		basis = parts[0]
	case len(parts) == 2 && isNumber(parts[1]):
		grow, shrink, basis = parts[0], parts[1], "0"
	case len(parts) == 2:
		grow, basis = parts[0], parts[1]
	case len(parts) == 3:
		grow, shrink, basis = parts[0], parts[1], parts[2]
	default:
		return
	}

	style.Set("flex-grow", grow)
	style.Set("flex-shrink", shrink)
	style.Set("flex-basis", basis)
}

// expandFlexFlow expands "flex-flow: <direction> || <wrap>".
func expandFlexFlow(style *Style, value string) {
	for _, part := range strings.Fields(value) {
		switch part {
		case "row", "row-reverse", "column", "column-reverse":
			style.Set("flex-direction", part)
		case "nowrap", "wrap", "wrap-reverse":
			style.Set("flex-wrap", part)
		}
	}
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
