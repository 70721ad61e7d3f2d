package css

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Style is a computed style: property name to resolved value.
// Values are already absolute; lengths are px.
type Style struct {
	Properties map[string]string
}

func NewStyle() *Style {
	return &Style{Properties: make(map[string]string)}
}

func (s *Style) Get(property string) (string, bool) {
	val, ok := s.Properties[property]
	return val, ok
}

func (s *Style) Set(property, value string) {
	s.Properties[property] = value
}

// Clone returns an independent copy of the style.
func (s *Style) Clone() *Style {
	c := NewStyle()
	for k, v := range s.Properties {
		c.Properties[k] = v
	}
	return c
}

// String serializes the style as a declaration list with sorted keys.
func (s *Style) String() string {
	keys := make([]string, 0, len(s.Properties))
	for k := range s.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(k)
		sb.WriteString(": ")
		sb.WriteString(s.Properties[k])
	}
	return sb.String()
}

// GetLength returns a px length. "auto" and unparsable values report false.
func (s *Style) GetLength(property string) (float64, bool) {
	val, ok := s.Get(property)
	if !ok {
		return 0, false
	}
	return ParseLength(val)
}

// GetNumber returns a unitless number (flex-grow, order, ...).
func (s *Style) GetNumber(property string) (float64, bool) {
	val, ok := s.Get(property)
	if !ok {
		return 0, false
	}
	num, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil {
		return 0, false
	}
	return num, true
}

// IsAuto reports whether the property is explicitly "auto".
func (s *Style) IsAuto(property string) bool {
	val, ok := s.Get(property)
	return ok && strings.TrimSpace(val) == "auto"
}

// ParseLength parses a length value (e.g., "100px" or "100")
func ParseLength(val string) (float64, bool) {
	val = strings.TrimSpace(val)
	val = strings.TrimSuffix(val, "px")
	num, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false
	}
	return num, true
}

// BoxEdge represents the four sides of a box (top, right, bottom, left)
type BoxEdge struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// Horizontal is Left + Right.
func (e BoxEdge) Horizontal() float64 { return e.Left + e.Right }

// Vertical is Top + Bottom.
func (e BoxEdge) Vertical() float64 { return e.Top + e.Bottom }

// GetMargin returns the margin values for all four sides. Auto sides are 0.
func (s *Style) GetMargin() BoxEdge {
	return BoxEdge{
		Top:    s.getLengthOrZero("margin-top"),
		Right:  s.getLengthOrZero("margin-right"),
		Bottom: s.getLengthOrZero("margin-bottom"),
		Left:   s.getLengthOrZero("margin-left"),
	}
}

// AutoMargins reports which margin sides are "auto".
type AutoMargins struct {
	Top    bool
	Right  bool
	Bottom bool
	Left   bool
}

// GetAutoMargins returns the auto flags of the four margin sides.
func (s *Style) GetAutoMargins() AutoMargins {
	return AutoMargins{
		Top:    s.IsAuto("margin-top"),
		Right:  s.IsAuto("margin-right"),
		Bottom: s.IsAuto("margin-bottom"),
		Left:   s.IsAuto("margin-left"),
	}
}

// GetPadding returns the padding values for all four sides
func (s *Style) GetPadding() BoxEdge {
	return BoxEdge{
		Top:    s.getLengthOrZero("padding-top"),
		Right:  s.getLengthOrZero("padding-right"),
		Bottom: s.getLengthOrZero("padding-bottom"),
		Left:   s.getLengthOrZero("padding-left"),
	}
}

// GetBorderWidth returns the border width for all four sides
func (s *Style) GetBorderWidth() BoxEdge {
	return BoxEdge{
		Top:    s.getLengthOrZero("border-top-width"),
		Right:  s.getLengthOrZero("border-right-width"),
		Bottom: s.getLengthOrZero("border-bottom-width"),
		Left:   s.getLengthOrZero("border-left-width"),
	}
}

// getLengthOrZero returns the length value or 0 if not found
func (s *Style) getLengthOrZero(property string) float64 {
	val, ok := s.GetLength(property)
	if !ok {
		return 0
	}
	return val
}

// Position type constants
type PositionType string

const (
	PositionStatic   PositionType = "static"
	PositionRelative PositionType = "relative"
	PositionAbsolute PositionType = "absolute"
	PositionFixed    PositionType = "fixed"
)

// GetPosition returns the position type (default: static)
func (s *Style) GetPosition() PositionType {
	if pos, ok := s.Get("position"); ok {
		switch pos {
		case "relative":
			return PositionRelative
		case "absolute":
			return PositionAbsolute
		case "fixed":
			return PositionFixed
		}
	}
	return PositionStatic
}

// PositionOffset holds top/right/bottom/left for positioned elements.
type PositionOffset struct {
	Top       float64
	Right     float64
	Bottom    float64
	Left      float64
	HasTop    bool
	HasRight  bool
	HasBottom bool
	HasLeft   bool
}

// GetPositionOffset returns positioning offset values
func (s *Style) GetPositionOffset() PositionOffset {
	offset := PositionOffset{}
	offset.Top, offset.HasTop = s.GetLength("top")
	offset.Right, offset.HasRight = s.GetLength("right")
	offset.Bottom, offset.HasBottom = s.GetLength("bottom")
	offset.Left, offset.HasLeft = s.GetLength("left")
	return offset
}

// ParseInlineStyle parses a declaration list such as a style attribute.
func ParseInlineStyle(styleAttr string) *Style {
	style := NewStyle()
	ApplyDeclarations(style, styleAttr)
	return style
}

// ApplyDeclarations parses declarations into style, overriding existing
// values. Malformed declarations are skipped.
func ApplyDeclarations(style *Style, declarations string) {
	for _, decl := range strings.Split(declarations, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		parts := strings.SplitN(decl, ":", 2)
		if len(parts) != 2 {
			continue
		}
		property := strings.TrimSpace(strings.ToLower(parts[0]))
		value := strings.TrimSpace(parts[1])
		if property == "" || value == "" {
			continue
		}
		expandShorthand(style, property, value)
	}
}

// expandShorthand expands shorthand CSS properties into individual properties
func expandShorthand(style *Style, property, value string) {
	switch property {
	case "margin":
		expandBoxProperty(style, "margin", "", value)
	case "padding":
		expandBoxProperty(style, "padding", "", value)
	case "border-width":
		expandBoxProperty(style, "border", "-width", value)
	case "border":
		expandBorderProperty(style, value)
	case "gap":
		expandGap(style, value)
	case "flex":
		expandFlex(style, value)
	case "flex-flow":
		expandFlexFlow(style, value)
	default:
		style.Set(property, value)
	}
}

// expandBoxProperty expands a four-sided shorthand into prefix-SIDE+suffix
// properties. Supports: "10px" (all), "10px 20px" (vertical horizontal),
//
//	"10px 20px 30px" (top h bottom), "10px 20px 30px 40px" (t r b l)
func expandBoxProperty(style *Style, prefix, suffix, value string) {
	parts := strings.Fields(value)
	var top, right, bottom, left string
	switch len(parts) {
	case 1:
		top, right, bottom, left = parts[0], parts[0], parts[0], parts[0]
	case 2:
		top, right, bottom, left = parts[0], parts[1], parts[0], parts[1]
	case 3:
		top, right, bottom, left = parts[0], parts[1], parts[2], parts[1]
	case 4:
		top, right, bottom, left = parts[0], parts[1], parts[2], parts[3]
	default:
		return
	}
	style.Set(prefix+"-top"+suffix, top)
	style.Set(prefix+"-right"+suffix, right)
	style.Set(prefix+"-bottom"+suffix, bottom)
	style.Set(prefix+"-left"+suffix, left)
}

// expandBorderProperty expands border shorthand
// Format: "1px solid black" or "2px dotted #FF0000"
func expandBorderProperty(style *Style, value string) {
	for _, part := range strings.Fields(value) {
		if _, ok := ParseLength(part); ok {
			style.Set("border-width", part)
			style.Set("border-top-width", part)
			style.Set("border-right-width", part)
			style.Set("border-bottom-width", part)
			style.Set("border-left-width", part)
		} else if part == "solid" || part == "dotted" || part == "dashed" || part == "double" || part == "none" {
			style.Set("border-style", part)
		} else {
			style.Set("border-color", part)
		}
	}
}

// Color is an RGBA color; A is in [0,1].
type Color struct {
	R, G, B uint8
	A       float64
}

var namedColors = map[string]Color{
	"red":     {255, 0, 0, 1},
	"green":   {0, 128, 0, 1},
	"blue":    {0, 0, 255, 1},
	"yellow":  {255, 255, 0, 1},
	"cyan":    {0, 255, 255, 1},
	"magenta": {255, 0, 255, 1},
	"white":   {255, 255, 255, 1},
	"black":   {0, 0, 0, 1},
	"gray":    {128, 128, 128, 1},
	"orange":  {255, 165, 0, 1},
	"purple":  {128, 0, 128, 1},
	"pink":    {255, 192, 203, 1},
	"brown":   {165, 42, 42, 1},
	"lime":    {0, 255, 0, 1},
	"navy":    {0, 0, 128, 1},
	"teal":    {0, 128, 128, 1},
	"silver":  {192, 192, 192, 1},

	"transparent": {0, 0, 0, 0},
}

// ParseColor parses a named color or a #rgb / #rrggbb hex color.
func ParseColor(colorStr string) (Color, bool) {
	colorStr = strings.ToLower(strings.TrimSpace(colorStr))
	if strings.HasPrefix(colorStr, "#") {
		return parseHexColor(colorStr[1:])
	}
	color, ok := namedColors[colorStr]
	return color, ok
}

func parseHexColor(hex string) (Color, bool) {
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, false
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 1}, true
}

// GetBackgroundColor returns the background color, if any.
func (s *Style) GetBackgroundColor() (Color, bool) {
	val, ok := s.Get("background-color")
	if !ok {
		val, ok = s.Get("background")
	}
	if !ok {
		return Color{}, false
	}
	return ParseColor(val)
}

// GetBorderColor returns the border color (default: black)
func (s *Style) GetBorderColor() Color {
	if val, ok := s.Get("border-color"); ok {
		if c, ok := ParseColor(val); ok {
			return c
		}
	}
	return Color{0, 0, 0, 1}
}

// DisplayType represents the display property value
type DisplayType string

const (
	DisplayBlock       DisplayType = "block"
	DisplayInline      DisplayType = "inline"
	DisplayInlineBlock DisplayType = "inline-block"
	DisplayFlex        DisplayType = "flex"
	DisplayInlineFlex  DisplayType = "inline-flex"
	DisplayNone        DisplayType = "none"
)

// GetDisplay returns the display value (default: block)
func (s *Style) GetDisplay() DisplayType {
	if display, ok := s.Get("display"); ok {
		switch display {
		case "inline":
			return DisplayInline
		case "inline-block":
			return DisplayInlineBlock
		case "flex":
			return DisplayFlex
		case "inline-flex":
			return DisplayInlineFlex
		case "none":
			return DisplayNone
		}
	}
	return DisplayBlock
}

// IsFlexContainer reports whether the element lays out its children as flex items.
func (s *Style) IsFlexContainer() bool {
	d := s.GetDisplay()
	return d == DisplayFlex || d == DisplayInlineFlex
}

// Visibility represents the visibility property value
type Visibility string

const (
	VisibilityVisible  Visibility = "visible"
	VisibilityHidden   Visibility = "hidden"
	VisibilityCollapse Visibility = "collapse"
)

// GetVisibility returns the visibility value (default: visible)
func (s *Style) GetVisibility() Visibility {
	if v, ok := s.Get("visibility"); ok {
		switch v {
		case "hidden":
			return VisibilityHidden
		case "collapse":
			return VisibilityCollapse
		}
	}
	return VisibilityVisible
}

// GetZIndex returns the z-index value (default: 0)
func (s *Style) GetZIndex() int {
	if zindex, ok := s.Get("z-index"); ok {
		var z int
		if _, err := fmt.Sscanf(zindex, "%d", &z); err == nil {
			return z
		}
	}
	return 0
}
