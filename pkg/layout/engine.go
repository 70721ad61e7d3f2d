package layout

func NewLayoutEngine(viewportWidth, viewportHeight float64) *LayoutEngine {
	le := &LayoutEngine{}
	le.viewport.width = viewportWidth
	le.viewport.height = viewportHeight
	le.measurer = le
	return le
}

// SetViewport changes the viewport used by the next Layout call.
// Viewport resizes are handled by laying the document out again.
func (le *LayoutEngine) SetViewport(width, height float64) {
	le.viewport.width = width
	le.viewport.height = height
}

// Viewport returns the current viewport size.
func (le *LayoutEngine) Viewport() Size {
	return Size{Width: le.viewport.width, Height: le.viewport.height}
}

// SetDistributionMode selects single-pass or iterative grow/shrink.
func (le *LayoutEngine) SetDistributionMode(mode DistributionMode) {
	le.resolver.Mode = mode
}

// SetMeasurer replaces the routine used to measure flex children.
// Passing nil restores the engine's own inline-block measurement.
func (le *LayoutEngine) SetMeasurer(m Measurer) {
	if m == nil {
		m = le
	}
	le.measurer = m
}
