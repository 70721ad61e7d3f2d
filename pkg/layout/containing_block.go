package layout

import "flexlay/pkg/css"

// FindContainingBlock returns the box an absolutely positioned box is
// placed against: the nearest positioned ancestor for absolute, nil (the
// viewport) for fixed, and the parent otherwise.
func (b *Box) FindContainingBlock() *Box {
	switch b.Position {
	case css.PositionAbsolute:
		return b.findNearestPositionedAncestor()
	case css.PositionFixed:
		return nil
	default:
		return b.Parent
	}
}

func (b *Box) findNearestPositionedAncestor() *Box {
	for current := b.Parent; current != nil; current = current.Parent {
		if current.IsPositioned() {
			return current
		}
	}
	return nil
}

// IsPositioned reports whether the box has a position other than static.
func (b *Box) IsPositioned() bool {
	return b.Position != css.PositionStatic
}
