package js

import "github.com/dop251/goja"

func (e *elementAccessor) childAt(i int) goja.Value {
	if i < 0 || i >= len(e.node.Children) {
		return goja.Null()
	}
	return e.ctx.elementProxy(e.node.Children[i])
}

// sibling returns the sibling offset positions away, or null.
func (e *elementAccessor) sibling(offset int) goja.Value {
	parent := e.node.Parent
	if parent == nil {
		return goja.Null()
	}
	for i, c := range parent.Children {
		if c == e.node {
			j := i + offset
			if j < 0 || j >= len(parent.Children) {
				return goja.Null()
			}
			return e.ctx.elementProxy(parent.Children[j])
		}
	}
	return goja.Null()
}
