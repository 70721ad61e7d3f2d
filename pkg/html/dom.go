package html

// Node is an element of the box-tree source document. Each element's
// style comes from its "style" attribute.
type Node struct {
	TagName    string
	Attributes map[string]string
	Children   []*Node
	Parent     *Node
}

type Document struct {
	Root    *Node
	Scripts []string // run against the document before layout
}

func NewDocument() *Document {
	return &Document{
		Root:    NewElement("document"),
		Scripts: make([]string, 0),
	}
}

// NewElement returns a detached element with no attributes.
func NewElement(tag string) *Node {
	return &Node{
		TagName:    tag,
		Attributes: make(map[string]string),
		Children:   make([]*Node, 0),
	}
}

func (n *Node) GetAttribute(name string) (string, bool) {
	if n.Attributes == nil {
		return "", false
	}
	val, ok := n.Attributes[name]
	return val, ok
}

func (n *Node) SetAttribute(name, value string) {
	if n.Attributes == nil {
		n.Attributes = make(map[string]string)
	}
	n.Attributes[name] = value
}

// ID returns the id attribute, or "" when unset.
func (n *Node) ID() string {
	id, _ := n.GetAttribute("id")
	return id
}

// AddChild adds a child node and sets up the parent relationship
func (n *Node) AddChild(child *Node) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = n
	n.Children = append(n.Children, child)
}

// RemoveChild removes the given child from this node's children list,
// clears its parent pointer, and returns the removed child.
// Returns nil if child is not found.
func (n *Node) RemoveChild(child *Node) *Node {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			return child
		}
	}
	return nil
}

// InsertBefore inserts newChild before refChild in this node's children.
// If refChild is nil or not a child, newChild is appended. Inserting a
// child before itself leaves the children unchanged.
func (n *Node) InsertBefore(newChild, refChild *Node) *Node {
	if newChild == refChild && newChild.Parent == n {
		return newChild
	}
	if newChild.Parent != nil {
		newChild.Parent.RemoveChild(newChild)
	}
	for i, c := range n.Children {
		if refChild != nil && c == refChild {
			n.Children = append(n.Children, nil)
			copy(n.Children[i+1:], n.Children[i:])
			n.Children[i] = newChild
			newChild.Parent = n
			return newChild
		}
	}
	n.AddChild(newChild)
	return newChild
}

// CloneNode returns a copy of the node. If deep is true, all descendants
// are cloned recursively. The clone has no parent.
func (n *Node) CloneNode(deep bool) *Node {
	clone := NewElement(n.TagName)
	for k, v := range n.Attributes {
		clone.Attributes[k] = v
	}
	if deep {
		for _, child := range n.Children {
			childClone := child.CloneNode(true)
			childClone.Parent = clone
			clone.Children = append(clone.Children, childClone)
		}
	}
	return clone
}

// Contains returns true if other is a descendant of n (or n itself).
func (n *Node) Contains(other *Node) bool {
	if n == other {
		return true
	}
	for _, child := range n.Children {
		if child.Contains(other) {
			return true
		}
	}
	return false
}

// GetElementByID walks the subtree and returns the first node with a matching id.
func (n *Node) GetElementByID(id string) *Node {
	if n.ID() == id {
		return n
	}
	for _, child := range n.Children {
		if found := child.GetElementByID(id); found != nil {
			return found
		}
	}
	return nil
}

// Walk calls fn for n and every descendant in document order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, child := range n.Children {
		child.Walk(fn)
	}
}
