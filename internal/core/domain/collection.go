package domain

// Collection is an insertion-ordered set of nodes of one kind, addressed by identifier.
// It owns its nodes. Uniqueness is not enforced by Add; call ValidateUnique
// once every data source has contributed.
type Collection struct {
	kind   NodeKind
	nodes  []*Node
	frozen bool
}

// NewCollection creates an empty collection of the given kind.
func NewCollection(kind NodeKind) *Collection {
	return &Collection{kind: kind}
}

// Kind returns the kind of node the collection holds.
func (c *Collection) Kind() NodeKind { return c.kind }

// Add appends a node.
func (c *Collection) Add(node *Node) error {
	if c.frozen {
		return ErrFrozen
	}
	c.nodes = append(c.nodes, node)
	return nil
}

// Contains reports whether any node has the given identifier.
func (c *Collection) Contains(id Identifier) bool {
	_, ok := c.Get(id)
	return ok
}

// Get returns the first node with the given identifier.
func (c *Collection) Get(id Identifier) (*Node, bool) {
	for _, n := range c.nodes {
		if n.identifier == id {
			return n, true
		}
	}
	return nil, false
}

// All returns the nodes in insertion order.
func (c *Collection) All() []*Node {
	out := make([]*Node, len(c.nodes))
	copy(out, c.nodes)
	return out
}

// Len returns the number of nodes.
func (c *Collection) Len() int { return len(c.nodes) }

// Parent returns the parent node of n, if linked.
func (c *Collection) Parent(n *Node) (*Node, bool) {
	id, ok := n.Parent()
	if !ok {
		return nil, false
	}
	return c.Get(id)
}

// Children returns the child nodes of n in link order.
func (c *Collection) Children(n *Node) []*Node {
	result := make([]*Node, 0, len(n.children))
	for _, id := range n.children {
		if child, ok := c.Get(id); ok {
			result = append(result, child)
		}
	}
	return result
}

// Roots returns the nodes without a parent, in insertion order.
func (c *Collection) Roots() []*Node {
	var roots []*Node
	for _, n := range c.nodes {
		if _, ok := n.Parent(); !ok {
			roots = append(roots, n)
		}
	}
	return roots
}

// ValidateUnique scans in insertion order and reports the first repeated identifier.
func (c *Collection) ValidateUnique() error {
	seen := make(map[Identifier]struct{}, len(c.nodes))
	for _, n := range c.nodes {
		if _, dup := seen[n.identifier]; dup {
			return &DuplicateIdentifierError{Identifier: n.identifier, Kind: c.kind}
		}
		seen[n.identifier] = struct{}{}
	}
	return nil
}

// Freeze makes the collection and every node in it immutable.
func (c *Collection) Freeze() {
	c.frozen = true
	for _, n := range c.nodes {
		n.frozen = true
	}
}

// Frozen reports whether the collection rejects mutation.
func (c *Collection) Frozen() bool { return c.frozen }
