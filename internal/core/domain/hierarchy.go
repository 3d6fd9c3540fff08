package domain

// LinkHierarchy derives parent/child links purely from identifiers.
//
// Every full identifier (ending in "/") can be a parent. A node's candidate
// parent is its identifier cut after the separator preceding its final
// segment; if no node has that identifier the node stays a root. Children are
// appended in collection order. Existing links are cleared first, so calling
// it twice yields the same tree.
func LinkHierarchy(c *Collection) error {
	if err := UnlinkHierarchy(c); err != nil {
		return err
	}

	parents := make(map[Identifier]*Node)
	for _, n := range c.nodes {
		if n.identifier.IsFull() {
			if _, exists := parents[n.identifier]; !exists {
				parents[n.identifier] = n
			}
		}
	}

	for _, n := range c.nodes {
		candidate, ok := n.identifier.ParentCandidate()
		if !ok {
			continue
		}
		parent, ok := parents[candidate]
		if !ok || parent == n {
			continue
		}
		n.parent = parent.identifier
		parent.children = append(parent.children, n.identifier)
	}
	return nil
}

// UnlinkHierarchy clears every parent/child link in the collection.
func UnlinkHierarchy(c *Collection) error {
	if c.frozen {
		return ErrFrozen
	}
	for _, n := range c.nodes {
		n.clearLinks()
	}
	return nil
}
