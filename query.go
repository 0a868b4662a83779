package ui

// This file contains the ancestor and descendant queries of the node tree.

// Up returns the closest ancestor with the given ux name, or nil.
func (n *Node) Up(ux string) *Node {
	name := Normalize(ux)
	for p := n.parent; p != nil; p = p.parent {
		if p.name == name {
			return p
		}
	}
	return nil
}

// Down searches the descendants breadth-first and returns every match found
// on the shallowest level holding at least one. Deeper levels are not
// searched once a level matched. It returns nil when nothing matches.
func (n *Node) Down(ux string) []*Node {
	name := Normalize(ux)
	level := n.children()
	for len(level) > 0 {
		var matches, next []*Node
		for _, c := range level {
			if c.name == name {
				matches = append(matches, c)
			}
			next = append(next, c.children()...)
		}
		if len(matches) > 0 {
			return matches
		}
		level = next
	}
	return nil
}

// children returns the items of every slot, slots taken in surface order.
func (n *Node) children() []*Node {
	var res []*Node
	for _, name := range n.slotOrder {
		res = append(res, n.slots[name].items.List...)
	}
	return res
}

// descendant finds the node with the given id in the subtree of n.
func (n *Node) descendant(id string) *Node {
	level := []*Node{n}
	for len(level) > 0 {
		var next []*Node
		for _, c := range level {
			if c.id == id {
				return c
			}
			next = append(next, c.children()...)
		}
		level = next
	}
	return nil
}
