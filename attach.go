package ui

import (
	"fmt"

	"go.uber.org/zap"
)

// AttachTo inserts the node in a slot of parent, the default slot unless In
// is given, at the end of the slot unless At is given. An attached node is
// detached first, so that it never has two parents.
func (n *Node) AttachTo(parent *Node, opts ...ItemOption) error {
	if parent == nil || parent.ui != n.ui {
		return fmt.Errorf("%w: %s cannot be attached to a node of another UI", ErrInvalidDescriptor, n)
	}
	o := newItemOptions(opts)
	s, ok := parent.slots[o.slot]
	if !ok {
		return itemsNotAllowed(parent.name, o.slot)
	}
	for p := parent; p != nil; p = p.parent {
		if p == n {
			return fmt.Errorf("%w: %s cannot be attached inside itself", ErrItemsNotAllowed, n)
		}
	}

	n.Detach()

	position := o.position
	if position < 0 || position > len(s.items.List) {
		position = len(s.items.List)
	}
	mounted := s.mount(n)
	s.marker.InsertChild(mounted, position)
	n.mounted = mounted
	n.parent = parent
	n.slot = s.name
	s.items.Insert(n, position)

	n.logger.Debug("attached",
		zap.String("parent", parent.id),
		zap.String("slot", s.name),
		zap.Int("position", position),
	)
	if obs, ok := parent.component.(ItemsObserver); ok {
		obs.OnItemAdd(s.name, n)
	}
	return n.postRender()
}

// Detach removes the node from its parent, or from the root anchor, and
// returns it. The node keeps its state, listeners and children and may be
// attached again. Detaching an unattached node does nothing.
func (n *Node) Detach() *Node {
	switch {
	case n.parent != nil:
		parent := n.parent
		s := parent.slots[n.slot]
		n.mounted.Remove()
		s.items.Remove(n)
		n.parent = nil
		n.slot = DefaultSlot
		n.mounted = nil
		n.logger.Debug("detached", zap.String("parent", parent.id), zap.String("slot", s.name))
		if obs, ok := parent.component.(ItemsObserver); ok {
			obs.OnItemRemove(s.name, n)
		}
	case n.genesis != nil:
		n.mounted.Remove()
		n.genesis.items.Remove(n)
		n.genesis = nil
		n.mounted = nil
		n.logger.Debug("detached from root")
	}
	return n
}

// AddItem attaches item to the node. A Descriptor is built into a new node
// first. The attached node is returned.
func (n *Node) AddItem(item Item, opts ...ItemOption) (*Node, error) {
	child, err := n.ui.nodeOf(item)
	if err != nil {
		return nil, err
	}
	if err := child.AttachTo(n, opts...); err != nil {
		return child, err
	}
	return child, nil
}

// RemoveItem detaches the item found at index in the selected slot. It
// returns nil when there is no such item.
func (n *Node) RemoveItem(index int, opts ...ItemOption) *Node {
	o := newItemOptions(opts)
	s, ok := n.slots[o.slot]
	if !ok || index < 0 || index >= len(s.items.List) {
		return nil
	}
	return s.items.List[index].Detach()
}

// RemoveNode detaches child if it is a direct item of n. It returns nil
// otherwise.
func (n *Node) RemoveNode(child *Node) *Node {
	if child == nil || child.parent != n {
		return nil
	}
	return child.Detach()
}

// Items returns the items of a slot, the default one if none is named.
func (n *Node) Items(slot ...string) []*Node {
	name := DefaultSlot
	if len(slot) > 0 {
		name = slot[0]
	}
	s, ok := n.slots[name]
	if !ok {
		return nil
	}
	return s.items.Copy()
}

// Slots returns the slot names in surface order. The default slot is the
// empty string.
func (n *Node) Slots() []string {
	return append([]string(nil), n.slotOrder...)
}

// AttachedTo returns the parent node, nil when the node is detached or
// sits at the top level of a root anchor.
func (n *Node) AttachedTo() *Node { return n.parent }

// Slot returns the slot the node occupies in its parent.
func (n *Node) Slot() string { return n.slot }

// Root returns the root anchor the node tree is mounted on, if any.
func (n *Node) Root() *Genesis {
	top := n
	for top.parent != nil {
		top = top.parent
	}
	return top.genesis
}
