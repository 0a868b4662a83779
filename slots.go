package ui

// DefaultSlot is the name of the slot created by an unlabeled marker.
const DefaultSlot = ""

const (
	markerTag   = "items"
	markerLabel = "for"
	templateTag = "template"
	holeTag     = "item"
)

// slot is an insertion point on a rendered surface. The mounted elements of
// its items are the element children of marker, in the same order.
type slot struct {
	name     string
	marker   NativeElement
	template NativeElement
	items    *Nodes
}

// scanSlots discovers the insertion markers of a freshly built surface.
// A <template> child of a marker becomes the repeat template of the slot: its
// first element is cloned around every item, in place of its <item> hole.
func (n *Node) scanSlots() error {
	for _, m := range n.surface.FindAll(markerTag) {
		if !n.owns(m) {
			continue
		}
		label, _ := m.Attribute(markerLabel)
		if _, ok := n.slots[label]; ok {
			return multipleSlotRefs(n.name, label)
		}
		s := &slot{name: label, marker: m, items: NewNodes()}
		for _, c := range m.Children() {
			if c.Tag() != templateTag {
				continue
			}
			if prototypes := c.Children(); len(prototypes) > 0 {
				s.template = prototypes[0]
			}
			c.Remove()
			break
		}
		n.slots[label] = s
		n.slotOrder = append(n.slotOrder, label)
	}
	return nil
}

// owns reports whether the marker m belongs to the surface of n. Markers
// inside a repeat template only exist in the clones of that template.
func (n *Node) owns(m NativeElement) bool {
	for e := m.Parent(); e != nil; e = e.Parent() {
		if e == n.surface {
			return true
		}
		if e.Tag() == templateTag {
			return false
		}
	}
	return false
}

// mount wraps the surface of child for insertion in s.
func (s *slot) mount(child *Node) NativeElement {
	if s.template == nil {
		return child.surface
	}
	clone := s.template.Clone()
	if holes := clone.FindAll(holeTag); len(holes) > 0 {
		holes[0].ReplaceWith(child.surface)
	} else if clone.Tag() == holeTag {
		return child.surface
	} else {
		clone.AppendChild(child.surface)
	}
	return clone
}
