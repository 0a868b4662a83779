package ui

import (
	"go.uber.org/zap"
)

// Genesis is the root anchor of a node tree: it owns the top-level nodes and
// mounts their surfaces on a document element.
type Genesis struct {
	ui    *UI
	mount NativeElement
	items *Nodes
}

// Add builds item if needed and mounts it at the end of the top level. A node
// attached elsewhere is detached first.
func (g *Genesis) Add(item Item) (*Node, error) {
	n, err := g.ui.nodeOf(item)
	if err != nil {
		return nil, err
	}
	n.Detach()
	g.mount.AppendChild(n.surface)
	n.mounted = n.surface
	n.genesis = g
	g.items.InsertLast(n)
	n.logger.Debug("mounted", zap.Int("position", len(g.items.List)-1))
	return n, n.postRender()
}

// Items returns the top-level nodes.
func (g *Genesis) Items() []*Node { return g.items.Copy() }

// Element returns the mount point.
func (g *Genesis) Element() NativeElement { return g.mount }
