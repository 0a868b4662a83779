package ui

import (
	"strings"
)

// DataContext is the execution context handed to the fragments of a
// primitive definition. It reads the live state of one node and keeps the
// callbacks that refresh the rendered markup when that state changes.
type DataContext struct {
	node    *Node
	updates []dataUpdate
}

type dataUpdate struct {
	path string
	fn   func()
}

func (c *DataContext) ID() string { return c.node.id }
func (c *DataContext) UX() string { return c.node.ux }

// Get returns the string form of the state value at a dotted path. The path
// "id" returns the node id. Absent values read as the empty string.
func (c *DataContext) Get(path string) string {
	if path == "id" {
		return c.node.id
	}
	v, ok := c.node.state.Lookup(path)
	if !ok {
		return ""
	}
	return v.String()
}

func (c *DataContext) Lookup(path string) (Value, bool) {
	return c.node.state.Lookup(path)
}

// OnDataUpdate registers fn to run whenever the state under path is written,
// either at path itself or at one of its parents.
func (c *DataContext) OnDataUpdate(path string, fn func()) {
	c.updates = append(c.updates, dataUpdate{path, fn})
}

// Element returns the rendered surface of the node.
func (c *DataContext) Element() NativeElement { return c.node.surface }

func (c *DataContext) Document() NativeDocument { return c.node.ui.document }

// Node returns the node the context belongs to.
func (c *DataContext) Node() *Node { return c.node }

func (c *DataContext) notify(key string) {
	for _, u := range c.updates {
		if u.path == key || strings.HasPrefix(u.path, key+".") {
			u.fn()
		}
	}
}
