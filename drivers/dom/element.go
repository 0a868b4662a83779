package dom

import (
	"github.com/antchfx/htmlquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/atdiar/uxui"
)

// Element is the handle on an element node of a Document.
type Element struct {
	doc       *Document
	node      *html.Node
	listeners map[string][]*listener
}

type listener struct {
	fn      func(ui.Event)
	removed bool
}

// Node returns the underlying html node.
func (e *Element) Node() *html.Node { return e.node }

func (e *Element) Tag() string { return e.node.Data }

func (e *Element) Attribute(name string) (string, bool) {
	for _, attr := range e.node.Attr {
		if attr.Namespace == "" && attr.Key == name {
			return attr.Val, true
		}
	}
	return "", false
}

func (e *Element) SetAttribute(name, value string) {
	for i, attr := range e.node.Attr {
		if attr.Namespace == "" && attr.Key == name {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
}

func (e *Element) RemoveAttribute(name string) {
	for i, attr := range e.node.Attr {
		if attr.Namespace == "" && attr.Key == name {
			e.node.Attr = append(e.node.Attr[:i], e.node.Attr[i+1:]...)
			return
		}
	}
}

// SetText replaces the content of the element with a single text node.
func (e *Element) SetText(text string) {
	clearChildren(e.node)
	e.node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// Text returns the text content of the element.
func (e *Element) Text() string {
	return htmlquery.InnerText(e.node)
}

// Parent returns the parent element, nil for a detached element or for the
// root element of the document.
func (e *Element) Parent() ui.NativeElement {
	p := e.node.Parent
	if p == nil || p.Type != html.ElementNode {
		return nil
	}
	return e.doc.wrap(p)
}

func (e *Element) Children() []ui.NativeElement {
	var res []ui.NativeElement
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			res = append(res, e.doc.wrap(c))
		}
	}
	return res
}

func (e *Element) AppendChild(child ui.NativeElement) {
	c := e.doc.element(child)
	unlink(c.node)
	e.node.AppendChild(c.node)
}

// InsertChild inserts child before the element child at index. Text nodes
// are not counted. An index out of range appends.
func (e *Element) InsertChild(child ui.NativeElement, index int) {
	c := e.doc.element(child)
	unlink(c.node)
	ref := nthElement(e.node, index)
	if ref == nil {
		e.node.AppendChild(c.node)
		return
	}
	e.node.InsertBefore(c.node, ref)
}

// ReplaceWith puts other in place of e. Nothing happens if e has no parent.
func (e *Element) ReplaceWith(other ui.NativeElement) {
	o := e.doc.element(other)
	p := e.node.Parent
	if p == nil || o == e {
		return
	}
	unlink(o.node)
	p.InsertBefore(o.node, e.node)
	p.RemoveChild(e.node)
}

func (e *Element) Remove() {
	unlink(e.node)
}

// FindAll returns the descendants with the given tag, in document order.
func (e *Element) FindAll(tag string) []ui.NativeElement {
	nodes, err := htmlquery.QueryAll(e.node, ".//"+tag)
	if err != nil {
		e.doc.logger.Warn("invalid tag query", zap.String("tag", tag), zap.Error(err))
		return nil
	}
	res := make([]ui.NativeElement, 0, len(nodes))
	for _, n := range nodes {
		res = append(res, e.doc.wrap(n))
	}
	return res
}

// Clone returns a deep copy of the element. Event listeners are not copied.
func (e *Element) Clone() ui.NativeElement {
	return e.doc.wrap(cloneNode(e.node))
}

// AddEventListener registers handler for event and returns the function that
// removes it.
func (e *Element) AddEventListener(event string, handler func(ui.Event)) func() {
	if e.listeners == nil {
		e.listeners = make(map[string][]*listener)
	}
	l := &listener{fn: handler}
	e.listeners[event] = append(e.listeners[event], l)
	e.doc.pin(e, true)
	return func() {
		l.removed = true
		list := e.listeners[event]
		for i, v := range list {
			if v == l {
				e.listeners[event] = append(list[:i:i], list[i+1:]...)
				break
			}
		}
		if len(e.listeners[event]) == 0 {
			delete(e.listeners, event)
		}
		if len(e.listeners) == 0 {
			e.doc.pin(e, false)
		}
	}
}

// ListenerCount returns the number of handlers registered for event.
func (e *Element) ListenerCount(event string) int {
	return len(e.listeners[event])
}

func unlink(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

func nthElement(parent *html.Node, index int) *html.Node {
	if index < 0 {
		return nil
	}
	var i int
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if i == index {
			return c
		}
		i++
	}
	return nil
}

func clearChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
}

func cloneNode(n *html.Node) *html.Node {
	clone := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		clone.AppendChild(cloneNode(c))
	}
	return clone
}
